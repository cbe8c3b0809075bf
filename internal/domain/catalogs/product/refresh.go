package product

import (
	"context"
	"errors"

	"negocio/internal/core/apperror"
	"negocio/internal/core/types"
	"negocio/pkg/logger"
)

// ErrNoRate is returned by feeds that have no usable value.
var ErrNoRate = errors.New("no exchange rate available")

// RateFeed yields the current local-currency price of one USD.
type RateFeed interface {
	CurrentRate(ctx context.Context) (types.Money, error)
}

// PriceUpdater is the part of Repository the refresher writes through.
type PriceUpdater interface {
	RefreshLocalPrices(ctx context.Context, rate types.Money) (int64, error)
}

// RefreshResult reports what a refresh did.
type RefreshResult struct {
	Rate    types.Money `json:"rate"`
	Updated int64       `json:"updated"`
	Skipped bool        `json:"skipped"`
}

// PriceRefresher recomputes price_local from price_usd at the current rate.
type PriceRefresher struct {
	feed  RateFeed
	store PriceUpdater
}

func NewPriceRefresher(feed RateFeed, store PriceUpdater) *PriceRefresher {
	return &PriceRefresher{feed: feed, store: store}
}

// Refresh leaves every product untouched when the feed fails or returns a non-positive rate.
func (r *PriceRefresher) Refresh(ctx context.Context) (RefreshResult, error) {
	rate, err := r.feed.CurrentRate(ctx)
	if err == nil && !rate.IsPositive() {
		err = ErrNoRate
	}
	if err != nil {
		logger.Warn(ctx, "exchange rate unavailable, prices not refreshed", "error", err)
		return RefreshResult{Skipped: true}, apperror.NewRateUnavailable(err)
	}

	n, err := r.store.RefreshLocalPrices(ctx, rate)
	if err != nil {
		return RefreshResult{}, err
	}

	logger.Info(ctx, "local prices refreshed", "rate", rate.String(), "products", n)
	return RefreshResult{Rate: rate, Updated: n}, nil
}

// RefreshScheduled is Refresh for the scheduler: a missing rate is not a failure.
func (r *PriceRefresher) RefreshScheduled(ctx context.Context) error {
	_, err := r.Refresh(ctx)
	if apperror.KindOf(err) == apperror.KindUnavailable {
		return nil
	}
	return err
}
