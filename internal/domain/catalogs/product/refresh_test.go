package product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negocio/internal/core/apperror"
	"negocio/internal/core/types"
)

type stubFeed struct {
	rate types.Money
	err  error
}

func (f stubFeed) CurrentRate(context.Context) (types.Money, error) { return f.rate, f.err }

type recordingUpdater struct {
	calls int
	rate  types.Money
}

func (u *recordingUpdater) RefreshLocalPrices(_ context.Context, rate types.Money) (int64, error) {
	u.calls++
	u.rate = rate
	return 4, nil
}

func TestPriceRefresher_Refresh(t *testing.T) {
	store := &recordingUpdater{}
	r := NewPriceRefresher(stubFeed{rate: types.MustMoney("36.25")}, store)

	res, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Updated)
	assert.Equal(t, 1, store.calls)
	assert.True(t, types.MustMoney("36.25").Equal(store.rate))
}

func TestPriceRefresher_SkipsWithoutRate(t *testing.T) {
	for name, feed := range map[string]stubFeed{
		"error":    {err: errors.New("timeout")},
		"zero":     {rate: types.Zero()},
		"negative": {rate: types.MustMoney("-1")},
	} {
		t.Run(name, func(t *testing.T) {
			store := &recordingUpdater{}
			r := NewPriceRefresher(feed, store)

			res, err := r.Refresh(context.Background())
			assert.True(t, res.Skipped)
			assert.Equal(t, apperror.CodeRateUnavailable, apperror.From(err).Code)
			assert.Zero(t, store.calls)

			assert.NoError(t, r.RefreshScheduled(context.Background()))
		})
	}
}
