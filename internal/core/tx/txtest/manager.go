// Package txtest provides a tx.Manager for unit tests that runs fn inline.
package txtest

import (
	"context"
	"sync"

	"negocio/internal/core/tx"
)

// Manager counts transactions. OnRollback, when set, is called for every fn that fails.
type Manager struct {
	mu         sync.Mutex
	Calls      int
	Options    []tx.Options
	OnBegin    func()
	OnRollback func()
}

var _ tx.Manager = (*Manager)(nil)

func (m *Manager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransactionWithOptions(ctx, tx.Options{Isolation: tx.ReadCommitted}, fn)
}

func (m *Manager) RunInTransactionWithOptions(ctx context.Context, opts tx.Options, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	m.Options = append(m.Options, opts)
	onBegin, onRollback := m.OnBegin, m.OnRollback
	m.mu.Unlock()

	if onBegin != nil {
		onBegin()
	}
	err := fn(ctx)
	if err != nil && onRollback != nil {
		onRollback()
	}
	return err
}
