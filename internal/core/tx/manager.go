// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces; the implementation lives in
// infrastructure/storage/postgres.
package tx

import (
	"context"
)

// IsolationLevel mirrors the SQL isolation levels the services ask for.
type IsolationLevel string

const (
	ReadCommitted IsolationLevel = "read committed"
	Serializable  IsolationLevel = "serializable"
)

// Options configure a single transaction.
type Options struct {
	Isolation IsolationLevel
	ReadOnly  bool
}

// Manager defines the contract for transaction management.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// RunInTransactionWithOptions is RunInTransaction with an explicit isolation level.
	RunInTransactionWithOptions(ctx context.Context, opts Options, fn func(ctx context.Context) error) error
}
