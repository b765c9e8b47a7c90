package repositories

import "context"

// TransactionManager runs work inside a single database transaction.
// Repositories called with the ctx handed to fn share that transaction,
// and a nested WithinTransaction joins the outer one instead of opening another.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
