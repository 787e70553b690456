package ports

import "context"

// TxManager runs fn atomically. Repository calls made with the ctx
// passed to fn see and join the same transaction; a tick commits or
// rolls back as one unit.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
