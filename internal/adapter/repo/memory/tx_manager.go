package memory

import "context"

// TxManager holds the store lock for the duration of fn and marks the
// ctx so repo calls inside fn skip their own locking.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(withTx(ctx))
}
