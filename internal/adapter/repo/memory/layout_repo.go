package memory

import (
	"context"

	"driveyard/internal/domain/field"
)

type FieldLayoutRepo struct {
	store *Store
}

func NewFieldLayoutRepo(store *Store) FieldLayoutRepo {
	return FieldLayoutRepo{store: store}
}

func (r FieldLayoutRepo) Get(ctx context.Context, name string) (field.Layout, bool, error) {
	defer r.store.acquireRead(ctx)()
	layout, ok := r.store.layouts[name]
	return layout, ok, nil
}

func (r FieldLayoutRepo) Save(ctx context.Context, name string, layout field.Layout) error {
	defer r.store.acquire(ctx)()
	r.store.layouts[name] = layout
	return nil
}
