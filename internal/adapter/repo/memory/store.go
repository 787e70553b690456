package memory

import (
	"context"
	"sync"

	"driveyard/internal/app/ports"
	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/field"
)

// Store backs all memory repos with a single mutex. TxManager holds it
// for a whole tick the way a database transaction would; repos called
// with a transactional ctx must not lock again, so every method goes
// through acquire/acquireRead, which are no-ops inside a transaction.
type Store struct {
	mu        sync.RWMutex
	state     map[string]drive.StateAggregate
	execution map[string]ports.TickRecord
	events    map[string][]drive.DomainEvent
	creds     map[string]ports.DriveCredentialRecord
	layouts   map[string]field.Layout
}

func NewStore() *Store {
	return &Store{
		state:     make(map[string]drive.StateAggregate),
		execution: make(map[string]ports.TickRecord),
		events:    make(map[string][]drive.DomainEvent),
		creds:     make(map[string]ports.DriveCredentialRecord),
		layouts:   make(map[string]field.Layout),
	}
}

func execKey(driveID, key string) string {
	return driveID + "::" + key
}

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey, true)
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey).(bool)
	return v
}

func (s *Store) acquire(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) acquireRead(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) SeedState(state drive.StateAggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[state.DriveID] = state
}
