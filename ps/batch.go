package ps

import (
	"fmt"

	"github.com/nickyhof/PrimitiveDB/core"
)

// Batch collects document writes and deletes so they reach the store together.
type Batch struct {
	store   Store
	changes []Change
	started bool
}

// Begin creates a new batch for store.
func Begin(store Store) *Batch {
	return &Batch{
		store:   store,
		changes: make([]Change, 0),
		started: true,
	}
}

// AddWrite queues a full replacement of the document at path.
func (b *Batch) AddWrite(path string, data []byte) error {
	if !b.started {
		return fmt.Errorf("batch not started")
	}

	b.changes = append(b.changes, Change{Path: path, Data: data})
	return nil
}

// AddDelete queues removal of the document at path.
func (b *Batch) AddDelete(path string) error {
	if !b.started {
		return fmt.Errorf("batch not started")
	}

	b.changes = append(b.changes, Change{Path: path, Delete: true})
	return nil
}

// Commit applies all queued changes in one store transaction.
func (b *Batch) Commit(identity core.Identity, message string) (Transaction, error) {
	if !b.started {
		return Transaction{}, fmt.Errorf("batch not started")
	}

	if len(b.changes) == 0 {
		return Transaction{}, fmt.Errorf("no operations to commit")
	}

	if message == "" {
		message = fmt.Sprintf("Batch transaction: %d operation(s)", len(b.changes))
	}

	txn, err := b.store.Apply(b.changes, identity, message)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to commit: %w", err)
	}

	b.started = false
	b.changes = nil

	return txn, nil
}

// Rollback discards all queued changes
func (b *Batch) Rollback() {
	b.started = false
	b.changes = nil
}

// OperationCount returns the number of pending changes
func (b *Batch) OperationCount() int {
	return len(b.changes)
}
