package ps

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.etcd.io/bbolt"

	"github.com/nickyhof/PrimitiveDB/core"
)

var documentsBucket = []byte("documents")

// BoltPersistence is a Store keeping every document under its path in a
// single bbolt bucket. Each Apply is one bbolt write transaction.
type BoltPersistence struct {
	bdb    *bbolt.DB
	logger *slog.Logger
}

var _ Store = (*BoltPersistence)(nil)

// NewBoltPersistence opens (or creates) the bbolt file at path.
func NewBoltPersistence(path string) (*BoltPersistence, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	bdb, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return &BoltPersistence{bdb: bdb}, nil
}

// WithLogger sets the logger used for commit tracing.
func (b *BoltPersistence) WithLogger(logger *slog.Logger) *BoltPersistence {
	b.logger = logger
	return b
}

func (b *BoltPersistence) ReadFile(path string) ([]byte, bool, error) {
	var data []byte
	var exists bool

	err := b.bdb.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(documentsBucket)
		if bucket == nil {
			return nil
		}
		value := bucket.Get([]byte(path))
		if value == nil {
			return nil
		}
		// bbolt memory is only valid inside the transaction
		data = append([]byte(nil), value...)
		exists = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, exists, nil
}

func (b *BoltPersistence) Apply(changes []Change, identity core.Identity, message string) (Transaction, error) {
	var txn Transaction

	err := b.bdb.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(documentsBucket)
		if err != nil {
			return err
		}

		for _, change := range changes {
			if change.Delete {
				if err := bucket.Delete([]byte(change.Path)); err != nil {
					return fmt.Errorf("failed to delete %s: %w", change.Path, err)
				}
				continue
			}
			if err := bucket.Put([]byte(change.Path), change.Data); err != nil {
				return fmt.Errorf("failed to write %s: %w", change.Path, err)
			}
		}

		txn = Transaction{
			Id:     strconv.Itoa(tx.ID()),
			When:   time.Now(),
			Author: fmt.Sprintf("%s <%s>", identity.Name, identity.Email),
		}
		return nil
	})
	if err != nil {
		return Transaction{}, err
	}

	if b.logger != nil {
		b.logger.Debug("committed", "txn", txn.Id, "message", message, "changes", len(changes))
	}

	return txn, nil
}

func (b *BoltPersistence) Close() error {
	return b.bdb.Close()
}
