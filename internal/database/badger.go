// {{RIPER-5-Enhanced:
//   Action: "Added"
//   Task_ID: "Badger Embedded Store"
//   Timestamp: "2025-11-27T10:05:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Keyed records by content hash in an embedded LSM key-value store"
//   Principle_Applied: "Aether-Engineering-SOLID-S, Interface Implementation"
//   Quality_Check: "Check-then-insert runs inside a single read-write transaction"
// }}

package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
)

const badgerKeyPrefix = "string:"

// Badger implements the Database interface on an embedded BadgerDB
type Badger struct {
	db *badger.DB
}

var _ Database = (*Badger)(nil)

// BadgerInMemory selects an in-memory Badger store, mirroring SQLite's ":memory:"
const BadgerInMemory = ":memory:"

// NewBadger opens a BadgerDB at dir. An empty dir or BadgerInMemory opens an in-memory database.
func NewBadger(dir string) (*Badger, error) {
	if dir == BadgerInMemory {
		dir = ""
	}

	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create badger directory %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithNumVersionsToKeep(1).WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	log.Infof("Badger opened (%s)", badgerLocation(dir))
	return &Badger{db: db}, nil
}

func badgerLocation(dir string) string {
	if dir == "" {
		return "in-memory"
	}
	return dir
}

// badgerLogger forwards Badger's internal logs to logrus, demoting info to debug
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{})   { log.Errorf(format, args...) }
func (badgerLogger) Warningf(format string, args ...interface{}) { log.Warnf(format, args...) }
func (badgerLogger) Infof(format string, args ...interface{})    { log.Debugf(format, args...) }
func (badgerLogger) Debugf(format string, args ...interface{})   { log.Tracef(format, args...) }

func badgerKey(hash string) []byte {
	return []byte(badgerKeyPrefix + hash)
}

// FindByHash finds a record by its content hash
func (b *Badger) FindByHash(_ context.Context, hash string) (*StringRecord, error) {
	var record StringRecord
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(hash))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ExistsByHash checks if a record exists
func (b *Badger) ExistsByHash(_ context.Context, hash string) (bool, error) {
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(badgerKey(hash))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert stores a new record. Concurrent inserts of the same key surface as
// badger.ErrConflict on commit and are reported as duplicates.
func (b *Badger) Insert(_ context.Context, record *StringRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	key := badgerKey(record.SHA256Hash)
	err = b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
	if errors.Is(err, badger.ErrConflict) {
		return ErrDuplicate
	}
	return err
}

// Delete removes a record by hash
func (b *Badger) Delete(_ context.Context, hash string) error {
	key := badgerKey(hash)
	err := b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

// ListAll returns every record, oldest first
func (b *Badger) ListAll(ctx context.Context) ([]*StringRecord, error) {
	records := []*StringRecord{}
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record StringRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			records = append(records, &record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// keys are ordered by hash, not by insertion
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Disconnect closes the database
func (b *Badger) Disconnect() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("close badger: %w", err)
	}

	log.Info("Badger closed")
	return nil
}

// Ping checks the database is still open
func (b *Badger) Ping() error {
	if b.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}
