package database

import (
	"context"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(value, hash string, createdAt time.Time) *StringRecord {
	return &StringRecord{
		Value:                 value,
		Length:                len(value),
		IsPalindrome:          false,
		UniqueCharacters:      3,
		WordCount:             1,
		SHA256Hash:            hash,
		CharacterFrequencyMap: map[string]int{"a": 1, "b": 1, "c": 1},
		CreatedAt:             createdAt,
	}
}

// mongoTestDatabase returns a per-run database name; MongoDB rejects '.' in names
func mongoTestDatabase() string {
	return "string_analyzer_test_" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

func backends(t *testing.T) map[string]func(t *testing.T) Database {
	t.Helper()
	b := map[string]func(t *testing.T) Database{
		"memory": func(t *testing.T) Database { return NewMemory() },
		"sqlite": func(t *testing.T) Database {
			db, err := NewSQLite(":memory:")
			require.NoError(t, err)
			return db
		},
		"badger": func(t *testing.T) Database {
			db, err := NewBadger("")
			require.NoError(t, err)
			return db
		},
	}
	if uri := os.Getenv("MONGO_TEST_URI"); uri != "" {
		b["mongodb"] = func(t *testing.T) Database {
			db, err := NewMongoDB(uri, mongoTestDatabase())
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.db.Drop(context.Background()) })
			return db
		}
	}
	return b
}

func TestDatabase_InsertFindDelete(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			db := open(t)
			defer db.Disconnect()
			ctx := context.Background()

			created := time.Date(2025, 11, 27, 10, 0, 0, 0, time.UTC)
			require.NoError(t, db.Insert(ctx, newRecord("abc", "h1", created)))

			exists, err := db.ExistsByHash(ctx, "h1")
			require.NoError(t, err)
			assert.True(t, exists)

			got, err := db.FindByHash(ctx, "h1")
			require.NoError(t, err)
			assert.Equal(t, "abc", got.Value)
			assert.Equal(t, 3, got.Length)
			assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, got.CharacterFrequencyMap)
			assert.True(t, created.Equal(got.CreatedAt))

			require.NoError(t, db.Delete(ctx, "h1"))

			_, err = db.FindByHash(ctx, "h1")
			assert.ErrorIs(t, err, ErrNotFound)

			exists, err = db.ExistsByHash(ctx, "h1")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestDatabase_DuplicateAndMissing(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			db := open(t)
			defer db.Disconnect()
			ctx := context.Background()

			require.NoError(t, db.Insert(ctx, newRecord("abc", "h1", time.Now())))
			assert.ErrorIs(t, db.Insert(ctx, newRecord("abc", "h1", time.Now())), ErrDuplicate)

			assert.ErrorIs(t, db.Delete(ctx, "missing"), ErrNotFound)
			_, err := db.FindByHash(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestDatabase_ListAllOrderedByCreation(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			db := open(t)
			defer db.Disconnect()
			ctx := context.Background()

			records, err := db.ListAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, records)

			base := time.Date(2025, 11, 27, 10, 0, 0, 0, time.UTC)
			// hashes deliberately sort opposite to creation order
			require.NoError(t, db.Insert(ctx, newRecord("first", "zz", base)))
			require.NoError(t, db.Insert(ctx, newRecord("second", "mm", base.Add(time.Second))))
			require.NoError(t, db.Insert(ctx, newRecord("third", "aa", base.Add(2*time.Second))))

			records, err = db.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, "first", records[0].Value)
			assert.Equal(t, "second", records[1].Value)
			assert.Equal(t, "third", records[2].Value)
		})
	}
}

func TestDatabase_ConcurrentInsertSingleWinner(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			db := open(t)
			defer db.Disconnect()
			ctx := context.Background()

			const workers = 8
			var wg sync.WaitGroup
			errs := make(chan error, workers)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- db.Insert(ctx, newRecord("same", "same-hash", time.Now()))
				}()
			}
			wg.Wait()
			close(errs)

			var ok, dup int
			for err := range errs {
				switch {
				case err == nil:
					ok++
				case assert.ErrorIs(t, err, ErrDuplicate):
					dup++
				}
			}
			assert.Equal(t, 1, ok)
			assert.Equal(t, workers-1, dup)
		})
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()
	require.NoError(t, db.Insert(ctx, newRecord("abc", "h1", time.Now())))

	got, err := db.FindByHash(ctx, "h1")
	require.NoError(t, err)
	got.CharacterFrequencyMap["z"] = 9
	got.Value = "mutated"

	again, err := db.FindByHash(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "abc", again.Value)
	assert.NotContains(t, again.CharacterFrequencyMap, "z")
}

func TestNewDatabase_Factory(t *testing.T) {
	db, err := NewDatabase(TypeMemory, "", Options{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, db)

	db, err = NewDatabase("SQLITE", ":memory:", Options{})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, db)
	require.NoError(t, db.Disconnect())

	_, err = NewDatabase("postgres", "", Options{})
	assert.Error(t, err)
}

func TestMongoTestDatabase_ValidName(t *testing.T) {
	name := mongoTestDatabase()
	assert.NotContains(t, name, ".")
	assert.NotContains(t, name, " ")
	assert.Less(t, len(name), 64)
}

func TestNewBadger_MemorySentinel(t *testing.T) {
	db, err := NewDatabase(TypeBadger, BadgerInMemory, Options{})
	require.NoError(t, err)
	defer db.Disconnect()

	require.NoError(t, db.Insert(context.Background(), newRecord("abc", "h1", time.Now())))
	_, err = os.Stat(BadgerInMemory)
	assert.True(t, os.IsNotExist(err))
}

func TestNewMongoDB_UnreachableFails(t *testing.T) {
	_, err := NewMongoDB("mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200", "string_analyzer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping MongoDB")
}
