// {{RIPER-5-Enhanced:
//   Action: "Modified"
//   Task_ID: "Record Store Interface Abstraction"
//   Timestamp: "2025-11-27T09:12:00Z"
//   Authoring_Role: "AR"
//   Analysis_Performed: "Extracted the keyed record operations shared by every backend"
//   Principle_Applied: "Aether-Engineering-SOLID-I (Interface Segregation)"
//   Quality_Check: "Interface supports SQLite, MongoDB, Badger and in-memory implementations"
// }}

package database

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicate is returned by Insert when a record with the same hash exists
	ErrDuplicate = errors.New("record already exists")
	// ErrNotFound is returned when no record matches the hash
	ErrNotFound = errors.New("record not found")
)

// Database defines the interface for record storage.
// Insert must be an atomic check-then-insert on SHA256Hash.
type Database interface {
	// Record operations
	FindByHash(ctx context.Context, hash string) (*StringRecord, error)
	ExistsByHash(ctx context.Context, hash string) (bool, error)
	Insert(ctx context.Context, record *StringRecord) error
	Delete(ctx context.Context, hash string) error
	ListAll(ctx context.Context) ([]*StringRecord, error)

	// Connection management
	Disconnect() error
	Ping() error
}

// StringRecord represents an analyzed string, keyed by the hash of its value
type StringRecord struct {
	Value                 string         `json:"value" bson:"value"`
	Length                int            `json:"length" bson:"length"`
	IsPalindrome          bool           `json:"is_palindrome" bson:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters" bson:"unique_characters"`
	WordCount             int            `json:"word_count" bson:"word_count"`
	SHA256Hash            string         `json:"sha256_hash" bson:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map" bson:"character_frequency_map"`
	CreatedAt             time.Time      `json:"created_at" bson:"created_at"`
}
