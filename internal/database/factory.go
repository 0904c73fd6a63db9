// {{RIPER-5-Enhanced:
//   Action: "Modified"
//   Task_ID: "Database Factory Pattern"
//   Timestamp: "2025-11-27T09:20:00Z"
//   Authoring_Role: "AR"
//   Analysis_Performed: "Extended factory with embedded Badger and in-memory stores"
//   Principle_Applied: "Aether-Engineering-SOLID-O (Open/Closed Principle)"
//   Quality_Check: "Supports easy addition of new database types"
// }}

package database

import (
	"fmt"
	"strings"
)

// DatabaseType represents the type of database to use
type DatabaseType string

const (
	TypeMongoDB DatabaseType = "mongodb"
	TypeSQLite  DatabaseType = "sqlite"
	TypeBadger  DatabaseType = "badger"
	TypeMemory  DatabaseType = "memory"
)

// Options carries backend-specific settings that do not fit in the connection string
type Options struct {
	MongoDatabase string
}

// NewDatabase creates a new database instance based on the provided type and connection string.
// For sqlite the connection string is a file path, for badger a directory, for mongodb a URI.
func NewDatabase(dbType DatabaseType, connectionString string, opts Options) (Database, error) {
	switch strings.ToLower(string(dbType)) {
	case string(TypeMongoDB):
		return NewMongoDB(connectionString, opts.MongoDatabase)
	case string(TypeSQLite):
		return NewSQLite(connectionString)
	case string(TypeBadger):
		return NewBadger(connectionString)
	case string(TypeMemory):
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}
