// {{RIPER-5-Enhanced:
//   Action: "Modified"
//   Task_ID: "MongoDB Database Handler"
//   Timestamp: "2025-11-27T09:50:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Mapped string records onto a collection with a unique hash index"
//   Principle_Applied: "Aether-Engineering-SOLID-S, Interface Segregation"
//   Quality_Check: "Connection pooling, error handling, and index creation implemented"
// }}

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoDatabase = "string_analyzer"

// MongoDB implements the Database interface
type MongoDB struct {
	client  *mongo.Client
	db      *mongo.Database
	records *mongo.Collection
}

var _ Database = (*MongoDB)(nil)

// NewMongoDB creates a new MongoDB connection
func NewMongoDB(uri string, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if dbName == "" {
		dbName = defaultMongoDatabase
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	m := &MongoDB{
		client:  client,
		db:      db,
		records: db.Collection("string_records"),
	}

	if err := m.createIndexes(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create indexes: %w", err)
	}

	log.Infof("MongoDB connected (database %s)", dbName)
	return m, nil
}

// createIndexes creates necessary indexes
func (m *MongoDB) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sha256_hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}

	if _, err := m.records.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create string_records indexes: %w", err)
	}

	return nil
}

// FindByHash finds a record by its content hash
func (m *MongoDB) FindByHash(ctx context.Context, hash string) (*StringRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record StringRecord
	err := m.records.FindOne(ctx, bson.M{"sha256_hash": hash}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ExistsByHash checks if a record exists
func (m *MongoDB) ExistsByHash(ctx context.Context, hash string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := m.records.CountDocuments(ctx, bson.M{"sha256_hash": hash}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert inserts a new record; the unique index rejects duplicates
func (m *MongoDB) Insert(ctx context.Context, record *StringRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.records.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// Delete removes a record by hash
func (m *MongoDB) Delete(ctx context.Context, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.records.DeleteOne(ctx, bson.M{"sha256_hash": hash})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every record, oldest first
func (m *MongoDB) ListAll(ctx context.Context) ([]*StringRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := m.records.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []*StringRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Disconnect closes the MongoDB connection
func (m *MongoDB) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect MongoDB: %w", err)
	}

	log.Info("MongoDB connection closed")
	return nil
}

// Ping checks if the connection is alive
func (m *MongoDB) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return m.client.Ping(ctx, nil)
}
