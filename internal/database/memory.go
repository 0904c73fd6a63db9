// {{RIPER-5-Enhanced:
//   Action: "Added"
//   Task_ID: "In-Memory Store"
//   Timestamp: "2025-11-27T10:15:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Provided a dependency-free backend for tests and ephemeral runs"
//   Principle_Applied: "Aether-Engineering-SOLID-L (Liskov Substitution)"
//   Quality_Check: "Mutex-guarded map with insertion order preserved"
// }}

package database

import (
	"context"
	"sync"
)

// Memory implements the Database interface in process memory
type Memory struct {
	mu      sync.RWMutex
	records map[string]*StringRecord
	order   []string
}

var _ Database = (*Memory)(nil)

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*StringRecord)}
}

// FindByHash finds a record by its content hash
func (m *Memory) FindByHash(_ context.Context, hash string) (*StringRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[hash]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(record), nil
}

// ExistsByHash checks if a record exists
func (m *Memory) ExistsByHash(_ context.Context, hash string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.records[hash]
	return ok, nil
}

// Insert stores a copy of the record
func (m *Memory) Insert(_ context.Context, record *StringRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.SHA256Hash]; ok {
		return ErrDuplicate
	}
	m.records[record.SHA256Hash] = cloneRecord(record)
	m.order = append(m.order, record.SHA256Hash)
	return nil
}

// Delete removes a record by hash
func (m *Memory) Delete(_ context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[hash]; !ok {
		return ErrNotFound
	}
	delete(m.records, hash)
	for i, h := range m.order {
		if h == hash {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListAll returns a snapshot of every record in insertion order
func (m *Memory) ListAll(_ context.Context) ([]*StringRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*StringRecord, 0, len(m.order))
	for _, hash := range m.order {
		records = append(records, cloneRecord(m.records[hash]))
	}
	return records, nil
}

// Disconnect is a no-op
func (m *Memory) Disconnect() error { return nil }

// Ping always succeeds
func (m *Memory) Ping() error { return nil }

func cloneRecord(r *StringRecord) *StringRecord {
	c := *r
	c.CharacterFrequencyMap = make(map[string]int, len(r.CharacterFrequencyMap))
	for k, v := range r.CharacterFrequencyMap {
		c.CharacterFrequencyMap[k] = v
	}
	return &c
}
