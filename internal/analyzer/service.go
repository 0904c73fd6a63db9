// {{RIPER-5-Enhanced:
//   Action: "Added"
//   Task_ID: "String Analyzer Service"
//   Timestamp: "2025-11-27T12:00:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Composed property computation, record store and filter engine"
//   Principle_Applied: "Aether-Engineering-SOLID-D (Dependency Inversion)"
//   Quality_Check: "Store errors surfaced unchanged, unexpected failures logged"
// }}

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/database"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/filter"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// ErrUnparseableQuery is returned when no phrase rule matches a natural-language query
var ErrUnparseableQuery = errors.New("unable to parse natural language query")

// Service is the application layer over a record store
type Service struct {
	db  database.Database
	now func() time.Time
}

// NewService creates a service backed by db
func NewService(db database.Database) *Service {
	return &Service{db: db, now: time.Now}
}

// Interpretation is the result of a natural-language filter request
type Interpretation struct {
	Original string
	Filters  filter.FilterSet
	Records  []*database.StringRecord
}

// Create analyzes raw and stores it. Returns database.ErrDuplicate if the value exists.
func (s *Service) Create(ctx context.Context, raw string) (*database.StringRecord, error) {
	record, err := NewRecord(raw, s.now())
	if err != nil {
		return nil, err
	}

	exists, err := s.db.ExistsByHash(ctx, record.SHA256Hash)
	if err != nil {
		return nil, fmt.Errorf("check existing record: %w", err)
	}
	if exists {
		return nil, database.ErrDuplicate
	}

	// Insert repeats the check atomically for concurrent submissions
	if err := s.db.Insert(ctx, record); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("insert record: %w", err)
	}

	metrics.RecordsCreated.Inc()
	log.Debugf("stored string %s (length %d)", record.SHA256Hash, record.Length)
	return record, nil
}

// Get looks up the record whose trimmed value equals raw's trimmed value
func (s *Service) Get(ctx context.Context, raw string) (*database.StringRecord, error) {
	hash, _, err := HashValue(raw)
	if err != nil {
		return nil, err
	}
	return s.db.FindByHash(ctx, hash)
}

// Delete removes the record for raw. Returns database.ErrNotFound if absent.
func (s *Service) Delete(ctx context.Context, raw string) error {
	hash, _, err := HashValue(raw)
	if err != nil {
		return err
	}
	if err := s.db.Delete(ctx, hash); err != nil {
		return err
	}

	metrics.RecordsDeleted.Inc()
	log.Debugf("deleted string %s", hash)
	return nil
}

// List returns every stored record matching filters
func (s *Service) List(ctx context.Context, filters filter.FilterSet) ([]*database.StringRecord, error) {
	records, err := s.db.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	matched := filter.Apply(records, filters)
	log.Debugf("filtered %d strings down to %d", len(records), len(matched))
	return matched, nil
}

// Interpret parses a natural-language query and lists the matching records.
// Unparseable queries yield ErrUnparseableQuery, contradictory ones a
// *filter.ConflictingFilterError; neither touches the store.
func (s *Service) Interpret(ctx context.Context, query string) (*Interpretation, error) {
	if query == "" {
		return nil, validationf("Missing 'query' parameter.")
	}

	filters := filter.ParseNaturalLanguage(query)
	if filters.IsEmpty() {
		metrics.NLQueries.WithLabelValues("unparseable").Inc()
		return nil, ErrUnparseableQuery
	}
	if err := filters.CheckConflicts(); err != nil {
		metrics.NLQueries.WithLabelValues("conflicting").Inc()
		return nil, err
	}
	metrics.NLQueries.WithLabelValues("parsed").Inc()

	records, err := s.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &Interpretation{
		Original: query,
		Filters:  filters,
		Records:  records,
	}, nil
}
