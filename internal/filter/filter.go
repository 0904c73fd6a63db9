// {{RIPER-5-Enhanced:
//   Action: "Added"
//   Task_ID: "Structured Filter Set"
//   Timestamp: "2025-11-27T11:00:00Z"
//   Authoring_Role: "AR"
//   Analysis_Performed: "Closed the filter vocabulary into one optional field per predicate"
//   Principle_Applied: "Aether-Engineering-SOLID-O, Make Illegal States Unrepresentable"
//   Quality_Check: "AND composition, order-independent evaluation, explicit conflict check"
// }}

package filter

import (
	"fmt"
	"strings"

	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/database"
)

// FilterSet is a set of AND-composed predicates. A nil field is not applied.
type FilterSet struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// ConflictingFilterError reports filters that can never match together
type ConflictingFilterError struct {
	MinLength int
	MaxLength int
}

func (e *ConflictingFilterError) Error() string {
	return fmt.Sprintf("conflicting filters: min_length %d is greater than max_length %d", e.MinLength, e.MaxLength)
}

// IsEmpty reports whether no predicate is set
func (f FilterSet) IsEmpty() bool {
	return f.IsPalindrome == nil &&
		f.MinLength == nil &&
		f.MaxLength == nil &&
		f.WordCount == nil &&
		f.ContainsCharacter == nil
}

// CheckConflicts returns a *ConflictingFilterError when min_length > max_length
func (f FilterSet) CheckConflicts() error {
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return &ConflictingFilterError{MinLength: *f.MinLength, MaxLength: *f.MaxLength}
	}
	return nil
}

// Match reports whether a record satisfies every set predicate
func (f FilterSet) Match(record *database.StringRecord) bool {
	if f.IsPalindrome != nil && record.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.WordCount != nil && record.WordCount != *f.WordCount {
		return false
	}
	if f.MinLength != nil && record.Length < *f.MinLength {
		return false
	}
	if f.MaxLength != nil && record.Length > *f.MaxLength {
		return false
	}
	if f.ContainsCharacter != nil {
		needle := strings.ToLower(*f.ContainsCharacter)
		if !strings.Contains(strings.ToLower(strings.TrimSpace(record.Value)), needle) {
			return false
		}
	}
	return true
}

// Apply returns the records matching every predicate in f, preserving input order.
// An empty filter set returns the input unchanged.
func Apply(records []*database.StringRecord, f FilterSet) []*database.StringRecord {
	if f.IsEmpty() {
		return records
	}

	matched := make([]*database.StringRecord, 0, len(records))
	for _, record := range records {
		if f.Match(record) {
			matched = append(matched, record)
		}
	}
	return matched
}

// Bool returns a pointer to b
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n
func Int(n int) *int { return &n }

// String returns a pointer to s
func String(s string) *string { return &s }
