// {{RIPER-5-Enhanced:
//   Action: "Added"
//   Task_ID: "String Property Computation"
//   Timestamp: "2025-11-27T10:40:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Defined normalization, palindrome, frequency and hash derivation"
//   Principle_Applied: "Aether-Engineering-SOLID-S, Pure Functions"
//   Quality_Check: "Deterministic output for identical trimmed input"
// }}

package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/database"
)

// ValidationError reports malformed or missing input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Properties holds everything derived from a trimmed value
type Properties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// Normalize trims and lower-cases a value
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// HashValue returns the hex SHA-256 of the trimmed value and the trimmed value itself.
// A value that is empty after trimming is rejected.
func HashValue(raw string) (hash string, trimmed string, err error) {
	trimmed = strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", &ValidationError{Message: `"value" cannot be empty.`}
	}
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:]), trimmed, nil
}

// IsPalindrome reports whether value reads the same backwards,
// ignoring case and all whitespace
func IsPalindrome(value string) bool {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, Normalize(value))

	runes := []rune(stripped)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}

// Compute derives the properties of raw. It fails only when raw is empty after trimming.
func Compute(raw string) (*Properties, error) {
	hash, trimmed, err := HashValue(raw)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(trimmed)
	freq := make(map[string]int)
	for _, r := range lower {
		freq[string(r)]++
	}

	return &Properties{
		Length:                utf8.RuneCountInString(trimmed),
		IsPalindrome:          IsPalindrome(trimmed),
		UniqueCharacters:      len(freq),
		WordCount:             len(strings.Fields(trimmed)),
		SHA256Hash:            hash,
		CharacterFrequencyMap: freq,
	}, nil
}

// NewRecord computes the properties of raw and stamps a creation time
func NewRecord(raw string, now time.Time) (*database.StringRecord, error) {
	props, err := Compute(raw)
	if err != nil {
		return nil, err
	}

	return &database.StringRecord{
		Value:                 strings.TrimSpace(raw),
		Length:                props.Length,
		IsPalindrome:          props.IsPalindrome,
		UniqueCharacters:      props.UniqueCharacters,
		WordCount:             props.WordCount,
		SHA256Hash:            props.SHA256Hash,
		CharacterFrequencyMap: props.CharacterFrequencyMap,
		CreatedAt:             now.UTC(),
	}, nil
}

// PropertiesOf extracts the derived properties from a stored record
func PropertiesOf(record *database.StringRecord) Properties {
	return Properties{
		Length:                record.Length,
		IsPalindrome:          record.IsPalindrome,
		UniqueCharacters:      record.UniqueCharacters,
		WordCount:             record.WordCount,
		SHA256Hash:            record.SHA256Hash,
		CharacterFrequencyMap: record.CharacterFrequencyMap,
	}
}

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
