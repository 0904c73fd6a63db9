// {{RIPER-5-Enhanced:
//   Action: "Modified"
//   Task_ID: "Query Parameter Filter Factory"
//   Timestamp: "2025-11-27T11:40:00Z"
//   Authoring_Role: "AR"
//   Analysis_Performed: "Built FilterSet from typed query parameters with strict/lenient modes"
//   Principle_Applied: "Aether-Engineering-SOLID-O (Open/Closed Principle)"
//   Quality_Check: "Malformed values rejected before any filtering happens"
// }}

package filter

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query parameter names understood by ParseQueryParams
const (
	ParamIsPalindrome      = "is_palindrome"
	ParamMinLength         = "min_length"
	ParamMaxLength         = "max_length"
	ParamWordCount         = "word_count"
	ParamContainsCharacter = "contains_character"
)

var knownParams = map[string]bool{
	ParamIsPalindrome:      true,
	ParamMinLength:         true,
	ParamMaxLength:         true,
	ParamWordCount:         true,
	ParamContainsCharacter: true,
}

// ParamError reports a malformed or unknown query parameter
type ParamError struct {
	Param   string
	Message string
}

func (e *ParamError) Error() string {
	return e.Message
}

// ParseQueryParams builds a FilterSet from query parameters. Unknown parameters
// are ignored unless strict is set, in which case they are rejected.
func ParseQueryParams(params url.Values, strict bool) (FilterSet, error) {
	var f FilterSet

	if strict {
		var unknown []string
		for key := range params {
			if !knownParams[key] {
				unknown = append(unknown, key)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return f, &ParamError{
				Param:   unknown[0],
				Message: fmt.Sprintf("Unknown filter parameter(s): %s.", strings.Join(unknown, ", ")),
			}
		}
	}

	if params.Has(ParamIsPalindrome) {
		switch strings.ToLower(params.Get(ParamIsPalindrome)) {
		case "true":
			f.IsPalindrome = Bool(true)
		case "false":
			f.IsPalindrome = Bool(false)
		default:
			return f, &ParamError{
				Param:   ParamIsPalindrome,
				Message: "Invalid value for is_palindrome; must be true or false.",
			}
		}
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{ParamMinLength, &f.MinLength},
		{ParamMaxLength, &f.MaxLength},
		{ParamWordCount, &f.WordCount},
	}
	for _, p := range ints {
		if !params.Has(p.name) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(params.Get(p.name)))
		if err != nil {
			return f, &ParamError{
				Param:   p.name,
				Message: fmt.Sprintf("Invalid %s; must be integer.", p.name),
			}
		}
		*p.dst = Int(n)
	}

	if params.Has(ParamContainsCharacter) {
		c := strings.TrimSpace(params.Get(ParamContainsCharacter))
		if c == "" {
			return f, &ParamError{
				Param:   ParamContainsCharacter,
				Message: "contains_character must be a non-empty string.",
			}
		}
		f.ContainsCharacter = String(strings.ToLower(c))
	}

	return f, nil
}
