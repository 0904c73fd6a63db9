// {{RIPER-5-Enhanced:
//   Action: "Modified"
//   Task_ID: "Natural Language Phrase Filter"
//   Timestamp: "2025-11-27T11:20:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Reworked keyword matching into ordered phrase rules producing filters"
//   Principle_Applied: "Aether-Engineering-SOLID-S"
//   Quality_Check: "Cumulative rules with set-if-absent default for the vowel phrase"
// }}

package filter

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	longerThanRe  = regexp.MustCompile(`longer than (\d+)`)
	shorterThanRe = regexp.MustCompile(`shorter than (\d+)`)
	letterRe      = regexp.MustCompile(`letter ([\p{L}\p{N}_])`)
)

// phraseRule mutates the filter set when it recognizes something in q
type phraseRule func(q string, f *FilterSet)

// phraseRules run in order; later rules may rely on earlier ones
var phraseRules = []phraseRule{
	func(q string, f *FilterSet) {
		if containsAny(q, "palindrome", "palindromic") {
			f.IsPalindrome = Bool(true)
		}
	},
	func(q string, f *FilterSet) {
		if containsAny(q, "single word", "one word") {
			f.WordCount = Int(1)
		}
	},
	func(q string, f *FilterSet) {
		if n, ok := captureInt(longerThanRe, q); ok && n < math.MaxInt {
			f.MinLength = Int(n + 1)
		}
	},
	func(q string, f *FilterSet) {
		if n, ok := captureInt(shorterThanRe, q); ok {
			f.MaxLength = Int(n - 1)
		}
	},
	func(q string, f *FilterSet) {
		if m := letterRe.FindStringSubmatch(q); m != nil {
			f.ContainsCharacter = String(strings.ToLower(m[1]))
		}
	},
	func(q string, f *FilterSet) {
		if strings.Contains(q, "first vowel") && f.ContainsCharacter == nil {
			f.ContainsCharacter = String("a")
		}
	},
}

// ParseNaturalLanguage maps a free-text query onto a FilterSet.
// An empty result means the query could not be interpreted, not "match everything".
func ParseNaturalLanguage(query string) FilterSet {
	q := strings.ToLower(strings.TrimSpace(query))

	var f FilterSet
	for _, rule := range phraseRules {
		rule(q, &f)
	}
	return f
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// captureInt returns the first group of re as an int; numbers that overflow do not match
func captureInt(re *regexp.Regexp, q string) (int, bool) {
	m := re.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
