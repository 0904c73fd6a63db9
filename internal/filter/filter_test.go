package filter

import (
	"net/url"
	"testing"

	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(value string, length, words int, palindrome bool) *database.StringRecord {
	return &database.StringRecord{
		Value:        value,
		Length:       length,
		WordCount:    words,
		IsPalindrome: palindrome,
	}
}

func sampleRecords() []*database.StringRecord {
	return []*database.StringRecord{
		rec("racecar", 7, 1, true),
		rec("hello world", 11, 2, false),
		rec("A man a plan a canal Panama", 27, 7, true),
		rec("noon", 4, 1, true),
		rec("Go", 2, 1, false),
	}
}

func values(records []*database.StringRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Value)
	}
	return out
}

func TestApply_EmptyFilterSetIsIdentity(t *testing.T) {
	records := sampleRecords()
	got := Apply(records, FilterSet{})
	assert.Equal(t, records, got)
}

func TestApply_Predicates(t *testing.T) {
	tests := []struct {
		name    string
		filters FilterSet
		want    []string
	}{
		{"palindrome true", FilterSet{IsPalindrome: Bool(true)}, []string{"racecar", "A man a plan a canal Panama", "noon"}},
		{"palindrome false", FilterSet{IsPalindrome: Bool(false)}, []string{"hello world", "Go"}},
		{"word count", FilterSet{WordCount: Int(1)}, []string{"racecar", "noon", "Go"}},
		{"min length inclusive", FilterSet{MinLength: Int(7)}, []string{"racecar", "hello world", "A man a plan a canal Panama"}},
		{"max length inclusive", FilterSet{MaxLength: Int(4)}, []string{"noon", "Go"}},
		{"contains character case-insensitive", FilterSet{ContainsCharacter: String("P")}, []string{"A man a plan a canal Panama"}},
		{"contains substring", FilterSet{ContainsCharacter: String("wor")}, []string{"hello world"}},
		{"combined", FilterSet{IsPalindrome: Bool(true), MinLength: Int(5), WordCount: Int(1)}, []string{"racecar"}},
		{"nothing matches", FilterSet{MinLength: Int(100)}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, values(Apply(sampleRecords(), tt.filters)))
		})
	}
}

func TestApply_CompositionIsOrderIndependent(t *testing.T) {
	records := sampleRecords()
	both := Apply(records, FilterSet{IsPalindrome: Bool(true), MinLength: Int(3)})
	palFirst := Apply(Apply(records, FilterSet{IsPalindrome: Bool(true)}), FilterSet{MinLength: Int(3)})
	lenFirst := Apply(Apply(records, FilterSet{MinLength: Int(3)}), FilterSet{IsPalindrome: Bool(true)})

	assert.Equal(t, values(both), values(palFirst))
	assert.Equal(t, values(both), values(lenFirst))
}

func TestCheckConflicts(t *testing.T) {
	assert.NoError(t, FilterSet{}.CheckConflicts())
	assert.NoError(t, FilterSet{MinLength: Int(3), MaxLength: Int(3)}.CheckConflicts())
	assert.NoError(t, FilterSet{MinLength: Int(11)}.CheckConflicts())

	err := FilterSet{MinLength: Int(11), MaxLength: Int(4)}.CheckConflicts()
	var conflict *ConflictingFilterError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 11, conflict.MinLength)
	assert.Equal(t, 4, conflict.MaxLength)
}

func TestParseNaturalLanguage(t *testing.T) {
	tests := []struct {
		query string
		want  FilterSet
	}{
		{"show me all palindromic strings", FilterSet{IsPalindrome: Bool(true)}},
		{"strings longer than 5", FilterSet{MinLength: Int(6)}},
		{"single word strings containing the letter a", FilterSet{WordCount: Int(1), ContainsCharacter: String("a")}},
		{"gibberish query xyz", FilterSet{}},
		{"longer than 10 and shorter than 5", FilterSet{MinLength: Int(11), MaxLength: Int(4)}},
		{"  ONE WORD PALINDROME  ", FilterSet{IsPalindrome: Bool(true), WordCount: Int(1)}},
		{"strings containing the letter Z", FilterSet{ContainsCharacter: String("z")}},
		{"strings that contain the first vowel", FilterSet{ContainsCharacter: String("a")}},
		{"first vowel and the letter e", FilterSet{ContainsCharacter: String("e")}},
		{"shorter than 0", FilterSet{MaxLength: Int(-1)}},
		{"longer than 99999999999999999999999", FilterSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNaturalLanguage(tt.query))
		})
	}
}

func TestParseNaturalLanguage_UnparseableIsEmpty(t *testing.T) {
	assert.True(t, ParseNaturalLanguage("").IsEmpty())
	assert.True(t, ParseNaturalLanguage("what is the weather").IsEmpty())
}

func TestParseQueryParams(t *testing.T) {
	f, err := ParseQueryParams(url.Values{
		"is_palindrome":      {"TRUE"},
		"min_length":         {"3"},
		"max_length":         {"10"},
		"word_count":         {"1"},
		"contains_character": {" A "},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, FilterSet{
		IsPalindrome:      Bool(true),
		MinLength:         Int(3),
		MaxLength:         Int(10),
		WordCount:         Int(1),
		ContainsCharacter: String("a"),
	}, f)

	f, err = ParseQueryParams(url.Values{}, true)
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())
}

func TestParseQueryParams_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		param  string
	}{
		{"bad bool", url.Values{"is_palindrome": {"yes"}}, ParamIsPalindrome},
		{"bad min", url.Values{"min_length": {"abc"}}, ParamMinLength},
		{"bad max", url.Values{"max_length": {"1.5"}}, ParamMaxLength},
		{"bad word count", url.Values{"word_count": {""}}, ParamWordCount},
		{"empty character", url.Values{"contains_character": {"  "}}, ParamContainsCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQueryParams(tt.params, false)
			var perr *ParamError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.param, perr.Param)
		})
	}
}

func TestParseQueryParams_UnknownKeys(t *testing.T) {
	params := url.Values{"min_length": {"2"}, "colour": {"red"}}

	f, err := ParseQueryParams(params, false)
	require.NoError(t, err)
	assert.Equal(t, FilterSet{MinLength: Int(2)}, f)

	_, err = ParseQueryParams(params, true)
	var perr *ParamError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "colour", perr.Param)
}
