// {{RIPER-5-Enhanced:
//   Action: "Modified"
//   Task_ID: "Response Payload Formatting"
//   Timestamp: "2025-11-27T13:00:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Defined the wire shape of a record and of filter results"
//   Principle_Applied: "Aether-Engineering-DRY"
//   Quality_Check: "Single place that turns stored records into response bodies"
// }}

package utils

import (
	"time"

	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/analyzer"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/database"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/filter"
)

const (
	detailMatched   = "Strings retrieved successfully."
	detailNoMatch   = "No strings matched the filters."
	detailNoMatchNL = "No strings matched the applied natural-language filters."
)

// RecordPayload is the response body for a single record
type RecordPayload struct {
	ID         string              `json:"id"`
	Value      string              `json:"value"`
	Properties analyzer.Properties `json:"properties"`
	CreatedAt  string              `json:"created_at"`
}

// ListPayload is the response body for structured filtering
type ListPayload struct {
	Data           []RecordPayload  `json:"data"`
	Count          int              `json:"count"`
	FiltersApplied filter.FilterSet `json:"filters_applied"`
	Detail         string           `json:"detail"`
}

// InterpretedQuery echoes how a natural-language query was understood
type InterpretedQuery struct {
	Original      string           `json:"original"`
	ParsedFilters filter.FilterSet `json:"parsed_filters"`
}

// NaturalLanguagePayload is the response body for natural-language filtering
type NaturalLanguagePayload struct {
	Data             []RecordPayload  `json:"data"`
	Count            int              `json:"count"`
	InterpretedQuery InterpretedQuery `json:"interpreted_query"`
	Detail           string           `json:"detail"`
}

// FormatRecord formats a stored record into its response payload
func FormatRecord(record *database.StringRecord) RecordPayload {
	return RecordPayload{
		ID:         record.SHA256Hash,
		Value:      record.Value,
		Properties: analyzer.PropertiesOf(record),
		CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func formatRecords(records []*database.StringRecord) []RecordPayload {
	data := make([]RecordPayload, 0, len(records))
	for _, r := range records {
		data = append(data, FormatRecord(r))
	}
	return data
}

// FormatList formats the result of a structured filter request
func FormatList(records []*database.StringRecord, filters filter.FilterSet) ListPayload {
	detail := detailMatched
	if len(records) == 0 {
		detail = detailNoMatch
	}
	return ListPayload{
		Data:           formatRecords(records),
		Count:          len(records),
		FiltersApplied: filters,
		Detail:         detail,
	}
}

// FormatInterpretation formats the result of a natural-language filter request
func FormatInterpretation(res *analyzer.Interpretation) NaturalLanguagePayload {
	detail := detailMatched
	if len(res.Records) == 0 {
		detail = detailNoMatchNL
	}
	return NaturalLanguagePayload{
		Data:  formatRecords(res.Records),
		Count: len(res.Records),
		InterpretedQuery: InterpretedQuery{
			Original:      res.Original,
			ParsedFilters: res.Filters,
		},
		Detail: detail,
	}
}
