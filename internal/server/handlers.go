// {{RIPER-5-Enhanced:
//   Action: "Added"
//   Task_ID: "String API Handlers"
//   Timestamp: "2025-11-27T13:35:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Mapped service results and error taxonomy onto HTTP status codes"
//   Principle_Applied: "Aether-Engineering-SOLID-S, RESTful API"
//   Quality_Check: "Internal failures logged and reported without leaking details"
// }}

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/analyzer"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/database"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/filter"
	"github.com/Abraham-Franklin/HNG-13-Stage-One/internal/utils"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	msgInvalidBody    = "Invalid request body."
	msgMissingValue   = `Missing "value" field.`
	msgValueNotString = `"value" must be a string.`
	msgDuplicate      = "String already exists in the system."
	msgNotFound       = "String does not exist in the system."
	msgUnparseable    = "Unable to parse natural language query."
	msgConflicting    = "Conflicting filters detected."
	msgInternal       = "Internal server error."
)

// handleCreate analyzes and stores a new string
func (s *Server) handleCreate(c *gin.Context) {
	var requestBody struct {
		Value json.RawMessage `json:"value"`
	}

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		log.Debugf("invalid create body: %v", err)
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if len(requestBody.Value) == 0 || string(requestBody.Value) == "null" {
		respondError(c, http.StatusBadRequest, msgMissingValue)
		return
	}

	var value string
	if err := json.Unmarshal(requestBody.Value, &value); err != nil {
		respondError(c, http.StatusUnprocessableEntity, msgValueNotString)
		return
	}

	record, err := s.service.Create(c.Request.Context(), value)
	if err != nil {
		s.handleError(c, err, "create string")
		return
	}

	c.JSON(http.StatusCreated, utils.FormatRecord(record))
}

// handleGet retrieves a string by value
func (s *Server) handleGet(c *gin.Context) {
	record, err := s.service.Get(c.Request.Context(), c.Param("value"))
	if err != nil {
		s.handleError(c, err, "get string")
		return
	}

	c.JSON(http.StatusOK, utils.FormatRecord(record))
}

// handleDelete deletes a string by value
func (s *Server) handleDelete(c *gin.Context) {
	if err := s.service.Delete(c.Request.Context(), c.Param("value")); err != nil {
		s.handleError(c, err, "delete string")
		return
	}

	c.Status(http.StatusNoContent)
}

// handleList lists strings matching structured query filters
func (s *Server) handleList(c *gin.Context) {
	filters, err := filter.ParseQueryParams(c.Request.URL.Query(), s.cfg.StrictFilters)
	if err != nil {
		s.handleError(c, err, "parse filters")
		return
	}

	records, err := s.service.List(c.Request.Context(), filters)
	if err != nil {
		s.handleError(c, err, "list strings")
		return
	}

	c.JSON(http.StatusOK, utils.FormatList(records, filters))
}

// handleNaturalLanguage lists strings matching a free-text query
func (s *Server) handleNaturalLanguage(c *gin.Context) {
	res, err := s.service.Interpret(c.Request.Context(), c.Query("query"))
	if err != nil {
		s.handleError(c, err, "natural language filter")
		return
	}

	c.JSON(http.StatusOK, utils.FormatInterpretation(res))
}

// handleError maps an error to its status code; unknown errors become a generic 500
func (s *Server) handleError(c *gin.Context, err error, action string) {
	var (
		validationErr *analyzer.ValidationError
		paramErr      *filter.ParamError
		conflictErr   *filter.ConflictingFilterError
	)

	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &paramErr):
		respondError(c, http.StatusBadRequest, paramErr.Message)
	case errors.Is(err, analyzer.ErrUnparseableQuery):
		respondError(c, http.StatusBadRequest, msgUnparseable)
	case errors.As(err, &conflictErr):
		respondError(c, http.StatusUnprocessableEntity, msgConflicting)
	case errors.Is(err, database.ErrDuplicate):
		respondError(c, http.StatusConflict, msgDuplicate)
	case errors.Is(err, database.ErrNotFound):
		respondError(c, http.StatusNotFound, msgNotFound)
	default:
		log.WithField("request_id", c.GetString(requestIDKey)).Errorf("%s: %v", action, err)
		respondError(c, http.StatusInternalServerError, msgInternal)
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
