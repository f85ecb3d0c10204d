package shared

import (
	"net/http"
	"strings"
	"time"

	"appraisal/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validator accumulates field-level issues so a response can report every
// problem at once.
type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Add(field, reason string) {
	v.issues = append(v.issues, ValidationIssue{Field: field, Reason: reason})
}

func (v *Validator) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

// dateFormats are the layouts the API documents for period boundaries.
var dateFormats = []string{"2006-01-02", time.RFC3339}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateFormats {
		if parsed, err := time.Parse(layout, trimmed); err == nil && !parsed.IsZero() {
			return parsed, true
		}
	}
	v.Add(field, "must be a valid date in YYYY-MM-DD format")
	return time.Time{}, false
}

func (v *Validator) HasIssues() bool {
	return len(v.issues) > 0
}

// Reject writes the validation failure response when issues exist and
// reports whether it did so.
func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": v.issues},
		requestID,
	)
	return true
}
