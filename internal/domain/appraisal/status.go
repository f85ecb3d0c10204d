package appraisal

import "fmt"

// Status is the closed set of appraisal workflow states. The workflow is a
// strict forward sequence with no skipping and no backward moves; statusOrder
// is the single source of truth for that sequence.
type Status string

const (
	StatusDraft               Status = "draft"
	StatusSubmitted           Status = "submitted"
	StatusSelfAssessment      Status = "self_assessment"
	StatusAppraiserEvaluation Status = "appraiser_evaluation"
	StatusReviewerEvaluation  Status = "reviewer_evaluation"
	StatusComplete            Status = "complete"
)

var statusOrder = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusSelfAssessment,
	StatusAppraiserEvaluation,
	StatusReviewerEvaluation,
	StatusComplete,
}

// Statuses returns the full workflow sequence in order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

func (s Status) Valid() bool {
	for _, candidate := range statusOrder {
		if s == candidate {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusComplete
}

// Next returns the only legal target status, or false when s is terminal or
// unknown.
func (s Status) Next() (Status, bool) {
	for i, candidate := range statusOrder {
		if s == candidate && i+1 < len(statusOrder) {
			return statusOrder[i+1], true
		}
	}
	return "", false
}

// ParseStatus maps a wire value onto the enumeration. Display strings are
// never accepted here; the persistence and transport layers share this one
// canonical casing.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.Valid() {
		return "", fmt.Errorf("unknown appraisal status %q", value)
	}
	return s, nil
}
