package appraisal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("appraisal not found")

	// ErrConcurrentModification signals that a competing writer won the
	// version check. It is retryable: callers may re-fetch and re-apply,
	// unlike every other error in this package.
	ErrConcurrentModification = errors.New("appraisal was modified concurrently")

	ErrDraftOnly    = errors.New("operation is only allowed while the appraisal is in draft")
	ErrGoalNotFound = errors.New("goal assignment not found on appraisal")
)

// InvalidTransitionError covers wrong ordering and terminal-state requests.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	if e.From.Terminal() {
		return fmt.Sprintf("appraisal is complete; no transition from %s is possible", e.From)
	}
	return fmt.Sprintf("cannot transition appraisal from %s to %s", e.From, e.To)
}

// UnauthorizedRoleError covers a correctly ordered transition requested by
// the wrong participant.
type UnauthorizedRoleError struct {
	Role     Role
	Required Role
	To       Status
}

func (e *UnauthorizedRoleError) Error() string {
	return fmt.Sprintf("role %s may not request transition to %s (requires %s)", e.Role.describe(), e.To, e.Required)
}

// WeightageError reports a goal set that does not sum to exactly 100.
// Total carries the actual sum so callers can render an actionable message.
type WeightageError struct {
	Total int
	Empty bool
}

func (e *WeightageError) Error() string {
	if e.Empty {
		return "appraisal has no goals; at least one weighted goal is required"
	}
	return fmt.Sprintf("goal weightage must total exactly 100, got %d", e.Total)
}

// IncompleteAssessmentError lists goals still missing a self rating or
// self comment when the appraisee requests to exit self assessment.
type IncompleteAssessmentError struct {
	GoalIDs []string
}

func (e *IncompleteAssessmentError) Error() string {
	return fmt.Sprintf("self assessment incomplete for goals: %s", strings.Join(e.GoalIDs, ", "))
}

// IncompleteEvaluationError lists goals missing appraiser inputs, and flags a
// missing overall rating or comment, when the appraiser requests to exit
// evaluation.
type IncompleteEvaluationError struct {
	GoalIDs        []string
	MissingOverall bool
}

func (e *IncompleteEvaluationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.GoalIDs) > 0 {
		parts = append(parts, "goals missing appraiser rating or comment: "+strings.Join(e.GoalIDs, ", "))
	}
	if e.MissingOverall {
		parts = append(parts, "overall rating and comment are required")
	}
	return "appraiser evaluation incomplete: " + strings.Join(parts, "; ")
}

// IncompleteReviewError flags missing reviewer overall fields on the final
// transition to complete.
type IncompleteReviewError struct {
	MissingRating  bool
	MissingComment bool
}

func (e *IncompleteReviewError) Error() string {
	parts := make([]string, 0, 2)
	if e.MissingRating {
		parts = append(parts, "overall rating")
	}
	if e.MissingComment {
		parts = append(parts, "overall comment")
	}
	return "review incomplete: reviewer " + strings.Join(parts, " and ") + " required"
}

// ParticipantConflictError reports two participant roles resolving to the
// same employee.
type ParticipantConflictError struct {
	EmployeeID string
}

func (e *ParticipantConflictError) Error() string {
	return fmt.Sprintf("appraisee, appraiser and reviewer must be distinct; employee %s holds more than one role", e.EmployeeID)
}

// DateRangeError reports an end date before the start date.
type DateRangeError struct {
	Start string
	End   string
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("appraisal end date %s is before start date %s", e.End, e.Start)
}
