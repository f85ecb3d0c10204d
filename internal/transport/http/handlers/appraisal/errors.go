package appraisalhandler

import (
	"errors"
	"net/http"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/catalog"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

// writeDomainError maps engine errors onto HTTP statuses. Validation and
// precondition failures come back as 422 with enough detail to fix the
// request; authorization failures are 403; concurrency and ordering
// conflicts are 409.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	var transitionErr *appraisal.InvalidTransitionError
	var roleErr *appraisal.UnauthorizedRoleError
	var weightErr *appraisal.WeightageError
	var assessErr *appraisal.IncompleteAssessmentError
	var evalErr *appraisal.IncompleteEvaluationError
	var reviewErr *appraisal.IncompleteReviewError
	var participantErr *appraisal.ParticipantConflictError
	var dateErr *appraisal.DateRangeError
	var fieldErr *appraisal.FieldAccessError

	switch {
	case errors.Is(err, appraisal.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "appraisal not found", requestID)
	case errors.Is(err, appraisal.ErrConcurrentModification):
		api.Fail(w, http.StatusConflict, "concurrent_modification", "the appraisal was modified by another request; reload and retry", requestID)
	case errors.Is(err, appraisal.ErrDraftOnly):
		api.Fail(w, http.StatusConflict, "draft_only", "this operation is only allowed while the appraisal is a draft", requestID)
	case errors.Is(err, appraisal.ErrGoalNotFound):
		api.Fail(w, http.StatusUnprocessableEntity, "goal_not_found", "a referenced goal does not belong to this appraisal", requestID)
	case errors.Is(err, appraisal.ErrInvalidRating):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_rating", "ratings must be between 1 and 5", requestID)
	case errors.Is(err, catalog.ErrTemplateNotFound):
		api.Fail(w, http.StatusUnprocessableEntity, "template_not_found", "a referenced goal template does not exist", requestID)
	case errors.As(err, &transitionErr):
		api.FailWithDetails(w, http.StatusConflict, "invalid_transition", transitionErr.Error(),
			map[string]any{"from": transitionErr.From, "to": transitionErr.To}, requestID)
	case errors.As(err, &roleErr):
		api.Fail(w, http.StatusForbidden, "forbidden", roleErr.Error(), requestID)
	case errors.As(err, &fieldErr):
		api.FailWithDetails(w, http.StatusForbidden, "field_access_denied", fieldErr.Error(),
			map[string]any{"field": fieldErr.Field, "status": fieldErr.Status}, requestID)
	case errors.As(err, &weightErr):
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "weightage_invalid", weightErr.Error(),
			map[string]any{"total": weightErr.Total, "required": appraisal.TotalWeightage}, requestID)
	case errors.As(err, &assessErr):
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "assessment_incomplete", assessErr.Error(),
			map[string]any{"goalIds": assessErr.GoalIDs}, requestID)
	case errors.As(err, &evalErr):
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "evaluation_incomplete", evalErr.Error(),
			map[string]any{"goalIds": evalErr.GoalIDs, "missingOverall": evalErr.MissingOverall}, requestID)
	case errors.As(err, &reviewErr):
		api.Fail(w, http.StatusUnprocessableEntity, "review_incomplete", reviewErr.Error(), requestID)
	case errors.As(err, &participantErr):
		api.Fail(w, http.StatusUnprocessableEntity, "participant_conflict", participantErr.Error(), requestID)
	case errors.As(err, &dateErr):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_date_range", dateErr.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
