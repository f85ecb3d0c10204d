package appraisalhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/employee"
	"appraisal/internal/domain/notifications"
	"appraisal/internal/domain/reports"
	"appraisal/internal/platform/metrics"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service   *appraisal.Service
	Employees *employee.Service
	Reports   *reports.Service
	Notify    *notifications.Service
	Audit     *audit.Service
	Metrics   *metrics.Collector
	Replays   *middleware.IdempotencyStore
}

func NewHandler(service *appraisal.Service, employees *employee.Service, reportsSvc *reports.Service, notify *notifications.Service, auditSvc *audit.Service, collector *metrics.Collector, replays *middleware.IdempotencyStore) *Handler {
	return &Handler{
		Service:   service,
		Employees: employees,
		Reports:   reportsSvc,
		Notify:    notify,
		Audit:     auditSvc,
		Metrics:   collector,
		Replays:   replays,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisals", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{appraisalID}", h.handleGet)
		r.Put("/{appraisalID}/draft", h.handleSaveDraft)
		r.Put("/{appraisalID}/inputs", h.handleApplyInputs)
		r.Post("/{appraisalID}/transition", h.handleTransition)
		r.Post("/{appraisalID}/goals/import", h.handleImportTemplates)
		r.Delete("/{appraisalID}", h.handleDelete)
		r.Get("/{appraisalID}/summary.pdf", h.handleSummaryPDF)
	})
}

type createRequest struct {
	AppraiseeID string `json:"appraiseeId"`
	ReviewerID  string `json:"reviewerId"`
	TypeID      string `json:"typeId"`
	RangeID     string `json:"rangeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("appraiseeId", payload.AppraiseeID)
	v.Required("reviewerId", payload.ReviewerID)
	v.Required("typeId", payload.TypeID)
	startDate, _ := v.Date("startDate", payload.StartDate)
	endDate, _ := v.Date("endDate", payload.EndDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	for field, id := range map[string]string{"appraiseeId": payload.AppraiseeID, "reviewerId": payload.ReviewerID} {
		ok, err := h.Employees.Exists(r.Context(), id)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to verify participants", middleware.GetRequestID(r.Context()))
			return
		}
		if !ok {
			api.Fail(w, http.StatusUnprocessableEntity, "unknown_employee", field+" does not reference a known employee", middleware.GetRequestID(r.Context()))
			return
		}
	}

	created, err := h.Service.CreateDraft(r.Context(), user.EmployeeID, appraisal.CreateParams{
		AppraiseeID: payload.AppraiseeID,
		ReviewerID:  payload.ReviewerID,
		TypeID:      payload.TypeID,
		RangeID:     payload.RangeID,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	h.record(r, user.UserID, "appraisal.create", created.ID, nil, map[string]any{
		"appraiseeId": created.AppraiseeID,
		"reviewerId":  created.ReviewerID,
		"typeId":      created.TypeID,
	})

	api.Created(w, appraisal.NewView(created, appraisal.RoleAppraiser), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	summaries, err := h.Service.ListForParticipant(r.Context(), user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "appraisal_list_failed", "failed to list appraisals", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summaries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	view, err := h.Service.Get(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

type goalPayload struct {
	ID          string   `json:"id"`
	GoalID      string   `json:"goalId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Importance  string   `json:"importance"`
	Weightage   int      `json:"weightage"`
	CategoryIDs []string `json:"categoryIds"`
}

type draftRequest struct {
	AppraiseeID string        `json:"appraiseeId"`
	ReviewerID  string        `json:"reviewerId"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Goals       []goalPayload `json:"goals"`
}

func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	appraisalID := chi.URLParam(r, "appraisalID")

	var payload draftRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	edit := appraisal.DraftEdit{
		AppraiseeID: payload.AppraiseeID,
		ReviewerID:  payload.ReviewerID,
	}
	v := shared.NewValidator()
	if payload.StartDate != "" {
		if parsed, ok := v.Date("startDate", payload.StartDate); ok {
			edit.StartDate = &parsed
		}
	}
	if payload.EndDate != "" {
		if parsed, ok := v.Date("endDate", payload.EndDate); ok {
			edit.EndDate = &parsed
		}
	}
	for i, goal := range payload.Goals {
		if goal.Title == "" {
			v.Add(fmt.Sprintf("goals[%d].title", i), "is required")
		}
		if goal.Weightage <= 0 {
			v.Add(fmt.Sprintf("goals[%d].weightage", i), "must be a positive integer")
		}
		edit.Goals = append(edit.Goals, appraisal.GoalAssignment{
			ID:     goal.ID,
			GoalID: goal.GoalID,
			Goal: appraisal.Goal{
				ID:          goal.GoalID,
				Title:       goal.Title,
				Description: goal.Description,
				Importance:  appraisal.Importance(goal.Importance),
				Weightage:   goal.Weightage,
				CategoryIDs: goal.CategoryIDs,
			},
		})
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	view, err := h.Service.SaveDraft(r.Context(), appraisalID, user.EmployeeID, edit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	h.record(r, user.UserID, "appraisal.draft.save", appraisalID, nil, map[string]any{"goals": len(payload.Goals)})
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

type goalInputPayload struct {
	GoalID           string  `json:"goalId"`
	SelfRating       *int    `json:"selfRating"`
	SelfComment      *string `json:"selfComment"`
	AppraiserRating  *int    `json:"appraiserRating"`
	AppraiserComment *string `json:"appraiserComment"`
}

type inputsRequest struct {
	Goals                   []goalInputPayload `json:"goals"`
	AppraiserOverallRating  *int               `json:"appraiserOverallRating"`
	AppraiserOverallComment *string            `json:"appraiserOverallComment"`
	ReviewerOverallRating   *int               `json:"reviewerOverallRating"`
	ReviewerOverallComment  *string            `json:"reviewerOverallComment"`
}

func (h *Handler) handleApplyInputs(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	appraisalID := chi.URLParam(r, "appraisalID")

	var payload inputsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	inputs := appraisal.StageInputs{
		AppraiserOverallRating:  payload.AppraiserOverallRating,
		AppraiserOverallComment: payload.AppraiserOverallComment,
		ReviewerOverallRating:   payload.ReviewerOverallRating,
		ReviewerOverallComment:  payload.ReviewerOverallComment,
	}
	for _, goal := range payload.Goals {
		inputs.Goals = append(inputs.Goals, appraisal.GoalInput{
			GoalID:           goal.GoalID,
			SelfRating:       goal.SelfRating,
			SelfComment:      goal.SelfComment,
			AppraiserRating:  goal.AppraiserRating,
			AppraiserComment: goal.AppraiserComment,
		})
	}

	view, err := h.Service.ApplyInputs(r.Context(), appraisalID, user.EmployeeID, inputs)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	h.record(r, user.UserID, "appraisal.inputs.apply", appraisalID, nil, map[string]any{"goals": len(payload.Goals)})
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

type transitionRequest struct {
	Target string `json:"target"`
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	appraisalID := chi.URLParam(r, "appraisalID")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	var payload transitionRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	target, err := appraisal.ParseStatus(payload.Target)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unknown target status", middleware.GetRequestID(r.Context()))
		return
	}

	// Transitions are the one mutation clients retry on concurrent
	// modification, so an Idempotency-Key replays the first outcome instead
	// of advancing the stage twice.
	idempotencyKey := r.Header.Get("Idempotency-Key")
	requestHash := middleware.RequestHash(append([]byte(appraisalID+"\n"), body...))
	if idempotencyKey != "" {
		stored, found, err := h.Replays.Check(r.Context(), user.UserID, "appraisal.transition", idempotencyKey, requestHash)
		if errors.Is(err, middleware.ErrIdempotencyConflict) {
			api.Fail(w, http.StatusConflict, "idempotency_conflict", "Idempotency-Key was already used with a different request", middleware.GetRequestID(r.Context()))
			return
		}
		if err != nil {
			slog.Warn("idempotency check failed", "err", err)
		}
		if found {
			api.Success(w, stored, middleware.GetRequestID(r.Context()))
			return
		}
	}

	view, err := h.Service.RequestTransition(r.Context(), appraisalID, user.EmployeeID, target)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordTransition(string(target))
	}
	h.record(r, user.UserID, "appraisal.transition", appraisalID, nil, map[string]any{"to": target})
	h.notifyTransition(r, view)

	if idempotencyKey != "" {
		if encoded, err := json.Marshal(view); err != nil {
			slog.Warn("idempotency response marshal failed", "err", err)
		} else if err := h.Replays.Save(r.Context(), user.UserID, "appraisal.transition", idempotencyKey, requestHash, encoded); err != nil {
			slog.Warn("idempotency save failed", "err", err)
		}
	}

	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

type importRequest struct {
	TemplateIDs []string `json:"templateIds"`
}

func (h *Handler) handleImportTemplates(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	appraisalID := chi.URLParam(r, "appraisalID")

	var payload importRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.TemplateIDs) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "templateIds must not be empty", middleware.GetRequestID(r.Context()))
		return
	}

	view, err := h.Service.ImportTemplates(r.Context(), appraisalID, user.EmployeeID, payload.TemplateIDs)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	h.record(r, user.UserID, "appraisal.goals.import", appraisalID, nil, map[string]any{"templates": payload.TemplateIDs})
	h.notifyUser(r, view.AppraiseeID, notifications.TypeGoalsImported, "Goals imported",
		"Template goals were added to your appraisal draft.")

	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	appraisalID := chi.URLParam(r, "appraisalID")

	if err := h.Service.DeleteDraft(r.Context(), appraisalID, user.EmployeeID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	h.record(r, user.UserID, "appraisal.delete", appraisalID, nil, nil)
	api.NoContent(w)
}

func (h *Handler) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	appraisalID := chi.URLParam(r, "appraisalID")

	pdf, err := h.Reports.AppraisalSummaryPDF(r.Context(), appraisalID, user.EmployeeID)
	if err != nil {
		if errors.Is(err, reports.ErrNotComplete) {
			api.Fail(w, http.StatusConflict, "not_complete", "summary is only available for completed appraisals", middleware.GetRequestID(r.Context()))
			return
		}
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=appraisal-%s.pdf", appraisalID))
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("summary pdf write failed", "err", err)
	}
}

func (h *Handler) record(r *http.Request, actorID, action, entityID string, before, after any) {
	if h.Audit == nil {
		return
	}
	err := h.Audit.Record(r.Context(), actorID, action, "appraisal", entityID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, after)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

// notifyTransition tells the participant whose stage is opening (and on
// completion, everyone) that the appraisal moved.
func (h *Handler) notifyTransition(r *http.Request, view appraisal.View) {
	switch view.Status {
	case appraisal.StatusSubmitted:
		h.notifyUser(r, view.AppraiseeID, notifications.TypeAppraisalSubmitted, "Appraisal submitted",
			"Your appraisal goals were submitted. Acknowledge them to begin your self assessment.")
	case appraisal.StatusSelfAssessment:
		h.notifyUser(r, view.AppraiseeID, notifications.TypeSelfAssessmentOpen, "Self assessment open",
			"Your self assessment stage is now open.")
	case appraisal.StatusAppraiserEvaluation:
		h.notifyUser(r, view.AppraiserID, notifications.TypeSelfAssessmentDone, "Self assessment complete",
			"The appraisee finished their self assessment. Your evaluation stage is open.")
	case appraisal.StatusReviewerEvaluation:
		h.notifyUser(r, view.ReviewerID, notifications.TypeEvaluationSubmitted, "Evaluation submitted",
			"An appraisal is awaiting your review.")
	case appraisal.StatusComplete:
		h.notifyUser(r, view.AppraiseeID, notifications.TypeAppraisalComplete, "Appraisal complete",
			"Your appraisal has been completed.")
		h.notifyUser(r, view.AppraiserID, notifications.TypeAppraisalComplete, "Appraisal complete",
			"An appraisal you ran has been completed.")
	}
}

func (h *Handler) notifyUser(r *http.Request, employeeID, ntype, title, body string) {
	if h.Notify == nil {
		return
	}
	userID, err := h.Employees.UserID(r.Context(), employeeID)
	if err != nil || userID == "" {
		return
	}
	if err := h.Notify.Create(r.Context(), userID, ntype, title, body); err != nil {
		slog.Warn("notification create failed", "type", ntype, "err", err)
	}
}
