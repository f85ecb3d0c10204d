package appraisal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FieldAccessError reports an attempted write to a field group the policy
// does not mark editable for the acting role at the current stage.
type FieldAccessError struct {
	Field  Field
	Status Status
	Role   Role
}

func (e *FieldAccessError) Error() string {
	return fmt.Sprintf("field group %s is not editable by %s while appraisal is %s", e.Field, e.Role.describe(), e.Status)
}

var ErrInvalidRating = errors.New("ratings must be between 1 and 5")

// Service owns the four public engine operations plus draft bookkeeping. It
// is synchronous business logic: one load, pure validation, one persistence
// call per mutating operation.
type Service struct {
	store     StoreAPI
	templates TemplateSource
}

func NewService(store StoreAPI, templates TemplateSource) *Service {
	return &Service{store: store, templates: templates}
}

// CreateDraft opens a new appraisal in draft with the acting employee as
// appraiser. Goals are attached afterwards through draft saves or template
// imports.
func (s *Service) CreateDraft(ctx context.Context, actorEmployeeID string, params CreateParams) (*Appraisal, error) {
	a, err := New(actorEmployeeID, params)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get returns the policy-filtered view for the acting employee. Non-participants
// get ErrNotFound rather than a forbidden, so the endpoint does not confirm
// which appraisals exist. When the appraisee first opens a submitted
// appraisal the workflow advances to self assessment; losing a concurrent
// race on that advance is harmless, so the view is rebuilt from a fresh load
// instead of failing.
func (s *Service) Get(ctx context.Context, id, actorEmployeeID string) (View, error) {
	a, err := s.store.Load(ctx, id)
	if err != nil {
		return View{}, err
	}
	role := a.RoleOf(actorEmployeeID)
	if role == RoleNone {
		return View{}, ErrNotFound
	}

	if role == RoleAppraisee && a.Status == StatusSubmitted {
		if err := Transition(a, StatusSelfAssessment, RoleAppraisee); err == nil {
			saveErr := s.store.UpdateStatus(ctx, a.ID, a.Version, a.Status)
			switch {
			case saveErr == nil:
				a.Version++
			case errors.Is(saveErr, ErrConcurrentModification):
				if a, err = s.store.Load(ctx, id); err != nil {
					return View{}, err
				}
			default:
				return View{}, saveErr
			}
		}
	}

	return NewView(a, role), nil
}

// Summary is the compact list row for a participant's appraisals.
type Summary struct {
	ID          string    `json:"id"`
	Role        Role      `json:"role"`
	Status      Status    `json:"status"`
	AppraiseeID string    `json:"appraiseeId"`
	AppraiserID string    `json:"appraiserId"`
	ReviewerID  string    `json:"reviewerId"`
	TypeID      string    `json:"typeId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

func (s *Service) ListForParticipant(ctx context.Context, employeeID string) ([]Summary, error) {
	appraisals, err := s.store.ListByParticipant(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(appraisals))
	for i := range appraisals {
		a := &appraisals[i]
		summaries = append(summaries, Summary{
			ID:          a.ID,
			Role:        a.RoleOf(employeeID),
			Status:      a.Status,
			AppraiseeID: a.AppraiseeID,
			AppraiserID: a.AppraiserID,
			ReviewerID:  a.ReviewerID,
			TypeID:      a.TypeID,
			StartDate:   a.StartDate,
			EndDate:     a.EndDate,
		})
	}
	return summaries, nil
}

// DraftEdit is one draft save: optional participant reassignment, optional
// date changes, and the full edited goal set to reconcile against the
// persisted one.
type DraftEdit struct {
	AppraiseeID string
	ReviewerID  string
	StartDate   *time.Time
	EndDate     *time.Time
	Goals       []GoalAssignment
}

// SaveDraft reconciles and persists a locally edited draft in one atomic
// unit. Only the appraiser may save, and only while the appraisal is in
// draft.
func (s *Service) SaveDraft(ctx context.Context, id, actorEmployeeID string, edit DraftEdit) (View, error) {
	a, err := s.store.Load(ctx, id)
	if err != nil {
		return View{}, err
	}
	role := a.RoleOf(actorEmployeeID)
	if role == RoleNone {
		return View{}, ErrNotFound
	}
	if role != RoleAppraiser {
		return View{}, &FieldAccessError{Field: FieldGoalList, Status: a.Status, Role: role}
	}
	if !a.Editable() {
		return View{}, ErrDraftOnly
	}

	version := a.Version
	if err := a.Reassign(edit.AppraiseeID, "", edit.ReviewerID); err != nil {
		return View{}, err
	}
	if edit.StartDate != nil {
		a.StartDate = *edit.StartDate
	}
	if edit.EndDate != nil {
		a.EndDate = *edit.EndDate
	}
	if err := a.ValidateDates(); err != nil {
		return View{}, err
	}

	edited := materializeGoals(a, edit.Goals)
	changes := Diff(a.Goals, edited)
	a.Goals = edited
	a.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateDraft(ctx, a, version, changes); err != nil {
		return View{}, err
	}
	a.Version = version + 1
	return NewView(a, role), nil
}

// materializeGoals turns the edited entries into full assignments: entries
// matching a persisted goal keep their assignment identity and collected
// ratings, new entries get fresh ids. Ordinals follow the edited order.
func materializeGoals(a *Appraisal, edited []GoalAssignment) []GoalAssignment {
	out := make([]GoalAssignment, 0, len(edited))
	for i, entry := range edited {
		entry.Ordinal = i
		if current := a.assignmentByGoalID(entry.GoalID); entry.GoalID != "" && current != nil {
			goal := entry.Goal
			goal.ID = current.GoalID
			materialized := *current
			materialized.Goal = goal
			materialized.Ordinal = i
			out = append(out, materialized)
			continue
		}
		entry.GoalID = uuid.NewString()
		entry.ID = uuid.NewString()
		entry.Goal.ID = entry.GoalID
		entry.SelfRating = nil
		entry.SelfComment = ""
		entry.AppraiserRating = nil
		entry.AppraiserComment = ""
		out = append(out, entry)
	}
	return out
}

// GoalInput is one per-goal stage input. Nil pointers mean "leave as is".
type GoalInput struct {
	GoalID           string
	SelfRating       *int
	SelfComment      *string
	AppraiserRating  *int
	AppraiserComment *string
}

// StageInputs carries everything a participant may enter during the
// assessment and evaluation stages.
type StageInputs struct {
	Goals                   []GoalInput
	AppraiserOverallRating  *int
	AppraiserOverallComment *string
	ReviewerOverallRating   *int
	ReviewerOverallComment  *string
}

// ApplyInputs writes stage inputs through the field policy: every touched
// field group must be editable for the acting role at the current status, or
// the whole request is rejected and nothing is persisted.
func (s *Service) ApplyInputs(ctx context.Context, id, actorEmployeeID string, inputs StageInputs) (View, error) {
	a, err := s.store.Load(ctx, id)
	if err != nil {
		return View{}, err
	}
	role := a.RoleOf(actorEmployeeID)
	if role == RoleNone {
		return View{}, ErrNotFound
	}
	access := Resolve(a.Status, role)
	version := a.Version

	for _, input := range inputs.Goals {
		assignment := a.assignmentByGoalID(input.GoalID)
		if assignment == nil {
			return View{}, ErrGoalNotFound
		}
		if input.SelfRating != nil || input.SelfComment != nil {
			if access[FieldSelfInput] != AccessEditable {
				return View{}, &FieldAccessError{Field: FieldSelfInput, Status: a.Status, Role: role}
			}
			if input.SelfRating != nil {
				if !ValidRating(*input.SelfRating) {
					return View{}, ErrInvalidRating
				}
				rating := *input.SelfRating
				assignment.SelfRating = &rating
			}
			if input.SelfComment != nil {
				assignment.SelfComment = *input.SelfComment
			}
		}
		if input.AppraiserRating != nil || input.AppraiserComment != nil {
			if access[FieldAppraiserInput] != AccessEditable {
				return View{}, &FieldAccessError{Field: FieldAppraiserInput, Status: a.Status, Role: role}
			}
			if input.AppraiserRating != nil {
				if !ValidRating(*input.AppraiserRating) {
					return View{}, ErrInvalidRating
				}
				rating := *input.AppraiserRating
				assignment.AppraiserRating = &rating
			}
			if input.AppraiserComment != nil {
				assignment.AppraiserComment = *input.AppraiserComment
			}
		}
	}

	if inputs.AppraiserOverallRating != nil || inputs.AppraiserOverallComment != nil {
		if access[FieldAppraiserOverall] != AccessEditable {
			return View{}, &FieldAccessError{Field: FieldAppraiserOverall, Status: a.Status, Role: role}
		}
		if inputs.AppraiserOverallRating != nil {
			if !ValidRating(*inputs.AppraiserOverallRating) {
				return View{}, ErrInvalidRating
			}
			rating := *inputs.AppraiserOverallRating
			a.AppraiserOverallRating = &rating
		}
		if inputs.AppraiserOverallComment != nil {
			a.AppraiserOverallComment = *inputs.AppraiserOverallComment
		}
	}
	if inputs.ReviewerOverallRating != nil || inputs.ReviewerOverallComment != nil {
		if access[FieldReviewerOverall] != AccessEditable {
			return View{}, &FieldAccessError{Field: FieldReviewerOverall, Status: a.Status, Role: role}
		}
		if inputs.ReviewerOverallRating != nil {
			if !ValidRating(*inputs.ReviewerOverallRating) {
				return View{}, ErrInvalidRating
			}
			rating := *inputs.ReviewerOverallRating
			a.ReviewerOverallRating = &rating
		}
		if inputs.ReviewerOverallComment != nil {
			a.ReviewerOverallComment = *inputs.ReviewerOverallComment
		}
	}

	a.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateInputs(ctx, a, version); err != nil {
		return View{}, err
	}
	a.Version = version + 1
	return NewView(a, role), nil
}

// RequestTransition validates and executes a status change. The machine runs
// against the loaded aggregate; the store's version check guarantees that two
// concurrent advances cannot both land.
func (s *Service) RequestTransition(ctx context.Context, id, actorEmployeeID string, target Status) (View, error) {
	a, err := s.store.Load(ctx, id)
	if err != nil {
		return View{}, err
	}
	role := a.RoleOf(actorEmployeeID)
	if role == RoleNone {
		return View{}, ErrNotFound
	}

	version := a.Version
	if err := Transition(a, target, role); err != nil {
		return View{}, err
	}
	if err := s.store.UpdateStatus(ctx, a.ID, version, a.Status); err != nil {
		return View{}, err
	}
	a.Version = version + 1
	return NewView(a, role), nil
}

// ImportTemplates attaches goal content from the template catalog to a
// draft. Imports flow through the same CanAddGoal gate as manual additions,
// applied cumulatively in the order given.
func (s *Service) ImportTemplates(ctx context.Context, id, actorEmployeeID string, templateIDs []string) (View, error) {
	if s.templates == nil {
		return View{}, errors.New("no template source configured")
	}
	a, err := s.store.Load(ctx, id)
	if err != nil {
		return View{}, err
	}
	role := a.RoleOf(actorEmployeeID)
	if role == RoleNone {
		return View{}, ErrNotFound
	}
	if role != RoleAppraiser {
		return View{}, &FieldAccessError{Field: FieldGoalList, Status: a.Status, Role: role}
	}
	if !a.Editable() {
		return View{}, ErrDraftOnly
	}

	version := a.Version
	var changes ChangeSet
	for _, templateID := range templateIDs {
		goal, err := s.templates.GoalContent(ctx, templateID)
		if err != nil {
			return View{}, err
		}
		if !a.CanAddGoal(goal.Weightage) {
			return View{}, &WeightageError{Total: currentTotal(a.Goals) + goal.Weightage}
		}
		goal.ID = uuid.NewString()
		assignment := GoalAssignment{
			ID:      uuid.NewString(),
			GoalID:  goal.ID,
			Goal:    goal,
			Ordinal: len(a.Goals),
		}
		a.Goals = append(a.Goals, assignment)
		changes.Added = append(changes.Added, assignment)
	}

	if changes.Empty() {
		return NewView(a, role), nil
	}
	a.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateDraft(ctx, a, version, changes); err != nil {
		return View{}, err
	}
	a.Version = version + 1
	return NewView(a, role), nil
}

// DeleteDraft is the only destructive operation: the appraiser may discard an
// appraisal that never left draft.
func (s *Service) DeleteDraft(ctx context.Context, id, actorEmployeeID string) error {
	a, err := s.store.Load(ctx, id)
	if err != nil {
		return err
	}
	role := a.RoleOf(actorEmployeeID)
	if role == RoleNone {
		return ErrNotFound
	}
	if role != RoleAppraiser {
		return &FieldAccessError{Field: FieldGoalList, Status: a.Status, Role: role}
	}
	if !a.Editable() {
		return ErrDraftOnly
	}
	return s.store.DeleteDraft(ctx, a.ID, a.Version)
}

// Load exposes the raw aggregate to trusted in-process consumers (the PDF
// summary). Transport code must go through Get.
func (s *Service) Load(ctx context.Context, id string) (*Appraisal, error) {
	return s.store.Load(ctx, id)
}

func currentTotal(goals []GoalAssignment) int {
	total := 0
	for _, assignment := range goals {
		total += assignment.Goal.Weightage
	}
	return total
}
