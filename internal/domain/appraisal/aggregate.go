package appraisal

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// CreateParams carries everything needed to open a new draft. The acting
// employee becomes the appraiser.
type CreateParams struct {
	AppraiseeID string
	ReviewerID  string
	TypeID      string
	RangeID     string
	StartDate   time.Time
	EndDate     time.Time
}

// New builds a draft appraisal and checks the cross-cutting aggregate
// invariants: participant distinctness and date ordering (end on or after
// start; same-day cycles are allowed).
func New(appraiserID string, params CreateParams) (*Appraisal, error) {
	a := &Appraisal{
		ID:          uuid.NewString(),
		AppraiseeID: params.AppraiseeID,
		AppraiserID: appraiserID,
		ReviewerID:  params.ReviewerID,
		TypeID:      params.TypeID,
		RangeID:     params.RangeID,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Status:      StatusDraft,
		Version:     1,
	}
	if err := a.ValidateParticipants(); err != nil {
		return nil, err
	}
	if err := a.ValidateDates(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Appraisal) ValidateParticipants() error {
	if a.AppraiseeID == a.AppraiserID {
		return &ParticipantConflictError{EmployeeID: a.AppraiseeID}
	}
	if a.AppraiseeID == a.ReviewerID {
		return &ParticipantConflictError{EmployeeID: a.AppraiseeID}
	}
	if a.AppraiserID == a.ReviewerID {
		return &ParticipantConflictError{EmployeeID: a.AppraiserID}
	}
	return nil
}

func (a *Appraisal) ValidateDates() error {
	if a.EndDate.Before(a.StartDate) {
		return &DateRangeError{
			Start: a.StartDate.Format(dateLayout),
			End:   a.EndDate.Format(dateLayout),
		}
	}
	return nil
}

// Editable reports whether the goal set may still be freely changed.
func (a *Appraisal) Editable() bool {
	return a.Status == StatusDraft
}

// CanAddGoal is the single gate shared by manual goal creation and template
// import: the draft must still be editable and the requested weight must fit
// in the unallocated remainder.
func (a *Appraisal) CanAddGoal(weightageRequested int) bool {
	if !a.Editable() {
		return false
	}
	if weightageRequested <= 0 {
		return false
	}
	return weightageRequested <= RemainingWeightage(a.Goals)
}

// Reassign swaps participants on a draft. Re-assignment outside draft is not
// a thing: the workflow's role gates assume stable participants once
// submitted.
func (a *Appraisal) Reassign(appraiseeID, appraiserID, reviewerID string) error {
	if !a.Editable() {
		return ErrDraftOnly
	}
	updated := *a
	if appraiseeID != "" {
		updated.AppraiseeID = appraiseeID
	}
	if appraiserID != "" {
		updated.AppraiserID = appraiserID
	}
	if reviewerID != "" {
		updated.ReviewerID = reviewerID
	}
	if err := updated.ValidateParticipants(); err != nil {
		return err
	}
	a.AppraiseeID = updated.AppraiseeID
	a.AppraiserID = updated.AppraiserID
	a.ReviewerID = updated.ReviewerID
	return nil
}

func (a *Appraisal) assignmentByGoalID(goalID string) *GoalAssignment {
	for i := range a.Goals {
		if a.Goals[i].GoalID == goalID {
			return &a.Goals[i]
		}
	}
	return nil
}
