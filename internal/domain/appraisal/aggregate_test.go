package appraisal

import (
	"errors"
	"testing"
	"time"
)

func validCreateParams() CreateParams {
	return CreateParams{
		AppraiseeID: "emp-appraisee",
		ReviewerID:  "emp-reviewer",
		TypeID:      "type-annual",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewStartsInDraft(t *testing.T) {
	a, err := New("emp-appraiser", validCreateParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusDraft {
		t.Fatalf("expected draft, got %s", a.Status)
	}
	if a.ID == "" || a.Version != 1 {
		t.Fatalf("expected fresh identity and version 1, got id=%q version=%d", a.ID, a.Version)
	}
}

func TestNewRejectsParticipantConflicts(t *testing.T) {
	cases := []struct {
		appraiser string
		params    CreateParams
	}{
		{"emp-appraisee", validCreateParams()},
		{"emp-reviewer", validCreateParams()},
		{"emp-appraiser", CreateParams{
			AppraiseeID: "emp-x", ReviewerID: "emp-x", TypeID: "type-annual",
			StartDate: time.Now(), EndDate: time.Now(),
		}},
	}
	for _, tc := range cases {
		_, err := New(tc.appraiser, tc.params)
		var conflict *ParticipantConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected ParticipantConflictError, got %v", err)
		}
	}
}

func TestNewDateBoundary(t *testing.T) {
	params := validCreateParams()
	params.EndDate = params.StartDate
	if _, err := New("emp-appraiser", params); err != nil {
		t.Fatalf("same-day range must be allowed, got %v", err)
	}

	params.EndDate = params.StartDate.AddDate(0, 0, -1)
	_, err := New("emp-appraiser", params)
	var dateErr *DateRangeError
	if !errors.As(err, &dateErr) {
		t.Fatalf("expected DateRangeError, got %v", err)
	}
}

func TestCanAddGoalSharedGate(t *testing.T) {
	a := testAppraisal(StatusDraft)
	a.Goals = weightedGoals(40, 35)

	if !a.CanAddGoal(25) {
		t.Fatal("expected 25 to fit into 25 remaining")
	}
	if a.CanAddGoal(26) {
		t.Fatal("expected 26 to exceed 25 remaining")
	}
	if a.CanAddGoal(0) {
		t.Fatal("zero-weight goals are not addable")
	}

	a.Status = StatusSubmitted
	if a.CanAddGoal(10) {
		t.Fatal("goals must not be addable outside draft")
	}
}

func TestReassignDraftOnly(t *testing.T) {
	a := testAppraisal(StatusDraft)
	if err := a.Reassign("", "", "emp-new-reviewer"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ReviewerID != "emp-new-reviewer" {
		t.Fatalf("reviewer not reassigned: %s", a.ReviewerID)
	}

	if err := a.Reassign("emp-appraiser", "", ""); err == nil {
		t.Fatal("expected conflict when appraisee equals appraiser")
	}
	if a.AppraiseeID != "emp-appraisee" {
		t.Fatal("failed reassignment must not partially apply")
	}

	a.Status = StatusSubmitted
	if err := a.Reassign("", "", "emp-other"); !errors.Is(err, ErrDraftOnly) {
		t.Fatalf("expected ErrDraftOnly, got %v", err)
	}
}

func TestRoleOf(t *testing.T) {
	a := testAppraisal(StatusDraft)
	cases := map[string]Role{
		"emp-appraisee": RoleAppraisee,
		"emp-appraiser": RoleAppraiser,
		"emp-reviewer":  RoleReviewer,
		"emp-stranger":  RoleNone,
		"":              RoleNone,
	}
	for employeeID, want := range cases {
		if got := a.RoleOf(employeeID); got != want {
			t.Fatalf("RoleOf(%q) = %q, want %q", employeeID, got, want)
		}
	}
}
