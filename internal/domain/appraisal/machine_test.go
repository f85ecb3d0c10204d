package appraisal

import (
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int {
	return &v
}

func testAppraisal(status Status) *Appraisal {
	return &Appraisal{
		ID:          "appr-1",
		AppraiseeID: "emp-appraisee",
		AppraiserID: "emp-appraiser",
		ReviewerID:  "emp-reviewer",
		TypeID:      "type-annual",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:      status,
		Version:     1,
	}
}

func weightedGoals(weights ...int) []GoalAssignment {
	goals := make([]GoalAssignment, 0, len(weights))
	for i, weight := range weights {
		goals = append(goals, GoalAssignment{
			ID:     "assign-" + string(rune('a'+i)),
			GoalID: "goal-" + string(rune('a'+i)),
			Goal: Goal{
				ID:         "goal-" + string(rune('a'+i)),
				Title:      "Goal",
				Importance: ImportanceMedium,
				Weightage:  weight,
			},
			Ordinal: i,
		})
	}
	return goals
}

// completedAppraisal returns an aggregate with every input filled so that
// any transition precondition passes; only ordering and role gates apply.
func completedAppraisal(status Status) *Appraisal {
	a := testAppraisal(status)
	a.Goals = weightedGoals(60, 40)
	for i := range a.Goals {
		a.Goals[i].SelfRating = intPtr(4)
		a.Goals[i].SelfComment = "self"
		a.Goals[i].AppraiserRating = intPtr(3)
		a.Goals[i].AppraiserComment = "appraiser"
	}
	a.AppraiserOverallRating = intPtr(3)
	a.AppraiserOverallComment = "overall"
	a.ReviewerOverallRating = intPtr(4)
	a.ReviewerOverallComment = "review"
	return a
}

func roleFor(target Status) Role {
	return transitionRole[target]
}

func TestTransitionTableOnlyForwardAdjacent(t *testing.T) {
	all := Statuses()
	legal := 0
	for _, from := range all {
		for _, to := range all {
			a := completedAppraisal(from)
			err := Transition(a, to, roleFor(to))

			next, hasNext := from.Next()
			if hasNext && to == next {
				legal++
				if err != nil {
					t.Fatalf("expected %s -> %s to succeed, got %v", from, to, err)
				}
				if a.Status != to {
					t.Fatalf("expected status %s after transition, got %s", to, a.Status)
				}
				continue
			}

			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidTransitionError for %s -> %s, got %v", from, to, err)
			}
			if a.Status != from {
				t.Fatalf("rejected transition mutated status: %s -> %s", from, a.Status)
			}
		}
	}
	if legal != 5 {
		t.Fatalf("expected exactly 5 legal transitions, got %d", legal)
	}
}

func TestTransitionRejectsWrongRole(t *testing.T) {
	cases := []struct {
		from   Status
		to     Status
		actors []Role
	}{
		{StatusDraft, StatusSubmitted, []Role{RoleAppraisee, RoleReviewer, RoleNone}},
		{StatusSubmitted, StatusSelfAssessment, []Role{RoleAppraiser, RoleReviewer, RoleNone}},
		{StatusSelfAssessment, StatusAppraiserEvaluation, []Role{RoleAppraiser, RoleReviewer, RoleNone}},
		{StatusAppraiserEvaluation, StatusReviewerEvaluation, []Role{RoleAppraisee, RoleReviewer, RoleNone}},
		{StatusReviewerEvaluation, StatusComplete, []Role{RoleAppraisee, RoleAppraiser, RoleNone}},
	}

	for _, tc := range cases {
		for _, role := range tc.actors {
			a := completedAppraisal(tc.from)
			err := Transition(a, tc.to, role)
			var unauthorized *UnauthorizedRoleError
			if !errors.As(err, &unauthorized) {
				t.Fatalf("expected UnauthorizedRoleError for %s -> %s as %q, got %v", tc.from, tc.to, role, err)
			}
			if a.Status != tc.from {
				t.Fatalf("rejected transition mutated status for %s -> %s", tc.from, tc.to)
			}
		}
	}
}

func TestSubmitRequiresFullWeightage(t *testing.T) {
	a := testAppraisal(StatusDraft)
	a.Goals = weightedGoals(40, 35, 25)
	if err := Transition(a, StatusSubmitted, RoleAppraiser); err != nil {
		t.Fatalf("expected 40/35/25 submit to succeed, got %v", err)
	}
	if a.Status != StatusSubmitted {
		t.Fatalf("expected status submitted, got %s", a.Status)
	}

	over := testAppraisal(StatusDraft)
	over.Goals = weightedGoals(40, 35, 25, 10)
	err := Transition(over, StatusSubmitted, RoleAppraiser)
	var weightage *WeightageError
	if !errors.As(err, &weightage) {
		t.Fatalf("expected WeightageError, got %v", err)
	}
	if weightage.Total != 110 {
		t.Fatalf("expected actual total 110, got %d", weightage.Total)
	}
	if over.Status != StatusDraft {
		t.Fatalf("failed submit mutated status to %s", over.Status)
	}
}

func TestSubmitRequiresAtLeastOneGoal(t *testing.T) {
	a := testAppraisal(StatusDraft)
	err := Transition(a, StatusSubmitted, RoleAppraiser)
	var weightage *WeightageError
	if !errors.As(err, &weightage) {
		t.Fatalf("expected WeightageError for empty goal set, got %v", err)
	}
	if !weightage.Empty {
		t.Fatal("expected error to flag the empty goal set")
	}
}

func TestSelfAssessmentExitRequiresAllInputs(t *testing.T) {
	a := testAppraisal(StatusSelfAssessment)
	a.Goals = weightedGoals(60, 40)
	a.Goals[0].SelfRating = intPtr(4)
	a.Goals[0].SelfComment = "done"

	err := Transition(a, StatusAppraiserEvaluation, RoleAppraisee)
	var incomplete *IncompleteAssessmentError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteAssessmentError, got %v", err)
	}
	if len(incomplete.GoalIDs) != 1 || incomplete.GoalIDs[0] != a.Goals[1].GoalID {
		t.Fatalf("expected missing goal %s, got %v", a.Goals[1].GoalID, incomplete.GoalIDs)
	}

	a.Goals[1].SelfRating = intPtr(3)
	a.Goals[1].SelfComment = "also done"
	if err := Transition(a, StatusAppraiserEvaluation, RoleAppraisee); err != nil {
		t.Fatalf("expected transition to succeed after completing inputs, got %v", err)
	}
}

func TestAppraiserEvaluationExitRequiresInputsAndOverall(t *testing.T) {
	a := testAppraisal(StatusAppraiserEvaluation)
	a.Goals = weightedGoals(100)
	a.Goals[0].AppraiserRating = intPtr(4)
	a.Goals[0].AppraiserComment = "solid"

	err := Transition(a, StatusReviewerEvaluation, RoleAppraiser)
	var incomplete *IncompleteEvaluationError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteEvaluationError, got %v", err)
	}
	if !incomplete.MissingOverall {
		t.Fatal("expected missing overall flag")
	}
	if len(incomplete.GoalIDs) != 0 {
		t.Fatalf("expected no missing goals, got %v", incomplete.GoalIDs)
	}

	a.AppraiserOverallRating = intPtr(4)
	a.AppraiserOverallComment = "good cycle"
	if err := Transition(a, StatusReviewerEvaluation, RoleAppraiser); err != nil {
		t.Fatalf("expected transition to succeed, got %v", err)
	}
}

func TestReviewExitRequiresOverall(t *testing.T) {
	a := testAppraisal(StatusReviewerEvaluation)
	a.Goals = weightedGoals(100)

	err := Transition(a, StatusComplete, RoleReviewer)
	var incomplete *IncompleteReviewError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteReviewError, got %v", err)
	}
	if !incomplete.MissingRating || !incomplete.MissingComment {
		t.Fatalf("expected both overall fields flagged, got %+v", incomplete)
	}

	a.ReviewerOverallRating = intPtr(5)
	a.ReviewerOverallComment = "endorsed"
	if err := Transition(a, StatusComplete, RoleReviewer); err != nil {
		t.Fatalf("expected final transition to succeed, got %v", err)
	}
	if a.Status != StatusComplete {
		t.Fatalf("expected complete, got %s", a.Status)
	}
}

func TestCompleteIsTerminal(t *testing.T) {
	a := completedAppraisal(StatusComplete)
	for _, to := range Statuses() {
		err := Transition(a, to, RoleReviewer)
		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidTransitionError from complete to %s, got %v", to, err)
		}
	}
}

func TestParseStatusRejectsDisplayStrings(t *testing.T) {
	if _, err := ParseStatus("Appraiser Evaluation"); err == nil {
		t.Fatal("expected display string to be rejected")
	}
	status, err := ParseStatus("appraiser_evaluation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusAppraiserEvaluation {
		t.Fatalf("expected appraiser_evaluation, got %s", status)
	}
}
