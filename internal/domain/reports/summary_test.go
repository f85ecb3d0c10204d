package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/employee"
)

type stubLoader struct {
	a *appraisal.Appraisal
}

func (s stubLoader) Load(ctx context.Context, id string) (*appraisal.Appraisal, error) {
	if s.a == nil || s.a.ID != id {
		return nil, appraisal.ErrNotFound
	}
	return s.a, nil
}

type stubDirectory map[string]employee.Employee

func (d stubDirectory) Get(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := d[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return e, nil
}

func intPtr(v int) *int { return &v }

func completedAppraisal() *appraisal.Appraisal {
	return &appraisal.Appraisal{
		ID:          "appr-1",
		AppraiseeID: "emp-appraisee",
		AppraiserID: "emp-appraiser",
		ReviewerID:  "emp-reviewer",
		TypeID:      "type-annual",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:      appraisal.StatusComplete,
		Goals: []appraisal.GoalAssignment{
			{
				ID:     "as-1",
				GoalID: "goal-1",
				Goal: appraisal.Goal{
					ID: "goal-1", Title: "Ship the migration",
					Importance: appraisal.ImportanceHigh, Weightage: 100,
				},
				SelfRating:      intPtr(4),
				SelfComment:     "done",
				AppraiserRating: intPtr(4),
			},
		},
		AppraiserOverallRating:  intPtr(4),
		AppraiserOverallComment: "solid",
		ReviewerOverallRating:   intPtr(5),
		ReviewerOverallComment:  "agreed",
		Version:                 7,
	}
}

func TestSummaryPDFForParticipant(t *testing.T) {
	svc := NewService(stubLoader{a: completedAppraisal()}, stubDirectory{
		"emp-appraisee": {FirstName: "Ada", LastName: "Lovelace"},
	})

	pdf, err := svc.AppraisalSummaryPDF(context.Background(), "appr-1", "emp-appraisee")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestSummaryPDFHiddenFromNonParticipants(t *testing.T) {
	svc := NewService(stubLoader{a: completedAppraisal()}, stubDirectory{})

	if _, err := svc.AppraisalSummaryPDF(context.Background(), "appr-1", "emp-outsider"); !errors.Is(err, appraisal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for outsider, got %v", err)
	}
}

func TestSummaryPDFRequiresCompletion(t *testing.T) {
	a := completedAppraisal()
	a.Status = appraisal.StatusReviewerEvaluation
	svc := NewService(stubLoader{a: a}, stubDirectory{})

	if _, err := svc.AppraisalSummaryPDF(context.Background(), "appr-1", "emp-reviewer"); !errors.Is(err, ErrNotComplete) {
		t.Fatalf("expected ErrNotComplete, got %v", err)
	}
}
