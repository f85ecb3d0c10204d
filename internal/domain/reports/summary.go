package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/employee"
)

var ErrNotComplete = errors.New("appraisal summary is only available once complete")

type AppraisalLoader interface {
	Load(ctx context.Context, id string) (*appraisal.Appraisal, error)
}

type EmployeeDirectory interface {
	Get(ctx context.Context, id string) (employee.Employee, error)
}

type Service struct {
	loader    AppraisalLoader
	employees EmployeeDirectory
}

func NewService(loader AppraisalLoader, employees EmployeeDirectory) *Service {
	return &Service{loader: loader, employees: employees}
}

// AppraisalSummaryPDF renders the full record of a completed appraisal for
// one of its participants. At complete every field group is readable by all
// three roles, so no per-field filtering applies here; the participant check
// still does.
func (s *Service) AppraisalSummaryPDF(ctx context.Context, appraisalID, actorEmployeeID string) ([]byte, error) {
	a, err := s.loader.Load(ctx, appraisalID)
	if err != nil {
		return nil, err
	}
	if a.RoleOf(actorEmployeeID) == appraisal.RoleNone {
		return nil, appraisal.ErrNotFound
	}
	if a.Status != appraisal.StatusComplete {
		return nil, ErrNotComplete
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Appraisal Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Appraisee: %s", s.employeeName(ctx, a.AppraiseeID)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Appraiser: %s", s.employeeName(ctx, a.AppraiserID)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Reviewer: %s", s.employeeName(ctx, a.ReviewerID)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s", a.StartDate.Format("2006-01-02"), a.EndDate.Format("2006-01-02")))
	pdf.Ln(10)

	for _, assignment := range a.Goals {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("%s (%d%%, %s)", assignment.Goal.Title, assignment.Goal.Weightage, assignment.Goal.Importance))
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		if assignment.Goal.Description != "" {
			pdf.MultiCell(0, 5, assignment.Goal.Description, "", "", false)
		}
		pdf.Cell(0, 6, fmt.Sprintf("Self: %s - %s", ratingLabel(assignment.SelfRating), assignment.SelfComment))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Appraiser: %s - %s", ratingLabel(assignment.AppraiserRating), assignment.AppraiserComment))
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Overall")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Appraiser overall: %s - %s", ratingLabel(a.AppraiserOverallRating), a.AppraiserOverallComment))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Reviewer overall: %s - %s", ratingLabel(a.ReviewerOverallRating), a.ReviewerOverallComment))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) employeeName(ctx context.Context, employeeID string) string {
	e, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return employeeID
	}
	return e.FirstName + " " + e.LastName
}

func ratingLabel(rating *int) string {
	if rating == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d/5", *rating)
}
