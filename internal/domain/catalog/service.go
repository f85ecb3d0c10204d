package catalog

import (
	"context"

	"appraisal/internal/domain/appraisal"
)

type StoreAPI interface {
	ListTypes(ctx context.Context) ([]AppraisalType, error)
	ListRanges(ctx context.Context, typeID string) ([]AppraisalRange, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListTemplates(ctx context.Context) ([]GoalTemplate, error)
	GetTemplate(ctx context.Context, id string) (GoalTemplate, error)
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) ListTypes(ctx context.Context) ([]AppraisalType, error) {
	return s.store.ListTypes(ctx)
}

func (s *Service) ListRanges(ctx context.Context, typeID string) ([]AppraisalRange, error) {
	return s.store.ListRanges(ctx, typeID)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) ListTemplates(ctx context.Context) ([]GoalTemplate, error) {
	return s.store.ListTemplates(ctx)
}

// GoalContent satisfies the engine's template source: template rows become
// candidate goal content, identity left blank so each import creates a fresh
// goal row.
func (s *Service) GoalContent(ctx context.Context, templateID string) (appraisal.Goal, error) {
	template, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return appraisal.Goal{}, err
	}
	return appraisal.Goal{
		Title:       template.Title,
		Description: template.Description,
		Importance:  appraisal.Importance(template.Importance),
		Weightage:   template.Weightage,
		CategoryIDs: template.CategoryIDs,
	}, nil
}
