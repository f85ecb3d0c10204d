package employee

import "context"

type StoreAPI interface {
	List(ctx context.Context, limit, offset int) ([]Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	Exists(ctx context.Context, id string) (bool, error)
	UserID(ctx context.Context, employeeID string) (string, error)
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Employee, error) {
	return s.store.List(ctx, limit, offset)
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.store.Exists(ctx, id)
}

func (s *Service) UserID(ctx context.Context, employeeID string) (string, error) {
	return s.store.UserID(ctx, employeeID)
}
