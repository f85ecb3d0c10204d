package appraisal

import "context"

// StoreAPI is the persistence contract the service drives. Every mutating
// call takes the version observed at load time; implementations must reject a
// stale version with ErrConcurrentModification so that at most one of two
// concurrent load-validate-save cycles can win.
type StoreAPI interface {
	Load(ctx context.Context, id string) (*Appraisal, error)
	ListByParticipant(ctx context.Context, employeeID string) ([]Appraisal, error)
	Create(ctx context.Context, a *Appraisal) error

	// UpdateStatus persists a status change only.
	UpdateStatus(ctx context.Context, id string, version int, status Status) error

	// UpdateDraft atomically persists the draft row (participants, dates,
	// assignment ordering) together with the reconciler's change set.
	// Partial application is a correctness bug: either every removal,
	// update and addition lands, or none do.
	UpdateDraft(ctx context.Context, a *Appraisal, version int, changes ChangeSet) error

	// UpdateInputs persists stage inputs (per-goal ratings/comments and
	// overall fields) without touching goal content.
	UpdateInputs(ctx context.Context, a *Appraisal, version int) error

	DeleteDraft(ctx context.Context, id string, version int) error
}

// TemplateSource supplies candidate goal content for imports. The engine
// treats the content as opaque input subject to the same weightage and role
// gates as manually entered goals.
type TemplateSource interface {
	GoalContent(ctx context.Context, templateID string) (Goal, error)
}
