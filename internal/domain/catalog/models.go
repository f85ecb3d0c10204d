package catalog

// AppraisalType is a review-cycle kind, e.g. an annual review.
type AppraisalType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AppraisalRange is an optional sub-range of a type, e.g. a quarter.
type AppraisalRange struct {
	ID     string `json:"id"`
	TypeID string `json:"typeId"`
	Name   string `json:"name"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GoalTemplate is reusable goal content offered to draft editors. The engine
// treats imports as opaque candidate goals; the weightage here is a default
// the same 100%-total rule applies to.
type GoalTemplate struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Importance  string   `json:"importance"`
	Weightage   int      `json:"weightage"`
	CategoryIDs []string `json:"categoryIds"`
}
