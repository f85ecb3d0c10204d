package appraisal

import "time"

type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

func (i Importance) Valid() bool {
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh:
		return true
	}
	return false
}

// Goal is the evaluation criterion content carried by an assignment. Identity
// is immutable; content is mutable only while the owning appraisal is in
// Draft. CategoryIDs is the one normalized category shape: single-category
// and multi-category inputs both collapse into it at the transport boundary.
type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
	Weightage   int        `json:"weightage"`
	CategoryIDs []string   `json:"categoryIds"`
}

// GoalAssignment links a goal to one appraisal and carries the participant
// inputs collected against it. Ratings are 1-5 and nil until entered.
type GoalAssignment struct {
	ID               string `json:"id"`
	GoalID           string `json:"goalId"`
	Goal             Goal   `json:"goal"`
	Ordinal          int    `json:"ordinal"`
	SelfRating       *int   `json:"selfRating"`
	SelfComment      string `json:"selfComment"`
	AppraiserRating  *int   `json:"appraiserRating"`
	AppraiserComment string `json:"appraiserComment"`
}

// Appraisal is the aggregate root: one review cycle for one appraisee with
// exactly one appraiser and one reviewer. Version backs optimistic
// concurrency; every persisted mutation checks and bumps it.
type Appraisal struct {
	ID                      string           `json:"id"`
	AppraiseeID             string           `json:"appraiseeId"`
	AppraiserID             string           `json:"appraiserId"`
	ReviewerID              string           `json:"reviewerId"`
	TypeID                  string           `json:"typeId"`
	RangeID                 string           `json:"rangeId,omitempty"`
	StartDate               time.Time        `json:"startDate"`
	EndDate                 time.Time        `json:"endDate"`
	Status                  Status           `json:"status"`
	AppraiserOverallRating  *int             `json:"appraiserOverallRating"`
	AppraiserOverallComment string           `json:"appraiserOverallComment"`
	ReviewerOverallRating   *int             `json:"reviewerOverallRating"`
	ReviewerOverallComment  string           `json:"reviewerOverallComment"`
	Version                 int              `json:"version"`
	Goals                   []GoalAssignment `json:"goals"`
	CreatedAt               time.Time        `json:"createdAt"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
