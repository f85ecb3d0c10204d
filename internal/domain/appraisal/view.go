package appraisal

import "time"

// GoalView is one assignment with hidden field groups stripped.
type GoalView struct {
	ID               string     `json:"id"`
	GoalID           string     `json:"goalId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Importance       Importance `json:"importance"`
	Weightage        int        `json:"weightage"`
	CategoryIDs      []string   `json:"categoryIds"`
	Ordinal          int        `json:"ordinal"`
	SelfRating       *int       `json:"selfRating,omitempty"`
	SelfComment      string     `json:"selfComment,omitempty"`
	AppraiserRating  *int       `json:"appraiserRating,omitempty"`
	AppraiserComment string     `json:"appraiserComment,omitempty"`
}

// View is the policy-filtered read model handed to the transport layer. The
// Access map tells the client what it may render and what it may submit; the
// payload itself already has every hidden value removed, so a leak would
// require bypassing this type entirely.
type View struct {
	ID                      string           `json:"id"`
	Role                    Role             `json:"role"`
	Status                  Status           `json:"status"`
	AppraiseeID             string           `json:"appraiseeId"`
	AppraiserID             string           `json:"appraiserId"`
	ReviewerID              string           `json:"reviewerId"`
	TypeID                  string           `json:"typeId"`
	RangeID                 string           `json:"rangeId,omitempty"`
	StartDate               time.Time        `json:"startDate"`
	EndDate                 time.Time        `json:"endDate"`
	Version                 int              `json:"version"`
	Access                  map[Field]Access `json:"access"`
	Goals                   []GoalView       `json:"goals,omitempty"`
	RemainingWeightage      *int             `json:"remainingWeightage,omitempty"`
	AppraiserOverallRating  *int             `json:"appraiserOverallRating,omitempty"`
	AppraiserOverallComment string           `json:"appraiserOverallComment,omitempty"`
	ReviewerOverallRating   *int             `json:"reviewerOverallRating,omitempty"`
	ReviewerOverallComment  string           `json:"reviewerOverallComment,omitempty"`
}

// NewView projects the aggregate through the field policy for one role.
func NewView(a *Appraisal, role Role) View {
	access := Resolve(a.Status, role)

	view := View{
		ID:          a.ID,
		Role:        role,
		Status:      a.Status,
		AppraiseeID: a.AppraiseeID,
		AppraiserID: a.AppraiserID,
		ReviewerID:  a.ReviewerID,
		TypeID:      a.TypeID,
		RangeID:     a.RangeID,
		StartDate:   a.StartDate,
		EndDate:     a.EndDate,
		Version:     a.Version,
		Access:      access,
	}

	if access[FieldGoalList] != AccessHidden {
		view.Goals = make([]GoalView, 0, len(a.Goals))
		for _, assignment := range a.Goals {
			goal := GoalView{
				ID:          assignment.ID,
				GoalID:      assignment.GoalID,
				Title:       assignment.Goal.Title,
				Description: assignment.Goal.Description,
				Importance:  assignment.Goal.Importance,
				Weightage:   assignment.Goal.Weightage,
				CategoryIDs: assignment.Goal.CategoryIDs,
				Ordinal:     assignment.Ordinal,
			}
			if access[FieldSelfInput] != AccessHidden {
				goal.SelfRating = assignment.SelfRating
				goal.SelfComment = assignment.SelfComment
			}
			if access[FieldAppraiserInput] != AccessHidden {
				goal.AppraiserRating = assignment.AppraiserRating
				goal.AppraiserComment = assignment.AppraiserComment
			}
			view.Goals = append(view.Goals, goal)
		}
	}

	if access[FieldGoalList] == AccessEditable {
		remaining := RemainingWeightage(a.Goals)
		view.RemainingWeightage = &remaining
	}

	if access[FieldAppraiserOverall] != AccessHidden {
		view.AppraiserOverallRating = a.AppraiserOverallRating
		view.AppraiserOverallComment = a.AppraiserOverallComment
	}
	if access[FieldReviewerOverall] != AccessHidden {
		view.ReviewerOverallRating = a.ReviewerOverallRating
		view.ReviewerOverallComment = a.ReviewerOverallComment
	}

	return view
}
