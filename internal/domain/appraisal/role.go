package appraisal

// Role is a participant's relationship to one specific appraisal. The same
// employee may hold different roles on different appraisals, so a role is
// never stored or accepted from a request body; it is derived per request by
// comparing the authenticated employee id against the three participant ids.
type Role string

const (
	RoleNone      Role = ""
	RoleAppraisee Role = "appraisee"
	RoleAppraiser Role = "appraiser"
	RoleReviewer  Role = "reviewer"
)

func (r Role) describe() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// RoleOf resolves the acting role for an employee against this appraisal.
// Participant distinctness is an aggregate invariant, so at most one role can
// match.
func (a *Appraisal) RoleOf(employeeID string) Role {
	if employeeID == "" {
		return RoleNone
	}
	switch employeeID {
	case a.AppraiseeID:
		return RoleAppraisee
	case a.AppraiserID:
		return RoleAppraiser
	case a.ReviewerID:
		return RoleReviewer
	}
	return RoleNone
}
