package appraisal

// Access is the visibility/editability verdict for one logical field group.
type Access string

const (
	AccessHidden   Access = "hidden"
	AccessReadOnly Access = "read_only"
	AccessEditable Access = "editable"
)

// Field names a logical field group on the aggregate. Policy decisions key
// off these, never off individual struct fields, so the transport layer has
// one authority to consult before returning or accepting any value.
type Field string

const (
	FieldGoalList         Field = "goal_list"
	FieldSelfInput        Field = "self_input"
	FieldAppraiserInput   Field = "appraiser_input"
	FieldAppraiserOverall Field = "appraiser_overall"
	FieldReviewerOverall  Field = "reviewer_overall"
)

var policyFields = []Field{
	FieldGoalList,
	FieldSelfInput,
	FieldAppraiserInput,
	FieldAppraiserOverall,
	FieldReviewerOverall,
}

func PolicyFields() []Field {
	out := make([]Field, len(policyFields))
	copy(out, policyFields)
	return out
}

// Resolve returns the access verdict for every field group given a workflow
// status and an acting role. This table is a security boundary, not UX:
// appraiser fields stay hidden from the appraisee and the reviewer until the
// reviewer's own stage or completion, and reviewer fields stay hidden from
// everyone but the reviewer until completion. RoleNone sees nothing at any
// stage.
func Resolve(status Status, role Role) map[Field]Access {
	decision := make(map[Field]Access, len(policyFields))
	for _, field := range policyFields {
		decision[field] = AccessHidden
	}
	if role == RoleNone {
		return decision
	}

	switch status {
	case StatusDraft:
		if role == RoleAppraiser {
			decision[FieldGoalList] = AccessEditable
		}
	case StatusSubmitted:
		if role == RoleAppraisee || role == RoleAppraiser {
			decision[FieldGoalList] = AccessReadOnly
		}
	case StatusSelfAssessment:
		switch role {
		case RoleAppraisee:
			decision[FieldGoalList] = AccessReadOnly
			decision[FieldSelfInput] = AccessEditable
		case RoleAppraiser:
			decision[FieldGoalList] = AccessReadOnly
		}
	case StatusAppraiserEvaluation:
		switch role {
		case RoleAppraisee:
			decision[FieldGoalList] = AccessReadOnly
			decision[FieldSelfInput] = AccessReadOnly
		case RoleAppraiser:
			decision[FieldGoalList] = AccessReadOnly
			decision[FieldSelfInput] = AccessReadOnly
			decision[FieldAppraiserInput] = AccessEditable
			decision[FieldAppraiserOverall] = AccessEditable
		}
	case StatusReviewerEvaluation:
		switch role {
		case RoleAppraisee:
			decision[FieldGoalList] = AccessReadOnly
			decision[FieldSelfInput] = AccessReadOnly
		case RoleAppraiser:
			decision[FieldGoalList] = AccessReadOnly
			decision[FieldSelfInput] = AccessReadOnly
			decision[FieldAppraiserInput] = AccessReadOnly
			decision[FieldAppraiserOverall] = AccessReadOnly
		case RoleReviewer:
			decision[FieldGoalList] = AccessReadOnly
			decision[FieldSelfInput] = AccessReadOnly
			decision[FieldAppraiserInput] = AccessReadOnly
			decision[FieldAppraiserOverall] = AccessReadOnly
			decision[FieldReviewerOverall] = AccessEditable
		}
	case StatusComplete:
		for _, field := range policyFields {
			decision[field] = AccessReadOnly
		}
	}

	return decision
}

// CanEdit is a convenience wrapper over Resolve for single-field checks.
func CanEdit(status Status, role Role, field Field) bool {
	return Resolve(status, role)[field] == AccessEditable
}

// CanSee reports whether the field group is at least readable.
func CanSee(status Status, role Role, field Field) bool {
	return Resolve(status, role)[field] != AccessHidden
}
