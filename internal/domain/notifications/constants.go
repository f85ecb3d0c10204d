package notifications

const (
	TypeAppraisalSubmitted  = "appraisal_submitted"
	TypeSelfAssessmentOpen  = "self_assessment_open"
	TypeSelfAssessmentDone  = "self_assessment_done"
	TypeEvaluationSubmitted = "evaluation_submitted"
	TypeAppraisalComplete   = "appraisal_complete"
	TypeGoalsImported       = "goals_imported"
)
