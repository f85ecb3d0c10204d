package appraisal

// transitionRole maps each target status to the one role allowed to request
// the move into it.
var transitionRole = map[Status]Role{
	StatusSubmitted:           RoleAppraiser,
	StatusSelfAssessment:      RoleAppraisee,
	StatusAppraiserEvaluation: RoleAppraisee,
	StatusReviewerEvaluation:  RoleAppraiser,
	StatusComplete:            RoleReviewer,
}

// Transition validates and executes a status change on the aggregate. Only
// the next status in sequence is ever a legal target. The aggregate is left
// untouched unless every check passes, so a rejected request can never leak a
// partial transition into persistence.
func Transition(a *Appraisal, target Status, role Role) error {
	if !target.Valid() {
		return &InvalidTransitionError{From: a.Status, To: target}
	}
	next, ok := a.Status.Next()
	if !ok || target != next {
		return &InvalidTransitionError{From: a.Status, To: target}
	}

	required := transitionRole[target]
	if role != required {
		return &UnauthorizedRoleError{Role: role, Required: required, To: target}
	}

	switch target {
	case StatusSubmitted:
		if err := ValidateWeightage(a.Goals); err != nil {
			return err
		}
	case StatusAppraiserEvaluation:
		if err := checkSelfAssessment(a); err != nil {
			return err
		}
	case StatusReviewerEvaluation:
		if err := checkAppraiserEvaluation(a); err != nil {
			return err
		}
	case StatusComplete:
		if err := checkReview(a); err != nil {
			return err
		}
	}

	a.Status = target
	return nil
}

func checkSelfAssessment(a *Appraisal) error {
	var missing []string
	for _, assignment := range a.Goals {
		if assignment.SelfRating == nil || assignment.SelfComment == "" {
			missing = append(missing, assignment.GoalID)
		}
	}
	if len(missing) > 0 {
		return &IncompleteAssessmentError{GoalIDs: missing}
	}
	return nil
}

func checkAppraiserEvaluation(a *Appraisal) error {
	var missing []string
	for _, assignment := range a.Goals {
		if assignment.AppraiserRating == nil || assignment.AppraiserComment == "" {
			missing = append(missing, assignment.GoalID)
		}
	}
	missingOverall := a.AppraiserOverallRating == nil || a.AppraiserOverallComment == ""
	if len(missing) > 0 || missingOverall {
		return &IncompleteEvaluationError{GoalIDs: missing, MissingOverall: missingOverall}
	}
	return nil
}

func checkReview(a *Appraisal) error {
	missingRating := a.ReviewerOverallRating == nil
	missingComment := a.ReviewerOverallComment == ""
	if missingRating || missingComment {
		return &IncompleteReviewError{MissingRating: missingRating, MissingComment: missingComment}
	}
	return nil
}
