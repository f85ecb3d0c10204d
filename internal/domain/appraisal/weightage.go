package appraisal

// TotalWeightage is the exact integer sum the goal set must reach before an
// appraisal may leave draft. Integer arithmetic throughout; floating point
// would reintroduce 99.999% false negatives.
const TotalWeightage = 100

// ValidateWeightage passes only when the set is non-empty and the weightages
// sum to exactly 100.
func ValidateWeightage(goals []GoalAssignment) error {
	if len(goals) == 0 {
		return &WeightageError{Empty: true}
	}
	total := 0
	for _, assignment := range goals {
		total += assignment.Goal.Weightage
	}
	if total != TotalWeightage {
		return &WeightageError{Total: total}
	}
	return nil
}

// RemainingWeightage returns how much weight an additional goal may still
// carry. It never fails: an over-allocated set simply reports zero remaining.
func RemainingWeightage(goals []GoalAssignment) int {
	total := 0
	for _, assignment := range goals {
		total += assignment.Goal.Weightage
	}
	if total >= TotalWeightage {
		return 0
	}
	return TotalWeightage - total
}
