package appraisal

import "sort"

// ChangeSet describes how to bring the persisted goal set in line with an
// edited one. It is a description only: the store applies it, inside one
// transaction, in the order Removed, Updated, Added so weightage checks see
// the net result rather than an intermediate over-100% state. Updates carry
// goal content only; assignment identity and any ratings or comments already
// collected are never touched.
type ChangeSet struct {
	Added   []GoalAssignment
	Removed []string // goal ids
	Updated []Goal
}

func (c ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Updated) == 0
}

// Diff reconciles an edited in-memory goal set against the last-persisted
// one. The matching key is goal identity, never array position; an edited
// entry without a goal id is a new goal. Neither input slice is mutated.
func Diff(persisted, edited []GoalAssignment) ChangeSet {
	var changes ChangeSet

	persistedByGoal := make(map[string]GoalAssignment, len(persisted))
	for _, assignment := range persisted {
		persistedByGoal[assignment.GoalID] = assignment
	}

	editedGoals := make(map[string]struct{}, len(edited))
	for _, assignment := range edited {
		if assignment.GoalID == "" {
			changes.Added = append(changes.Added, assignment)
			continue
		}
		editedGoals[assignment.GoalID] = struct{}{}

		current, ok := persistedByGoal[assignment.GoalID]
		if !ok {
			changes.Added = append(changes.Added, assignment)
			continue
		}
		if goalContentChanged(current.Goal, assignment.Goal) {
			updated := assignment.Goal
			updated.ID = current.GoalID
			changes.Updated = append(changes.Updated, updated)
		}
	}

	for _, assignment := range persisted {
		if _, ok := editedGoals[assignment.GoalID]; !ok {
			changes.Removed = append(changes.Removed, assignment.GoalID)
		}
	}

	return changes
}

func goalContentChanged(persisted, edited Goal) bool {
	if persisted.Title != edited.Title ||
		persisted.Description != edited.Description ||
		persisted.Importance != edited.Importance ||
		persisted.Weightage != edited.Weightage {
		return true
	}
	return !sameCategorySet(persisted.CategoryIDs, edited.CategoryIDs)
}

func sameCategorySet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
