package appraisal

import "testing"

func namedGoal(goalID, title string, weightage int, categories ...string) GoalAssignment {
	return GoalAssignment{
		ID:     "assign-" + goalID,
		GoalID: goalID,
		Goal: Goal{
			ID:          goalID,
			Title:       title,
			Importance:  ImportanceMedium,
			Weightage:   weightage,
			CategoryIDs: categories,
		},
	}
}

func TestDiffIdenticalSetsIsEmpty(t *testing.T) {
	sets := [][]GoalAssignment{
		nil,
		{namedGoal("g1", "Delivery", 100)},
		{namedGoal("g1", "Delivery", 60, "cat-a"), namedGoal("g2", "Quality", 40, "cat-b", "cat-c")},
	}
	for _, set := range sets {
		changes := Diff(set, set)
		if !changes.Empty() {
			t.Fatalf("expected empty diff for identical sets, got %+v", changes)
		}
	}
}

func TestDiffDetectsAdditions(t *testing.T) {
	persisted := []GoalAssignment{namedGoal("g1", "Delivery", 60)}
	edited := []GoalAssignment{
		namedGoal("g1", "Delivery", 60),
		{Goal: Goal{Title: "Quality", Importance: ImportanceHigh, Weightage: 40}},
	}

	changes := Diff(persisted, edited)
	if len(changes.Added) != 1 || len(changes.Removed) != 0 || len(changes.Updated) != 0 {
		t.Fatalf("expected one addition, got %+v", changes)
	}
	if changes.Added[0].Goal.Title != "Quality" {
		t.Fatalf("unexpected added goal: %+v", changes.Added[0])
	}
}

func TestDiffDetectsRemovals(t *testing.T) {
	persisted := []GoalAssignment{
		namedGoal("g1", "Delivery", 60),
		namedGoal("g2", "Quality", 40),
	}
	edited := []GoalAssignment{namedGoal("g1", "Delivery", 60)}

	changes := Diff(persisted, edited)
	if len(changes.Removed) != 1 || changes.Removed[0] != "g2" {
		t.Fatalf("expected g2 removed, got %+v", changes)
	}
	if len(changes.Added) != 0 || len(changes.Updated) != 0 {
		t.Fatalf("expected removal only, got %+v", changes)
	}
}

func TestDiffDetectsContentUpdates(t *testing.T) {
	persisted := []GoalAssignment{
		namedGoal("g1", "Delivery", 60, "cat-a"),
		namedGoal("g2", "Quality", 40, "cat-b"),
	}
	edited := []GoalAssignment{
		namedGoal("g1", "Delivery excellence", 70, "cat-a"),
		namedGoal("g2", "Quality", 30, "cat-b", "cat-c"),
	}

	changes := Diff(persisted, edited)
	if len(changes.Updated) != 2 {
		t.Fatalf("expected two updates, got %+v", changes)
	}
	if len(changes.Added) != 0 || len(changes.Removed) != 0 {
		t.Fatalf("expected updates only, got %+v", changes)
	}
	for _, goal := range changes.Updated {
		if goal.ID != "g1" && goal.ID != "g2" {
			t.Fatalf("update carries wrong identity: %+v", goal)
		}
	}
}

func TestDiffMatchesByIdentityNotPosition(t *testing.T) {
	persisted := []GoalAssignment{
		namedGoal("g1", "Delivery", 60),
		namedGoal("g2", "Quality", 40),
	}
	edited := []GoalAssignment{
		namedGoal("g2", "Quality", 40),
		namedGoal("g1", "Delivery", 60),
	}

	changes := Diff(persisted, edited)
	if !changes.Empty() {
		t.Fatalf("reordering alone must not produce changes, got %+v", changes)
	}
}

func TestDiffCategorySetIsOrderInsensitive(t *testing.T) {
	persisted := []GoalAssignment{namedGoal("g1", "Delivery", 100, "cat-a", "cat-b")}
	edited := []GoalAssignment{namedGoal("g1", "Delivery", 100, "cat-b", "cat-a")}

	if changes := Diff(persisted, edited); !changes.Empty() {
		t.Fatalf("category order must not matter, got %+v", changes)
	}

	edited = []GoalAssignment{namedGoal("g1", "Delivery", 100, "cat-a")}
	changes := Diff(persisted, edited)
	if len(changes.Updated) != 1 {
		t.Fatalf("expected category removal to surface as update, got %+v", changes)
	}
}

func TestDiffDoesNotMutatePersisted(t *testing.T) {
	persisted := []GoalAssignment{namedGoal("g1", "Delivery", 60)}
	edited := []GoalAssignment{namedGoal("g1", "Changed", 40)}

	Diff(persisted, edited)
	if persisted[0].Goal.Title != "Delivery" || persisted[0].Goal.Weightage != 60 {
		t.Fatalf("persisted collection was mutated: %+v", persisted[0])
	}
}

func TestDiffUpdateNeverTouchesRatings(t *testing.T) {
	persisted := []GoalAssignment{namedGoal("g1", "Delivery", 60)}
	persisted[0].SelfRating = intPtr(4)
	persisted[0].SelfComment = "mine"

	edited := []GoalAssignment{namedGoal("g1", "Delivery updated", 60)}
	changes := Diff(persisted, edited)
	if len(changes.Updated) != 1 {
		t.Fatalf("expected one update, got %+v", changes)
	}
	// Updates are goal content only; there is no field on the change set
	// through which ratings could travel.
	if changes.Updated[0].Title != "Delivery updated" {
		t.Fatalf("unexpected update content: %+v", changes.Updated[0])
	}
}
