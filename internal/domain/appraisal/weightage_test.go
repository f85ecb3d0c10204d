package appraisal

import (
	"errors"
	"math/rand"
	"testing"
)

func TestValidateWeightageExactHundred(t *testing.T) {
	if err := ValidateWeightage(weightedGoals(40, 35, 25)); err != nil {
		t.Fatalf("unexpected error for 40/35/25: %v", err)
	}
	if err := ValidateWeightage(weightedGoals(100)); err != nil {
		t.Fatalf("unexpected error for single 100 goal: %v", err)
	}
}

func TestValidateWeightageAdversarialTotals(t *testing.T) {
	for _, weights := range [][]int{{33, 33, 33}, {34, 33, 34}} {
		err := ValidateWeightage(weightedGoals(weights...))
		var weightage *WeightageError
		if !errors.As(err, &weightage) {
			t.Fatalf("expected WeightageError for %v, got %v", weights, err)
		}
		want := 0
		for _, w := range weights {
			want += w
		}
		if weightage.Total != want {
			t.Fatalf("expected reported total %d, got %d", want, weightage.Total)
		}
	}
}

func TestValidateWeightageEmptySet(t *testing.T) {
	err := ValidateWeightage(nil)
	var weightage *WeightageError
	if !errors.As(err, &weightage) || !weightage.Empty {
		t.Fatalf("expected empty-set WeightageError, got %v", err)
	}
}

// Random multisets: validation passes exactly when the integer sum is 100.
func TestValidateWeightageRandomMultisets(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		count := 1 + rng.Intn(8)
		weights := make([]int, count)
		total := 0
		for j := range weights {
			weights[j] = rng.Intn(101)
			total += weights[j]
		}
		err := ValidateWeightage(weightedGoals(weights...))
		if total == 100 && err != nil {
			t.Fatalf("set %v sums to 100 but was rejected: %v", weights, err)
		}
		if total != 100 && err == nil {
			t.Fatalf("set %v sums to %d but was accepted", weights, total)
		}
	}
}

func TestRemainingWeightageNeverFails(t *testing.T) {
	if got := RemainingWeightage(nil); got != 100 {
		t.Fatalf("expected 100 remaining for empty set, got %d", got)
	}
	if got := RemainingWeightage(weightedGoals(40, 35)); got != 25 {
		t.Fatalf("expected 25 remaining, got %d", got)
	}
	if got := RemainingWeightage(weightedGoals(40, 35, 25)); got != 0 {
		t.Fatalf("expected 0 remaining at full allocation, got %d", got)
	}
	if got := RemainingWeightage(weightedGoals(70, 70)); got != 0 {
		t.Fatalf("expected over-allocated set to report 0 remaining, got %d", got)
	}
}
