package workflow

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/abenson/pbbdash/internal/services"
)

func outcome(t *testing.T, step Step, payload interface{}, completedAt time.Time) StepOutcome {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return StepOutcome{Step: step, Result: services.Success(raw), CompletedAt: completedAt}
}

func fullOutcomes(t *testing.T) []StepOutcome {
	t.Helper()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	return []StepOutcome{
		outcome(t, StepInventory, services.InventoryPayload{Programs: []services.Program{
			{Department: "Finance", Program: "Finance Operations"},
			{Department: "Finance", Program: "Finance Support Services"},
			{Department: "Parks", Program: "Parks Operations"},
		}}, base),
		outcome(t, StepCost, services.AllocationPayload{TotalBudget: 600000}, base.Add(time.Second)),
		outcome(t, StepScoring, services.EvaluationPayload{
			CriticalPrograms:    4,
			OptimizationTargets: 7,
			PotentialSavings:    120000,
		}, base.Add(2*time.Second)),
		outcome(t, StepInsights, services.InsightsPayload{
			Recommendations: "Consolidate overlapping support programs.",
		}, base.Add(3*time.Second)),
	}
}

func TestAggregate_FullRun(t *testing.T) {
	outcomes := fullOutcomes(t)
	got, err := Aggregate(outcomes)
	if err != nil {
		t.Fatal(err)
	}

	want := Summary{
		TotalPrograms:       3,
		TotalBudget:         600000,
		AvgProgramCost:      200000,
		PotentialSavings:    120000,
		CriticalPrograms:    4,
		OptimizationTargets: 7,
		Recommendations:     "Consolidate overlapping support programs.",
		CompletedAt:         outcomes[len(outcomes)-1].CompletedAt,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	outcomes := fullOutcomes(t)
	first, err := Aggregate(outcomes)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Aggregate(outcomes)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated aggregation diverged (-first +second):\n%s", diff)
	}
}

func TestAggregate_AverageCost(t *testing.T) {
	base := time.Now()
	outcomes := []StepOutcome{
		outcome(t, StepInventory, services.InventoryPayload{Programs: []services.Program{
			{Department: "Finance", Program: "A"},
			{Department: "Finance", Program: "B"},
			{Department: "Parks", Program: "C"},
		}}, base),
		outcome(t, StepCost, services.AllocationPayload{TotalBudget: 550000}, base),
		outcome(t, StepScoring, services.EvaluationPayload{}, base),
	}
	got, err := Aggregate(outcomes)
	if err != nil {
		t.Fatal(err)
	}
	if got.AvgProgramCost != 550000.0/3 {
		t.Errorf("AvgProgramCost = %v, want %v", got.AvgProgramCost, 550000.0/3)
	}
}

func TestAggregate_DefaultBudgetWhenAllocationEmpty(t *testing.T) {
	base := time.Now()
	outcomes := []StepOutcome{
		outcome(t, StepInventory, services.InventoryPayload{Programs: []services.Program{
			{Department: "Finance", Program: "Finance Operations"},
			{Department: "Parks", Program: "Parks Operations"},
		}}, base),
		outcome(t, StepCost, services.AllocationPayload{}, base),
		outcome(t, StepScoring, services.EvaluationPayload{CriticalPrograms: 1}, base),
	}
	got, err := Aggregate(outcomes)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalBudget != DefaultTotalBudget {
		t.Errorf("TotalBudget = %v, want default %v", got.TotalBudget, DefaultTotalBudget)
	}
	if got.AvgProgramCost != DefaultTotalBudget/2 {
		t.Errorf("AvgProgramCost = %v, want %v", got.AvgProgramCost, DefaultTotalBudget/2)
	}
}

func TestAggregate_EmptyInventoryAvoidsDivisionByZero(t *testing.T) {
	base := time.Now()
	outcomes := []StepOutcome{
		outcome(t, StepInventory, services.InventoryPayload{}, base),
		outcome(t, StepScoring, services.EvaluationPayload{}, base),
	}
	got, err := Aggregate(outcomes)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalPrograms != 0 {
		t.Errorf("TotalPrograms = %d, want 0", got.TotalPrograms)
	}
	if got.AvgProgramCost != DefaultTotalBudget {
		t.Errorf("AvgProgramCost = %v, want %v", got.AvgProgramCost, DefaultTotalBudget)
	}
}

func TestAggregate_Errors(t *testing.T) {
	base := time.Now()
	inventory := outcome(t, StepInventory, services.InventoryPayload{}, base)
	scoring := outcome(t, StepScoring, services.EvaluationPayload{}, base)

	cases := []struct {
		name     string
		outcomes []StepOutcome
		want     string
	}{
		{"empty", nil, "no step outcomes"},
		{"missing inventory", []StepOutcome{scoring}, "missing inventory outcome"},
		{"missing scoring", []StepOutcome{inventory}, "missing scoring outcome"},
		{
			"failed step",
			[]StepOutcome{inventory, {Step: StepScoring, Result: services.Failure("boom")}},
			"scoring step failed: boom",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Aggregate(tc.outcomes)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want containing %q", err, tc.want)
			}
		})
	}
}

// Aggregation is a pure fold: for any synthesized inventory the summary is a
// deterministic function of the outcomes, and the average is always the
// budget divided by the program count.
func TestAggregate_AverageProperty(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	properties := gopter.NewProperties(params)

	properties.Property("avg cost is budget over count", prop.ForAll(
		func(names []string, budget float64) bool {
			programs := make([]services.Program, len(names))
			for i, n := range names {
				programs[i] = services.Program{Department: "Finance", Program: n}
			}
			invRaw, _ := json.Marshal(services.InventoryPayload{Programs: programs})
			allocRaw, _ := json.Marshal(services.AllocationPayload{TotalBudget: budget})
			evalRaw, _ := json.Marshal(services.EvaluationPayload{})
			outcomes := []StepOutcome{
				{Step: StepInventory, Result: services.Success(invRaw)},
				{Step: StepCost, Result: services.Success(allocRaw)},
				{Step: StepScoring, Result: services.Success(evalRaw)},
			}

			summary, err := Aggregate(outcomes)
			if err != nil {
				return false
			}
			wantBudget := budget
			if wantBudget <= 0 {
				wantBudget = DefaultTotalBudget
			}
			divisor := len(programs)
			if divisor < 1 {
				divisor = 1
			}
			return summary.TotalPrograms == len(programs) &&
				summary.AvgProgramCost == wantBudget/float64(divisor)
		},
		gen.SliceOf(gen.Identifier()),
		gen.Float64Range(0, 1e9),
	))

	properties.TestingRun(t)
}
