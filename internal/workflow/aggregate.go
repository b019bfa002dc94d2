package workflow

import (
	"fmt"

	"github.com/abenson/pbbdash/internal/services"
)

// DefaultTotalBudget is substituted when the cost-prediction payload carries
// no total_budget field. Documented default; mirrors the original dashboard.
const DefaultTotalBudget = 750000.0

// Aggregate folds an ordered sequence of step outcomes into a single
// WorkflowSummary. It is a pure fold with no side effects and is idempotent:
// aggregating the same outcome sequence twice yields identical summaries.
// The completion timestamp is taken from the final outcome, never from the
// wall clock.
//
// Program entries are counted individually, without deduplication: duplicate
// programs across synthesized departments each count.
func Aggregate(outcomes []StepOutcome) (Summary, error) {
	if len(outcomes) == 0 {
		return Summary{}, fmt.Errorf("no step outcomes to aggregate")
	}

	var summary Summary
	var haveInventory, haveScoring bool

	for _, o := range outcomes {
		if !o.Result.OK() {
			return Summary{}, fmt.Errorf("cannot aggregate: %s step failed: %s", o.Step, o.Result.FailureMessage())
		}
		switch o.Step {
		case StepInventory:
			var p services.InventoryPayload
			if err := o.Result.Decode(string(o.Step), &p); err != nil {
				return Summary{}, err
			}
			summary.TotalPrograms = len(p.Programs)
			haveInventory = true
		case StepCost:
			var p services.AllocationPayload
			if err := o.Result.Decode(string(o.Step), &p); err != nil {
				return Summary{}, err
			}
			summary.TotalBudget = p.TotalBudget
		case StepScoring:
			var p services.EvaluationPayload
			if err := o.Result.Decode(string(o.Step), &p); err != nil {
				return Summary{}, err
			}
			summary.PotentialSavings = p.PotentialSavings
			summary.CriticalPrograms = p.CriticalPrograms
			summary.OptimizationTargets = p.OptimizationTargets
			haveScoring = true
		case StepInsights:
			var p services.InsightsPayload
			if err := o.Result.Decode(string(o.Step), &p); err != nil {
				return Summary{}, err
			}
			summary.Recommendations = p.Recommendations
		}
	}

	if !haveInventory {
		return Summary{}, fmt.Errorf("missing inventory outcome")
	}
	if !haveScoring {
		return Summary{}, fmt.Errorf("missing scoring outcome")
	}

	if summary.TotalBudget <= 0 {
		summary.TotalBudget = DefaultTotalBudget
	}
	divisor := summary.TotalPrograms
	if divisor < 1 {
		divisor = 1
	}
	summary.AvgProgramCost = summary.TotalBudget / float64(divisor)
	summary.CompletedAt = outcomes[len(outcomes)-1].CompletedAt
	return summary, nil
}
