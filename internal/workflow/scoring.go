package workflow

import (
	"context"

	"github.com/abenson/pbbdash/internal/fallback"
	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/upload"
)

// ScoringInput bundles the material the strategic scoring step consumes.
type ScoringInput struct {
	// ProgramsWithCosts is the programs+costs spreadsheet synthesized from
	// the prior steps' outputs.
	ProgramsWithCosts upload.File
	// GovURL is the government website URL form field.
	GovURL string
	// CostThreshold is the evaluation threshold in dollars.
	CostThreshold int
}

// ScoringStrategy produces the strategic scoring step's result. The live
// evaluation service has never been wired into the aggregate in practice, so
// the step stays pluggable: a fixture strategy matching observed behavior,
// and a live strategy for when the evaluation service is ready.
type ScoringStrategy interface {
	// Name identifies the strategy in logs.
	Name() string
	// Score produces the scoring step's CallResult.
	Score(ctx context.Context, in ScoringInput) services.CallResult
}

// FixtureScoring always returns the fixed demo scoring payload.
type FixtureScoring struct {
	Provider *fallback.Provider
}

// Name identifies the strategy.
func (FixtureScoring) Name() string { return "fixture" }

// Score returns the fixed scoring fixture.
func (s FixtureScoring) Score(context.Context, ScoringInput) services.CallResult {
	return s.Provider.Evaluation()
}

// LiveScoring calls the program evaluation service. If the configured
// endpoint is still a placeholder the fixture is substituted, like every
// other capability.
type LiveScoring struct {
	Caller   ServiceCaller
	Endpoint services.Endpoint
	Provider *fallback.Provider
}

// Name identifies the strategy.
func (LiveScoring) Name() string { return "live" }

// Score calls the evaluation service.
func (s LiveScoring) Score(ctx context.Context, in ScoringInput) services.CallResult {
	if fallback.ShouldFallback(s.Endpoint) {
		return s.Provider.Evaluation()
	}
	return s.Caller.ProgramEvaluation(ctx, s.Endpoint, in.ProgramsWithCosts, in.GovURL, in.CostThreshold)
}
