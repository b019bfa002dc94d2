package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/fallback"
	"github.com/abenson/pbbdash/internal/logging"
	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/upload"
)

var tracer = otel.Tracer("github.com/abenson/pbbdash/internal/workflow")

// SummaryStore receives the finished summary. Implemented by the session
// store; the publish is a single wholesale assignment so readers never
// observe a partially updated summary.
type SummaryStore interface {
	Publish(Summary)
}

// Sequencer drives the fixed analysis pipeline. One run executes end-to-end
// on the calling goroutine; steps are strictly sequential and a run is not
// reentrant.
type Sequencer struct {
	caller    ServiceCaller
	provider  *fallback.Provider
	endpoints map[services.Capability]services.Endpoint
	renderer  Renderer
	progress  ProgressReporter
	scoring   ScoringStrategy
	store     SummaryStore
	logger    logging.Logger
	clock     func() time.Time
	insights  bool

	state    State
	outcomes []StepOutcome
}

// SequencerOption configures a Sequencer during construction.
type SequencerOption func(*Sequencer)

// WithProgressReporter sets the progress collaborator (default: discard).
func WithProgressReporter(p ProgressReporter) SequencerOption {
	return func(s *Sequencer) { s.progress = p }
}

// WithScoringStrategy selects the strategic scoring strategy
// (default: the fixture strategy, matching observed behavior).
func WithScoringStrategy(st ScoringStrategy) SequencerOption {
	return func(s *Sequencer) { s.scoring = st }
}

// WithInsights enables the optional insights step.
func WithInsights(enabled bool) SequencerOption {
	return func(s *Sequencer) { s.insights = enabled }
}

// WithStore sets the session store the finished summary is published to.
func WithStore(st SummaryStore) SequencerOption {
	return func(s *Sequencer) { s.store = st }
}

// WithSequencerLogger configures structured logging.
func WithSequencerLogger(l logging.Logger) SequencerOption {
	return func(s *Sequencer) { s.logger = l }
}

// WithClock overrides the time source used for outcome timestamps.
func WithClock(clock func() time.Time) SequencerOption {
	return func(s *Sequencer) { s.clock = clock }
}

// NewSequencer creates a Sequencer over the given collaborators.
func NewSequencer(
	caller ServiceCaller,
	provider *fallback.Provider,
	endpoints map[services.Capability]services.Endpoint,
	renderer Renderer,
	opts ...SequencerOption,
) *Sequencer {
	s := &Sequencer{
		caller:    caller,
		provider:  provider,
		endpoints: endpoints,
		renderer:  renderer,
		progress:  NullProgressReporter{},
		logger:    logging.NewZerologAdapter(zerolog.Nop()),
		clock:     time.Now,
		state:     Idle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scoring == nil {
		s.scoring = FixtureScoring{Provider: provider}
	}
	return s
}

// State returns the sequencer's current state.
func (s *Sequencer) State() State { return s.state }

// Outcomes returns the step outcomes recorded so far in the current run.
func (s *Sequencer) Outcomes() []StepOutcome { return s.outcomes }

// Run executes the full pipeline for the given inputs. On success exactly one
// Summary is produced, rendered through the Renderer, and published to the
// store. The first step Failure halts the run: the sequencer transitions to
// Failed, surfaces the failure verbatim through RenderError, and no partial
// aggregation occurs.
//
// A missing upload is a configuration error detected before any step runs;
// it is returned without invoking the Renderer, matching the UI contract that
// the triggering action is disabled until both files are present.
func (s *Sequencer) Run(ctx context.Context, in Inputs) (Summary, error) {
	if err := in.Positions.Validate(); err != nil {
		return Summary{}, apperrors.NewConfigError("positions file: %v", err)
	}
	if err := in.Budgets.Validate(); err != nil {
		return Summary{}, apperrors.NewConfigError("budgets file: %v", err)
	}

	ctx, span := tracer.Start(ctx, "workflow.Run")
	defer span.End()

	s.outcomes = nil

	// Step 1: program inventory.
	s.progress.ReportProgress(ProgressInventory, "Step 1/3: Identifying programs...")
	s.state = RunningInventory
	res := s.runInventory(ctx, in)
	if !res.OK() {
		return s.fail(span, StepInventory, res.FailureMessage())
	}
	var inv services.InventoryPayload
	if err := res.Decode(string(StepInventory), &inv); err != nil {
		return s.fail(span, StepInventory, err.Error())
	}
	s.record(StepInventory, res, ProgressCost)

	// Step 2: cost prediction, fed by the inventory step's output.
	s.progress.ReportProgress(ProgressCost, "Step 2/3: Predicting program costs...")
	s.state = RunningCostPrediction
	res = s.runCostPrediction(ctx, in, inv.Programs)
	if !res.OK() {
		return s.fail(span, StepCost, res.FailureMessage())
	}
	var alloc services.AllocationPayload
	if err := res.Decode(string(StepCost), &alloc); err != nil {
		return s.fail(span, StepCost, err.Error())
	}
	s.record(StepCost, res, ProgressScoring)

	totalBudget := alloc.TotalBudget
	if totalBudget <= 0 {
		totalBudget = DefaultTotalBudget
	}
	costsFile, err := programsWithCostsFile(inv.Programs, totalBudget)
	if err != nil {
		return s.fail(span, StepCost, fmt.Sprintf("serialize programs with costs: %v", err))
	}

	// Step 3: strategic scoring, via the configured strategy.
	s.progress.ReportProgress(ProgressScoring, "Step 3/3: Scoring programs strategically...")
	s.state = RunningScoring
	res = s.scoring.Score(ctx, ScoringInput{
		ProgramsWithCosts: costsFile,
		GovURL:            in.OrgURL,
		CostThreshold:     in.CostThreshold,
	})
	if !res.OK() {
		return s.fail(span, StepScoring, res.FailureMessage())
	}
	s.record(StepScoring, res, ProgressInsights)

	// Optional step 4: insights.
	if s.insights {
		s.progress.ReportProgress(ProgressInsights, "Generating recommendations...")
		s.state = RunningInsights
		res = s.runInsights(ctx, in, costsFile)
		if !res.OK() {
			return s.fail(span, StepInsights, res.FailureMessage())
		}
		s.record(StepInsights, res, progressInsightsDone)
	} else {
		s.progress.ReportProgress(ProgressInsights, "Aggregating results...")
	}

	s.state = Aggregating
	summary, err := Aggregate(s.outcomes)
	if err != nil {
		return s.fail(span, StepScoring, fmt.Sprintf("aggregate results: %v", err))
	}

	s.state = Completed
	if s.store != nil {
		s.store.Publish(summary)
	}
	s.progress.ReportProgress(ProgressComplete, "Analysis complete")
	s.renderer.RenderSuccess(summary)
	s.logger.Info("workflow completed",
		logging.Int("programs", summary.TotalPrograms),
		logging.Float64("total_budget", summary.TotalBudget))
	span.SetAttributes(attribute.Int("programs", summary.TotalPrograms))
	return summary, nil
}

// progressInsightsDone is the outcome percentage for a completed insights
// step, between the ProgressInsights milestone and completion.
const progressInsightsDone = 95

// runInventory executes the inventory step, substituting the demo provider
// for a placeholder endpoint.
func (s *Sequencer) runInventory(ctx context.Context, in Inputs) services.CallResult {
	ep := s.endpoints[services.CapabilityInventory]
	if s.provider.ShouldFallback(ep) {
		s.logger.Debug("inventory endpoint unconfigured, using demo data")
		return s.provider.Inventory(in.Positions)
	}
	return s.caller.ProgramInventory(ctx, ep, in.Positions, in.OrgURL, in.ProgramsPerDepartment)
}

// runCostPrediction executes the allocation step against the serialized
// inventory output.
func (s *Sequencer) runCostPrediction(ctx context.Context, in Inputs, programs []services.Program) services.CallResult {
	ep := s.endpoints[services.CapabilityAllocation]
	if s.provider.ShouldFallback(ep) {
		s.logger.Debug("allocation endpoint unconfigured, using demo data")
		return s.provider.Allocation()
	}
	inventoryFile, err := inventoryToFile(programs)
	if err != nil {
		return services.Failure(fmt.Sprintf("serialize program inventory: %v", err))
	}
	return s.caller.BudgetAllocation(ctx, ep, inventoryFile, in.Budgets)
}

// runInsights executes the optional insights step against the programs+costs
// spreadsheet.
func (s *Sequencer) runInsights(ctx context.Context, in Inputs, costsFile upload.File) services.CallResult {
	ep := s.endpoints[services.CapabilityInsights]
	if s.provider.ShouldFallback(ep) {
		s.logger.Debug("insights endpoint unconfigured, using demo data")
		return s.provider.Insights(in.OrgName)
	}
	return s.caller.ProgramInsights(ctx, ep, costsFile, in.OrgName)
}

// fail transitions to the terminal Failed state, surfaces the failure
// verbatim through the Renderer, and returns the run error.
func (s *Sequencer) fail(span trace.Span, step Step, message string) (Summary, error) {
	s.state = Failed
	s.logger.Error("workflow step failed", fmt.Errorf("%s", message), logging.String("step", string(step)))
	span.SetStatus(codes.Error, message)
	s.renderer.RenderError(step, message)
	return Summary{}, fmt.Errorf("%s step failed: %s", step, message)
}

// record appends a step outcome with the completion percentage.
func (s *Sequencer) record(step Step, res services.CallResult, progress int) {
	s.outcomes = append(s.outcomes, StepOutcome{
		Step:        step,
		Result:      res,
		Progress:    progress,
		CompletedAt: s.clock(),
	})
}
