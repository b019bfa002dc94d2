//go:generate mockgen -source=types.go -destination=mocks/mock_collaborators.go -package=mocks

package workflow

import (
	"context"
	"time"

	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/upload"
)

// Step identifies a workflow step.
type Step string

const (
	StepInventory Step = "inventory"
	StepCost      Step = "cost"
	StepScoring   Step = "scoring"
	StepInsights  Step = "insights"
)

// State is the sequencer's position in the pipeline.
type State int

const (
	// Idle means no run has started.
	Idle State = iota
	// RunningInventory through RunningInsights are the per-step states.
	RunningInventory
	RunningCostPrediction
	RunningScoring
	RunningInsights
	// Aggregating means all steps succeeded and the fold is in progress.
	Aggregating
	// Completed is the terminal success state: exactly one summary exists.
	Completed
	// Failed is the terminal failure state, reachable from any Running state.
	Failed
)

// String returns the state name for logs and tests.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RunningInventory:
		return "running_inventory"
	case RunningCostPrediction:
		return "running_cost_prediction"
	case RunningScoring:
		return "running_scoring"
	case RunningInsights:
		return "running_insights"
	case Aggregating:
		return "aggregating"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Progress milestones reported before each step begins, and the completion
// percentages recorded on each step's outcome. Percentages only ever
// increase within a run.
const (
	ProgressInventory = 10
	ProgressCost      = 40
	ProgressScoring   = 70
	ProgressInsights  = 90
	ProgressComplete  = 100
)

// StepOutcome is a CallResult annotated with its step and the progress
// percentage at the moment it completed.
type StepOutcome struct {
	Step        Step
	Result      services.CallResult
	Progress    int
	CompletedAt time.Time
}

// Summary is the accumulated record of one workflow run. It is created once
// per run, published wholesale to the session store, and overwritten by each
// new run.
type Summary struct {
	TotalPrograms       int       `json:"total_programs"`
	TotalBudget         float64   `json:"total_budget"`
	AvgProgramCost      float64   `json:"avg_program_cost"`
	PotentialSavings    float64   `json:"potential_savings"`
	CriticalPrograms    int       `json:"critical_programs"`
	OptimizationTargets int       `json:"optimization_targets"`
	Recommendations     string    `json:"recommendations,omitempty"`
	CompletedAt         time.Time `json:"completed_at"`
}

// Inputs carries the analyst-provided material for one run.
type Inputs struct {
	// Positions is the staff positions spreadsheet. Required.
	Positions upload.File
	// Budgets is the department budgets spreadsheet. Required.
	Budgets upload.File
	// OrgURL is the organization website; defaults applied downstream.
	OrgURL string
	// OrgName is used by the insights service.
	OrgName string
	// ProgramsPerDepartment tunes the inventory service (default 5).
	ProgramsPerDepartment int
	// CostThreshold tunes the evaluation service, in dollars.
	CostThreshold int
}

// ProgressReporter receives progress milestones. Implemented by the UI layer;
// called by the sequencer before each step and at completion.
type ProgressReporter interface {
	ReportProgress(percent int, message string)
}

// Renderer receives the terminal outcome of a run. Implemented by the UI
// layer. RenderError names the failing step; no partial summary is ever
// rendered as if complete.
type Renderer interface {
	RenderSuccess(summary Summary)
	RenderError(step Step, message string)
}

// ServiceCaller is the slice of the services client the sequencer drives.
// Satisfied by *services.Client; mocked in tests.
type ServiceCaller interface {
	ProgramInventory(ctx context.Context, ep services.Endpoint, positions upload.File, orgURL string, programsPerDept int) services.CallResult
	BudgetAllocation(ctx context.Context, ep services.Endpoint, inventory, budgets upload.File) services.CallResult
	ProgramEvaluation(ctx context.Context, ep services.Endpoint, programsWithCosts upload.File, govURL string, costThreshold int) services.CallResult
	ProgramInsights(ctx context.Context, ep services.Endpoint, file upload.File, orgName string) services.CallResult
}

// NullProgressReporter discards progress updates. Useful for quiet mode
// and testing.
type NullProgressReporter struct{}

// ReportProgress discards the update.
func (NullProgressReporter) ReportProgress(int, string) {}

// ProgressReporterFunc adapts a function to the ProgressReporter interface.
type ProgressReporterFunc func(percent int, message string)

// ReportProgress calls the underlying function.
func (f ProgressReporterFunc) ReportProgress(percent int, message string) { f(percent, message) }
