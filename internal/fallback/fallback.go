// Package fallback produces deterministic substitute results for remote
// capabilities that are unconfigured or unavailable. The substituted numbers
// are documented placeholders, not real predictions; they exist so an analyst
// can exercise the full workflow before wiring real endpoints.
package fallback

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/logging"
	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/upload"
)

// PlaceholderMarker identifies an endpoint the user has not configured yet.
// Deployment templates ship base URLs like "https://your-app-name.onrender.com";
// seeing the marker means the real service does not exist.
const PlaceholderMarker = "your-app-name"

// MaxFallbackDepartments caps how many distinct departments the synthesized
// inventory covers.
const MaxFallbackDepartments = 10

// ProgramsPerDepartment is the number of canned programs synthesized for each
// distinct department.
const ProgramsPerDepartment = 2

// Demo fixture constants. The evaluation numbers mirror the placeholder
// scoring block of the original dashboard.
const (
	FixtureTotalBudget         = 750000.0
	FixtureCriticalPrograms    = 8
	FixtureOptimizationTargets = 15
	FixtureHighCostPrograms    = 6
	FixturePotentialSavings    = 185000.0
)

// fixtureDepartments is substituted when the uploaded spreadsheet cannot be
// parsed at all.
var fixtureDepartments = []string{"Finance", "Public Works"}

// Provider synthesizes demo results per capability.
type Provider struct {
	logger logging.Logger
}

// NewProvider creates a Provider. A nil logger disables logging.
func NewProvider(logger logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewZerologAdapter(zerolog.Nop())
	}
	return &Provider{logger: logger}
}

// ShouldFallback reports whether the endpoint is a known placeholder, meaning
// the user has not configured a real service yet. It is a pure string check:
// no network reachability is consulted.
func ShouldFallback(ep services.Endpoint) bool {
	return strings.Contains(ep.BaseURL, PlaceholderMarker)
}

// ShouldFallback is the method form of the package predicate.
func (p *Provider) ShouldFallback(ep services.Endpoint) bool {
	return ShouldFallback(ep)
}

// Inventory synthesizes a program inventory from the uploaded positions
// spreadsheet. The first column is read as the department; the result is
// exactly ProgramsPerDepartment canned programs per distinct department,
// capped at the first MaxFallbackDepartments departments in input order.
//
// Given identical spreadsheet bytes the same department and program lists are
// produced: the synthesis involves no randomness. If the spreadsheet cannot
// be parsed, a fixed two-department fixture is substituted and the parse
// failure is recovered locally, never surfaced to the user.
func (p *Provider) Inventory(positions upload.File) services.CallResult {
	departments, err := extractDepartments(positions)
	if err != nil {
		p.logger.Debug("fallback inventory: unparseable spreadsheet, using fixture",
			logging.String("file", positions.Name), logging.Err(err))
		departments = fixtureDepartments
	}

	programs := make([]services.Program, 0, len(departments)*ProgramsPerDepartment)
	for _, dept := range departments {
		programs = append(programs, cannedPrograms(dept)...)
	}

	payload, _ := json.Marshal(services.InventoryPayload{
		Programs: programs,
		Message:  "demo program inventory (no live endpoint configured)",
	})
	return services.Success(payload)
}

// Allocation returns the fixed budget allocation fixture.
func (p *Provider) Allocation() services.CallResult {
	payload, _ := json.Marshal(services.AllocationPayload{
		TotalBudget: FixtureTotalBudget,
		Message:     "demo budget allocation (no live endpoint configured)",
	})
	return services.Success(payload)
}

// Evaluation returns the fixed strategic scoring fixture.
func (p *Provider) Evaluation() services.CallResult {
	payload, _ := json.Marshal(services.EvaluationPayload{
		CriticalPrograms:    FixtureCriticalPrograms,
		OptimizationTargets: FixtureOptimizationTargets,
		HighCostPrograms:    FixtureHighCostPrograms,
		PotentialSavings:    FixturePotentialSavings,
		Message:             "demo strategic scoring (no live endpoint configured)",
	})
	return services.Success(payload)
}

// Insights returns a fixed recommendation fixture for the organization.
func (p *Provider) Insights(orgName string) services.CallResult {
	if orgName == "" {
		orgName = "your organization"
	}
	payload, _ := json.Marshal(services.InsightsPayload{
		Recommendations: fmt.Sprintf(
			"Review the identified optimization targets for %s and consolidate overlapping support programs to realize the estimated savings.",
			orgName),
		Message: "demo insights (no live endpoint configured)",
	})
	return services.Success(payload)
}

// extractDepartments reads distinct first-column values from a CSV buffer,
// preserving input order. A leading "department" header cell is skipped.
func extractDepartments(f upload.File) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(f.Content))
	r.FieldsPerRecord = -1 // ragged rows are fine; only column one matters

	seen := make(map[string]bool)
	var departments []string
	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.ParseError{Source: f.Name, Message: err.Error()}
		}
		if len(record) == 0 {
			continue
		}
		dept := strings.TrimSpace(record[0])
		if first {
			first = false
			if strings.EqualFold(dept, "department") {
				continue
			}
		}
		if dept == "" || seen[dept] {
			continue
		}
		seen[dept] = true
		departments = append(departments, dept)
		if len(departments) == MaxFallbackDepartments {
			break
		}
	}
	if len(departments) == 0 {
		return nil, apperrors.ParseError{Source: f.Name, Message: "no department values found"}
	}
	return departments, nil
}

// cannedPrograms returns the fixed per-department program pair.
func cannedPrograms(dept string) []services.Program {
	return []services.Program{
		{
			Department:   dept,
			Program:      dept + " Operations",
			Description:  fmt.Sprintf("Core service delivery for the %s department.", dept),
			KeyPositions: "Director; Operations Manager; Analyst",
		},
		{
			Department:   dept,
			Program:      dept + " Support Services",
			Description:  fmt.Sprintf("Administrative and support functions for the %s department.", dept),
			KeyPositions: "Administrative Coordinator; Specialist",
		},
	}
}
