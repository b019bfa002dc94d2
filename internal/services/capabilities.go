package services

import (
	"context"
	"strconv"

	"github.com/abenson/pbbdash/internal/upload"
)

// Default form parameters matching the remote service contracts.
const (
	// DefaultOrgURL is substituted when the analyst leaves the organization
	// website blank.
	DefaultOrgURL = "https://www.example.gov"
	// DefaultProgramsPerDepartment is the inventory service default.
	DefaultProgramsPerDepartment = 5
	// DefaultCostThreshold is the evaluation service default, in dollars.
	DefaultCostThreshold = 100000
)

// ProgramInventory uploads the positions file and asks the inventory service
// to identify programs. Required parts: file, org_url, programs_per_department.
func (c *Client) ProgramInventory(ctx context.Context, ep Endpoint, positions upload.File, orgURL string, programsPerDept int) CallResult {
	if orgURL == "" {
		orgURL = DefaultOrgURL
	}
	if programsPerDept <= 0 {
		programsPerDept = DefaultProgramsPerDepartment
	}
	return c.Call(ctx, ep,
		map[string]upload.File{"file": positions},
		map[string]string{
			"org_url":                 orgURL,
			"programs_per_department": strconv.Itoa(programsPerDept),
		})
}

// BudgetAllocation sends the program inventory and department budget files to
// the allocation service, which distributes budgets across programs.
func (c *Client) BudgetAllocation(ctx context.Context, ep Endpoint, inventory, budgets upload.File) CallResult {
	return c.Call(ctx, ep,
		map[string]upload.File{
			"program_inventory_file": inventory,
			"department_budget_file": budgets,
		}, nil)
}

// ProgramEvaluation scores programs strategically given a programs+costs
// spreadsheet, the government website, and a cost threshold in dollars.
func (c *Client) ProgramEvaluation(ctx context.Context, ep Endpoint, programsWithCosts upload.File, govURL string, costThreshold int) CallResult {
	if govURL == "" {
		govURL = DefaultOrgURL
	}
	if costThreshold <= 0 {
		costThreshold = DefaultCostThreshold
	}
	return c.Call(ctx, ep,
		map[string]upload.File{"file": programsWithCosts},
		map[string]string{
			"government_website_url": govURL,
			"cost_threshold":         strconv.Itoa(costThreshold),
		})
}

// ProgramInsights asks for cost-saving and revenue recommendations for the
// named organization.
func (c *Client) ProgramInsights(ctx context.Context, ep Endpoint, file upload.File, orgName string) CallResult {
	return c.Call(ctx, ep,
		map[string]upload.File{"file": file},
		map[string]string{"organization_name": orgName})
}

// BenchmarkAnalysis submits a spreadsheet to the benchmark analyzer for
// comparison against government benchmarking data.
func (c *Client) BenchmarkAnalysis(ctx context.Context, ep Endpoint, file upload.File) CallResult {
	return c.Call(ctx, ep, map[string]upload.File{"file": file}, nil)
}
