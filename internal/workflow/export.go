package workflow

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/upload"
)

// inventoryToFile serializes the inventory step's program list to a CSV
// buffer for the cost-prediction call. The original dashboard reused the raw
// positions file here; this chains the step outputs properly instead, since
// cost prediction's contract wants the program inventory, not staff rows.
func inventoryToFile(programs []services.Program) (upload.File, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"Department", "Program", "Description", "Key Positions"}}
	for _, p := range programs {
		records = append(records, []string{p.Department, p.Program, p.Description, p.KeyPositions})
	}
	if err := w.WriteAll(records); err != nil {
		return upload.File{}, err
	}
	return upload.New("program_inventory.csv", buf.Bytes(), upload.KindGenerated), nil
}

// programsWithCostsFile serializes programs plus a uniform per-program cost
// estimate for the scoring and insights calls. The allocation service reports
// only a total; spreading it evenly is the documented approximation until the
// service returns per-program figures.
func programsWithCostsFile(programs []services.Program, totalBudget float64) (upload.File, error) {
	perProgram := 0.0
	if len(programs) > 0 {
		perProgram = totalBudget / float64(len(programs))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"Department", "Program", "Estimated Cost"}}
	for _, p := range programs {
		records = append(records, []string{
			p.Department, p.Program, strconv.FormatFloat(perProgram, 'f', 2, 64),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return upload.File{}, err
	}
	return upload.New("programs_costs.csv", buf.Bytes(), upload.KindGenerated), nil
}
