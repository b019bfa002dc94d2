package workflow

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/upload"
)

func parseCSV(t *testing.T, f upload.File) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(f.Content)).ReadAll()
	if err != nil {
		t.Fatalf("parse generated CSV: %v", err)
	}
	return records
}

func TestInventoryToFile(t *testing.T) {
	programs := []services.Program{
		{Department: "Finance", Program: "Finance Operations", Description: "Core ops", KeyPositions: "Analyst"},
		{Department: "Parks", Program: "Parks Support Services", Description: "Admin", KeyPositions: "Clerk"},
	}
	f, err := inventoryToFile(programs)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "program_inventory.csv" || f.Kind != upload.KindGenerated {
		t.Errorf("file = %s (%s), want program_inventory.csv (generated)", f.Name, f.Kind)
	}

	records := parseCSV(t, f)
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header plus 2", len(records))
	}
	wantHeader := []string{"Department", "Program", "Description", "Key Positions"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}
	if records[1][0] != "Finance" || records[2][1] != "Parks Support Services" {
		t.Errorf("unexpected rows: %v", records[1:])
	}
}

func TestProgramsWithCostsFile_EvenSpread(t *testing.T) {
	programs := []services.Program{
		{Department: "Finance", Program: "A"},
		{Department: "Finance", Program: "B"},
		{Department: "Parks", Program: "C"},
	}
	f, err := programsWithCostsFile(programs, 600000)
	if err != nil {
		t.Fatal(err)
	}

	records := parseCSV(t, f)
	if len(records) != 4 {
		t.Fatalf("got %d rows, want header plus 3", len(records))
	}
	if records[0][2] != "Estimated Cost" {
		t.Errorf("header = %v", records[0])
	}
	for _, row := range records[1:] {
		if row[2] != "200000.00" {
			t.Errorf("cost = %q, want 200000.00", row[2])
		}
	}
}

func TestProgramsWithCostsFile_NoPrograms(t *testing.T) {
	f, err := programsWithCostsFile(nil, 600000)
	if err != nil {
		t.Fatal(err)
	}
	records := parseCSV(t, f)
	if len(records) != 1 {
		t.Errorf("got %d rows, want header only", len(records))
	}
}
