package e2e

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// placeholderBase keeps every capability on the built-in demo path so the
// suite runs without network access.
const placeholderBase = "https://your-app-name.onrender.com"

func placeholderEnv() []string {
	env := os.Environ()
	for _, key := range []string{
		"PBBDASH_INVENTORY_URL",
		"PBBDASH_ALLOCATION_URL",
		"PBBDASH_EVALUATION_URL",
		"PBBDASH_INSIGHTS_URL",
		"PBBDASH_BENCHMARK_URL",
	} {
		env = append(env, key+"="+placeholderBase)
	}
	return env
}

func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "pbbdash"
	if runtime.GOOS == "windows" {
		binName = "pbbdash.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/pbbdash")
	cmd.Dir = "../.."
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

func writeUploads(t *testing.T) (positions, budgets string) {
	t.Helper()
	dir := t.TempDir()
	positions = filepath.Join(dir, "positions.csv")
	budgets = filepath.Join(dir, "budgets.csv")
	if err := os.WriteFile(positions,
		[]byte("department,position\nFinance,Analyst\nParks,Ranger\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(budgets,
		[]byte("department,budget\nFinance,400000\nParks,350000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return positions, budgets
}

func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e in short mode")
	}
	binPath := buildBinary(t)
	positions, budgets := writeUploads(t)
	summaryPath := filepath.Join(t.TempDir(), "summary.json")

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Version",
			args:     []string{"-version"},
			wantOut:  "pbbdash",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"-h"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Missing positions file",
			args:     []string{"-budgets", budgets},
			wantOut:  "positions",
			wantCode: 4,
		},
		{
			name:     "Demo analysis",
			args:     []string{"-q", "-positions", positions, "-budgets", budgets, "-output", summaryPath},
			wantCode: 0,
		},
		{
			name:     "Tool inventory",
			args:     []string{"-q", "-tool", "program-inventory", "-positions", positions},
			wantOut:  "Finance Operations",
			wantCode: 0,
		},
		{
			name:     "Unknown tool",
			args:     []string{"-tool", "nonsense", "-positions", positions},
			wantOut:  "unknown tool",
			wantCode: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tc.args...)
			cmd.Env = placeholderEnv()
			out, err := cmd.CombinedOutput()

			code := 0
			if exitErr, ok := err.(*exec.ExitError); ok {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("run failed: %v\n%s", err, out)
			}
			if code != tc.wantCode {
				t.Errorf("exit code = %d, want %d\noutput:\n%s", code, tc.wantCode, out)
			}
			if tc.wantOut != "" &&
				!strings.Contains(strings.ToLower(string(out)), strings.ToLower(tc.wantOut)) {
				t.Errorf("output missing %q:\n%s", tc.wantOut, out)
			}
		})
	}

	// The demo analysis run above wrote the summary file; two departments in
	// the uploads synthesize four demo programs.
	data, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var summary struct {
		TotalPrograms int     `json:"total_programs"`
		TotalBudget   float64 `json:"total_budget"`
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.TotalPrograms != 4 {
		t.Errorf("total_programs = %d, want 4", summary.TotalPrograms)
	}
	if summary.TotalBudget != 750000 {
		t.Errorf("total_budget = %v, want 750000", summary.TotalBudget)
	}
}
