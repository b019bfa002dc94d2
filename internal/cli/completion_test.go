package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	tools := ToolNames()

	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"_pbbdash_completions", "--positions", "--tool", "program-inventory"}},
		{"zsh", []string{"#compdef pbbdash", "--budgets", "($tools)"}},
		{"fish", []string{"complete -c pbbdash", "-l org-url", "program-evaluation"}},
		{"powershell", []string{"Register-ArgumentCompleter", "$pbbdashTools", "'benchmark-analysis'"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, tools); err != nil {
				t.Fatalf("GenerateCompletion(%s) error = %v", tt.shell, err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupportedShell(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "tcsh", ToolNames()); err == nil {
		t.Error("GenerateCompletion(tcsh) error = nil, want error")
	}
}

func TestFlagRegistryConsistency(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		if f.Long == "" && f.Short == "" {
			t.Error("flag registry entry with no name")
		}
		key := f.Long + "/" + f.Short
		if seen[key] {
			t.Errorf("duplicate flag registry entry %q", key)
		}
		seen[key] = true
		if len(f.Values) > 0 && f.ValueName == "" {
			t.Errorf("flag %q has values but no value name", key)
		}
	}
}
