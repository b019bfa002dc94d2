package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "url", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsTool    bool     // true if values come from the tool list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "positions", Help: "Staff positions spreadsheet", IsFile: true, ValueName: "file"},
	{Long: "budgets", Help: "Department budgets spreadsheet", IsFile: true, ValueName: "file"},
	{Long: "org-url", Help: "Organization website URL", ValueName: "url"},
	{Long: "org-name", Help: "Organization name for insights", ValueName: "name"},
	{Long: "programs-per-dept", Help: "Programs identified per department", Values: []string{"3", "5", "7", "10"}, ValueName: "count"},
	{Long: "cost-threshold", Help: "Evaluation cost threshold in dollars", Values: []string{"50000", "100000", "250000", "500000"}, ValueName: "dollars"},
	{Long: "services", Help: "Service endpoints YAML file", IsFile: true, ValueName: "file"},
	{Long: "timeout", Help: "Overall workflow run timeout", Values: []string{"1m", "5m", "10m", "30m"}, ValueName: "duration"},
	{Long: "insights", Help: "Run the insights step after scoring"},
	{Long: "live-scoring", Help: "Score with the live evaluation service"},
	{Long: "serve", Help: "Run the HTTP dashboard server"},
	{Long: "addr", Help: "Listen address for --serve", Values: []string{":8080", ":8501", "localhost:8080"}, ValueName: "address"},
	{Long: "tui", Help: "Run the interactive terminal dashboard"},
	{Long: "tool", Help: "Invoke a single capability", IsTool: true, ValueName: "tool"},
	{Long: "output", Short: "o", Help: "Summary output file path", IsFile: true, ValueName: "file"},
	{Long: "verbose", Short: "v", Help: "Verbose output"},
	{Long: "quiet", Short: "q", Help: "Suppress progress output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - tools: List of available tool names for --tool completion.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, tools []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, tools)
	case "zsh":
		return generateZshCompletion(out, tools)
	case "fish":
		return generateFishCompletion(out, tools)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, tools)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, tools []string) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	// Case entries: tool flags first, then static-value flags, then file flags.
	var caseBody strings.Builder
	writeCase := func(patterns []string, body string) {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(patterns, "|"))
		caseBody.WriteString(")\n            ")
		caseBody.WriteString(body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	for _, f := range flagRegistry {
		if f.IsTool {
			writeCase([]string{"--" + f.Long}, `COMPREPLY=( $(compgen -W "${tools}" -- "${cur}") )`)
		}
	}
	for _, f := range flagRegistry {
		if !f.IsTool && !f.IsFile && len(f.Values) > 0 {
			writeCase([]string{"--" + f.Long},
				fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}
	var filePatterns []string
	for _, f := range flagRegistry {
		if f.IsFile {
			if f.Long != "" {
				filePatterns = append(filePatterns, "--"+f.Long)
			}
			if f.Short != "" {
				filePatterns = append(filePatterns, "-"+f.Short)
			}
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}

	script := fmt.Sprintf(`# Bash completion script for pbbdash
# Add this to your ~/.bashrc or ~/.bash_completion

_pbbdash_completions() {
    local cur prev opts tools
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Available tools
    tools="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _pbbdash_completions pbbdash
`, strings.Join(opts, " "), strings.Join(tools, " "), caseBody.String())

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, tools []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef pbbdash

# Zsh completion script for pbbdash
# Add this to your ~/.zshrc or place in $fpath

_pbbdash() {
    local -a tools
    tools=(%s)

    _arguments -s \
%s
}

_pbbdash "$@"
`, strings.Join(tools, " "), strings.Join(args, " \\\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if f.IsTool {
		valueSuffix = fmt.Sprintf(":%s:($tools)", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, tools []string) error {
	lines := []string{
		"# Fish completion script for pbbdash",
		"# Add this to ~/.config/fish/completions/pbbdash.fish",
		"",
		"# Disable file completion by default",
		"complete -c pbbdash -f",
		"",
	}

	toolList := strings.Join(tools, " ")
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, toolList))
	}
	lines = append(lines, "")

	_, err := fmt.Fprint(out, strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, toolList string) string {
	var parts []string
	parts = append(parts, "complete -c pbbdash")

	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}

	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if f.IsTool {
		parts = append(parts, fmt.Sprintf("-xa '%s'", toolList))
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		parts = append(parts, "-x")
	}

	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, tools []string) error {
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if f.Long != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
		}
	}

	var switchEntries []string
	for _, f := range flagRegistry {
		if f.IsTool {
			switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            $pbbdashTools | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long))
		}
	}
	for _, f := range flagRegistry {
		if !f.IsTool && !f.IsFile && len(f.Values) > 0 {
			var quotedVals []string
			for _, v := range f.Values {
				quotedVals = append(quotedVals, fmt.Sprintf("'%s'", v))
			}
			switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quotedVals, ", ")))
		}
	}

	var psToolList []string
	for _, tool := range tools {
		psToolList = append(psToolList, fmt.Sprintf("'%s'", tool))
	}

	script := fmt.Sprintf(`# PowerShell completion script for pbbdash
# Add this to your $PROFILE

$pbbdashTools = @(%s)

Register-ArgumentCompleter -CommandName 'pbbdash' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(psToolList, ", "), strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}

// ToolNames lists the --tool values offered in completion scripts.
func ToolNames() []string {
	return []string{
		"program-inventory",
		"budget-allocation",
		"program-evaluation",
		"program-insights",
		"benchmark-analysis",
	}
}
