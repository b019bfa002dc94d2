// This file contains the services file loader, which rebinds the remote
// prediction endpoints from a YAML document and per-service environment
// variables.

package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/services"
)

// yamlDuration parses durations written in Go syntax ("30s", "2m") rather
// than raw nanosecond integers.
type yamlDuration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *yamlDuration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = yamlDuration(parsed)
	return nil
}

// serviceEntry is one endpoint override in the services YAML file. Empty
// fields keep their default value.
type serviceEntry struct {
	BaseURL string       `yaml:"base_url"`
	Path    string       `yaml:"path"`
	Timeout yamlDuration `yaml:"timeout"`
}

// servicesFile is the schema of the --services YAML file. Keys mirror the
// capability names used by the remote services.
type servicesFile struct {
	ProgramInventory  serviceEntry `yaml:"program_inventory"`
	BudgetAllocation  serviceEntry `yaml:"budget_allocation"`
	ProgramEvaluation serviceEntry `yaml:"program_evaluation"`
	ProgramInsights   serviceEntry `yaml:"program_insights"`
	BenchmarkAnalyzer serviceEntry `yaml:"benchmark_analyzer"`
}

// envURLKeys maps each capability to the environment variable (without the
// PBBDASH_ prefix) that overrides its base URL. Env overrides win over the
// services file, matching the flag > env > file > default chain.
var envURLKeys = map[services.Capability]string{
	services.CapabilityInventory:  "INVENTORY_URL",
	services.CapabilityAllocation: "ALLOCATION_URL",
	services.CapabilityEvaluation: "EVALUATION_URL",
	services.CapabilityInsights:   "INSIGHTS_URL",
	services.CapabilityBenchmark:  "BENCHMARK_URL",
}

// ResolveEndpoints builds the endpoint set for this run: the static defaults,
// overridden by the services YAML file (if path is non-empty), overridden by
// per-service environment variables.
//
// Returns:
//   - map[services.Capability]services.Endpoint: The resolved endpoints.
//   - error: A ConfigError if the file cannot be read or parsed.
func ResolveEndpoints(path string) (map[services.Capability]services.Endpoint, error) {
	endpoints := services.DefaultEndpoints()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewConfigError("reading services file %s: %v", path, err)
		}
		var file servicesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, apperrors.NewConfigError("parsing services file %s: %v", path, err)
		}
		entries := map[services.Capability]serviceEntry{
			services.CapabilityInventory:  file.ProgramInventory,
			services.CapabilityAllocation: file.BudgetAllocation,
			services.CapabilityEvaluation: file.ProgramEvaluation,
			services.CapabilityInsights:   file.ProgramInsights,
			services.CapabilityBenchmark:  file.BenchmarkAnalyzer,
		}
		for capability, entry := range entries {
			ep := endpoints[capability]
			if entry.BaseURL != "" {
				ep.BaseURL = entry.BaseURL
			}
			if entry.Path != "" {
				ep.Path = entry.Path
			}
			if entry.Timeout > 0 {
				ep.Timeout = time.Duration(entry.Timeout)
			}
			endpoints[capability] = ep
		}
	}

	for capability, key := range envURLKeys {
		ep := endpoints[capability]
		ep.BaseURL = getEnvString(key, ep.BaseURL)
		endpoints[capability] = ep
	}

	return endpoints, nil
}
