package services

import (
	"strings"
	"time"

	apperrors "github.com/abenson/pbbdash/internal/errors"
)

// Capability names a remote prediction service.
type Capability string

const (
	CapabilityInventory  Capability = "program inventory"
	CapabilityAllocation Capability = "budget allocation"
	CapabilityEvaluation Capability = "program evaluation"
	CapabilityInsights   Capability = "program insights"
	CapabilityBenchmark  Capability = "benchmark analysis"
)

// AllCapabilities lists every remote capability in a stable order.
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityInventory,
		CapabilityAllocation,
		CapabilityEvaluation,
		CapabilityInsights,
		CapabilityBenchmark,
	}
}

// Default call timeouts. The cost-heavy inventory and allocation services
// process whole spreadsheets and get the longer bound.
const (
	HeavyCallTimeout   = 120 * time.Second
	DefaultCallTimeout = 60 * time.Second
)

// Endpoint identifies a named remote capability by base URL and path suffix.
// Endpoints are configured once per session and treated as immutable.
type Endpoint struct {
	// Capability names the remote service this endpoint reaches.
	Capability Capability
	// BaseURL is the scheme://host[:port] prefix, without trailing slash.
	BaseURL string
	// Path is the operation path suffix (e.g., "/generate").
	Path string
	// Timeout bounds a single call to this endpoint.
	Timeout time.Duration
}

// URL returns the full request URL for the endpoint.
func (e Endpoint) URL() string {
	return strings.TrimSuffix(e.BaseURL, "/") + e.Path
}

// Validate checks the endpoint is usable for a call.
func (e Endpoint) Validate() error {
	if e.BaseURL == "" {
		return apperrors.ValidationError{Field: "base_url", Message: "base URL is required"}
	}
	if e.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	return nil
}

// DefaultEndpoints returns the endpoint set for the hosted prediction
// services. Base URLs can be overridden per capability via configuration.
func DefaultEndpoints() map[Capability]Endpoint {
	return map[Capability]Endpoint{
		CapabilityInventory: {
			Capability: CapabilityInventory,
			BaseURL:    "https://program-inventory.onrender.com",
			Path:       "/generate",
			Timeout:    HeavyCallTimeout,
		},
		CapabilityAllocation: {
			Capability: CapabilityAllocation,
			BaseURL:    "https://budget-allocation-app.onrender.com",
			Path:       "/allocate",
			Timeout:    HeavyCallTimeout,
		},
		CapabilityEvaluation: {
			Capability: CapabilityEvaluation,
			BaseURL:    "https://program-evaluation-predictor.onrender.com",
			Path:       "/analyze",
			Timeout:    DefaultCallTimeout,
		},
		CapabilityInsights: {
			Capability: CapabilityInsights,
			BaseURL:    "https://program-insights-predictor.onrender.com",
			Path:       "/predict",
			Timeout:    DefaultCallTimeout,
		},
		CapabilityBenchmark: {
			Capability: CapabilityBenchmark,
			BaseURL:    "https://benchmark-analyzer-upgraded.onrender.com",
			Path:       "/analyze",
			Timeout:    DefaultCallTimeout,
		},
	}
}
