package services

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/abenson/pbbdash/internal/errors"
)

// CallResult is the uniform outcome of a single remote service call.
// It is a tagged union: a result is either a Success carrying a JSON payload
// or a Failure carrying a message, never both.
type CallResult struct {
	ok      bool
	payload json.RawMessage
	failure string
}

// Success constructs a successful CallResult carrying the given JSON payload.
func Success(payload json.RawMessage) CallResult {
	return CallResult{ok: true, payload: payload}
}

// Ack constructs a successful CallResult with a generic acknowledgement
// payload. Used when a 2xx response carries a non-JSON body (e.g. a file
// download) that this core does not consume.
func Ack(operation string) CallResult {
	payload, _ := json.Marshal(map[string]string{
		"message": fmt.Sprintf("%s completed", operation),
	})
	return CallResult{ok: true, payload: payload}
}

// Failure constructs a failed CallResult with the given message.
func Failure(message string) CallResult {
	return CallResult{ok: false, failure: message}
}

// FailureErr constructs a failed CallResult from an error, capturing the
// error text verbatim.
func FailureErr(err error) CallResult {
	return Failure(err.Error())
}

// OK reports whether the call succeeded.
func (r CallResult) OK() bool { return r.ok }

// Payload returns the JSON payload. It is non-nil iff OK.
func (r CallResult) Payload() json.RawMessage {
	if !r.ok {
		return nil
	}
	return r.payload
}

// FailureMessage returns the failure message, or "" for a success.
func (r CallResult) FailureMessage() string { return r.failure }

// Decode unmarshals the success payload into dst. A schema mismatch is
// reported as a ParseError, never a panic. Decoding a Failure is an error.
func (r CallResult) Decode(source string, dst any) error {
	if !r.ok {
		return apperrors.ParseError{Source: source, Message: "cannot decode a failed result"}
	}
	if err := json.Unmarshal(r.payload, dst); err != nil {
		return apperrors.ParseError{Source: source, Message: err.Error()}
	}
	return nil
}

// Program is a single identified government program.
type Program struct {
	Department   string `json:"department"`
	Program      string `json:"program"`
	Description  string `json:"description"`
	KeyPositions string `json:"key_positions"`
}

// InventoryPayload is the schema used from the program inventory service.
// Fields are permissive: a service that returns only an acknowledgement
// message still decodes cleanly with an empty program list.
type InventoryPayload struct {
	Programs []Program `json:"programs"`
	Message  string    `json:"message,omitempty"`
}

// AllocationPayload is the schema used from the budget allocation service.
type AllocationPayload struct {
	TotalBudget float64 `json:"total_budget"`
	Message     string  `json:"message,omitempty"`
}

// EvaluationPayload is the schema used from the program evaluation service.
type EvaluationPayload struct {
	CriticalPrograms    int     `json:"critical_programs"`
	OptimizationTargets int     `json:"optimization_targets"`
	HighCostPrograms    int     `json:"high_cost_programs"`
	PotentialSavings    float64 `json:"potential_savings"`
	Message             string  `json:"message,omitempty"`
}

// InsightsPayload is the schema used from the program insights service.
// Recommendations is free-form text.
type InsightsPayload struct {
	Recommendations string `json:"recommendations"`
	Message         string `json:"message,omitempty"`
}

// BenchmarkPayload is the schema used from the benchmark analyzer. The
// service usually answers with a spreadsheet download, which Call turns into
// an acknowledgement message; Analysis is populated when it returns JSON.
type BenchmarkPayload struct {
	Analysis string `json:"analysis,omitempty"`
	Message  string `json:"message,omitempty"`
}
