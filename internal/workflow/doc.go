// Package workflow implements the orchestration sequencer at the heart of
// the PBB dashboard: the fixed multi-step pipeline (program inventory → cost
// prediction → strategic scoring → insights → aggregation) that drives the
// remote prediction services, substitutes demo results for unconfigured
// endpoints, tracks progress, and folds the per-step results into a single
// summary for display.
//
// The sequencer is strictly sequential: each step's fallback decision and the
// final aggregation depend on the prior step's outcome, so steps never
// overlap. It renders nothing itself; progress and results flow outward
// through the ProgressReporter and Renderer collaborators owned by the UI
// layer.
package workflow
