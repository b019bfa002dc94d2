// Package services provides the HTTP clients for the five remote PBB
// prediction services (program inventory, budget allocation, program
// evaluation, program insights, benchmark analysis).
//
// Every call is a single multipart POST with a bounded timeout and no
// retries; the remote services are idempotent-unsafe file-processing calls,
// so a failed call fails the step rather than being replayed. All transport
// and HTTP failures are normalized into a CallResult at this boundary and
// are never propagated as uncaught faults.
package services
