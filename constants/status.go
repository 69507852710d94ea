package constants

// RunStatus is the canonical status for rows in the run ledger.
type RunStatus string

// Stable values (store these exact strings).
const (
	RunStatusRunning   RunStatus = "RUNNING"   // in progress
	RunStatusSucceeded RunStatus = "SUCCEEDED" // finished, result persisted
	RunStatusCached    RunStatus = "CACHED"    // served from a persisted artifact, no oracle call
	RunStatusFailed    RunStatus = "FAILED"    // terminal failure
)

// RunKind distinguishes ledger rows by operation.
type RunKind string

const (
	RunKindExtract RunKind = "EXTRACT"
	RunKindCompare RunKind = "COMPARE"
)
