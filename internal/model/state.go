package model

import "time"

// State represents the lifecycle state of the translation model.
type State string

const (
	// StateNotReady means no load has been attempted yet.
	StateNotReady State = "not_ready"
	// StateLoading means a load attempt is in flight.
	StateLoading State = "loading"
	// StateReady means the model loaded successfully and can serve requests.
	StateReady State = "ready"
	// StateError means the last load attempt failed. A new request may
	// trigger a retry.
	StateError State = "error"
)

// Snapshot is a consistent view of the guard's state, taken under the same
// lock as state transitions so callers never observe torn combinations.
type Snapshot struct {
	State State
	// LastError is the failure message of the last load attempt. Non-empty
	// only when State is StateError.
	LastError string
	// LoadedAt is the time of the last successful load. Non-nil only when
	// State is StateReady.
	LoadedAt *time.Time
}
