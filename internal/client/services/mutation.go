package services

// MutationKind names one of the three mutation intents.
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// MutationState is the lifecycle of the latest mutation of a kind:
// idle -> in-flight -> succeeded | failed.
type MutationState string

const (
	StateIdle      MutationState = "idle"
	StateInFlight  MutationState = "in-flight"
	StateSucceeded MutationState = "succeeded"
	StateFailed    MutationState = "failed"
)
