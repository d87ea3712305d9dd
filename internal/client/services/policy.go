package services

import "time"

// OpPolicy says how far the response of one mutation kind is trusted.
type OpPolicy struct {
	// TrustResponse patches the cache from the mutation response. When false
	// the cache is invalidated and refetched instead.
	TrustResponse bool
	// OverrideID replaces the id in a trusted create response with a locally
	// generated one. Ignored for update and delete.
	OverrideID bool
}

// TrustPolicy holds the per-operation policies.
type TrustPolicy struct {
	Create OpPolicy
	Update OpPolicy
	Delete OpPolicy
}

// PlaceholderTrustPolicy matches a placeholder backend that answers creates
// with a usable body but does not allocate stable ids, and whose update and
// delete answers do not reflect the stored state. A backend with reliable id
// issuance should turn Create.OverrideID off.
func PlaceholderTrustPolicy() TrustPolicy {
	return TrustPolicy{
		Create: OpPolicy{TrustResponse: true, OverrideID: true},
		Update: OpPolicy{TrustResponse: false},
		Delete: OpPolicy{TrustResponse: false},
	}
}

const maxRetryDelay = 30 * time.Second

// Options configures the item service.
type Options struct {
	// StaleTime is the freshness window after a successful fetch.
	StaleTime time.Duration
	// Retries is how many times a failed list is retried.
	Retries int
	// RetryDelay is the base of the exponential backoff between attempts.
	RetryDelay time.Duration
	Policy     TrustPolicy
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns a 5 minute freshness window, 2 retries from a 1s
// backoff base and the placeholder trust policy.
func DefaultOptions() Options {
	return Options{
		StaleTime:  5 * time.Minute,
		Retries:    2,
		RetryDelay: time.Second,
		Policy:     PlaceholderTrustPolicy(),
	}
}
