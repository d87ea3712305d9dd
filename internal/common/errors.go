// Package common defines sentinel errors shared by the client and the server.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors for incoming identifiers and payloads.
	ErrorInvalidID      = errors.New("invalid id")
	ErrorInvalidPayload = errors.New("invalid payload")

	// Configuration errors.
	ErrorUnsupportedDSN = errors.New("unsupported dsn")
)
