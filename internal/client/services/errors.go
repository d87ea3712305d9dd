package services

import "errors"

var (
	// ErrCancelled is returned to a caller whose context ended before its
	// refresh resolved. The result was discarded for that caller.
	ErrCancelled = errors.New("refresh cancelled")

	// ErrRefreshAfterMutation means the remote mutation succeeded but the
	// authoritative refresh that follows it failed. The cache stays invalidated.
	ErrRefreshAfterMutation = errors.New("refresh after mutation failed")
)
