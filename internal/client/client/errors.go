package client

import "errors"

var (
	ErrTransport      = errors.New("transport failure")
	ErrDeleteRejected = errors.New("delete failed")
	ErrUnavailable    = errors.New("server unavailable")
)
