// Package client is the I/O boundary between the item cache and the remote
// collection resource.
//
// # Overview
//
// The package provides:
//  1. The Client contract: List, Get, Create, Update and Delete against a
//     REST-like collection endpoint.
//  2. HTTPClient, the concrete implementation over net/http. It owns the
//     mapping between the remote {id, title, body} shape and models.Item
//     (title -> Name, body -> Description); that mapping never leaves this
//     package.
//  3. HealthProbe, a gRPC health-check client used by the CLI to show whether
//     the backend is reachable.
//
// # Error Handling
//
// Failures are exposed as sentinel errors matched with errors.Is:
// ErrTransport for network errors and non-2xx answers on list/get/create/update,
// ErrDeleteRejected when a delete is refused, ErrUnavailable from the probe.
//
// All operations accept context.Context and honor cancellation. HTTPClient
// sets no request timeout of its own.
package client
