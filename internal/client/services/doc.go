// Package services contains application services for the item client.
//
// ItemService owns the synchronized collection cache: a sorted, freshness
// tracked copy of the remote collection that is patched or refetched after
// every mutation according to a TrustPolicy.
package services
