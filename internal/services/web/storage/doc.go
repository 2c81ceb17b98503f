// Package storage declares the per-visitor key/value port that holds
// browser-local state such as the mock auth token.
//
// Values are opaque strings scoped to one visitor; callers own their
// encoding.
package storage
