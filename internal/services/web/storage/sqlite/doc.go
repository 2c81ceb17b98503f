// Package sqlite provides the visitor storage adapter backed by SQLite so
// visitor state survives restarts.
package sqlite
