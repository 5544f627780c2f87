// Package store defines the session token store used by the parent `auth` package.
//
// It ships with an in-memory implementation, tokens live for the duration of the process.
package store
