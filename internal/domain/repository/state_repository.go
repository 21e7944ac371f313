// Package repository defines the persistence interfaces the usecase layer
// depends on. Concrete implementations live under internal/infra.
package repository

import (
	"context"

	"ogsnotify/internal/errors"
)

// Persisted keys. These names are fixed: they match what earlier releases
// of the client wrote, so an upgrade keeps the existing identity.
const (
	KeyUserID            = "user_id"
	KeyDeviceToken       = "device_token"
	KeyServerEnvironment = "server_environment"
)

// ErrStateNotFound is returned when no value has been persisted for a key.
var ErrStateNotFound = errors.New("state entry not found")

// StateRepository is a durable key/value store surviving process restarts.
// Last-write-wins per key; no cross-key transactions. The only invariant
// spanning keys (the registration binding) is recomputed by the caller, not
// stored.
type StateRepository interface {
	// Get returns the persisted value for key, or ErrStateNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set persists value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
