package usecase

import (
	"context"

	"ogsnotify/internal/domain/entity"
)

// EnvironmentUsecase selects which remote endpoint the client talks to and
// tracks the most recent health probe against it.
type EnvironmentUsecase interface {
	// Current returns the selected environment, defaulting to the first
	// defined environment when none is persisted.
	Current(ctx context.Context) (entity.ServerEnvironment, error)

	// Set persists the selection and invalidates the cached health
	// status. It does not touch the persisted user ID or device token,
	// and takes effect on the next backend call.
	Set(ctx context.Context, env entity.ServerEnvironment) error

	// Probe runs a health probe against the current environment and
	// caches the result.
	Probe(ctx context.Context) entity.ServerHealthStatus

	// LastHealth returns the cached probe result, if any probe has run
	// since the last environment change.
	LastHealth() (entity.ServerHealthStatus, bool)
}
