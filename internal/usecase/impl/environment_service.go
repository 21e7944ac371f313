package impl

import (
	"context"
	"log/slog"
	"sync"

	"ogsnotify/internal/domain/entity"
	"ogsnotify/internal/domain/repository"
	"ogsnotify/internal/domain/service"
	"ogsnotify/internal/errors"
	"ogsnotify/internal/usecase"
)

type environmentService struct {
	stateRepo repository.StateRepository
	backend   service.NotificationBackend
	logger    *slog.Logger

	mu         sync.Mutex
	lastHealth *entity.ServerHealthStatus
}

// NewEnvironmentService creates a new environment service instance
func NewEnvironmentService(
	stateRepo repository.StateRepository,
	backend service.NotificationBackend,
	logger *slog.Logger,
) usecase.EnvironmentUsecase {
	return &environmentService{
		stateRepo: stateRepo,
		backend:   backend,
		logger:    logger,
	}
}

// Current returns the selected environment, defaulting to the first defined
// environment when none is persisted or the persisted value is unknown.
func (s *environmentService) Current(ctx context.Context) (entity.ServerEnvironment, error) {
	raw, err := s.stateRepo.Get(ctx, repository.KeyServerEnvironment)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			return entity.DefaultEnvironment(), nil
		}

		return entity.DefaultEnvironment(), errors.Wrap(err, "read server environment")
	}

	env, known := entity.ParseEnvironment(raw)
	if !known {
		s.logger.Warn("unknown persisted environment, using default",
			slog.String("value", raw),
		)
	}

	return env, nil
}

// Set persists the selection and invalidates the cached health status. The
// persisted user ID and device token are untouched; registration against
// the new environment happens only when reconciliation next runs.
func (s *environmentService) Set(ctx context.Context, env entity.ServerEnvironment) error {
	if !env.Valid() {
		return errors.Errorf("unknown server environment: %s", env)
	}

	if err := s.stateRepo.Set(ctx, repository.KeyServerEnvironment, string(env)); err != nil {
		return errors.Wrap(err, "persist server environment")
	}

	s.mu.Lock()
	s.lastHealth = nil
	s.mu.Unlock()

	s.logger.Info("server environment changed", slog.String("environment", env.DisplayName()))

	return nil
}

// Probe runs a health probe against the current environment and caches the
// result.
func (s *environmentService) Probe(ctx context.Context) entity.ServerHealthStatus {
	status := s.backend.ProbeHealth(ctx)

	s.mu.Lock()
	s.lastHealth = &status
	s.mu.Unlock()

	return status
}

// LastHealth returns the cached probe result, if any.
func (s *environmentService) LastHealth() (entity.ServerHealthStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastHealth == nil {
		return entity.ServerHealthStatus{}, false
	}

	return *s.lastHealth, true
}
