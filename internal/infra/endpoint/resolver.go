// Package endpoint resolves the base URL for the currently selected server
// environment.
package endpoint

import (
	"context"

	"ogsnotify/config"
	"ogsnotify/internal/domain/entity"
	"ogsnotify/internal/domain/repository"
	"ogsnotify/internal/domain/service"
	"ogsnotify/internal/errors"
)

type storeResolver struct {
	cfg       *config.Config
	stateRepo repository.StateRepository
}

// NewResolver builds a resolver that reads the persisted environment on
// every call, so backend operations pick up an environment switch on their
// next request.
func NewResolver(cfg *config.Config, stateRepo repository.StateRepository) service.EndpointResolver {
	return &storeResolver{
		cfg:       cfg,
		stateRepo: stateRepo,
	}
}

// BaseURL maps the current environment to its configured base URL. An
// unpersisted or unknown environment falls back to the default.
func (r *storeResolver) BaseURL(ctx context.Context) (string, error) {
	raw, err := r.stateRepo.Get(ctx, repository.KeyServerEnvironment)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			return r.cfg.BaseURL(entity.DefaultEnvironment()), nil
		}

		return "", errors.Wrap(err, "read server environment")
	}

	env, _ := entity.ParseEnvironment(raw)

	return r.cfg.BaseURL(env), nil
}
