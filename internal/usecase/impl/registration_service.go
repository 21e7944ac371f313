// Package impl contains the concrete use case services.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"ogsnotify/config"
	"ogsnotify/internal/domain/repository"
	"ogsnotify/internal/domain/service"
	"ogsnotify/internal/errors"
	"ogsnotify/internal/usecase"

	"github.com/cenkalti/backoff/v5"

	domainerrors "ogsnotify/internal/domain/errors"
)

// ErrEmptyUserID is returned when the user supplies a blank ID.
var ErrEmptyUserID = errors.New("user ID must not be empty")

// ErrEmptyDeviceToken is returned when an empty token is reported.
var ErrEmptyDeviceToken = errors.New("device token must not be empty")

type registrationService struct {
	stateRepo repository.StateRepository
	backend   service.NotificationBackend
	logger    *slog.Logger

	maxAttempts  int
	initialDelay time.Duration

	// mu serializes reconciliation attempts: no two run concurrently
	// against the store, and registration calls never race each other.
	mu sync.Mutex
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(
	cfg *config.Config,
	stateRepo repository.StateRepository,
	backend service.NotificationBackend,
	logger *slog.Logger,
) usecase.RegistrationUsecase {
	return &registrationService{
		stateRepo:    stateRepo,
		backend:      backend,
		logger:       logger,
		maxAttempts:  cfg.Registration.MaxAttempts,
		initialDelay: cfg.Registration.InitialDelay,
	}
}

// OnUserIDSet persists the user-supplied ID immediately, then reconciles.
func (s *registrationService) OnUserIDSet(ctx context.Context, userID string) (usecase.RegistrationOutcome, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return usecase.OutcomeDeferred, ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.stateRepo.Set(ctx, repository.KeyUserID, userID); err != nil {
		return usecase.OutcomeDeferred, errors.Wrap(err, "persist user ID")
	}

	s.logger.Info("user ID set", slog.String("user_id", userID))

	return s.reconcile(ctx)
}

// OnTokenAvailable persists the OS-issued token immediately, then reconciles.
func (s *registrationService) OnTokenAvailable(ctx context.Context, deviceToken string) (usecase.RegistrationOutcome, error) {
	deviceToken = strings.TrimSpace(deviceToken)
	if deviceToken == "" {
		return usecase.OutcomeDeferred, ErrEmptyDeviceToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.stateRepo.Set(ctx, repository.KeyDeviceToken, deviceToken); err != nil {
		return usecase.OutcomeDeferred, errors.Wrap(err, "persist device token")
	}

	s.logger.Info("device token received")

	return s.reconcile(ctx)
}

// Reregister re-runs registration from persisted state.
func (s *registrationService) Reregister(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.status(ctx)
	if err != nil {
		return err
	}
	if !status.Complete() {
		return domainerrors.ErrBindingIncomplete
	}

	return s.register(ctx, status.UserID, status.DeviceToken)
}

// Status reports which halves of the binding are persisted.
func (s *registrationService) Status(ctx context.Context) (usecase.BindingStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status(ctx)
}

// reconcile recomputes the binding from the store and registers it when
// complete. A missing half defers silently: the other trigger will finish
// the job whenever it arrives. Callers must hold mu.
func (s *registrationService) reconcile(ctx context.Context) (usecase.RegistrationOutcome, error) {
	status, err := s.status(ctx)
	if err != nil {
		return usecase.OutcomeDeferred, err
	}

	if !status.Complete() {
		s.logger.Info("registration deferred",
			slog.Bool("has_user_id", status.HasUserID()),
			slog.Bool("has_device_token", status.HasDeviceToken()),
		)

		return usecase.OutcomeDeferred, nil
	}

	if err := s.register(ctx, status.UserID, status.DeviceToken); err != nil {
		// Persisted state stays as-is: a later trigger retries from it.
		return usecase.OutcomeDeferred, err
	}

	return usecase.OutcomeRegistered, nil
}

// register issues the idempotent registration call under a bounded
// exponential-backoff policy. Transport failures and 5xx responses retry;
// anything else fails immediately.
func (s *registrationService) register(ctx context.Context, userID, deviceToken string) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = s.initialDelay

	operation := func() (struct{}, error) {
		if err := s.backend.Register(ctx, userID, deviceToken); err != nil {
			if !domainerrors.IsRetryable(err) {
				return struct{}{}, backoff.Permanent(err)
			}

			return struct{}{}, err
		}

		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(uint(s.maxAttempts)),
	)
	if err != nil {
		s.logger.Warn("device registration failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)

		return err
	}

	s.logger.Info("device registered", slog.String("user_id", userID))

	return nil
}

func (s *registrationService) status(ctx context.Context) (usecase.BindingStatus, error) {
	userID, err := s.read(ctx, repository.KeyUserID)
	if err != nil {
		return usecase.BindingStatus{}, err
	}

	deviceToken, err := s.read(ctx, repository.KeyDeviceToken)
	if err != nil {
		return usecase.BindingStatus{}, err
	}

	return usecase.BindingStatus{UserID: userID, DeviceToken: deviceToken}, nil
}

// read treats an absent key as the empty half rather than a failure.
func (s *registrationService) read(ctx context.Context, key string) (string, error) {
	value, err := s.stateRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			return "", nil
		}

		return "", errors.Wrapf(err, "read %s", key)
	}

	return value, nil
}
