package impl

import (
	"context"
	"log/slog"
	"time"

	"ogsnotify/config"
	"ogsnotify/internal/domain/entity"
	"ogsnotify/internal/domain/service"
	"ogsnotify/internal/errors"
	"ogsnotify/internal/usecase"
)

type diagnosticsService struct {
	backend service.NotificationBackend
	logger  *slog.Logger

	settleDelay time.Duration
	pollTimeout time.Duration
}

// NewDiagnosticsService creates a new diagnostics service instance
func NewDiagnosticsService(
	cfg *config.Config,
	backend service.NotificationBackend,
	logger *slog.Logger,
) usecase.DiagnosticsUsecase {
	return &diagnosticsService{
		backend:     backend,
		logger:      logger,
		settleDelay: cfg.Diagnostics.SettleDelay,
		pollTimeout: cfg.Diagnostics.PollTimeout,
	}
}

// Load fetches a fresh snapshot. Pure pass-through: no caching, no merging
// with a previous snapshot.
func (s *diagnosticsService) Load(ctx context.Context, userID string) (*entity.UserDiagnostics, error) {
	return s.backend.FetchDiagnostics(ctx, userID)
}

// TriggerCheck asks the server to refresh its own state for userID.
func (s *diagnosticsService) TriggerCheck(ctx context.Context, userID string) error {
	return s.backend.TriggerManualCheck(ctx, userID)
}

// CheckAndReload triggers a manual check, then polls until the server's
// last-check timestamp advances past the pre-trigger baseline or the poll
// timeout elapses. The server may not finish its check in time; on timeout
// the latest snapshot is returned as-is.
func (s *diagnosticsService) CheckAndReload(ctx context.Context, userID string) (*entity.UserDiagnostics, error) {
	// Baseline for "has the server checked again since we asked". A failed
	// baseline fetch is not fatal: any post-trigger timestamp counts then.
	var baseline *float64
	if snapshot, err := s.backend.FetchDiagnostics(ctx, userID); err == nil {
		baseline = snapshot.LastServerCheckTime
	}

	if err := s.backend.TriggerManualCheck(ctx, userID); err != nil {
		return nil, errors.Wrap(err, "trigger manual check")
	}

	deadline := time.Now().Add(s.pollTimeout)

	var latest *entity.UserDiagnostics
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.settleDelay):
		}

		snapshot, err := s.backend.FetchDiagnostics(ctx, userID)
		if err != nil {
			if time.Now().After(deadline) {
				return nil, err
			}

			continue
		}

		latest = snapshot
		if checkAdvanced(baseline, snapshot.LastServerCheckTime) {
			return latest, nil
		}

		if time.Now().After(deadline) {
			s.logger.Warn("manual check did not settle before timeout",
				slog.String("user_id", userID),
				slog.Duration("timeout", s.pollTimeout),
			)

			return latest, nil
		}
	}
}

// checkAdvanced reports whether the server's last-check timestamp moved
// past the pre-trigger baseline.
func checkAdvanced(baseline, current *float64) bool {
	if current == nil {
		return false
	}
	if baseline == nil {
		return true
	}

	return *current > *baseline
}
