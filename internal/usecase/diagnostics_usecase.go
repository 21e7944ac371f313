package usecase

import (
	"context"

	"ogsnotify/internal/domain/entity"
)

// DiagnosticsUsecase fetches the server-side consistency snapshot for a
// user. There is no local caching: every successful load fully replaces the
// previous view.
type DiagnosticsUsecase interface {
	// Load fetches a fresh snapshot for userID.
	Load(ctx context.Context, userID string) (*entity.UserDiagnostics, error)

	// TriggerCheck asks the server to refresh its own state for userID.
	// The caller must re-fetch diagnostics to observe any effect.
	TriggerCheck(ctx context.Context, userID string) error

	// CheckAndReload triggers a manual check, then polls diagnostics
	// until the server's last-check timestamp advances past its
	// pre-trigger value or the configured poll timeout elapses. On
	// timeout the latest snapshot is returned; freshness is then not
	// guaranteed.
	CheckAndReload(ctx context.Context, userID string) (*entity.UserDiagnostics, error)
}
