// Package service defines interfaces for external collaborators: the remote
// notification backend, the platform URL opener, and auxiliary services.
package service

import (
	"context"

	"ogsnotify/internal/domain/entity"
)

// NotificationBackend is the client's view of the remote notification
// service. All operations are stateless and independent; none retries
// internally, and every call resolves its base endpoint at call time so an
// environment switch takes effect on the next call.
type NotificationBackend interface {
	// Register binds userID to the device token on the backend. Idempotent;
	// success requires HTTP 200.
	Register(ctx context.Context, userID, deviceToken string) error

	// FetchDiagnostics returns the server-side snapshot for userID.
	FetchDiagnostics(ctx context.Context, userID string) (*entity.UserDiagnostics, error)

	// TriggerManualCheck asks the server to refresh its own state for
	// userID out of band. The response body is ignored; the caller must
	// re-fetch diagnostics to observe any effect.
	TriggerManualCheck(ctx context.Context, userID string) error

	// ProbeHealth checks the current endpoint. The classification is the
	// result; a failed probe is not a Go error.
	ProbeHealth(ctx context.Context) entity.ServerHealthStatus
}

// EndpointResolver yields the base URL for the currently selected server
// environment. Backend operations call it per request, never at
// construction, so concurrent calls during an environment switch simply see
// either the old or the new endpoint.
type EndpointResolver interface {
	BaseURL(ctx context.Context) (string, error)
}
