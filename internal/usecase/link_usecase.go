package usecase

import "context"

// LinkUsecase routes deep links and notification taps to an external open
// of the game's web page. Routing is best effort: malformed or non-matching
// input is silently ignored, never an error.
type LinkUsecase interface {
	// HandleURI opens the game referenced by an ogs://game/{id} URI.
	// Returns whether the URI was routed.
	HandleURI(ctx context.Context, raw string) bool

	// HandleNotificationPayload opens the web URL carried by an
	// "open_game" notification payload. Returns whether the payload was
	// routed.
	HandleNotificationPayload(ctx context.Context, payload map[string]any) bool

	// OpenGame opens the canonical web page for gameID.
	OpenGame(ctx context.Context, gameID int) error
}
