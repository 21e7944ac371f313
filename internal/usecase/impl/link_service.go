package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"ogsnotify/internal/domain/entity"
	"ogsnotify/internal/domain/service"
	"ogsnotify/internal/usecase"
)

const (
	deepLinkScheme = "ogs"
	deepLinkHost   = "game"

	payloadActionKey = "action"
	payloadOpenGame  = "open_game"
	payloadWebURLKey = "web_url"
)

type linkService struct {
	opener service.URLOpener
	logger *slog.Logger
}

// NewLinkService creates a new deep-link routing service instance
func NewLinkService(opener service.URLOpener, logger *slog.Logger) usecase.LinkUsecase {
	return &linkService{
		opener: opener,
		logger: logger,
	}
}

// HandleURI routes an ogs://game/{id} URI to an external open of the game's
// web page. Anything else is ignored without error: the link may have come
// from outside the app's control, so a mismatch is expected input.
func (s *linkService) HandleURI(ctx context.Context, raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != deepLinkScheme || parsed.Host != deepLinkHost {
		return false
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	gameID, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil {
		return false
	}

	s.open(ctx, entity.GameInfo{GameID: gameID}.WebURL())

	return true
}

// HandleNotificationPayload routes a notification-tap payload carrying an
// open_game action to its web URL.
func (s *linkService) HandleNotificationPayload(ctx context.Context, payload map[string]any) bool {
	action, ok := payload[payloadActionKey].(string)
	if !ok || action != payloadOpenGame {
		return false
	}

	webURL, ok := payload[payloadWebURLKey].(string)
	if !ok || webURL == "" {
		return false
	}

	s.open(ctx, webURL)

	return true
}

// OpenGame opens the canonical web page for gameID.
func (s *linkService) OpenGame(ctx context.Context, gameID int) error {
	return s.opener.Open(ctx, entity.GameInfo{GameID: gameID}.WebURL())
}

// open dispatches to the platform opener. Failures are logged, not
// surfaced: deep-link routing is best effort end to end.
func (s *linkService) open(ctx context.Context, target string) {
	if err := s.opener.Open(ctx, target); err != nil {
		s.logger.Warn("failed to open URL",
			slog.String("url", target),
			slog.Any("error", err),
		)
	}
}
