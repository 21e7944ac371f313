// Package opener hands URLs to the platform's default browser.
package opener

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"

	"ogsnotify/internal/domain/service"

	"github.com/pkg/errors"
)

type browserOpener struct {
	logger *slog.Logger
}

// NewBrowserOpener is the constructor for the platform URL opener.
func NewBrowserOpener(logger *slog.Logger) service.URLOpener {
	return &browserOpener{logger: logger}
}

// Open launches the platform open command for url. Best effort: the spawned
// process is not waited on beyond startup.
func (o *browserOpener) Open(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}

	o.logger.Info("opening external URL", slog.String("url", url))

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "open %s", url)
	}

	return nil
}
