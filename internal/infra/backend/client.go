// Package backend contains the HTTP client for the remote notification
// service. Every operation is stateless and resolves its base endpoint at
// call time, so switching server environments takes effect on the next call
// without touching in-flight requests.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"ogsnotify/config"
	"ogsnotify/internal/domain/entity"
	domainerrors "ogsnotify/internal/domain/errors"
	"ogsnotify/internal/domain/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ClientParams holds dependencies for Client, injected by Fx.
type ClientParams struct {
	fx.In

	Config   *config.Config
	Resolver service.EndpointResolver
	Logger   *slog.Logger
}

// Client implements service.NotificationBackend over HTTP.
type Client struct {
	httpClient *http.Client
	resolver   service.EndpointResolver
	logger     *slog.Logger
	validate   *validator.Validate
}

// NewClient is the constructor for Client.
func NewClient(params ClientParams) service.NotificationBackend {
	return &Client{
		httpClient: &http.Client{
			Timeout: params.Config.Client.Timeout,
		},
		resolver: params.Resolver,
		logger:   params.Logger,
		validate: validator.New(),
	}
}

// Register binds userID to deviceToken on the backend via POST /register.
// Idempotent; the server replaces any previous binding for the user.
func (c *Client) Register(ctx context.Context, userID, deviceToken string) error {
	endpoint, err := c.endpoint(ctx, "/register")
	if err != nil {
		return err
	}

	body, err := json.Marshal(entity.DeviceRegistration{
		UserID:      userID,
		DeviceToken: deviceToken,
	})
	if err != nil {
		return errors.Wrap(err, "marshal registration body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build register request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	c.logger.Info("registering device",
		slog.String("url", endpoint),
		slog.String("user_id", userID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerrors.NewTransportError(err, isOfflineClass(err))
	}
	defer resp.Body.Close()
	drain(resp.Body)

	c.logger.Debug("registration response", slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return domainerrors.NewServerError(resp.StatusCode)
	}

	return nil
}

// FetchDiagnostics returns the server-side snapshot for userID via
// GET /diagnostics/{userId}. A 200 response with an unusable body is a
// DecodingError; no partially-populated snapshot is ever returned.
func (c *Client) FetchDiagnostics(ctx context.Context, userID string) (*entity.UserDiagnostics, error) {
	endpoint, err := c.endpoint(ctx, "/diagnostics/"+url.PathEscape(userID))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build diagnostics request")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.NewTransportError(err, isOfflineClass(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return nil, domainerrors.NewServerError(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.NewTransportError(err, false)
	}

	diagnostics, err := c.decodeDiagnostics(raw)
	if err != nil {
		c.logger.Warn("diagnostics body rejected",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)

		return nil, domainerrors.NewDecodingError(err)
	}

	return diagnostics, nil
}

// TriggerManualCheck asks the server to refresh its own state for userID via
// GET /check/{userId}. The response body is ignored.
func (c *Client) TriggerManualCheck(ctx context.Context, userID string) error {
	endpoint, err := c.endpoint(ctx, "/check/"+url.PathEscape(userID))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "build check request")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerrors.NewTransportError(err, isOfflineClass(err))
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return domainerrors.NewServerError(resp.StatusCode)
	}

	return nil
}

// ProbeHealth checks the current endpoint via GET /health. The returned
// classification is the whole result; a failed probe is not a Go error.
func (c *Client) ProbeHealth(ctx context.Context) entity.ServerHealthStatus {
	endpoint, err := c.endpoint(ctx, "/health")
	if err != nil {
		return entity.HealthErrorStatus(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entity.HealthErrorStatus(err.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isOfflineClass(err) {
			return entity.Offline()
		}

		return entity.HealthErrorStatus(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return entity.HealthErrorStatus(fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err == nil && health.Status != "" {
		return entity.Healthy(health.Status)
	}

	return entity.Healthy("OK")
}

// endpoint resolves the current base URL and joins the operation path.
func (c *Client) endpoint(ctx context.Context, path string) (string, error) {
	base, err := c.resolver.BaseURL(ctx)
	if err != nil {
		return "", errors.Wrap(err, "resolve base URL")
	}

	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.Wrapf(domainerrors.ErrInvalidEndpoint, "base URL %q", base)
	}

	return strings.TrimRight(base, "/") + path, nil
}

// isOfflineClass reports whether a transport error means connectivity is
// missing entirely, as opposed to the server misbehaving: connection
// refused, network unreachable, or host unreachable.
func isOfflineClass(err error) bool {
	for _, errno := range []syscall.Errno{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.ENETUNREACH,
		syscall.ENETDOWN,
		syscall.EHOSTUNREACH,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}

	return false
}

// drain discards the remainder of a response body so the connection can be
// reused.
func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<16))
}
