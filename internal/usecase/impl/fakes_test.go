package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"ogsnotify/config"
	"ogsnotify/internal/domain/entity"
	"ogsnotify/internal/domain/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Client.Timeout = time.Second
	cfg.Endpoints.Local = "http://localhost:8080"
	cfg.Endpoints.Production = "https://notify.online-go.com"
	cfg.Registration.MaxAttempts = 3
	cfg.Registration.InitialDelay = time.Millisecond
	cfg.Diagnostics.SettleDelay = time.Millisecond
	cfg.Diagnostics.PollTimeout = 50 * time.Millisecond

	return cfg
}

// memStateRepository is an in-memory StateRepository for tests.
type memStateRepository struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStateRepository() *memStateRepository {
	return &memStateRepository{values: make(map[string]string)}
}

func (r *memStateRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.values[key]
	if !ok {
		return "", repository.ErrStateNotFound
	}

	return value, nil
}

func (r *memStateRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = value

	return nil
}

func (r *memStateRepository) get(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.values[key]

	return value, ok
}

// stubBackend is a scriptable NotificationBackend recording every call.
type stubBackend struct {
	mu sync.Mutex

	registerCalls []entity.DeviceRegistration
	registerErrs  []error // consumed per call; nil entry means success

	fetchFunc  func(call int) (*entity.UserDiagnostics, error)
	fetchCalls int

	checkCalls int
	checkErr   error

	health entity.ServerHealthStatus
}

func (b *stubBackend) Register(_ context.Context, userID, deviceToken string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.registerCalls = append(b.registerCalls, entity.DeviceRegistration{
		UserID:      userID,
		DeviceToken: deviceToken,
	})

	if len(b.registerErrs) > 0 {
		err := b.registerErrs[0]
		b.registerErrs = b.registerErrs[1:]

		return err
	}

	return nil
}

func (b *stubBackend) FetchDiagnostics(_ context.Context, userID string) (*entity.UserDiagnostics, error) {
	b.mu.Lock()
	call := b.fetchCalls
	b.fetchCalls++
	fetch := b.fetchFunc
	b.mu.Unlock()

	if fetch == nil {
		return &entity.UserDiagnostics{UserID: userID}, nil
	}

	return fetch(call)
}

func (b *stubBackend) TriggerManualCheck(context.Context, string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkCalls++

	return b.checkErr
}

func (b *stubBackend) ProbeHealth(context.Context) entity.ServerHealthStatus {
	return b.health
}

func (b *stubBackend) registrations() []entity.DeviceRegistration {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]entity.DeviceRegistration(nil), b.registerCalls...)
}

// recordingOpener captures opened URLs.
type recordingOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (o *recordingOpener) Open(_ context.Context, url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.opened = append(o.opened, url)

	return o.err
}

func (o *recordingOpener) urls() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.opened...)
}
