package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogsnotify/internal/domain/entity"
	"ogsnotify/internal/domain/repository"
	"ogsnotify/internal/usecase"
)

type environmentFixtures struct {
	service   usecase.EnvironmentUsecase
	stateRepo *memStateRepository
	backend   *stubBackend
}

func createTestEnvironmentService(t *testing.T) environmentFixtures {
	t.Helper()

	stateRepo := newMemStateRepository()
	backend := &stubBackend{health: entity.Healthy("ok")}
	service := NewEnvironmentService(stateRepo, backend, testLogger())

	return environmentFixtures{
		service:   service,
		stateRepo: stateRepo,
		backend:   backend,
	}
}

func TestEnvironment_DefaultsToFirstEntry(t *testing.T) {
	fx := createTestEnvironmentService(t)

	env, err := fx.service.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.EnvironmentLocal, env)
}

func TestEnvironment_SetPersistsSelection(t *testing.T) {
	fx := createTestEnvironmentService(t)
	ctx := context.Background()

	require.NoError(t, fx.service.Set(ctx, entity.EnvironmentProduction))

	env, err := fx.service.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.EnvironmentProduction, env)

	raw, ok := fx.stateRepo.get(repository.KeyServerEnvironment)
	assert.True(t, ok)
	assert.Equal(t, "production", raw)
}

func TestEnvironment_SetRejectsUnknown(t *testing.T) {
	fx := createTestEnvironmentService(t)

	err := fx.service.Set(context.Background(), entity.ServerEnvironment("staging"))
	assert.Error(t, err)
}

func TestEnvironment_SetDoesNotTouchIdentity(t *testing.T) {
	fx := createTestEnvironmentService(t)
	ctx := context.Background()

	require.NoError(t, fx.stateRepo.Set(ctx, repository.KeyUserID, "1783478"))
	require.NoError(t, fx.stateRepo.Set(ctx, repository.KeyDeviceToken, "abcd1234"))

	require.NoError(t, fx.service.Set(ctx, entity.EnvironmentProduction))

	userID, _ := fx.stateRepo.get(repository.KeyUserID)
	token, _ := fx.stateRepo.get(repository.KeyDeviceToken)
	assert.Equal(t, "1783478", userID)
	assert.Equal(t, "abcd1234", token)
}

func TestEnvironment_UnknownPersistedValueFallsBack(t *testing.T) {
	fx := createTestEnvironmentService(t)
	ctx := context.Background()

	require.NoError(t, fx.stateRepo.Set(ctx, repository.KeyServerEnvironment, "staging"))

	env, err := fx.service.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultEnvironment(), env)
}

func TestEnvironment_ProbeCachesAndSetInvalidates(t *testing.T) {
	fx := createTestEnvironmentService(t)
	ctx := context.Background()

	_, cached := fx.service.LastHealth()
	assert.False(t, cached)

	status := fx.service.Probe(ctx)
	assert.True(t, status.IsHealthy())

	cachedStatus, cached := fx.service.LastHealth()
	assert.True(t, cached)
	assert.Equal(t, status, cachedStatus)

	require.NoError(t, fx.service.Set(ctx, entity.EnvironmentProduction))

	_, cached = fx.service.LastHealth()
	assert.False(t, cached)
}
