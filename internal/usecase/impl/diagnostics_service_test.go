package impl

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogsnotify/internal/domain/entity"
	domainerrors "ogsnotify/internal/domain/errors"
	"ogsnotify/internal/usecase"
)

func createTestDiagnosticsService(backend *stubBackend) usecase.DiagnosticsUsecase {
	return NewDiagnosticsService(testConfig(), backend, testLogger())
}

func snapshotAt(checkTime *float64) *entity.UserDiagnostics {
	return &entity.UserDiagnostics{
		UserID:              "42",
		MonitoredGames:      []entity.GameInfo{},
		ServerCheckInterval: "5m",
		LastServerCheckTime: checkTime,
	}
}

func ptr(v float64) *float64 { return &v }

func TestDiagnostics_LoadPassesThrough(t *testing.T) {
	backend := &stubBackend{
		fetchFunc: func(int) (*entity.UserDiagnostics, error) {
			return snapshotAt(ptr(100)), nil
		},
	}
	service := createTestDiagnosticsService(backend)

	snapshot, err := service.Load(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", snapshot.UserID)
	assert.Equal(t, 1, backend.fetchCalls)
}

func TestDiagnostics_LoadPropagatesFailure(t *testing.T) {
	backend := &stubBackend{
		fetchFunc: func(int) (*entity.UserDiagnostics, error) {
			return nil, domainerrors.NewServerError(http.StatusBadGateway)
		},
	}
	service := createTestDiagnosticsService(backend)

	_, err := service.Load(context.Background(), "42")

	var serverErr *domainerrors.ServerError
	assert.ErrorAs(t, err, &serverErr)
}

func TestCheckAndReload_ReturnsWhenCheckAdvances(t *testing.T) {
	backend := &stubBackend{
		fetchFunc: func(call int) (*entity.UserDiagnostics, error) {
			switch call {
			case 0: // baseline
				return snapshotAt(ptr(100)), nil
			case 1: // server still on the old check
				return snapshotAt(ptr(100)), nil
			default:
				return snapshotAt(ptr(200)), nil
			}
		},
	}
	service := createTestDiagnosticsService(backend)

	snapshot, err := service.CheckAndReload(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.checkCalls)
	require.NotNil(t, snapshot.LastServerCheckTime)
	assert.Equal(t, float64(200), *snapshot.LastServerCheckTime)
	assert.Equal(t, 3, backend.fetchCalls)
}

func TestCheckAndReload_TimeoutReturnsLatestSnapshot(t *testing.T) {
	// The server never advances its check timestamp within the poll window.
	backend := &stubBackend{
		fetchFunc: func(int) (*entity.UserDiagnostics, error) {
			return snapshotAt(ptr(100)), nil
		},
	}
	service := createTestDiagnosticsService(backend)

	snapshot, err := service.CheckAndReload(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, float64(100), *snapshot.LastServerCheckTime)
}

func TestCheckAndReload_TriggerFailureAborts(t *testing.T) {
	backend := &stubBackend{
		checkErr: domainerrors.NewServerError(http.StatusInternalServerError),
		fetchFunc: func(int) (*entity.UserDiagnostics, error) {
			return snapshotAt(nil), nil
		},
	}
	service := createTestDiagnosticsService(backend)

	_, err := service.CheckAndReload(context.Background(), "42")
	require.Error(t, err)

	var serverErr *domainerrors.ServerError
	assert.ErrorAs(t, err, &serverErr)
	// Only the baseline fetch ran.
	assert.Equal(t, 1, backend.fetchCalls)
}

func TestCheckAndReload_NoBaselineAcceptsFirstCheckTime(t *testing.T) {
	backend := &stubBackend{
		fetchFunc: func(call int) (*entity.UserDiagnostics, error) {
			if call == 0 {
				return snapshotAt(nil), nil
			}

			return snapshotAt(ptr(50)), nil
		},
	}
	service := createTestDiagnosticsService(backend)

	snapshot, err := service.CheckAndReload(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, snapshot.LastServerCheckTime)
	assert.Equal(t, float64(50), *snapshot.LastServerCheckTime)
	assert.Equal(t, 2, backend.fetchCalls)
}

func TestCheckAdvanced(t *testing.T) {
	assert.False(t, checkAdvanced(nil, nil))
	assert.True(t, checkAdvanced(nil, ptr(1)))
	assert.False(t, checkAdvanced(ptr(1), nil))
	assert.False(t, checkAdvanced(ptr(1), ptr(1)))
	assert.True(t, checkAdvanced(ptr(1), ptr(2)))
}
