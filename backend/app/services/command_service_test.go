package services

import (
	"path/filepath"
	"testing"

	"labfleet/backend/app/models"
	"labfleet/backend/app/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *CommandService {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Command{}))
	return NewCommandService(repo.NewCommandRepository(gdb))
}

func TestEnqueueValidation(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name     string
		clientID string
		command  string
		wantErr  error
	}{
		{"missing client id", "", "screenshot", ErrInvalidArgument},
		{"missing command", "lab1", "", ErrInvalidArgument},
		{"both missing", "", "", ErrInvalidArgument},
		{"valid", "lab1", "screenshot", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Enqueue(tt.clientID, tt.command, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnqueueAcceptsUnknownTarget(t *testing.T) {
	s := newTestService(t)

	// no client registry: any non-empty target is accepted
	id, err := s.Enqueue("never-seen-before", "screenshot", "")
	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestReportResultErrorMapping(t *testing.T) {
	s := newTestService(t)

	assert.ErrorIs(t, s.ReportResult(0, "done", ""), ErrInvalidArgument)
	assert.ErrorIs(t, s.ReportResult(999, "done", ""), ErrNotFound)

	_, err := s.Find(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoundTripThroughService(t *testing.T) {
	s := newTestService(t)

	id, err := s.Enqueue("lab1", "screenshot", "X")
	require.NoError(t, err)

	pending, err := s.FetchPending("lab1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "X", pending[0].Args)

	require.NoError(t, s.ReportResult(id, "done", "Y"))

	got, err := s.Find(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, got.Status)
	assert.Equal(t, "Y", got.Result)
}
