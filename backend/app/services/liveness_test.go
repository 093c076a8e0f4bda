package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLivenessUnknownBeforeFirstHeartbeat(t *testing.T) {
	tr := NewLivenessTracker(60 * time.Second)
	assert.Equal(t, StatusUnknown, tr.Status("lab1"))
}

func TestLivenessOnlineThenOffline(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := NewLivenessTracker(60 * time.Second)
	tr.now = func() time.Time { return now }

	tr.RecordHeartbeat("lab1")
	assert.Equal(t, StatusOnline, tr.Status("lab1"))

	now = now.Add(59 * time.Second)
	assert.Equal(t, StatusOnline, tr.Status("lab1"))

	now = now.Add(2 * time.Second)
	assert.Equal(t, StatusOffline, tr.Status("lab1"))

	// a fresh heartbeat brings it back
	tr.RecordHeartbeat("lab1")
	assert.Equal(t, StatusOnline, tr.Status("lab1"))
}

func TestLivenessHeartbeatOverwrites(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := NewLivenessTracker(60 * time.Second)
	tr.now = func() time.Time { return now }

	tr.RecordHeartbeat("lab1")
	now = now.Add(50 * time.Second)
	tr.RecordHeartbeat("lab1")
	now = now.Add(50 * time.Second)

	// 100s after the first beat but only 50s after the second
	assert.Equal(t, StatusOnline, tr.Status("lab1"))

	seen := tr.Seen()
	assert.Len(t, seen, 1)
	assert.Equal(t, 50*time.Second, seen["lab1"])
}

func TestLivenessTracksClientsIndependently(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := NewLivenessTracker(60 * time.Second)
	tr.now = func() time.Time { return now }

	tr.RecordHeartbeat("lab1")
	now = now.Add(120 * time.Second)
	tr.RecordHeartbeat("lab2")

	assert.Equal(t, StatusOffline, tr.Status("lab1"))
	assert.Equal(t, StatusOnline, tr.Status("lab2"))
	assert.Equal(t, StatusUnknown, tr.Status("lab3"))
}
