package tracking_test

import (
	"fmt"
	"testing"
	"time"

	"dispatch/internal/core/application/tracking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, connID string) tracking.Session {
	t.Helper()
	return tracking.Session{
		JobID:      kernel.NewUUID(),
		WorkerID:   kernel.NewUUID(),
		UserID:     kernel.NewUUID(),
		ConnID:     connID,
		LastUpdate: time.Now().UTC(),
	}
}

func newSample(t *testing.T, workerID kernel.UUID, lat float64, at time.Time) location.Sample {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, 0)
	require.NoError(t, err)
	sample, err := location.NewSample(workerID, point, at)
	require.NoError(t, err)
	return sample
}

func TestStore_PutGetRemove(t *testing.T) {
	// Given
	store := tracking.NewStore()
	session := newSession(t, "conn-1")

	// When
	store.Put(session)

	// Then
	got, ok := store.Get(session.JobID)
	require.True(t, ok)
	assert.Equal(t, session, got)
	assert.Equal(t, 1, store.Len())

	// When
	removed, ok := store.Remove(session.JobID)

	// Then
	require.True(t, ok)
	assert.Equal(t, session, removed)
	assert.Equal(t, 0, store.Len())

	_, ok = store.Get(session.JobID)
	assert.False(t, ok)
}

func TestStore_PutOverwritesSessionForSameJob(t *testing.T) {
	// Given
	store := tracking.NewStore()
	first := newSession(t, "conn-1")
	second := first
	second.ConnID = "conn-2"

	// When
	store.Put(first)
	store.Put(second)

	// Then
	got, ok := store.Get(first.JobID)
	require.True(t, ok)
	assert.Equal(t, "conn-2", got.ConnID)
	assert.Equal(t, 1, store.Len())
}

func TestStore_RemoveMissingJob(t *testing.T) {
	// Given
	store := tracking.NewStore()

	// When
	_, ok := store.Remove(kernel.NewUUID())

	// Then
	assert.False(t, ok)
}

func TestStore_RemoveByConnLeavesOtherConnectionsUntouched(t *testing.T) {
	// Given
	store := tracking.NewStore()
	owned1 := newSession(t, "conn-1")
	owned2 := newSession(t, "conn-1")
	other := newSession(t, "conn-2")
	store.Put(owned1)
	store.Put(owned2)
	store.Put(other)

	// When
	removed := store.RemoveByConn("conn-1")

	// Then
	assert.Len(t, removed, 2)
	for _, session := range removed {
		assert.Equal(t, "conn-1", session.ConnID)
	}

	_, ok := store.Get(other.JobID)
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestStore_Touch(t *testing.T) {
	// Given
	store := tracking.NewStore()
	session := newSession(t, "conn-1")
	store.Put(session)
	later := session.LastUpdate.Add(time.Minute)

	// When
	ok := store.Touch(session.JobID, later)

	// Then
	require.True(t, ok)
	got, _ := store.Get(session.JobID)
	assert.Equal(t, later, got.LastUpdate)

	// Touching a missing job reports false
	assert.False(t, store.Touch(kernel.NewUUID(), later))
}

func TestStore_ReapIdle(t *testing.T) {
	// Given
	store := tracking.NewStore()
	now := time.Now().UTC()

	stale := newSession(t, "conn-1")
	stale.LastUpdate = now.Add(-10 * time.Minute)
	fresh := newSession(t, "conn-2")
	fresh.LastUpdate = now
	store.Put(stale)
	store.Put(fresh)

	// When
	reaped := store.ReapIdle(now.Add(-5 * time.Minute))

	// Then
	require.Len(t, reaped, 1)
	assert.Equal(t, stale.JobID, reaped[0].JobID)

	_, ok := store.Get(fresh.JobID)
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestStore_TrailCappedWithOldestFirstEviction(t *testing.T) {
	// Given
	store := tracking.NewStore()
	session := newSession(t, "conn-1")
	store.Put(session)
	base := time.Now().UTC()

	// When: append more samples than the trail retains
	total := tracking.TrailCap + 5
	for i := range total {
		store.AppendSample(session.JobID, newSample(t, session.WorkerID, float64(i), base.Add(time.Duration(i)*time.Second)))
	}

	// Then: capped, oldest evicted, ordering preserved
	samples := store.TrailSamples(session.JobID)
	require.Len(t, samples, tracking.TrailCap)
	for i, sample := range samples {
		expectedLat := float64(total - tracking.TrailCap + i)
		assert.Equal(t, expectedLat, sample.Point().Lat(), fmt.Sprintf("sample %d", i))
	}
}

func TestStore_AppendSampleWithoutSessionIsDropped(t *testing.T) {
	// Given
	store := tracking.NewStore()
	jobID := kernel.NewUUID()

	// When
	store.AppendSample(jobID, newSample(t, kernel.NewUUID(), 1, time.Now().UTC()))

	// Then
	assert.Empty(t, store.TrailSamples(jobID))
}

func TestStore_RemoveDropsTrail(t *testing.T) {
	// Given
	store := tracking.NewStore()
	session := newSession(t, "conn-1")
	store.Put(session)
	store.AppendSample(session.JobID, newSample(t, session.WorkerID, 1, time.Now().UTC()))

	// When
	store.Remove(session.JobID)

	// Then
	assert.Empty(t, store.TrailSamples(session.JobID))
}

func TestStore_List(t *testing.T) {
	// Given
	store := tracking.NewStore()
	store.Put(newSession(t, "conn-1"))
	store.Put(newSession(t, "conn-2"))

	// When
	sessions := store.List()

	// Then
	assert.Len(t, sessions, 2)
}
