package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-legal/pfas-intake/internal/model"
)

func TestSessionManager_CreateAndGet(t *testing.T) {
	m := NewSessionManager(time.Hour)

	id, w := m.Create(&model.Verdict{IsContaminated: true})
	require.NotEmpty(t, id)
	require.NotNil(t, w)
	assert.True(t, w.Data().ExposureInfo.IsCurrentlyInContaminationZone)

	got, ok := m.Get(id)
	require.True(t, ok)
	assert.Same(t, w, got)
	assert.Equal(t, 1, m.Len())

	_, ok = m.Get("not-a-session")
	assert.False(t, ok)
}

func TestSessionManager_UniqueIDs(t *testing.T) {
	m := NewSessionManager(time.Hour)
	seen := map[string]bool{}
	for range 50 {
		id, _ := m.Create(nil)
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Equal(t, 50, m.Len())
}

func TestSessionManager_Delete(t *testing.T) {
	m := NewSessionManager(time.Hour)
	id, _ := m.Create(nil)

	m.Delete(id)
	_, ok := m.Get(id)
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestSessionManager_ExpiryOnGet(t *testing.T) {
	m := NewSessionManager(10 * time.Millisecond)
	id, _ := m.Create(nil)

	time.Sleep(25 * time.Millisecond)
	_, ok := m.Get(id)
	assert.False(t, ok)
	assert.Zero(t, m.Len(), "expired session is removed on access")
}

func TestSessionManager_Sweep(t *testing.T) {
	m := NewSessionManager(10 * time.Millisecond)
	m.Create(nil)
	m.Create(nil)

	time.Sleep(25 * time.Millisecond)

	// A fresh session survives the sweep.
	keep, _ := m.Create(nil)

	assert.Equal(t, 2, m.Sweep())
	assert.Equal(t, 1, m.Len())
	_, ok := m.Get(keep)
	assert.True(t, ok)
}

func TestSessionManager_ActivityRefreshesTTL(t *testing.T) {
	m := NewSessionManager(40 * time.Millisecond)
	id, w := m.Create(nil)

	// Touch the session halfway through the TTL; it must still be live
	// after the original deadline.
	time.Sleep(25 * time.Millisecond)
	require.NoError(t, w.SetPersonal(model.PersonalInfo{FirstName: "Jane"}))
	time.Sleep(25 * time.Millisecond)

	_, ok := m.Get(id)
	assert.True(t, ok)
}

func TestNewSessionManager_DefaultTTL(t *testing.T) {
	m := NewSessionManager(0)
	assert.Equal(t, DefaultSessionTTL, m.ttl)
}
