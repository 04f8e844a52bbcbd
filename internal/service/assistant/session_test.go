package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felano-technologies/poultrycare/pkg/clients/anthropic"
)

func TestSessionStoreKeepsLiveHistory(t *testing.T) {
	store := NewSessionStore(30 * time.Minute)

	history := []anthropic.Message{
		{Role: "user", Content: "how much feed per layer?"},
		{Role: "assistant", Content: "around 110-120 g per day"},
	}
	store.Append("farm-1", history)

	assert.Equal(t, history, store.History("farm-1"))
	assert.Nil(t, store.History("farm-2"))
}

func TestSessionStoreEvictsExpiredEntries(t *testing.T) {
	store := NewSessionStore(30 * time.Minute)
	current := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Append("farm-1", []anthropic.Message{{Role: "user", Content: "hello"}})

	current = current.Add(31 * time.Minute)
	assert.Nil(t, store.History("farm-1"), "expired session reads as absent")

	// A write for another farm sweeps leftover expired entries too.
	store.Append("farm-1", []anthropic.Message{{Role: "user", Content: "hello again"}})
	current = current.Add(45 * time.Minute)
	store.Append("farm-2", []anthropic.Message{{Role: "user", Content: "hi"}})

	store.mu.Lock()
	_, stillThere := store.sessions["farm-1"]
	store.mu.Unlock()
	assert.False(t, stillThere)
}

func TestSessionStoreClear(t *testing.T) {
	store := NewSessionStore(time.Minute)
	store.Append("farm-1", []anthropic.Message{{Role: "user", Content: "hello"}})

	store.Clear("farm-1")
	require.Nil(t, store.History("farm-1"))
}
