package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

func TestRegistry_Register_And_Lookup(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(5 * time.Minute)

	evicted := reg.Register("conn-1", "alice", "Alice")
	req.Empty(evicted)

	s, ok := reg.FindByUserID("alice")
	req.True(ok)
	req.Equal(domain.ConnID("conn-1"), s.ConnID)
	req.Equal("Alice", s.Username)
	req.Equal(domain.StatusOnline, s.Status)
	req.Equal(domain.DefaultLanguage, s.PreferredLanguage)
}

func TestRegistry_Register_Without_Username(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(5 * time.Minute)

	reg.Register("conn-1", "alice", "")

	s, ok := reg.FindByUserID("alice")
	req.True(ok)
	req.Equal(domain.UnknownUsername, s.Username)
}

func TestRegistry_NewConnection_Supersedes_Old(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(5 * time.Minute)

	// Given alice is connected
	reg.Register("conn-old", "alice", "Alice")

	// When a second connection for alice is admitted
	evicted := reg.Register("conn-new", "alice", "Alice")

	// Then the old entry is gone and lookups return the new one
	req.Equal(domain.ConnID("conn-old"), evicted)
	s, ok := reg.FindByUserID("alice")
	req.True(ok)
	req.Equal(domain.ConnID("conn-new"), s.ConnID)
	_, ok = reg.Get("conn-old")
	req.False(ok)
}

func TestRegistry_MarkOffline_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(5 * time.Minute)
	reg.Register("conn-1", "alice", "Alice")

	_, changed := reg.MarkOffline("conn-1")
	req.True(changed)
	_, changed = reg.MarkOffline("conn-1")
	req.False(changed)
	_, changed = reg.MarkOffline("conn-unknown")
	req.False(changed)

	// The offline session is still resolvable until the timer fires.
	s, ok := reg.FindByUserID("alice")
	req.True(ok)
	req.Equal(domain.StatusOffline, s.Status)
}

func TestRegistry_Offline_Session_Expires(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(20 * time.Millisecond)
	reg.Register("conn-1", "alice", "Alice")
	reg.MarkOffline("conn-1")

	req.Eventually(func() bool {
		_, ok := reg.FindByUserID("alice")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestRegistry_Readmission_Cancels_Pending_Deletion(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(30 * time.Millisecond)
	reg.Register("conn-old", "alice", "Alice")
	reg.MarkOffline("conn-old")

	// Re-admission before the timer fires evicts the old entry and the
	// stale timer must not delete the newer session.
	reg.Register("conn-new", "alice", "Alice")

	time.Sleep(80 * time.Millisecond)
	s, ok := reg.FindByUserID("alice")
	req.True(ok)
	req.Equal(domain.ConnID("conn-new"), s.ConnID)
	req.Equal(domain.StatusOnline, s.Status)
}

func TestRegistry_Resurrected_Connection_Survives_Timer(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(30 * time.Millisecond)
	reg.Register("conn-1", "alice", "Alice")
	reg.MarkOffline("conn-1")

	// Same connection id re-registers (reconnect race): the pending
	// deletion must be canceled.
	reg.Register("conn-1", "alice", "Alice")

	time.Sleep(80 * time.Millisecond)
	s, ok := reg.FindByUserID("alice")
	req.True(ok)
	req.Equal(domain.StatusOnline, s.Status)
}

func TestRegistry_UpdateLanguage(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(5 * time.Minute)
	reg.Register("conn-1", "alice", "Alice")

	req.True(reg.UpdateLanguage("conn-1", "hi"))
	req.False(reg.UpdateLanguage("conn-unknown", "hi"))

	s, _ := reg.Get("conn-1")
	req.Equal("hi", s.PreferredLanguage)
}

func TestRegistry_Reconcile_Removes_Only_Dead_Entries(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(5 * time.Minute)
	reg.Register("conn-1", "alice", "Alice")
	reg.Register("conn-2", "bob", "Bob")
	reg.Register("conn-3", "carol", "Carol")

	removed := reg.Reconcile([]domain.ConnID{"conn-1", "conn-3"})

	req.ElementsMatch([]domain.ConnID{"conn-2"}, removed)
	_, ok := reg.FindByUserID("bob")
	req.False(ok)
	_, ok = reg.FindByUserID("alice")
	req.True(ok)
	_, ok = reg.FindByUserID("carol")
	req.True(ok)
}

func TestRegistry_Online_Lists_Only_Online(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(5 * time.Minute)
	reg.Register("conn-1", "alice", "Alice")
	reg.Register("conn-2", "bob", "Bob")
	reg.MarkOffline("conn-2")

	online := reg.Online()
	req.Len(online, 1)
	req.Equal(domain.UserID("alice"), online[0].UserID)
}
