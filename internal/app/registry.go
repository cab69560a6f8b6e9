package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

// Registry is the authoritative map from connection identity to session
// state. At most one entry is canonical per user: admitting a new
// connection for a user evicts the previous entry.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.ConnID]*domain.Session
	byUser   map[domain.UserID]domain.ConnID
	// Pending deletions keyed by connection, so the eviction path can
	// cancel a stale timer instead of letting it fire on a reused key.
	timers map[domain.ConnID]*time.Timer

	ttl time.Duration
	now func() time.Time
}

func NewRegistry(offlineTTL time.Duration) *Registry {
	return &Registry{
		sessions: make(map[domain.ConnID]*domain.Session),
		byUser:   make(map[domain.UserID]domain.ConnID),
		timers:   make(map[domain.ConnID]*time.Timer),
		ttl:      offlineTTL,
		now:      time.Now,
	}
}

// Register admits a connection. Any existing entry for the same user on a
// different connection is deleted first; its id is returned so the caller
// can decide what to do with the superseded channel.
func (r *Registry) Register(connID domain.ConnID, userID domain.UserID, username string) (evicted domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byUser[userID]; ok && old != connID {
		r.dropLocked(old)
		evicted = old
	}
	r.cancelTimerLocked(connID)

	// A channel re-registering under a new identity must not leave the
	// previous identity pointing at it.
	if prev, ok := r.sessions[connID]; ok && prev.UserID != userID {
		if r.byUser[prev.UserID] == connID {
			delete(r.byUser, prev.UserID)
		}
	}

	if username == "" {
		username = domain.UnknownUsername
	}
	r.sessions[connID] = domain.NewSession(connID, userID, username, r.now())
	r.byUser[userID] = connID

	log.Info().Str("module", "app.registry").
		Str("conn", string(connID)).Str("user", string(userID)).
		Str("evicted", string(evicted)).Msg("registered session")
	return evicted
}

// MarkOffline flips the session to offline and schedules its deferred
// deletion. Returns false if the connection is unknown or already offline,
// so disconnect handling stays idempotent.
func (r *Registry) MarkOffline(connID domain.ConnID) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok || s.Status == domain.StatusOffline {
		return domain.Session{}, false
	}
	s.Status = domain.StatusOffline
	s.LastActiveAt = r.now()

	r.cancelTimerLocked(connID)
	r.timers[connID] = time.AfterFunc(r.ttl, func() {
		r.expire(connID)
	})

	log.Info().Str("module", "app.registry").Str("conn", string(connID)).
		Str("user", string(s.UserID)).Msg("session offline, deletion scheduled")
	return *s, true
}

// expire is the deferred-deletion callback. The entry may have been
// superseded or resurrected since scheduling; only a still-offline entry
// is removed.
func (r *Registry) expire(connID domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok || s.Status != domain.StatusOffline {
		return
	}
	r.dropLocked(connID)
	log.Info().Str("module", "app.registry").Str("conn", string(connID)).Msg("offline session expired")
}

func (r *Registry) UnregisterByConnection(connID domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropLocked(connID)
}

func (r *Registry) Get(connID domain.ConnID) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[connID]; ok {
		return *s, true
	}
	return domain.Session{}, false
}

// FindByUserID returns the most recently admitted session for a user.
func (r *Registry) FindByUserID(userID domain.UserID) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if connID, ok := r.byUser[userID]; ok {
		if s, ok := r.sessions[connID]; ok {
			return *s, true
		}
	}
	return domain.Session{}, false
}

func (r *Registry) UpdateLanguage(connID domain.ConnID, language string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[connID]
	if !ok {
		return false
	}
	s.PreferredLanguage = language
	return true
}

func (r *Registry) AllConnIDs() []domain.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.sessions)
}

// Online lists sessions currently marked online.
func (r *Registry) Online() []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if s.Status == domain.StatusOnline {
			out = append(out, *s)
		}
	}
	return out
}

// Reconcile deletes every entry whose connection is not in the live set
// and returns the removed ids. Used by the periodic sweep as a safety net
// for channels that vanished without a disconnect event.
func (r *Registry) Reconcile(live []domain.ConnID) []domain.ConnID {
	liveSet := lo.SliceToMap(live, func(id domain.ConnID) (domain.ConnID, struct{}) {
		return id, struct{}{}
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []domain.ConnID
	for connID := range r.sessions {
		if _, ok := liveSet[connID]; !ok {
			r.dropLocked(connID)
			removed = append(removed, connID)
		}
	}
	return removed
}

// dropLocked removes an entry, its user index and any pending timer.
// Caller holds r.mu.
func (r *Registry) dropLocked(connID domain.ConnID) {
	s, ok := r.sessions[connID]
	if !ok {
		return
	}
	delete(r.sessions, connID)
	if r.byUser[s.UserID] == connID {
		delete(r.byUser, s.UserID)
	}
	r.cancelTimerLocked(connID)
}

func (r *Registry) cancelTimerLocked(connID domain.ConnID) {
	if t, ok := r.timers[connID]; ok {
		t.Stop()
		delete(r.timers, connID)
	}
}
