package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/core"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/protocol"
)

// Lifecycle owns connection admission, disconnect handling and the
// periodic sweep. Per connection: Connecting → Authenticated → Online →
// Offline(pending-delete) → Deleted. Authentication happens before any
// registry state exists, so a rejected connection leaves no trace.
type Lifecycle struct {
	Registry  *Registry
	Rooms     *Directory
	Transport core.Transport
	Pipeline  core.Pipeline
}

// Admit registers an authenticated connection, announces presence and
// attaches the translation pipeline. A superseded connection for the same
// user is evicted from the registry and its channel force-closed, so the
// old tab cannot keep receiving connection-addressed events.
func (l *Lifecycle) Admit(ctx context.Context, connID domain.ConnID, id core.Identity) {
	evicted := l.Registry.Register(connID, id.UserID, id.Username)
	if evicted != "" {
		l.Transport.CloseConn(evicted)
		log.Info().Str("module", "app.lifecycle").
			Str("user", string(id.UserID)).Str("old_conn", string(evicted)).
			Msg("superseded connection closed")
	}

	l.broadcastStatus(id.UserID, domain.StatusOnline)

	if l.Pipeline != nil {
		l.Pipeline.Attach(ctx, connID, l.Registry)
	}

	log.Info().Str("module", "app.lifecycle").
		Str("conn", string(connID)).Str("user", string(id.UserID)).Msg("connection admitted")
}

// OnDisconnect marks the session offline, announces it once, and clears
// room membership in both namespaces. Safe to call concurrently with a
// still-running handler for the same connection.
func (l *Lifecycle) OnDisconnect(connID domain.ConnID) {
	s, ok := l.Registry.MarkOffline(connID)
	if !ok {
		return
	}

	l.broadcastStatus(s.UserID, domain.StatusOffline)

	for _, roomID := range l.Rooms.RemoveFromAllRooms(domain.NamespaceChat, s.UserID) {
		l.Transport.LeaveGroup(connID, protocol.ChatGroup(roomID))
	}
	for _, roomID := range l.Rooms.RemoveFromAllRooms(domain.NamespaceCall, s.UserID) {
		l.Transport.LeaveGroup(connID, protocol.CallGroup(roomID))
	}

	log.Info().Str("module", "app.lifecycle").
		Str("conn", string(connID)).Str("user", string(s.UserID)).Msg("disconnected")
}

// Sweep reconciles the registry against the transport's live channels,
// deleting entries whose channel is gone. Safety net for abrupt losses
// that never produced a disconnect event.
func (l *Lifecycle) Sweep() {
	removed := l.Registry.Reconcile(l.Transport.LiveIDs())
	if len(removed) > 0 {
		log.Info().Str("module", "app.lifecycle").Int("removed", len(removed)).Msg("sweep removed stale sessions")
	}
}

func (l *Lifecycle) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.lifecycle").Msg("sweeper stopped")
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// broadcastStatus is global, not room-scoped. Known scaling limit.
func (l *Lifecycle) broadcastStatus(userID domain.UserID, status domain.Status) {
	frame, err := protocol.Encode(protocol.EventUserStatusChange, protocol.UserStatusChange{
		UserID: userID,
		Status: status,
	})
	if err != nil {
		log.Error().Err(err).Str("module", "app.lifecycle").Msg("encode status change")
		return
	}
	l.Transport.BroadcastAll(frame)
}
