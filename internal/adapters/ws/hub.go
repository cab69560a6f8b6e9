// Package ws implements the relay's transport: one registered Conn per
// open channel, plus named groups for room-scoped fan-out.
package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/core"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

// Hub owns the connection map and group membership. It delivers only to
// currently-open channels and silently drops to ones that no longer
// exist.
type Hub struct {
	mu     sync.RWMutex
	conns  map[domain.ConnID]*Conn
	groups map[string]map[domain.ConnID]struct{}

	sendBuffer int
}

func NewHub(sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	return &Hub{
		conns:      make(map[domain.ConnID]*Conn),
		groups:     make(map[string]map[domain.ConnID]struct{}),
		sendBuffer: sendBuffer,
	}
}

// Add registers a freshly upgraded socket and returns its Conn.
func (h *Hub) Add(id domain.ConnID, sock *websocket.Conn) *Conn {
	c := newConn(id, sock, h.sendBuffer)
	h.mu.Lock()
	h.conns[id] = c
	h.mu.Unlock()
	return c
}

// Remove forgets a connection and drops it from every group. The Conn is
// closed as well; Remove and Close are both idempotent.
func (h *Hub) Remove(id domain.ConnID) {
	h.mu.Lock()
	c, ok := h.conns[id]
	if ok {
		delete(h.conns, id)
	}
	for group, members := range h.groups {
		delete(members, id)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
	h.mu.Unlock()
	if ok {
		c.Close()
	}
}

func (h *Hub) Unicast(id domain.ConnID, f core.Frame) bool {
	h.mu.RLock()
	c, ok := h.conns[id]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	if err := c.TrySend(f); err != nil {
		log.Warn().Err(err).Str("module", "ws").Str("conn", string(id)).Msg("unicast dropped")
	}
	return true
}

func (h *Hub) Broadcast(group string, f core.Frame, except domain.ConnID) {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.groups[group]))
	for id := range h.groups[group] {
		if id == except {
			continue
		}
		if c, ok := h.conns[id]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.TrySend(f); err != nil {
			log.Warn().Err(err).Str("module", "ws").Str("conn", string(c.id)).Msg("broadcast dropped")
		}
	}
}

func (h *Hub) BroadcastAll(f core.Frame) {
	h.mu.RLock()
	targets := lo.Values(h.conns)
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.TrySend(f); err != nil {
			log.Warn().Err(err).Str("module", "ws").Str("conn", string(c.id)).Msg("global broadcast dropped")
		}
	}
}

func (h *Hub) JoinGroup(id domain.ConnID, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[id]; !ok {
		return
	}
	members, ok := h.groups[group]
	if !ok {
		members = make(map[domain.ConnID]struct{})
		h.groups[group] = members
	}
	members[id] = struct{}{}
}

func (h *Hub) LeaveGroup(id domain.ConnID, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[group]
	if !ok {
		return
	}
	delete(members, id)
	if len(members) == 0 {
		delete(h.groups, group)
	}
}

func (h *Hub) GroupMembers(group string) []domain.ConnID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return lo.Keys(h.groups[group])
}

func (h *Hub) LiveIDs() []domain.ConnID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return lo.Keys(h.conns)
}

// CloseConn force-closes a channel, e.g. when a newer connection for the
// same user supersedes it.
func (h *Hub) CloseConn(id domain.ConnID) {
	h.Remove(id)
}
