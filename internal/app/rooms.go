package app

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

// Directory maps room ids to member sets, in two disjoint namespaces
// (chat rooms and group-call rooms). Rooms exist implicitly: join creates
// them, and the last leave deletes them. A room is never observed with
// an empty member set.
type Directory struct {
	mu    sync.RWMutex
	rooms map[domain.Namespace]map[domain.RoomID]map[domain.UserID]struct{}
}

func NewDirectory() *Directory {
	return &Directory{
		rooms: map[domain.Namespace]map[domain.RoomID]map[domain.UserID]struct{}{
			domain.NamespaceChat: {},
			domain.NamespaceCall: {},
		},
	}
}

// Join adds a user to a room, creating the room lazily. The returned
// snapshot is the membership *before* the join, so callers can notify
// existing members without including the new one.
func (d *Directory) Join(ns domain.Namespace, roomID domain.RoomID, userID domain.UserID) []domain.UserID {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[ns][roomID]
	if !ok {
		room = make(map[domain.UserID]struct{})
		d.rooms[ns][roomID] = room
	}
	before := lo.Keys(room)
	room[userID] = struct{}{}

	log.Debug().Str("module", "app.rooms").Str("ns", string(ns)).
		Str("room", string(roomID)).Str("user", string(userID)).Msg("joined room")
	return before
}

// Leave is a no-op for unknown rooms or non-members.
func (d *Directory) Leave(ns domain.Namespace, roomID domain.RoomID, userID domain.UserID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.leaveLocked(ns, roomID, userID)
}

// RemoveFromAllRooms drops a user from every room of a namespace and
// returns the rooms that were affected.
func (d *Directory) RemoveFromAllRooms(ns domain.Namespace, userID domain.UserID) []domain.RoomID {
	d.mu.Lock()
	defer d.mu.Unlock()

	var affected []domain.RoomID
	for roomID, room := range d.rooms[ns] {
		if _, ok := room[userID]; ok {
			affected = append(affected, roomID)
			d.leaveLocked(ns, roomID, userID)
		}
	}
	return affected
}

func (d *Directory) Members(ns domain.Namespace, roomID domain.RoomID) []domain.UserID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if room, ok := d.rooms[ns][roomID]; ok {
		return lo.Keys(room)
	}
	return nil
}

func (d *Directory) List(ns domain.Namespace) []domain.RoomInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.RoomInfo, 0, len(d.rooms[ns]))
	for roomID, room := range d.rooms[ns] {
		out = append(out, domain.RoomInfo{ID: roomID, MemberCount: len(room)})
	}
	return out
}

// leaveLocked removes membership and deletes the room the instant it
// empties. Caller holds d.mu.
func (d *Directory) leaveLocked(ns domain.Namespace, roomID domain.RoomID, userID domain.UserID) {
	room, ok := d.rooms[ns][roomID]
	if !ok {
		return
	}
	delete(room, userID)
	if len(room) == 0 {
		delete(d.rooms[ns], roomID)
		log.Debug().Str("module", "app.rooms").Str("ns", string(ns)).
			Str("room", string(roomID)).Msg("room emptied, deleted")
	}
}
