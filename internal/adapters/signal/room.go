package signal

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/protocol"
)

func (ctl *Controller) handleJoinRoom(connID domain.ConnID, data json.RawMessage) {
	var p protocol.JoinRoomPayload
	if !decodePayload(connID, protocol.EventJoinRoom, data, &p) || p.RoomID == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	ctl.Rooms.Join(domain.NamespaceChat, p.RoomID, s.UserID)
	ctl.Transport.JoinGroup(connID, protocol.ChatGroup(p.RoomID))

	ctl.broadcast(protocol.ChatGroup(p.RoomID), protocol.EventUserJoinedRoom, protocol.UserJoinedRoom{
		RoomID:   p.RoomID,
		UserID:   s.UserID,
		Username: s.Username,
	}, connID)
}

func (ctl *Controller) handleLeaveRoom(connID domain.ConnID, data json.RawMessage) {
	var p protocol.LeaveRoomPayload
	if !decodePayload(connID, protocol.EventLeaveRoom, data, &p) || p.RoomID == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	ctl.Rooms.Leave(domain.NamespaceChat, p.RoomID, s.UserID)
	ctl.Transport.LeaveGroup(connID, protocol.ChatGroup(p.RoomID))

	ctl.broadcast(protocol.ChatGroup(p.RoomID), protocol.EventUserLeftRoom, protocol.UserLeftRoom{
		RoomID: p.RoomID,
		UserID: s.UserID,
	}, connID)
}

// handleSendMessage relays a chat message either to one user (resolved
// through the registry) or to a chat room. The sender always gets the
// messageSent ack, even when a direct target cannot be resolved. An
// unresolvable target is dropped without an error event.
func (ctl *Controller) handleSendMessage(connID domain.ConnID, data json.RawMessage) {
	var p protocol.SendMessagePayload
	if !decodePayload(connID, protocol.EventSendMessage, data, &p) || p.Content == "" {
		return
	}
	if p.ReceiverID == "" && p.RoomID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(connID)).Msg("sendMessage without target")
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	now := time.Now()
	msg := protocol.ReceiveMessage{
		SenderID:   s.UserID,
		SenderName: s.Username,
		Content:    p.Content,
		Timestamp:  now,
	}

	switch {
	case p.ReceiverID != "":
		if target, ok := ctl.Registry.FindByUserID(p.ReceiverID); ok {
			ctl.send(target.ConnID, protocol.EventReceiveMessage, msg)
		}
	default:
		msg.RoomID = p.RoomID
		ctl.broadcast(protocol.ChatGroup(p.RoomID), protocol.EventReceiveMessage, msg, connID)
	}

	ctl.send(connID, protocol.EventMessageSent, protocol.MessageSent{
		ReceiverID: p.ReceiverID,
		RoomID:     p.RoomID,
		Content:    p.Content,
		Timestamp:  now,
	})
}

// handleTyping mirrors sendMessage's target resolution, without an ack.
func (ctl *Controller) handleTyping(connID domain.ConnID, data json.RawMessage) {
	var p protocol.TypingPayload
	if !decodePayload(connID, protocol.EventTyping, data, &p) {
		return
	}
	if p.ReceiverID == "" && p.RoomID == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	evt := protocol.UserTyping{
		SenderID:   s.UserID,
		SenderName: s.Username,
		IsTyping:   p.IsTyping,
	}

	switch {
	case p.ReceiverID != "":
		if target, ok := ctl.Registry.FindByUserID(p.ReceiverID); ok {
			ctl.send(target.ConnID, protocol.EventUserTyping, evt)
		}
	default:
		evt.RoomID = p.RoomID
		ctl.broadcast(protocol.ChatGroup(p.RoomID), protocol.EventUserTyping, evt, connID)
	}
}
