package signal

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/protocol"
)

// 1:1 calls are addressed by stable user identity so they survive
// reconnects; the room variant of each event fans out to a call room
// instead. The offer/answer/candidate contents are relayed opaquely.

// handleCallUser delivers the offer and tells the caller whether it
// landed. A target whose registered connection has no live channel is a
// stale entry: it is evicted and the caller gets userUnavailable.
func (ctl *Controller) handleCallUser(connID domain.ConnID, data json.RawMessage) {
	var p protocol.CallUserPayload
	if !decodePayload(connID, protocol.EventCallUser, data, &p) || p.Offer.SDP == "" {
		return
	}
	if p.To == "" && p.RoomID == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	callSessionID := p.CallSessionID
	if callSessionID == "" {
		callSessionID = uuid.NewString()
	}

	call := protocol.IncomingCall{
		From:          s.UserID,
		FromName:      s.Username,
		Offer:         p.Offer,
		CallType:      p.CallType,
		CallSessionID: callSessionID,
	}

	if p.To == "" {
		call.RoomID = p.RoomID
		ctl.broadcast(protocol.CallGroup(p.RoomID), protocol.EventIncomingCall, call, connID)
		return
	}

	target, ok := ctl.Registry.FindByUserID(p.To)
	if !ok {
		ctl.send(connID, protocol.EventUserUnavailable, protocol.UserUnavailable{UserID: p.To})
		return
	}
	if !ctl.send(target.ConnID, protocol.EventIncomingCall, call) {
		// Registered but the channel is gone: evict, don't wait for
		// the sweep.
		ctl.Registry.UnregisterByConnection(target.ConnID)
		ctl.send(connID, protocol.EventUserUnavailable, protocol.UserUnavailable{UserID: p.To})
		log.Info().Str("module", "signal").Str("user", string(p.To)).Msg("stale callee evicted")
		return
	}
	ctl.send(connID, protocol.EventIncomingCallDelivered, protocol.IncomingCallDelivered{
		To:            p.To,
		CallSessionID: callSessionID,
	})
}

func (ctl *Controller) handleAnswerCall(connID domain.ConnID, data json.RawMessage) {
	var p protocol.AnswerCallPayload
	if !decodePayload(connID, protocol.EventAnswerCall, data, &p) || p.Answer.SDP == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	evt := protocol.CallAnswered{From: s.UserID, Answer: p.Answer}
	if p.To != "" {
		if target, ok := ctl.Registry.FindByUserID(p.To); ok {
			ctl.send(target.ConnID, protocol.EventCallAnswered, evt)
		}
		return
	}
	if p.RoomID != "" {
		evt.RoomID = p.RoomID
		ctl.broadcast(protocol.CallGroup(p.RoomID), protocol.EventCallAnswered, evt, connID)
	}
}

func (ctl *Controller) handleIceCandidate(connID domain.ConnID, data json.RawMessage) {
	var p protocol.IceCandidatePayload
	if !decodePayload(connID, protocol.EventIceCandidate, data, &p) || p.Candidate.Candidate == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	evt := protocol.IceCandidate{From: s.UserID, Candidate: p.Candidate}
	if p.To != "" {
		if target, ok := ctl.Registry.FindByUserID(p.To); ok {
			ctl.send(target.ConnID, protocol.EventIceCandidate, evt)
		}
		return
	}
	if p.RoomID != "" {
		evt.RoomID = p.RoomID
		ctl.broadcast(protocol.CallGroup(p.RoomID), protocol.EventIceCandidate, evt, connID)
	}
}

func (ctl *Controller) handleEndCall(connID domain.ConnID, data json.RawMessage) {
	var p protocol.EndCallPayload
	if !decodePayload(connID, protocol.EventEndCall, data, &p) {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	evt := protocol.CallEnded{From: s.UserID}
	if p.To != "" {
		if target, ok := ctl.Registry.FindByUserID(p.To); ok {
			ctl.send(target.ConnID, protocol.EventCallEnded, evt)
		}
		return
	}
	if p.RoomID != "" {
		evt.RoomID = p.RoomID
		ctl.broadcast(protocol.CallGroup(p.RoomID), protocol.EventCallEnded, evt, connID)
	}
}

// handleIncomingCallAck routes the handshake correlation back to the
// original caller, identified by user.
func (ctl *Controller) handleIncomingCallAck(connID domain.ConnID, data json.RawMessage) {
	var p protocol.IncomingCallAckPayload
	if !decodePayload(connID, protocol.EventIncomingCallAck, data, &p) || p.From == "" || p.CallSessionID == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	if target, ok := ctl.Registry.FindByUserID(p.From); ok {
		ctl.send(target.ConnID, protocol.EventIncomingCallAck, protocol.IncomingCallAck{
			From:          s.UserID,
			CallSessionID: p.CallSessionID,
		})
	}
}
