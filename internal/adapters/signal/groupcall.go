package signal

import (
	"encoding/json"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/protocol"
)

// Group calls are discovered by call room but negotiated per channel:
// an SDP offer must reach exactly one peer, so offer/answer/candidate
// events are addressed by raw connection identity.

// handleJoinGroupCall adds the caller to the call room (directory and
// transport group) and answers with the participants that were already
// there. The participant list is the transport's live room membership
// intersected with the registry; channels that resolve to no known user
// are filtered out.
func (ctl *Controller) handleJoinGroupCall(connID domain.ConnID, data json.RawMessage) {
	var p protocol.JoinGroupCallPayload
	if !decodePayload(connID, protocol.EventJoinGroupCall, data, &p) || p.RoomID == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	group := protocol.CallGroup(p.RoomID)

	existing := make([]protocol.GroupCallParticipant, 0)
	for _, memberID := range ctl.Transport.GroupMembers(group) {
		if memberID == connID {
			continue
		}
		member, ok := ctl.Registry.Get(memberID)
		if !ok || member.UserID == "" {
			continue
		}
		existing = append(existing, protocol.GroupCallParticipant{
			SocketID: memberID,
			UserID:   member.UserID,
			Username: member.Username,
		})
	}

	ctl.Rooms.Join(domain.NamespaceCall, p.RoomID, s.UserID)
	ctl.Transport.JoinGroup(connID, group)

	ctl.broadcast(group, protocol.EventUserJoinedGroupCall, protocol.UserJoinedGroupCall{
		RoomID: p.RoomID,
		Participant: protocol.GroupCallParticipant{
			SocketID: connID,
			UserID:   s.UserID,
			Username: s.Username,
		},
	}, connID)

	ctl.send(connID, protocol.EventExistingParticipants, protocol.ExistingParticipants{
		RoomID:       p.RoomID,
		Participants: existing,
	})
}

func (ctl *Controller) handleLeaveGroupCall(connID domain.ConnID, data json.RawMessage) {
	var p protocol.LeaveGroupCallPayload
	if !decodePayload(connID, protocol.EventLeaveGroupCall, data, &p) || p.RoomID == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}

	group := protocol.CallGroup(p.RoomID)
	ctl.Rooms.Leave(domain.NamespaceCall, p.RoomID, s.UserID)
	ctl.Transport.LeaveGroup(connID, group)

	ctl.broadcast(group, protocol.EventUserLeftGroupCall, protocol.UserLeftGroupCall{
		RoomID:   p.RoomID,
		UserID:   s.UserID,
		SocketID: connID,
	}, connID)
}

func (ctl *Controller) handleGroupCallOffer(connID domain.ConnID, data json.RawMessage) {
	var p protocol.GroupCallOfferPayload
	if !decodePayload(connID, protocol.EventGroupCallOffer, data, &p) || p.TargetSocketID == "" || p.Offer.SDP == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}
	ctl.send(p.TargetSocketID, protocol.EventGroupCallOffer, protocol.GroupCallOffer{
		From:     connID,
		FromUser: s.UserID,
		Offer:    p.Offer,
	})
}

func (ctl *Controller) handleGroupCallAnswer(connID domain.ConnID, data json.RawMessage) {
	var p protocol.GroupCallAnswerPayload
	if !decodePayload(connID, protocol.EventGroupCallAnswer, data, &p) || p.TargetSocketID == "" || p.Answer.SDP == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}
	ctl.send(p.TargetSocketID, protocol.EventGroupCallAnswer, protocol.GroupCallAnswer{
		From:     connID,
		FromUser: s.UserID,
		Answer:   p.Answer,
	})
}

func (ctl *Controller) handleGroupCallIceCandidate(connID domain.ConnID, data json.RawMessage) {
	var p protocol.GroupCallIceCandidatePayload
	if !decodePayload(connID, protocol.EventGroupCallIceCandidate, data, &p) || p.TargetSocketID == "" || p.Candidate.Candidate == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}
	ctl.send(p.TargetSocketID, protocol.EventGroupCallIceCandidate, protocol.GroupCallIceCandidate{
		From:      connID,
		FromUser:  s.UserID,
		Candidate: p.Candidate,
	})
}

func (ctl *Controller) handleGroupCallSpeaking(connID domain.ConnID, data json.RawMessage) {
	var p protocol.GroupCallSpeakingPayload
	if !decodePayload(connID, protocol.EventGroupCallSpeaking, data, &p) || p.RoomID == "" {
		return
	}
	s, ok := ctl.sender(connID)
	if !ok {
		return
	}
	ctl.broadcast(protocol.CallGroup(p.RoomID), protocol.EventParticipantSpeaking, protocol.ParticipantSpeaking{
		RoomID:     p.RoomID,
		UserID:     s.UserID,
		IsSpeaking: p.IsSpeaking,
	}, connID)
}
