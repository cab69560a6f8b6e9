package protocol

import (
	"github.com/pion/webrtc/v4"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

// Inbound payloads. Client-supplied sender fields are never trusted; the
// router resolves the real sender from the registry.

type UpdateLanguagePreferencePayload struct {
	Language string `json:"language"`
}

type JoinRoomPayload struct {
	RoomID domain.RoomID `json:"roomId"`
}

type LeaveRoomPayload struct {
	RoomID domain.RoomID `json:"roomId"`
}

// SendMessagePayload targets exactly one of ReceiverID (direct) or RoomID
// (room broadcast).
type SendMessagePayload struct {
	ReceiverID domain.UserID `json:"receiverId,omitempty"`
	RoomID     domain.RoomID `json:"roomId,omitempty"`
	Content    string        `json:"content"`
}

type TypingPayload struct {
	ReceiverID domain.UserID `json:"receiverId,omitempty"`
	RoomID     domain.RoomID `json:"roomId,omitempty"`
	IsTyping   bool          `json:"isTyping"`
}

type CallUserPayload struct {
	To            domain.UserID             `json:"to,omitempty"`
	RoomID        domain.RoomID             `json:"roomId,omitempty"`
	Offer         webrtc.SessionDescription `json:"offer"`
	CallType      string                    `json:"callType"`
	CallSessionID string                    `json:"callSessionId,omitempty"`
}

type AnswerCallPayload struct {
	To     domain.UserID             `json:"to,omitempty"`
	RoomID domain.RoomID             `json:"roomId,omitempty"`
	Answer webrtc.SessionDescription `json:"answer"`
}

type IceCandidatePayload struct {
	To        domain.UserID           `json:"to,omitempty"`
	RoomID    domain.RoomID           `json:"roomId,omitempty"`
	Candidate webrtc.ICECandidateInit `json:"candidate"`
}

type EndCallPayload struct {
	To     domain.UserID `json:"to,omitempty"`
	RoomID domain.RoomID `json:"roomId,omitempty"`
}

type IncomingCallAckPayload struct {
	From          domain.UserID `json:"from"`
	CallSessionID string        `json:"callSessionId"`
}

type JoinGroupCallPayload struct {
	RoomID domain.RoomID `json:"roomId"`
	// UserID is advisory only; the registry identity wins.
	UserID domain.UserID `json:"userId,omitempty"`
}

type LeaveGroupCallPayload struct {
	RoomID domain.RoomID `json:"roomId"`
}

// Group-call negotiation is addressed by raw connection identity, not
// user identity: a room broadcast cannot carry one negotiated offer to
// one peer without naming the exact channel.

type GroupCallOfferPayload struct {
	TargetSocketID domain.ConnID             `json:"targetSocketId"`
	Offer          webrtc.SessionDescription `json:"offer"`
}

type GroupCallAnswerPayload struct {
	TargetSocketID domain.ConnID             `json:"targetSocketId"`
	Answer         webrtc.SessionDescription `json:"answer"`
}

type GroupCallIceCandidatePayload struct {
	TargetSocketID domain.ConnID           `json:"targetSocketId"`
	Candidate      webrtc.ICECandidateInit `json:"candidate"`
}

type GroupCallSpeakingPayload struct {
	RoomID     domain.RoomID `json:"roomId"`
	IsSpeaking bool          `json:"isSpeaking"`
}
