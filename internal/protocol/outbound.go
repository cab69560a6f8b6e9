package protocol

import (
	"time"

	"github.com/pion/webrtc/v4"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

// Outbound payloads. Sender identity is always the registry-resolved one.

type LanguagePreferenceUpdated struct {
	Language string `json:"language"`
}

type UserJoinedRoom struct {
	RoomID   domain.RoomID `json:"roomId"`
	UserID   domain.UserID `json:"userId"`
	Username string        `json:"username"`
}

type UserLeftRoom struct {
	RoomID domain.RoomID `json:"roomId"`
	UserID domain.UserID `json:"userId"`
}

type ReceiveMessage struct {
	SenderID   domain.UserID `json:"senderId"`
	SenderName string        `json:"senderName"`
	RoomID     domain.RoomID `json:"roomId,omitempty"`
	Content    string        `json:"content"`
	Timestamp  time.Time     `json:"timestamp"`
}

type MessageSent struct {
	ReceiverID domain.UserID `json:"receiverId,omitempty"`
	RoomID     domain.RoomID `json:"roomId,omitempty"`
	Content    string        `json:"content"`
	Timestamp  time.Time     `json:"timestamp"`
}

type UserTyping struct {
	SenderID   domain.UserID `json:"senderId"`
	SenderName string        `json:"senderName"`
	RoomID     domain.RoomID `json:"roomId,omitempty"`
	IsTyping   bool          `json:"isTyping"`
}

type IncomingCall struct {
	From          domain.UserID             `json:"from"`
	FromName      string                    `json:"fromName"`
	RoomID        domain.RoomID             `json:"roomId,omitempty"`
	Offer         webrtc.SessionDescription `json:"offer"`
	CallType      string                    `json:"callType"`
	CallSessionID string                    `json:"callSessionId"`
}

type IncomingCallDelivered struct {
	To            domain.UserID `json:"to"`
	CallSessionID string        `json:"callSessionId"`
}

type UserUnavailable struct {
	UserID domain.UserID `json:"userId"`
}

type CallAnswered struct {
	From   domain.UserID             `json:"from"`
	RoomID domain.RoomID             `json:"roomId,omitempty"`
	Answer webrtc.SessionDescription `json:"answer"`
}

type IceCandidate struct {
	From      domain.UserID           `json:"from"`
	RoomID    domain.RoomID           `json:"roomId,omitempty"`
	Candidate webrtc.ICECandidateInit `json:"candidate"`
}

type CallEnded struct {
	From   domain.UserID `json:"from"`
	RoomID domain.RoomID `json:"roomId,omitempty"`
}

type IncomingCallAck struct {
	From          domain.UserID `json:"from"`
	CallSessionID string        `json:"callSessionId"`
}

// GroupCallParticipant names both identities of one call-room member: the
// stable user and the channel group-call negotiation is addressed to.
type GroupCallParticipant struct {
	SocketID domain.ConnID `json:"socketId"`
	UserID   domain.UserID `json:"userId"`
	Username string        `json:"username"`
}

type UserJoinedGroupCall struct {
	RoomID      domain.RoomID        `json:"roomId"`
	Participant GroupCallParticipant `json:"participant"`
}

type ExistingParticipants struct {
	RoomID       domain.RoomID          `json:"roomId"`
	Participants []GroupCallParticipant `json:"participants"`
}

type UserLeftGroupCall struct {
	RoomID   domain.RoomID `json:"roomId"`
	UserID   domain.UserID `json:"userId"`
	SocketID domain.ConnID `json:"socketId"`
}

type GroupCallOffer struct {
	From     domain.ConnID             `json:"from"`
	FromUser domain.UserID             `json:"fromUser"`
	Offer    webrtc.SessionDescription `json:"offer"`
}

type GroupCallAnswer struct {
	From     domain.ConnID             `json:"from"`
	FromUser domain.UserID             `json:"fromUser"`
	Answer   webrtc.SessionDescription `json:"answer"`
}

type GroupCallIceCandidate struct {
	From      domain.ConnID           `json:"from"`
	FromUser  domain.UserID           `json:"fromUser"`
	Candidate webrtc.ICECandidateInit `json:"candidate"`
}

type ParticipantSpeaking struct {
	RoomID     domain.RoomID `json:"roomId"`
	UserID     domain.UserID `json:"userId"`
	IsSpeaking bool          `json:"isSpeaking"`
}

type UserStatusChange struct {
	UserID domain.UserID `json:"userId"`
	Status domain.Status `json:"status"`
}
