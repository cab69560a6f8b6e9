// Package protocol defines the wire contract of the signaling relay: a
// closed set of event kinds, each with its own payload shape. Field names
// must stay exactly as written here for client interoperability.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

type EventKind string

// Inbound event kinds.
const (
	EventUpdateLanguagePreference EventKind = "updateLanguagePreference"
	EventJoinRoom                 EventKind = "joinRoom"
	EventLeaveRoom                EventKind = "leaveRoom"
	EventSendMessage              EventKind = "sendMessage"
	EventTyping                   EventKind = "typing"
	EventCallUser                 EventKind = "callUser"
	EventAnswerCall               EventKind = "answerCall"
	EventIceCandidate             EventKind = "iceCandidate"
	EventEndCall                  EventKind = "endCall"
	EventIncomingCallAck          EventKind = "incomingCallAck"
	EventJoinGroupCall            EventKind = "joinGroupCall"
	EventLeaveGroupCall           EventKind = "leaveGroupCall"
	EventGroupCallOffer           EventKind = "groupCallOffer"
	EventGroupCallAnswer          EventKind = "groupCallAnswer"
	EventGroupCallIceCandidate    EventKind = "groupCallIceCandidate"
	EventGroupCallSpeaking        EventKind = "groupCallSpeaking"
)

// Outbound event kinds.
const (
	EventLanguagePreferenceUpdated EventKind = "languagePreferenceUpdated"
	EventUserJoinedRoom            EventKind = "userJoinedRoom"
	EventUserLeftRoom              EventKind = "userLeftRoom"
	EventReceiveMessage            EventKind = "receiveMessage"
	EventMessageSent               EventKind = "messageSent"
	EventUserTyping                EventKind = "userTyping"
	EventIncomingCall              EventKind = "incomingCall"
	EventIncomingCallDelivered     EventKind = "incomingCallDelivered"
	EventUserUnavailable           EventKind = "userUnavailable"
	EventCallAnswered              EventKind = "callAnswered"
	EventCallEnded                 EventKind = "callEnded"
	EventUserJoinedGroupCall       EventKind = "userJoinedGroupCall"
	EventExistingParticipants      EventKind = "existingParticipants"
	EventUserLeftGroupCall         EventKind = "userLeftGroupCall"
	EventParticipantSpeaking       EventKind = "participantSpeaking"
	EventUserStatusChange          EventKind = "userStatusChange"
)

// Envelope is the outer frame of every message in both directions.
type Envelope struct {
	Event EventKind       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode marshals an outbound event into a wire frame.
func Encode(kind EventKind, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	frame, err := json.Marshal(Envelope{Event: kind, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", kind, err)
	}
	return frame, nil
}

// Group keys on the transport. Chat rooms and call rooms are disjoint
// namespaces, so their transport groups are prefixed apart as well.
func ChatGroup(roomID domain.RoomID) string { return "chat:" + string(roomID) }
func CallGroup(roomID domain.RoomID) string { return "call:" + string(roomID) }
