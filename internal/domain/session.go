// Package domain contains entity without logic, just meta-data
package domain

import "time"

const (
	// DefaultLanguage is assumed until the client announces a preference.
	DefaultLanguage = "en"
	// UnknownUsername is used when the credential carries no display name.
	UnknownUsername = "Unknown"
)

type (
	// UserID is the stable identity carried by the verified credential.
	UserID string
	// ConnID is assigned by the transport for one open channel.
	ConnID string
)

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// Session binds a transport channel to a user identity plus presence meta.
// Owned by the registry; everyone else reads copies.
type Session struct {
	ConnID            ConnID
	UserID            UserID
	Username          string
	Status            Status
	LastActiveAt      time.Time
	PreferredLanguage string
}

func NewSession(connID ConnID, userID UserID, username string, now time.Time) *Session {
	if username == "" {
		username = UnknownUsername
	}
	return &Session{
		ConnID:            connID,
		UserID:            userID,
		Username:          username,
		Status:            StatusOnline,
		LastActiveAt:      now,
		PreferredLanguage: DefaultLanguage,
	}
}
