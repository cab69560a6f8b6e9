package core

import (
	"context"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

// Frame is a raw outbound payload, already encoded for the wire.
type Frame []byte

// Identity is the decoded result of credential verification.
type Identity struct {
	UserID   domain.UserID
	Username string
}

// Verifier turns an opaque credential string into an identity claim.
// Failures distinguish a missing credential from an invalid one.
type Verifier interface {
	Verify(credential string) (Identity, error)
}

// Sender is one transport channel's outbound side.
// TrySend never blocks; a full buffer reports backpressure.
type Sender interface {
	TrySend(Frame) error
	Close()
}

// Transport is the delivery fabric the router emits into. Sends are
// fire-and-forget: a frame addressed to a channel that no longer exists
// is silently dropped.
type Transport interface {
	// Unicast reports whether the target channel is currently live.
	Unicast(id domain.ConnID, f Frame) bool
	// Broadcast fans out to every channel in a named group, optionally
	// excluding one sender ("" excludes nobody).
	Broadcast(group string, f Frame, except domain.ConnID)
	BroadcastAll(f Frame)

	JoinGroup(id domain.ConnID, group string)
	LeaveGroup(id domain.ConnID, group string)
	// GroupMembers returns the live channels currently in a group.
	GroupMembers(group string) []domain.ConnID

	LiveIDs() []domain.ConnID
	CloseConn(id domain.ConnID)
}

// SessionDirectory is the registry view handed to downstream stages.
type SessionDirectory interface {
	Get(id domain.ConnID) (domain.Session, bool)
	FindByUserID(id domain.UserID) (domain.Session, bool)
	UpdateLanguage(id domain.ConnID, language string) bool
}

// Pipeline is the audio/translation stage attached to each admitted
// connection. Invoked exactly once per connection, after registration and
// before any room events are relayed.
type Pipeline interface {
	Attach(ctx context.Context, id domain.ConnID, sessions SessionDirectory)
}
