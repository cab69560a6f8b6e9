package domain

type RoomID string

// Namespace separates chat rooms from group-call rooms. The two sets of
// room ids never merge even when they collide textually.
type Namespace string

const (
	NamespaceChat Namespace = "chat"
	NamespaceCall Namespace = "call"
)

type RoomInfo struct {
	ID          RoomID `json:"id"`
	MemberCount int    `json:"memberCount"`
}
