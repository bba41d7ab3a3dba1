// Package broadcast implements the subscriber registry, the bounded
// message history, and the leader-side fan-out engine.
package broadcast

// ClientID is assigned by the leader at subscribe time. It is unique
// per server process lifetime, not globally unique, and not stable
// across a leader changeover.
type ClientID uint32

// TextMessage is the tuple of (sender, content, Lamport timestamp)
// exchanged between clients and the leader.
type TextMessage struct {
	ClientIDFrom     ClientID
	Content          string
	LamportTimestamp uint64
}
