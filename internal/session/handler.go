// Package session implements the client session handler of spec.md
// §4.6: subscribe (redirect-or-assign, then stream) and the leader-only
// unary send path. It is grounded on original_source/chat_server.py's
// SubscribeToServerEvents/SendMessageToServer pair and on the
// teacher's leader/follower split in cmd/coordinator/main.go.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isascarabelli/Chat-Distribuido/internal/broadcast"
	"github.com/isascarabelli/Chat-Distribuido/internal/clock"
	"github.com/isascarabelli/Chat-Distribuido/internal/election"
	"github.com/isascarabelli/Chat-Distribuido/internal/registry"
	"github.com/sirupsen/logrus"
)

// drainPollInterval is how often the subscribe loop wakes up to check
// RPC context liveness when no message is pending (spec.md §4.6 step 3).
const drainPollInterval = 1 * time.Second

// ErrLeaderUnknown is returned by Subscribe when no leader has been
// elected yet (spec.md §3: LeaderState is "unknown until the first
// election concludes"). Transport layers should surface this as an
// explicit, retryable error rather than closing the stream silently.
var ErrLeaderUnknown = errors.New("leader not yet known")

// LeaderInfo is what GetLeader and the redirect path both need.
type LeaderInfo struct {
	ID      registry.ServerID
	Address string
	Known   bool
}

// Handler wires the election engine and the broadcast engine into the
// client-facing operations of spec.md §4.6.
type Handler struct {
	self        registry.ServerID
	selfAddress string
	peers       *registry.Registry
	election    *election.Engine
	clock       *clock.Lamport
	subs        *broadcast.SubscriberRegistry
	engine      *broadcast.Engine
	log         *logrus.Entry
}

// New builds a session Handler.
func New(self registry.ServerID, selfAddress string, peers *registry.Registry, el *election.Engine, c *clock.Lamport, subs *broadcast.SubscriberRegistry, engine *broadcast.Engine, log *logrus.Entry) *Handler {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Handler{
		self:        self,
		selfAddress: selfAddress,
		peers:       peers,
		election:    el,
		clock:       c,
		subs:        subs,
		engine:      engine,
		log:         log.WithField("component", "session").WithField("server", self),
	}
}

// GetLeader is safe on any replica.
func (h *Handler) GetLeader() LeaderInfo {
	id, known := h.election.CurrentLeader()
	if !known {
		return LeaderInfo{}
	}
	if id == h.self {
		return LeaderInfo{ID: id, Address: h.selfAddress, Known: true}
	}
	addr, ok := h.peers.Address(id)
	if !ok {
		return LeaderInfo{ID: id, Known: true}
	}
	return LeaderInfo{ID: id, Address: addr, Known: true}
}

// Sender is satisfied by the gRPC server-stream wrapper for
// SubscribeToServerEvents; kept as an interface so tests can drive
// Subscribe without a real gRPC connection.
type Sender interface {
	Send(broadcast.TextMessage) error
	Context() context.Context
}

// Subscribe implements spec.md §4.6. On a non-leader it yields exactly
// one REDIRECT control message and returns. On the leader it assigns a
// ClientID, installs a subscriber slot, yields the "ID Atribuido"
// control message, then streams the slot's queue until the stream's
// context is done, cleaning the slot up on the way out. If no leader
// has been elected yet, it returns ErrLeaderUnknown instead of closing
// the stream without explanation.
func (h *Handler) Subscribe(s Sender) error {
	if !h.election.IsLeader() {
		info := h.GetLeader()
		if !info.Known {
			return ErrLeaderUnknown
		}
		return s.Send(broadcast.TextMessage{
			ClientIDFrom:     0,
			Content:          "REDIRECT:" + info.Address,
			LamportTimestamp: h.clock.Now(),
		})
	}

	slot := h.subs.Add()
	ts := h.clock.Observe(0)
	h.log.WithField("client", slot.ID).Info("client connected")

	if err := s.Send(broadcast.TextMessage{
		ClientIDFrom:     0,
		Content:          fmt.Sprintf("ID Atribuido:%d", slot.ID),
		LamportTimestamp: ts,
	}); err != nil {
		h.subs.Remove(slot.ID)
		return err
	}

	defer func() {
		h.subs.Remove(slot.ID)
		h.log.WithField("client", slot.ID).Info("client disconnected")
	}()

	ctx := s.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-slot.Queue:
			if err := s.Send(msg); err != nil {
				return err
			}
		case <-time.After(drainPollInterval):
			continue
		}
	}
}

// SendMessage implements spec.md §4.6's unary send path. A non-leader
// does not forward; it declines so the client's transport layer sees
// a failure and re-resolves the leader via GetLeader.
func (h *Handler) SendMessage(msg broadcast.TextMessage) (accepted broadcast.TextMessage, ok bool) {
	if !h.election.IsLeader() {
		return broadcast.TextMessage{}, false
	}
	return h.engine.Accept(msg), true
}
