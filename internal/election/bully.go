// Package election implements the Bully leader-election engine and
// the failure detector that triggers it. It is grounded on the
// teacher's internal/election/bully.go (Coordinator type, startElection/
// becomeLeader/broadcastLeadership/sendHeartbeats shape), generalized
// from the teacher's raw-TCP three-message protocol (ELECTION/OK/LEADER)
// to the gRPC ElectionService of proto/chatpb, and corrected against
// the two defects spec.md §9 calls out in the original source: the
// re-entrant restart is a loop instead of an unbounded goroutine spawn
// (single-flight), and the leader-change observer runs outside the
// state mutex so it cannot deadlock against a concurrent Coordinator RPC.
package election

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/isascarabelli/Chat-Distribuido/internal/clock"
	"github.com/isascarabelli/Chat-Distribuido/internal/registry"
	"github.com/isascarabelli/Chat-Distribuido/proto/chatpb"
	"github.com/sirupsen/logrus"
)

// Reference timeout values from spec.md §4.3/§4.4.
const (
	DefaultElectionRPCTimeout          = 3 * time.Second
	DefaultCoordinatorWaitTimeout      = 5 * time.Second
	DefaultCoordinatorBroadcastTimeout = 2 * time.Second
	DefaultHeartbeatInterval           = 2 * time.Second
	DefaultHeartbeatTimeout            = 2 * time.Second
)

// State is the per-server election state machine's current state,
// per spec.md §4.3's state machine note.
type State int

const (
	Unknown State = iota
	Electing
	Leader
	Follower
)

func (s State) String() string {
	switch s {
	case Electing:
		return "Electing"
	case Leader:
		return "Leader"
	case Follower:
		return "Follower"
	default:
		return "Unknown"
	}
}

// Engine drives the Bully algorithm for one server and publishes the
// cluster-wide leader identity it converges on.
type Engine struct {
	self  registry.ServerID
	peers *registry.Registry
	clock *clock.Lamport
	trans Transport
	log   *logrus.Entry

	electionRPCTimeout          time.Duration
	coordinatorWaitTimeout      time.Duration
	coordinatorBroadcastTimeout time.Duration

	mu     sync.RWMutex
	leader *registry.ServerID

	electing int32 // atomic in-progress flag; test-and-set guards re-entrant elections

	onLeaderChange func(registry.ServerID)
}

// NewEngine builds an election Engine. onLeaderChange, if non-nil, is
// invoked exactly once per leader-identity change, outside any
// internal lock.
func NewEngine(self registry.ServerID, peers *registry.Registry, c *clock.Lamport, trans Transport, onLeaderChange func(registry.ServerID), log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{
		self:                        self,
		peers:                       peers,
		clock:                       c,
		trans:                       trans,
		log:                         log.WithField("component", "election").WithField("server", self),
		electionRPCTimeout:          DefaultElectionRPCTimeout,
		coordinatorWaitTimeout:      DefaultCoordinatorWaitTimeout,
		coordinatorBroadcastTimeout: DefaultCoordinatorBroadcastTimeout,
		onLeaderChange:              onLeaderChange,
	}
}

// Self returns this engine's own server identifier.
func (e *Engine) Self() registry.ServerID {
	return e.self
}

// SetTimeouts overrides the engine's RPC and coordinator-wait timeouts
// after construction. Exposed so tests can drive the "no coordinator
// observed, restart the election" branch (spec.md §4.3 step 6) on a
// short cadence instead of the production defaults, mirroring
// Detector.SetInterval.
func (e *Engine) SetTimeouts(electionRPC, coordinatorWait, coordinatorBroadcast time.Duration) {
	e.electionRPCTimeout = electionRPC
	e.coordinatorWaitTimeout = coordinatorWait
	e.coordinatorBroadcastTimeout = coordinatorBroadcast
}

// CurrentLeader returns the currently known leader, if any.
func (e *Engine) CurrentLeader() (id registry.ServerID, known bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.leader == nil {
		return 0, false
	}
	return *e.leader, true
}

// IsLeader reports whether this server believes itself to be leader.
func (e *Engine) IsLeader() bool {
	id, known := e.CurrentLeader()
	return known && id == e.self
}

// State reports the current coarse election state, for diagnostics
// and tests.
func (e *Engine) State() State {
	if atomic.LoadInt32(&e.electing) == 1 {
		return Electing
	}
	id, known := e.CurrentLeader()
	switch {
	case !known:
		return Unknown
	case id == e.self:
		return Leader
	default:
		return Follower
	}
}

// setLeader installs a new leader identity and, if it actually
// changed, invokes the leader-change observer after releasing the
// lock (never from inside the critical section — see package doc).
func (e *Engine) setLeader(id registry.ServerID) {
	e.mu.Lock()
	changed := e.leader == nil || *e.leader != id
	idCopy := id
	e.leader = &idCopy
	e.mu.Unlock()

	if changed && e.onLeaderChange != nil {
		e.onLeaderChange(id)
	}
}

// StartElection initiates an election. It is idempotent under
// concurrent callers: only the caller that wins the test-and-set on
// the in-progress flag actually runs the protocol; everyone else
// returns immediately. The whole multi-round protocol (including the
// "no Coordinator observed, try again" restart of spec.md §4.3 step 6)
// runs as a single loop in one goroutine — a single-flight, not a
// chain of spawned goroutines.
func (e *Engine) StartElection() {
	if !atomic.CompareAndSwapInt32(&e.electing, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&e.electing, 0)

	for {
		restart := e.runElectionRound()
		if !restart {
			return
		}
		e.log.Info("no coordinator observed within timeout, restarting election")
	}
}

// runElectionRound executes one pass of spec.md §4.3's startElection
// algorithm (steps 2-7) and reports whether the caller should restart
// the protocol (true) or stop (false, a leader is now known or this
// server has become leader).
func (e *Engine) runElectionRound() (restart bool) {
	ts := e.clock.Tick()
	higher := e.peers.HigherThan(e.self)

	if len(higher) == 0 {
		e.log.Info("no higher-id peer, declaring self leader")
		e.becomeLeader()
		return false
	}

	e.log.WithField("timestamp", ts).Info("starting election")
	anyOK := e.challengeHigherPeers(higher, ts)

	if !anyOK {
		e.log.Info("no OK received from higher-id peers, declaring self leader")
		e.becomeLeader()
		return false
	}

	e.log.Info("waiting for coordinator announcement")
	time.Sleep(e.coordinatorWaitTimeout)

	if _, known := e.CurrentLeader(); known {
		return false
	}
	return true
}

// challengeHigherPeers issues Election RPCs to every peer in H
// concurrently, each bounded by electionRPCTimeout, observing the
// Lamport timestamp of every ok=true reply. It reports whether any
// peer replied ok.
func (e *Engine) challengeHigherPeers(higher []registry.Peer, ts uint64) bool {
	var wg sync.WaitGroup
	var mu sync.Mutex
	anyOK := false

	for _, peer := range higher {
		wg.Add(1)
		go func(peer registry.Peer) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), e.electionRPCTimeout)
			defer cancel()

			resp, err := e.trans.Election(ctx, peer.Address, &chatpb.ElectionRequest{
				CandidateId:      uint32(e.self),
				LamportTimestamp: ts,
			})
			if err != nil {
				e.log.WithError(err).WithField("peer", peer.ID).Debug("election RPC failed, treating as no reply")
				return
			}
			if resp.Ok {
				e.clock.Observe(resp.LamportTimestamp)
				mu.Lock()
				anyOK = true
				mu.Unlock()
			}
		}(peer)
	}

	wg.Wait()
	return anyOK
}

// becomeLeader declares self leader and broadcasts Coordinator to
// every peer. Clearing the in-progress flag is the caller's
// responsibility (StartElection's deferred reset).
func (e *Engine) becomeLeader() {
	e.setLeader(e.self)
	ts := e.clock.Tick()

	var wg sync.WaitGroup
	for _, peer := range e.peers.Peers() {
		wg.Add(1)
		go func(peer registry.Peer) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), e.coordinatorBroadcastTimeout)
			defer cancel()
			_, err := e.trans.Coordinator(ctx, peer.Address, &chatpb.CoordinatorRequest{
				LeaderId:         uint32(e.self),
				LamportTimestamp: ts,
			})
			if err != nil {
				e.log.WithError(err).WithField("peer", peer.ID).Debug("coordinator broadcast failed, ignoring")
			}
		}(peer)
	}
	wg.Wait()
}

// OnElection handles an incoming Election RPC. It always observes the
// candidate's timestamp. If the candidate's id is lower than self, it
// replies ok and asynchronously starts its own election (the
// higher-id responder races to take over); otherwise it declines.
func (e *Engine) OnElection(candidate registry.ServerID, ts uint64) (ok bool, responder registry.ServerID) {
	e.clock.Observe(ts)
	if candidate < e.self {
		go e.StartElection()
		return true, e.self
	}
	return false, e.self
}

// OnCoordinator handles an incoming Coordinator announcement:
// unconditionally observes ts and accepts the new leader identity.
func (e *Engine) OnCoordinator(leader registry.ServerID, ts uint64) {
	e.clock.Observe(ts)
	e.setLeader(leader)
}
