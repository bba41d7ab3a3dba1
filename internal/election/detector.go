package election

import (
	"context"
	"time"

	"github.com/isascarabelli/Chat-Distribuido/internal/registry"
	"github.com/isascarabelli/Chat-Distribuido/proto/chatpb"
	"github.com/sirupsen/logrus"
)

// Detector is the single long-running heartbeat task of spec.md §4.4.
// It never touches the Lamport clock: heartbeats are deliberately
// excluded from the happens-before graph (spec.md §4.1, §9) so they
// cannot inflate the timestamps attached to chat messages. It is
// grounded on the teacher's monitorElectionTimeout loop, generalized
// from a "time since last incoming LEADER ping" check into an active
// outbound Heartbeat RPC against the known leader, matching
// original_source/chat_server.py's _heartbeat_loop.
type Detector struct {
	engine   *Engine
	peers    *registry.Registry
	trans    Transport
	interval time.Duration
	timeout  time.Duration
	log      *logrus.Entry
}

// NewDetector builds a Detector for engine, using peers to resolve
// the leader's address.
func NewDetector(engine *Engine, peers *registry.Registry, trans Transport, log *logrus.Entry) *Detector {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Detector{
		engine:   engine,
		peers:    peers,
		trans:    trans,
		interval: DefaultHeartbeatInterval,
		timeout:  DefaultHeartbeatTimeout,
		log:      log.WithField("component", "failure-detector").WithField("server", engine.Self()),
	}
}

// SetInterval overrides the probe interval and per-probe timeout after
// construction. Exposed so tests can drive the detector loop on a
// much shorter cadence than the production defaults.
func (d *Detector) SetInterval(interval, timeout time.Duration) {
	d.interval = interval
	d.timeout = timeout
}

// Run blocks, probing the current leader every interval, until ctx is
// cancelled. A single failed heartbeat triggers an election with no
// retry on that tick; elections are themselves idempotent so a
// duplicate trigger from a later tick is harmless.
func (d *Detector) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

func (d *Detector) tick(ctx context.Context) {
	leader, known := d.engine.CurrentLeader()
	if !known || leader == d.engine.Self() {
		return
	}

	addr, ok := d.peers.Address(leader)
	if !ok {
		d.log.WithField("leader", leader).Warn("leader not found in peer registry, skipping heartbeat")
		return
	}

	hbCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	_, err := d.trans.Heartbeat(hbCtx, addr, &chatpb.HeartbeatRequest{
		ServerId:         uint32(d.engine.Self()),
		LamportTimestamp: 0,
	})
	if err != nil {
		d.log.WithError(err).WithField("leader", leader).Warn("leader heartbeat failed, triggering election")
		go d.engine.StartElection()
		return
	}
}
