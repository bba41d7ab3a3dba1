// Package bootstrap is the "Bootstrap & Supervision" collaborator of
// spec.md §4.7: it wires every core component together, starts the
// gRPC listener, the failure detector and the optional health probe,
// and drives graceful shutdown. It is grounded on the teacher's
// cmd/coordinator/main.go (env/flag parsing, signal handling, health
// server goroutine), generalized from the teacher's monitoring loop
// into a chat cluster's component graph.
package bootstrap

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/isascarabelli/Chat-Distribuido/internal/broadcast"
	"github.com/isascarabelli/Chat-Distribuido/internal/clock"
	"github.com/isascarabelli/Chat-Distribuido/internal/config"
	"github.com/isascarabelli/Chat-Distribuido/internal/election"
	"github.com/isascarabelli/Chat-Distribuido/internal/health"
	"github.com/isascarabelli/Chat-Distribuido/internal/registry"
	"github.com/isascarabelli/Chat-Distribuido/internal/rpcserver"
	"github.com/isascarabelli/Chat-Distribuido/internal/session"
	"github.com/isascarabelli/Chat-Distribuido/proto/chatpb"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

// Server is a fully-wired replica, ready to Run.
type Server struct {
	cfg       *config.Config
	log       *logrus.Entry
	registry  *registry.Registry
	clock     *clock.Lamport
	election  *election.Engine
	detector  *election.Detector
	transport *election.GRPCTransport
	grpcSrv   *grpc.Server
	listener  net.Listener
}

// New constructs every core component and registers the gRPC surface,
// but does not yet start listening, electing, or probing.
func New(cfg *config.Config, log *logrus.Entry) (*Server, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	runID := uuid.New()
	log = log.WithField("server", cfg.ServerID).WithField("run_id", runID)

	reg, err := registry.ParseConfig(cfg.Peers, registry.ServerID(cfg.ServerID))
	if err != nil {
		return nil, fmt.Errorf("parse peers: %w", err)
	}

	lamport := clock.New()
	transport := election.NewGRPCTransport()

	subs := broadcast.NewSubscriberRegistry()
	hist := broadcast.NewHistory()
	bcast := broadcast.NewEngine(lamport, subs, hist, log)

	onLeaderChange := func(id registry.ServerID) {
		log.WithField("leader", id).Info("leader changed")
	}
	el := election.NewEngine(registry.ServerID(cfg.ServerID), reg, lamport, transport, onLeaderChange, log)
	detector := election.NewDetector(el, reg, transport, log)

	sess := session.New(registry.ServerID(cfg.ServerID), cfg.ListenAddr, reg, el, lamport, subs, bcast, log)
	rpc := rpcserver.New(registry.ServerID(cfg.ServerID), el, sess, bcast, log)

	grpcSrv := grpc.NewServer()
	chatpb.RegisterClientServiceServer(grpcSrv, rpc)
	chatpb.RegisterElectionServiceServer(grpcSrv, rpc)
	chatpb.RegisterReplicationServiceServer(grpcSrv, rpc)

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
	}

	return &Server{
		cfg:       cfg,
		log:       log,
		registry:  reg,
		clock:     lamport,
		election:  el,
		detector:  detector,
		transport: transport,
		grpcSrv:   grpcSrv,
		listener:  listener,
	}, nil
}

// Run serves the gRPC listener, starts the failure detector and the
// optional health probe, triggers the initial election after
// cfg.InitialElectionDelay, and blocks until SIGINT/SIGTERM, at which
// point it drains everything via grpc.Server.GracefulStop.
func (s *Server) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.ListenAddr).Info("gRPC server listening")
		serveErr <- s.grpcSrv.Serve(s.listener)
	}()

	if s.cfg.HealthPort > 0 {
		go func() {
			addr := fmt.Sprintf("0.0.0.0:%d", s.cfg.HealthPort)
			if err := health.Serve(addr, s.log); err != nil {
				s.log.WithError(err).Warn("health probe stopped")
			}
		}()
	}

	go s.detector.Run(ctx)

	go func() {
		time.Sleep(s.cfg.InitialElectionDelay)
		s.log.Info("triggering initial election")
		s.election.StartElection()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		s.log.WithField("signal", sig).Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			s.log.WithError(err).Error("gRPC server exited unexpectedly")
			return err
		}
	}

	cancel()
	s.grpcSrv.GracefulStop()
	return s.transport.Close()
}
