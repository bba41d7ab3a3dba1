// Package rpcserver implements proto/chatpb's three gRPC service
// groups against the core components, the "RPC Surface" of spec.md
// §2. It is grounded on original_source/chat_server.py's ChatService,
// which mixes the same three servicer roles into one Python class.
package rpcserver

import (
	"context"
	"errors"

	"github.com/isascarabelli/Chat-Distribuido/internal/broadcast"
	"github.com/isascarabelli/Chat-Distribuido/internal/election"
	"github.com/isascarabelli/Chat-Distribuido/internal/registry"
	"github.com/isascarabelli/Chat-Distribuido/internal/session"
	"github.com/isascarabelli/Chat-Distribuido/proto/chatpb"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server implements chatpb.ClientServiceServer, chatpb.ElectionServiceServer
// and chatpb.ReplicationServiceServer on top of the core components.
type Server struct {
	chatpb.UnimplementedClientServiceServer
	chatpb.UnimplementedElectionServiceServer
	chatpb.UnimplementedReplicationServiceServer

	self     registry.ServerID
	election *election.Engine
	session  *session.Handler
	engine   *broadcast.Engine
	log      *logrus.Entry
}

// New builds the RPC surface.
func New(self registry.ServerID, el *election.Engine, sess *session.Handler, engine *broadcast.Engine, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{
		self:     self,
		election: el,
		session:  sess,
		engine:   engine,
		log:      log.WithField("component", "rpc").WithField("server", self),
	}
}

// --- ClientService ---------------------------------------------------

// GetLeader is safe on any replica.
func (s *Server) GetLeader(ctx context.Context, _ *chatpb.GetLeaderRequest) (*chatpb.GetLeaderResponse, error) {
	info := s.session.GetLeader()
	return &chatpb.GetLeaderResponse{
		LeaderId:      uint32(info.ID),
		LeaderAddress: info.Address,
		IsKnown:       info.Known,
	}, nil
}

// streamSender adapts a gRPC server stream to session.Sender.
type streamSender struct {
	stream chatpb.ClientService_SubscribeToServerEventsServer
}

func (a streamSender) Send(msg broadcast.TextMessage) error {
	return a.stream.Send(&chatpb.TextMessage{
		ClientIdFrom:     uint32(msg.ClientIDFrom),
		Content:          msg.Content,
		LamportTimestamp: msg.LamportTimestamp,
	})
}

func (a streamSender) Context() context.Context {
	return a.stream.Context()
}

// SubscribeToServerEvents implements spec.md §4.6. A still-unknown
// leader is surfaced as a retryable gRPC status instead of a silently
// closed stream.
func (s *Server) SubscribeToServerEvents(_ *chatpb.SubscribeRequest, stream chatpb.ClientService_SubscribeToServerEventsServer) error {
	err := s.session.Subscribe(streamSender{stream: stream})
	if errors.Is(err, session.ErrLeaderUnknown) {
		return status.Error(codes.Unavailable, "leader not yet known, retry shortly")
	}
	return err
}

// SendMessageToServer implements spec.md §4.6's unary send path.
func (s *Server) SendMessageToServer(_ context.Context, req *chatpb.TextMessage) (*chatpb.StatusResponse, error) {
	accepted, ok := s.session.SendMessage(broadcast.TextMessage{
		ClientIDFrom:     broadcast.ClientID(req.GetClientIdFrom()),
		Content:          req.GetContent(),
		LamportTimestamp: req.GetLamportTimestamp(),
	})
	if !ok {
		return nil, status.Error(codes.FailedPrecondition, "not the leader")
	}
	return &chatpb.StatusResponse{
		Success:  true,
		ClientId: uint32(accepted.ClientIDFrom),
		Message:  "Pushed",
	}, nil
}

// --- ElectionService ---------------------------------------------------

// Election implements spec.md §4.3's onElection.
func (s *Server) Election(_ context.Context, req *chatpb.ElectionRequest) (*chatpb.ElectionResponse, error) {
	ok, responder := s.election.OnElection(registry.ServerID(req.GetCandidateId()), req.GetLamportTimestamp())
	return &chatpb.ElectionResponse{
		Ok:               ok,
		ResponderId:      uint32(responder),
		LamportTimestamp: 0,
	}, nil
}

// Coordinator implements spec.md §4.3's onCoordinator.
func (s *Server) Coordinator(_ context.Context, req *chatpb.CoordinatorRequest) (*chatpb.CoordinatorResponse, error) {
	s.election.OnCoordinator(registry.ServerID(req.GetLeaderId()), req.GetLamportTimestamp())
	return &chatpb.CoordinatorResponse{Acknowledged: true}, nil
}

// Heartbeat never touches the Lamport clock (spec.md §4.1, §9).
func (s *Server) Heartbeat(_ context.Context, req *chatpb.HeartbeatRequest) (*chatpb.HeartbeatResponse, error) {
	leaderID, _ := s.election.CurrentLeader()
	return &chatpb.HeartbeatResponse{
		Alive:            true,
		LeaderId:         uint32(leaderID),
		LamportTimestamp: 0,
	}, nil
}

// --- ReplicationService --------------------------------------------------

// SyncState is an extension hook (spec.md §9): reserved for replica
// catch-up, not invoked by any in-scope code path.
func (s *Server) SyncState(_ context.Context, req *chatpb.SyncStateRequest) (*chatpb.SyncStateResponse, error) {
	msgs := s.engine.HistorySince(req.GetLastTimestamp())
	out := make([]*chatpb.TextMessage, 0, len(msgs))
	var maxTS uint64
	for _, m := range msgs {
		out = append(out, &chatpb.TextMessage{
			ClientIdFrom:     uint32(m.ClientIDFrom),
			Content:          m.Content,
			LamportTimestamp: m.LamportTimestamp,
		})
		if m.LamportTimestamp > maxTS {
			maxTS = m.LamportTimestamp
		}
	}
	return &chatpb.SyncStateResponse{Messages: out, LamportTimestamp: maxTS}, nil
}
