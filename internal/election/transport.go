package election

import (
	"context"
	"fmt"
	"sync"

	"github.com/isascarabelli/Chat-Distribuido/proto/chatpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Transport is the outbound RPC surface the election engine and the
// failure detector need against a peer. It is an interface so tests
// can substitute an in-memory fake instead of dialing real sockets,
// the same separation the teacher's bully.go doesn't have (it dials
// raw TCP inline) but that other_examples/gaboCiber's Elector gets by
// caching *grpc.ClientConn per peer behind getOrDialClient.
type Transport interface {
	Election(ctx context.Context, addr string, req *chatpb.ElectionRequest) (*chatpb.ElectionResponse, error)
	Coordinator(ctx context.Context, addr string, req *chatpb.CoordinatorRequest) (*chatpb.CoordinatorResponse, error)
	Heartbeat(ctx context.Context, addr string, req *chatpb.HeartbeatRequest) (*chatpb.HeartbeatResponse, error)
}

// GRPCTransport dials and caches one *grpc.ClientConn per peer address.
type GRPCTransport struct {
	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// NewGRPCTransport returns an empty, ready-to-use transport.
func NewGRPCTransport() *GRPCTransport {
	return &GRPCTransport{conns: make(map[string]*grpc.ClientConn)}
}

func (t *GRPCTransport) client(addr string) (chatpb.ElectionServiceClient, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if conn, ok := t.conns[addr]; ok {
		return chatpb.NewElectionServiceClient(conn), nil
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial peer %s: %w", addr, err)
	}
	t.conns[addr] = conn
	return chatpb.NewElectionServiceClient(conn), nil
}

func (t *GRPCTransport) Election(ctx context.Context, addr string, req *chatpb.ElectionRequest) (*chatpb.ElectionResponse, error) {
	c, err := t.client(addr)
	if err != nil {
		return nil, err
	}
	return c.Election(ctx, req)
}

func (t *GRPCTransport) Coordinator(ctx context.Context, addr string, req *chatpb.CoordinatorRequest) (*chatpb.CoordinatorResponse, error) {
	c, err := t.client(addr)
	if err != nil {
		return nil, err
	}
	return c.Coordinator(ctx, req)
}

func (t *GRPCTransport) Heartbeat(ctx context.Context, addr string, req *chatpb.HeartbeatRequest) (*chatpb.HeartbeatResponse, error) {
	c, err := t.client(addr)
	if err != nil {
		return nil, err
	}
	return c.Heartbeat(ctx, req)
}

// Close releases every cached connection.
func (t *GRPCTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var firstErr error
	for addr, conn := range t.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close conn to %s: %w", addr, err)
		}
	}
	t.conns = make(map[string]*grpc.ClientConn)
	return firstErr
}
