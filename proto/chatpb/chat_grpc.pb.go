// Service clients and servers shaped the way protoc-gen-go-grpc would
// generate them from chat.proto, hand-maintained against the plain
// structs in chat.pb.go. Every Invoke/NewStream/RecvMsg/SendMsg call
// below goes through whatever codec is registered under "proto" — see
// codec.go for the gob-based Codec this module actually registers.
package chatpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// --- ClientService ---------------------------------------------------

type ClientServiceClient interface {
	GetLeader(ctx context.Context, in *GetLeaderRequest, opts ...grpc.CallOption) (*GetLeaderResponse, error)
	SubscribeToServerEvents(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (ClientService_SubscribeToServerEventsClient, error)
	SendMessageToServer(ctx context.Context, in *TextMessage, opts ...grpc.CallOption) (*StatusResponse, error)
}

type clientServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewClientServiceClient(cc grpc.ClientConnInterface) ClientServiceClient {
	return &clientServiceClient{cc}
}

func (c *clientServiceClient) GetLeader(ctx context.Context, in *GetLeaderRequest, opts ...grpc.CallOption) (*GetLeaderResponse, error) {
	out := new(GetLeaderResponse)
	if err := c.cc.Invoke(ctx, "/chatpb.ClientService/GetLeader", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clientServiceClient) SubscribeToServerEvents(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (ClientService_SubscribeToServerEventsClient, error) {
	stream, err := c.cc.NewStream(ctx, &ClientService_ServiceDesc.Streams[0], "/chatpb.ClientService/SubscribeToServerEvents", opts...)
	if err != nil {
		return nil, err
	}
	x := &clientServiceSubscribeToServerEventsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ClientService_SubscribeToServerEventsClient is the client-side stream
// handle for SubscribeToServerEvents.
type ClientService_SubscribeToServerEventsClient interface {
	Recv() (*TextMessage, error)
	grpc.ClientStream
}

type clientServiceSubscribeToServerEventsClient struct {
	grpc.ClientStream
}

func (x *clientServiceSubscribeToServerEventsClient) Recv() (*TextMessage, error) {
	m := new(TextMessage)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *clientServiceClient) SendMessageToServer(ctx context.Context, in *TextMessage, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	if err := c.cc.Invoke(ctx, "/chatpb.ClientService/SendMessageToServer", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ClientServiceServer is the server API for ClientService.
type ClientServiceServer interface {
	GetLeader(context.Context, *GetLeaderRequest) (*GetLeaderResponse, error)
	SubscribeToServerEvents(*SubscribeRequest, ClientService_SubscribeToServerEventsServer) error
	SendMessageToServer(context.Context, *TextMessage) (*StatusResponse, error)
}

// UnimplementedClientServiceServer may be embedded for forward compatibility.
type UnimplementedClientServiceServer struct{}

func (UnimplementedClientServiceServer) GetLeader(context.Context, *GetLeaderRequest) (*GetLeaderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLeader not implemented")
}

func (UnimplementedClientServiceServer) SubscribeToServerEvents(*SubscribeRequest, ClientService_SubscribeToServerEventsServer) error {
	return status.Errorf(codes.Unimplemented, "method SubscribeToServerEvents not implemented")
}

func (UnimplementedClientServiceServer) SendMessageToServer(context.Context, *TextMessage) (*StatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SendMessageToServer not implemented")
}

func RegisterClientServiceServer(s grpc.ServiceRegistrar, srv ClientServiceServer) {
	s.RegisterService(&ClientService_ServiceDesc, srv)
}

func _ClientService_GetLeader_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLeaderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClientServiceServer).GetLeader(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/chatpb.ClientService/GetLeader"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ClientServiceServer).GetLeader(ctx, req.(*GetLeaderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ClientService_SubscribeToServerEventsServer is the server-side stream
// handle for SubscribeToServerEvents.
type ClientService_SubscribeToServerEventsServer interface {
	Send(*TextMessage) error
	grpc.ServerStream
}

type clientServiceSubscribeToServerEventsServer struct {
	grpc.ServerStream
}

func (x *clientServiceSubscribeToServerEventsServer) Send(m *TextMessage) error {
	return x.ServerStream.SendMsg(m)
}

func _ClientService_SubscribeToServerEvents_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(SubscribeRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ClientServiceServer).SubscribeToServerEvents(m, &clientServiceSubscribeToServerEventsServer{stream})
}

func _ClientService_SendMessageToServer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TextMessage)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClientServiceServer).SendMessageToServer(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/chatpb.ClientService/SendMessageToServer"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ClientServiceServer).SendMessageToServer(ctx, req.(*TextMessage))
	}
	return interceptor(ctx, in, info, handler)
}

var ClientService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "chatpb.ClientService",
	HandlerType: (*ClientServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetLeader", Handler: _ClientService_GetLeader_Handler},
		{MethodName: "SendMessageToServer", Handler: _ClientService_SendMessageToServer_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubscribeToServerEvents",
			Handler:       _ClientService_SubscribeToServerEvents_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "chat.proto",
}

// --- ElectionService ---------------------------------------------------

type ElectionServiceClient interface {
	Election(ctx context.Context, in *ElectionRequest, opts ...grpc.CallOption) (*ElectionResponse, error)
	Coordinator(ctx context.Context, in *CoordinatorRequest, opts ...grpc.CallOption) (*CoordinatorResponse, error)
	Heartbeat(ctx context.Context, in *HeartbeatRequest, opts ...grpc.CallOption) (*HeartbeatResponse, error)
}

type electionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewElectionServiceClient(cc grpc.ClientConnInterface) ElectionServiceClient {
	return &electionServiceClient{cc}
}

func (c *electionServiceClient) Election(ctx context.Context, in *ElectionRequest, opts ...grpc.CallOption) (*ElectionResponse, error) {
	out := new(ElectionResponse)
	if err := c.cc.Invoke(ctx, "/chatpb.ElectionService/Election", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electionServiceClient) Coordinator(ctx context.Context, in *CoordinatorRequest, opts ...grpc.CallOption) (*CoordinatorResponse, error) {
	out := new(CoordinatorResponse)
	if err := c.cc.Invoke(ctx, "/chatpb.ElectionService/Coordinator", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *electionServiceClient) Heartbeat(ctx context.Context, in *HeartbeatRequest, opts ...grpc.CallOption) (*HeartbeatResponse, error) {
	out := new(HeartbeatResponse)
	if err := c.cc.Invoke(ctx, "/chatpb.ElectionService/Heartbeat", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type ElectionServiceServer interface {
	Election(context.Context, *ElectionRequest) (*ElectionResponse, error)
	Coordinator(context.Context, *CoordinatorRequest) (*CoordinatorResponse, error)
	Heartbeat(context.Context, *HeartbeatRequest) (*HeartbeatResponse, error)
}

type UnimplementedElectionServiceServer struct{}

func (UnimplementedElectionServiceServer) Election(context.Context, *ElectionRequest) (*ElectionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Election not implemented")
}

func (UnimplementedElectionServiceServer) Coordinator(context.Context, *CoordinatorRequest) (*CoordinatorResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Coordinator not implemented")
}

func (UnimplementedElectionServiceServer) Heartbeat(context.Context, *HeartbeatRequest) (*HeartbeatResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Heartbeat not implemented")
}

func RegisterElectionServiceServer(s grpc.ServiceRegistrar, srv ElectionServiceServer) {
	s.RegisterService(&ElectionService_ServiceDesc, srv)
}

func _ElectionService_Election_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ElectionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ElectionServiceServer).Election(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/chatpb.ElectionService/Election"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ElectionServiceServer).Election(ctx, req.(*ElectionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ElectionService_Coordinator_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CoordinatorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ElectionServiceServer).Coordinator(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/chatpb.ElectionService/Coordinator"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ElectionServiceServer).Coordinator(ctx, req.(*CoordinatorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ElectionService_Heartbeat_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(HeartbeatRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ElectionServiceServer).Heartbeat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/chatpb.ElectionService/Heartbeat"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ElectionServiceServer).Heartbeat(ctx, req.(*HeartbeatRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var ElectionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "chatpb.ElectionService",
	HandlerType: (*ElectionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Election", Handler: _ElectionService_Election_Handler},
		{MethodName: "Coordinator", Handler: _ElectionService_Coordinator_Handler},
		{MethodName: "Heartbeat", Handler: _ElectionService_Heartbeat_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chat.proto",
}

// --- ReplicationService --------------------------------------------------

type ReplicationServiceClient interface {
	SyncState(ctx context.Context, in *SyncStateRequest, opts ...grpc.CallOption) (*SyncStateResponse, error)
}

type replicationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReplicationServiceClient(cc grpc.ClientConnInterface) ReplicationServiceClient {
	return &replicationServiceClient{cc}
}

func (c *replicationServiceClient) SyncState(ctx context.Context, in *SyncStateRequest, opts ...grpc.CallOption) (*SyncStateResponse, error) {
	out := new(SyncStateResponse)
	if err := c.cc.Invoke(ctx, "/chatpb.ReplicationService/SyncState", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type ReplicationServiceServer interface {
	SyncState(context.Context, *SyncStateRequest) (*SyncStateResponse, error)
}

type UnimplementedReplicationServiceServer struct{}

func (UnimplementedReplicationServiceServer) SyncState(context.Context, *SyncStateRequest) (*SyncStateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SyncState not implemented")
}

func RegisterReplicationServiceServer(s grpc.ServiceRegistrar, srv ReplicationServiceServer) {
	s.RegisterService(&ReplicationService_ServiceDesc, srv)
}

func _ReplicationService_SyncState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SyncStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReplicationServiceServer).SyncState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/chatpb.ReplicationService/SyncState"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReplicationServiceServer).SyncState(ctx, req.(*SyncStateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var ReplicationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "chatpb.ReplicationService",
	HandlerType: (*ReplicationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SyncState", Handler: _ReplicationService_SyncState_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chat.proto",
}
