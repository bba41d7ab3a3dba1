// Package chatpb holds the wire types for chat.proto's three service
// groups. These structs carry no protobuf struct tags and do not
// implement proto.Message — they are marshaled by the gob-based Codec
// registered in codec.go under the name "proto", which overrides
// gRPC's built-in codec for this module instead of depending on a
// protoc-gen-go code path. See codec.go for why.
package chatpb

// TextMessage is the on-the-wire envelope for both chat content and
// synthetic control messages (REDIRECT:, ID Atribuido:).
type TextMessage struct {
	ClientIdFrom     uint32
	Content          string
	LamportTimestamp uint64
}

func (m *TextMessage) GetClientIdFrom() uint32 {
	if m == nil {
		return 0
	}
	return m.ClientIdFrom
}

func (m *TextMessage) GetContent() string {
	if m == nil {
		return ""
	}
	return m.Content
}

func (m *TextMessage) GetLamportTimestamp() uint64 {
	if m == nil {
		return 0
	}
	return m.LamportTimestamp
}

type GetLeaderRequest struct{}

type GetLeaderResponse struct {
	LeaderId      uint32
	LeaderAddress string
	IsKnown       bool
}

type SubscribeRequest struct{}

type StatusResponse struct {
	Success  bool
	ClientId uint32
	Message  string
}

type ElectionRequest struct {
	CandidateId      uint32
	LamportTimestamp uint64
}

type ElectionResponse struct {
	Ok               bool
	ResponderId      uint32
	LamportTimestamp uint64
}

type CoordinatorRequest struct {
	LeaderId         uint32
	LamportTimestamp uint64
}

type CoordinatorResponse struct {
	Acknowledged     bool
	LamportTimestamp uint64
}

type HeartbeatRequest struct {
	ServerId         uint32
	LamportTimestamp uint64
}

type HeartbeatResponse struct {
	Alive            bool
	LeaderId         uint32
	LamportTimestamp uint64
}

type SyncStateRequest struct {
	LastTimestamp uint64
}

type SyncStateResponse struct {
	Messages         []*TextMessage
	LamportTimestamp uint64
}
