package chatpb

import (
	"bytes"
	"encoding/gob"

	"google.golang.org/grpc/encoding"
)

// gobCodec implements grpc/encoding.Codec with encoding/gob instead of
// the protobuf wire format. The message types in this package are
// plain structs with no generated ProtoReflect()/Marshal(), so they
// cannot satisfy gRPC's built-in "proto" codec. Registering gobCodec
// under that same name overrides the default codec lookup for every
// grpc.NewClient/grpc.NewServer in this process, so no call site needs
// a per-call codec CallOption or ServerOption.
type gobCodec struct{}

func (gobCodec) Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func (gobCodec) Name() string { return "proto" }

func init() {
	encoding.RegisterCodec(gobCodec{})
}
