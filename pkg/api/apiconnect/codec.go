package apiconnect

import (
	"encoding/json"
	"fmt"
)

// CodecName is the content subtype the API speaks: application/json for the
// Connect protocol, application/grpc+json for gRPC.
const CodecName = "json"

// JSONCodec marshals the plain Go messages of package api. It replaces the
// default protojson codec, which only accepts generated protobuf messages.
type JSONCodec struct{}

func (JSONCodec) Name() string { return CodecName }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return b, nil
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	// An empty body is a zero-valued message.
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
