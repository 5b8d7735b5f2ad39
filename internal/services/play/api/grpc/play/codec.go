package play

import (
	"encoding/json"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype PlayService messages use.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOptions selects the JSON codec for a call.
func CallOptions() []gogrpc.CallOption {
	return []gogrpc.CallOption{gogrpc.CallContentSubtype(CodecName)}
}
