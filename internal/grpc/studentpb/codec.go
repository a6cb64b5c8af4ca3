package studentpb

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype used on the student service wire.
// Clients must dial with grpc.CallContentSubtype(CodecName).
const CodecName = "json"

// jsonCodec marshals request and response messages as JSON. The student
// service owns both ends of this wire, so a schema-compiled codec buys
// nothing over the struct tags the REST layer already maintains.
type jsonCodec struct{}

// Marshal implements the encoding.Codec interface.
func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec: marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal implements the encoding.Codec interface.
func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec: unmarshal into %T: %w", v, err)
	}
	return nil
}

// Name returns the name of the codec.
func (jsonCodec) Name() string {
	return CodecName
}

var _ encoding.Codec = jsonCodec{}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
