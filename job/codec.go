package job

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec defines the serialization contract for descriptors crossing the
// process boundary. Implementations must round-trip every field the
// adapter consumes; exact value types may loosen (JSON numbers decode as
// float64), which the Descriptor accessors absorb.
type Codec interface {
	// Encode serializes a descriptor to bytes.
	Encode(d Descriptor) ([]byte, error)

	// Decode deserializes bytes into a descriptor.
	Decode(data []byte) (Descriptor, error)

	// Name returns the codec identifier (e.g., "json", "msgpack").
	Name() string
}

// CodecName constants for format negotiation.
const (
	CodecNameJSON    = "json"
	CodecNameMsgpack = "msgpack"
)

// GetCodec returns a codec by name. Defaults to JSON.
func GetCodec(name string) Codec {
	switch name {
	case CodecNameMsgpack:
		return &MsgpackCodec{}
	default:
		return &JSONCodec{}
	}
}

// JSONCodec encodes/decodes descriptors as JSON.
type JSONCodec struct{}

func (c *JSONCodec) Encode(d Descriptor) ([]byte, error) {
	return json.Marshal(d)
}

func (c *JSONCodec) Decode(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}

	return d, nil
}

func (c *JSONCodec) Name() string { return CodecNameJSON }

// MsgpackCodec encodes/decodes descriptors as MessagePack.
type MsgpackCodec struct{}

func (c *MsgpackCodec) Encode(d Descriptor) ([]byte, error) {
	return msgpack.Marshal(map[string]any(d))
}

func (c *MsgpackCodec) Decode(data []byte) (Descriptor, error) {
	var m map[string]any
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return Descriptor(m), nil
}

func (c *MsgpackCodec) Name() string { return CodecNameMsgpack }
