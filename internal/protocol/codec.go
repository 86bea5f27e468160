package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Envelope is the outbound frame: a type tag plus payload.
type Envelope struct {
	Type string `json:"type" msgpack:"type"`
	Data any    `json:"data,omitempty" msgpack:"data,omitempty"`
}

// Inbound is a decoded client frame whose payload is bound lazily.
type Inbound struct {
	Type  string
	codec Codec
	raw   []byte
}

type jsonInbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type msgpackInbound struct {
	Type string             `msgpack:"type"`
	Data msgpack.RawMessage `msgpack:"data"`
}

func Encode(c Codec, msgType string, payload any) ([]byte, error) {
	if msgType == "" {
		return nil, fmt.Errorf("encode: empty message type")
	}
	env := Envelope{Type: msgType, Data: payload}
	if c == CodecMsgpack {
		return msgpack.Marshal(&env)
	}
	return json.Marshal(env)
}

// Decode parses a client frame. Clients may send either format regardless of the codec
// they receive in; binary frames are msgpack, text frames JSON.
func Decode(b []byte, binary bool) (Inbound, error) {
	if len(b) == 0 {
		return Inbound{}, fmt.Errorf("decode: empty frame")
	}
	if binary {
		var m msgpackInbound
		if err := msgpack.Unmarshal(b, &m); err != nil {
			return Inbound{}, fmt.Errorf("decode msgpack frame: %w", err)
		}
		return Inbound{Type: m.Type, codec: CodecMsgpack, raw: m.Data}, nil
	}
	var j jsonInbound
	if err := json.Unmarshal(b, &j); err != nil {
		return Inbound{}, fmt.Errorf("decode json frame: %w", err)
	}
	return Inbound{Type: j.Type, codec: CodecJSON, raw: j.Data}, nil
}

// Bind decodes the payload into v.
func (in Inbound) Bind(v any) error {
	if len(in.raw) == 0 {
		return fmt.Errorf("empty payload for %q", in.Type)
	}
	if in.codec == CodecMsgpack {
		return msgpack.Unmarshal(in.raw, v)
	}
	return json.Unmarshal(in.raw, v)
}
