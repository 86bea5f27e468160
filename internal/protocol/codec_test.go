package protocol

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestEncodeJSONEnvelope(t *testing.T) {
	b, err := Encode(CodecJSON, "score", map[string]int{"score": 130})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != "score" || got.Data["score"] != 130 {
		t.Errorf("got %+v", got)
	}
}

func TestEncodeMsgpackEnvelope(t *testing.T) {
	b, err := Encode(CodecMsgpack, "state", AimData{X: 1.5, Z: -2})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got struct {
		Type string  `msgpack:"type"`
		Data AimData `msgpack:"data"`
	}
	if err := msgpack.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != "state" || got.Data.X != 1.5 || got.Data.Z != -2 {
		t.Errorf("got %+v", got)
	}
}

func TestEncodeRejectsEmptyType(t *testing.T) {
	if _, err := Encode(CodecJSON, "", nil); err == nil {
		t.Fatal("expected error for empty type")
	}
}

func TestDecodeJSONLaunch(t *testing.T) {
	in, err := Decode([]byte(`{"type":"launch","data":{"vx":0.1,"vy":0.2,"vz":-0.3}}`), false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if in.Type != MsgLaunch {
		t.Fatalf("type = %q", in.Type)
	}
	var d LaunchData
	if err := in.Bind(&d); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if d.VX != 0.1 || d.VY != 0.2 || d.VZ != -0.3 {
		t.Errorf("launch = %+v", d)
	}
}

func TestDecodeMsgpackCarriesNaN(t *testing.T) {
	frame, err := msgpack.Marshal(map[string]any{
		"type": MsgLaunch,
		"data": LaunchData{VX: math.NaN(), VY: 0.2, VZ: -0.3},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	in, err := Decode(frame, true)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var d LaunchData
	if err := in.Bind(&d); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !math.IsNaN(d.VX) {
		t.Errorf("VX = %v, want NaN to survive the wire", d.VX)
	}
}

func TestDecodeWithoutPayload(t *testing.T) {
	in, err := Decode([]byte(`{"type":"reset"}`), false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if in.Type != MsgReset {
		t.Errorf("type = %q", in.Type)
	}
	var d AimData
	if err := in.Bind(&d); err == nil {
		t.Error("expected bind error for missing payload")
	}
}

func TestParseCodec(t *testing.T) {
	if ParseCodec("msgpack") != CodecMsgpack || !CodecMsgpack.Binary() {
		t.Error("msgpack codec not recognised as binary")
	}
	if ParseCodec("") != CodecJSON || ParseCodec("xml") != CodecJSON || CodecJSON.Binary() {
		t.Error("unknown codecs must fall back to text JSON")
	}
}
