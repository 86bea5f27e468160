package protocol

// Client -> server message types
const (
	MsgStartRound = "start_round"
	MsgLaunch     = "launch"
	MsgAim        = "aim"
	MsgReset      = "reset"
	MsgExit       = "exit"
	MsgGetState   = "get_state"
)

// Server -> client error message type; game events use the game.Event* names.
const MsgError = "error"

// Codec selects the wire format of a connection.
type Codec string

const (
	CodecJSON    Codec = "json"
	CodecMsgpack Codec = "msgpack"
)

// ParseCodec maps a query value to a Codec, defaulting to JSON.
func ParseCodec(s string) Codec {
	if s == string(CodecMsgpack) {
		return CodecMsgpack
	}
	return CodecJSON
}

// Binary reports whether frames in this codec go out as websocket binary messages.
func (c Codec) Binary() bool {
	return c == CodecMsgpack
}

type LaunchData struct {
	VX float64 `json:"vx" msgpack:"vx"`
	VY float64 `json:"vy" msgpack:"vy"`
	VZ float64 `json:"vz" msgpack:"vz"`
}

// AimData is a point on the table the ball should be lobbed toward.
type AimData struct {
	X float64 `json:"x" msgpack:"x"`
	Z float64 `json:"z" msgpack:"z"`
}

type ErrorData struct {
	Message string `json:"message" msgpack:"message"`
}
