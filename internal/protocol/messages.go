// Package protocol defines the websocket wire messages exchanged with
// the browser client. Message shapes are mirrored by the JSON schemas
// under schemas/; the schema test keeps the two in sync.
package protocol

// Version is the protocol version carried on every message.
const Version = "1.0"

// Message type discriminators.
const (
	TypeHello   = "HELLO"
	TypeWelcome = "WELCOME"
	TypeFrame   = "FRAME"
	TypeAct     = "ACT"
	TypeAck     = "ACK"
)

// HelloMsg is the first message a client sends after connecting.
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name,omitempty"`
}

// WorldParams tells the client how the world is shaped before the
// first frame arrives.
type WorldParams struct {
	Seed            int64 `json:"seed"`
	TileSize        int   `json:"tile_size"`
	ChunkSize       int   `json:"chunk_size"`
	DayLengthSec    int   `json:"day_length_sec"`
	FrameIntervalMs int   `json:"frame_interval_ms"`
}

// WelcomeMsg answers a valid HELLO.
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	SessionID       string      `json:"session_id"`
	WorldParams     WorldParams `json:"world_params"`
}

// FrameMsg carries one observer snapshot. The frame payload is the
// session snapshot marshaled as-is; the schema pins its shape.
type FrameMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Frame           any    `json:"frame"`
}

// Action names accepted in an ACT message.
const (
	ActionMove    = "move"
	ActionHarvest = "harvest"
	ActionCraft   = "craft"
)

// ActMsg is a client request to change the world. Exactly one action
// per message; the fields beyond Action are read per-action.
type ActMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	ID              string  `json:"id"`
	Action          string  `json:"action"`
	X               float64 `json:"x"` // move
	Y               float64 `json:"y"` // move
	ObjectID        int64   `json:"object_id,omitempty"` // harvest
	Recipe          string  `json:"recipe,omitempty"`    // craft
}

// Ack result codes.
const (
	CodeBadAction     = "BAD_ACTION"
	CodeNotWalkable   = "NOT_WALKABLE"
	CodeUnknownObject = "UNKNOWN_OBJECT"
	CodeCraftFailed   = "CRAFT_FAILED"
)

// AckMsg answers every ACT.
type AckMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	AckFor          string `json:"ack_for"`
	Accepted        bool   `json:"accepted"`
	Code            string `json:"code,omitempty"`
	Message         string `json:"message,omitempty"`
}
