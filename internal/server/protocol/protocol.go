// Package protocol defines the JSON wire messages of the terrain streaming
// server. Messages carry a type discriminator so unknown payloads can be
// routed before full decoding.
package protocol

import "encoding/json"

// Version is the wire protocol version. Bump on any incompatible change to
// message shapes or to the chunk payload encoding.
const Version = "1.0"

// Message types.
const (
	TypeChunkRequest = "CHUNK_REQUEST"
	TypeChunkData    = "CHUNK_DATA"
	TypeBiomeRequest = "BIOME_REQUEST"
	TypeBiomeData    = "BIOME_DATA"
	TypeError        = "ERROR"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

// DecodeBase extracts the routing fields from a raw message.
func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// ChunkRequest asks for one chunk by chunk coordinates.
type ChunkRequest struct {
	Type string `json:"type"`
	CX   int    `json:"cx"`
	CZ   int    `json:"cz"`
}

// ChunkData carries one generated chunk. Blocks is the zstd-compressed
// block array, base64-encoded; Size is (SizeX, SizeY, SizeZ) so the client
// can verify it speaks the same chunk geometry.
type ChunkData struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	CX              int    `json:"cx"`
	CZ              int    `json:"cz"`
	Size            [3]int `json:"size"`
	Seed            int32  `json:"seed"`
	Blocks          string `json:"blocks"`
}

// BiomeRequest asks for the biome at a world column, without paying for
// chunk generation.
type BiomeRequest struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Z    int    `json:"z"`
}

// BiomeData answers a BiomeRequest.
type BiomeData struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	X               int    `json:"x"`
	Z               int    `json:"z"`
	Biome           string `json:"biome"`
	Height          int    `json:"height"`
}

// ErrorMessage reports a rejected request.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeBadMessage  = "BAD_MESSAGE"
	CodeUnknownType = "UNKNOWN_TYPE"
	CodeInternal    = "INTERNAL"
)
