package posestream

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
)

// ErrInvalidMessage is returned when an inbound frame is not a usable offset message.
var ErrInvalidMessage = errors.New("posestream: invalid message")

// OffsetMessage is sent by the page host whenever its scroll offset changes.
type OffsetMessage struct {
	Offset *float64 `json:"offset"`
}

// PoseMessage is the server's reply: the pose for the latest offset it has seen.
type PoseMessage struct {
	Offset   float64    `json:"offset"`
	Position [3]float64 `json:"position"`
	LookAt   [3]float64 `json:"lookAt"`
	Regime   string     `json:"regime"`
}

// ErrorMessage reports a rejected inbound frame. The connection stays open.
type ErrorMessage struct {
	Error string `json:"error"`
}

// DecodeOffset parses an offset message.
//
// Parameters:
//   - data: raw frame payload
//
// Returns:
//   - float64: the offset
//   - error: ErrInvalidMessage when the payload is malformed or the offset is missing or out of range
func DecodeOffset(data []byte) (float64, error) {
	var msg OffsetMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if msg.Offset == nil {
		return 0, fmt.Errorf("%w: missing offset", ErrInvalidMessage)
	}
	if math.IsInf(*msg.Offset, 0) || math.IsNaN(*msg.Offset) {
		return 0, fmt.Errorf("%w: offset must be finite", ErrInvalidMessage)
	}
	return *msg.Offset, nil
}

// NewPoseMessage converts a pose into its wire form.
//
// Parameters:
//   - pose: the computed pose
//
// Returns:
//   - PoseMessage: the wire message
func NewPoseMessage(pose camera.Pose) PoseMessage {
	return PoseMessage{
		Offset:   pose.Offset,
		Position: pose.Position,
		LookAt:   pose.LookAt,
		Regime:   pose.Regime.String(),
	}
}
