// Package protocol defines the WebSocket message types exchanged between a
// map host and its clients: raw pointer events in, camera state and
// recognized clicks out.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Client → Host messages
	TypeTouch    MessageType = "touch"    // Raw pointer event
	TypeViewport MessageType = "viewport" // Viewport geometry
	TypeConfig   MessageType = "config"   // Gesture configuration update

	// Host → Client messages
	TypeViewState MessageType = "viewstate" // Camera state frame
	TypeClick     MessageType = "click"     // Recognized tap gesture

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// TouchData is one raw pointer event. Action carries the native action code
// (0..5); a position the action does not use is the sentinel (-1, -1).
type TouchData struct {
	Action int     `json:"action"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`

	// OffsetMs orders events within a recorded trace; live clients leave
	// it zero and the host uses arrival time.
	OffsetMs int64 `json:"offset_ms,omitempty"`
}

// ViewportData announces the client's viewport in device pixels.
type ViewportData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale,omitempty"` // hardware/logical pixel ratio
	DPI    float64 `json:"dpi,omitempty"`
}

// ConfigData toggles gesture recognition. Nil fields leave the current
// setting untouched.
type ConfigData struct {
	Pan           *bool    `json:"pan,omitempty"`
	Zoom          *bool    `json:"zoom,omitempty"`
	Rotate        *bool    `json:"rotate,omitempty"`
	Tilt          *bool    `json:"tilt,omitempty"`
	DoubleTap     *bool    `json:"double_tap,omitempty"`
	DoubleTapDrag *bool    `json:"double_tap_drag,omitempty"`
	PanningMode   *string  `json:"panning_mode,omitempty"` // free, sticky, stickyFinal
	DPI           *float64 `json:"dpi,omitempty"`

	// Lock suppresses all continuous gestures through the interaction
	// listener while leaving taps observable.
	Lock *bool `json:"lock,omitempty"`
}

// ViewStateData is one camera state frame.
type ViewStateData struct {
	Lng      float64 `json:"lng"`
	Lat      float64 `json:"lat"`
	Zoom     float64 `json:"zoom"`
	YawDeg   float64 `json:"yaw_deg"`
	PitchDeg float64 `json:"pitch_deg"`
	Flinging bool    `json:"flinging"`
}

// ClickData reports a recognized tap gesture at a screen position.
type ClickData struct {
	Kind string  `json:"kind"` // single, long, double, dual
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// PingData carries a ping identifier for latency measurement.
type PingData struct {
	ID string `json:"id"`
}

// PongData answers a ping.
type PongData struct {
	ID     string `json:"id"`
	PingTS int64  `json:"ping_ts"`
	PongTS int64  `json:"pong_ts"`
}
