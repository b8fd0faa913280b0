// Package mazeapi provides the request and response bodies of the maze session routes.
package mazeapi

import (
	"github.com/beka-birhanu/mazeshare/service/i"
)

// CreateSessionRequest asks for a new session. Zero dimensions use the defaults.
type CreateSessionRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	ID        string            `json:"id"`
	Token     string            `json:"token"`
	ExpiresIn int64             `json:"expiresIn"` // Token lifetime in seconds
	Status    i.WorkspaceStatus `json:"status"`
}

// PointerRequest forwards one pointer event in maze pixel coordinates.
type PointerRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=down move up leave"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Button string `json:"button"`
}

// PointerResponse tells whether the maze changed.
type PointerResponse struct {
	Changed bool              `json:"changed"`
	Status  i.WorkspaceStatus `json:"status"`
}

// KeyRequest forwards one key press in play mode.
type KeyRequest struct {
	Key string `json:"key" binding:"required"`
}

// KeyResponse reports the outcome of a key press.
type KeyResponse struct {
	Outcome string            `json:"outcome"`
	Status  i.WorkspaceStatus `json:"status"`
}

// ModeRequest switches mode; an empty mode toggles.
type ModeRequest struct {
	Mode string `json:"mode"`
}

// ResetRequest replaces the maze with a blank one.
type ResetRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// TokenPayload carries a maze token or a session token.
type TokenPayload struct {
	Token     string `json:"token" binding:"required"`
	ExpiresIn int64  `json:"expiresIn,omitempty"` // Set on session tokens, in seconds
}

// ClientMessage is a command sent over the websocket.
type ClientMessage struct {
	Type    string          `json:"type"` // pointer, key or mode
	Pointer *PointerRequest `json:"pointer,omitempty"`
	Key     string          `json:"key,omitempty"`
	Mode    string          `json:"mode,omitempty"`
}

// StreamMessage is sent over the websocket.
type StreamMessage struct {
	Type    string             `json:"type"` // status, outcome or error
	Status  *i.WorkspaceStatus `json:"status,omitempty"`
	Outcome string             `json:"outcome,omitempty"`
	Error   string             `json:"error,omitempty"`
}
