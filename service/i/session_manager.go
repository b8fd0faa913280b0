package i

import (
	"github.com/google/uuid"
)

// SessionManager keeps the editing sessions of the HTTP service.
type SessionManager interface {
	// NewSession creates a workspace holding a blank maze. Zero dimensions use the defaults.
	NewSession(width, height int) (uuid.UUID, Workspace, error)

	// Session returns the workspace for id and marks it as active.
	Session(id uuid.UUID) (Workspace, error)

	// Remove drops the session and closes its subscriptions.
	Remove(id uuid.UUID) error
}
