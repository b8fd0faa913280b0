package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/mazeshare/service/i"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/google/uuid"
)

// Session manager errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
	ErrInvalidConfig   = errors.New("invalid session manager config")
)

// SessionManager keeps editing sessions in memory and drops idle ones.
type SessionManager struct {
	sessions    map[uuid.UUID]*Workspace
	maxSessions int
	ttl         time.Duration
	workspace   WorkspaceConfig
	clock       func() time.Time
	logger      general_i.Logger
	sync.RWMutex
}

// Config holds the settings of a SessionManager.
type Config struct {
	MaxSessions int              // Upper bound on live sessions
	TTL         time.Duration    // Idle time after which a session expires
	Workspace   WorkspaceConfig  // Template for new workspaces
	Clock       func() time.Time // Defaults to time.Now
	Logger      general_i.Logger
}

func NewSessionManager(c *Config) (*SessionManager, error) {
	if c.MaxSessions <= 0 || c.TTL <= 0 || c.Logger == nil {
		return nil, ErrInvalidConfig
	}
	clock := c.Clock
	if clock == nil {
		clock = time.Now
	}

	workspace := c.Workspace
	workspace.Clock = clock

	return &SessionManager{
		sessions:    make(map[uuid.UUID]*Workspace),
		maxSessions: c.MaxSessions,
		ttl:         c.TTL,
		workspace:   workspace,
		clock:       clock,
		logger:      c.Logger,
	}, nil
}

// NewSession creates a workspace with a blank maze. Zero dimensions use the configured ones.
func (s *SessionManager) NewSession(width, height int) (uuid.UUID, i.Workspace, error) {
	wc := s.workspace
	if width != 0 || height != 0 {
		wc.Width, wc.Height = width, height
	}

	ws, err := NewWorkspace(wc)
	if err != nil {
		return uuid.Nil, nil, err
	}

	s.Lock()
	defer s.Unlock()
	if len(s.sessions) >= s.maxSessions {
		s.logger.Warning(fmt.Sprintf("Rejected new session, %d sessions are live", len(s.sessions)))
		return uuid.Nil, nil, ErrTooManySessions
	}

	id := uuid.New()
	for {
		if _, ok := s.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}
	s.sessions[id] = ws

	s.logger.Info(fmt.Sprintf("Started session %s with a %dx%d maze", id, wc.Width, wc.Height))
	return id, ws, nil
}

func (s *SessionManager) Session(id uuid.UUID) (i.Workspace, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// Workspace returns the concrete workspace for id and marks it as active.
func (s *SessionManager) Workspace(id uuid.UUID) (*Workspace, error) {
	s.RLock()
	ws, ok := s.sessions[id]
	s.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	ws.touch()
	return ws, nil
}

func (s *SessionManager) Remove(id uuid.UUID) error {
	s.Lock()
	ws, ok := s.sessions[id]
	delete(s.sessions, id)
	s.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	ws.Close()
	s.logger.Info(fmt.Sprintf("Removed session %s", id))
	return nil
}

// Len returns the number of live sessions.
func (s *SessionManager) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.sessions)
}

// CleanupExpired removes sessions idle for longer than the TTL and returns how many went.
// A session with a live subscription counts as active.
func (s *SessionManager) CleanupExpired() int {
	now := s.clock()
	expired := make([]*Workspace, 0)

	s.Lock()
	for id, ws := range s.sessions {
		if ws.Watched() {
			ws.touch()
			continue
		}
		if now.Sub(ws.LastActive()) > s.ttl {
			delete(s.sessions, id)
			expired = append(expired, ws)
		}
	}
	s.Unlock()

	for _, ws := range expired {
		ws.Close()
	}
	if len(expired) > 0 {
		s.logger.Info(fmt.Sprintf("Cleaned up %d expired sessions", len(expired)))
	}
	return len(expired)
}

// Maintain runs CleanupExpired every interval until ctx is done.
func (s *SessionManager) Maintain(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CleanupExpired()
		}
	}
}

// StopAll closes every session.
func (s *SessionManager) StopAll() {
	s.Lock()
	defer s.Unlock()

	for id, ws := range s.sessions {
		ws.Close()
		delete(s.sessions, id)
	}
	s.logger.Info("Stopped all sessions")
}
