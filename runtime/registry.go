package runtime

import (
	"sync"

	"github.com/google/uuid"

	"lingualink/domain/chat"
)

// Registry is the table of currently connected, authenticated sessions,
// keyed by connection id. It is shared between every connection's goroutines
// and the liveness monitor, so all access goes through the mutex. The lock
// only covers registry bookkeeping; callers never hold it across
// translation or persistence work.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session)}
}

// Register adds a session. No two sessions share a connection id.
func (r *Registry) Register(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Unregister removes a session. Idempotent: removing an unknown id is a
// no-op.
func (r *Registry) Unregister(connID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, connID)
}

// FindByUserAndRoom returns the live session of a user currently joined to
// the room, used to decide online delivery versus persist-only. A user with
// several connections may match any one of them.
func (r *Registry) FindByUserAndRoom(userID uuid.UUID, roomID chat.RoomID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		if s.UserID != userID {
			continue
		}
		if current, ok := s.Room(); ok && current == roomID {
			return s, true
		}
	}
	return nil, false
}

// ForEachInRoom calls fn for every live session joined to the room, skipping
// excludeUser when non-nil. The callback runs outside the registry lock.
func (r *Registry) ForEachInRoom(roomID chat.RoomID, excludeUser *uuid.UUID, fn func(*Session)) {
	r.mu.RLock()
	var matched []*Session
	for _, s := range r.sessions {
		if excludeUser != nil && s.UserID == *excludeUser {
			continue
		}
		if current, ok := s.Room(); ok && current == roomID {
			matched = append(matched, s)
		}
	}
	r.mu.RUnlock()

	for _, s := range matched {
		fn(s)
	}
}

// Snapshot returns the current session set, for the liveness monitor's tick.
func (r *Registry) Snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// Count reports how many sessions are registered.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
