package runtime

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"lingualink/domain/chat"
)

// Conn is the transport half of a session, implemented by the websocket
// layer. Push enqueues an outbound frame without blocking the caller; Ping
// sends a liveness probe; Terminate force-closes the underlying socket.
type Conn interface {
	Push(payload any) error
	Ping() error
	Terminate()
}

// Session is the live, authenticated state of one connection. It is created
// after a successful token handshake and destroyed on socket close or
// liveness timeout. Room membership is only set after the store verified it.
type Session struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Username string
	Conn     Conn

	mu       sync.Mutex
	room     *chat.RoomID
	alive    bool
	lastPong time.Time
}

func NewSession(userID uuid.UUID, username string, conn Conn) *Session {
	return &Session{
		ID:       uuid.New(),
		UserID:   userID,
		Username: username,
		Conn:     conn,
		alive:    true,
		lastPong: time.Now(),
	}
}

// Room returns the currently joined room, if any.
func (s *Session) Room() (chat.RoomID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.room == nil {
		return chat.RoomID{}, false
	}
	return *s.room, true
}

// SetRoom replaces the current room association. Joining a new room
// implicitly leaves the previous one without notification.
func (s *Session) SetRoom(id chat.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room = &id
}

// ClearRoom drops the room association and returns what it was.
func (s *Session) ClearRoom() (chat.RoomID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.room == nil {
		return chat.RoomID{}, false
	}
	prev := *s.room
	s.room = nil
	return prev, true
}

// MarkAlive records a liveness probe response.
func (s *Session) MarkAlive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alive = true
	s.lastPong = time.Now()
}

// BeginProbe flips the session into "awaiting response" state and reports
// whether the previous probe was answered.
func (s *Session) BeginProbe() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasAlive := s.alive
	s.alive = false
	return wasAlive
}

// LastPong is the time of the most recent probe response.
func (s *Session) LastPong() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPong
}
