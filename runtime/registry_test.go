package runtime

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type nopConn struct{}

func (nopConn) Push(any) error { return nil }
func (nopConn) Ping() error    { return nil }
func (nopConn) Terminate()     {}

func TestRegistry_RegisterAndFind(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	userID := uuid.New()
	roomID := uuid.New()
	session := NewSession(userID, "alice", nopConn{})
	session.SetRoom(roomID)
	registry.Register(session)

	found, ok := registry.FindByUserAndRoom(userID, roomID)
	req.True(ok)
	req.Equal(session.ID, found.ID)

	// Same user, different room: no match.
	_, ok = registry.FindByUserAndRoom(userID, uuid.New())
	req.False(ok)

	// Unknown user: no match, no error.
	_, ok = registry.FindByUserAndRoom(uuid.New(), roomID)
	req.False(ok)
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	session := NewSession(uuid.New(), "alice", nopConn{})
	registry.Register(session)
	req.Equal(1, registry.Count())

	registry.Unregister(session.ID)
	registry.Unregister(session.ID)
	req.Equal(0, registry.Count())
}

func TestRegistry_ForEachInRoom(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	roomID := uuid.New()
	alice := NewSession(uuid.New(), "alice", nopConn{})
	alice.SetRoom(roomID)
	bob := NewSession(uuid.New(), "bob", nopConn{})
	bob.SetRoom(roomID)
	carol := NewSession(uuid.New(), "carol", nopConn{})
	carol.SetRoom(uuid.New())
	noroom := NewSession(uuid.New(), "dave", nopConn{})

	for _, s := range []*Session{alice, bob, carol, noroom} {
		registry.Register(s)
	}

	var visited []uuid.UUID
	registry.ForEachInRoom(roomID, nil, func(s *Session) {
		visited = append(visited, s.UserID)
	})
	req.Len(visited, 2)

	visited = nil
	registry.ForEachInRoom(roomID, &alice.UserID, func(s *Session) {
		visited = append(visited, s.UserID)
	})
	req.Equal([]uuid.UUID{bob.UserID}, visited)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	roomID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := NewSession(uuid.New(), "user", nopConn{})
			s.SetRoom(roomID)
			registry.Register(s)
			registry.ForEachInRoom(roomID, nil, func(*Session) {})
			registry.Unregister(s.ID)
		}()
	}
	wg.Wait()

	require.Equal(t, 0, registry.Count())
}

func TestSession_RoomLifecycle(t *testing.T) {
	req := require.New(t)
	session := NewSession(uuid.New(), "alice", nopConn{})

	_, ok := session.Room()
	req.False(ok)

	first := uuid.New()
	session.SetRoom(first)
	current, ok := session.Room()
	req.True(ok)
	req.Equal(first, current)

	// Joining another room replaces the association.
	second := uuid.New()
	session.SetRoom(second)
	current, _ = session.Room()
	req.Equal(second, current)

	prev, ok := session.ClearRoom()
	req.True(ok)
	req.Equal(second, prev)
	_, ok = session.Room()
	req.False(ok)

	_, ok = session.ClearRoom()
	req.False(ok)
}

func TestSession_Liveness(t *testing.T) {
	req := require.New(t)
	session := NewSession(uuid.New(), "alice", nopConn{})

	// First probe: previous one counts as answered.
	req.True(session.BeginProbe())
	// No pong since: the next probe reports it missed.
	req.False(session.BeginProbe())

	session.MarkAlive()
	req.True(session.BeginProbe())
}
