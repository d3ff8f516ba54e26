package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"lingualink/domain/chat"
	apperrors "lingualink/errors"
	"lingualink/observability"
	"lingualink/runtime"
	"lingualink/services"
)

const pongWait = 75 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Router upgrades HTTP requests into chat sessions and dispatches inbound
// frames. One Router serves all connections; per-connection state lives in
// the runtime.Session.
type Router struct {
	log         *slog.Logger
	authService services.IAuthService
	chatService services.IChatService
	relay       services.IRelayService
	registry    *runtime.Registry
	monitor     *observability.Monitor
	bufferSize  int
}

func NewRouter(
	log *slog.Logger,
	auth services.IAuthService,
	chat services.IChatService,
	relay services.IRelayService,
	registry *runtime.Registry,
	monitor *observability.Monitor,
	bufferSize int,
) *Router {
	return &Router{
		log:         log,
		authService: auth,
		chatService: chat,
		relay:       relay,
		registry:    registry,
		monitor:     monitor,
		bufferSize:  bufferSize,
	}
}

// ServeHTTP performs the upgrade and the credential handshake, then runs the
// read loop until the socket dies. The credential comes as a query parameter
// because browsers cannot set headers on websocket dials.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	socket, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		rt.log.Error("Upgrade failed", "err", err)
		return
	}
	conn := newConn(socket, rt.log, rt.bufferSize)

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		conn.reject(CloseMissingCredential, CodeAuthMissingToken, "missing token")
		return
	}
	user, err := rt.authService.Authenticate(token)
	if err != nil {
		conn.reject(CloseInvalidCredential, CodeAuthInvalidToken, "invalid token")
		return
	}

	session := runtime.NewSession(user.ID, user.Username, conn)
	rt.registry.Register(session)
	if rt.monitor != nil {
		rt.monitor.ConnectionOpened()
	}
	rt.log.Info("Session opened", "session_id", session.ID, "user_id", user.ID)

	go conn.writePump()
	_ = conn.Push(Frame{Type: TypeConnected, Payload: ConnectedPayload{UserID: user.ID, Language: user.Language}})

	rt.readLoop(session, conn)
	rt.teardown(session)
	conn.stop()
}

func (rt *Router) readLoop(session *runtime.Session, conn *Conn) {
	socket := conn.ws
	socket.SetReadLimit(maxMessageSize)
	_ = socket.SetReadDeadline(time.Now().Add(pongWait))
	socket.SetPongHandler(func(string) error {
		session.MarkAlive()
		return socket.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				rt.log.Info("Socket closed abnormally", "session_id", session.ID, "err", err)
			}
			return
		}
		var frame InboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			_ = session.Conn.Push(errorFrame(CodeProcessingError, "malformed frame"))
			continue
		}
		rt.dispatch(session, frame)
	}
}

func (rt *Router) dispatch(session *runtime.Session, frame InboundFrame) {
	switch frame.Type {
	case TypeJoinRoom:
		rt.handleJoinRoom(session, frame)
	case TypeSendMessage:
		rt.handleSendMessage(session, frame)
	case TypeTyping:
		rt.handlePresence(session, frame, TypeUserTyping)
	case TypeStopTyping:
		rt.handlePresence(session, frame, TypeUserStopTyping)
	case TypeLeaveRoom:
		rt.handleLeaveRoom(session)
	case TypePing:
		session.MarkAlive()
		_ = session.Conn.Push(Frame{Type: TypePong, Payload: PongPayload{Timestamp: time.Now().UnixMilli()}})
	default:
		_ = session.Conn.Push(errorFrame(CodeUnknownType, "unknown frame type: "+frame.Type))
	}
}

// handleJoinRoom switches the session to another room once membership is
// verified. On any failure the current room association is left untouched.
func (rt *Router) handleJoinRoom(session *runtime.Session, frame InboundFrame) {
	roomID, ok := rt.parseRoomID(session, frame.RoomID)
	if !ok {
		return
	}

	room, err := rt.chatService.GetRoom(session.UserID, roomID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRoomNotFound):
			_ = session.Conn.Push(errorFrame(CodeRoomNotFound, "room not found"))
		case errors.Is(err, apperrors.ErrNotRoomMember):
			_ = session.Conn.Push(errorFrame(CodeAccessDenied, "not a member of this room"))
		default:
			rt.log.Error("Joining room failed", "session_id", session.ID, "err", err)
			_ = session.Conn.Push(errorFrame(CodeProcessingError, "could not join room"))
		}
		return
	}

	session.SetRoom(roomID)
	_ = session.Conn.Push(Frame{Type: TypeJoinedRoom, Payload: JoinedRoomPayload{RoomID: roomID, Room: room}})
}

func (rt *Router) handleSendMessage(session *runtime.Session, frame InboundFrame) {
	roomID, ok := rt.parseRoomID(session, frame.RoomID)
	if !ok {
		return
	}
	current, joined := session.Room()
	if !joined || current != roomID {
		_ = session.Conn.Push(errorFrame(CodeAccessDenied, "join the room before sending"))
		return
	}

	ack, err := rt.relay.Send(
		context.Background(),
		chat.SendMessageCommand{Room: roomID, SenderID: session.UserID, Text: frame.Text, CreatedAt: time.Now()},
	)
	if err != nil {
		_ = session.Conn.Push(sendErrorFrame(err))
		return
	}
	_ = session.Conn.Push(Frame{Type: TypeMessageSent, Payload: MessageSentPayload{Message: ack}})
}

// handlePresence relays a typing indicator to the peers in the room.
// Indicators are advisory: frames without a usable room id, or for a room
// the session has not joined, are dropped without an answer.
func (rt *Router) handlePresence(session *runtime.Session, frame InboundFrame, outType string) {
	roomID, err := uuid.Parse(strings.TrimSpace(frame.RoomID))
	if err != nil {
		return
	}
	current, joined := session.Room()
	if !joined || current != roomID {
		return
	}

	payload := PresencePayload{RoomID: roomID, UserID: session.UserID, Username: session.Username}
	rt.registry.ForEachInRoom(roomID, &session.UserID, func(peer *runtime.Session) {
		_ = peer.Conn.Push(Frame{Type: outType, Payload: payload})
	})
}

func (rt *Router) handleLeaveRoom(session *runtime.Session) {
	prev, had := session.ClearRoom()
	if !had {
		_ = session.Conn.Push(errorFrame(CodeMissingRoomID, "no room joined"))
		return
	}
	_ = session.Conn.Push(Frame{Type: TypeLeftRoom, Payload: LeftRoomPayload{RoomID: prev}})
}

// teardown runs once per session, whatever ended the read loop. Peers in
// the room are told the user is gone.
func (rt *Router) teardown(session *runtime.Session) {
	if roomID, had := session.ClearRoom(); had {
		payload := PresencePayload{RoomID: roomID, UserID: session.UserID, Username: session.Username}
		rt.registry.ForEachInRoom(roomID, &session.UserID, func(peer *runtime.Session) {
			_ = peer.Conn.Push(Frame{Type: TypeUserLeft, Payload: payload})
		})
	}
	rt.registry.Unregister(session.ID)
	if rt.monitor != nil {
		rt.monitor.ConnectionClosed()
	}
	rt.log.Info("Session closed", "session_id", session.ID, "user_id", session.UserID)
}

func (rt *Router) parseRoomID(session *runtime.Session, raw string) (chat.RoomID, bool) {
	if strings.TrimSpace(raw) == "" {
		_ = session.Conn.Push(errorFrame(CodeMissingRoomID, "roomId is required"))
		return chat.RoomID{}, false
	}
	roomID, err := uuid.Parse(raw)
	if err != nil {
		_ = session.Conn.Push(errorFrame(CodeMissingRoomID, "roomId is not a valid id"))
		return chat.RoomID{}, false
	}
	return roomID, true
}

func sendErrorFrame(err error) Frame {
	switch {
	case errors.Is(err, apperrors.ErrEmptyMessage):
		return errorFrame(CodeMissingFields, "text is required")
	case errors.Is(err, apperrors.ErrMessageTooLong):
		return errorFrame(CodeMissingFields, "text exceeds the size limit")
	case errors.Is(err, apperrors.ErrNotRoomMember):
		return errorFrame(CodeNotRoomMember, "not a member of this room")
	case errors.Is(err, apperrors.ErrNoReceivers):
		return errorFrame(CodeNoReceivers, "nobody to deliver to")
	case errors.Is(err, apperrors.ErrRoomNotFound):
		return errorFrame(CodeRoomNotFound, "room not found")
	default:
		return errorFrame(CodeProcessingError, "could not process message")
	}
}
