package ws

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lingualink/domain/chat"
	apperrors "lingualink/errors"
	"lingualink/mocks"
	"lingualink/repositories"
	"lingualink/runtime"
)

type routerFixture struct {
	auth     *mocks.MockIAuthService
	chat     *mocks.MockIChatService
	relay    *mocks.MockIRelayService
	registry *runtime.Registry
	server   *httptest.Server
}

func newRouterFixture(t *testing.T) *routerFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &routerFixture{
		auth:     mocks.NewMockIAuthService(ctrl),
		chat:     mocks.NewMockIChatService(ctrl),
		relay:    mocks.NewMockIRelayService(ctrl),
		registry: runtime.NewRegistry(),
	}
	router := NewRouter(slog.Default(), f.auth, f.chat, f.relay, f.registry, nil, 16)
	f.server = httptest.NewServer(router)
	t.Cleanup(f.server.Close)
	return f
}

func (f *routerFixture) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http")
	if token != "" {
		url += "?token=" + token
	}
	socket, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { socket.Close() })
	return socket
}

// outFrame keeps the payload raw so each assertion can decode its own type.
type outFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func readFrame(t *testing.T, socket *websocket.Conn) outFrame {
	t.Helper()
	require.NoError(t, socket.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame outFrame
	require.NoError(t, socket.ReadJSON(&frame))
	return frame
}

func readFrameOfType(t *testing.T, socket *websocket.Conn, frameType string) outFrame {
	t.Helper()
	for i := 0; i < 5; i++ {
		frame := readFrame(t, socket)
		if frame.Type == frameType {
			return frame
		}
	}
	t.Fatalf("never received a %s frame", frameType)
	return outFrame{}
}

func expectClose(t *testing.T, socket *websocket.Conn, code int) {
	t.Helper()
	require.NoError(t, socket.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := socket.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	require.Equal(t, code, closeErr.Code)
}

// expectRejection asserts the handshake failure contract: one structured
// error frame first, then the close frame with the application code.
func expectRejection(t *testing.T, socket *websocket.Conn, errCode string, closeCode int) {
	t.Helper()
	frame := readFrame(t, socket)
	require.Equal(t, TypeError, frame.Type)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(frame.Payload, &payload))
	require.Equal(t, errCode, payload.Code)
	expectClose(t, socket, closeCode)
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	f := newRouterFixture(t)
	socket := f.dial(t, "")
	expectRejection(t, socket, CodeAuthMissingToken, CloseMissingCredential)
}

func TestRouter_RejectsInvalidToken(t *testing.T) {
	f := newRouterFixture(t)
	f.auth.EXPECT().Authenticate("bogus").Return(repositories.User{}, apperrors.ErrInvalidToken)

	socket := f.dial(t, "bogus")
	expectRejection(t, socket, CodeAuthInvalidToken, CloseInvalidCredential)
}

func TestRouter_AcksTheConnection(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice", Language: "en"}
	f.auth.EXPECT().Authenticate("tok").Return(user, nil)

	socket := f.dial(t, "tok")

	frame := readFrame(t, socket)
	req.Equal(TypeConnected, frame.Type)
	var payload ConnectedPayload
	req.NoError(json.Unmarshal(frame.Payload, &payload))
	req.Equal(user.ID, payload.UserID)
	req.Equal("en", payload.Language)
}

func TestRouter_JoinRoom(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice", Language: "en"}
	room := chat.Room{ID: uuid.New(), Members: []chat.Member{{ID: user.ID, Username: "alice", Language: "en"}}}

	f.auth.EXPECT().Authenticate("tok").Return(user, nil)
	f.chat.EXPECT().GetRoom(user.ID, room.ID).Return(room, nil)

	socket := f.dial(t, "tok")
	readFrameOfType(t, socket, TypeConnected)

	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeJoinRoom, RoomID: room.ID.String()}))

	frame := readFrameOfType(t, socket, TypeJoinedRoom)
	var payload JoinedRoomPayload
	req.NoError(json.Unmarshal(frame.Payload, &payload))
	req.Equal(room.ID, payload.RoomID)
	req.Len(payload.Room.Members, 1)
}

func TestRouter_JoinRoomDeniedKeepsCurrentRoom(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice"}
	allowed := chat.Room{ID: uuid.New(), Members: []chat.Member{{ID: user.ID}}}
	forbidden := uuid.New()

	f.auth.EXPECT().Authenticate("tok").Return(user, nil)
	f.chat.EXPECT().GetRoom(user.ID, allowed.ID).Return(allowed, nil)
	f.chat.EXPECT().GetRoom(user.ID, forbidden).Return(chat.Room{}, apperrors.ErrNotRoomMember)

	socket := f.dial(t, "tok")
	readFrameOfType(t, socket, TypeConnected)

	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeJoinRoom, RoomID: allowed.ID.String()}))
	readFrameOfType(t, socket, TypeJoinedRoom)

	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeJoinRoom, RoomID: forbidden.String()}))
	frame := readFrameOfType(t, socket, TypeError)
	var payload ErrorPayload
	req.NoError(json.Unmarshal(frame.Payload, &payload))
	req.Equal(CodeAccessDenied, payload.Code)

	// Still in the allowed room: sending there succeeds.
	ack := chat.Message{ID: uuid.New(), EventID: uuid.New(), RoomID: allowed.ID, SenderID: user.ID, Text: "hi"}
	f.relay.EXPECT().Send(gomock.Any(), gomock.Any()).Return(ack, nil)
	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeSendMessage, RoomID: allowed.ID.String(), Text: "hi"}))
	readFrameOfType(t, socket, TypeMessageSent)
}

func TestRouter_SendMessage(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice", Language: "en"}
	room := chat.Room{ID: uuid.New(), Members: []chat.Member{{ID: user.ID}}}

	f.auth.EXPECT().Authenticate("tok").Return(user, nil)
	f.chat.EXPECT().GetRoom(user.ID, room.ID).Return(room, nil)

	ack := chat.Message{ID: uuid.New(), EventID: uuid.New(), RoomID: room.ID, SenderID: user.ID, RecipientID: user.ID, Text: "hello"}
	f.relay.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, cmd chat.SendMessageCommand) (chat.Message, error) {
			req.Equal(room.ID, cmd.Room)
			req.Equal(user.ID, cmd.SenderID)
			req.Equal("hello", cmd.Text)
			return ack, nil
		})

	socket := f.dial(t, "tok")
	readFrameOfType(t, socket, TypeConnected)
	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeJoinRoom, RoomID: room.ID.String()}))
	readFrameOfType(t, socket, TypeJoinedRoom)

	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeSendMessage, RoomID: room.ID.String(), Text: "hello"}))

	frame := readFrameOfType(t, socket, TypeMessageSent)
	var payload MessageSentPayload
	req.NoError(json.Unmarshal(frame.Payload, &payload))
	req.Equal(ack.ID, payload.Message.ID)
	req.Empty(payload.Message.TranslatedText)
}

func TestRouter_SendMessageRequiresJoin(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice"}
	f.auth.EXPECT().Authenticate("tok").Return(user, nil)

	socket := f.dial(t, "tok")
	readFrameOfType(t, socket, TypeConnected)

	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeSendMessage, RoomID: uuid.New().String(), Text: "hello"}))

	frame := readFrameOfType(t, socket, TypeError)
	var payload ErrorPayload
	req.NoError(json.Unmarshal(frame.Payload, &payload))
	req.Equal(CodeAccessDenied, payload.Code)
}

func TestRouter_EmptyTextIsRejected(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice"}
	room := chat.Room{ID: uuid.New(), Members: []chat.Member{{ID: user.ID}}}

	f.auth.EXPECT().Authenticate("tok").Return(user, nil)
	f.chat.EXPECT().GetRoom(user.ID, room.ID).Return(room, nil)
	f.relay.EXPECT().Send(gomock.Any(), gomock.Any()).Return(chat.Message{}, apperrors.ErrEmptyMessage)

	socket := f.dial(t, "tok")
	readFrameOfType(t, socket, TypeConnected)
	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeJoinRoom, RoomID: room.ID.String()}))
	readFrameOfType(t, socket, TypeJoinedRoom)

	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeSendMessage, RoomID: room.ID.String(), Text: "   "}))

	frame := readFrameOfType(t, socket, TypeError)
	var payload ErrorPayload
	req.NoError(json.Unmarshal(frame.Payload, &payload))
	req.Equal(CodeMissingFields, payload.Code)
}

func TestRouter_UnknownTypeAndPing(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice"}
	f.auth.EXPECT().Authenticate("tok").Return(user, nil)

	socket := f.dial(t, "tok")
	readFrameOfType(t, socket, TypeConnected)

	req.NoError(socket.WriteJSON(InboundFrame{Type: "shrug"}))
	frame := readFrameOfType(t, socket, TypeError)
	var errPayload ErrorPayload
	req.NoError(json.Unmarshal(frame.Payload, &errPayload))
	req.Equal(CodeUnknownType, errPayload.Code)

	req.NoError(socket.WriteJSON(InboundFrame{Type: TypePing}))
	frame = readFrameOfType(t, socket, TypePong)
	var pong PongPayload
	req.NoError(json.Unmarshal(frame.Payload, &pong))
	req.NotZero(pong.Timestamp)
}

func TestRouter_TypingReachesPeersOnly(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t)
	alice := repositories.User{ID: uuid.New(), Username: "alice"}
	bob := repositories.User{ID: uuid.New(), Username: "bob"}
	room := chat.Room{ID: uuid.New(), Members: []chat.Member{{ID: alice.ID}, {ID: bob.ID}}}

	f.auth.EXPECT().Authenticate("tok-alice").Return(alice, nil)
	f.auth.EXPECT().Authenticate("tok-bob").Return(bob, nil)
	f.chat.EXPECT().GetRoom(alice.ID, room.ID).Return(room, nil)
	f.chat.EXPECT().GetRoom(bob.ID, room.ID).Return(room, nil)

	aliceSocket := f.dial(t, "tok-alice")
	readFrameOfType(t, aliceSocket, TypeConnected)
	req.NoError(aliceSocket.WriteJSON(InboundFrame{Type: TypeJoinRoom, RoomID: room.ID.String()}))
	readFrameOfType(t, aliceSocket, TypeJoinedRoom)

	bobSocket := f.dial(t, "tok-bob")
	readFrameOfType(t, bobSocket, TypeConnected)
	req.NoError(bobSocket.WriteJSON(InboundFrame{Type: TypeJoinRoom, RoomID: room.ID.String()}))
	readFrameOfType(t, bobSocket, TypeJoinedRoom)

	req.NoError(aliceSocket.WriteJSON(InboundFrame{Type: TypeTyping, RoomID: room.ID.String()}))

	frame := readFrameOfType(t, bobSocket, TypeUserTyping)
	var payload PresencePayload
	req.NoError(json.Unmarshal(frame.Payload, &payload))
	req.Equal(alice.ID, payload.UserID)
	req.Equal("alice", payload.Username)
}

func TestRouter_TypingWithoutRoomIsDropped(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t)
	user := repositories.User{ID: uuid.New(), Username: "alice"}
	f.auth.EXPECT().Authenticate("tok").Return(user, nil)

	socket := f.dial(t, "tok")
	readFrameOfType(t, socket, TypeConnected)

	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeTyping}))
	req.NoError(socket.WriteJSON(InboundFrame{Type: TypeStopTyping, RoomID: "not-a-uuid"}))

	// Frames are dispatched in order, so the pong arriving first proves the
	// indicators produced no answer at all.
	req.NoError(socket.WriteJSON(InboundFrame{Type: TypePing}))
	frame := readFrame(t, socket)
	req.Equal(TypePong, frame.Type)
}

func TestRouter_DisconnectNotifiesPeers(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t)
	alice := repositories.User{ID: uuid.New(), Username: "alice"}
	bob := repositories.User{ID: uuid.New(), Username: "bob"}
	room := chat.Room{ID: uuid.New(), Members: []chat.Member{{ID: alice.ID}, {ID: bob.ID}}}

	f.auth.EXPECT().Authenticate("tok-alice").Return(alice, nil)
	f.auth.EXPECT().Authenticate("tok-bob").Return(bob, nil)
	f.chat.EXPECT().GetRoom(alice.ID, room.ID).Return(room, nil)
	f.chat.EXPECT().GetRoom(bob.ID, room.ID).Return(room, nil)

	aliceSocket := f.dial(t, "tok-alice")
	readFrameOfType(t, aliceSocket, TypeConnected)
	req.NoError(aliceSocket.WriteJSON(InboundFrame{Type: TypeJoinRoom, RoomID: room.ID.String()}))
	readFrameOfType(t, aliceSocket, TypeJoinedRoom)

	bobSocket := f.dial(t, "tok-bob")
	readFrameOfType(t, bobSocket, TypeConnected)
	req.NoError(bobSocket.WriteJSON(InboundFrame{Type: TypeJoinRoom, RoomID: room.ID.String()}))
	readFrameOfType(t, bobSocket, TypeJoinedRoom)

	req.NoError(aliceSocket.Close())

	frame := readFrameOfType(t, bobSocket, TypeUserLeft)
	var payload PresencePayload
	req.NoError(json.Unmarshal(frame.Payload, &payload))
	req.Equal(alice.ID, payload.UserID)
}
