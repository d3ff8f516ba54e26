package ws

import (
	"lingualink/domain/chat"

	"github.com/google/uuid"
)

// Application close codes, sent before dropping a socket that never
// completed the credential handshake.
const (
	CloseGeneric           = 4000
	CloseMissingCredential = 4001
	CloseInvalidCredential = 4002
)

// Inbound frame types.
const (
	TypeJoinRoom    = "join-room"
	TypeSendMessage = "send-message"
	TypeTyping      = "typing"
	TypeStopTyping  = "stop-typing"
	TypeLeaveRoom   = "leave-room"
	TypePing        = "ping"
)

// Outbound frame types.
const (
	TypeConnected      = "connected"
	TypeJoinedRoom     = "joined-room"
	TypeMessageSent    = "message-sent"
	TypeNewMessage     = "new-message"
	TypeUserTyping     = "user-typing"
	TypeUserStopTyping = "user-stop-typing"
	TypeUserLeft       = "user-left"
	TypeLeftRoom       = "left-room"
	TypePong           = "pong"
	TypeError          = "error"
)

// Error codes carried by error frames.
const (
	CodeAuthMissingToken = "AUTH_MISSING_TOKEN"
	CodeAuthInvalidToken = "AUTH_INVALID_TOKEN"
	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeMissingRoomID    = "MISSING_ROOM_ID"
	CodeAccessDenied     = "ACCESS_DENIED"
	CodeRoomNotFound     = "ROOM_NOT_FOUND"
	CodeMissingFields    = "MISSING_FIELDS"
	CodeNotRoomMember    = "NOT_ROOM_MEMBER"
	CodeNoReceivers      = "NO_RECEIVERS"
	CodeUnknownType      = "UNKNOWN_TYPE"
	CodeProcessingError  = "PROCESSING_ERROR"
	CodeConnectionError  = "CONNECTION_ERROR"
)

// Frame is the envelope of every message exchanged over the socket.
type Frame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// InboundFrame is the client side of the protocol. Fields are a union over
// all inbound types; each handler validates the ones it needs.
type InboundFrame struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId,omitempty"`
	Text   string `json:"text,omitempty"`
}

type ConnectedPayload struct {
	UserID   uuid.UUID `json:"userId"`
	Language string    `json:"language"`
}

type JoinedRoomPayload struct {
	RoomID chat.RoomID `json:"roomId"`
	Room   chat.Room   `json:"room"`
}

type MessageSentPayload struct {
	Message chat.Message `json:"message"`
}

type NewMessagePayload struct {
	Message            chat.Message `json:"message"`
	TranslationSuccess bool         `json:"translationSuccess"`
	TranslationError   *string      `json:"translationError,omitempty"`
}

type PresencePayload struct {
	RoomID   chat.RoomID `json:"roomId"`
	UserID   uuid.UUID   `json:"userId"`
	Username string      `json:"username"`
}

type LeftRoomPayload struct {
	RoomID chat.RoomID `json:"roomId"`
}

type PongPayload struct {
	Timestamp int64 `json:"timestamp"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func errorFrame(code, message string) Frame {
	return Frame{Type: TypeError, Payload: ErrorPayload{Message: message, Code: code}}
}
