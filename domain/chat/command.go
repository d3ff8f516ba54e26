package chat

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageCommand struct {
	Room      RoomID
	SenderID  uuid.UUID
	Text      string
	CreatedAt time.Time
}

type GetMessagesCommand struct {
	Room     RoomID
	ViewerID uuid.UUID
	Cursor   *string
}
