package chat

import (
	"time"

	"github.com/google/uuid"
)

type RoomID = uuid.UUID

// Member is a room participant as the store knows them right now.
// Language is the member's current preference tag, re-read on every
// send so a mid-session settings change is picked up immediately.
type Member struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Language string    `json:"language"`
}

// Room is an immutable set of members. There is no join or leave of an
// existing room: a different member set is a different room.
type Room struct {
	ID        RoomID    `json:"id"`
	Members   []Member  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasMember reports whether the user belongs to the room.
func (r Room) HasMember(userID uuid.UUID) bool {
	for _, m := range r.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// Message is one persisted copy of a send event. The sender's copy keeps
// TranslatedText empty; each recipient's copy carries their variant. All
// copies of a single send share the same EventID.
type Message struct {
	ID             uuid.UUID `json:"id"`
	EventID        uuid.UUID `json:"eventId"`
	RoomID         RoomID    `json:"roomId"`
	SenderID       uuid.UUID `json:"senderId"`
	RecipientID    uuid.UUID `json:"recipientId"`
	Text           string    `json:"text"`
	TranslatedText string    `json:"translatedText,omitempty"`
	Language       string    `json:"language,omitempty"`
	TranslationOK  bool      `json:"translationOk"`
	CreatedAt      time.Time `json:"createdAt"`
}

// DisplayText is the text a viewer of this copy should read.
func (m Message) DisplayText() string {
	if m.TranslatedText != "" {
		return m.TranslatedText
	}
	return m.Text
}

// RoomPreview is a room enriched with its latest message, used by the
// room-list endpoints.
type RoomPreview struct {
	Room        Room     `json:"room"`
	LastMessage *Message `json:"lastMessage,omitempty"`
}
