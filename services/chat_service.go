//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"lingualink/domain/chat"
	"lingualink/errors"
	"lingualink/repositories"
)

type IChatService interface {
	OpenRoom(creatorID uuid.UUID, memberIDs []uuid.UUID) (chat.Room, error)
	GetRoom(userID uuid.UUID, roomID chat.RoomID) (chat.Room, error)
	ListRooms(userID uuid.UUID) ([]chat.RoomPreview, error)
	GetMessages(cmd chat.GetMessagesCommand) ([]chat.Message, *string, error)
	SearchMessages(ctx context.Context, userID uuid.UUID, roomID chat.RoomID, terms string, limit int) ([]repositories.SearchHit, uint64, error)
}

type ChatService struct {
	roomRepository    repositories.IRoomRepository
	messageRepository repositories.IMessageRepository
	searchRepository  repositories.ISearchRepository
}

func NewChatService(rooms repositories.IRoomRepository, messages repositories.IMessageRepository, search repositories.ISearchRepository) IChatService {
	return &ChatService{
		roomRepository:    rooms,
		messageRepository: messages,
		searchRepository:  search,
	}
}

// OpenRoom creates a room for the given member set, or returns the existing
// one for the same set. The creator is always a member.
func (s *ChatService) OpenRoom(creatorID uuid.UUID, memberIDs []uuid.UUID) (chat.Room, error) {
	ids := lo.Uniq(append([]uuid.UUID{creatorID}, memberIDs...))
	if len(ids) < 2 {
		return chat.Room{}, errors.ErrNoReceivers
	}
	return s.roomRepository.CreateOrReuseRoom(ids)
}

func (s *ChatService) GetRoom(userID uuid.UUID, roomID chat.RoomID) (chat.Room, error) {
	room, err := s.roomRepository.GetRoom(roomID)
	if err != nil {
		return chat.Room{}, err
	}
	if !room.HasMember(userID) {
		return chat.Room{}, errors.ErrNotRoomMember
	}
	return room, nil
}

func (s *ChatService) ListRooms(userID uuid.UUID) ([]chat.RoomPreview, error) {
	return s.roomRepository.ListUserRooms(userID)
}

// GetMessages returns the viewer's reconciled history page, newest first.
func (s *ChatService) GetMessages(cmd chat.GetMessagesCommand) ([]chat.Message, *string, error) {
	member, err := s.roomRepository.VerifyMembership(cmd.ViewerID, cmd.Room)
	if err != nil {
		return nil, nil, err
	}
	if !member {
		return nil, nil, errors.ErrNotRoomMember
	}
	return s.messageRepository.ListMessages(cmd.Room, cmd.ViewerID, cmd.Cursor)
}

func (s *ChatService) SearchMessages(ctx context.Context, userID uuid.UUID, roomID chat.RoomID, terms string, limit int) ([]repositories.SearchHit, uint64, error) {
	member, err := s.roomRepository.VerifyMembership(userID, roomID)
	if err != nil {
		return nil, 0, err
	}
	if !member {
		return nil, 0, errors.ErrNotRoomMember
	}
	return s.searchRepository.Search(ctx, roomID, terms, limit)
}
