//go:generate go run go.uber.org/mock/mockgen -source=relay_service.go -destination=../mocks/mock_relay_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"lingualink/domain/chat"
	"lingualink/errors"
	"lingualink/moderation"
	"lingualink/observability"
	"lingualink/repositories"
	"lingualink/runtime"
	"lingualink/translation"
)

// IDeliverySink receives translated variants for recipients that are
// currently connected. The websocket layer implements it.
type IDeliverySink interface {
	DeliverTranslation(target *runtime.Session, msg chat.Message, res translation.Result)
}

type IRelayService interface {
	Send(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error)
	Wait()
}

// RelayService is the send pipeline: it persists the sender's original copy
// synchronously, then translates and delivers one variant per recipient in
// parallel. A failing recipient never affects the others or the sender.
type RelayService struct {
	log               *slog.Logger
	roomRepository    repositories.IRoomRepository
	messageRepository repositories.IMessageRepository
	searchRepository  repositories.ISearchRepository
	translator        translation.Translator
	registry          *runtime.Registry
	moderator         *moderation.Moderator
	monitor           *observability.Monitor
	sink              IDeliverySink
	fallbackLanguage  string
	maxContentLength  int

	inflight sync.WaitGroup
}

func NewRelayService(
	log *slog.Logger,
	rooms repositories.IRoomRepository,
	messages repositories.IMessageRepository,
	search repositories.ISearchRepository,
	translator translation.Translator,
	registry *runtime.Registry,
	moderator *moderation.Moderator,
	monitor *observability.Monitor,
	sink IDeliverySink,
	fallbackLanguage string,
	maxContentLength int,
) *RelayService {
	return &RelayService{
		log:               log,
		roomRepository:    rooms,
		messageRepository: messages,
		searchRepository:  search,
		translator:        translator,
		registry:          registry,
		moderator:         moderator,
		monitor:           monitor,
		sink:              sink,
		fallbackLanguage:  fallbackLanguage,
		maxContentLength:  maxContentLength,
	}
}

// Send validates the command, persists the sender's untranslated copy and
// returns it. Translation fan-out for the other members continues in the
// background; the caller can acknowledge the sender as soon as Send returns.
func (s *RelayService) Send(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return chat.Message{}, errors.ErrEmptyMessage
	}
	if s.maxContentLength > 0 && len(text) > s.maxContentLength {
		return chat.Message{}, errors.ErrMessageTooLong
	}

	room, err := s.roomRepository.GetRoom(cmd.Room)
	if err != nil {
		return chat.Message{}, err
	}

	var sender chat.Member
	recipients := make([]chat.Member, 0, len(room.Members))
	for _, m := range room.Members {
		if m.ID == cmd.SenderID {
			sender = m
			continue
		}
		recipients = append(recipients, m)
	}
	if sender.ID == uuid.Nil {
		return chat.Message{}, errors.ErrNotRoomMember
	}
	if len(recipients) == 0 {
		return chat.Message{}, errors.ErrNoReceivers
	}

	if s.moderator != nil {
		censored, matched := s.moderator.Censor(text)
		if len(matched) > 0 {
			s.log.Info("Censored message content", "room_id", cmd.Room, "words", len(matched))
		}
		text = censored
	}

	senderLanguage := sender.Language
	if senderLanguage == "" {
		senderLanguage = translation.DetectTag(text, s.fallbackLanguage)
	}

	original := chat.Message{
		ID:            uuid.New(),
		EventID:       uuid.New(),
		RoomID:        cmd.Room,
		SenderID:      sender.ID,
		RecipientID:   sender.ID,
		Text:          text,
		Language:      senderLanguage,
		TranslationOK: true,
		CreatedAt:     cmd.CreatedAt,
	}
	if err := s.messageRepository.StoreMessage(original); err != nil {
		return chat.Message{}, err
	}
	if err := s.searchRepository.Index(original); err != nil {
		s.log.Warn("Indexing failed", "event_id", original.EventID, "err", err)
	}
	if s.monitor != nil {
		s.monitor.MessageRelayed()
	}

	// The sender's ack must not wait for translations. Detach from the
	// request context so a closing socket cannot abort deliveries midway.
	fanoutCtx := context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.fanOut(fanoutCtx, original, senderLanguage, recipients)
	}()

	return original, nil
}

// Wait blocks until all background fan-outs are finished. Used on shutdown
// and by tests.
func (s *RelayService) Wait() {
	s.inflight.Wait()
}

func (s *RelayService) fanOut(ctx context.Context, original chat.Message, senderLanguage string, recipients []chat.Member) {
	var wg sync.WaitGroup
	for _, recipient := range recipients {
		wg.Add(1)
		go func(recipient chat.Member) {
			defer wg.Done()
			s.deliver(ctx, original, senderLanguage, recipient)
		}(recipient)
	}
	wg.Wait()

	if err := s.roomRepository.TouchRoom(original.RoomID, original.CreatedAt); err != nil {
		s.log.Warn("Touching room failed", "room_id", original.RoomID, "err", err)
	}
}

func (s *RelayService) deliver(ctx context.Context, original chat.Message, senderLanguage string, recipient chat.Member) {
	target := recipient.Language
	if target == "" {
		target = s.fallbackLanguage
	}

	res := s.translator.Translate(ctx, original.Text, senderLanguage, target)
	if s.monitor != nil {
		if res.Success {
			s.monitor.TranslationOK()
		} else {
			s.monitor.TranslationFailed()
		}
	}
	if res.Err != nil {
		s.log.Warn("Translation degraded to original text",
			"event_id", original.EventID, "recipient_id", recipient.ID, "err", res.Err)
	}

	variant := chat.Message{
		ID:             uuid.New(),
		EventID:        original.EventID,
		RoomID:         original.RoomID,
		SenderID:       original.SenderID,
		RecipientID:    recipient.ID,
		Text:           original.Text,
		TranslatedText: res.TranslatedText,
		Language:       target,
		TranslationOK:  res.Success,
		CreatedAt:      original.CreatedAt,
	}
	if err := s.messageRepository.StoreMessage(variant); err != nil {
		s.log.Error("Storing variant failed",
			"event_id", original.EventID, "recipient_id", recipient.ID, "err", err)
		return
	}

	session, online := s.registry.FindByUserAndRoom(recipient.ID, original.RoomID)
	if !online {
		if s.monitor != nil {
			s.monitor.StoredOffline()
		}
		return
	}
	if s.monitor != nil {
		s.monitor.DeliveredOnline()
	}
	if s.sink != nil {
		s.sink.DeliverTranslation(session, variant, res)
	}
}
