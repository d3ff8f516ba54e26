package ws

import (
	"log/slog"

	"lingualink/domain/chat"
	"lingualink/runtime"
	"lingualink/services"
	"lingualink/translation"
)

// DeliverySink turns translated variants into new-message frames for the
// recipient's live connection.
type DeliverySink struct {
	log *slog.Logger
}

var _ services.IDeliverySink = (*DeliverySink)(nil)

func NewDeliverySink(log *slog.Logger) *DeliverySink {
	return &DeliverySink{log: log}
}

func (s *DeliverySink) DeliverTranslation(target *runtime.Session, msg chat.Message, res translation.Result) {
	payload := NewMessagePayload{Message: msg, TranslationSuccess: res.Success}
	if res.Err != nil {
		errText := res.Err.Error()
		payload.TranslationError = &errText
	}
	if err := target.Conn.Push(Frame{Type: TypeNewMessage, Payload: payload}); err != nil {
		s.log.Warn("Dropping delivery", "session_id", target.ID, "event_id", msg.EventID, "err", err)
	}
}
