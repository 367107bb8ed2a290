package sink

import (
	"context"
	"fmt"
	"log/slog"
	"toni/domain/event"
	"toni/repositories"
)

// StoreSink applies persistence events to the store.
type StoreSink struct {
	store repositories.IStore
	log   *slog.Logger
}

func NewStoreSink(store repositories.IStore, log *slog.Logger) StoreSink {
	return StoreSink{store: store, log: log}
}

func (s StoreSink) Consume(ctx context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.SessionTouched:
		_, err := s.store.TouchSession(ctx, evt.SessionID, evt.DeviceIP)
		return err
	case event.MessageRecorded:
		_, err := s.store.AppendMessage(ctx, evt.Message)
		return err
	case event.AIRequestRecorded:
		_, err := s.store.AppendRequestLog(ctx, evt.Entry)
		return err
	default:
		s.log.Debug(fmt.Sprintf("Not implemented event : %v", evt))
		return nil
	}
}
