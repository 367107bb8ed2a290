// Package event holds the persistence events published by request handlers.
// Events are applied in publication order by a single consumer.
package event

import (
	"time"
	"toni/domain"
)

type DomainEvent interface {
	EventName() string
}

// SessionTouched creates a session or bumps its last update.
type SessionTouched struct {
	SessionID string
	DeviceIP  *string
	At        time.Time
}

func (SessionTouched) EventName() string { return "session_touched" }

type MessageRecorded struct {
	Message domain.Message
}

func (MessageRecorded) EventName() string { return "message_recorded" }

type AIRequestRecorded struct {
	Entry domain.AIRequestLog
}

func (AIRequestRecorded) EventName() string { return "ai_request_recorded" }
