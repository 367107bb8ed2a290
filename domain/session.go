package domain

import "time"

// Session groups the messages exchanged with one client conversation.
type Session struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	DeviceIP  *string   `json:"device_ip"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionSummary is a session annotated with the size of its transcript.
type SessionSummary struct {
	Session
	MessageCount int `json:"message_count"`
}
