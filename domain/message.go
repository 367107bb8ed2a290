package domain

import "time"

// MessageType tags who produced a message in a session transcript.
type MessageType string

const (
	MessageUser      MessageType = "user"
	MessageSecretary MessageType = "secretary"
	MessageExpert    MessageType = "expert"
)

// Message is an append-only transcript entry. Messages are never updated.
type Message struct {
	ID              int64            `json:"id"`
	SessionID       string           `json:"session_id"`
	Type            MessageType      `json:"message_type"`
	Content         string           `json:"content"`
	ExpertName      *string          `json:"expert_type"`
	CameraDirective *CameraDirective `json:"camera_action"`
	ImageSize       *int             `json:"image_size"`
	CreatedAt       time.Time        `json:"created_at"`
}
