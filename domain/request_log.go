package domain

import "time"

type RequestType string

const (
	RequestSecretary RequestType = "secretary"
	RequestExpert    RequestType = "expert"
)

// AIRequestLog is one audit row per call to the chat completion endpoint.
type AIRequestLog struct {
	ID             int64       `json:"id"`
	SessionID      *string     `json:"session_id"`
	RequestType    RequestType `json:"request_type"`
	UserText       string      `json:"user_text"`
	ImageSize      *int        `json:"image_size"`
	ExpertName     *string     `json:"expert_type"`
	ResponseTimeMs *int64      `json:"response_time_ms"`
	CreatedAt      time.Time   `json:"created_at"`
}
