//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_store.go -package=mocks
package repositories

import (
	"context"
	"toni/domain"
)

// DefaultRecentSessions is used when a caller asks for a non-positive limit.
const DefaultRecentSessions = 20

// IStore persists sessions, their transcripts, devices and the AI request audit log.
// Lookups of missing rows return errors.ErrSessionNotFound / errors.ErrDeviceNotFound.
type IStore interface {
	UpsertDevice(ctx context.Context, deviceIP string, ssid *string) (domain.Device, error)
	GetDevice(ctx context.Context, deviceIP string) (domain.Device, error)
	// ListDevices returns devices most recently seen first.
	ListDevices(ctx context.Context) ([]domain.Device, error)

	// TouchSession creates the session or bumps its updated_at.
	// The device address is only recorded on creation.
	TouchSession(ctx context.Context, sessionID string, deviceIP *string) (domain.Session, error)
	GetSession(ctx context.Context, sessionID string) (domain.Session, error)
	// DeleteSession removes the session with its messages and detaches its request logs.
	DeleteSession(ctx context.Context, sessionID string) error
	// RecentSessions returns sessions by last update, newest first, with message counts.
	RecentSessions(ctx context.Context, limit int) ([]domain.SessionSummary, error)

	AppendMessage(ctx context.Context, msg domain.Message) (domain.Message, error)
	// ListMessages returns a session transcript in creation order.
	ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error)

	AppendRequestLog(ctx context.Context, entry domain.AIRequestLog) (domain.AIRequestLog, error)
	ListRequestLogs(ctx context.Context, sessionID string) ([]domain.AIRequestLog, error)

	Close() error
}

func recentLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentSessions
	}
	return limit
}
