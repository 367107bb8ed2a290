package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
	"toni/domain"
	"toni/errors"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT UNIQUE NOT NULL,
	device_ip TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	message_type TEXT NOT NULL,
	content TEXT NOT NULL,
	expert_type TEXT,
	camera_action TEXT,
	image_size INTEGER,
	created_at INTEGER NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS devices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	device_ip TEXT UNIQUE NOT NULL,
	device_ssid TEXT,
	last_seen INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ai_requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT,
	request_type TEXT NOT NULL,
	user_text TEXT,
	image_size INTEGER,
	expert_type TEXT,
	response_time_ms INTEGER,
	created_at INTEGER NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_session_id ON messages(session_id);
CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);
CREATE INDEX IF NOT EXISTS idx_ai_requests_session_id ON ai_requests(session_id);
CREATE INDEX IF NOT EXISTS idx_ai_requests_created_at ON ai_requests(created_at);
`

// SQLStore is the relational backend. Timestamps are stored as unix nanoseconds.
type SQLStore struct {
	db  *sql.DB
	log *slog.Logger
}

func OpenSQLStore(path string, log *slog.Logger, readOnly bool) (*SQLStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	if readOnly {
		dsn += "&_pragma=query_only(1)"
	} else {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if !readOnly {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing schema: %w", err)
		}
	}
	log.Debug("SQLite store ready", "path", path, "read_only", readOnly)
	return &SQLStore{db: db, log: log}, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func nanos(t time.Time) int64 { return t.UnixNano() }

func fromNanos(n int64) time.Time { return time.Unix(0, n).UTC() }

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

type scanner interface {
	Scan(dest ...any) error
}

const deviceColumns = `id, device_ip, device_ssid, last_seen, created_at`

func scanDevice(row scanner) (domain.Device, error) {
	var d domain.Device
	var ssid sql.NullString
	var lastSeen, createdAt int64
	if err := row.Scan(&d.ID, &d.DeviceIP, &ssid, &lastSeen, &createdAt); err != nil {
		return domain.Device{}, err
	}
	d.DeviceSSID = stringPtr(ssid)
	d.LastSeen = fromNanos(lastSeen)
	d.CreatedAt = fromNanos(createdAt)
	return d, nil
}

func (s *SQLStore) UpsertDevice(ctx context.Context, deviceIP string, ssid *string) (domain.Device, error) {
	now := nanos(time.Now())
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO devices (device_ip, device_ssid, last_seen, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (device_ip)
		DO UPDATE SET device_ssid = excluded.device_ssid, last_seen = excluded.last_seen
		RETURNING `+deviceColumns,
		deviceIP, nullString(ssid), now, now)
	d, err := scanDevice(row)
	if err != nil {
		return domain.Device{}, fmt.Errorf("upserting device: %w", err)
	}
	return d, nil
}

func (s *SQLStore) GetDevice(ctx context.Context, deviceIP string) (domain.Device, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+deviceColumns+` FROM devices WHERE device_ip = ?`, deviceIP)
	d, err := scanDevice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Device{}, errors.ErrDeviceNotFound
	}
	if err != nil {
		return domain.Device{}, fmt.Errorf("scan device: %w", err)
	}
	return d, nil
}

func (s *SQLStore) ListDevices(ctx context.Context) ([]domain.Device, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+deviceColumns+` FROM devices ORDER BY last_seen DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query devices: %w", err)
	}
	defer rows.Close()

	devices := make([]domain.Device, 0)
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

const sessionColumns = `id, session_id, device_ip, created_at, updated_at`

func scanSession(row scanner, extra ...any) (domain.Session, error) {
	var sess domain.Session
	var deviceIP sql.NullString
	var createdAt, updatedAt int64
	dest := append([]any{&sess.ID, &sess.SessionID, &deviceIP, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.Session{}, err
	}
	sess.DeviceIP = stringPtr(deviceIP)
	sess.CreatedAt = fromNanos(createdAt)
	sess.UpdatedAt = fromNanos(updatedAt)
	return sess, nil
}

func (s *SQLStore) TouchSession(ctx context.Context, sessionID string, deviceIP *string) (domain.Session, error) {
	now := nanos(time.Now())
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO sessions (session_id, device_ip, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET updated_at = excluded.updated_at
		RETURNING `+sessionColumns,
		sessionID, nullString(deviceIP), now, now)
	sess, err := scanSession(row)
	if err != nil {
		return domain.Session{}, fmt.Errorf("touching session: %w", err)
	}
	return sess, nil
}

func (s *SQLStore) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, errors.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}
	return sess, nil
}

func (s *SQLStore) DeleteSession(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.ErrSessionNotFound
	}
	return nil
}

func (s *SQLStore) RecentSessions(ctx context.Context, limit int) ([]domain.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.session_id, s.device_ip, s.created_at, s.updated_at, COUNT(m.id) AS message_count
		FROM sessions s
		LEFT JOIN messages m ON s.session_id = m.session_id
		GROUP BY s.id
		ORDER BY s.updated_at DESC, s.id DESC
		LIMIT ?`, recentLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.SessionSummary, 0)
	for rows.Next() {
		var count int
		sess, err := scanSession(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, domain.SessionSummary{Session: sess, MessageCount: count})
	}
	return out, rows.Err()
}

func (s *SQLStore) AppendMessage(ctx context.Context, msg domain.Message) (domain.Message, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	var camera sql.NullString
	if msg.CameraDirective != nil {
		camera = sql.NullString{String: string(*msg.CameraDirective), Valid: true}
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (session_id, message_type, content, expert_type, camera_action, image_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.SessionID, string(msg.Type), msg.Content, nullString(msg.ExpertName), camera, nullInt(msg.ImageSize), nanos(msg.CreatedAt))
	if err != nil {
		return domain.Message{}, fmt.Errorf("appending message: %w", err)
	}
	if msg.ID, err = res.LastInsertId(); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

func (s *SQLStore) ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, message_type, content, expert_type, camera_action, image_size, created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		var msgType string
		var expertName, camera sql.NullString
		var imageSize sql.NullInt64
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.SessionID, &msgType, &m.Content, &expertName, &camera, &imageSize, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Type = domain.MessageType(msgType)
		m.ExpertName = stringPtr(expertName)
		if camera.Valid {
			c := domain.CameraDirective(camera.String)
			m.CameraDirective = &c
		}
		m.ImageSize = intPtr(imageSize)
		m.CreatedAt = fromNanos(createdAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLStore) AppendRequestLog(ctx context.Context, entry domain.AIRequestLog) (domain.AIRequestLog, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	var latency sql.NullInt64
	if entry.ResponseTimeMs != nil {
		latency = sql.NullInt64{Int64: *entry.ResponseTimeMs, Valid: true}
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO ai_requests (session_id, request_type, user_text, image_size, expert_type, response_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nullString(entry.SessionID), string(entry.RequestType), entry.UserText, nullInt(entry.ImageSize),
		nullString(entry.ExpertName), latency, nanos(entry.CreatedAt))
	if err != nil {
		return domain.AIRequestLog{}, fmt.Errorf("appending request log: %w", err)
	}
	if entry.ID, err = res.LastInsertId(); err != nil {
		return domain.AIRequestLog{}, err
	}
	return entry, nil
}

func (s *SQLStore) ListRequestLogs(ctx context.Context, sessionID string) ([]domain.AIRequestLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, request_type, user_text, image_size, expert_type, response_time_ms, created_at
		FROM ai_requests
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query request logs: %w", err)
	}
	defer rows.Close()

	out := make([]domain.AIRequestLog, 0)
	for rows.Next() {
		var e domain.AIRequestLog
		var session, userText, expertName sql.NullString
		var requestType string
		var imageSize, latency sql.NullInt64
		var createdAt int64
		if err := rows.Scan(&e.ID, &session, &requestType, &userText, &imageSize, &expertName, &latency, &createdAt); err != nil {
			return nil, fmt.Errorf("scan request log: %w", err)
		}
		e.SessionID = stringPtr(session)
		e.RequestType = domain.RequestType(requestType)
		e.UserText = userText.String
		e.ImageSize = intPtr(imageSize)
		e.ExpertName = stringPtr(expertName)
		if latency.Valid {
			e.ResponseTimeMs = &latency.Int64
		}
		e.CreatedAt = fromNanos(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
