package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"
	"toni/domain"
	"toni/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	sessionPrefix = "session:"
	messagePrefix = "msg:"
	devicePrefix  = "device:"
	requestPrefix = "req:"

	sequenceBandwidth = 64
)

// BadgerStore keeps every record as JSON under a prefixed key.
// Message and request keys embed a zero-padded timestamp so prefix scans
// come back in chronological order.
type BadgerStore struct {
	db       *badger.DB
	log      *slog.Logger
	readOnly bool
	seqs     map[string]*badger.Sequence
}

func OpenBadgerStore(dir string, log *slog.Logger, readOnly bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR).
		WithReadOnly(readOnly)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %s: %w", dir, err)
	}
	return NewBadgerStore(db, log, readOnly)
}

func NewBadgerStore(db *badger.DB, log *slog.Logger, readOnly bool) (*BadgerStore, error) {
	s := &BadgerStore{db: db, log: log, readOnly: readOnly, seqs: map[string]*badger.Sequence{}}
	if readOnly {
		return s, nil
	}
	for _, name := range []string{sessionPrefix, messagePrefix, devicePrefix, requestPrefix} {
		seq, err := db.GetSequence([]byte("seq:"+name), sequenceBandwidth)
		if err != nil {
			return nil, fmt.Errorf("allocating %s sequence: %w", name, err)
		}
		s.seqs[name] = seq
	}
	return s, nil
}

// DB exposes the underlying database to the debug inspector.
func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

func (s *BadgerStore) Close() error {
	for name, seq := range s.seqs {
		if err := seq.Release(); err != nil {
			s.log.Warn("Failed to release sequence", "sequence", name, "error", err)
		}
	}
	return s.db.Close()
}

// nextID hands out ids starting at 1 like a SERIAL column.
func (s *BadgerStore) nextID(prefix string) (int64, error) {
	seq, ok := s.seqs[prefix]
	if !ok {
		return 0, badger.ErrReadOnlyTxn
	}
	n, err := seq.Next()
	if err != nil {
		return 0, err
	}
	return int64(n) + 1, nil
}

func sessionKey(id string) []byte { return []byte(sessionPrefix + id) }
func deviceKey(ip string) []byte  { return []byte(devicePrefix + ip) }
func messagesOf(id string) []byte { return []byte(messagePrefix + id + ":") }

// timeKey is the "{nanos}:{uuid}" suffix shared by messages and request logs.
func timeKey(at time.Time) string {
	return fmt.Sprintf("%019d:%s", at.UnixNano(), uuid.New())
}

var timeKeyLen = len(timeKey(time.Unix(0, 0)))

func getJSON(txn *badger.Txn, key []byte, out any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, b)
}

func (s *BadgerStore) UpsertDevice(_ context.Context, deviceIP string, ssid *string) (domain.Device, error) {
	now := time.Now().UTC()
	var device domain.Device
	err := s.db.Update(func(txn *badger.Txn) error {
		err := getJSON(txn, deviceKey(deviceIP), &device)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			id, err := s.nextID(devicePrefix)
			if err != nil {
				return err
			}
			device = domain.Device{ID: id, DeviceIP: deviceIP, CreatedAt: now}
		case err != nil:
			return err
		}
		device.DeviceSSID = ssid
		device.LastSeen = now
		return setJSON(txn, deviceKey(deviceIP), device)
	})
	if err != nil {
		return domain.Device{}, fmt.Errorf("upserting device: %w", err)
	}
	return device, nil
}

func (s *BadgerStore) GetDevice(_ context.Context, deviceIP string) (domain.Device, error) {
	var device domain.Device
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, deviceKey(deviceIP), &device)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Device{}, errors.ErrDeviceNotFound
	}
	return device, err
}

func (s *BadgerStore) ListDevices(_ context.Context) ([]domain.Device, error) {
	devices, err := scanJSON[domain.Device](s.db, []byte(devicePrefix), nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(devices, func(i, j int) bool {
		return devices[i].LastSeen.After(devices[j].LastSeen)
	})
	return devices, nil
}

func (s *BadgerStore) TouchSession(_ context.Context, sessionID string, deviceIP *string) (domain.Session, error) {
	now := time.Now().UTC()
	var session domain.Session
	err := s.db.Update(func(txn *badger.Txn) error {
		err := getJSON(txn, sessionKey(sessionID), &session)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			id, err := s.nextID(sessionPrefix)
			if err != nil {
				return err
			}
			session = domain.Session{ID: id, SessionID: sessionID, DeviceIP: deviceIP, CreatedAt: now}
		case err != nil:
			return err
		}
		session.UpdatedAt = now
		return setJSON(txn, sessionKey(sessionID), session)
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("touching session: %w", err)
	}
	return session, nil
}

func (s *BadgerStore) GetSession(_ context.Context, sessionID string) (domain.Session, error) {
	var session domain.Session
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, sessionKey(sessionID), &session)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Session{}, errors.ErrSessionNotFound
	}
	return session, err
}

func (s *BadgerStore) DeleteSession(_ context.Context, sessionID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(sessionKey(sessionID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.ErrSessionNotFound
			}
			return err
		}
		if err := txn.Delete(sessionKey(sessionID)); err != nil {
			return err
		}

		keys := s.transcriptKeys(txn, sessionID)
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}

		detached, err := s.requestKeysOf(txn, sessionID)
		if err != nil {
			return err
		}
		for key, entry := range detached {
			entry.SessionID = nil
			if err := setJSON(txn, []byte(key), entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) requestKeysOf(txn *badger.Txn, sessionID string) (map[string]domain.AIRequestLog, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	out := map[string]domain.AIRequestLog{}
	prefix := []byte(requestPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var entry domain.AIRequestLog
		if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &entry) }); err != nil {
			return nil, err
		}
		if entry.SessionID != nil && *entry.SessionID == sessionID {
			out[string(it.Item().KeyCopy(nil))] = entry
		}
	}
	return out, nil
}

// transcriptKeys lists the message keys of exactly one session. A session id
// may itself contain ':', so the suffix length is checked too.
func (s *BadgerStore) transcriptKeys(txn *badger.Txn, sessionID string) [][]byte {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := messagesOf(sessionID)
	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		k := it.Item().KeyCopy(nil)
		if len(k)-len(prefix) == timeKeyLen {
			keys = append(keys, k)
		}
	}
	return keys
}

func (s *BadgerStore) RecentSessions(_ context.Context, limit int) ([]domain.SessionSummary, error) {
	var out []domain.SessionSummary
	err := s.db.View(func(txn *badger.Txn) error {
		sessions, err := scanJSONTxn[domain.Session](txn, []byte(sessionPrefix), nil)
		if err != nil {
			return err
		}
		out = lo.Map(sessions, func(session domain.Session, _ int) domain.SessionSummary {
			return domain.SessionSummary{Session: session, MessageCount: len(s.transcriptKeys(txn, session.SessionID))}
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if n := recentLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *BadgerStore) AppendMessage(_ context.Context, msg domain.Message) (domain.Message, error) {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(sessionKey(msg.SessionID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.ErrSessionNotFound
			}
			return err
		}
		id, err := s.nextID(messagePrefix)
		if err != nil {
			return err
		}
		msg.ID = id
		if msg.CreatedAt.IsZero() {
			msg.CreatedAt = time.Now().UTC()
		}
		return setJSON(txn, append(messagesOf(msg.SessionID), timeKey(msg.CreatedAt)...), msg)
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("appending message: %w", err)
	}
	return msg, nil
}

func (s *BadgerStore) ListMessages(_ context.Context, sessionID string) ([]domain.Message, error) {
	return scanJSON(s.db, messagesOf(sessionID), func(m domain.Message) bool {
		return m.SessionID == sessionID
	})
}

func (s *BadgerStore) AppendRequestLog(_ context.Context, entry domain.AIRequestLog) (domain.AIRequestLog, error) {
	err := s.db.Update(func(txn *badger.Txn) error {
		if entry.SessionID != nil {
			if _, err := txn.Get(sessionKey(*entry.SessionID)); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return errors.ErrSessionNotFound
				}
				return err
			}
		}
		id, err := s.nextID(requestPrefix)
		if err != nil {
			return err
		}
		entry.ID = id
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = time.Now().UTC()
		}
		return setJSON(txn, []byte(requestPrefix+timeKey(entry.CreatedAt)), entry)
	})
	if err != nil {
		return domain.AIRequestLog{}, fmt.Errorf("appending request log: %w", err)
	}
	return entry, nil
}

func (s *BadgerStore) ListRequestLogs(_ context.Context, sessionID string) ([]domain.AIRequestLog, error) {
	return scanJSON(s.db, []byte(requestPrefix), func(e domain.AIRequestLog) bool {
		return e.SessionID != nil && *e.SessionID == sessionID
	})
}

func scanJSON[T any](db *badger.DB, prefix []byte, keep func(T) bool) ([]T, error) {
	var out []T
	err := db.View(func(txn *badger.Txn) error {
		var err error
		out, err = scanJSONTxn(txn, prefix, keep)
		return err
	})
	return out, err
}

func scanJSONTxn[T any](txn *badger.Txn, prefix []byte, keep func(T) bool) ([]T, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	out := make([]T, 0)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var v T
		if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &v) }); err != nil {
			return nil, err
		}
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}
