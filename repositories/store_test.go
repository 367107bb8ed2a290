package repositories

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
	"toni/domain"
	"toni/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreSuite runs the same contract against every backend.
type StoreSuite struct {
	suite.Suite
	open  func(t *testing.T) IStore
	store IStore
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open(s.T())
}

func (s *StoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func TestBadgerStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(t *testing.T) IStore {
		store, err := Open("badger://"+t.TempDir(), logs.GetLoggerFromLevel(slog.LevelDebug))
		require.NoError(t, err)
		return store
	}})
}

func TestSQLStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(t *testing.T) IStore {
		store, err := Open("sqlite://"+filepath.Join(t.TempDir(), "toni.db"), logs.GetLoggerFromLevel(slog.LevelDebug))
		require.NoError(t, err)
		return store
	}})
}

func (s *StoreSuite) TestDeviceUpsert() {
	req := s.Require()

	first, err := s.store.UpsertDevice(s.ctx, "192.168.1.20", lo.ToPtr("home"))
	req.NoError(err)
	req.Equal("192.168.1.20", first.DeviceIP)
	req.Equal("home", *first.DeviceSSID)

	time.Sleep(2 * time.Millisecond)
	second, err := s.store.UpsertDevice(s.ctx, "192.168.1.20", nil)
	req.NoError(err)
	req.Equal(first.ID, second.ID)
	req.Nil(second.DeviceSSID)
	req.True(second.LastSeen.After(first.LastSeen))
	req.True(second.CreatedAt.Equal(first.CreatedAt))

	got, err := s.store.GetDevice(s.ctx, "192.168.1.20")
	req.NoError(err)
	req.Equal(second.ID, got.ID)
	req.True(second.LastSeen.Equal(got.LastSeen))
}

func (s *StoreSuite) TestDeviceNotFound() {
	_, err := s.store.GetDevice(s.ctx, "10.0.0.1")
	s.Require().ErrorIs(err, errors.ErrDeviceNotFound)
}

func (s *StoreSuite) TestListDevicesMostRecentFirst() {
	req := s.Require()
	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		_, err := s.store.UpsertDevice(s.ctx, ip, nil)
		req.NoError(err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := s.store.UpsertDevice(s.ctx, "10.0.0.1", nil)
	req.NoError(err)

	devices, err := s.store.ListDevices(s.ctx)
	req.NoError(err)
	req.Equal([]string{"10.0.0.1", "10.0.0.3", "10.0.0.2"}, lo.Map(devices, func(d domain.Device, _ int) string { return d.DeviceIP }))
}

func (s *StoreSuite) TestTouchSessionKeepsOriginalDevice() {
	req := s.Require()

	created, err := s.store.TouchSession(s.ctx, "session_1", lo.ToPtr("10.0.0.7"))
	req.NoError(err)
	req.Equal("session_1", created.SessionID)

	time.Sleep(2 * time.Millisecond)
	touched, err := s.store.TouchSession(s.ctx, "session_1", lo.ToPtr("10.0.0.8"))
	req.NoError(err)
	req.Equal(created.ID, touched.ID)
	req.Equal("10.0.0.7", *touched.DeviceIP)
	req.True(touched.UpdatedAt.After(created.UpdatedAt))

	got, err := s.store.GetSession(s.ctx, "session_1")
	req.NoError(err)
	req.True(touched.UpdatedAt.Equal(got.UpdatedAt))
}

func (s *StoreSuite) TestSessionNotFound() {
	_, err := s.store.GetSession(s.ctx, "missing")
	s.Require().ErrorIs(err, errors.ErrSessionNotFound)
	s.Require().ErrorIs(s.store.DeleteSession(s.ctx, "missing"), errors.ErrSessionNotFound)
}

func (s *StoreSuite) TestMessagesInCreationOrder() {
	req := s.Require()
	_, err := s.store.TouchSession(s.ctx, "s", nil)
	req.NoError(err)

	at := time.Now().UTC()
	wide := domain.CameraWide
	inputs := []domain.Message{
		{SessionID: "s", Type: domain.MessageUser, Content: "这是哪里", ImageSize: lo.ToPtr(2048), CreatedAt: at},
		{SessionID: "s", Type: domain.MessageSecretary, Content: "我看看", ExpertName: lo.ToPtr("travel"), CameraDirective: &wide, CreatedAt: at.Add(time.Millisecond)},
		{SessionID: "s", Type: domain.MessageExpert, Content: "这是西湖", ExpertName: lo.ToPtr("travel"), ImageSize: lo.ToPtr(4096), CreatedAt: at.Add(2 * time.Millisecond)},
	}
	for _, m := range inputs {
		saved, err := s.store.AppendMessage(s.ctx, m)
		req.NoError(err)
		req.Positive(saved.ID)
	}

	got, err := s.store.ListMessages(s.ctx, "s")
	req.NoError(err)
	req.Len(got, 3)
	for i, m := range got {
		req.Equal(inputs[i].Type, m.Type)
		req.Equal(inputs[i].Content, m.Content)
		req.Equal(inputs[i].ExpertName, m.ExpertName)
		req.Equal(inputs[i].CameraDirective, m.CameraDirective)
		req.Equal(inputs[i].ImageSize, m.ImageSize)
		req.True(inputs[i].CreatedAt.Equal(m.CreatedAt))
	}
}

func (s *StoreSuite) TestMessageRequiresSession() {
	_, err := s.store.AppendMessage(s.ctx, domain.Message{SessionID: "ghost", Type: domain.MessageExpert, Content: "x"})
	s.Require().Error(err)
}

func (s *StoreSuite) TestMessagesDoNotLeakAcrossSimilarIDs() {
	req := s.Require()
	for _, id := range []string{"a", "a:b"} {
		_, err := s.store.TouchSession(s.ctx, id, nil)
		req.NoError(err)
		_, err = s.store.AppendMessage(s.ctx, domain.Message{SessionID: id, Type: domain.MessageUser, Content: id})
		req.NoError(err)
	}

	got, err := s.store.ListMessages(s.ctx, "a")
	req.NoError(err)
	req.Len(got, 1)
	req.Equal("a", got[0].Content)

	recent, err := s.store.RecentSessions(s.ctx, 0)
	req.NoError(err)
	for _, r := range recent {
		req.Equal(1, r.MessageCount, r.SessionID)
	}
}

func (s *StoreSuite) TestRecentSessions() {
	req := s.Require()
	for i, id := range []string{"s1", "s2", "s3"} {
		_, err := s.store.TouchSession(s.ctx, id, nil)
		req.NoError(err)
		for j := 0; j <= i; j++ {
			_, err := s.store.AppendMessage(s.ctx, domain.Message{SessionID: id, Type: domain.MessageUser, Content: "hi"})
			req.NoError(err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	_, err := s.store.TouchSession(s.ctx, "s1", nil)
	req.NoError(err)

	recent, err := s.store.RecentSessions(s.ctx, 2)
	req.NoError(err)
	req.Len(recent, 2)
	req.Equal("s1", recent[0].SessionID)
	req.Equal(1, recent[0].MessageCount)
	req.Equal("s3", recent[1].SessionID)
	req.Equal(3, recent[1].MessageCount)

	all, err := s.store.RecentSessions(s.ctx, -1)
	req.NoError(err)
	req.Len(all, 3)
}

func (s *StoreSuite) TestDeleteSessionCascades() {
	req := s.Require()
	_, err := s.store.TouchSession(s.ctx, "s", nil)
	req.NoError(err)
	_, err = s.store.AppendMessage(s.ctx, domain.Message{SessionID: "s", Type: domain.MessageUser, Content: "hi"})
	req.NoError(err)
	logged, err := s.store.AppendRequestLog(s.ctx, domain.AIRequestLog{
		SessionID:      lo.ToPtr("s"),
		RequestType:    domain.RequestSecretary,
		UserText:       "hi",
		ExpertName:     lo.ToPtr("chef"),
		ResponseTimeMs: lo.ToPtr(int64(420)),
	})
	req.NoError(err)
	req.Positive(logged.ID)

	entries, err := s.store.ListRequestLogs(s.ctx, "s")
	req.NoError(err)
	req.Len(entries, 1)
	req.Equal(int64(420), *entries[0].ResponseTimeMs)

	req.NoError(s.store.DeleteSession(s.ctx, "s"))

	_, err = s.store.GetSession(s.ctx, "s")
	req.ErrorIs(err, errors.ErrSessionNotFound)
	msgs, err := s.store.ListMessages(s.ctx, "s")
	req.NoError(err)
	req.Empty(msgs)
	entries, err = s.store.ListRequestLogs(s.ctx, "s")
	req.NoError(err)
	req.Empty(entries)
}

func (s *StoreSuite) TestRequestLogWithoutSession() {
	req := s.Require()
	entry, err := s.store.AppendRequestLog(s.ctx, domain.AIRequestLog{RequestType: domain.RequestExpert, UserText: "q"})
	req.NoError(err)
	req.Nil(entry.SessionID)
	req.False(entry.CreatedAt.IsZero())
}

func TestOpen(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should report disabled persistence for an empty DSN", func(t *testing.T) {
		_, err := Open("  ", log)
		require.ErrorIs(t, err, errors.ErrPersistenceDisabled)
	})

	t.Run("should reject unknown schemes without leaking credentials", func(t *testing.T) {
		req := require.New(t)
		_, err := Open("postgres://admin:hunter2@db:5432/toni", log)
		req.ErrorIs(err, errors.ErrUnsupportedDatabase)
		req.NotContains(err.Error(), "hunter2")
		req.Contains(err.Error(), "supported: badger://, sqlite://, file:")
	})

	t.Run("should open sqlite through a file DSN", func(t *testing.T) {
		req := require.New(t)
		store, err := Open("file:"+filepath.Join(t.TempDir(), "x.db"), log)
		req.NoError(err)
		req.IsType(&SQLStore{}, store)
		req.NoError(store.Close())
	})

	t.Run("should open badger read-only after a writer closed", func(t *testing.T) {
		req := require.New(t)
		dir := t.TempDir()
		store, err := Open("badger://"+dir, log)
		req.NoError(err)
		_, err = store.TouchSession(context.Background(), "s", nil)
		req.NoError(err)
		req.NoError(store.Close())

		ro, err := OpenReadOnly("badger://"+dir, log)
		req.NoError(err)
		defer ro.Close()
		got, err := ro.GetSession(context.Background(), "s")
		req.NoError(err)
		req.Equal("s", got.SessionID)
	})
}
