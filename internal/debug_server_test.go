package internal

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"toni/domain"
	"toni/repositories"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestKeyMapper(t *testing.T) {
	nanos := "1740817800000000000"

	tests := []struct {
		key   string
		kind  string
		owner string
		ts    string
	}{
		{"session:session_1_abc", "session", "session_1_abc", "--:--:--"},
		{"device:10.0.0.1", "device", "10.0.0.1", "--:--:--"},
		{"msg:a:b:" + nanos + ":uuid", "msg", "a:b", "2025-03-01 08:30:00"},
		{"req:" + nanos + ":uuid", "req", "-", "2025-03-01 08:30:00"},
		{"seq:msg:", "seq", "-", "--:--:--"},
	}
	for _, tt := range tests {
		t.Run("should map "+tt.key, func(t *testing.T) {
			req := require.New(t)
			row := KeyMapper(tt.key, []byte("{}"))
			req.Equal(tt.kind, row.Kind)
			req.Equal(tt.owner, row.Owner)
			req.Equal(tt.ts, row.Timestamp)
			req.Equal("2 bytes", row.Detail)
		})
	}
}

func TestDebugServer(t *testing.T) {
	t.Run("should list the keys under a prefix", func(t *testing.T) {
		req := require.New(t)
		log := logs.GetLoggerFromLevel(slog.LevelDebug)
		store, err := repositories.OpenBadgerStore(t.TempDir(), log, false)
		req.NoError(err)
		defer store.Close()

		ctx := context.Background()
		_, err = store.TouchSession(ctx, "session_42", nil)
		req.NoError(err)
		_, err = store.AppendMessage(ctx, domain.Message{SessionID: "session_42", Type: domain.MessageUser, Content: "hi"})
		req.NoError(err)

		srv := NewDebugServer(store.DB(), log, "127.0.0.1:0", func() map[string]any {
			return map[string]any{"rss_bytes": 1}
		})
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inspect?prefix=msg:", nil))

		req.Equal(http.StatusOK, rec.Code)
		body := rec.Body.String()
		req.Contains(body, "1 keys under")
		req.Contains(body, "session_42")
		req.Contains(body, "rss_bytes: 1")
	})
}
