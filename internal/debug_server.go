package internal

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

// maxInspectRows caps one page so a large transcript prefix stays browsable.
const maxInspectRows = 500

var knownPrefixes = []string{"session:", "msg:", "device:", "req:", "seq:"}

type InspectRow struct {
	Key       string
	Kind      string
	Timestamp string
	Owner     string
	Detail    string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix    string
	Prefixes  []string
	Items     []InspectRow
	Stats     map[string]any
	Truncated bool
}

// DebugServer is a read-only browser over the raw Badger keyspace.
type DebugServer struct {
	db     *badger.DB
	log    *slog.Logger
	addr   string
	mapper RowMapper
	stats  StatsProvider
	tmpl   *template.Template
}

func NewDebugServer(db *badger.DB, log *slog.Logger, addr string, stats StatsProvider) *DebugServer {
	return &DebugServer{
		db:     db,
		log:    log,
		addr:   addr,
		mapper: KeyMapper,
		stats:  stats,
		tmpl:   template.Must(template.ParseFS(templatesFS, "inspect.html")),
	}
}

func (d *DebugServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /inspect", d.handleInspect)
	return mux
}

func (d *DebugServer) handleInspect(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = "session:"
	}

	data := PageData{Prefix: prefix, Prefixes: knownPrefixes, Stats: map[string]any{}}
	if d.stats != nil {
		data.Stats = d.stats()
	}

	err := d.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			if len(data.Items) == maxInspectRows {
				data.Truncated = true
				return nil
			}
			item := it.Item()
			if err := item.Value(func(val []byte) error {
				data.Items = append(data.Items, d.mapper(string(item.KeyCopy(nil)), val))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		d.log.Error("Inspect scan failed", "prefix", prefix, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := d.tmpl.Execute(w, data); err != nil {
		d.log.Warn("Inspect render failed", "error", err)
	}
}

// Run serves until ctx ends. A listen failure is logged and ends the worker
// since the inspector is optional.
func (d *DebugServer) Run(ctx context.Context) error {
	server := &http.Server{Addr: d.addr, Handler: d.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	d.log.Info("Debug inspector listening", "url", "http://"+d.addr+"/inspect")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		d.log.Warn("Debug inspector stopped", "error", err)
	}
	return nil
}

// KeyMapper understands the store key layouts:
// session:{id}, device:{ip}, msg:{session}:{nanos}:{uuid}, req:{nanos}:{uuid}.
func KeyMapper(key string, val []byte) InspectRow {
	kind, rest, _ := strings.Cut(key, ":")
	row := InspectRow{
		Key:       key,
		Kind:      kind,
		Timestamp: "--:--:--",
		Owner:     "-",
		Detail:    strconv.Itoa(len(val)) + " bytes",
	}

	switch kind {
	case "session", "device":
		row.Owner = rest
	case "msg":
		parts := strings.Split(rest, ":")
		if len(parts) >= 3 {
			row.Owner = strings.Join(parts[:len(parts)-2], ":")
			row.Timestamp = formatNanos(parts[len(parts)-2])
		}
	case "req":
		if ts, _, ok := strings.Cut(rest, ":"); ok {
			row.Timestamp = formatNanos(ts)
		}
	}
	return row
}

func formatNanos(s string) string {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return "--:--:--"
	}
	return time.Unix(0, n).UTC().Format("2006-01-02 15:04:05")
}
