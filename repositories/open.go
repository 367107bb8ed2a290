package repositories

import (
	"fmt"
	"log/slog"
	"strings"
	"toni/errors"
)

const (
	badgerScheme = "badger://"
	sqliteScheme = "sqlite://"
	fileScheme   = "file:"
)

// SupportedSchemes lists the DATABASE_URL prefixes Open understands.
var SupportedSchemes = []string{badgerScheme, sqliteScheme, fileScheme}

// Open picks a backend from the DSN:
//
//	badger://<dir>                 embedded key-value store
//	sqlite://<path> or file:<path> embedded relational store
//
// An empty DSN means persistence is disabled.
func Open(dsn string, log *slog.Logger) (IStore, error) {
	return open(dsn, log, false)
}

// OpenReadOnly is Open for tools that only inspect the data.
func OpenReadOnly(dsn string, log *slog.Logger) (IStore, error) {
	return open(dsn, log, true)
}

func open(dsn string, log *slog.Logger, readOnly bool) (IStore, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, errors.ErrPersistenceDisabled
	case strings.HasPrefix(dsn, badgerScheme):
		return nonNil(OpenBadgerStore(strings.TrimPrefix(dsn, badgerScheme), log, readOnly))
	case strings.HasPrefix(dsn, sqliteScheme):
		return nonNil(OpenSQLStore(strings.TrimPrefix(dsn, sqliteScheme), log, readOnly))
	case strings.HasPrefix(dsn, fileScheme):
		return nonNil(OpenSQLStore(strings.TrimPrefix(dsn, fileScheme), log, readOnly))
	default:
		return nil, fmt.Errorf("%w: %s (supported: %s)", errors.ErrUnsupportedDatabase, redact(dsn), strings.Join(SupportedSchemes, ", "))
	}
}

// nonNil keeps a failed open from leaking a typed nil into the interface.
func nonNil(store IStore, err error) (IStore, error) {
	if err != nil {
		return nil, err
	}
	return store, nil
}

// redact keeps only the scheme so credentials never reach the logs.
func redact(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	return "..."
}
