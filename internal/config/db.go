package config

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
)

// withFoundRows forces CLIENT_FOUND_ROWS so RowsAffected reports matched
// rows, not changed rows. Without it an UPDATE that resubmits a row's
// current values affects zero rows and repositories would misread that as
// a missing record.
func withFoundRows(dsn string) string {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return dsn
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN()
}

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// ConnectDB initializes the shared DB pool (idempotent). Callers check out a
// connection per request through the pool; nothing holds a connection across
// requests.
func ConnectDB(databaseURL string) (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB, nil
	}
	if databaseURL == "" {
		return nil, sql.ErrConnDone
	}

	db, err := sql.Open("mysql", withFoundRows(databaseURL))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		// keep the pool: the backend may come up later, handlers answer 503
		// until it does
		log.WithError(err).Warn("database not reachable yet")
	} else {
		log.Info("database connected")
	}

	DB = db
	return DB, nil
}

// EnsureDB pings the shared pool, returning an error when the backend is
// unreachable.
func EnsureDB() error {
	dbMu.Lock()
	db := DB
	dbMu.Unlock()

	if db == nil {
		return sql.ErrConnDone
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
