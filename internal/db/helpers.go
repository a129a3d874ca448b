package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/go-sql-driver/mysql"

	"alhudha-backend/internal/domain"
)

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// MySQL server error numbers the edge cares about.
const (
	mysqlErrDupEntry        = 1062
	mysqlErrNoTable         = 1146
	mysqlErrBadSchema       = 1049
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
)

// IsDuplicate reports whether err is a unique-key violation.
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDupEntry
}

// ClassifyError translates driver errors into domain errors. Missing tables
// (migration still running) and dead connections surface as unavailable, so
// handlers answer 503 instead of crashing or leaking SQL strings.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return domain.UnavailableError{Err: err}
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDupEntry:
			return domain.ConflictError{Msg: "Database integrity error", Err: err}
		case mysqlErrNoReferencedRow:
			return domain.PreconditionError{Msg: "Referenced record does not exist", Err: err}
		case mysqlErrRowIsReferenced:
			return domain.PreconditionError{Msg: "Record is referenced by other data", Err: err}
		case mysqlErrNoTable, mysqlErrBadSchema:
			return domain.UnavailableError{Err: err}
		}
	}
	return domain.InternalError{Err: err}
}
