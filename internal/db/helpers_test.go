package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"alhudha-backend/internal/domain"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"duplicate key", &mysql.MySQLError{Number: 1062}, domain.IsConflict},
		{"missing parent row", &mysql.MySQLError{Number: 1452}, domain.IsPrecondition},
		{"row still referenced", &mysql.MySQLError{Number: 1451}, domain.IsPrecondition},
		{"missing table", &mysql.MySQLError{Number: 1146}, domain.IsUnavailable},
		{"missing schema", &mysql.MySQLError{Number: 1049}, domain.IsUnavailable},
		{"dead connection", driver.ErrBadConn, domain.IsUnavailable},
		{"closed pool", sql.ErrConnDone, domain.IsUnavailable},
		{"anything else", errors.New("boom"), domain.IsInternal},
	}
	for _, tc := range cases {
		got := ClassifyError(tc.err)
		if !tc.check(got) {
			t.Fatalf("%s: wrong class for %v, got %v", tc.name, tc.err, got)
		}
	}
	if ClassifyError(nil) != nil {
		t.Fatal("nil must stay nil")
	}
}

func TestClassifyForeignKeyMessage(t *testing.T) {
	got := ClassifyError(&mysql.MySQLError{Number: 1452})
	if got.Error() != "Referenced record does not exist" {
		t.Fatalf("unexpected message: %s", got.Error())
	}
}

func TestHasTable(t *testing.T) {
	dbc, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer dbc.Close()

	mock.ExpectQuery("SELECT table_name").
		WithArgs("batches").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("batches"))
	if !HasTable(dbc, "batches") {
		t.Fatal("expected table to be reported present")
	}

	mock.ExpectQuery("SELECT table_name").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	if HasTable(dbc, "missing") {
		t.Fatal("expected missing table to be reported absent")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
