package repositories

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"alhudha-backend/internal/domain/models"
)

func TestIncrementBookedBounded(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := BatchRepository{DB: db}

	mock.ExpectExec("UPDATE batches SET booked_seats = booked_seats \\+ 1(.|\n)*booked_seats < total_seats").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.IncrementBooked(db, 1)
	if err != nil || !ok {
		t.Fatalf("expected seat taken, got ok=%v err=%v", ok, err)
	}

	// zero rows affected means the batch is full
	mock.ExpectExec("UPDATE batches SET booked_seats = booked_seats \\+ 1").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.IncrementBooked(db, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Fatalf("full batch must not report a taken seat")
	}
}

func TestDecrementBookedClampsAtZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := BatchRepository{DB: db}

	mock.ExpectExec("UPDATE batches SET booked_seats = CASE WHEN booked_seats > 0").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DecrementBooked(db, 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBatchUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := BatchRepository{DB: db}

	mock.ExpectExec("UPDATE batches SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(models.Batch{ID: 99, BatchName: "gone"}); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
