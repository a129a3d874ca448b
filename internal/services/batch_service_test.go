package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/repositories"
)

func batchRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "batch_name", "departure_date", "return_date",
		"total_seats", "booked_seats", "status", "price",
		"description", "itinerary", "inclusions", "exclusions",
		"hotel_details", "transport_details", "meal_plan",
		"created_at", "updated_at",
	})
}

func addBatchRow(rows *sqlmock.Rows, id int64, name string, total, booked int, status string) *sqlmock.Rows {
	return rows.AddRow(id, name, "2026-10-01", "2026-11-10",
		total, booked, status, "250000.00",
		"", "", "", "", "", "", "",
		"2026-01-01 10:00:00", "2026-01-01 10:00:00")
}

func newBatchService(t *testing.T) (BatchService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BatchService{Repo: repositories.BatchRepository{DB: db}}
	return svc, mock, func() { db.Close() }
}

func TestBatchCreateAppliesDefaults(t *testing.T) {
	svc, mock, done := newBatchService(t)
	defer done()

	mock.ExpectExec("INSERT INTO batches").
		WithArgs("B1", nil, nil, models.DefaultTotalSeats, models.BatchStatusOpen,
			sqlmock.AnyArg(), "", "", "", "", "", "", "").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT(.|\n)*FROM batches WHERE id = \\?").
		WithArgs(int64(7)).
		WillReturnRows(addBatchRow(batchRows(), 7, "B1", models.DefaultTotalSeats, 0, models.BatchStatusOpen))

	created, err := svc.Create(models.Batch{BatchName: " B1 "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.TotalSeats != models.DefaultTotalSeats {
		t.Fatalf("total_seats default not applied, got %d", created.TotalSeats)
	}
	if created.Status != models.BatchStatusOpen {
		t.Fatalf("status default not applied, got %q", created.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBatchCreateRequiresName(t *testing.T) {
	svc, _, done := newBatchService(t)
	defer done()

	_, err := svc.Create(models.Batch{BatchName: "   "})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBatchCreateDuplicateName(t *testing.T) {
	svc, mock, done := newBatchService(t)
	defer done()

	mock.ExpectExec("INSERT INTO batches").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate"})

	_, err := svc.Create(models.Batch{BatchName: "B1"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "Batch name already exists" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestBatchUpdateRefusesSeatShrinkBelowBooked(t *testing.T) {
	svc, mock, done := newBatchService(t)
	defer done()

	mock.ExpectQuery("SELECT(.|\n)*FROM batches WHERE id = \\?").
		WithArgs(int64(3)).
		WillReturnRows(addBatchRow(batchRows(), 3, "B3", 150, 10, models.BatchStatusOpen))

	smaller := 5
	_, err := svc.Update(3, models.BatchPatch{TotalSeats: &smaller})
	if !domain.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestBatchDeleteRefusedWhileTravelersAssigned(t *testing.T) {
	svc, mock, done := newBatchService(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM travelers WHERE batch_id = \\?").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))

	err := svc.Delete(4)
	if !domain.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestBatchDeleteWhenEmpty(t *testing.T) {
	svc, mock, done := newBatchService(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM travelers WHERE batch_id = \\?").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("DELETE FROM batches WHERE id = \\?").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Delete(4); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
