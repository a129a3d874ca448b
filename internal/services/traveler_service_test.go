package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/repositories"
)

func travelerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "passport_name", "batch_id",
		"batch_name", "passport_no", "passport_issue_date", "passport_expiry_date",
		"passport_status", "gender", "dob", "mobile", "email",
		"aadhaar", "pan", "aadhaar_pan_linked", "vaccine_status", "wheelchair",
		"place_of_birth", "place_of_issue", "passport_address",
		"father_name", "mother_name", "spouse_name",
		"passport_scan", "aadhaar_scan", "pan_scan", "vaccine_scan", "photo_scan",
		"extra_fields", "pin", "created_at", "updated_at", "created_by", "updated_by",
	})
}

func addTravelerRow(rows *sqlmock.Rows, id int64, passport string, batchID any) *sqlmock.Rows {
	return rows.AddRow(id, "A", "K", "A K", batchID,
		"B1", passport, "", "",
		models.DefaultPassportStatus, "", "", "9000000001", "",
		"", "", models.DefaultAadhaarLinked, models.DefaultVaccineStatus, models.DefaultWheelchair,
		"", "", "",
		"", "", "",
		"", "", "", "", "",
		"{}", models.DefaultPIN, "2026-01-01 10:00:00", "2026-01-01 10:00:00", nil, nil)
}

func newTravelerService(t *testing.T) (TravelerService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := TravelerService{
		Repo:      repositories.TravelerRepository{DB: db},
		BatchRepo: repositories.BatchRepository{DB: db},
		DB:        db,
	}
	return svc, mock, func() { db.Close() }
}

func validTraveler(batchID *int64) models.Traveler {
	return models.Traveler{
		FirstName:  "A",
		LastName:   "K",
		PassportNo: "P100",
		Mobile:     "9000000001",
		BatchID:    batchID,
	}
}

func TestTravelerCreateTakesSeatInOneTransaction(t *testing.T) {
	svc, mock, done := newTravelerService(t)
	defer done()

	batchID := int64(2)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO travelers").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("UPDATE batches SET booked_seats = booked_seats \\+ 1").
		WithArgs(batchID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT(.|\n)*FROM travelers t LEFT JOIN batches b").
		WithArgs(int64(9)).
		WillReturnRows(addTravelerRow(travelerRows(), 9, "P100", batchID))

	created, err := svc.Create(validTraveler(&batchID), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID != 9 {
		t.Fatalf("unexpected id %d", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTravelerCreateRejectsFullBatch(t *testing.T) {
	svc, mock, done := newTravelerService(t)
	defer done()

	batchID := int64(2)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO travelers").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("UPDATE batches SET booked_seats = booked_seats \\+ 1").
		WithArgs(batchID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Create(validTraveler(&batchID), nil)
	if !domain.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	if err.Error() != "Batch full" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTravelerCreateUnknownBatchRejected(t *testing.T) {
	svc, mock, done := newTravelerService(t)
	defer done()

	batchID := int64(9999)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO travelers").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "a foreign key constraint fails"})
	mock.ExpectRollback()

	_, err := svc.Create(validTraveler(&batchID), nil)
	if !domain.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	if err.Error() != "Referenced record does not exist" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTravelerCreateDuplicatePassport(t *testing.T) {
	svc, mock, done := newTravelerService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO travelers").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate"})
	mock.ExpectRollback()

	_, err := svc.Create(validTraveler(nil), nil)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "Duplicate passport number" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestTravelerCreateRequiredFields(t *testing.T) {
	svc, _, done := newTravelerService(t)
	defer done()

	_, err := svc.Create(models.Traveler{FirstName: "A"}, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTravelerDeleteReleasesSeat(t *testing.T) {
	svc, mock, done := newTravelerService(t)
	defer done()

	batchID := int64(3)

	mock.ExpectQuery("SELECT(.|\n)*FROM travelers t LEFT JOIN batches b").
		WithArgs(int64(5)).
		WillReturnRows(addTravelerRow(travelerRows(), 5, "P100", batchID))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM travelers").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE batches SET booked_seats = CASE").
		WithArgs(batchID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Delete(5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTravelerReassignMovesSeatAtomically(t *testing.T) {
	svc, mock, done := newTravelerService(t)
	defer done()

	oldBatch, newBatch := int64(1), int64(2)

	mock.ExpectQuery("SELECT(.|\n)*FROM travelers t LEFT JOIN batches b").
		WithArgs(int64(5)).
		WillReturnRows(addTravelerRow(travelerRows(), 5, "P100", oldBatch))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE batches SET booked_seats = CASE").
		WithArgs(oldBatch).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE batches SET booked_seats = booked_seats \\+ 1").
		WithArgs(newBatch).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE travelers SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT(.|\n)*FROM travelers t LEFT JOIN batches b").
		WithArgs(int64(5)).
		WillReturnRows(addTravelerRow(travelerRows(), 5, "P100", newBatch))

	in := validTraveler(&newBatch)
	updated, err := svc.Update(5, in, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.BatchID == nil || *updated.BatchID != newBatch {
		t.Fatalf("batch not reassigned: %+v", updated.BatchID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNormalizeExtraFieldsAcceptsObjectString(t *testing.T) {
	out, err := normalizeExtraFields([]byte(`"{\"visa\":\"done\"}"`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(out) != `{"visa":"done"}` {
		t.Fatalf("unexpected normalisation: %s", out)
	}

	if _, err := normalizeExtraFields([]byte(`[1,2]`)); err == nil {
		t.Fatalf("expected arrays to be rejected")
	}
}
