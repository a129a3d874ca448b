package services

import (
	"database/sql"
	"encoding/json"
	"strings"

	intconfig "alhudha-backend/internal/config"
	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/repositories"
	"alhudha-backend/internal/utils"
)

// TravelerService owns the seat-inventory invariant: every write that moves
// a traveler in or out of a batch adjusts booked_seats in the same
// transaction.
type TravelerService struct {
	Repo      repositories.TravelerRepository
	BatchRepo repositories.BatchRepository
	DB        *sql.DB
	RequestID string
}

func (s TravelerService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TravelerService) ListFull() ([]models.Traveler, error) {
	out, err := s.Repo.ListFull()
	if err != nil {
		return nil, intdb.ClassifyError(err)
	}
	return out, nil
}

func (s TravelerService) ListPublic() ([]models.PublicTraveler, error) {
	out, err := s.Repo.ListPublic(50)
	if err != nil {
		return nil, intdb.ClassifyError(err)
	}
	return out, nil
}

func (s TravelerService) Get(id int64) (models.Traveler, error) {
	t, err := s.Repo.GetByID(id)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "Traveler"}
	}
	if err != nil {
		return t, intdb.ClassifyError(err)
	}
	return t, nil
}

func (s TravelerService) GetByPassport(passportNo string) (models.Traveler, error) {
	t, err := s.Repo.GetByPassport(strings.TrimSpace(passportNo))
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "Traveler"}
	}
	if err != nil {
		return t, intdb.ClassifyError(err)
	}
	return t, nil
}

// Create inserts the traveler and, when a batch is named, takes one seat in
// the same transaction. A full batch rejects the whole operation.
func (s TravelerService) Create(t models.Traveler, actorID *int64) (models.Traveler, error) {
	if err := validateTraveler(&t); err != nil {
		return t, err
	}
	extra, err := normalizeExtraFields(t.ExtraFields)
	if err != nil {
		return t, err
	}
	t.ExtraFields = extra
	applyTravelerDefaults(&t)
	t.CreatedBy = actorID
	t.UpdatedBy = actorID

	tx, err := s.db().Begin()
	if err != nil {
		return t, intdb.ClassifyError(err)
	}
	defer tx.Rollback()

	id, err := s.Repo.Insert(tx, t)
	if intdb.IsDuplicate(err) {
		return t, domain.ConflictError{Msg: "Duplicate passport number", Err: err}
	}
	if err != nil {
		return t, intdb.ClassifyError(err)
	}

	if t.BatchID != nil {
		ok, err := s.BatchRepo.IncrementBooked(tx, *t.BatchID)
		if err != nil {
			return t, intdb.ClassifyError(err)
		}
		if !ok {
			return t, domain.PreconditionError{Msg: "Batch full"}
		}
	}

	if err := tx.Commit(); err != nil {
		return t, intdb.ClassifyError(err)
	}

	utils.LogEvent(s.RequestID, "traveler", "create", t.PassportNo)
	return s.Get(id)
}

// Update replaces the full record. A batch reassignment releases the old
// seat and takes the new one atomically with the row update.
func (s TravelerService) Update(id int64, t models.Traveler, actorID *int64) (models.Traveler, error) {
	existing, err := s.Get(id)
	if err != nil {
		return t, err
	}

	if err := validateTraveler(&t); err != nil {
		return t, err
	}
	extra, err := normalizeExtraFields(t.ExtraFields)
	if err != nil {
		return t, err
	}
	t.ExtraFields = extra
	applyTravelerDefaults(&t)
	t.ID = id
	t.UpdatedBy = actorID

	tx, err := s.db().Begin()
	if err != nil {
		return t, intdb.ClassifyError(err)
	}
	defer tx.Rollback()

	oldBatch, newBatch := existing.BatchID, t.BatchID
	if !sameBatch(oldBatch, newBatch) {
		if oldBatch != nil {
			if err := s.BatchRepo.DecrementBooked(tx, *oldBatch); err != nil {
				return t, intdb.ClassifyError(err)
			}
		}
		if newBatch != nil {
			ok, err := s.BatchRepo.IncrementBooked(tx, *newBatch)
			if err != nil {
				return t, intdb.ClassifyError(err)
			}
			if !ok {
				return t, domain.PreconditionError{Msg: "Batch full"}
			}
		}
	}

	err = s.Repo.Update(tx, t)
	if intdb.IsDuplicate(err) {
		return t, domain.ConflictError{Msg: "Duplicate passport number", Err: err}
	}
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "Traveler"}
	}
	if err != nil {
		return t, intdb.ClassifyError(err)
	}

	if err := tx.Commit(); err != nil {
		return t, intdb.ClassifyError(err)
	}

	utils.LogEvent(s.RequestID, "traveler", "update", t.PassportNo)
	return s.Get(id)
}

// Delete removes the traveler, releases their seat, and lets the database
// cascade the payments away; all one transaction.
func (s TravelerService) Delete(id int64) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return intdb.ClassifyError(err)
	}
	defer tx.Rollback()

	if err := s.Repo.Delete(tx, id); err != nil {
		if err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "Traveler"}
		}
		return intdb.ClassifyError(err)
	}
	if existing.BatchID != nil {
		if err := s.BatchRepo.DecrementBooked(tx, *existing.BatchID); err != nil {
			return intdb.ClassifyError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return intdb.ClassifyError(err)
	}

	utils.LogEvent(s.RequestID, "traveler", "delete", existing.PassportNo)
	return nil
}

// LoginByPIN backs traveler self-service login. Failures are always the
// same generic message.
func (s TravelerService) LoginByPIN(passportNo, pin string) (models.Traveler, error) {
	t, err := s.Repo.GetByPassport(strings.TrimSpace(passportNo))
	if err == sql.ErrNoRows {
		return t, domain.UnauthorizedError{Msg: "Invalid credentials"}
	}
	if err != nil {
		return t, intdb.ClassifyError(err)
	}
	if t.PIN == "" || t.PIN != strings.TrimSpace(pin) {
		return t, domain.UnauthorizedError{Msg: "Invalid credentials"}
	}
	return t, nil
}

// StatsSummary backs the dashboard cards.
func (s TravelerService) StatsSummary() (map[string]int, error) {
	total, active, open, today, err := s.Repo.StatsSummary()
	if err != nil {
		return nil, intdb.ClassifyError(err)
	}
	return map[string]int{
		"total_travelers":     total,
		"active_travelers":    active,
		"open_batches":        open,
		"today_registrations": today,
	}, nil
}

func validateTraveler(t *models.Traveler) error {
	t.FirstName = strings.TrimSpace(t.FirstName)
	t.LastName = strings.TrimSpace(t.LastName)
	t.PassportNo = strings.TrimSpace(t.PassportNo)
	t.Mobile = strings.TrimSpace(t.Mobile)

	for field, v := range map[string]string{
		"first_name":  t.FirstName,
		"last_name":   t.LastName,
		"passport_no": t.PassportNo,
		"mobile":      t.Mobile,
	} {
		if v == "" {
			return domain.ValidationError{Field: field, Msg: "is required"}
		}
	}
	return nil
}

func applyTravelerDefaults(t *models.Traveler) {
	if t.PassportStatus == "" {
		t.PassportStatus = models.DefaultPassportStatus
	}
	if t.AadhaarPANLinked == "" {
		t.AadhaarPANLinked = models.DefaultAadhaarLinked
	}
	if t.VaccineStatus == "" {
		t.VaccineStatus = models.DefaultVaccineStatus
	}
	if t.Wheelchair == "" {
		t.Wheelchair = models.DefaultWheelchair
	}
	if t.PIN == "" {
		t.PIN = models.DefaultPIN
	}
}

// normalizeExtraFields accepts either a JSON object or a JSON string holding
// one, and stores the object form.
func normalizeExtraFields(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return json.RawMessage(`{}`), nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			return nil, domain.ValidationError{Field: "extra_fields", Msg: "must be a JSON object"}
		}
		trimmed = strings.TrimSpace(inner)
		if trimmed == "" {
			return json.RawMessage(`{}`), nil
		}
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, domain.ValidationError{Field: "extra_fields", Msg: "must be a JSON object"}
	}
	normalized, err := json.Marshal(obj)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return normalized, nil
}

func sameBatch(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
