package repositories

import (
	"database/sql"
	"fmt"

	intconfig "alhudha-backend/internal/config"
	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain/models"
)

// Queryer is satisfied by *sql.DB and *sql.Tx.
type Queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

type TravelerRepository struct {
	DB *sql.DB
}

func (r TravelerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const travelerColumns = `
	t.id, t.first_name, t.last_name, t.passport_name, t.batch_id,
	COALESCE(b.batch_name, ''),
	t.passport_no,
	COALESCE(DATE_FORMAT(t.passport_issue_date, '%Y-%m-%d'), ''),
	COALESCE(DATE_FORMAT(t.passport_expiry_date, '%Y-%m-%d'), ''),
	t.passport_status, COALESCE(t.gender, ''),
	COALESCE(DATE_FORMAT(t.dob, '%Y-%m-%d'), ''),
	t.mobile, COALESCE(t.email, ''), COALESCE(t.aadhaar, ''), COALESCE(t.pan, ''),
	t.aadhaar_pan_linked, t.vaccine_status, t.wheelchair,
	COALESCE(t.place_of_birth, ''), COALESCE(t.place_of_issue, ''),
	COALESCE(t.passport_address, ''),
	COALESCE(t.father_name, ''), COALESCE(t.mother_name, ''), COALESCE(t.spouse_name, ''),
	COALESCE(t.passport_scan, ''), COALESCE(t.aadhaar_scan, ''), COALESCE(t.pan_scan, ''),
	COALESCE(t.vaccine_scan, ''), COALESCE(t.photo_scan, ''),
	COALESCE(t.extra_fields, '{}'),
	t.pin,
	DATE_FORMAT(t.created_at, '%Y-%m-%d %H:%i:%s'),
	DATE_FORMAT(t.updated_at, '%Y-%m-%d %H:%i:%s'),
	t.created_by, t.updated_by`

const travelerFrom = ` FROM travelers t LEFT JOIN batches b ON t.batch_id = b.id `

func scanTraveler(row interface{ Scan(...any) error }) (models.Traveler, error) {
	var (
		t     models.Traveler
		extra string
	)
	err := row.Scan(
		&t.ID, &t.FirstName, &t.LastName, &t.PassportName, &t.BatchID,
		&t.BatchName, &t.PassportNo, &t.PassportIssueDate, &t.PassportExpiryDate,
		&t.PassportStatus, &t.Gender, &t.DOB, &t.Mobile, &t.Email,
		&t.Aadhaar, &t.PAN, &t.AadhaarPANLinked, &t.VaccineStatus, &t.Wheelchair,
		&t.PlaceOfBirth, &t.PlaceOfIssue, &t.PassportAddress,
		&t.FatherName, &t.MotherName, &t.SpouseName,
		&t.PassportScan, &t.AadhaarScan, &t.PANScan, &t.VaccineScan, &t.PhotoScan,
		&extra, &t.PIN, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy, &t.UpdatedBy,
	)
	if err != nil {
		return t, err
	}
	t.ExtraFields = []byte(extra)
	return t, nil
}

// ListFull returns every traveler with all columns (authenticated listing).
func (r TravelerRepository) ListFull() ([]models.Traveler, error) {
	rows, err := r.db().Query(`SELECT` + travelerColumns + travelerFrom + `ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Traveler{}
	for rows.Next() {
		t, err := scanTraveler(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListPublic returns the public-safe columns, capped.
func (r TravelerRepository) ListPublic(limit int) ([]models.PublicTraveler, error) {
	rows, err := r.db().Query(`
		SELECT t.id, t.first_name, t.last_name, t.passport_no, t.mobile,
			COALESCE(b.batch_name, ''),
			DATE_FORMAT(t.created_at, '%Y-%m-%d %H:%i:%s')`+
		travelerFrom+`ORDER BY t.created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PublicTraveler{}
	for rows.Next() {
		var t models.PublicTraveler
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.PassportNo,
			&t.Mobile, &t.BatchName, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TravelerRepository) GetByID(id int64) (models.Traveler, error) {
	return scanTraveler(r.db().QueryRow(`SELECT`+travelerColumns+travelerFrom+`WHERE t.id = ?`, id))
}

func (r TravelerRepository) GetByPassport(passportNo string) (models.Traveler, error) {
	return scanTraveler(r.db().QueryRow(`SELECT`+travelerColumns+travelerFrom+`WHERE t.passport_no = ?`, passportNo))
}

// Insert writes the traveler row. Runs inside the caller's transaction when
// a seat increment accompanies it.
func (r TravelerRepository) Insert(q Queryer, t models.Traveler) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO travelers (
			first_name, last_name, batch_id, passport_no,
			passport_issue_date, passport_expiry_date, passport_status,
			gender, dob, mobile, email, aadhaar, pan,
			aadhaar_pan_linked, vaccine_status, wheelchair,
			place_of_birth, place_of_issue, passport_address,
			father_name, mother_name, spouse_name,
			passport_scan, aadhaar_scan, pan_scan, vaccine_scan, photo_scan,
			extra_fields, pin, created_by, updated_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.FirstName, t.LastName, t.BatchID, t.PassportNo,
		nullDate(t.PassportIssueDate), nullDate(t.PassportExpiryDate), t.PassportStatus,
		intdb.NullIfEmpty(t.Gender), nullDate(t.DOB), t.Mobile, intdb.NullIfEmpty(t.Email),
		intdb.NullIfEmpty(t.Aadhaar), intdb.NullIfEmpty(t.PAN),
		t.AadhaarPANLinked, t.VaccineStatus, t.Wheelchair,
		intdb.NullIfEmpty(t.PlaceOfBirth), intdb.NullIfEmpty(t.PlaceOfIssue), intdb.NullIfEmpty(t.PassportAddress),
		intdb.NullIfEmpty(t.FatherName), intdb.NullIfEmpty(t.MotherName), intdb.NullIfEmpty(t.SpouseName),
		intdb.NullIfEmpty(t.PassportScan), intdb.NullIfEmpty(t.AadhaarScan), intdb.NullIfEmpty(t.PANScan),
		intdb.NullIfEmpty(t.VaccineScan), intdb.NullIfEmpty(t.PhotoScan),
		string(t.ExtraFields), t.PIN, t.CreatedBy, t.UpdatedBy)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update writes the full record (traveler update is full-record per the API
// contract).
func (r TravelerRepository) Update(q Queryer, t models.Traveler) error {
	res, err := q.Exec(`
		UPDATE travelers SET
			first_name = ?, last_name = ?, batch_id = ?, passport_no = ?,
			passport_issue_date = ?, passport_expiry_date = ?, passport_status = ?,
			gender = ?, dob = ?, mobile = ?, email = ?, aadhaar = ?, pan = ?,
			aadhaar_pan_linked = ?, vaccine_status = ?, wheelchair = ?,
			place_of_birth = ?, place_of_issue = ?, passport_address = ?,
			father_name = ?, mother_name = ?, spouse_name = ?,
			passport_scan = ?, aadhaar_scan = ?, pan_scan = ?, vaccine_scan = ?, photo_scan = ?,
			extra_fields = ?, pin = ?, updated_by = ?
		WHERE id = ?`,
		t.FirstName, t.LastName, t.BatchID, t.PassportNo,
		nullDate(t.PassportIssueDate), nullDate(t.PassportExpiryDate), t.PassportStatus,
		intdb.NullIfEmpty(t.Gender), nullDate(t.DOB), t.Mobile, intdb.NullIfEmpty(t.Email),
		intdb.NullIfEmpty(t.Aadhaar), intdb.NullIfEmpty(t.PAN),
		t.AadhaarPANLinked, t.VaccineStatus, t.Wheelchair,
		intdb.NullIfEmpty(t.PlaceOfBirth), intdb.NullIfEmpty(t.PlaceOfIssue), intdb.NullIfEmpty(t.PassportAddress),
		intdb.NullIfEmpty(t.FatherName), intdb.NullIfEmpty(t.MotherName), intdb.NullIfEmpty(t.SpouseName),
		intdb.NullIfEmpty(t.PassportScan), intdb.NullIfEmpty(t.AadhaarScan), intdb.NullIfEmpty(t.PANScan),
		intdb.NullIfEmpty(t.VaccineScan), intdb.NullIfEmpty(t.PhotoScan),
		string(t.ExtraFields), t.PIN, t.UpdatedBy, t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

// Delete removes the traveler; payments cascade at the database level.
func (r TravelerRepository) Delete(q Queryer, id int64) error {
	res, err := q.Exec(`DELETE FROM travelers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

// UpdateSlot sets one document-slot column. column must come from
// models.DocumentSlots; anything else is a programming error.
func (r TravelerRepository) UpdateSlot(travelerID int64, column string, filename any) error {
	valid := false
	for _, c := range models.DocumentSlots {
		if c == column {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown document slot column %q", column)
	}
	res, err := r.db().Exec(`UPDATE travelers SET `+column+` = ? WHERE id = ?`, filename, travelerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	_ = n // zero rows is fine when the value is unchanged
	return err
}

// GetSlots returns the five document-slot filenames for one traveler.
func (r TravelerRepository) GetSlots(travelerID int64) (map[string]string, error) {
	var passport, aadhaar, pan, vaccine, photo sql.NullString
	err := r.db().QueryRow(`
		SELECT passport_scan, aadhaar_scan, pan_scan, vaccine_scan, photo_scan
		FROM travelers WHERE id = ?`, travelerID).
		Scan(&passport, &aadhaar, &pan, &vaccine, &photo)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"passport": passport.String,
		"aadhaar":  aadhaar.String,
		"pan":      pan.String,
		"vaccine":  vaccine.String,
		"photo":    photo.String,
	}, nil
}

// SlotFilenames collects every referenced slot filename across all
// travelers; the orphan sweep diffs the upload tree against it.
func (r TravelerRepository) SlotFilenames() (map[string]struct{}, error) {
	rows, err := r.db().Query(`
		SELECT passport_scan, aadhaar_scan, pan_scan, vaccine_scan, photo_scan
		FROM travelers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		slots := make([]sql.NullString, 5)
		if err := rows.Scan(&slots[0], &slots[1], &slots[2], &slots[3], &slots[4]); err != nil {
			return nil, err
		}
		for _, s := range slots {
			if s.Valid && s.String != "" {
				out[s.String] = struct{}{}
			}
		}
	}
	return out, rows.Err()
}

// FindSlotOwner locates the traveler and slot referencing filename, if any.
func (r TravelerRepository) FindSlotOwner(filename string) (int64, string, error) {
	for docType, column := range models.DocumentSlots {
		var id int64
		err := r.db().QueryRow(`SELECT id FROM travelers WHERE `+column+` = ? LIMIT 1`, filename).Scan(&id)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return 0, "", err
		}
		return id, docType, nil
	}
	return 0, "", sql.ErrNoRows
}

// StatsSummary backs the dashboard cards.
func (r TravelerRepository) StatsSummary() (total, active, openBatches, today int, err error) {
	db := r.db()
	if err = db.QueryRow(`SELECT COUNT(*) FROM travelers`).Scan(&total); err != nil {
		return
	}
	if err = db.QueryRow(`SELECT COUNT(*) FROM travelers WHERE passport_status = 'Active'`).Scan(&active); err != nil {
		return
	}
	if err = db.QueryRow(`SELECT COUNT(*) FROM batches WHERE status = 'Open'`).Scan(&openBatches); err != nil {
		return
	}
	err = db.QueryRow(`SELECT COUNT(*) FROM travelers WHERE DATE(created_at) = CURDATE()`).Scan(&today)
	return
}
