package repositories

import (
	"database/sql"

	intconfig "alhudha-backend/internal/config"
	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// currentStatus projects the overdue flag; it is never stored.
const currentStatus = `
	CASE WHEN p.status = 'pending' AND p.due_date IS NOT NULL AND p.due_date < CURDATE()
		THEN 'overdue' ELSE p.status END`

// ledgerOrder lists overdue-pending first, then pending, then the rest,
// each bucket newest payment first.
const ledgerOrder = `
	ORDER BY CASE
		WHEN p.status = 'pending' AND p.due_date IS NOT NULL AND p.due_date < CURDATE() THEN 0
		WHEN p.status = 'pending' THEN 1
		ELSE 2
	END, p.payment_date DESC, p.id DESC`

const paymentColumns = `
	p.id, p.traveler_id, p.batch_id,
	COALESCE(t.passport_name, ''), COALESCE(t.passport_no, ''),
	COALESCE(p.installment, ''), p.amount,
	COALESCE(DATE_FORMAT(p.due_date, '%Y-%m-%d'), ''),
	DATE_FORMAT(p.payment_date, '%Y-%m-%d'),
	p.payment_method, COALESCE(p.transaction_id, ''), p.status,` +
	currentStatus + `,
	COALESCE(p.remarks, ''),
	DATE_FORMAT(p.created_at, '%Y-%m-%d %H:%i:%s'),
	p.recorded_by`

const paymentFrom = ` FROM payments p JOIN travelers t ON p.traveler_id = t.id `

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID, &p.TravelerID, &p.BatchID, &p.TravelerName, &p.PassportNo,
		&p.Installment, &p.Amount, &p.DueDate, &p.PaymentDate,
		&p.PaymentMethod, &p.TransactionID, &p.Status, &p.CurrentStatus,
		&p.Remarks, &p.CreatedAt, &p.RecordedBy,
	)
	return p, err
}

func (r PaymentRepository) collect(rows *sql.Rows, err error) ([]models.Payment, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PaymentRepository) List() ([]models.Payment, error) {
	return r.collect(r.db().Query(`SELECT` + paymentColumns + paymentFrom + ledgerOrder))
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	return scanPayment(r.db().QueryRow(`SELECT`+paymentColumns+paymentFrom+`WHERE p.id = ?`, id))
}

func (r PaymentRepository) ListByTraveler(travelerID int64) ([]models.Payment, error) {
	return r.collect(r.db().Query(`SELECT`+paymentColumns+paymentFrom+`WHERE p.traveler_id = ?`+ledgerOrder, travelerID))
}

func (r PaymentRepository) ListByBatch(batchID int64) ([]models.Payment, error) {
	return r.collect(r.db().Query(`SELECT`+paymentColumns+paymentFrom+`WHERE p.batch_id = ?`+ledgerOrder, batchID))
}

// Insert writes one ledger entry inside the caller's transaction.
func (r PaymentRepository) Insert(q Queryer, p models.Payment) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO payments (
			traveler_id, batch_id, installment, amount, due_date, payment_date,
			payment_method, transaction_id, status, remarks, recorded_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.TravelerID, p.BatchID, intdb.NullIfEmpty(p.Installment), p.Amount,
		nullDate(p.DueDate), p.PaymentDate, p.PaymentMethod,
		intdb.NullIfEmpty(p.TransactionID), p.Status,
		intdb.NullIfEmpty(p.Remarks), p.RecordedBy)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateDescriptors mutates the descriptor fields plus status. Amount is
// immutable once recorded; reversals compensate instead.
func (r PaymentRepository) UpdateDescriptors(q Queryer, p models.Payment) error {
	res, err := q.Exec(`
		UPDATE payments SET
			installment = ?, due_date = ?, payment_date = ?, payment_method = ?,
			transaction_id = ?, status = ?, remarks = ?
		WHERE id = ?`,
		intdb.NullIfEmpty(p.Installment), nullDate(p.DueDate), p.PaymentDate,
		p.PaymentMethod, intdb.NullIfEmpty(p.TransactionID), p.Status,
		intdb.NullIfEmpty(p.Remarks), p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

// GetForUpdate locks the payment row for a status transition.
func (r PaymentRepository) GetForUpdate(tx *sql.Tx, id int64) (models.Payment, error) {
	var p models.Payment
	err := tx.QueryRow(`
		SELECT id, traveler_id, batch_id, COALESCE(installment, ''), amount,
			COALESCE(DATE_FORMAT(due_date, '%Y-%m-%d'), ''),
			DATE_FORMAT(payment_date, '%Y-%m-%d'),
			payment_method, COALESCE(transaction_id, ''), status, COALESCE(remarks, '')
		FROM payments WHERE id = ? FOR UPDATE`, id).Scan(
		&p.ID, &p.TravelerID, &p.BatchID, &p.Installment, &p.Amount,
		&p.DueDate, &p.PaymentDate, &p.PaymentMethod, &p.TransactionID,
		&p.Status, &p.Remarks)
	return p, err
}

// MarkReversed flips the original to reversed and appends the reason.
func (r PaymentRepository) MarkReversed(tx *sql.Tx, id int64, reason string) error {
	_, err := tx.Exec(`
		UPDATE payments
		SET status = 'reversed',
		    remarks = TRIM(CONCAT(COALESCE(remarks, ''), ' | Reversed: ', ?))
		WHERE id = ?`, reason, id)
	return err
}

// InsertReceipt issues the receipt; the unique key on payment_id makes a
// double-issue race collapse to one row.
func (r PaymentRepository) InsertReceipt(q Queryer, rec models.Receipt) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO receipts (
			receipt_number, payment_id, traveler_id, amount, payment_method,
			transaction_id, receipt_type, installment
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ReceiptNumber, rec.PaymentID, rec.TravelerID, rec.Amount,
		intdb.NullIfEmpty(rec.PaymentMethod), intdb.NullIfEmpty(rec.TransactionID),
		intdb.NullIfEmpty(rec.ReceiptType), intdb.NullIfEmpty(rec.Installment))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) GetReceiptByPayment(q Queryer, paymentID int64) (models.Receipt, error) {
	var rec models.Receipt
	err := q.QueryRow(`
		SELECT id, receipt_number, payment_id, traveler_id, amount,
			COALESCE(payment_method, ''), COALESCE(transaction_id, ''),
			COALESCE(receipt_type, ''), COALESCE(installment, ''),
			DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
		FROM receipts WHERE payment_id = ?`, paymentID).Scan(
		&rec.ID, &rec.ReceiptNumber, &rec.PaymentID, &rec.TravelerID,
		&rec.Amount, &rec.PaymentMethod, &rec.TransactionID,
		&rec.ReceiptType, &rec.Installment, &rec.CreatedAt)
	return rec, err
}

// TotalsForTraveler aggregates the traveler's ledger in one round trip.
func (r PaymentRepository) TotalsForTraveler(travelerID int64) (models.TravelerTotals, error) {
	var (
		tot  models.TravelerTotals
		last sql.NullString
	)
	err := r.db().QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN status = 'completed' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(status = 'completed'), 0),
			COALESCE(SUM(status = 'pending'), 0),
			MAX(CASE WHEN status = 'completed' THEN DATE_FORMAT(payment_date, '%Y-%m-%d') END),
			COALESCE(SUM(status = 'pending' AND due_date IS NOT NULL AND due_date < CURDATE()), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' AND due_date IS NOT NULL AND due_date < CURDATE() THEN amount ELSE 0 END), 0)
		FROM payments WHERE traveler_id = ?`, travelerID).Scan(
		&tot.TotalPaid, &tot.TotalPending, &tot.PaidCount, &tot.PendingCount,
		&last, &tot.OverdueCount, &tot.OverdueAmount)
	if err != nil {
		return tot, err
	}
	tot.LastPaymentDate = last.String
	return tot, nil
}

// BatchSummary aggregates a batch's ledger.
func (r PaymentRepository) BatchSummary(batchID int64) (models.BatchPaymentSummary, error) {
	var s models.BatchPaymentSummary
	err := r.db().QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN status = 'completed' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0),
			COUNT(*),
			COUNT(DISTINCT traveler_id)
		FROM payments WHERE batch_id = ?`, batchID).Scan(
		&s.TotalCollected, &s.TotalPending, &s.PaymentCount, &s.TravelerCount)
	return s, err
}

// Stats returns the global breakdown: per-status, per-method (completed
// only), and a six-calendar-month window.
func (r PaymentRepository) Stats() (models.PaymentStats, error) {
	stats := models.PaymentStats{
		ByStatus: []models.StatusBreakdown{},
		ByMethod: []models.MethodTotal{},
		Monthly:  []models.MonthlyTotal{},
	}
	db := r.db()

	rows, err := db.Query(`
		SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments GROUP BY status`)
	if err != nil {
		return stats, err
	}
	for rows.Next() {
		var b models.StatusBreakdown
		if err := rows.Scan(&b.Status, &b.Count, &b.Total); err != nil {
			rows.Close()
			return stats, err
		}
		stats.ByStatus = append(stats.ByStatus, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return stats, err
	}
	rows.Close()

	rows, err = db.Query(`
		SELECT payment_method, COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments WHERE status = 'completed'
		GROUP BY payment_method ORDER BY SUM(amount) DESC`)
	if err != nil {
		return stats, err
	}
	for rows.Next() {
		var m models.MethodTotal
		if err := rows.Scan(&m.PaymentMethod, &m.Count, &m.Total); err != nil {
			rows.Close()
			return stats, err
		}
		stats.ByMethod = append(stats.ByMethod, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return stats, err
	}
	rows.Close()

	rows, err = db.Query(`
		SELECT DATE_FORMAT(payment_date, '%Y-%m'), COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments
		WHERE payment_date >= DATE_SUB(DATE_FORMAT(CURDATE(), '%Y-%m-01'), INTERVAL 5 MONTH)
		GROUP BY DATE_FORMAT(payment_date, '%Y-%m')
		ORDER BY 1`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var m models.MonthlyTotal
		if err := rows.Scan(&m.Month, &m.Count, &m.Total); err != nil {
			return stats, err
		}
		stats.Monthly = append(stats.Monthly, m)
	}
	return stats, rows.Err()
}

// TravelerBatch returns the traveler's current batch assignment, or a typed
// not-found. Inside a transaction the row lock holds the assignment stable
// until the ledger write commits, so a concurrent reassignment cannot slip
// between check and insert.
func (r PaymentRepository) TravelerBatch(q Queryer, travelerID int64) (*int64, error) {
	var batchID sql.NullInt64
	err := q.QueryRow(`SELECT batch_id FROM travelers WHERE id = ? FOR UPDATE`, travelerID).Scan(&batchID)
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundError{Resource: "Traveler"}
	}
	if err != nil {
		return nil, err
	}
	if !batchID.Valid {
		return nil, nil
	}
	v := batchID.Int64
	return &v, nil
}
