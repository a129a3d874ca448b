package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "alhudha-backend/internal/config"
	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/repositories"
	"alhudha-backend/internal/utils"
)

// PaymentService owns the ledger invariants: one receipt per completed
// payment, reversals as compensating entries, originals never mutated.
type PaymentService struct {
	Repo      repositories.PaymentRepository
	DB        *sql.DB
	RequestID string
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s PaymentService) List() ([]models.Payment, error) {
	out, err := s.Repo.List()
	if err != nil {
		return nil, intdb.ClassifyError(err)
	}
	return out, nil
}

func (s PaymentService) Get(id int64) (models.Payment, error) {
	p, err := s.Repo.GetByID(id)
	if err == sql.ErrNoRows {
		return p, domain.NotFoundError{Resource: "Payment"}
	}
	if err != nil {
		return p, intdb.ClassifyError(err)
	}
	return p, nil
}

// GetWithReceipt returns the payment plus its receipt when one exists.
func (s PaymentService) GetWithReceipt(id int64) (models.Payment, *models.Receipt, error) {
	p, err := s.Get(id)
	if err != nil {
		return p, nil, err
	}
	rec, err := s.Repo.GetReceiptByPayment(s.db(), id)
	if err == sql.ErrNoRows {
		return p, nil, nil
	}
	if err != nil {
		return p, nil, intdb.ClassifyError(err)
	}
	return p, &rec, nil
}

func (s PaymentService) ListByTraveler(travelerID int64) ([]models.Payment, models.TravelerTotals, error) {
	payments, err := s.Repo.ListByTraveler(travelerID)
	if err != nil {
		return nil, models.TravelerTotals{}, intdb.ClassifyError(err)
	}
	totals, err := s.Repo.TotalsForTraveler(travelerID)
	if err != nil {
		return nil, totals, intdb.ClassifyError(err)
	}
	return payments, totals, nil
}

func (s PaymentService) ListByBatch(batchID int64) ([]models.Payment, models.BatchPaymentSummary, error) {
	payments, err := s.Repo.ListByBatch(batchID)
	if err != nil {
		return nil, models.BatchPaymentSummary{}, intdb.ClassifyError(err)
	}
	summary, err := s.Repo.BatchSummary(batchID)
	if err != nil {
		return nil, summary, intdb.ClassifyError(err)
	}
	return payments, summary, nil
}

func (s PaymentService) Stats() (models.PaymentStats, error) {
	stats, err := s.Repo.Stats()
	if err != nil {
		return stats, intdb.ClassifyError(err)
	}
	return stats, nil
}

// Create records a payment. A completed payment gets its receipt in the
// same transaction, numbered from the payment date and the new id.
func (s PaymentService) Create(p models.Payment, actorID *int64) (models.Payment, error) {
	if p.TravelerID <= 0 {
		return p, domain.ValidationError{Field: "traveler_id", Msg: "is required"}
	}
	if p.BatchID <= 0 {
		return p, domain.ValidationError{Field: "batch_id", Msg: "is required"}
	}
	if p.Amount <= 0 {
		return p, domain.ValidationError{Field: "amount", Msg: "must be greater than zero"}
	}
	p.PaymentMethod = strings.TrimSpace(p.PaymentMethod)
	if p.PaymentMethod == "" {
		return p, domain.ValidationError{Field: "payment_method", Msg: "is required"}
	}
	if _, err := utils.ParseDate(p.PaymentDate); err != nil {
		return p, domain.ValidationError{Field: "payment_date", Msg: "must be YYYY-MM-DD"}
	}
	if p.Status == "" {
		p.Status = models.PaymentStatusCompleted
	}
	if p.Status != models.PaymentStatusCompleted && p.Status != models.PaymentStatusPending {
		return p, domain.ValidationError{Field: "status", Msg: "must be completed or pending"}
	}
	if p.DueDate == "" {
		p.DueDate = utils.AddDays(p.PaymentDate, 30)
	} else if _, err := utils.ParseDate(p.DueDate); err != nil {
		return p, domain.ValidationError{Field: "due_date", Msg: "must be YYYY-MM-DD"}
	}

	p.RecordedBy = actorID

	tx, err := s.db().Begin()
	if err != nil {
		return p, intdb.ClassifyError(err)
	}
	defer tx.Rollback()

	batchID, err := s.Repo.TravelerBatch(tx, p.TravelerID)
	if err != nil {
		if domain.IsNotFound(err) {
			return p, err
		}
		return p, intdb.ClassifyError(err)
	}
	if batchID == nil || *batchID != p.BatchID {
		return p, domain.ValidationError{Field: "batch_id", Msg: "traveler is not assigned to this batch"}
	}

	id, err := s.Repo.Insert(tx, p)
	if err != nil {
		return p, intdb.ClassifyError(err)
	}

	if p.Status == models.PaymentStatusCompleted {
		if _, err := s.Repo.InsertReceipt(tx, receiptFor(p, id)); err != nil {
			return p, intdb.ClassifyError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return p, intdb.ClassifyError(err)
	}

	utils.LogEvent(s.RequestID, "payment", "create", fmt.Sprintf("traveler_id=%d amount=%s", p.TravelerID, p.Amount))
	return s.Get(id)
}

// Update mutates descriptor fields. The amount is immutable; a pending
// payment completing here gets its receipt issued idempotently.
func (s PaymentService) Update(id int64, in models.Payment) (models.Payment, error) {
	if in.Status != "" &&
		in.Status != models.PaymentStatusCompleted &&
		in.Status != models.PaymentStatusPending {
		return in, domain.ValidationError{Field: "status", Msg: "must be completed or pending"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return in, intdb.ClassifyError(err)
	}
	defer tx.Rollback()

	existing, err := s.Repo.GetForUpdate(tx, id)
	if err == sql.ErrNoRows {
		return in, domain.NotFoundError{Resource: "Payment"}
	}
	if err != nil {
		return in, intdb.ClassifyError(err)
	}
	if existing.Status == models.PaymentStatusReversed {
		return in, domain.PreconditionError{Msg: "Reversed payments cannot be updated"}
	}

	merged := existing
	if in.Installment != "" {
		merged.Installment = in.Installment
	}
	if in.DueDate != "" {
		if _, err := utils.ParseDate(in.DueDate); err != nil {
			return in, domain.ValidationError{Field: "due_date", Msg: "must be YYYY-MM-DD"}
		}
		merged.DueDate = in.DueDate
	}
	if in.PaymentDate != "" {
		if _, err := utils.ParseDate(in.PaymentDate); err != nil {
			return in, domain.ValidationError{Field: "payment_date", Msg: "must be YYYY-MM-DD"}
		}
		merged.PaymentDate = in.PaymentDate
	}
	if in.PaymentMethod != "" {
		merged.PaymentMethod = in.PaymentMethod
	}
	if in.TransactionID != "" {
		merged.TransactionID = in.TransactionID
	}
	if in.Remarks != "" {
		merged.Remarks = in.Remarks
	}
	if in.Status != "" {
		merged.Status = in.Status
	}

	if err := s.Repo.UpdateDescriptors(tx, merged); err != nil {
		return in, intdb.ClassifyError(err)
	}

	// pending -> completed issues the receipt; an existing one is reused
	if existing.Status == models.PaymentStatusPending && merged.Status == models.PaymentStatusCompleted {
		_, err := s.Repo.GetReceiptByPayment(tx, id)
		if err == sql.ErrNoRows {
			if _, err := s.Repo.InsertReceipt(tx, receiptFor(merged, id)); err != nil && !intdb.IsDuplicate(err) {
				return in, intdb.ClassifyError(err)
			}
		} else if err != nil {
			return in, intdb.ClassifyError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return in, intdb.ClassifyError(err)
	}

	utils.LogEvent(s.RequestID, "payment", "update", fmt.Sprintf("id=%d status=%s", id, merged.Status))
	return s.Get(id)
}

// Reverse flips a completed payment to reversed and appends the zero-summing
// compensating entry. Only completed payments reverse; the compensating
// entry never gets a receipt.
func (s PaymentService) Reverse(id int64, reason string, actorID *int64) (models.Payment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "No reason given"
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Payment{}, intdb.ClassifyError(err)
	}
	defer tx.Rollback()

	original, err := s.Repo.GetForUpdate(tx, id)
	if err == sql.ErrNoRows {
		return original, domain.NotFoundError{Resource: "Payment"}
	}
	if err != nil {
		return original, intdb.ClassifyError(err)
	}
	if original.Status != models.PaymentStatusCompleted {
		return original, domain.PreconditionError{Msg: "Only completed payments can be reversed"}
	}

	if err := s.Repo.MarkReversed(tx, id, reason); err != nil {
		return original, intdb.ClassifyError(err)
	}

	compensating := models.Payment{
		TravelerID:    original.TravelerID,
		BatchID:       original.BatchID,
		Installment:   original.Installment,
		Amount:        -original.Amount,
		PaymentDate:   utils.Today(),
		DueDate:       original.DueDate,
		PaymentMethod: original.PaymentMethod,
		TransactionID: "REV-" + original.TransactionID,
		Status:        models.PaymentStatusReversed,
		Remarks:       fmt.Sprintf("Reversal of payment %d: %s", id, reason),
		RecordedBy:    actorID,
	}
	if _, err := s.Repo.Insert(tx, compensating); err != nil {
		return original, intdb.ClassifyError(err)
	}

	if err := tx.Commit(); err != nil {
		return original, intdb.ClassifyError(err)
	}

	utils.LogEvent(s.RequestID, "payment", "reverse", fmt.Sprintf("id=%d", id))
	return s.Get(id)
}

// Receipt fetches the receipt for a payment, 404 when the payment has none.
func (s PaymentService) Receipt(paymentID int64) (models.Receipt, error) {
	if _, err := s.Get(paymentID); err != nil {
		return models.Receipt{}, err
	}
	rec, err := s.Repo.GetReceiptByPayment(s.db(), paymentID)
	if err == sql.ErrNoRows {
		return rec, domain.NotFoundError{Resource: "Receipt"}
	}
	if err != nil {
		return rec, intdb.ClassifyError(err)
	}
	return rec, nil
}

func receiptFor(p models.Payment, paymentID int64) models.Receipt {
	return models.Receipt{
		ReceiptNumber: fmt.Sprintf("REC-%s-%d", utils.CompactDate(p.PaymentDate), paymentID),
		PaymentID:     paymentID,
		TravelerID:    p.TravelerID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		ReceiptType:   "payment",
		Installment:   p.Installment,
	}
}
