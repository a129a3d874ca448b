package models

import "alhudha-backend/internal/domain"

// Payment statuses. "overdue" is never stored; it is the projected
// current_status of a pending payment past its due date.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusReversed  = "reversed"
	PaymentStatusOverdue   = "overdue"
)

// Payment is one ledger entry. Reversals never mutate the original amount;
// a compensating negative entry zero-sums it.
type Payment struct {
	ID            int64        `json:"id"`
	TravelerID    int64        `json:"traveler_id"`
	BatchID       int64        `json:"batch_id"`
	TravelerName  string       `json:"traveler_name,omitempty"`
	PassportNo    string       `json:"passport_no,omitempty"`
	Installment   string       `json:"installment,omitempty"`
	Amount        domain.Money `json:"amount"`
	DueDate       string       `json:"due_date,omitempty"`
	PaymentDate   string       `json:"payment_date"`
	PaymentMethod string       `json:"payment_method"`
	TransactionID string       `json:"transaction_id,omitempty"`
	Status        string       `json:"status"`
	CurrentStatus string       `json:"current_status,omitempty"`
	Remarks       string       `json:"remarks,omitempty"`
	CreatedAt     string       `json:"created_at,omitempty"`
	RecordedBy    *int64       `json:"recorded_by,omitempty"`
}

// Receipt is auto-issued exactly once per completed payment and never lives
// without its payment.
type Receipt struct {
	ID            int64        `json:"id"`
	ReceiptNumber string       `json:"receipt_number"`
	PaymentID     int64        `json:"payment_id"`
	TravelerID    int64        `json:"traveler_id"`
	Amount        domain.Money `json:"amount"`
	PaymentMethod string       `json:"payment_method,omitempty"`
	TransactionID string       `json:"transaction_id,omitempty"`
	ReceiptType   string       `json:"receipt_type,omitempty"`
	Installment   string       `json:"installment,omitempty"`
	CreatedAt     string       `json:"created_at,omitempty"`
}

// TravelerTotals aggregates a traveler's ledger.
type TravelerTotals struct {
	TotalPaid       domain.Money `json:"total_paid"`
	TotalPending    domain.Money `json:"total_pending"`
	PaidCount       int          `json:"paid_count"`
	PendingCount    int          `json:"pending_count"`
	LastPaymentDate string       `json:"last_payment_date,omitempty"`
	OverdueCount    int          `json:"overdue_count"`
	OverdueAmount   domain.Money `json:"overdue_amount"`
}

// BatchPaymentSummary aggregates a batch's ledger.
type BatchPaymentSummary struct {
	TotalCollected domain.Money `json:"total_collected"`
	TotalPending   domain.Money `json:"total_pending"`
	PaymentCount   int          `json:"payment_count"`
	TravelerCount  int          `json:"traveler_count"`
}

// StatusBreakdown is one row of the global stats grouping.
type StatusBreakdown struct {
	Status string       `json:"status"`
	Count  int          `json:"count"`
	Total  domain.Money `json:"total"`
}

// MethodTotal sums completed payments per payment method.
type MethodTotal struct {
	PaymentMethod string       `json:"payment_method"`
	Count         int          `json:"count"`
	Total         domain.Money `json:"total"`
}

// MonthlyTotal is one calendar month of the six-month stats window.
type MonthlyTotal struct {
	Month string       `json:"month"`
	Count int          `json:"count"`
	Total domain.Money `json:"total"`
}

// PaymentStats is the /payments/stats payload.
type PaymentStats struct {
	ByStatus []StatusBreakdown `json:"by_status"`
	ByMethod []MethodTotal     `json:"by_method"`
	Monthly  []MonthlyTotal    `json:"monthly"`
}
