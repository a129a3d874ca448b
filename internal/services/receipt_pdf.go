package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	intconfig "alhudha-backend/internal/config"
	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/repositories"
)

// ReceiptPDFService renders payment receipts as downloadable PDFs with the
// agency identity from company settings on top.
type ReceiptPDFService struct {
	Payments repositories.PaymentRepository
	Company  repositories.CompanyRepository
	DB       *sql.DB
}

// Generate builds the receipt PDF for a payment. Only payments that carry a
// receipt row produce one.
func (s ReceiptPDFService) Generate(paymentID int64) ([]byte, string, error) {
	q := s.DB
	if q == nil {
		q = intconfig.DB
	}
	if q == nil {
		return nil, "", domain.UnavailableError{}
	}
	rec, err := s.Payments.GetReceiptByPayment(q, paymentID)
	if err == sql.ErrNoRows {
		return nil, "", domain.NotFoundError{Resource: "Receipt"}
	}
	if err != nil {
		return nil, "", intdb.ClassifyError(err)
	}
	pay, err := s.Payments.GetByID(paymentID)
	if err == sql.ErrNoRows {
		return nil, "", domain.NotFoundError{Resource: "Payment"}
	}
	if err != nil {
		return nil, "", intdb.ClassifyError(err)
	}
	company, err := s.Company.Get()
	if err != nil && err != sql.ErrNoRows {
		return nil, "", intdb.ClassifyError(err)
	}
	return buildReceiptPDF(rec, pay, company)
}

func buildReceiptPDF(rec models.Receipt, pay models.Payment, company models.CompanySettings) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	name := fallback(company.DisplayName, fallback(company.LegalName, "Alhudha Haj & Umrah Services"))
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, name)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range companyAddressLines(company) {
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 9, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	rows := []string{
		fmt.Sprintf("Receipt No     : %s", rec.ReceiptNumber),
		fmt.Sprintf("Payment Date   : %s", fallback(pay.PaymentDate, "-")),
		fmt.Sprintf("Received From  : %s", fallback(pay.TravelerName, "-")),
		fmt.Sprintf("Passport No    : %s", fallback(pay.PassportNo, "-")),
		fmt.Sprintf("Installment    : %s", fallback(pay.Installment, "-")),
		fmt.Sprintf("Payment Method : %s", fallback(pay.PaymentMethod, "-")),
		fmt.Sprintf("Transaction ID : %s", fallback(pay.TransactionID, "-")),
	}
	for _, r := range rows {
		pdf.Cell(0, 7, r)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Amount Received: Rs. %s", rec.Amount.String()))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "This is a system generated receipt and does not require a signature.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	return buf.Bytes(), fmt.Sprintf("%s.pdf", rec.ReceiptNumber), nil
}

func companyAddressLines(c models.CompanySettings) []string {
	var lines []string
	if c.AddressLine1 != "" {
		lines = append(lines, c.AddressLine1)
	}
	if c.AddressLine2 != "" {
		lines = append(lines, c.AddressLine2)
	}
	var locality []string
	for _, p := range []string{c.City, c.State, c.PinCode} {
		if p != "" {
			locality = append(locality, p)
		}
	}
	if len(locality) > 0 {
		lines = append(lines, strings.Join(locality, ", "))
	}
	var contact []string
	if c.Phone != "" {
		contact = append(contact, "Ph: "+c.Phone)
	}
	if c.Email != "" {
		contact = append(contact, c.Email)
	}
	if len(contact) > 0 {
		lines = append(lines, strings.Join(contact, "  "))
	}
	if c.GSTIN != "" {
		lines = append(lines, "GSTIN: "+c.GSTIN)
	}
	return lines
}

func fallback(v, alt string) string {
	if strings.TrimSpace(v) == "" {
		return alt
	}
	return v
}
