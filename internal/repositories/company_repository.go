package repositories

import (
	"database/sql"

	intconfig "alhudha-backend/internal/config"
	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain/models"
)

// CompanyRepository owns the single-row (id=1) company settings table.
type CompanyRepository struct {
	DB *sql.DB
}

func (r CompanyRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CompanyRepository) Get() (models.CompanySettings, error) {
	var c models.CompanySettings
	fields := []any{
		&c.ID, &c.LegalName, &c.DisplayName, &c.AddressLine1, &c.AddressLine2,
		&c.City, &c.State, &c.Country, &c.PinCode, &c.Phone, &c.Mobile,
		&c.Email, &c.Website, &c.GSTIN, &c.PAN, &c.BankName, &c.BankBranch,
		&c.AccountName, &c.AccountNo, &c.IFSCCode, &c.UPIID,
	}
	err := r.db().QueryRow(`
		SELECT id, COALESCE(legal_name, ''), COALESCE(display_name, ''),
			COALESCE(address_line1, ''), COALESCE(address_line2, ''),
			COALESCE(city, ''), COALESCE(state, ''), COALESCE(country, ''),
			COALESCE(pin_code, ''), COALESCE(phone, ''), COALESCE(mobile, ''),
			COALESCE(email, ''), COALESCE(website, ''), COALESCE(gstin, ''),
			COALESCE(pan, ''), COALESCE(bank_name, ''), COALESCE(bank_branch, ''),
			COALESCE(account_name, ''), COALESCE(account_no, ''),
			COALESCE(ifsc_code, ''), COALESCE(upi_id, '')
		FROM company_settings WHERE id = 1`).Scan(fields...)
	return c, err
}

func (r CompanyRepository) Upsert(c models.CompanySettings) error {
	_, err := r.db().Exec(`
		INSERT INTO company_settings (
			id, legal_name, display_name, address_line1, address_line2, city,
			state, country, pin_code, phone, mobile, email, website, gstin, pan,
			bank_name, bank_branch, account_name, account_no, ifsc_code, upi_id
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			legal_name = VALUES(legal_name), display_name = VALUES(display_name),
			address_line1 = VALUES(address_line1), address_line2 = VALUES(address_line2),
			city = VALUES(city), state = VALUES(state), country = VALUES(country),
			pin_code = VALUES(pin_code), phone = VALUES(phone), mobile = VALUES(mobile),
			email = VALUES(email), website = VALUES(website), gstin = VALUES(gstin),
			pan = VALUES(pan), bank_name = VALUES(bank_name), bank_branch = VALUES(bank_branch),
			account_name = VALUES(account_name), account_no = VALUES(account_no),
			ifsc_code = VALUES(ifsc_code), upi_id = VALUES(upi_id)`,
		intdb.NullIfEmpty(c.LegalName), intdb.NullIfEmpty(c.DisplayName),
		intdb.NullIfEmpty(c.AddressLine1), intdb.NullIfEmpty(c.AddressLine2),
		intdb.NullIfEmpty(c.City), intdb.NullIfEmpty(c.State),
		intdb.NullIfEmpty(c.Country), intdb.NullIfEmpty(c.PinCode),
		intdb.NullIfEmpty(c.Phone), intdb.NullIfEmpty(c.Mobile),
		intdb.NullIfEmpty(c.Email), intdb.NullIfEmpty(c.Website),
		intdb.NullIfEmpty(c.GSTIN), intdb.NullIfEmpty(c.PAN),
		intdb.NullIfEmpty(c.BankName), intdb.NullIfEmpty(c.BankBranch),
		intdb.NullIfEmpty(c.AccountName), intdb.NullIfEmpty(c.AccountNo),
		intdb.NullIfEmpty(c.IFSCCode), intdb.NullIfEmpty(c.UPIID))
	return err
}
