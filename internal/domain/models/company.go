package models

// CompanySettings is the single-row (id=1) agency identity used on receipts
// and the front page.
type CompanySettings struct {
	ID           int64  `json:"id"`
	LegalName    string `json:"legal_name"`
	DisplayName  string `json:"display_name"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	PinCode      string `json:"pin_code,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	Email        string `json:"email,omitempty"`
	Website      string `json:"website,omitempty"`
	GSTIN        string `json:"gstin,omitempty"`
	PAN          string `json:"pan,omitempty"`
	BankName     string `json:"bank_name,omitempty"`
	BankBranch   string `json:"bank_branch,omitempty"`
	AccountName  string `json:"account_name,omitempty"`
	AccountNo    string `json:"account_no,omitempty"`
	IFSCCode     string `json:"ifsc_code,omitempty"`
	UPIID        string `json:"upi_id,omitempty"`
}
