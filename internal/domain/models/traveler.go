package models

import "encoding/json"

// Traveler defaults applied on create.
const (
	DefaultPassportStatus = "Active"
	DefaultAadhaarLinked  = "No"
	DefaultVaccineStatus  = "Not Vaccinated"
	DefaultWheelchair     = "No"
	DefaultPIN            = "0000"
)

// Traveler is a pilgrim booked onto (or unassigned to) a batch. passport_name
// is a stored generated column; clients never write it. The five *_scan
// fields are document slots pointing into the upload tree.
type Traveler struct {
	ID                 int64           `json:"id"`
	FirstName          string          `json:"first_name"`
	LastName           string          `json:"last_name"`
	PassportName       string          `json:"passport_name"`
	BatchID            *int64          `json:"batch_id"`
	BatchName          string          `json:"batch_name,omitempty"`
	PassportNo         string          `json:"passport_no"`
	PassportIssueDate  string          `json:"passport_issue_date,omitempty"`
	PassportExpiryDate string          `json:"passport_expiry_date,omitempty"`
	PassportStatus     string          `json:"passport_status"`
	Gender             string          `json:"gender,omitempty"`
	DOB                string          `json:"dob,omitempty"`
	Mobile             string          `json:"mobile"`
	Email              string          `json:"email,omitempty"`
	Aadhaar            string          `json:"aadhaar,omitempty"`
	PAN                string          `json:"pan,omitempty"`
	AadhaarPANLinked   string          `json:"aadhaar_pan_linked"`
	VaccineStatus      string          `json:"vaccine_status"`
	Wheelchair         string          `json:"wheelchair"`
	PlaceOfBirth       string          `json:"place_of_birth,omitempty"`
	PlaceOfIssue       string          `json:"place_of_issue,omitempty"`
	PassportAddress    string          `json:"passport_address,omitempty"`
	FatherName         string          `json:"father_name,omitempty"`
	MotherName         string          `json:"mother_name,omitempty"`
	SpouseName         string          `json:"spouse_name,omitempty"`
	PassportScan       string          `json:"passport_scan,omitempty"`
	AadhaarScan        string          `json:"aadhaar_scan,omitempty"`
	PANScan            string          `json:"pan_scan,omitempty"`
	VaccineScan        string          `json:"vaccine_scan,omitempty"`
	PhotoScan          string          `json:"photo_scan,omitempty"`
	ExtraFields        json.RawMessage `json:"extra_fields,omitempty"`
	PIN                string          `json:"pin,omitempty"`
	CreatedAt          string          `json:"created_at,omitempty"`
	UpdatedAt          string          `json:"updated_at,omitempty"`
	CreatedBy          *int64          `json:"created_by,omitempty"`
	UpdatedBy          *int64          `json:"updated_by,omitempty"`
}

// PublicTraveler is the unauthenticated listing projection (spec caps it at
// 50 rows).
type PublicTraveler struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	PassportNo string `json:"passport_no"`
	Mobile     string `json:"mobile"`
	BatchName  string `json:"batch_name,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// DocumentSlots maps upload doc types to the traveler column holding the
// current filename.
var DocumentSlots = map[string]string{
	"passport": "passport_scan",
	"aadhaar":  "aadhaar_scan",
	"pan":      "pan_scan",
	"vaccine":  "vaccine_scan",
	"photo":    "photo_scan",
}
