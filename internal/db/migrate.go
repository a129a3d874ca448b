package db

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"

	"alhudha-backend/internal/utils"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admin_users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		full_name VARCHAR(100),
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_login TIMESTAMP NULL,
		created_by BIGINT NULL,
		CONSTRAINT fk_admin_users_created_by FOREIGN KEY (created_by) REFERENCES admin_users(id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS roles (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE,
		description TEXT
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id BIGINT NOT NULL,
		role_id BIGINT NOT NULL,
		assigned_by BIGINT NULL,
		assigned_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, role_id),
		CONSTRAINT fk_user_roles_user FOREIGN KEY (user_id) REFERENCES admin_users(id) ON DELETE CASCADE,
		CONSTRAINT fk_user_roles_role FOREIGN KEY (role_id) REFERENCES roles(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS batches (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		batch_name VARCHAR(100) NOT NULL UNIQUE,
		departure_date DATE NULL,
		return_date DATE NULL,
		total_seats INT NOT NULL DEFAULT 150,
		booked_seats INT NOT NULL DEFAULT 0,
		status VARCHAR(50) NOT NULL DEFAULT 'Open',
		price DECIMAL(12,2) NULL,
		description TEXT,
		itinerary TEXT,
		inclusions TEXT,
		exclusions TEXT,
		hotel_details TEXT,
		transport_details TEXT,
		meal_plan TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS travelers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		passport_name VARCHAR(101) GENERATED ALWAYS AS (CONCAT(first_name, ' ', last_name)) STORED,
		batch_id BIGINT NULL,
		passport_no VARCHAR(50) NOT NULL UNIQUE,
		passport_issue_date DATE NULL,
		passport_expiry_date DATE NULL,
		passport_status VARCHAR(50) NOT NULL DEFAULT 'Active',
		gender VARCHAR(10),
		dob DATE NULL,
		mobile VARCHAR(20) NOT NULL,
		email VARCHAR(100),
		aadhaar VARCHAR(20),
		pan VARCHAR(20),
		aadhaar_pan_linked VARCHAR(20) NOT NULL DEFAULT 'No',
		vaccine_status VARCHAR(50) NOT NULL DEFAULT 'Not Vaccinated',
		wheelchair VARCHAR(10) NOT NULL DEFAULT 'No',
		place_of_birth VARCHAR(100),
		place_of_issue VARCHAR(100),
		passport_address TEXT,
		father_name VARCHAR(100),
		mother_name VARCHAR(100),
		spouse_name VARCHAR(100),
		passport_scan VARCHAR(255),
		aadhaar_scan VARCHAR(255),
		pan_scan VARCHAR(255),
		vaccine_scan VARCHAR(255),
		photo_scan VARCHAR(255),
		extra_fields JSON,
		pin VARCHAR(4) NOT NULL DEFAULT '0000',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		created_by BIGINT NULL,
		updated_by BIGINT NULL,
		CONSTRAINT fk_travelers_batch FOREIGN KEY (batch_id) REFERENCES batches(id) ON DELETE SET NULL,
		CONSTRAINT fk_travelers_created_by FOREIGN KEY (created_by) REFERENCES admin_users(id),
		CONSTRAINT fk_travelers_updated_by FOREIGN KEY (updated_by) REFERENCES admin_users(id)
	) ENGINE=InnoDB`,

	`CREATE INDEX idx_travelers_batch ON travelers(batch_id)`,
	`CREATE INDEX idx_travelers_mobile ON travelers(mobile)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		traveler_id BIGINT NOT NULL,
		batch_id BIGINT NOT NULL,
		installment VARCHAR(50),
		amount DECIMAL(10,2) NOT NULL,
		due_date DATE NULL,
		payment_date DATE NOT NULL,
		payment_method VARCHAR(50) NOT NULL,
		transaction_id VARCHAR(100),
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		remarks TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		recorded_by BIGINT NULL,
		CONSTRAINT fk_payments_traveler FOREIGN KEY (traveler_id) REFERENCES travelers(id) ON DELETE CASCADE,
		CONSTRAINT fk_payments_batch FOREIGN KEY (batch_id) REFERENCES batches(id),
		CONSTRAINT fk_payments_recorded_by FOREIGN KEY (recorded_by) REFERENCES admin_users(id)
	) ENGINE=InnoDB`,

	`CREATE INDEX idx_payments_traveler ON payments(traveler_id)`,
	`CREATE INDEX idx_payments_status ON payments(status)`,

	`CREATE TABLE IF NOT EXISTS receipts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		receipt_number VARCHAR(50) NOT NULL UNIQUE,
		payment_id BIGINT NOT NULL UNIQUE,
		traveler_id BIGINT NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		payment_method VARCHAR(50),
		transaction_id VARCHAR(100),
		receipt_type VARCHAR(50),
		installment VARCHAR(50),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_receipts_payment FOREIGN KEY (payment_id) REFERENCES payments(id) ON DELETE CASCADE,
		CONSTRAINT fk_receipts_traveler FOREIGN KEY (traveler_id) REFERENCES travelers(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS login_logs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NULL,
		login_time TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ip_address VARCHAR(45),
		user_agent TEXT,
		CONSTRAINT fk_login_logs_user FOREIGN KEY (user_id) REFERENCES admin_users(id) ON DELETE SET NULL
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS company_settings (
		id BIGINT PRIMARY KEY,
		legal_name VARCHAR(150),
		display_name VARCHAR(150),
		address_line1 VARCHAR(150),
		address_line2 VARCHAR(150),
		city VARCHAR(100),
		state VARCHAR(100),
		country VARCHAR(100),
		pin_code VARCHAR(20),
		phone VARCHAR(30),
		mobile VARCHAR(30),
		email VARCHAR(100),
		website VARCHAR(100),
		gstin VARCHAR(30),
		pan VARCHAR(20),
		bank_name VARCHAR(100),
		bank_branch VARCHAR(100),
		account_name VARCHAR(150),
		account_no VARCHAR(30),
		ifsc_code VARCHAR(20),
		upi_id VARCHAR(100)
	) ENGINE=InnoDB`,
}

var defaultRoles = [][2]string{
	{"super_admin", "Full system access"},
	{"admin", "Can manage all data except users"},
	{"manager", "Can manage batches and travelers"},
	{"staff", "Can add and edit travelers"},
	{"viewer", "Read-only access"},
}

var defaultAdmins = []struct {
	Username, Email, FullName, Role string
}{
	{"superadmin", "admin@alhudha.com", "Super Administrator", "super_admin"},
	{"admin1", "admin1@alhudha.com", "Ahmed Khan", "admin"},
	{"manager1", "manager@alhudha.com", "Manager", "manager"},
	{"staff1", "staff1@alhudha.com", "Omar Hassan", "staff"},
	{"staff2", "staff2@alhudha.com", "Aisha Rahman", "staff"},
	{"viewer1", "viewer1@alhudha.com", "Zainab Ali", "viewer"},
}

const seedPassword = "admin123"

// Migrate creates tables and indexes when absent and seeds the role set and
// default admin users only into empty tables. Safe to run on every start;
// main runs it in the background so the listener comes up immediately.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			// duplicate key/index/table on re-run is fine
			var me *mysql.MySQLError
			if errors.As(err, &me) && (me.Number == 1061 || me.Number == 1050 || me.Number == mysqlErrDupEntry) {
				continue
			}
			return err
		}
	}

	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedAdmins(db); err != nil {
		return err
	}
	if err := seedCompany(db); err != nil {
		return err
	}

	log.Info("database migration complete")
	return nil
}

func seedRoles(db *sql.DB) error {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM roles`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, r := range defaultRoles {
		if _, err := db.Exec(`INSERT INTO roles (name, description) VALUES (?, ?)`, r[0], r[1]); err != nil {
			return err
		}
	}
	log.Info("default roles seeded")
	return nil
}

func seedAdmins(db *sql.DB) error {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM admin_users`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash := utils.HashPassword(seedPassword)
	for _, a := range defaultAdmins {
		res, err := db.Exec(`
			INSERT INTO admin_users (username, password_hash, email, full_name, is_active)
			VALUES (?, ?, ?, ?, 1)`,
			a.Username, hash, a.Email, a.FullName)
		if err != nil {
			return err
		}
		userID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := db.Exec(`
			INSERT INTO user_roles (user_id, role_id)
			SELECT ?, id FROM roles WHERE name = ?`, userID, a.Role); err != nil {
			return err
		}
	}
	log.Info("default admin users seeded")
	return nil
}

func seedCompany(db *sql.DB) error {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM company_settings`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err := db.Exec(`
		INSERT INTO company_settings (id, legal_name, display_name, city, state, country, email)
		VALUES (1, 'Alhudha Haj Service P Ltd.', 'Alhudha Haj Travel', 'Chennai', 'Tamil Nadu', 'India', 'info@alhudha.com')`)
	return err
}
