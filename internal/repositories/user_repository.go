package repositories

import (
	"database/sql"
	"strings"

	intconfig "alhudha-backend/internal/config"
	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetActiveByUsername loads the login row. Inactive users are invisible to
// login on purpose.
func (r UserRepository) GetActiveByUsername(username string) (models.AdminUser, string, error) {
	var (
		u    models.AdminUser
		hash string
		name sql.NullString
	)
	err := r.db().QueryRow(`
		SELECT id, username, password_hash, email, full_name
		FROM admin_users
		WHERE username = ? AND is_active = 1`, username).Scan(
		&u.ID, &u.Username, &hash, &u.Email, &name)
	if err != nil {
		return u, "", err
	}
	u.FullName = name.String
	u.IsActive = true
	return u, hash, nil
}

func (r UserRepository) TouchLastLogin(id int64) error {
	_, err := r.db().Exec(`UPDATE admin_users SET last_login = NOW() WHERE id = ?`, id)
	return err
}

func (r UserRepository) InsertLoginLog(userID int64, ip, userAgent string) error {
	_, err := r.db().Exec(`
		INSERT INTO login_logs (user_id, ip_address, user_agent) VALUES (?, ?, ?)`,
		userID, intdb.NullIfEmpty(ip), intdb.NullIfEmpty(userAgent))
	return err
}

// List returns all admin users with their role names aggregated.
func (r UserRepository) List() ([]models.AdminUser, error) {
	rows, err := r.db().Query(`
		SELECT u.id, u.username, u.email, COALESCE(u.full_name, ''), u.is_active,
			DATE_FORMAT(u.created_at, '%Y-%m-%d %H:%i:%s'),
			COALESCE(DATE_FORMAT(u.last_login, '%Y-%m-%d %H:%i:%s'), ''),
			u.created_by,
			COALESCE(GROUP_CONCAT(r.name ORDER BY r.name SEPARATOR ','), '')
		FROM admin_users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		LEFT JOIN roles r ON r.id = ur.role_id
		GROUP BY u.id
		ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AdminUser{}
	for rows.Next() {
		var (
			u     models.AdminUser
			roles string
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FullName,
			&u.IsActive, &u.CreatedAt, &u.LastLogin, &u.CreatedBy, &roles); err != nil {
			return nil, err
		}
		if roles != "" {
			u.Roles = splitCSV(roles)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Create inserts the user and assigns the named role, both in one
// transaction.
func (r UserRepository) Create(u models.AdminUser, passwordHash, role string) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO admin_users (username, password_hash, email, full_name, is_active, created_by)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username, passwordHash, u.Email, intdb.NullIfEmpty(u.FullName),
		u.IsActive, u.CreatedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if role != "" {
		if _, err := tx.Exec(`
			INSERT INTO user_roles (user_id, role_id, assigned_by)
			SELECT ?, id, ? FROM roles WHERE name = ?`, id, u.CreatedBy, role); err != nil {
			return 0, err
		}
	}
	return id, tx.Commit()
}

func splitCSV(s string) []string {
	return strings.Split(s, ",")
}
