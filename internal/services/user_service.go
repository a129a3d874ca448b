package services

import (
	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/repositories"
	"alhudha-backend/internal/utils"
)

var validRoles = map[string]bool{
	models.RoleSuperAdmin: true,
	models.RoleAdmin:      true,
	models.RoleManager:    true,
	models.RoleStaff:      true,
	models.RoleViewer:     true,
}

// UserService manages admin accounts.
type UserService struct {
	Repo      repositories.UserRepository
	RequestID string
}

func (s UserService) List() ([]models.AdminUser, error) {
	users, err := s.Repo.List()
	if err != nil {
		return nil, intdb.ClassifyError(err)
	}
	return users, nil
}

// Create adds an admin account with one role. The caller becomes created_by.
func (s UserService) Create(u models.AdminUser, password, role string, actorID *int64) (models.AdminUser, error) {
	u.Username = utils.TrimOrEmpty(u.Username)
	u.Email = utils.TrimOrEmpty(u.Email)
	if u.Username == "" {
		return u, domain.ValidationError{Field: "username", Msg: "username is required"}
	}
	if u.Email == "" {
		return u, domain.ValidationError{Field: "email", Msg: "email is required"}
	}
	if len(password) < 6 {
		return u, domain.ValidationError{Field: "password", Msg: "password must be at least 6 characters"}
	}
	if role == "" {
		role = models.RoleStaff
	}
	if !validRoles[role] {
		return u, domain.ValidationError{Field: "role", Msg: "unknown role"}
	}

	u.IsActive = true
	u.CreatedBy = actorID
	id, err := s.Repo.Create(u, utils.HashPassword(password), role)
	if err != nil {
		if intdb.IsDuplicate(err) {
			return u, domain.ConflictError{Msg: "Username or email already exists"}
		}
		return u, intdb.ClassifyError(err)
	}
	u.ID = id
	u.Roles = []string{role}
	utils.LogEvent(s.RequestID, "users", "create", u.Username)
	return u, nil
}
