package services

import (
	"database/sql"

	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/repositories"
	"alhudha-backend/internal/utils"
)

// CompanyService reads and updates the single company settings row.
type CompanyService struct {
	Repo      repositories.CompanyRepository
	RequestID string
}

func (s CompanyService) Get() (models.CompanySettings, error) {
	c, err := s.Repo.Get()
	if err == sql.ErrNoRows {
		return c, domain.NotFoundError{Resource: "Company settings"}
	}
	if err != nil {
		return c, intdb.ClassifyError(err)
	}
	return c, nil
}

func (s CompanyService) Update(c models.CompanySettings) (models.CompanySettings, error) {
	if utils.TrimOrEmpty(c.LegalName) == "" && utils.TrimOrEmpty(c.DisplayName) == "" {
		return c, domain.ValidationError{Field: "legal_name", Msg: "company name is required"}
	}
	if err := s.Repo.Upsert(c); err != nil {
		return c, intdb.ClassifyError(err)
	}
	utils.LogEvent(s.RequestID, "company", "update", c.DisplayName)
	return s.Get()
}
