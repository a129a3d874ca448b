package services

import (
	"database/sql"
	"strings"

	intdb "alhudha-backend/internal/db"
	"alhudha-backend/internal/domain"
	"alhudha-backend/internal/domain/models"
	"alhudha-backend/internal/repositories"
	"alhudha-backend/internal/utils"
)

type BatchService struct {
	Repo      repositories.BatchRepository
	RequestID string
}

func (s BatchService) List() ([]models.Batch, error) {
	batches, err := s.Repo.List()
	if err != nil {
		return nil, intdb.ClassifyError(err)
	}
	return batches, nil
}

func (s BatchService) Get(id int64) (models.Batch, error) {
	b, err := s.Repo.GetByID(id)
	if err == sql.ErrNoRows {
		return b, domain.NotFoundError{Resource: "Batch"}
	}
	if err != nil {
		return b, intdb.ClassifyError(err)
	}
	return b, nil
}

func (s BatchService) Create(b models.Batch) (models.Batch, error) {
	b.BatchName = strings.TrimSpace(b.BatchName)
	if b.BatchName == "" {
		return b, domain.ValidationError{Field: "batch_name", Msg: "is required"}
	}
	if b.TotalSeats < 0 {
		return b, domain.ValidationError{Field: "total_seats", Msg: "must not be negative"}
	}
	if b.TotalSeats == 0 {
		b.TotalSeats = models.DefaultTotalSeats
	}
	if b.Status == "" {
		b.Status = models.BatchStatusOpen
	}
	b.BookedSeats = 0

	id, err := s.Repo.Create(b)
	if intdb.IsDuplicate(err) {
		return b, domain.ConflictError{Msg: "Batch name already exists", Err: err}
	}
	if err != nil {
		return b, intdb.ClassifyError(err)
	}

	utils.LogEvent(s.RequestID, "batch", "create", b.BatchName)
	return s.Get(id)
}

// Update applies a partial patch; unset fields keep the stored value.
// Shrinking total_seats below the live booked count is refused.
func (s BatchService) Update(id int64, patch models.BatchPatch) (models.Batch, error) {
	existing, err := s.Get(id)
	if err != nil {
		return existing, err
	}

	if patch.BatchName != nil {
		existing.BatchName = strings.TrimSpace(*patch.BatchName)
		if existing.BatchName == "" {
			return existing, domain.ValidationError{Field: "batch_name", Msg: "must not be empty"}
		}
	}
	if patch.DepartureDate != nil {
		existing.DepartureDate = *patch.DepartureDate
	}
	if patch.ReturnDate != nil {
		existing.ReturnDate = *patch.ReturnDate
	}
	if patch.TotalSeats != nil {
		if *patch.TotalSeats < existing.BookedSeats {
			return existing, domain.PreconditionError{Msg: "total_seats cannot be less than booked_seats"}
		}
		existing.TotalSeats = *patch.TotalSeats
	}
	if patch.Status != nil {
		existing.Status = *patch.Status
	}
	if patch.Price != nil {
		existing.Price = *patch.Price
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Itinerary != nil {
		existing.Itinerary = *patch.Itinerary
	}
	if patch.Inclusions != nil {
		existing.Inclusions = *patch.Inclusions
	}
	if patch.Exclusions != nil {
		existing.Exclusions = *patch.Exclusions
	}
	if patch.HotelDetails != nil {
		existing.HotelDetails = *patch.HotelDetails
	}
	if patch.TransportDetails != nil {
		existing.TransportDetails = *patch.TransportDetails
	}
	if patch.MealPlan != nil {
		existing.MealPlan = *patch.MealPlan
	}

	err = s.Repo.Update(existing)
	if intdb.IsDuplicate(err) {
		return existing, domain.ConflictError{Msg: "Batch name already exists", Err: err}
	}
	if err == sql.ErrNoRows {
		return existing, domain.NotFoundError{Resource: "Batch"}
	}
	if err != nil {
		return existing, intdb.ClassifyError(err)
	}

	utils.LogEvent(s.RequestID, "batch", "update", existing.BatchName)
	return s.Get(id)
}

// Delete physically removes the batch, but only once no traveler references
// it.
func (s BatchService) Delete(id int64) error {
	n, err := s.Repo.TravelerCount(id)
	if err != nil {
		return intdb.ClassifyError(err)
	}
	if n > 0 {
		return domain.PreconditionError{Msg: "Cannot delete batch with assigned travelers"}
	}

	err = s.Repo.Delete(id)
	if err == sql.ErrNoRows {
		return domain.NotFoundError{Resource: "Batch"}
	}
	if err != nil {
		return intdb.ClassifyError(err)
	}

	utils.LogEvent(s.RequestID, "batch", "delete", "")
	return nil
}
