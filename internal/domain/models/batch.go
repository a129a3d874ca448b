package models

import "alhudha-backend/internal/domain"

// Batch statuses. Listing ranks Open first, then Closing Soon, then the rest.
const (
	BatchStatusOpen        = "Open"
	BatchStatusClosingSoon = "Closing Soon"
	BatchStatusClosed      = "Closed"
)

const DefaultTotalSeats = 150

// Batch is a scheduled tour package with fixed seat inventory. booked_seats
// always equals the number of travelers referencing the batch; it is only
// ever touched by the traveler service inside the same transaction as the
// traveler row.
type Batch struct {
	ID               int64        `json:"id"`
	BatchName        string       `json:"batch_name"`
	DepartureDate    string       `json:"departure_date,omitempty"`
	ReturnDate       string       `json:"return_date,omitempty"`
	TotalSeats       int          `json:"total_seats"`
	BookedSeats      int          `json:"booked_seats"`
	Status           string       `json:"status"`
	Price            domain.Money `json:"price"`
	Description      string       `json:"description,omitempty"`
	Itinerary        string       `json:"itinerary,omitempty"`
	Inclusions       string       `json:"inclusions,omitempty"`
	Exclusions       string       `json:"exclusions,omitempty"`
	HotelDetails     string       `json:"hotel_details,omitempty"`
	TransportDetails string       `json:"transport_details,omitempty"`
	MealPlan         string       `json:"meal_plan,omitempty"`
	CreatedAt        string       `json:"created_at,omitempty"`
	UpdatedAt        string       `json:"updated_at,omitempty"`
}

// BatchPatch carries a partial update; nil fields are preserved.
type BatchPatch struct {
	BatchName        *string       `json:"batch_name"`
	DepartureDate    *string       `json:"departure_date"`
	ReturnDate       *string       `json:"return_date"`
	TotalSeats       *int          `json:"total_seats"`
	Status           *string       `json:"status"`
	Price            *domain.Money `json:"price"`
	Description      *string       `json:"description"`
	Itinerary        *string       `json:"itinerary"`
	Inclusions       *string       `json:"inclusions"`
	Exclusions       *string       `json:"exclusions"`
	HotelDetails     *string       `json:"hotel_details"`
	TransportDetails *string       `json:"transport_details"`
	MealPlan         *string       `json:"meal_plan"`
}
