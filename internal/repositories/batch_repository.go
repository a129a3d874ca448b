package repositories

import (
	"database/sql"

	intconfig "alhudha-backend/internal/config"
	"alhudha-backend/internal/domain/models"
)

// Execer lets seat updates run on a *sql.Tx or a *sql.DB.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type BatchRepository struct {
	DB *sql.DB
}

func (r BatchRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const batchColumns = `
	id, batch_name,
	COALESCE(DATE_FORMAT(departure_date, '%Y-%m-%d'), ''),
	COALESCE(DATE_FORMAT(return_date, '%Y-%m-%d'), ''),
	total_seats, booked_seats, status,
	COALESCE(price, 0),
	COALESCE(description, ''), COALESCE(itinerary, ''), COALESCE(inclusions, ''),
	COALESCE(exclusions, ''), COALESCE(hotel_details, ''), COALESCE(transport_details, ''),
	COALESCE(meal_plan, ''),
	DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'),
	DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s')`

func scanBatch(row interface{ Scan(...any) error }) (models.Batch, error) {
	var b models.Batch
	err := row.Scan(
		&b.ID, &b.BatchName, &b.DepartureDate, &b.ReturnDate,
		&b.TotalSeats, &b.BookedSeats, &b.Status, &b.Price,
		&b.Description, &b.Itinerary, &b.Inclusions, &b.Exclusions,
		&b.HotelDetails, &b.TransportDetails, &b.MealPlan,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// List returns all batches, Open first, then Closing Soon, then the rest,
// each by departure date.
func (r BatchRepository) List() ([]models.Batch, error) {
	rows, err := r.db().Query(`
		SELECT ` + batchColumns + `
		FROM batches
		ORDER BY CASE status
			WHEN 'Open' THEN 1
			WHEN 'Closing Soon' THEN 2
			ELSE 3
		END, departure_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Batch{}
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BatchRepository) GetByID(id int64) (models.Batch, error) {
	return scanBatch(r.db().QueryRow(`
		SELECT `+batchColumns+`
		FROM batches WHERE id = ?`, id))
}

func (r BatchRepository) Create(b models.Batch) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO batches (
			batch_name, departure_date, return_date, total_seats, status, price,
			description, itinerary, inclusions, exclusions, hotel_details,
			transport_details, meal_plan
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.BatchName, nullDate(b.DepartureDate), nullDate(b.ReturnDate),
		b.TotalSeats, b.Status, b.Price,
		b.Description, b.Itinerary, b.Inclusions, b.Exclusions,
		b.HotelDetails, b.TransportDetails, b.MealPlan)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update writes the full merged row (the service resolves the partial patch
// against the current record first).
func (r BatchRepository) Update(b models.Batch) error {
	res, err := r.db().Exec(`
		UPDATE batches SET
			batch_name = ?, departure_date = ?, return_date = ?, total_seats = ?,
			status = ?, price = ?, description = ?, itinerary = ?, inclusions = ?,
			exclusions = ?, hotel_details = ?, transport_details = ?, meal_plan = ?
		WHERE id = ?`,
		b.BatchName, nullDate(b.DepartureDate), nullDate(b.ReturnDate),
		b.TotalSeats, b.Status, b.Price, b.Description, b.Itinerary,
		b.Inclusions, b.Exclusions, b.HotelDetails, b.TransportDetails,
		b.MealPlan, b.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

func (r BatchRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM batches WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

// TravelerCount counts travelers currently referencing the batch; delete is
// refused while it is non-zero.
func (r BatchRepository) TravelerCount(id int64) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM travelers WHERE batch_id = ?`, id).Scan(&n)
	return n, err
}

// IncrementBooked is the bounded seat take: zero rows affected means the
// batch is full (or missing) and the caller's transaction must roll back.
func (r BatchRepository) IncrementBooked(q Execer, id int64) (bool, error) {
	res, err := q.Exec(`
		UPDATE batches SET booked_seats = booked_seats + 1
		WHERE id = ? AND booked_seats < total_seats`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DecrementBooked releases a seat, clamped at zero.
func (r BatchRepository) DecrementBooked(q Execer, id int64) error {
	_, err := q.Exec(`
		UPDATE batches SET booked_seats = CASE WHEN booked_seats > 0 THEN booked_seats - 1 ELSE 0 END
		WHERE id = ?`, id)
	return err
}

func nullDate(s string) any {
	if s == "" {
		return nil
	}
	return s
}
