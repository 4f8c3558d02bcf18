package repository

import (
	"context"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
)

const availabilityColumns = `
	id, user_id, location_id, role_id, day_of_week, start_time, end_time,
	start_date, end_date, type, priority, notes, is_active, created_at, version
`

func scanAvailability(scan func(dst ...any) error) (*domain.Availability, error) {
	av := &domain.Availability{}
	dst := []any{
		&av.ID, &av.UserID, &av.LocationID, &av.RoleID, &av.DayOfWeek, &av.StartTime, &av.EndTime,
		&av.StartDate, &av.EndDate, &av.Type, &av.Priority, &av.Notes, &av.IsActive, &av.CreatedAt, &av.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return av, nil
}

func (r *Repository) GetAvailabilityByID(id int64) (*domain.Availability, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availabilities WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanAvailability(row.Scan)
}

func (r *Repository) GetAvailabilitiesByUser(userID int64) ([]*domain.Availability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availabilities
		WHERE user_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]*domain.Availability, 0)
	for rows.Next() {
		av, err := scanAvailability(rows.Scan)
		if err != nil {
			return nil, err
		}
		rules = append(rules, av)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

// MatchingRules implements the resolver's rule port in SQL. A rule matches
// the slot when it is active, marks the user available or preferred, and
// every non-null scope field agrees with the slot; the date range check is
// inclusive on both ends.
func (r *Repository) MatchingRules(locationID, roleID int64, date time.Time, dayOfWeek int32) ([]*domain.Availability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availabilities
		WHERE is_active = TRUE
		  AND type IN ($1, $2)
		  AND (location_id IS NULL OR location_id = $3)
		  AND (role_id IS NULL OR role_id = $4)
		  AND (day_of_week IS NULL OR day_of_week = $5)
		  AND (start_date IS NULL OR start_date <= $6)
		  AND (end_date IS NULL OR end_date >= $6)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{domain.AvailabilityAvailable, domain.AvailabilityPreferred, locationID, roleID, dayOfWeek, date}
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]*domain.Availability, 0)
	for rows.Next() {
		av, err := scanAvailability(rows.Scan)
		if err != nil {
			return nil, err
		}
		rules = append(rules, av)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *Repository) CreateAvailability(av *domain.Availability) error {
	query := `
		INSERT INTO availabilities (user_id, location_id, role_id, day_of_week, start_time, end_time, start_date, end_date, type, priority, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{av.UserID, av.LocationID, av.RoleID, av.DayOfWeek, av.StartTime, av.EndTime, av.StartDate, av.EndDate, av.Type, av.Priority, av.Notes, av.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&av.ID, &av.CreatedAt, &av.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateAvailability(av *domain.Availability) error {
	query := `
		UPDATE availabilities
		SET
			location_id = $1,
			role_id = $2,
			day_of_week = $3,
			start_time = $4,
			end_time = $5,
			start_date = $6,
			end_date = $7,
			type = $8,
			priority = $9,
			notes = $10,
			is_active = $11,
			version = version + 1
		WHERE id = $12 AND version = $13
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{av.LocationID, av.RoleID, av.DayOfWeek, av.StartTime, av.EndTime, av.StartDate, av.EndDate, av.Type, av.Priority, av.Notes, av.IsActive, av.ID, av.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&av.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAvailability(id int64) error {
	query := `
		DELETE FROM availabilities WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
