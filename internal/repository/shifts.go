package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
)

// ShiftFilter narrows GetShifts. Nil fields are ignored; the date bounds are
// inclusive calendar dates.
type ShiftFilter struct {
	LocationID *int64
	RoleID     *int64
	UserID     *int64
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *domain.ShiftStatus
}

const shiftColumns = `
	s.id, s.template_id, s.role_id, s.location_id, s.user_id, s.date,
	s.start_time, s.end_time, s.status, s.notes, s.created_by,
	s.confirmed_by, s.confirmed_at, s.created_at, s.version,
	st.name, st.start_time, st.end_time,
	r.name,
	l.name,
	u.username, u.full_name, u.email
`

func scanShift(scan func(dst ...any) error) (*domain.Shift, error) {
	s := &domain.Shift{
		Template: &domain.ShiftTemplate{},
		Role:     &domain.Role{},
		Location: &domain.Location{},
	}

	var username, fullName, email sql.NullString

	dst := []any{
		&s.ID, &s.TemplateID, &s.RoleID, &s.LocationID, &s.UserID, &s.Date,
		&s.StartTime, &s.EndTime, &s.Status, &s.Notes, &s.CreatedBy,
		&s.ConfirmedBy, &s.ConfirmedAt, &s.CreatedAt, &s.Version,
		&s.Template.Name, &s.Template.StartTime, &s.Template.EndTime,
		&s.Role.Name,
		&s.Location.Name,
		&username, &fullName, &email,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}

	s.Template.ID = s.TemplateID
	s.Role.ID = s.RoleID
	s.Location.ID = s.LocationID
	if s.UserID != nil {
		s.User = &domain.User{
			ID:       *s.UserID,
			Username: username.String,
			FullName: fullName.String,
			Email:    email.String,
		}
	}

	return s, nil
}

const shiftFrom = `
	FROM shifts s
	JOIN shift_templates st ON st.id = s.template_id
	JOIN roles r ON r.id = s.role_id
	JOIN locations l ON l.id = s.location_id
	LEFT JOIN users u ON u.id = s.user_id
`

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + shiftFrom + `WHERE s.id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanShift(row.Scan)
}

func (r *Repository) GetShifts(filter ShiftFilter) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + shiftFrom + `
		WHERE ($1::bigint IS NULL OR s.location_id = $1)
		  AND ($2::bigint IS NULL OR s.role_id = $2)
		  AND ($3::bigint IS NULL OR s.user_id = $3)
		  AND ($4::date IS NULL OR s.date >= $4)
		  AND ($5::date IS NULL OR s.date <= $5)
		  AND ($6::text IS NULL OR s.status = $6)
		ORDER BY s.date, s.start_time, s.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, filter.LocationID, filter.RoleID, filter.UserID, filter.StartDate, filter.EndDate, filter.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// AssignedShiftsOn implements the overlap guard's shift port: every
// non-cancelled shift assigned to the user on that calendar date.
func (r *Repository) AssignedShiftsOn(userID int64, date time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT id, template_id, role_id, location_id, user_id, date,
		       start_time, end_time, status, notes, created_by,
		       confirmed_by, confirmed_at, created_at, version
		FROM shifts
		WHERE user_id = $1 AND date = $2 AND status <> $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, date, domain.ShiftCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s := &domain.Shift{}
		dst := []any{
			&s.ID, &s.TemplateID, &s.RoleID, &s.LocationID, &s.UserID, &s.Date,
			&s.StartTime, &s.EndTime, &s.Status, &s.Notes, &s.CreatedBy,
			&s.ConfirmedBy, &s.ConfirmedAt, &s.CreatedAt, &s.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) CreateShift(s *domain.Shift) error {
	query := `
		INSERT INTO shifts (template_id, role_id, location_id, user_id, date, start_time, end_time, status, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{s.TemplateID, s.RoleID, s.LocationID, s.UserID, s.Date, s.StartTime, s.EndTime, s.Status, s.Notes, s.CreatedBy}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.Version); err != nil {
		return err
	}

	return nil
}

// CreateShifts batch-inserts a generated plan in one transaction, so a
// half-written plan never becomes visible.
func (r *Repository) CreateShifts(shifts []*domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shifts (template_id, role_id, location_id, user_id, date, start_time, end_time, status, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version
	`

	for _, s := range shifts {
		args := []any{s.TemplateID, s.RoleID, s.LocationID, s.UserID, s.Date, s.StartTime, s.EndTime, s.Status, s.Notes, s.CreatedBy}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(s *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			user_id = $1,
			date = $2,
			start_time = $3,
			end_time = $4,
			status = $5,
			notes = $6,
			confirmed_by = $7,
			confirmed_at = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{s.UserID, s.Date, s.StartTime, s.EndTime, s.Status, s.Notes, s.ConfirmedBy, s.ConfirmedAt, s.ID, s.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
