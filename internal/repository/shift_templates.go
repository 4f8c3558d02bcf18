package repository

import (
	"context"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
)

// TemplateFilter narrows GetShiftTemplates. Nil fields are ignored.
type TemplateFilter struct {
	RoleID          *int64
	LocationID      *int64
	IncludeInactive bool
}

const templateColumns = `
	st.id, st.role_id, st.location_id, st.name, st.start_time, st.end_time,
	st.duration, st.is_active, st.created_at, st.version,
	r.name, r.description,
	l.name
`

func scanTemplate(scan func(dst ...any) error) (*domain.ShiftTemplate, error) {
	st := &domain.ShiftTemplate{
		Role:     &domain.Role{},
		Location: &domain.Location{},
	}

	dst := []any{
		&st.ID, &st.RoleID, &st.LocationID, &st.Name, &st.StartTime, &st.EndTime,
		&st.Duration, &st.IsActive, &st.CreatedAt, &st.Version,
		&st.Role.Name, &st.Role.Description,
		&st.Location.Name,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}

	st.Role.ID = st.RoleID
	st.Location.ID = st.LocationID

	return st, nil
}

func (r *Repository) GetShiftTemplateByID(id int64) (*domain.ShiftTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM shift_templates st
		JOIN roles r ON r.id = st.role_id
		JOIN locations l ON l.id = st.location_id
		WHERE st.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanTemplate(row.Scan)
}

func (r *Repository) GetShiftTemplates(filter TemplateFilter) ([]*domain.ShiftTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM shift_templates st
		JOIN roles r ON r.id = st.role_id
		JOIN locations l ON l.id = st.location_id
		WHERE ($1::bigint IS NULL OR st.role_id = $1)
		  AND ($2::bigint IS NULL OR st.location_id = $2)
		  AND ($3::boolean OR st.is_active)
		ORDER BY st.location_id, st.role_id, st.start_time, st.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, filter.RoleID, filter.LocationID, filter.IncludeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.ShiftTemplate, 0)
	for rows.Next() {
		st, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		templates = append(templates, st)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// ActiveTemplates implements the planner's template port.
func (r *Repository) ActiveTemplates(roleID int64, locationID int64) ([]*domain.ShiftTemplate, error) {
	return r.GetShiftTemplates(TemplateFilter{RoleID: &roleID, LocationID: &locationID})
}

func (r *Repository) CreateShiftTemplate(st *domain.ShiftTemplate) error {
	query := `
		INSERT INTO shift_templates (role_id, location_id, name, start_time, end_time, duration, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{st.RoleID, st.LocationID, st.Name, st.StartTime, st.EndTime, st.Duration, st.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.ID, &st.CreatedAt, &st.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShiftTemplate(st *domain.ShiftTemplate) error {
	query := `
		UPDATE shift_templates
		SET
			name = $1,
			start_time = $2,
			end_time = $3,
			duration = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{st.Name, st.StartTime, st.EndTime, st.Duration, st.IsActive, st.ID, st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShiftTemplate(id int64) error {
	query := `
		DELETE FROM shift_templates WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
