package repository

import (
	"context"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
)

func (r *Repository) GetRoleByID(id int64) (*domain.Role, error) {
	query := `
		SELECT name, description, created_at, version FROM roles WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	role := &domain.Role{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&role.Name, &role.Description, &role.CreatedAt, &role.Version); err != nil {
		return nil, err
	}

	return role, nil
}

// GetRolesByIDs returns the roles for the given ids, preserving the input
// order. Unknown ids are reported so plan generation can fail fast.
func (r *Repository) GetRolesByIDs(ids []int64) ([]*domain.Role, error) {
	query := `
		SELECT id, name, description, created_at, version FROM roles WHERE id = ANY($1)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Role, len(ids))
	for rows.Next() {
		role := &domain.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.Version); err != nil {
			return nil, err
		}
		byID[role.ID] = role
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	roles := make([]*domain.Role, 0, len(ids))
	for _, id := range ids {
		if role, exists := byID[id]; exists {
			roles = append(roles, role)
		}
	}

	return roles, nil
}

func (r *Repository) GetAllRoles() ([]*domain.Role, error) {
	query := `
		SELECT id, name, description, created_at, version FROM roles ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]*domain.Role, 0)
	for rows.Next() {
		role := &domain.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.Version); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

func (r *Repository) CreateRole(role *domain.Role) error {
	query := `
		INSERT INTO roles (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, role.Name, role.Description).Scan(&role.ID, &role.CreatedAt, &role.Version); err != nil {
		return err
	}

	return nil
}
