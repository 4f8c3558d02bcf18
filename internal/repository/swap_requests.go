package repository

import (
	"context"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
)

// SwapFilter narrows GetSwapRequests. A nil UserID returns every request;
// otherwise only requests the user is a party to.
type SwapFilter struct {
	UserID *int64
	Status *domain.SwapStatus
}

const swapColumns = `
	sr.id, sr.original_shift_id, sr.target_shift_id, sr.requested_by, sr.requested_from,
	sr.status, sr.message, sr.response_message, sr.responded_at, sr.created_at, sr.version,
	rb.username, rb.full_name, rb.email,
	rf.username, rf.full_name, rf.email
`

func scanSwapRequest(scan func(dst ...any) error) (*domain.SwapRequest, error) {
	req := &domain.SwapRequest{
		Requester: &domain.User{},
		Requestee: &domain.User{},
	}
	dst := []any{
		&req.ID, &req.OriginalShiftID, &req.TargetShiftID, &req.RequestedBy, &req.RequestedFrom,
		&req.Status, &req.Message, &req.ResponseMessage, &req.RespondedAt, &req.CreatedAt, &req.Version,
		&req.Requester.Username, &req.Requester.FullName, &req.Requester.Email,
		&req.Requestee.Username, &req.Requestee.FullName, &req.Requestee.Email,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}

	req.Requester.ID = req.RequestedBy
	req.Requestee.ID = req.RequestedFrom

	return req, nil
}

const swapFrom = `
	FROM shift_swap_requests sr
	JOIN users rb ON rb.id = sr.requested_by
	JOIN users rf ON rf.id = sr.requested_from
`

func (r *Repository) GetSwapRequestByID(id int64) (*domain.SwapRequest, error) {
	query := `SELECT ` + swapColumns + swapFrom + `WHERE sr.id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	req, err := scanSwapRequest(row.Scan)
	if err != nil {
		return nil, err
	}

	if req.OriginalShift, err = r.GetShiftByID(req.OriginalShiftID); err != nil {
		return nil, err
	}
	if req.TargetShift, err = r.GetShiftByID(req.TargetShiftID); err != nil {
		return nil, err
	}

	return req, nil
}

func (r *Repository) GetSwapRequests(filter SwapFilter) ([]*domain.SwapRequest, error) {
	query := `
		SELECT ` + swapColumns + swapFrom + `
		WHERE ($1::bigint IS NULL OR sr.requested_by = $1 OR sr.requested_from = $1)
		  AND ($2::text IS NULL OR sr.status = $2)
		ORDER BY sr.created_at DESC, sr.id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, filter.UserID, filter.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := make([]*domain.SwapRequest, 0)
	for rows.Next() {
		req, err := scanSwapRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reqs, nil
}

/* swap coordinator port */

func (r *Repository) ShiftByID(id int64) (*domain.Shift, error) {
	return r.GetShiftByID(id)
}

func (r *Repository) SwapRequestByID(id int64) (*domain.SwapRequest, error) {
	query := `
		SELECT id, original_shift_id, target_shift_id, requested_by, requested_from,
		       status, message, response_message, responded_at, created_at, version
		FROM shift_swap_requests
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req := &domain.SwapRequest{}
	dst := []any{
		&req.ID, &req.OriginalShiftID, &req.TargetShiftID, &req.RequestedBy, &req.RequestedFrom,
		&req.Status, &req.Message, &req.ResponseMessage, &req.RespondedAt, &req.CreatedAt, &req.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return req, nil
}

func (r *Repository) HasPendingSwap(originalShiftID int64, targetShiftID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM shift_swap_requests
			WHERE original_shift_id = $1 AND target_shift_id = $2 AND status = $3
		)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var exists bool
	if err := r.dbpool.QueryRowContext(ctx, query, originalShiftID, targetShiftID, domain.SwapPending).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) CreateSwapRequest(req *domain.SwapRequest) error {
	query := `
		INSERT INTO shift_swap_requests (original_shift_id, target_shift_id, requested_by, requested_from, status, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{req.OriginalShiftID, req.TargetShiftID, req.RequestedBy, req.RequestedFrom, req.Status, req.Message}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.Version); err != nil {
		return err
	}

	return nil
}

// ExecuteSwap applies an approved swap in one transaction: the two shifts
// exchange assignees and move to the swapped status, and the request row is
// marked approved. Either all three rows change or none does.
func (r *Repository) ExecuteSwap(req *domain.SwapRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	shiftQuery := `
		UPDATE shifts
		SET user_id = $1, status = $2, version = version + 1
		WHERE id = $3
	`

	if _, err := tx.ExecContext(ctx, shiftQuery, req.RequestedFrom, domain.ShiftSwapped, req.OriginalShiftID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, shiftQuery, req.RequestedBy, domain.ShiftSwapped, req.TargetShiftID); err != nil {
		return err
	}

	requestQuery := `
		UPDATE shift_swap_requests
		SET status = $1, response_message = $2, responded_at = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	args := []any{req.Status, req.ResponseMessage, req.RespondedAt, req.ID, req.Version}
	if err := tx.QueryRowContext(ctx, requestQuery, args...).Scan(&req.Version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) ResolveSwapRequest(req *domain.SwapRequest) error {
	query := `
		UPDATE shift_swap_requests
		SET status = $1, response_message = $2, responded_at = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{req.Status, req.ResponseMessage, req.RespondedAt, req.ID, req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.Version); err != nil {
		return err
	}

	return nil
}
