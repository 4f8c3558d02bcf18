package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/solera-dev/back-office/backend/internal/domain"
)

func (h *Handler) GetAllRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.repository.GetAllRoles()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "roles fetched", roles)
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	role := r.Context().Value(RoleCtx).(*domain.Role)
	h.successResponse(w, r, "role fetched", role)
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	role := &domain.Role{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.repository.CreateRole(role); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "roles_name_key":
			h.conflict(w, r, "role name already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "role created", role)
}
