package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/solera-dev/back-office/backend/internal/repository"
	"github.com/solera-dev/back-office/backend/internal/utils"
)

func (h *Handler) GetShiftTemplates(w http.ResponseWriter, r *http.Request) {
	filter := repository.TemplateFilter{}

	if param := r.URL.Query().Get("roleID"); param != "" {
		roleID, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid roleID"))
			return
		}
		filter.RoleID = &roleID
	}
	if param := r.URL.Query().Get("locationID"); param != "" {
		locationID, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid locationID"))
			return
		}
		filter.LocationID = &locationID
	}
	filter.IncludeInactive = r.URL.Query().Get("includeInactive") == "true"

	templates, err := h.repository.GetShiftTemplates(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift templates fetched", templates)
}

func (h *Handler) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)
	h.successResponse(w, r, "shift template fetched", st)
}

func (h *Handler) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoleID     int64  `json:"roleID" validate:"required"`
		LocationID int64  `json:"locationID" validate:"required"`
		Name       string `json:"name" validate:"required"`
		StartTime  string `json:"startTime" validate:"required"`
		EndTime    string `json:"endTime" validate:"required"`
		Duration   *int32 `json:"duration"`
		IsActive   *bool  `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	st := &domain.ShiftTemplate{
		RoleID:     req.RoleID,
		LocationID: req.LocationID,
		Name:       req.Name,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Duration:   req.Duration,
		IsActive:   true,
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}

	if err := utils.ValidateTemplateTimes(st); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateShiftTemplate(st); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "shift_templates_role_id_location_id_name_key":
				h.conflict(w, r, "a template with this name already exists for the role and location")
			case pgErr.ConstraintName == "shift_templates_role_id_fkey":
				h.notFound(w, r, "role not found")
			case pgErr.ConstraintName == "shift_templates_location_id_fkey":
				h.notFound(w, r, "location not found")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift template created", st)
}

func (h *Handler) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      *string `json:"name"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		Duration  *int32  `json:"duration"`
		IsActive  *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.StartTime != nil {
		st.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		st.EndTime = *req.EndTime
	}
	if req.Duration != nil {
		st.Duration = req.Duration
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}

	if err := utils.ValidateTemplateTimes(st); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateShiftTemplate(st); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shift_templates_role_id_location_id_name_key":
			h.conflict(w, r, "a template with this name already exists for the role and location")
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "template update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift template updated", st)
}

func (h *Handler) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	if err := h.repository.DeleteShiftTemplate(st.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_template_id_fkey":
			h.conflict(w, r, "template is referenced by existing shifts")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift template deleted", nil)
}
