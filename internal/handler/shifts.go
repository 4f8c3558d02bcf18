package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/solera-dev/back-office/backend/internal/repository"
	"github.com/solera-dev/back-office/backend/internal/scheduler"
)

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	filter := repository.ShiftFilter{}

	if param := r.URL.Query().Get("locationID"); param != "" {
		locationID, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid locationID"))
			return
		}
		filter.LocationID = &locationID
	}
	if param := r.URL.Query().Get("roleID"); param != "" {
		roleID, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid roleID"))
			return
		}
		filter.RoleID = &roleID
	}
	if param := r.URL.Query().Get("userID"); param != "" {
		userID, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid userID"))
			return
		}
		filter.UserID = &userID
	}
	if param := r.URL.Query().Get("startDate"); param != "" {
		startDate, err := time.Parse("2006-01-02", param)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid startDate"))
			return
		}
		filter.StartDate = &startDate
	}
	if param := r.URL.Query().Get("endDate"); param != "" {
		endDate, err := time.Parse("2006-01-02", param)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid endDate"))
			return
		}
		filter.EndDate = &endDate
	}
	if param := r.URL.Query().Get("status"); param != "" {
		status := domain.ShiftStatus(param)
		if !domain.ValidShiftStatus(status) {
			h.badRequest(w, r, errors.New("invalid status"))
			return
		}
		filter.Status = &status
	}

	shifts, err := h.repository.GetShifts(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts fetched", shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	h.successResponse(w, r, "shift fetched", shift)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		TemplateID int64   `json:"templateID" validate:"required"`
		UserID     *int64  `json:"userID"`
		Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
		Notes      *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	template, err := h.repository.GetShiftTemplateByID(req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "shift template not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	start, end := scheduler.ShiftInstants(template, date)

	if req.UserID != nil {
		overlaps, err := h.guard.HasOverlap(*req.UserID, date, start, end)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if overlaps {
			h.conflict(w, r, "the staff member already has an overlapping shift on this date")
			return
		}
	}

	shift := &domain.Shift{
		TemplateID: template.ID,
		RoleID:     template.RoleID,
		LocationID: template.LocationID,
		UserID:     req.UserID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.ShiftScheduled,
		Notes:      req.Notes,
		CreatedBy:  myInfo.ID,
	}

	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_user_id_fkey":
			h.notFound(w, r, "user not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	created, err := h.repository.GetShiftByID(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if created.UserID != nil {
		h.notifyUser(*created.UserID, "New shift assigned",
			fmt.Sprintf("You have been assigned a %s shift on %s.", created.Template.Name, created.Date.Format("2006-01-02")),
			"shift", created.ID)
	}

	h.successResponse(w, r, "shift created", created)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		UserID *int64  `json:"userID"`
		Date   *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
		Status *string `json:"status" validate:"omitempty,oneof=scheduled confirmed cancelled"`
		Notes  *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// staff may only confirm their own shift; everything else is admin work
	if !myInfo.IsAdmin() {
		if shift.UserID == nil || *shift.UserID != myInfo.ID {
			h.forbidden(w, r, "you can only update your own shifts")
			return
		}
		if req.UserID != nil || req.Date != nil || req.Notes != nil {
			h.forbidden(w, r, "only administrators can modify shift details")
			return
		}
		if req.Status == nil || domain.ShiftStatus(*req.Status) != domain.ShiftConfirmed {
			h.forbidden(w, r, "you can only confirm your own shifts")
			return
		}
	}

	reassigned := false

	if req.Date != nil {
		date, _ := time.Parse("2006-01-02", *req.Date)
		template, err := h.repository.GetShiftTemplateByID(shift.TemplateID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		shift.Date = date
		shift.StartTime, shift.EndTime = scheduler.ShiftInstants(template, date)
		reassigned = true
	}
	if req.UserID != nil {
		shift.UserID = req.UserID
		reassigned = true
	}

	if reassigned && shift.UserID != nil {
		overlaps, err := h.guard.HasOverlapExcluding(*shift.UserID, shift.Date, shift.StartTime, shift.EndTime, shift.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if overlaps {
			h.conflict(w, r, "the staff member already has an overlapping shift on this date")
			return
		}
	}

	if req.Status != nil {
		status := domain.ShiftStatus(*req.Status)
		if status == domain.ShiftConfirmed && shift.Status != domain.ShiftConfirmed {
			if shift.UserID == nil {
				h.conflict(w, r, "an unassigned shift cannot be confirmed")
				return
			}
			now := time.Now()
			shift.ConfirmedBy = &myInfo.ID
			shift.ConfirmedAt = &now
		}
		shift.Status = status
	}
	if req.Notes != nil {
		shift.Notes = req.Notes
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "shift update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.repository.GetShiftByID(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift updated", updated)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if shift.UserID != nil {
		h.notifyUser(*shift.UserID, "Shift cancelled",
			fmt.Sprintf("Your shift on %s has been cancelled.", shift.Date.Format("2006-01-02")),
			"shift", shift.ID)
	}

	h.successResponse(w, r, "shift deleted", nil)
}

func (h *Handler) GenerateShifts(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StartDate  string  `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate    string  `json:"endDate" validate:"required,datetime=2006-01-02"`
		LocationID int64   `json:"locationID" validate:"required"`
		RoleIDs    []int64 `json:"roleIDs" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetLocationByID(req.LocationID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "location not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	roles, err := h.repository.GetRolesByIDs(req.RoleIDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(roles) != len(req.RoleIDs) {
		h.notFound(w, r, "one or more roles not found")
		return
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	plan, err := h.planner.GeneratePlan(scheduler.PlanRequest{
		StartDate:  startDate,
		EndDate:    endDate,
		LocationID: req.LocationID,
		Roles:      roles,
		CreatedBy:  myInfo.ID,
	})
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	if err := h.repository.CreateShifts(plan.Shifts); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// re-read with relations so the response carries template, role,
	// location and assignee names
	shifts := make([]*domain.Shift, 0, len(plan.Shifts))
	for _, s := range plan.Shifts {
		created, err := h.repository.GetShiftByID(s.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		shifts = append(shifts, created)
	}

	for _, s := range shifts {
		if s.UserID == nil {
			continue
		}
		h.notify(domain.NotificationMessage{
			UserID:          s.User.ID,
			Email:           s.User.Email,
			FullName:        s.User.FullName,
			Title:           "New shift assigned",
			Message:         fmt.Sprintf("You have been assigned a %s shift on %s.", s.Template.Name, s.Date.Format("2006-01-02")),
			Type:            "shift",
			RelatedEntityID: s.ID,
		})
	}

	h.successResponse(w, r, "shift plan generated", map[string]any{
		"shifts":    shifts,
		"conflicts": plan.Conflicts,
		"summary":   plan.Summary(),
	})
}
