package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/solera-dev/back-office/backend/internal/utils"
)

func (h *Handler) GetAvailabilities(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	userID := myInfo.ID
	if param := r.URL.Query().Get("userID"); param != "" {
		requested, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid userID"))
			return
		}
		if requested != myInfo.ID && !myInfo.IsAdmin() {
			h.forbidden(w, r, "you can only list your own availability rules")
			return
		}
		userID = requested
	}

	rules, err := h.repository.GetAvailabilitiesByUser(userID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability rules fetched", rules)
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	av := r.Context().Value(AvailabilityCtx).(*domain.Availability)
	h.successResponse(w, r, "availability rule fetched", av)
}

type availabilityRequest struct {
	LocationID *int64  `json:"locationID"`
	RoleID     *int64  `json:"roleID"`
	DayOfWeek  *int32  `json:"dayOfWeek"`
	StartTime  *string `json:"startTime"`
	EndTime    *string `json:"endTime"`
	StartDate  *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Type       *string `json:"type" validate:"omitempty,oneof=available preferred unavailable"`
	Priority   *int32  `json:"priority"`
	Notes      *string `json:"notes"`
	IsActive   *bool   `json:"isActive"`
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &d
}

func (h *Handler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req availabilityRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	av := &domain.Availability{
		UserID:     myInfo.ID,
		LocationID: req.LocationID,
		RoleID:     req.RoleID,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		StartDate:  parseDate(req.StartDate),
		EndDate:    parseDate(req.EndDate),
		Type:       domain.AvailabilityAvailable,
		Priority:   5,
		Notes:      req.Notes,
		IsActive:   true,
	}
	if req.Type != nil {
		av.Type = domain.AvailabilityType(*req.Type)
	}
	if req.Priority != nil {
		av.Priority = *req.Priority
	}
	if req.IsActive != nil {
		av.IsActive = *req.IsActive
	}

	if err := utils.ValidateAvailabilityRule(av); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateAvailability(av); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability rule created", av)
}

func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	av := r.Context().Value(AvailabilityCtx).(*domain.Availability)

	var req availabilityRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.LocationID != nil {
		av.LocationID = req.LocationID
	}
	if req.RoleID != nil {
		av.RoleID = req.RoleID
	}
	if req.DayOfWeek != nil {
		av.DayOfWeek = req.DayOfWeek
	}
	if req.StartTime != nil {
		av.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		av.EndTime = req.EndTime
	}
	if req.StartDate != nil {
		av.StartDate = parseDate(req.StartDate)
	}
	if req.EndDate != nil {
		av.EndDate = parseDate(req.EndDate)
	}
	if req.Type != nil {
		av.Type = domain.AvailabilityType(*req.Type)
	}
	if req.Priority != nil {
		av.Priority = *req.Priority
	}
	if req.Notes != nil {
		av.Notes = req.Notes
	}
	if req.IsActive != nil {
		av.IsActive = *req.IsActive
	}

	if err := utils.ValidateAvailabilityRule(av); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateAvailability(av); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "availability update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "availability rule updated", av)
}

func (h *Handler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	av := r.Context().Value(AvailabilityCtx).(*domain.Availability)

	if err := h.repository.DeleteAvailability(av.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability rule deleted", nil)
}
