package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/solera-dev/back-office/backend/internal/repository"
)

func (h *Handler) GetShiftSwaps(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	filter := repository.SwapFilter{}
	if !myInfo.IsAdmin() {
		filter.UserID = &myInfo.ID
	}

	if param := r.URL.Query().Get("status"); param != "" {
		status := domain.SwapStatus(param)
		switch status {
		case domain.SwapPending, domain.SwapApproved, domain.SwapRejected:
			filter.Status = &status
		default:
			h.badRequest(w, r, errors.New("invalid status"))
			return
		}
	}

	reqs, err := h.repository.GetSwapRequests(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap requests fetched", reqs)
}

func (h *Handler) GetShiftSwap(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("invalid swap request id"))
		return
	}

	req, err := h.repository.GetSwapRequestByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "swap request not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.RequestedBy != myInfo.ID && req.RequestedFrom != myInfo.ID && !myInfo.IsAdmin() {
		h.forbidden(w, r, "you are not a party to this swap request")
		return
	}

	h.successResponse(w, r, "swap request fetched", req)
}

func (h *Handler) ProposeShiftSwap(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OriginalShiftID int64   `json:"originalShiftID" validate:"required"`
		TargetShiftID   int64   `json:"targetShiftID" validate:"required"`
		Message         *string `json:"message"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	created, err := h.coordinator.Propose(req.OriginalShiftID, req.TargetShiftID, myInfo.ID, req.Message)
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.notifyUser(created.RequestedFrom, "New shift swap request",
		myInfo.FullName+" wants to swap shifts with you.",
		"shift_swap", created.ID)

	full, err := h.repository.GetSwapRequestByID(created.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap request created", full)
}

func (h *Handler) ApproveShiftSwap(w http.ResponseWriter, r *http.Request) {
	h.resolveShiftSwap(w, r, true)
}

func (h *Handler) RejectShiftSwap(w http.ResponseWriter, r *http.Request) {
	h.resolveShiftSwap(w, r, false)
}

func (h *Handler) resolveShiftSwap(w http.ResponseWriter, r *http.Request, approve bool) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("invalid swap request id"))
		return
	}

	var req struct {
		ResponseMessage *string `json:"responseMessage"`
	}
	// the body is optional for approve/reject
	if err := h.readJSON(r, &req); err != nil {
		req.ResponseMessage = nil
	}

	var resolved *domain.SwapRequest
	if approve {
		resolved, err = h.coordinator.Approve(id, myInfo.ID, req.ResponseMessage)
	} else {
		resolved, err = h.coordinator.Reject(id, myInfo.ID, req.ResponseMessage)
	}
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	title := "Shift swap rejected"
	message := myInfo.FullName + " rejected your shift swap request."
	if approve {
		title = "Shift swap approved"
		message = myInfo.FullName + " approved your shift swap request. The shifts have been exchanged."
	}
	h.notifyUser(resolved.RequestedBy, title, message, "shift_swap", resolved.ID)

	full, err := h.repository.GetSwapRequestByID(resolved.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	msg := "swap request rejected"
	if approve {
		msg = "swap request approved"
	}
	h.successResponse(w, r, msg, full)
}
