package scheduler

import (
	"database/sql"
	"errors"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
)

// Coordinator validates and executes two-party shift swaps. Preconditions
// are checked in a fixed priority order: not-found, authorization,
// already-resolved, empty-target/self-swap, duplicate-pending.
type Coordinator struct {
	store SwapStore
}

func NewCoordinator(store SwapStore) *Coordinator {
	return &Coordinator{store: store}
}

// Propose creates a pending swap request between two existing shifts. The
// requester must own the original shift, the target shift must be assigned
// to somebody else, and no other pending request may exist for the pair.
func (c *Coordinator) Propose(originalShiftID int64, targetShiftID int64, requesterID int64, message *string) (*domain.SwapRequest, error) {
	original, err := c.store.ShiftByID(originalShiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, E(KindNotFound, "original shift not found")
		}
		return nil, err
	}

	target, err := c.store.ShiftByID(targetShiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, E(KindNotFound, "target shift not found")
		}
		return nil, err
	}

	if original.UserID == nil || *original.UserID != requesterID {
		return nil, E(KindAuthorization, "you can only swap your own shifts")
	}
	if target.UserID == nil {
		return nil, E(KindConflict, "target shift has no assignee")
	}
	if *target.UserID == requesterID {
		return nil, E(KindConflict, "cannot swap a shift with yourself")
	}

	pending, err := c.store.HasPendingSwap(originalShiftID, targetShiftID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, E(KindConflict, "a pending swap request already exists for these shifts")
	}

	req := &domain.SwapRequest{
		OriginalShiftID: originalShiftID,
		TargetShiftID:   targetShiftID,
		RequestedBy:     requesterID,
		RequestedFrom:   *target.UserID,
		Status:          domain.SwapPending,
		Message:         message,
	}
	if err := c.store.CreateSwapRequest(req); err != nil {
		return nil, err
	}

	return req, nil
}

// Approve executes the exchange: both shifts swap assignees and move to
// status swapped, and the request becomes approved, all in one atomic unit
// applied by the store. If any write fails nothing changes.
func (c *Coordinator) Approve(requestID int64, actorID int64, responseMessage *string) (*domain.SwapRequest, error) {
	req, err := c.resolvable(requestID, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	req.Status = domain.SwapApproved
	req.ResponseMessage = responseMessage
	req.RespondedAt = &now

	if err := c.store.ExecuteSwap(req); err != nil {
		return nil, err
	}

	return req, nil
}

// Reject resolves the request without touching either shift.
func (c *Coordinator) Reject(requestID int64, actorID int64, responseMessage *string) (*domain.SwapRequest, error) {
	req, err := c.resolvable(requestID, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	req.Status = domain.SwapRejected
	req.ResponseMessage = responseMessage
	req.RespondedAt = &now

	if err := c.store.ResolveSwapRequest(req); err != nil {
		return nil, err
	}

	return req, nil
}

func (c *Coordinator) resolvable(requestID int64, actorID int64) (*domain.SwapRequest, error) {
	req, err := c.store.SwapRequestByID(requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, E(KindNotFound, "swap request not found")
		}
		return nil, err
	}

	if req.RequestedFrom != actorID {
		return nil, E(KindAuthorization, "only the requested staff member can respond to this swap")
	}
	if req.Status != domain.SwapPending {
		return nil, E(KindConflict, "swap request has already been resolved")
	}

	return req, nil
}
