package domain

import (
	"time"
)

type SwapStatus string

const (
	SwapPending  SwapStatus = "pending"
	SwapApproved SwapStatus = "approved"
	SwapRejected SwapStatus = "rejected"
)

// SwapRequest proposes exchanging the assignees of two existing shifts.
// RequestedBy owns the original shift, RequestedFrom owns the target shift
// and is the only actor who may approve or reject. Requests are never
// deleted; resolved rows stay as the audit trail.
type SwapRequest struct {
	ID              int64      `json:"id"`
	OriginalShiftID int64      `json:"originalShiftID"`
	TargetShiftID   int64      `json:"targetShiftID"`
	RequestedBy     int64      `json:"requestedBy"`
	RequestedFrom   int64      `json:"requestedFrom"`
	Status          SwapStatus `json:"status"`
	Message         *string    `json:"message"`
	ResponseMessage *string    `json:"responseMessage"`
	RespondedAt     *time.Time `json:"respondedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	Version         int32      `json:"-"`

	OriginalShift *Shift `json:"originalShift,omitempty"`
	TargetShift   *Shift `json:"targetShift,omitempty"`
	Requester     *User  `json:"requester,omitempty"`
	Requestee     *User  `json:"requestee,omitempty"`
}
