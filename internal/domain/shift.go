package domain

import (
	"time"
)

type ShiftStatus string

const (
	ShiftScheduled ShiftStatus = "scheduled"
	ShiftConfirmed ShiftStatus = "confirmed"
	ShiftCancelled ShiftStatus = "cancelled"
	ShiftSwapped   ShiftStatus = "swapped"
)

func ValidShiftStatus(s ShiftStatus) bool {
	switch s {
	case ShiftScheduled, ShiftConfirmed, ShiftCancelled, ShiftSwapped:
		return true
	}
	return false
}

// Shift is one scheduled work period derived from a template and a date.
// UserID is nil while the slot is unassigned.
type Shift struct {
	ID          int64       `json:"id"`
	TemplateID  int64       `json:"templateID"`
	RoleID      int64       `json:"roleID"`
	LocationID  int64       `json:"locationID"`
	UserID      *int64      `json:"userID"`
	Date        time.Time   `json:"date"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     time.Time   `json:"endTime"`
	Status      ShiftStatus `json:"status"`
	Notes       *string     `json:"notes"`
	CreatedBy   int64       `json:"createdBy"`
	ConfirmedBy *int64      `json:"confirmedBy"`
	ConfirmedAt *time.Time  `json:"confirmedAt"`
	CreatedAt   time.Time   `json:"createdAt"`
	Version     int32       `json:"-"`

	Template *ShiftTemplate `json:"template,omitempty"`
	Role     *Role          `json:"role,omitempty"`
	Location *Location      `json:"location,omitempty"`
	User     *User          `json:"user,omitempty"`
}
