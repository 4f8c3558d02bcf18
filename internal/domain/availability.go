package domain

import (
	"time"
)

type AvailabilityType string

const (
	AvailabilityAvailable   AvailabilityType = "available"
	AvailabilityPreferred   AvailabilityType = "preferred"
	AvailabilityUnavailable AvailabilityType = "unavailable"
)

func ValidAvailabilityType(t AvailabilityType) bool {
	switch t {
	case AvailabilityAvailable, AvailabilityPreferred, AvailabilityUnavailable:
		return true
	}
	return false
}

// Availability is one staff member's rule for when they can or prefer to
// work. Nil scope fields widen the rule: nil RoleID applies to every role,
// nil DayOfWeek to every day, nil StartTime/EndTime to the whole day, nil
// StartDate/EndDate to an unbounded validity range. DayOfWeek follows
// time.Weekday numbering, 0 = Sunday.
type Availability struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"userID"`
	LocationID *int64           `json:"locationID"`
	RoleID     *int64           `json:"roleID"`
	DayOfWeek  *int32           `json:"dayOfWeek"`
	StartTime  *string          `json:"startTime"` // HH:MM
	EndTime    *string          `json:"endTime"`   // HH:MM
	StartDate  *time.Time       `json:"startDate"`
	EndDate    *time.Time       `json:"endDate"`
	Type       AvailabilityType `json:"type"`
	Priority   int32            `json:"priority"` // 1..10
	Notes      *string          `json:"notes"`
	IsActive   bool             `json:"isActive"`
	CreatedAt  time.Time        `json:"createdAt"`
	Version    int32            `json:"-"`

	User     *User     `json:"user,omitempty"`
	Location *Location `json:"location,omitempty"`
	Role     *Role     `json:"role,omitempty"`
}
