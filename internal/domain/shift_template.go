package domain

import (
	"time"
)

// ShiftTemplate is a reusable shift definition. StartTime and EndTime are
// clock strings in HH:MM; a template whose end reads earlier than its start is
// rejected on write, shifts crossing midnight are expressed by the engine
// rolling the computed end instant one day forward.
type ShiftTemplate struct {
	ID         int64     `json:"id"`
	RoleID     int64     `json:"roleID"`
	LocationID int64     `json:"locationID"`
	Name       string    `json:"name"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Duration   *int32    `json:"duration"` // minutes, informational
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`

	Role     *Role     `json:"role,omitempty"`
	Location *Location `json:"location,omitempty"`
}
