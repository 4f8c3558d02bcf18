package domain

import "time"

// Role is a job role staff can be scheduled for (reception, housekeeping, ...),
// not an access level. Access levels live on User.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
