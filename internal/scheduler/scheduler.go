// Package scheduler contains the shift scheduling engine: availability
// resolution, overlap detection, plan generation over a date range and the
// shift swap state machine. Every component works against a small storage
// port so the engine can be exercised with in-memory fakes.
package scheduler

import (
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
)

// RuleStore returns the active availability rules whose scope matches the
// requested slot: location and role either unset on the rule or equal to the
// target, day-of-week either unset or equal, and the date either inside the
// rule's validity range or the range unbounded. Only rules of type available
// or preferred are returned; unavailable rules never add candidates.
// MatchesSlot documents the exact contract.
type RuleStore interface {
	MatchingRules(locationID int64, roleID int64, date time.Time, dayOfWeek int32) ([]*domain.Availability, error)
}

// ShiftStore returns the non-cancelled shifts assigned to a staff member on
// one calendar date. Unassigned shifts are never returned.
type ShiftStore interface {
	AssignedShiftsOn(userID int64, date time.Time) ([]*domain.Shift, error)
}

// TemplateStore returns the active shift templates for a role at a location.
type TemplateStore interface {
	ActiveTemplates(roleID int64, locationID int64) ([]*domain.ShiftTemplate, error)
}

// SwapStore is the persistence port of the swap coordinator. Lookups report a
// missing row with sql.ErrNoRows. ExecuteSwap must apply the two shift
// updates and the request update as one atomic unit.
type SwapStore interface {
	ShiftByID(id int64) (*domain.Shift, error)
	SwapRequestByID(id int64) (*domain.SwapRequest, error)
	HasPendingSwap(originalShiftID int64, targetShiftID int64) (bool, error)
	CreateSwapRequest(req *domain.SwapRequest) error
	ExecuteSwap(req *domain.SwapRequest) error
	ResolveSwapRequest(req *domain.SwapRequest) error
}
