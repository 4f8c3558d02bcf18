package scheduler

import (
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/solera-dev/back-office/backend/internal/utils"
)

// preferredBonus is added to a rule's priority when its type is preferred.
// A low-priority preferred rule can outrank a high-priority plain available
// rule only when the bonus closes the gap; the value is a tuning constant
// carried over from the original planner.
const preferredBonus = 5

// Candidate is one staff member eligible for a slot, with the effective
// priority of their best matching rule.
type Candidate struct {
	UserID   int64
	Priority int32
}

// Window is a time-of-day interval in minutes since midnight.
type Window struct {
	Start int
	End   int
}

// Overlaps reports half-open interval overlap with other.
func (w Window) Overlaps(other Window) bool {
	return w.Start < other.End && other.Start < w.End
}

// Resolver computes the set of staff eligible to work a slot. It only adds
// candidates; an empty result is a normal outcome, never an error.
type Resolver struct {
	rules RuleStore
}

func NewResolver(rules RuleStore) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve returns the deduplicated, unordered candidates for the slot.
// Ordering is the planner's concern. A rule with a time-of-day window
// matches only when that window overlaps the requested one; a rule without
// a window means whole-day availability. A staff member matched by several
// rules keeps the highest effective priority.
func (r *Resolver) Resolve(locationID int64, roleID int64, date time.Time, dayOfWeek int32, window Window) ([]Candidate, error) {
	rules, err := r.rules.MatchingRules(locationID, roleID, date, dayOfWeek)
	if err != nil {
		return nil, err
	}

	best := make(map[int64]int32)
	for _, rule := range rules {
		if rule.StartTime != nil && rule.EndTime != nil {
			ruleStart, err := utils.ParseClock(*rule.StartTime)
			if err != nil {
				continue
			}
			ruleEnd, err := utils.ParseClock(*rule.EndTime)
			if err != nil {
				continue
			}
			if !window.Overlaps(Window{Start: ruleStart, End: ruleEnd}) {
				continue
			}
		}

		priority := rule.Priority
		if rule.Type == domain.AvailabilityPreferred {
			priority += preferredBonus
		}

		if current, exists := best[rule.UserID]; !exists || current < priority {
			best[rule.UserID] = priority
		}
	}

	candidates := make([]Candidate, 0, len(best))
	for userID, priority := range best {
		candidates = append(candidates, Candidate{UserID: userID, Priority: priority})
	}

	return candidates, nil
}

// MatchesSlot is the scope-matching contract a RuleStore implements: nil
// scope fields on the rule widen it to every location, role or day, and a
// rule with a validity range matches only dates inside it (inclusive).
// The SQL store expresses this in its WHERE clause; in-memory stores can
// call it directly.
func MatchesSlot(rule *domain.Availability, locationID int64, roleID int64, date time.Time, dayOfWeek int32) bool {
	if !rule.IsActive {
		return false
	}
	if rule.Type != domain.AvailabilityAvailable && rule.Type != domain.AvailabilityPreferred {
		return false
	}
	if rule.LocationID != nil && *rule.LocationID != locationID {
		return false
	}
	if rule.RoleID != nil && *rule.RoleID != roleID {
		return false
	}
	if rule.DayOfWeek != nil && *rule.DayOfWeek != dayOfWeek {
		return false
	}
	if rule.StartDate != nil && rule.EndDate != nil {
		day := utils.StartOfDay(date)
		if day.Before(utils.StartOfDay(*rule.StartDate)) || day.After(utils.StartOfDay(*rule.EndDate)) {
			return false
		}
	}
	return true
}
