package scheduler

import (
	"time"
)

// OverlapGuard answers whether a staff member already works during a proposed
// interval. Like the resolver it never returns a domain error; an overlap is
// a normal answer.
type OverlapGuard struct {
	shifts ShiftStore
}

func NewOverlapGuard(shifts ShiftStore) *OverlapGuard {
	return &OverlapGuard{shifts: shifts}
}

// HasOverlap reports whether the proposed [start, end] interval intersects
// any non-cancelled shift already assigned to the user on that date, under
// inclusive-boundary semantics.
func (g *OverlapGuard) HasOverlap(userID int64, date time.Time, start time.Time, end time.Time) (bool, error) {
	return g.HasOverlapExcluding(userID, date, start, end, 0)
}

// HasOverlapExcluding is HasOverlap with one shift skipped, for edits that
// move or reassign an existing shift.
func (g *OverlapGuard) HasOverlapExcluding(userID int64, date time.Time, start time.Time, end time.Time, excludeShiftID int64) (bool, error) {
	existing, err := g.shifts.AssignedShiftsOn(userID, date)
	if err != nil {
		return false, err
	}

	for _, shift := range existing {
		if shift.ID == excludeShiftID {
			continue
		}
		if IntervalsOverlap(start, end, shift.StartTime, shift.EndTime) {
			return true, nil
		}
	}

	return false, nil
}

// IntervalsOverlap applies the inclusive-boundary three-clause interval test.
// The third clause catches the proposed interval fully containing the
// existing one.
func IntervalsOverlap(start time.Time, end time.Time, shiftStart time.Time, shiftEnd time.Time) bool {
	startsInside := !start.Before(shiftStart) && start.Before(shiftEnd)
	endsInside := end.After(shiftStart) && !end.After(shiftEnd)
	contains := !start.After(shiftStart) && !end.Before(shiftEnd)
	return startsInside || endsInside || contains
}
