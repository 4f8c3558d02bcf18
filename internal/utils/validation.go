package utils

import (
	"fmt"
	"regexp"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ParseClock parses an HH:MM clock string into minutes since midnight.
func ParseClock(s string) (int, error) {
	if !clockPattern.MatchString(s) {
		return 0, fmt.Errorf("%q is not a valid HH:MM time", s)
	}
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}

// CombineDateAndClock places an HH:MM clock string on the given calendar
// date. The clock string must already be validated.
func CombineDateAndClock(date time.Time, clock string) time.Time {
	minutes, _ := ParseClock(clock)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(minutes) * time.Minute)
}

// StartOfDay truncates an instant to midnight of its calendar date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateTemplateTimes checks the clock strings of a template and that its
// start reads strictly before its end as same-day minutes. Overnight shifts
// are expressed by the engine rolling the end instant forward, not by an
// inverted template.
func ValidateTemplateTimes(st *domain.ShiftTemplate) error {
	start, err := ParseClock(st.StartTime)
	if err != nil {
		return fmt.Errorf("startTime: %w", err)
	}
	end, err := ParseClock(st.EndTime)
	if err != nil {
		return fmt.Errorf("endTime: %w", err)
	}
	if start >= end {
		return fmt.Errorf("startTime must be before endTime")
	}
	return nil
}

// ValidateAvailabilityRule checks the clock window, date range, day-of-week
// and priority bounds of an availability rule.
func ValidateAvailabilityRule(av *domain.Availability) error {
	if av.DayOfWeek != nil && (*av.DayOfWeek < 0 || *av.DayOfWeek > 6) {
		return fmt.Errorf("dayOfWeek must be between 0 (Sunday) and 6 (Saturday)")
	}
	if av.Priority < 1 || av.Priority > 10 {
		return fmt.Errorf("priority must be between 1 and 10")
	}
	if (av.StartTime == nil) != (av.EndTime == nil) {
		return fmt.Errorf("startTime and endTime must be set together")
	}
	if av.StartTime != nil {
		start, err := ParseClock(*av.StartTime)
		if err != nil {
			return fmt.Errorf("startTime: %w", err)
		}
		end, err := ParseClock(*av.EndTime)
		if err != nil {
			return fmt.Errorf("endTime: %w", err)
		}
		if start >= end {
			return fmt.Errorf("startTime must be before endTime")
		}
	}
	if (av.StartDate == nil) != (av.EndDate == nil) {
		return fmt.Errorf("startDate and endDate must be set together")
	}
	if av.StartDate != nil && av.StartDate.After(*av.EndDate) {
		return fmt.Errorf("startDate must not be after endDate")
	}
	if !domain.ValidAvailabilityType(av.Type) {
		return fmt.Errorf("type must be one of available, preferred, unavailable")
	}
	return nil
}
