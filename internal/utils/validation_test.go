package utils

import (
	"testing"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }
func i32ptr(v int32) *int32   { return &v }

func TestParseClock(t *testing.T) {
	testCases := []struct {
		clock           string
		expectedMinutes int
		expectError     bool
	}{
		{clock: "00:00", expectedMinutes: 0},
		{clock: "09:30", expectedMinutes: 570},
		{clock: "23:59", expectedMinutes: 1439},
		{clock: "24:00", expectError: true},
		{clock: "9:00", expectError: true},
		{clock: "09:60", expectError: true},
		{clock: "0930", expectError: true},
		{clock: "", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.clock, func(t *testing.T) {
			minutes, err := ParseClock(tc.clock)
			if tc.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedMinutes, minutes)
		})
	}
}

func TestCombineDateAndClock(t *testing.T) {
	date := time.Date(2025, 3, 10, 15, 42, 7, 0, time.UTC)

	combined := CombineDateAndClock(date, "06:30")
	assert.Equal(t, time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC), combined)
}

func TestStartOfDay(t *testing.T) {
	instant := time.Date(2025, 3, 10, 23, 59, 59, 123, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(instant))
}

func TestValidateTemplateTimes(t *testing.T) {
	testCases := []struct {
		name        string
		startTime   string
		endTime     string
		expectError bool
	}{
		{name: "valid day shift", startTime: "09:00", endTime: "17:00"},
		{name: "start equals end", startTime: "09:00", endTime: "09:00", expectError: true},
		{name: "inverted", startTime: "17:00", endTime: "09:00", expectError: true},
		{name: "bad start clock", startTime: "25:00", endTime: "17:00", expectError: true},
		{name: "bad end clock", startTime: "09:00", endTime: "17:5", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTemplateTimes(&domain.ShiftTemplate{StartTime: tc.startTime, EndTime: tc.endTime})
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAvailabilityRule(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	base := func(mutate ...func(*domain.Availability)) *domain.Availability {
		av := &domain.Availability{
			UserID:   1,
			Type:     domain.AvailabilityAvailable,
			Priority: 5,
			IsActive: true,
		}
		for _, m := range mutate {
			m(av)
		}
		return av
	}

	testCases := []struct {
		name        string
		rule        *domain.Availability
		expectError bool
	}{
		{name: "minimal whole-day rule", rule: base()},
		{
			name: "fully scoped rule",
			rule: base(func(av *domain.Availability) {
				av.DayOfWeek = i32ptr(1)
				av.StartTime = strptr("08:00")
				av.EndTime = strptr("16:00")
				av.StartDate = &monday
				av.EndDate = &friday
				av.Type = domain.AvailabilityPreferred
			}),
		},
		{
			name:        "day of week out of range",
			rule:        base(func(av *domain.Availability) { av.DayOfWeek = i32ptr(7) }),
			expectError: true,
		},
		{
			name:        "priority too low",
			rule:        base(func(av *domain.Availability) { av.Priority = 0 }),
			expectError: true,
		},
		{
			name:        "priority too high",
			rule:        base(func(av *domain.Availability) { av.Priority = 11 }),
			expectError: true,
		},
		{
			name:        "start time without end time",
			rule:        base(func(av *domain.Availability) { av.StartTime = strptr("08:00") }),
			expectError: true,
		},
		{
			name: "inverted clock window",
			rule: base(func(av *domain.Availability) {
				av.StartTime = strptr("16:00")
				av.EndTime = strptr("08:00")
			}),
			expectError: true,
		},
		{
			name:        "end date without start date",
			rule:        base(func(av *domain.Availability) { av.EndDate = &friday }),
			expectError: true,
		},
		{
			name: "inverted date range",
			rule: base(func(av *domain.Availability) {
				av.StartDate = &friday
				av.EndDate = &monday
			}),
			expectError: true,
		},
		{
			name:        "unknown type",
			rule:        base(func(av *domain.Availability) { av.Type = "on_call" }),
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAvailabilityRule(tc.rule)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
