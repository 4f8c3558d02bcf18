package scheduler

import (
	"testing"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }
func i64ptr(v int64) *int64   { return &v }
func i32ptr(v int32) *int32   { return &v }

func rule(userID int64, mutate ...func(*domain.Availability)) *domain.Availability {
	av := &domain.Availability{
		UserID:   userID,
		Type:     domain.AvailabilityAvailable,
		Priority: 5,
		IsActive: true,
	}
	for _, m := range mutate {
		m(av)
	}
	return av
}

var (
	testDate  = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // a Monday
	testDay   = int32(1)
	dayWindow = Window{Start: 9 * 60, End: 17 * 60}
)

func TestResolveCandidates(t *testing.T) {
	testCases := []struct {
		name     string
		rules    []*domain.Availability
		window   Window
		expected map[int64]int32
	}{
		{
			name: "whole-day rule matches any window",
			rules: []*domain.Availability{
				rule(1),
			},
			window:   dayWindow,
			expected: map[int64]int32{1: 5},
		},
		{
			name: "preferred rule gets the bonus",
			rules: []*domain.Availability{
				rule(1, func(av *domain.Availability) { av.Type = domain.AvailabilityPreferred }),
			},
			window:   dayWindow,
			expected: map[int64]int32{1: 10},
		},
		{
			name: "duplicate user keeps the highest effective priority",
			rules: []*domain.Availability{
				rule(1, func(av *domain.Availability) { av.Priority = 8 }),
				rule(1, func(av *domain.Availability) {
					av.Priority = 4
					av.Type = domain.AvailabilityPreferred
				}),
			},
			window:   dayWindow,
			expected: map[int64]int32{1: 9},
		},
		{
			name: "unavailable rule never adds a candidate",
			rules: []*domain.Availability{
				rule(1, func(av *domain.Availability) { av.Type = domain.AvailabilityUnavailable }),
			},
			window:   dayWindow,
			expected: map[int64]int32{},
		},
		{
			name: "inactive rule is skipped",
			rules: []*domain.Availability{
				rule(1, func(av *domain.Availability) { av.IsActive = false }),
			},
			window:   dayWindow,
			expected: map[int64]int32{},
		},
		{
			name: "rule window must overlap the slot window",
			rules: []*domain.Availability{
				rule(1, func(av *domain.Availability) {
					av.StartTime = strptr("06:00")
					av.EndTime = strptr("09:00")
				}),
				rule(2, func(av *domain.Availability) {
					av.StartTime = strptr("08:00")
					av.EndTime = strptr("10:00")
				}),
			},
			window:   dayWindow,
			expected: map[int64]int32{2: 5},
		},
		{
			name: "touching windows do not overlap",
			rules: []*domain.Availability{
				rule(1, func(av *domain.Availability) {
					av.StartTime = strptr("17:00")
					av.EndTime = strptr("20:00")
				}),
			},
			window:   dayWindow,
			expected: map[int64]int32{},
		},
		{
			name: "scoped rule must match the slot",
			rules: []*domain.Availability{
				rule(1, func(av *domain.Availability) { av.RoleID = i64ptr(99) }),
				rule(2, func(av *domain.Availability) { av.LocationID = i64ptr(99) }),
				rule(3, func(av *domain.Availability) { av.DayOfWeek = i32ptr(3) }),
				rule(4, func(av *domain.Availability) {
					av.RoleID = i64ptr(7)
					av.LocationID = i64ptr(1)
					av.DayOfWeek = i32ptr(1)
				}),
			},
			window:   dayWindow,
			expected: map[int64]int32{4: 5},
		},
		{
			name: "date range bounds are inclusive",
			rules: []*domain.Availability{
				rule(1, func(av *domain.Availability) {
					start := testDate
					end := testDate
					av.StartDate = &start
					av.EndDate = &end
				}),
				rule(2, func(av *domain.Availability) {
					start := testDate.AddDate(0, 0, 1)
					end := testDate.AddDate(0, 0, 7)
					av.StartDate = &start
					av.EndDate = &end
				}),
			},
			window:   dayWindow,
			expected: map[int64]int32{1: 5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := NewResolver(&fakeRuleStore{rules: tc.rules})

			candidates, err := resolver.Resolve(1, 7, testDate, testDay, tc.window)
			require.NoError(t, err)

			got := make(map[int64]int32)
			for _, c := range candidates {
				got[c.UserID] = c.Priority
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestResolveEmptyIsNotAnError(t *testing.T) {
	resolver := NewResolver(&fakeRuleStore{})

	candidates, err := resolver.Resolve(1, 7, testDate, testDay, dayWindow)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
