package scheduler

import (
	"testing"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func assignedShift(id int64, userID int64, start, end time.Time, status domain.ShiftStatus) *domain.Shift {
	return &domain.Shift{
		ID:        id,
		UserID:    &userID,
		Date:      testDate,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestHasOverlap(t *testing.T) {
	existing := assignedShift(1, 42, at(9, 0), at(17, 0), domain.ShiftScheduled)

	testCases := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{"identical interval", at(9, 0), at(17, 0), true},
		{"starts inside", at(12, 0), at(20, 0), true},
		{"ends inside", at(6, 0), at(12, 0), true},
		{"fully contained", at(10, 0), at(11, 0), true},
		{"fully containing", at(8, 0), at(18, 0), true},
		{"before, touching the start", at(6, 0), at(9, 0), false},
		{"after, touching the end", at(17, 0), at(20, 0), false},
		{"disjoint", at(18, 0), at(20, 0), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			guard := NewOverlapGuard(&fakeShiftStore{shifts: []*domain.Shift{existing}})

			got, err := guard.HasOverlap(42, testDate, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestHasOverlapIgnoresOtherUsersAndCancelled(t *testing.T) {
	store := &fakeShiftStore{shifts: []*domain.Shift{
		assignedShift(1, 7, at(9, 0), at(17, 0), domain.ShiftScheduled),
		assignedShift(2, 42, at(9, 0), at(17, 0), domain.ShiftCancelled),
	}}
	guard := NewOverlapGuard(store)

	got, err := guard.HasOverlap(42, testDate, at(10, 0), at(12, 0))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHasOverlapExcluding(t *testing.T) {
	store := &fakeShiftStore{shifts: []*domain.Shift{
		assignedShift(1, 42, at(9, 0), at(17, 0), domain.ShiftScheduled),
	}}
	guard := NewOverlapGuard(store)

	// the shift being edited does not conflict with itself
	got, err := guard.HasOverlapExcluding(42, testDate, at(10, 0), at(18, 0), 1)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = guard.HasOverlapExcluding(42, testDate, at(10, 0), at(18, 0), 99)
	require.NoError(t, err)
	assert.True(t, got)
}
