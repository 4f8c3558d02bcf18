package scheduler

import (
	"testing"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// two shifts assigned to two different staff members, the usual swap setup
func swapFixture() *fakeSwapStore {
	return newFakeSwapStore(
		assignedShift(10, 1, at(9, 0), at(17, 0), domain.ShiftScheduled),
		assignedShift(20, 2, at(6, 0), at(14, 0), domain.ShiftScheduled),
	)
}

func TestProposeCreatesPendingRequest(t *testing.T) {
	store := swapFixture()
	coordinator := NewCoordinator(store)

	req, err := coordinator.Propose(10, 20, 1, strptr("family dinner on Friday"))
	require.NoError(t, err)

	assert.NotZero(t, req.ID)
	assert.Equal(t, int64(10), req.OriginalShiftID)
	assert.Equal(t, int64(20), req.TargetShiftID)
	assert.Equal(t, int64(1), req.RequestedBy)
	assert.Equal(t, int64(2), req.RequestedFrom)
	assert.Equal(t, domain.SwapPending, req.Status)
	require.NotNil(t, req.Message)
	assert.Equal(t, "family dinner on Friday", *req.Message)

	stored, err := store.SwapRequestByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapPending, stored.Status)
}

func TestProposePreconditions(t *testing.T) {
	unassigned := assignedShift(30, 0, at(6, 0), at(14, 0), domain.ShiftScheduled)
	unassigned.UserID = nil

	testCases := []struct {
		name            string
		originalShiftID int64
		targetShiftID   int64
		requesterID     int64
		expectedKind    Kind
	}{
		{
			name:            "original shift missing",
			originalShiftID: 99,
			targetShiftID:   20,
			requesterID:     1,
			expectedKind:    KindNotFound,
		},
		{
			name:            "target shift missing",
			originalShiftID: 10,
			targetShiftID:   99,
			requesterID:     1,
			expectedKind:    KindNotFound,
		},
		{
			name:            "requester does not own the original shift",
			originalShiftID: 10,
			targetShiftID:   20,
			requesterID:     2,
			expectedKind:    KindAuthorization,
		},
		{
			name:            "target shift has no assignee",
			originalShiftID: 10,
			targetShiftID:   30,
			requesterID:     1,
			expectedKind:    KindConflict,
		},
		{
			name:            "swapping with yourself",
			originalShiftID: 10,
			targetShiftID:   40,
			requesterID:     1,
			expectedKind:    KindConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := swapFixture()
			store.shifts[unassigned.ID] = unassigned
			store.shifts[40] = assignedShift(40, 1, at(18, 0), at(22, 0), domain.ShiftScheduled)
			coordinator := NewCoordinator(store)

			_, err := coordinator.Propose(tc.originalShiftID, tc.targetShiftID, tc.requesterID, nil)
			require.Error(t, err)
			assert.Equal(t, tc.expectedKind, KindOf(err))
			assert.Empty(t, store.requests)
		})
	}
}

func TestProposeRejectsDuplicatePending(t *testing.T) {
	store := swapFixture()
	coordinator := NewCoordinator(store)

	_, err := coordinator.Propose(10, 20, 1, nil)
	require.NoError(t, err)

	_, err = coordinator.Propose(10, 20, 1, nil)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Len(t, store.requests, 1)
}

func TestApproveSwapsBothShifts(t *testing.T) {
	store := swapFixture()
	coordinator := NewCoordinator(store)

	proposed, err := coordinator.Propose(10, 20, 1, nil)
	require.NoError(t, err)

	req, err := coordinator.Approve(proposed.ID, 2, strptr("happy to take it"))
	require.NoError(t, err)

	assert.Equal(t, domain.SwapApproved, req.Status)
	require.NotNil(t, req.ResponseMessage)
	assert.Equal(t, "happy to take it", *req.ResponseMessage)
	require.NotNil(t, req.RespondedAt)

	original := store.shifts[10]
	target := store.shifts[20]
	require.NotNil(t, original.UserID)
	require.NotNil(t, target.UserID)
	assert.Equal(t, int64(2), *original.UserID)
	assert.Equal(t, int64(1), *target.UserID)
	assert.Equal(t, domain.ShiftSwapped, original.Status)
	assert.Equal(t, domain.ShiftSwapped, target.Status)

	stored, err := store.SwapRequestByID(proposed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapApproved, stored.Status)
}

func TestApproveAuthorizationAndResolution(t *testing.T) {
	t.Run("request missing", func(t *testing.T) {
		coordinator := NewCoordinator(swapFixture())

		_, err := coordinator.Approve(99, 2, nil)
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("only the requested staff member may respond", func(t *testing.T) {
		store := swapFixture()
		coordinator := NewCoordinator(store)
		proposed, err := coordinator.Propose(10, 20, 1, nil)
		require.NoError(t, err)

		_, err = coordinator.Approve(proposed.ID, 1, nil)
		require.Error(t, err)
		assert.Equal(t, KindAuthorization, KindOf(err))
	})

	t.Run("already resolved", func(t *testing.T) {
		store := swapFixture()
		coordinator := NewCoordinator(store)
		proposed, err := coordinator.Propose(10, 20, 1, nil)
		require.NoError(t, err)

		_, err = coordinator.Reject(proposed.ID, 2, nil)
		require.NoError(t, err)

		_, err = coordinator.Approve(proposed.ID, 2, nil)
		require.Error(t, err)
		assert.Equal(t, KindConflict, KindOf(err))
	})
}

func TestApproveFailedExecutionChangesNothing(t *testing.T) {
	store := swapFixture()
	coordinator := NewCoordinator(store)

	proposed, err := coordinator.Propose(10, 20, 1, nil)
	require.NoError(t, err)

	store.failExecute = true
	_, err = coordinator.Approve(proposed.ID, 2, nil)
	require.Error(t, err)

	stored, err := store.SwapRequestByID(proposed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapPending, stored.Status)

	require.NotNil(t, store.shifts[10].UserID)
	require.NotNil(t, store.shifts[20].UserID)
	assert.Equal(t, int64(1), *store.shifts[10].UserID)
	assert.Equal(t, int64(2), *store.shifts[20].UserID)
	assert.Equal(t, domain.ShiftScheduled, store.shifts[10].Status)
	assert.Equal(t, domain.ShiftScheduled, store.shifts[20].Status)
}

func TestRejectLeavesShiftsAlone(t *testing.T) {
	store := swapFixture()
	coordinator := NewCoordinator(store)

	proposed, err := coordinator.Propose(10, 20, 1, nil)
	require.NoError(t, err)

	req, err := coordinator.Reject(proposed.ID, 2, strptr("already have plans"))
	require.NoError(t, err)

	assert.Equal(t, domain.SwapRejected, req.Status)
	require.NotNil(t, req.RespondedAt)

	require.NotNil(t, store.shifts[10].UserID)
	require.NotNil(t, store.shifts[20].UserID)
	assert.Equal(t, int64(1), *store.shifts[10].UserID)
	assert.Equal(t, int64(2), *store.shifts[20].UserID)
	assert.Equal(t, domain.ShiftScheduled, store.shifts[10].Status)
	assert.Equal(t, domain.ShiftScheduled, store.shifts[20].Status)

	stored, err := store.SwapRequestByID(proposed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapRejected, stored.Status)
}
