package scheduler

import (
	"testing"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func template(id int64, name string, start, end string) *domain.ShiftTemplate {
	return &domain.ShiftTemplate{
		ID:         id,
		RoleID:     7,
		LocationID: 1,
		Name:       name,
		StartTime:  start,
		EndTime:    end,
		IsActive:   true,
	}
}

func newTestPlanner(rules []*domain.Availability, templates []*domain.ShiftTemplate, existing []*domain.Shift) *Planner {
	resolver := NewResolver(&fakeRuleStore{rules: rules})
	guard := NewOverlapGuard(&fakeShiftStore{shifts: existing})
	return NewPlanner(&fakeTemplateStore{templates: templates}, resolver, guard)
}

func planRequest() PlanRequest {
	return PlanRequest{
		StartDate:  testDate,
		EndDate:    testDate,
		LocationID: 1,
		Roles:      []*domain.Role{{ID: 7}},
		CreatedBy:  100,
	}
}

func TestGeneratePlanAssignsHighestPriority(t *testing.T) {
	rules := []*domain.Availability{
		rule(1, func(av *domain.Availability) { av.Priority = 5 }),
		rule(2, func(av *domain.Availability) { av.Priority = 8 }),
	}
	planner := newTestPlanner(rules, []*domain.ShiftTemplate{template(1, "Day", "09:00", "17:00")}, nil)

	plan, err := planner.GeneratePlan(planRequest())
	require.NoError(t, err)
	require.Len(t, plan.Shifts, 1)
	require.Empty(t, plan.Conflicts)

	shift := plan.Shifts[0]
	require.NotNil(t, shift.UserID)
	assert.Equal(t, int64(2), *shift.UserID)
	assert.Equal(t, domain.ShiftScheduled, shift.Status)
	assert.Equal(t, int64(100), shift.CreatedBy)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), shift.StartTime)
	assert.Equal(t, time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), shift.EndTime)
}

func TestGeneratePlanPreferredBonusCanOutrank(t *testing.T) {
	rules := []*domain.Availability{
		rule(1, func(av *domain.Availability) { av.Priority = 8 }),
		rule(2, func(av *domain.Availability) {
			av.Priority = 4
			av.Type = domain.AvailabilityPreferred
		}),
	}
	planner := newTestPlanner(rules, []*domain.ShiftTemplate{template(1, "Day", "09:00", "17:00")}, nil)

	plan, err := planner.GeneratePlan(planRequest())
	require.NoError(t, err)
	require.Len(t, plan.Shifts, 1)
	require.NotNil(t, plan.Shifts[0].UserID)
	assert.Equal(t, int64(2), *plan.Shifts[0].UserID)
}

func TestGeneratePlanBalancesWorkload(t *testing.T) {
	rules := []*domain.Availability{
		rule(1),
		rule(2),
	}
	templates := []*domain.ShiftTemplate{
		template(1, "Morning", "06:00", "12:00"),
		template(2, "Evening", "12:00", "18:00"),
	}
	planner := newTestPlanner(rules, templates, nil)

	plan, err := planner.GeneratePlan(planRequest())
	require.NoError(t, err)
	require.Len(t, plan.Shifts, 2)
	require.NotNil(t, plan.Shifts[0].UserID)
	require.NotNil(t, plan.Shifts[1].UserID)

	// equal priority: the first slot goes to the lower user id, the second
	// to the other because the first now carries more workload
	assert.Equal(t, int64(1), *plan.Shifts[0].UserID)
	assert.Equal(t, int64(2), *plan.Shifts[1].UserID)
}

func TestGeneratePlanIsDeterministic(t *testing.T) {
	rules := []*domain.Availability{
		rule(3), rule(1), rule(2),
	}
	templates := []*domain.ShiftTemplate{template(1, "Day", "09:00", "17:00")}

	for i := 0; i < 10; i++ {
		planner := newTestPlanner(rules, templates, nil)
		plan, err := planner.GeneratePlan(planRequest())
		require.NoError(t, err)
		require.Len(t, plan.Shifts, 1)
		require.NotNil(t, plan.Shifts[0].UserID)
		assert.Equal(t, int64(1), *plan.Shifts[0].UserID)
	}
}

func TestGeneratePlanRecordsConflicts(t *testing.T) {
	t.Run("no available staff", func(t *testing.T) {
		planner := newTestPlanner(nil, []*domain.ShiftTemplate{template(1, "Day", "09:00", "17:00")}, nil)

		plan, err := planner.GeneratePlan(planRequest())
		require.NoError(t, err)
		require.Len(t, plan.Shifts, 1)
		assert.Nil(t, plan.Shifts[0].UserID)
		require.Len(t, plan.Conflicts, 1)
		assert.Equal(t, ReasonNoAvailableStaff, plan.Conflicts[0].Reason)
		assert.Equal(t, int64(7), plan.Conflicts[0].RoleID)
		assert.Equal(t, int64(1), plan.Conflicts[0].TemplateID)

		summary := plan.Summary()
		assert.Equal(t, Summary{Total: 1, Assigned: 0, Unassigned: 1, Conflicts: 1}, summary)
	})

	t.Run("all available staff overlapping", func(t *testing.T) {
		rules := []*domain.Availability{rule(1)}
		existing := []*domain.Shift{
			assignedShift(9, 1, at(8, 0), at(18, 0), domain.ShiftScheduled),
		}
		planner := newTestPlanner(rules, []*domain.ShiftTemplate{template(1, "Day", "09:00", "17:00")}, existing)

		plan, err := planner.GeneratePlan(planRequest())
		require.NoError(t, err)
		require.Len(t, plan.Shifts, 1)
		assert.Nil(t, plan.Shifts[0].UserID)
		require.Len(t, plan.Conflicts, 1)
		assert.Equal(t, ReasonAllOverlapping, plan.Conflicts[0].Reason)
	})
}

func TestGeneratePlanHardErrors(t *testing.T) {
	templates := []*domain.ShiftTemplate{template(1, "Day", "09:00", "17:00")}

	t.Run("inverted range", func(t *testing.T) {
		planner := newTestPlanner(nil, templates, nil)
		req := planRequest()
		req.EndDate = req.StartDate.AddDate(0, 0, -1)

		_, err := planner.GeneratePlan(req)
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("no roles", func(t *testing.T) {
		planner := newTestPlanner(nil, templates, nil)
		req := planRequest()
		req.Roles = nil

		_, err := planner.GeneratePlan(req)
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("no active templates", func(t *testing.T) {
		planner := newTestPlanner(nil, nil, nil)

		_, err := planner.GeneratePlan(planRequest())
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestGeneratePlanWalksRangeInclusive(t *testing.T) {
	rules := []*domain.Availability{rule(1)}
	planner := newTestPlanner(rules, []*domain.ShiftTemplate{template(1, "Day", "09:00", "17:00")}, nil)

	req := planRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, 2)

	plan, err := planner.GeneratePlan(req)
	require.NoError(t, err)
	require.Len(t, plan.Shifts, 3)
	for i, shift := range plan.Shifts {
		assert.Equal(t, testDate.AddDate(0, 0, i), shift.Date)
	}
}

func TestGeneratePlanDayOfWeekScopedRules(t *testing.T) {
	// rule restricted to Monday only assigns on the Monday of a Mon-Wed run
	rules := []*domain.Availability{
		rule(1, func(av *domain.Availability) { av.DayOfWeek = i32ptr(1) }),
	}
	planner := newTestPlanner(rules, []*domain.ShiftTemplate{template(1, "Day", "09:00", "17:00")}, nil)

	req := planRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, 2)

	plan, err := planner.GeneratePlan(req)
	require.NoError(t, err)
	require.Len(t, plan.Shifts, 3)
	assert.NotNil(t, plan.Shifts[0].UserID)
	assert.Nil(t, plan.Shifts[1].UserID)
	assert.Nil(t, plan.Shifts[2].UserID)
	assert.Len(t, plan.Conflicts, 2)
}

func TestShiftInstantsMidnightRollover(t *testing.T) {
	st := template(1, "Night", "22:00", "06:00")

	start, end := ShiftInstants(st, testDate)
	assert.Equal(t, time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC), end)
}
