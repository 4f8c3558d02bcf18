package scheduler

import (
	"database/sql"
	"errors"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/solera-dev/back-office/backend/internal/utils"
)

type fakeRuleStore struct {
	rules []*domain.Availability
	err   error
}

func (f *fakeRuleStore) MatchingRules(locationID int64, roleID int64, date time.Time, dayOfWeek int32) ([]*domain.Availability, error) {
	if f.err != nil {
		return nil, f.err
	}

	matched := make([]*domain.Availability, 0)
	for _, rule := range f.rules {
		if MatchesSlot(rule, locationID, roleID, date, dayOfWeek) {
			matched = append(matched, rule)
		}
	}
	return matched, nil
}

type fakeShiftStore struct {
	shifts []*domain.Shift
	err    error
}

func (f *fakeShiftStore) AssignedShiftsOn(userID int64, date time.Time) ([]*domain.Shift, error) {
	if f.err != nil {
		return nil, f.err
	}

	day := utils.StartOfDay(date)
	matched := make([]*domain.Shift, 0)
	for _, shift := range f.shifts {
		if shift.UserID == nil || *shift.UserID != userID {
			continue
		}
		if shift.Status == domain.ShiftCancelled {
			continue
		}
		if !utils.StartOfDay(shift.Date).Equal(day) {
			continue
		}
		matched = append(matched, shift)
	}
	return matched, nil
}

type fakeTemplateStore struct {
	templates []*domain.ShiftTemplate
}

func (f *fakeTemplateStore) ActiveTemplates(roleID int64, locationID int64) ([]*domain.ShiftTemplate, error) {
	matched := make([]*domain.ShiftTemplate, 0)
	for _, st := range f.templates {
		if st.IsActive && st.RoleID == roleID && st.LocationID == locationID {
			matched = append(matched, st)
		}
	}
	return matched, nil
}

// fakeSwapStore keeps shifts and requests in maps and can be told to fail
// the atomic swap, so tests can assert that a failed execution changes
// nothing.
type fakeSwapStore struct {
	shifts      map[int64]*domain.Shift
	requests    map[int64]*domain.SwapRequest
	nextID      int64
	failExecute bool
}

func newFakeSwapStore(shifts ...*domain.Shift) *fakeSwapStore {
	s := &fakeSwapStore{
		shifts:   make(map[int64]*domain.Shift),
		requests: make(map[int64]*domain.SwapRequest),
	}
	for _, shift := range shifts {
		s.shifts[shift.ID] = shift
	}
	return s
}

func (f *fakeSwapStore) ShiftByID(id int64) (*domain.Shift, error) {
	shift, ok := f.shifts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return shift, nil
}

func (f *fakeSwapStore) SwapRequestByID(id int64) (*domain.SwapRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *req
	return &copied, nil
}

func (f *fakeSwapStore) HasPendingSwap(originalShiftID int64, targetShiftID int64) (bool, error) {
	for _, req := range f.requests {
		if req.OriginalShiftID == originalShiftID && req.TargetShiftID == targetShiftID && req.Status == domain.SwapPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSwapStore) CreateSwapRequest(req *domain.SwapRequest) error {
	f.nextID++
	req.ID = f.nextID
	req.CreatedAt = time.Now()
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeSwapStore) ExecuteSwap(req *domain.SwapRequest) error {
	if f.failExecute {
		return errors.New("transaction failed")
	}

	original := f.shifts[req.OriginalShiftID]
	target := f.shifts[req.TargetShiftID]

	originalUser := req.RequestedFrom
	targetUser := req.RequestedBy
	original.UserID = &originalUser
	original.Status = domain.ShiftSwapped
	target.UserID = &targetUser
	target.Status = domain.ShiftSwapped

	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeSwapStore) ResolveSwapRequest(req *domain.SwapRequest) error {
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}
