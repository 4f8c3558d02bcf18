package scheduler

import (
	"sort"
	"time"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/solera-dev/back-office/backend/internal/utils"
)

// Conflict reasons recorded by the planner for slots it could not fill.
const (
	ReasonNoAvailableStaff = "no available staff"
	ReasonAllOverlapping   = "all available staff have overlapping shifts"
)

// PlanRequest describes one plan-generation run: an inclusive date range, a
// location and the roles to fill. CreatedBy stamps the generated shifts.
type PlanRequest struct {
	StartDate  time.Time
	EndDate    time.Time
	LocationID int64
	Roles      []*domain.Role
	CreatedBy  int64
}

// Conflict records one (day, role, template) slot left unassigned.
type Conflict struct {
	Date       time.Time `json:"date"`
	RoleID     int64     `json:"roleID"`
	TemplateID int64     `json:"templateID"`
	Reason     string    `json:"reason"`
}

type Summary struct {
	Total      int `json:"total"`
	Assigned   int `json:"assigned"`
	Unassigned int `json:"unassigned"`
	Conflicts  int `json:"conflicts"`
}

// Plan is the planner output: unpersisted shift rows plus the conflicts.
// Partial success is the expected normal outcome; the caller persists the
// shifts in one batch.
type Plan struct {
	Shifts    []*domain.Shift
	Conflicts []Conflict
}

func (p *Plan) Summary() Summary {
	s := Summary{Total: len(p.Shifts), Conflicts: len(p.Conflicts)}
	for _, shift := range p.Shifts {
		if shift.UserID != nil {
			s.Assigned++
		} else {
			s.Unassigned++
		}
	}
	return s
}

// Planner generates a full shift plan for a date range. It is request-scoped:
// the per-staff workload counter lives only for one GeneratePlan call.
type Planner struct {
	templates TemplateStore
	resolver  *Resolver
	guard     *OverlapGuard
}

func NewPlanner(templates TemplateStore, resolver *Resolver, guard *OverlapGuard) *Planner {
	return &Planner{templates: templates, resolver: resolver, guard: guard}
}

// GeneratePlan walks the range day by day, role by role, template by
// template, and assigns the best available candidate to each slot. Slots
// that cannot be filled become unassigned shifts with a conflict record
// rather than errors. Hard errors are raised only for range-level problems,
// before anything is produced.
func (p *Planner) GeneratePlan(req PlanRequest) (*Plan, error) {
	start := utils.StartOfDay(req.StartDate)
	end := utils.StartOfDay(req.EndDate)

	if start.After(end) {
		return nil, E(KindValidation, "startDate must not be after endDate")
	}
	if len(req.Roles) == 0 {
		return nil, E(KindValidation, "at least one role is required")
	}

	// Templates do not change mid-run, so read them once per role.
	templatesByRole := make(map[int64][]*domain.ShiftTemplate)
	total := 0
	for _, role := range req.Roles {
		templates, err := p.templates.ActiveTemplates(role.ID, req.LocationID)
		if err != nil {
			return nil, err
		}
		templatesByRole[role.ID] = templates
		total += len(templates)
	}
	if total == 0 {
		return nil, E(KindNotFound, "no active shift templates for the requested roles")
	}

	plan := &Plan{
		Shifts:    make([]*domain.Shift, 0),
		Conflicts: make([]Conflict, 0),
	}
	workload := make(map[int64]int)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayOfWeek := int32(day.Weekday())

		for _, role := range req.Roles {
			for _, template := range templatesByRole[role.ID] {
				shift := p.newShift(req, role.ID, template, day)

				window, ok := templateWindow(template)
				if !ok {
					// A template with unparseable clock strings should not
					// exist; treat it as a slot no one can fill.
					plan.Shifts = append(plan.Shifts, shift)
					plan.Conflicts = append(plan.Conflicts, Conflict{
						Date:       day,
						RoleID:     role.ID,
						TemplateID: template.ID,
						Reason:     ReasonNoAvailableStaff,
					})
					continue
				}

				candidates, err := p.resolver.Resolve(req.LocationID, role.ID, day, dayOfWeek, window)
				if err != nil {
					return nil, err
				}

				if len(candidates) == 0 {
					plan.Shifts = append(plan.Shifts, shift)
					plan.Conflicts = append(plan.Conflicts, Conflict{
						Date:       day,
						RoleID:     role.ID,
						TemplateID: template.ID,
						Reason:     ReasonNoAvailableStaff,
					})
					continue
				}

				// Highest priority first, then the least-loaded staff member
				// of this run. The user id tiebreak keeps the outcome
				// deterministic for identical inputs.
				sort.SliceStable(candidates, func(i, j int) bool {
					if candidates[i].Priority != candidates[j].Priority {
						return candidates[i].Priority > candidates[j].Priority
					}
					if workload[candidates[i].UserID] != workload[candidates[j].UserID] {
						return workload[candidates[i].UserID] < workload[candidates[j].UserID]
					}
					return candidates[i].UserID < candidates[j].UserID
				})

				assigned := false
				for _, candidate := range candidates {
					overlaps, err := p.guard.HasOverlap(candidate.UserID, day, shift.StartTime, shift.EndTime)
					if err != nil {
						return nil, err
					}
					if overlaps {
						continue
					}

					userID := candidate.UserID
					shift.UserID = &userID
					workload[userID]++
					assigned = true
					break
				}

				plan.Shifts = append(plan.Shifts, shift)
				if !assigned {
					plan.Conflicts = append(plan.Conflicts, Conflict{
						Date:       day,
						RoleID:     role.ID,
						TemplateID: template.ID,
						Reason:     ReasonAllOverlapping,
					})
				}
			}
		}
	}

	return plan, nil
}

func (p *Planner) newShift(req PlanRequest, roleID int64, template *domain.ShiftTemplate, day time.Time) *domain.Shift {
	start, end := ShiftInstants(template, day)
	return &domain.Shift{
		TemplateID: template.ID,
		RoleID:     roleID,
		LocationID: req.LocationID,
		Date:       day,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.ShiftScheduled,
		CreatedBy:  req.CreatedBy,
	}
}

// ShiftInstants combines a template's time-of-day fields with a calendar
// date. When the combined end does not lie after the start the shift crosses
// midnight and the end rolls one day forward.
func ShiftInstants(template *domain.ShiftTemplate, date time.Time) (time.Time, time.Time) {
	start := utils.CombineDateAndClock(date, template.StartTime)
	end := utils.CombineDateAndClock(date, template.EndTime)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

func templateWindow(template *domain.ShiftTemplate) (Window, bool) {
	start, err := utils.ParseClock(template.StartTime)
	if err != nil {
		return Window{}, false
	}
	end, err := utils.ParseClock(template.EndTime)
	if err != nil {
		return Window{}, false
	}
	return Window{Start: start, End: end}, true
}
