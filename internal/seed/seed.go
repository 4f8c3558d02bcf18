// Package seed fills an empty database with a small but realistic sample
// property: two locations, three job roles, a set of shift templates per
// role and a staff roster with weekly availability rules. Intended for
// development and demo environments only.
package seed

import (
	"log/slog"
	"math/rand"

	"github.com/solera-dev/back-office/backend/internal/config"
	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/solera-dev/back-office/backend/internal/repository"
	"github.com/solera-dev/back-office/backend/internal/utils"
)

func int32ptr(v int32) *int32 { return &v }

var sampleLocations = []string{"Hotel Seeblick", "Stadthaus Annex"}

var sampleRoles = []domain.Role{
	{Name: "Reception", Description: "Front desk, check-in and check-out"},
	{Name: "Housekeeping", Description: "Rooms and common areas"},
	{Name: "Kitchen", Description: "Breakfast service and mise en place"},
}

type sampleTemplate struct {
	Name      string
	StartTime string
	EndTime   string
	Duration  *int32
}

var sampleTemplatesByRole = map[string][]sampleTemplate{
	"Reception": {
		{Name: "Early shift", StartTime: "06:00", EndTime: "14:00", Duration: int32ptr(480)},
		{Name: "Late shift", StartTime: "14:00", EndTime: "22:00", Duration: int32ptr(480)},
	},
	"Housekeeping": {
		{Name: "Morning round", StartTime: "08:00", EndTime: "13:00", Duration: int32ptr(300)},
		{Name: "Turndown", StartTime: "17:00", EndTime: "20:00", Duration: int32ptr(180)},
	},
	"Kitchen": {
		{Name: "Breakfast", StartTime: "05:30", EndTime: "11:30", Duration: int32ptr(360)},
	},
}

func SeedSampleData(r *repository.Repository, cfg *config.Config, userCount int) {
	locations := make([]*domain.Location, 0, len(sampleLocations))
	for _, name := range sampleLocations {
		location := &domain.Location{Name: name}
		if err := r.CreateLocation(location); err != nil {
			slog.Error("failed to seed location", "name", name, "error", err)
			return
		}
		locations = append(locations, location)
	}

	roles := make([]*domain.Role, 0, len(sampleRoles))
	for i := range sampleRoles {
		role := sampleRoles[i]
		if err := r.CreateRole(&role); err != nil {
			slog.Error("failed to seed role", "name", role.Name, "error", err)
			return
		}
		roles = append(roles, &role)
	}

	templateCount := 0
	for _, location := range locations {
		for _, role := range roles {
			for _, sample := range sampleTemplatesByRole[role.Name] {
				st := &domain.ShiftTemplate{
					RoleID:     role.ID,
					LocationID: location.ID,
					Name:       sample.Name,
					StartTime:  sample.StartTime,
					EndTime:    sample.EndTime,
					Duration:   sample.Duration,
					IsActive:   true,
				}
				if err := r.CreateShiftTemplate(st); err != nil {
					slog.Error("failed to seed shift template", "name", sample.Name, "error", err)
					return
				}
				templateCount++
			}
		}
	}

	userCnt := 0
	ruleCnt := 0
	for i := 0; i < userCount; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("failed to generate user", "error", err)
			continue
		}

		if err := r.CreateUser(user); err != nil {
			slog.Error("failed to seed user", "username", user.Username, "error", err)
			continue
		}
		userCnt++

		// every user gets rules for one role at one location, a few days a week
		location := locations[rand.Intn(len(locations))]
		role := roles[rand.Intn(len(roles))]
		ruleCount := rand.Intn(3) + 2
		for j := 0; j < ruleCount; j++ {
			rule := utils.GenerateRandomAvailabilityRule(user.ID, location.ID, role.ID)
			if err := r.CreateAvailability(rule); err != nil {
				slog.Error("failed to seed availability rule", "username", user.Username, "error", err)
				continue
			}
			ruleCnt++
		}
	}

	slog.Info("sample data seeded",
		"locations", len(locations),
		"roles", len(roles),
		"templates", templateCount,
		"users", userCnt,
		"availabilityRules", ruleCnt,
	)
}
