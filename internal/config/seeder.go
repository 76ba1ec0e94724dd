package config

import "gatepass/internal/core/domain"

// SeedPassword is shared by all demo accounts
const SeedPassword = "pass123"

// SeedSnapshot returns the default database used when no valid snapshot is stored.
// Every call returns a fresh copy.
// These accounts are for development/testing only.
func SeedSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Users: []domain.User{
			{ID: "1", Username: "student1", Password: SeedPassword, Role: domain.RoleStudent, Name: "Rahul Kumar"},
			{ID: "2", Username: "mod1", Password: SeedPassword, Role: domain.RoleModerator, Name: "Dr. Sharma"},
			{ID: "3", Username: "gate1", Password: SeedPassword, Role: domain.RoleGatekeeper, Name: "Security Officer"},
			{ID: "4", Username: "admin1", Password: SeedPassword, Role: domain.RoleAdmin, Name: "System Administrator"},
		},
		Passes: []domain.Pass{},
	}
}
