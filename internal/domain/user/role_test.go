package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		expected bool
	}{
		{"user meets user", RoleUser, RoleUser, true},
		{"user below admin", RoleUser, RoleAdmin, false},
		{"user below superadmin", RoleUser, RoleSuperadmin, false},
		{"admin meets user", RoleAdmin, RoleUser, true},
		{"admin meets admin", RoleAdmin, RoleAdmin, true},
		{"admin below superadmin", RoleAdmin, RoleSuperadmin, false},
		{"superadmin meets admin", RoleSuperadmin, RoleAdmin, true},
		{"superadmin meets superadmin", RoleSuperadmin, RoleSuperadmin, true},
		{"unknown role meets nothing", Role("manager"), RoleUser, false},
		{"nothing meets unknown requirement", RoleSuperadmin, Role("owner"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.AtLeast(tt.required))
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleSuperadmin.IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("root").IsValid())
}

func TestProfileIsBanned(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	assert.False(t, (&Profile{}).IsBanned(now), "no ban set")
	assert.True(t, (&Profile{BannedUntil: &future}).IsBanned(now), "ban in the future")
	assert.False(t, (&Profile{BannedUntil: &past}).IsBanned(now), "ban expired")
}
