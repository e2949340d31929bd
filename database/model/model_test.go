package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLookup(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid(), r)
		assert.NotEqual(t, string(r), r.Label())
	}

	r, ok := ParseRole("deputy_head")
	assert.True(t, ok)
	assert.Equal(t, RoleDeputyHead, r)
	assert.Equal(t, "Зам. отделения", r.Label())
	assert.Equal(t, "Мл. следователь", RoleJuniorInvestigator.Label())

	_, ok = ParseRole("superuser")
	assert.False(t, ok)
	assert.Equal(t, "superuser", Role("superuser").Label())
}

func TestDecisionTransitions(t *testing.T) {
	tests := []struct {
		from, to Decision
		allowed  bool
	}{
		{Pending, Approved, true},
		{Pending, Rejected, true},
		{Pending, Pending, false},
		{Approved, Rejected, false},
		{Approved, Pending, false},
		{Rejected, Approved, false},
		{Rejected, Pending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestFeedbackStatusValid(t *testing.T) {
	assert.True(t, FeedbackInProgress.Valid())
	assert.False(t, FeedbackStatus("archived").Valid())
}

func TestAdminUserDisplayName(t *testing.T) {
	u := AdminUser{Username: "ivanov"}
	assert.Equal(t, "ivanov", u.DisplayName())
	u.FullName = "Иванов Иван"
	assert.Equal(t, "Иванов Иван", u.DisplayName())
}
