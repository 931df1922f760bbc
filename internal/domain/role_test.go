package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{" Writer ", RoleWriter, true},
		{"ADMIN", RoleAdmin, true},
		{"", "", false},
		{"editor", "", false},
		{"admins", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRoleValidIsExact(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleWriter.Valid())
	assert.False(t, Role("Admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestScopeFor(t *testing.T) {
	assert.True(t, ScopeFor(Identity{ID: "a1", Role: RoleAdmin}).All())

	s := ScopeFor(Identity{ID: "w1", Role: RoleWriter})
	assert.False(t, s.All())
	assert.Equal(t, "w1", s.AuthorID)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindForbidden, KindOf(Forbidden("no")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrapped: %w", Conflict("dup"))))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("boom")))
	assert.Equal(t, "missing", NotFound("missing").Error())
}
