package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
)

func TestParseBranchScope(t *testing.T) {
	assert.True(t, entity.ParseBranchScope("*").All())
	assert.False(t, entity.ParseBranchScope("karachi-1").All())
	assert.Equal(t, "karachi-1", entity.ParseBranchScope("karachi-1").Code())
	assert.False(t, entity.ParseBranchScope("").All())
	assert.Equal(t, "", entity.ParseBranchScope("").Code())
}

func TestBranchScope_Allows(t *testing.T) {
	assert.True(t, entity.AllBranches().Allows("karachi-1"))
	assert.True(t, entity.AllBranches().Allows("lo-que-sea"))

	one := entity.OneBranch("karachi-1")
	assert.True(t, one.Allows("karachi-1"))
	assert.False(t, one.Allows("lahore-1"))

	none := entity.NoBranches()
	assert.False(t, none.Allows("karachi-1"))
	assert.False(t, none.Allows(""), "el ámbito vacío no autoriza ni la cadena vacía")
}

func TestBranchScope_StringRoundTrip(t *testing.T) {
	for _, raw := range []string{"*", "karachi-1", ""} {
		assert.Equal(t, raw, entity.ParseBranchScope(raw).String())
	}
}

func TestElevatedRole(t *testing.T) {
	assert.True(t, entity.ElevatedRole(entity.RoleAdmin))
	assert.True(t, entity.ElevatedRole(entity.RoleOwner))
	assert.False(t, entity.ElevatedRole(entity.RoleManager))
	assert.False(t, entity.ElevatedRole(""))
}
