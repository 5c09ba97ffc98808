package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccessProperty(t *testing.T) {
	prop := &Property{ID: 1, AddedByID: 10, LandlordID: 20}
	tenants := []int64{30, 31}

	assert.True(t, CanAccessProperty(Principal{UserID: 10, Role: RoleAgent}, prop, tenants))
	assert.True(t, CanAccessProperty(Principal{UserID: 20, Role: RoleLandlord}, prop, tenants))
	assert.True(t, CanAccessProperty(Principal{UserID: 30, Role: RoleTenant}, prop, tenants))

	// unrelated user, empty tenancy, nil property: all denied
	assert.False(t, CanAccessProperty(Principal{UserID: 99, Role: RoleTenant}, prop, tenants))
	assert.False(t, CanAccessProperty(Principal{UserID: 30, Role: RoleTenant}, prop, nil))
	assert.False(t, CanAccessProperty(Principal{UserID: 10, Role: RoleAgent}, nil, tenants))
	assert.False(t, CanAccessProperty(Principal{}, prop, tenants))
}

func TestCanManageProperty(t *testing.T) {
	prop := &Property{ID: 1, AddedByID: 10, LandlordID: 20}

	assert.True(t, CanManageProperty(Principal{UserID: 10}, prop))
	assert.True(t, CanManageProperty(Principal{UserID: 20}, prop))
	assert.False(t, CanManageProperty(Principal{UserID: 30}, prop)) // tenant can't manage
	assert.False(t, CanManageProperty(Principal{UserID: 10}, nil))
}

func TestCanAccessJob(t *testing.T) {
	prop := &Property{ID: 1, AddedByID: 10, LandlordID: 20}
	assignee := int64(40)
	job := &MaintenanceJob{ID: 5, PropertyID: 1, ReportedByID: 30, AssignedToID: &assignee}

	assert.True(t, CanAccessJob(Principal{UserID: 30}, job, prop, nil))  // reporter
	assert.True(t, CanAccessJob(Principal{UserID: 40}, job, prop, nil))  // assignee
	assert.True(t, CanAccessJob(Principal{UserID: 10}, job, prop, nil))  // manager
	assert.False(t, CanAccessJob(Principal{UserID: 99}, job, prop, nil)) // stranger
	assert.False(t, CanAccessJob(Principal{UserID: 30}, nil, prop, nil))
}

func TestCanAccessNotice(t *testing.T) {
	prop := &Property{ID: 1, AddedByID: 10}
	notice := &Notice{ID: 2, PropertyID: 1, IssuedByID: 10, IssuedToID: 30}

	assert.True(t, CanAccessNotice(Principal{UserID: 30}, notice, prop, nil))
	assert.True(t, CanAccessNotice(Principal{UserID: 10}, notice, prop, nil))
	assert.False(t, CanAccessNotice(Principal{UserID: 77}, notice, prop, nil))
	assert.False(t, CanAccessNotice(Principal{UserID: 77}, nil, prop, nil))
}

func TestCanAssignContractors(t *testing.T) {
	assert.True(t, CanAssignContractors(RoleAgent))
	assert.True(t, CanAssignContractors(RoleLandlord))
	assert.True(t, CanAssignContractors(RolePropertyManager))
	assert.False(t, CanAssignContractors(RoleTenant))
	assert.False(t, CanAssignContractors(RoleContractor))
}
