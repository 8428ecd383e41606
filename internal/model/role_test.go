package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Can(t *testing.T) {
	tests := []struct {
		role       Role
		capability Capability
		want       bool
	}{
		{RoleUser, CapSearch, true},
		{RoleUser, CapExport, true},
		{RoleUser, CapManageOwn, false},
		{RoleUser, CapViewArchive, false},
		{RoleManager, CapManageOwn, true},
		{RoleManager, CapManageAny, false},
		{RoleManager, CapViewArchive, false},
		{RoleManager, CapInvite, false},
		{RoleAdmin, CapManageAny, true},
		{RoleAdmin, CapViewArchive, true},
		{RoleAdmin, CapInvite, true},
		{RoleAdmin, CapManageUsers, false},
		{RoleSuperadmin, CapManageUsers, true},
		{RoleSuperadmin, CapManageAny, true},
		{RoleBanned, CapSearch, false},
		{RoleBanned, CapExport, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.Can(tt.capability),
			"role %s capability %s", tt.role, tt.capability)
	}
}

func TestRole_Grantable(t *testing.T) {
	assert.True(t, RoleUser.Grantable())
	assert.True(t, RoleManager.Grantable())
	assert.True(t, RoleAdmin.Grantable())
	assert.False(t, RoleSuperadmin.Grantable())
	assert.False(t, RoleBanned.Grantable())
	assert.False(t, Role("unknown").Grantable())
}

func TestRole_IsValid(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleManager, RoleAdmin, RoleSuperadmin, RoleBanned} {
		assert.True(t, role.IsValid(), "role %s", role)
	}
	assert.False(t, Role("owner").IsValid())
}

func TestOfferFields_ApplyDefaults(t *testing.T) {
	fields := OfferFields{SourceName: "1win", OfferName: "Aviator", Rate: "45$"}
	fields.ApplyDefaults()

	assert.Equal(t, GeoGlobal, fields.Geo)
	assert.Equal(t, NotePlaceholder, fields.Note)

	filled := OfferFields{Geo: "Romania (Румыния)", Note: "Тест"}
	filled.ApplyDefaults()
	assert.Equal(t, "Romania (Румыния)", filled.Geo)
	assert.Equal(t, "Тест", filled.Note)
}

func TestOffer_OwnedBy(t *testing.T) {
	offer := &Offer{OwnerID: 100}
	assert.True(t, offer.OwnedBy(100))
	assert.False(t, offer.OwnedBy(200))

	// Оффер без владельца не принадлежит никому
	orphan := &Offer{}
	assert.False(t, orphan.OwnedBy(0))
}
