package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampaignStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from    CampaignStatus
		to      CampaignStatus
		allowed bool
	}{
		{CampaignDraft, CampaignActive, true},
		{CampaignDraft, CampaignPaused, false},
		{CampaignDraft, CampaignCompleted, false},
		{CampaignActive, CampaignPaused, true},
		{CampaignActive, CampaignCompleted, true},
		{CampaignActive, CampaignDraft, false},
		{CampaignPaused, CampaignActive, true},
		{CampaignPaused, CampaignCompleted, true},
		{CampaignPaused, CampaignDraft, false},
		{CampaignCompleted, CampaignActive, false},
		{CampaignCompleted, CampaignPaused, false},
		{CampaignCompleted, CampaignDraft, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}

	// A no-op transition is always fine.
	for _, s := range []CampaignStatus{CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted} {
		assert.True(t, s.CanTransitionTo(s))
	}
}

func TestCampaignOwnedBy(t *testing.T) {
	clientID := uint(7)
	campaign := Campaign{CreatedBy: 3, ClientID: &clientID}

	assert.True(t, campaign.OwnedBy(3))
	assert.True(t, campaign.OwnedBy(7))
	assert.False(t, campaign.OwnedBy(9))

	unassigned := Campaign{CreatedBy: 3}
	assert.False(t, unassigned.OwnedBy(7))
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())

	assert.True(t, LocationMaintenance.Valid())
	assert.False(t, LocationStatus("closed").Valid())

	assert.True(t, DeviceOnline.Valid())
	assert.False(t, DeviceStatus("sleeping").Valid())

	assert.True(t, DeviceKiosk.Valid())
	assert.False(t, DeviceType("toaster").Valid())

	assert.True(t, CampaignPaused.Valid())
	assert.False(t, CampaignStatus("archived").Valid())
}
