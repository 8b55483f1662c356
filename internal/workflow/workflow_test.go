package workflow

import (
	"testing"

	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceScan_ForwardPath(t *testing.T) {
	require.NoError(t, AdvanceScan(models.ScanPending, models.ScanReadyForReview, models.RoleTechnician))
	require.NoError(t, AdvanceScan(models.ScanReadyForReview, models.ScanReviewed, models.RolePhysician))
}

func TestAdvanceScan_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from models.ScanStatus
		to   models.ScanStatus
	}{
		{"skip to reviewed", models.ScanPending, models.ScanReviewed},
		{"backward from reviewed", models.ScanReviewed, models.ScanReadyForReview},
		{"backward to pending", models.ScanReadyForReview, models.ScanPending},
		{"terminal state", models.ScanReviewed, models.ScanReviewed},
		{"unknown status", models.ScanStatus("archived"), models.ScanReviewed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AdvanceScan(tt.from, tt.to, models.RolePhysician)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestAdvanceScan_WrongRole(t *testing.T) {
	err := AdvanceScan(models.ScanPending, models.ScanReadyForReview, models.RolePhysician)
	assert.ErrorIs(t, err, ErrForbidden)

	err = AdvanceScan(models.ScanReadyForReview, models.ScanReviewed, models.RoleTechnician)
	assert.ErrorIs(t, err, ErrForbidden)

	err = AdvanceScan(models.ScanPending, models.ScanReadyForReview, models.RolePatient)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdvancePlan_ForwardPath(t *testing.T) {
	require.NoError(t, AdvancePlan(models.PlanDraft, models.PlanApproved, models.RolePhysician))
	require.NoError(t, AdvancePlan(models.PlanApproved, models.PlanImplemented, models.RolePhysician))
	require.NoError(t, AdvancePlan(models.PlanApproved, models.PlanImplemented, models.RoleTechnician))
}

func TestAdvancePlan_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from models.PlanStatus
		to   models.PlanStatus
	}{
		{"skip to implemented", models.PlanDraft, models.PlanImplemented},
		{"backward to draft", models.PlanApproved, models.PlanDraft},
		{"backward from implemented", models.PlanImplemented, models.PlanApproved},
		{"terminal state", models.PlanImplemented, models.PlanImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AdvancePlan(tt.from, tt.to, models.RolePhysician)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestAdvancePlan_WrongRole(t *testing.T) {
	err := AdvancePlan(models.PlanDraft, models.PlanApproved, models.RoleTechnician)
	assert.ErrorIs(t, err, ErrForbidden)

	err = AdvancePlan(models.PlanApproved, models.PlanImplemented, models.RolePatient)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCanCreatePlan(t *testing.T) {
	assert.False(t, CanCreatePlan(models.ScanPending))
	assert.True(t, CanCreatePlan(models.ScanReadyForReview))
	assert.True(t, CanCreatePlan(models.ScanReviewed))
}
