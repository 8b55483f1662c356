// Package workflow enforces the scan and treatment-plan lifecycles. Both
// machines only move forward; every transition is checked against an explicit
// (from, to) table of allowed roles.
package workflow

import (
	"errors"

	"github.com/OratorMurambiwa/MedStroke/internal/models"
)

var (
	// ErrInvalidTransition means the requested (from, to) pair is not in the
	// transition table: backward moves, skipped states, unknown statuses.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForbidden means the transition exists but the caller's role may not
	// perform it.
	ErrForbidden = errors.New("role not permitted for this transition")
)

type scanTransition struct {
	From models.ScanStatus
	To   models.ScanStatus
}

type planTransition struct {
	From models.PlanStatus
	To   models.PlanStatus
}

// Scan lifecycle: pending -> ready_for_review -> reviewed, terminal at
// reviewed. Adding a state or role is a table edit, not a new conditional.
var scanTransitions = map[scanTransition][]models.Role{
	{models.ScanPending, models.ScanReadyForReview}:  {models.RoleTechnician},
	{models.ScanReadyForReview, models.ScanReviewed}: {models.RolePhysician},
}

// Plan lifecycle: draft -> approved -> implemented, terminal at implemented.
// Implementation is open to technicians as well: the approved plan is carried
// out on the floor by the technician.
var planTransitions = map[planTransition][]models.Role{
	{models.PlanDraft, models.PlanApproved}:       {models.RolePhysician},
	{models.PlanApproved, models.PlanImplemented}: {models.RolePhysician, models.RoleTechnician},
}

// AdvanceScan validates moving a scan from current to next as role.
func AdvanceScan(current, next models.ScanStatus, role models.Role) error {
	allowed, ok := scanTransitions[scanTransition{current, next}]
	if !ok {
		return ErrInvalidTransition
	}
	return checkRole(allowed, role)
}

// AdvancePlan validates moving a plan from current to next as role.
func AdvancePlan(current, next models.PlanStatus, role models.Role) error {
	allowed, ok := planTransitions[planTransition{current, next}]
	if !ok {
		return ErrInvalidTransition
	}
	return checkRole(allowed, role)
}

// CanCreatePlan reports whether a scan has progressed far enough to own a
// treatment plan. Plans exist only for scans at ready_for_review or later.
func CanCreatePlan(status models.ScanStatus) bool {
	return status == models.ScanReadyForReview || status == models.ScanReviewed
}

func checkRole(allowed []models.Role, role models.Role) error {
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return ErrForbidden
}
