package models

import "time"

// PlanStatus is the lifecycle state of a treatment plan.
type PlanStatus string

const (
	PlanDraft       PlanStatus = "draft"
	PlanApproved    PlanStatus = "approved"
	PlanImplemented PlanStatus = "implemented"
)

// PlanType classifies the clinical pathway of a treatment plan.
type PlanType string

const (
	PlanTypeTPAEligible PlanType = "tpa_eligible"
	PlanTypeNotEligible PlanType = "not_eligible"
	PlanTypeAlternative PlanType = "alternative"
)

// TreatmentPlan defines the structure for a physician's treatment plan.
// Each scan carries at most one plan.
type TreatmentPlan struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	PatientID uint `json:"patient_id" gorm:"index"`
	ScanID    uint `json:"scan_id" gorm:"uniqueIndex"`

	ICDCode        string `json:"icd_code"`
	ICDDescription string `json:"icd_description"`

	PlanType        PlanType `json:"plan_type"`
	AIGeneratedPlan string   `json:"ai_generated_plan"`
	PhysicianNotes  string   `json:"physician_notes"`

	Status PlanStatus `json:"status" gorm:"default:draft;index"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
