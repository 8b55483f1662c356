package models

import "time"

// ScanStatus is the lifecycle state of a stroke scan.
type ScanStatus string

const (
	ScanPending        ScanStatus = "pending"
	ScanReadyForReview ScanStatus = "ready_for_review"
	ScanReviewed       ScanStatus = "reviewed"
)

// StrokeScan defines the structure for imaging studies. Prediction is an
// opaque label produced by the external classifier.
type StrokeScan struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PatientID  uint      `json:"patient_id" gorm:"index"`
	ImagePath  string    `json:"image_path"`
	Prediction string    `json:"prediction"`
	Timestamp  time.Time `json:"timestamp"`

	DoctorComment     string `json:"doctor_comment"`
	EligibilityResult string `json:"eligibility_result"`
	Eligible          *bool  `json:"eligible"`

	TechnicianNotes string     `json:"technician_notes"`
	Status          ScanStatus `json:"status" gorm:"default:pending;index"`
	ReviewedAt      *time.Time `json:"reviewed_at"`

	TreatmentPlan *TreatmentPlan `json:"treatment_plan,omitempty" gorm:"foreignKey:ScanID"`
}
