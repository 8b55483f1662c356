package models

import "time"

// NIHSSAssessment defines the structure for a recorded NIHSS neurological
// exam. Rows are append-only; TotalScore is computed server-side from the
// thirteen sub-scores.
type NIHSSAssessment struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	PatientID uint `json:"patient_id" gorm:"index"`

	Consciousness int `json:"consciousness"`
	Gaze          int `json:"gaze"`
	Visual        int `json:"visual"`
	Facial        int `json:"facial"`
	MotorArmLeft  int `json:"motor_arm_left"`
	MotorArmRight int `json:"motor_arm_right"`
	MotorLegLeft  int `json:"motor_leg_left"`
	MotorLegRight int `json:"motor_leg_right"`
	Ataxia        int `json:"ataxia"`
	Sensory       int `json:"sensory"`
	Language      int `json:"language"`
	Dysarthria    int `json:"dysarthria"`
	Extinction    int `json:"extinction"`

	TotalScore int       `json:"total_score"`
	Timestamp  time.Time `json:"timestamp"`
}

// Sum returns the aggregate of the thirteen sub-scores.
func (a NIHSSAssessment) Sum() int {
	return a.Consciousness + a.Gaze + a.Visual + a.Facial +
		a.MotorArmLeft + a.MotorArmRight + a.MotorLegLeft + a.MotorLegRight +
		a.Ataxia + a.Sensory + a.Language + a.Dysarthria + a.Extinction
}
