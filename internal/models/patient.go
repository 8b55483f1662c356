package models

// Patient defines the structure for clinical records created at intake.
// LinkedUserID is set at most once, when a self-registered patient account is
// linked to the record via the record's code.
type Patient struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	Name           string  `json:"name"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	TimeSinceOnset *string `json:"time_since_onset"`
	ChiefComplaint *string `json:"chief_complaint"`

	// Vitals
	SystolicBP       *int     `json:"systolic_bp"`
	DiastolicBP      *int     `json:"diastolic_bp"`
	HeartRate        *int     `json:"heart_rate"`
	OxygenSaturation *int     `json:"oxygen_saturation"`
	Temperature      *float64 `json:"temperature"`
	Glucose          *float64 `json:"glucose"`
	PlateletCount    *int     `json:"platelet_count"`
	INR              *float64 `json:"inr"`

	Code         string `json:"code" gorm:"uniqueIndex"`
	LinkedUserID *uint  `json:"linked_user_id" gorm:"index"`

	Scans []StrokeScan `json:"scans,omitempty" gorm:"foreignKey:PatientID"`
}
