package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- Structs for Request Binding ---

type CreateNIHSSRequest struct {
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
}

// NIHSSHandler records and lists NIHSS assessments. Assessments are
// append-only clinical context; nothing downstream consumes them.
type NIHSSHandler struct {
	DB *gorm.DB
}

func NewNIHSSHandler(db *gorm.DB) *NIHSSHandler {
	return &NIHSSHandler{DB: db}
}

// Create appends an assessment for a patient. The total is computed here,
// never taken from the client.
func (h *NIHSSHandler) Create(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID format"})
		return
	}

	var req CreateNIHSSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, uint(patientID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return
	}

	assessment := models.NIHSSAssessment{
		PatientID:     patient.ID,
		Consciousness: req.Consciousness,
		Gaze:          req.Gaze,
		Visual:        req.Visual,
		Facial:        req.Facial,
		MotorArmLeft:  req.MotorArmLeft,
		MotorArmRight: req.MotorArmRight,
		MotorLegLeft:  req.MotorLegLeft,
		MotorLegRight: req.MotorLegRight,
		Ataxia:        req.Ataxia,
		Sensory:       req.Sensory,
		Language:      req.Language,
		Dysarthria:    req.Dysarthria,
		Extinction:    req.Extinction,
		Timestamp:     time.Now(),
	}
	assessment.TotalScore = assessment.Sum()

	if err := h.DB.Create(&assessment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create assessment", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, assessment)
}

// ListByPatient returns a patient's assessments, newest first.
func (h *NIHSSHandler) ListByPatient(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID format"})
		return
	}

	var assessments []models.NIHSSAssessment
	if err := h.DB.Where("patient_id = ?", uint(patientID)).Order("timestamp desc").Find(&assessments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assessments)
}
