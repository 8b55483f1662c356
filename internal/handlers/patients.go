package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/OratorMurambiwa/MedStroke/internal/middleware"
	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- Structs for Request Binding ---

type LinkPatientRequest struct {
	Username string `json:"username" binding:"required"`
}

// PatientHandler exposes clinical-record lookup and manual account linkage.
type PatientHandler struct {
	DB *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// GetByCode returns the clinical record addressed by its linking code, with
// scans preloaded. Staff may look up any record; a patient only their own.
func (h *PatientHandler) GetByCode(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var patient models.Patient
	err := h.DB.Preload("Scans").Where("code = ?", c.Param("code")).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return
	}

	if id.Role == models.RolePatient {
		if patient.LinkedUserID == nil || *patient.LinkedUserID != id.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your record"})
			return
		}
	}

	c.JSON(http.StatusOK, patient)
}

// Link associates an existing patient account with an unlinked clinical
// record. The first successful link wins; re-linking is not supported.
func (h *PatientHandler) Link(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID format"})
		return
	}

	var req LinkPatientRequest
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
	if patient.LinkedUserID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "record is already linked to an account"})
		return
	}

	var user models.User
	err = h.DB.Where("username = ? AND role = ?", req.Username, models.RolePatient).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient account not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return
	}

	patient.LinkedUserID = &user.ID
	if err := h.DB.Save(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to link record", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "record linked", "patient_id": patient.ID, "user_id": user.ID})
}
