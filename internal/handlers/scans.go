package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/OratorMurambiwa/MedStroke/internal/middleware"
	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/OratorMurambiwa/MedStroke/internal/workflow"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- Structs for Request Binding ---

type CreateScanRequest struct {
	ImagePath  string `json:"image_path" binding:"required"`
	Prediction string `json:"prediction"`
}

type SubmitFindingsRequest struct {
	TechnicianNotes string `json:"technician_notes" binding:"required"`
}

type ReviewScanRequest struct {
	Eligible          *bool  `json:"eligible" binding:"required"`
	EligibilityResult string `json:"eligibility_result" binding:"required"`
	DoctorComment     string `json:"doctor_comment"`
}

// ScanHandler exposes scan intake, worklists, and the two status transitions.
type ScanHandler struct {
	DB *gorm.DB
}

func NewScanHandler(db *gorm.DB) *ScanHandler {
	return &ScanHandler{DB: db}
}

// Create registers a new scan for a patient. The prediction label arrives
// from the external classifier as an opaque string.
func (h *ScanHandler) Create(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID format"})
		return
	}

	var req CreateScanRequest
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

	scan := models.StrokeScan{
		PatientID:  patient.ID,
		ImagePath:  req.ImagePath,
		Prediction: req.Prediction,
		Timestamp:  time.Now(),
		Status:     models.ScanPending,
	}
	if err := h.DB.Create(&scan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create scan", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, scan)
}

// ListByPatient returns all scans for a patient, newest first.
func (h *ScanHandler) ListByPatient(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient ID format"})
		return
	}

	var scans []models.StrokeScan
	if err := h.DB.Where("patient_id = ?", uint(patientID)).Order("timestamp desc").Find(&scans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scans)
}

// Worklist returns scans awaiting technician findings.
func (h *ScanHandler) Worklist(c *gin.Context) {
	h.listByStatus(c, models.ScanPending)
}

// ReviewQueue returns scans awaiting physician review.
func (h *ScanHandler) ReviewQueue(c *gin.Context) {
	h.listByStatus(c, models.ScanReadyForReview)
}

func (h *ScanHandler) listByStatus(c *gin.Context, status models.ScanStatus) {
	var scans []models.StrokeScan
	if err := h.DB.Where("status = ?", status).Order("timestamp asc").Find(&scans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scans)
}

// SubmitFindings records technician notes and moves the scan from pending to
// ready_for_review. Notes and status change apply together or not at all.
func (h *ScanHandler) SubmitFindings(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req SubmitFindingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scan, ok := h.loadScan(c)
	if !ok {
		return
	}

	if err := workflow.AdvanceScan(scan.Status, models.ScanReadyForReview, id.Role); err != nil {
		respondTransitionError(c, err)
		return
	}

	scan.TechnicianNotes = req.TechnicianNotes
	scan.Status = models.ScanReadyForReview
	if err := h.DB.Save(&scan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update scan", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scan)
}

// Review records the physician's eligibility determination and comment and
// moves the scan from ready_for_review to reviewed.
func (h *ScanHandler) Review(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req ReviewScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scan, ok := h.loadScan(c)
	if !ok {
		return
	}

	if err := workflow.AdvanceScan(scan.Status, models.ScanReviewed, id.Role); err != nil {
		respondTransitionError(c, err)
		return
	}

	now := time.Now()
	scan.Eligible = req.Eligible
	scan.EligibilityResult = req.EligibilityResult
	scan.DoctorComment = req.DoctorComment
	scan.Status = models.ScanReviewed
	scan.ReviewedAt = &now
	if err := h.DB.Save(&scan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update scan", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scan)
}

func (h *ScanHandler) loadScan(c *gin.Context) (models.StrokeScan, bool) {
	scanID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan ID format"})
		return models.StrokeScan{}, false
	}

	var scan models.StrokeScan
	if err := h.DB.First(&scan, uint(scanID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
			return models.StrokeScan{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return models.StrokeScan{}, false
	}
	return scan, true
}

// respondTransitionError maps workflow errors to HTTP statuses: a forbidden
// role gets 403, an invalid (from, to) pair gets 409.
func respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
