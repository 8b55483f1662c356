package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/OratorMurambiwa/MedStroke/internal/middleware"
	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/OratorMurambiwa/MedStroke/internal/planner"
	"github.com/OratorMurambiwa/MedStroke/internal/workflow"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- Structs for Request Binding ---

type CreatePlanRequest struct {
	ICDCode        string `json:"icd_code"`
	ICDDescription string `json:"icd_description"`
}

type RefinePlanRequest struct {
	PhysicianNotes string `json:"physician_notes" binding:"required"`
}

// PlanHandler exposes treatment-plan creation, refinement, and the two
// status transitions.
type PlanHandler struct {
	DB               *gorm.DB
	Planner          *planner.Service
	GeneratorTimeout time.Duration
}

func NewPlanHandler(db *gorm.DB, p *planner.Service, generatorTimeout time.Duration) *PlanHandler {
	return &PlanHandler{DB: db, Planner: p, GeneratorTimeout: generatorTimeout}
}

// Create drafts a treatment plan for a scan, generating the plan body from
// the scan's eligibility determination. The scan must have reached
// ready_for_review, and a scan carries at most one plan.
func (h *PlanHandler) Create(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	scanID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan ID format"})
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var scan models.StrokeScan
	if err := h.DB.First(&scan, uint(scanID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return
	}

	if !workflow.CanCreatePlan(scan.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "scan has not been submitted for review"})
		return
	}

	var existing models.TreatmentPlan
	if err := h.DB.Where("scan_id = ?", scan.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "scan already has a treatment plan"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, scan.PatientID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return
	}

	isEligible := scan.Eligible != nil && *scan.Eligible
	planType := models.PlanTypeNotEligible
	if isEligible {
		planType = models.PlanTypeTPAEligible
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.GeneratorTimeout)
	defer cancel()
	planText := h.Planner.GenerateTreatmentPlan(ctx, patient, scan, scan.EligibilityResult, isEligible)

	now := time.Now()
	plan := models.TreatmentPlan{
		PatientID:       patient.ID,
		ScanID:          scan.ID,
		ICDCode:         req.ICDCode,
		ICDDescription:  req.ICDDescription,
		PlanType:        planType,
		AIGeneratedPlan: planText,
		Status:          models.PlanDraft,
		CreatedBy:       id.Username,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := h.DB.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create plan", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// Refine rewrites a draft plan's body around the physician's notes. Approved
// and implemented plans are immutable.
func (h *PlanHandler) Refine(c *gin.Context) {
	var req RefinePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, ok := h.loadPlan(c)
	if !ok {
		return
	}

	if plan.Status != models.PlanDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "only draft plans can be refined"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.GeneratorTimeout)
	defer cancel()
	plan.AIGeneratedPlan = h.Planner.RefineTreatmentPlan(ctx, plan.AIGeneratedPlan, req.PhysicianNotes)
	plan.PhysicianNotes = req.PhysicianNotes
	plan.UpdatedAt = time.Now()

	if err := h.DB.Save(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update plan", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// Approve moves a draft plan to approved. A plan with no generated text
// cannot be approved.
func (h *PlanHandler) Approve(c *gin.Context) {
	h.advance(c, models.PlanApproved)
}

// Implement moves an approved plan to implemented, meaning treatment has
// started.
func (h *PlanHandler) Implement(c *gin.Context) {
	h.advance(c, models.PlanImplemented)
}

func (h *PlanHandler) advance(c *gin.Context, next models.PlanStatus) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	plan, ok := h.loadPlan(c)
	if !ok {
		return
	}

	if err := workflow.AdvancePlan(plan.Status, next, id.Role); err != nil {
		respondTransitionError(c, err)
		return
	}
	if next == models.PlanApproved && plan.AIGeneratedPlan == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "plan has no generated text"})
		return
	}

	plan.Status = next
	plan.UpdatedAt = time.Now()
	if err := h.DB.Save(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update plan", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// List returns plans for the physician dashboard, optionally filtered by
// status, most recently touched first.
func (h *PlanHandler) List(c *gin.Context) {
	q := h.DB.Order("updated_at desc")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", models.PlanStatus(status))
	}

	var plans []models.TreatmentPlan
	if err := q.Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// Get returns a plan. Staff see every plan; a patient sees only plans on
// their own record once approved.
func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	plan, ok := h.loadPlan(c)
	if !ok {
		return
	}

	if id.Role == models.RolePatient {
		var patient models.Patient
		err := h.DB.Where("id = ? AND linked_user_id = ?", plan.PatientID, id.UserID).First(&patient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your record"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
			return
		}
		if plan.Status == models.PlanDraft {
			c.JSON(http.StatusForbidden, gin.H{"error": "plan is not yet approved"})
			return
		}
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) loadPlan(c *gin.Context) (models.TreatmentPlan, bool) {
	planID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan ID format"})
		return models.TreatmentPlan{}, false
	}

	var plan models.TreatmentPlan
	if err := h.DB.First(&plan, uint(planID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return models.TreatmentPlan{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error", "details": err.Error()})
		return models.TreatmentPlan{}, false
	}
	return plan, true
}
