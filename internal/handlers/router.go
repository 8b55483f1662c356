package handlers

import (
	"time"

	"github.com/OratorMurambiwa/MedStroke/internal/auth"
	"github.com/OratorMurambiwa/MedStroke/internal/middleware"
	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/OratorMurambiwa/MedStroke/internal/planner"
	"github.com/OratorMurambiwa/MedStroke/internal/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps bundles everything the route table needs.
type Deps struct {
	DB               *gorm.DB
	Sessions         session.Store
	Auth             *auth.Service
	Planner          *planner.Service
	SessionMaxAge    int
	GeneratorTimeout time.Duration
}

// RegisterRoutes wires every endpoint onto r. Protected groups run the
// session gate first, then per-route role checks.
func RegisterRoutes(r *gin.Engine, d Deps) {
	authHandler := NewAuthHandler(d.Auth, d.SessionMaxAge)
	patientHandler := NewPatientHandler(d.DB)
	scanHandler := NewScanHandler(d.DB)
	planHandler := NewPlanHandler(d.DB, d.Planner, d.GeneratorTimeout)
	nihssHandler := NewNIHSSHandler(d.DB)

	r.POST("/register", authHandler.Register)
	r.POST("/register-staff", authHandler.RegisterStaff)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/current-user", authHandler.CurrentUser)

	api := r.Group("/api", middleware.SessionAuth(d.Sessions))

	staff := middleware.RequireRoles(models.RoleTechnician, models.RolePhysician)
	technician := middleware.RequireRoles(models.RoleTechnician)
	physician := middleware.RequireRoles(models.RolePhysician)

	api.GET("/patients/by-code/:code", patientHandler.GetByCode)
	api.POST("/patients/:id/link", technician, patientHandler.Link)
	api.GET("/patients/:id/scans", staff, scanHandler.ListByPatient)
	api.POST("/patients/:id/scans", technician, scanHandler.Create)
	api.POST("/patients/:id/nihss", technician, nihssHandler.Create)
	api.GET("/patients/:id/nihss", staff, nihssHandler.ListByPatient)

	api.GET("/scans/worklist", technician, scanHandler.Worklist)
	api.GET("/scans/review-queue", physician, scanHandler.ReviewQueue)
	api.POST("/scans/:id/findings", staff, scanHandler.SubmitFindings)
	api.POST("/scans/:id/review", staff, scanHandler.Review)

	api.GET("/plans", staff, planHandler.List)
	api.POST("/scans/:id/plan", physician, planHandler.Create)
	api.POST("/plans/:id/refine", physician, planHandler.Refine)
	api.POST("/plans/:id/approve", staff, planHandler.Approve)
	api.POST("/plans/:id/implement", staff, planHandler.Implement)
	api.GET("/plans/:id", planHandler.Get)
}
