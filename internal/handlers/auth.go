package handlers

import (
	"errors"
	"net/http"

	"github.com/OratorMurambiwa/MedStroke/internal/auth"
	"github.com/OratorMurambiwa/MedStroke/internal/middleware"
	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration, login, and session endpoints. The auth
// forms post url-encoded fields, matching the browser front end.
type AuthHandler struct {
	Service       *auth.Service
	SessionMaxAge int
}

func NewAuthHandler(svc *auth.Service, sessionMaxAge int) *AuthHandler {
	return &AuthHandler{Service: svc, SessionMaxAge: sessionMaxAge}
}

// Register creates a patient account and tries to link it to an existing
// clinical record by code. A code that matches nothing still creates the
// account; only a duplicate username fails.
func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	code := c.PostForm("code")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	res, err := h.Service.RegisterPatient(username, password, code)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": res.Message, "linked": res.Linked})
}

// RegisterStaff creates a technician or physician account.
func (h *AuthHandler) RegisterStaff(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	role := models.Role(c.PostForm("role"))
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.Service.RegisterStaff(username, password, role)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be Technician or Physician"})
		case errors.Is(err, auth.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": user.Role.String() + " account created."})
}

// Login validates the (username, role) pair, sets the session cookie, and
// redirects to the role's post-login destination.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	role := models.Role(c.PostForm("role"))

	res, err := h.Service.Login(username, password, role)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found. Check username and role."})
		case errors.Is(err, auth.ErrInvalidCredential):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password."})
		case errors.Is(err, auth.ErrNoLinkedRecord):
			c.JSON(http.StatusNotFound, gin.H{"error": "No patient record linked yet."})
		case errors.Is(err, auth.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed", "details": err.Error()})
		}
		return
	}

	c.SetCookie(middleware.SessionCookie, res.Token, h.SessionMaxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, res.RedirectURL)
}

// CurrentUser returns the session's identity snapshot.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrUnauthenticated.Error()})
		return
	}
	id, ok := h.Service.CurrentIdentity(token)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrUnauthenticated.Error()})
		return
	}
	c.JSON(http.StatusOK, id)
}

// Logout drops the session if one exists and clears the cookie. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		h.Service.Logout(token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login-page")
}
