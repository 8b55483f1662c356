// Package auth implements account registration, login, and the session
// lifecycle. Role is part of the identity key: lookups always match username
// and role together.
package auth

import (
	"errors"
	"fmt"

	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/OratorMurambiwa/MedStroke/internal/session"
	"github.com/OratorMurambiwa/MedStroke/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Post-login destinations by role. Patients land on their own record view,
// keyed by the record's code.
const (
	TechnicianDashboard = "/technician-dashboard"
	PhysicianDashboard  = "/physician-dashboard"
)

// Service validates credentials against stored accounts and issues session
// tokens into the injected store.
type Service struct {
	db       *gorm.DB
	sessions session.Store
	logger   zerolog.Logger
}

// NewService returns a Service backed by db and sessions.
func NewService(db *gorm.DB, sessions session.Store, logger zerolog.Logger) *Service {
	return &Service{db: db, sessions: sessions, logger: logger}
}

// RegisterResult reports the outcome of a successful patient registration.
// Linked distinguishes "linked to an existing record" from "pending manual
// linkage"; both are successes.
type RegisterResult struct {
	User    models.User
	Linked  bool
	Message string
}

// RegisterPatient creates a patient account and attempts to link it to the
// clinical record whose code matches. A code that matches nothing, or a
// record that is already linked, leaves the account unlinked pending manual
// linkage by a technician.
func (s *Service) RegisterPatient(username, password, code string) (*RegisterResult, error) {
	if err := s.checkUsernameFree(username); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, Password: hashed, Role: models.RolePatient}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	res := &RegisterResult{User: user}

	var patient models.Patient
	err = s.db.Where("code = ? AND linked_user_id IS NULL", code).First(&patient).Error
	switch {
	case err == nil:
		patient.LinkedUserID = &user.ID
		if err := s.db.Save(&patient).Error; err != nil {
			return nil, err
		}
		res.Linked = true
		res.Message = "Your account is linked to an existing patient record."
	case errors.Is(err, gorm.ErrRecordNotFound):
		res.Message = "Account created. A technician will link your record later."
	default:
		return nil, err
	}

	s.logger.Info().Str("username", username).Bool("linked", res.Linked).Msg("patient registered")
	return res, nil
}

// RegisterStaff creates a technician or physician account. Any other role
// fails with ErrInvalidRole.
func (s *Service) RegisterStaff(username, password string, role models.Role) (*models.User, error) {
	if !role.StaffRole() {
		return nil, ErrInvalidRole
	}
	if err := s.checkUsernameFree(username); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, Password: hashed, Role: role}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("role", role.String()).Msg("staff registered")
	return &user, nil
}

// LoginResult carries the issued token and the role-dependent post-login
// destination.
type LoginResult struct {
	Token       string
	Identity    session.Identity
	RedirectURL string
}

// Login checks the credentials for the (username, role) pair and issues a
// fresh session token. Patients must already have a linked clinical record.
func (s *Service) Login(username, password string, role models.Role) (*LoginResult, error) {
	var user models.User
	err := s.db.Where("username = ? AND role = ?", username, role).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredential
	}

	var redirect string
	switch role {
	case models.RolePatient:
		var patient models.Patient
		err := s.db.Where("linked_user_id = ?", user.ID).First(&patient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoLinkedRecord
		}
		if err != nil {
			return nil, err
		}
		redirect = fmt.Sprintf("/patient-view?code=%s", patient.Code)
	case models.RoleTechnician:
		redirect = TechnicianDashboard
	case models.RolePhysician:
		redirect = PhysicianDashboard
	default:
		return nil, ErrInvalidRole
	}

	id := session.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}
	token := session.NewToken()
	s.sessions.Put(token, id)

	s.logger.Info().Str("username", username).Str("role", role.String()).Msg("login")
	return &LoginResult{Token: token, Identity: id, RedirectURL: redirect}, nil
}

// CurrentIdentity is a pure lookup of the session store.
func (s *Service) CurrentIdentity(token string) (session.Identity, bool) {
	return s.sessions.Get(token)
}

// Logout removes the session if present. Logging out twice, or with an
// unknown token, is not an error.
func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}

func (s *Service) checkUsernameFree(username string) error {
	var existing models.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
