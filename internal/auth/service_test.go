package auth

import (
	"testing"

	"github.com/OratorMurambiwa/MedStroke/internal/database"
	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/OratorMurambiwa/MedStroke/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *session.MemoryStore) {
	t.Helper()
	db := newTestDB(t)
	store := session.NewMemoryStore()
	return NewService(db, store, zerolog.Nop()), db, store
}

func seedRecord(t *testing.T, db *gorm.DB, code string) models.Patient {
	t.Helper()
	patient := models.Patient{Name: "Test Patient", Code: code}
	require.NoError(t, db.Create(&patient).Error)
	return patient
}

func TestRegisterPatient_LinksMatchingRecord(t *testing.T) {
	svc, db, _ := newTestService(t)
	record := seedRecord(t, db, "P-001")

	res, err := svc.RegisterPatient("alice", "pw1", "P-001")
	require.NoError(t, err)
	assert.True(t, res.Linked)
	assert.Contains(t, res.Message, "linked")
	assert.Equal(t, models.RolePatient, res.User.Role)

	var updated models.Patient
	require.NoError(t, db.First(&updated, record.ID).Error)
	require.NotNil(t, updated.LinkedUserID)
	assert.Equal(t, res.User.ID, *updated.LinkedUserID)
}

func TestRegisterPatient_UnmatchedCodePendsLinkage(t *testing.T) {
	svc, _, _ := newTestService(t)

	res, err := svc.RegisterPatient("bob", "pw2", "NOPE")
	require.NoError(t, err)
	assert.False(t, res.Linked)
	assert.Contains(t, res.Message, "technician will link")
}

// The first successful link wins; a second registration with the same code
// still creates the account but stays unlinked.
func TestRegisterPatient_AlreadyLinkedRecordStaysLinked(t *testing.T) {
	svc, db, _ := newTestService(t)
	seedRecord(t, db, "P-002")

	first, err := svc.RegisterPatient("carol", "pw", "P-002")
	require.NoError(t, err)
	require.True(t, first.Linked)

	second, err := svc.RegisterPatient("dave", "pw", "P-002")
	require.NoError(t, err)
	assert.False(t, second.Linked)

	var record models.Patient
	require.NoError(t, db.Where("code = ?", "P-002").First(&record).Error)
	assert.Equal(t, first.User.ID, *record.LinkedUserID)
}

func TestRegisterPatient_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.RegisterPatient("alice", "pw1", "X")
	require.NoError(t, err)

	_, err = svc.RegisterPatient("alice", "other", "Y")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRegisterStaff(t *testing.T) {
	svc, _, _ := newTestService(t)

	tech, err := svc.RegisterStaff("tech1", "pw", models.RoleTechnician)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTechnician, tech.Role)

	doc, err := svc.RegisterStaff("doc1", "pw", models.RolePhysician)
	require.NoError(t, err)
	assert.Equal(t, models.RolePhysician, doc.Role)

	_, err = svc.RegisterStaff("pat1", "pw", models.RolePatient)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.RegisterStaff("x", "pw", models.Role("Admin"))
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.RegisterStaff("tech1", "pw", models.RolePhysician)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

// Passwords are stored hashed, never verbatim.
func TestRegister_PasswordIsHashed(t *testing.T) {
	svc, db, _ := newTestService(t)

	_, err := svc.RegisterStaff("tech1", "secret", models.RoleTechnician)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("username = ?", "tech1").First(&user).Error)
	assert.NotEqual(t, "secret", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestLogin_RoleIsPartOfIdentityKey(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.RegisterStaff("tech1", "pw", models.RoleTechnician)
	require.NoError(t, err)

	// Correct username and password, wrong role: indistinguishable from a
	// missing user.
	_, err = svc.Login("tech1", "pw", models.RolePhysician)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login("ghost", "pw", models.RoleTechnician)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.RegisterStaff("tech1", "pw", models.RoleTechnician)
	require.NoError(t, err)

	_, err = svc.Login("tech1", "wrong", models.RoleTechnician)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLogin_StaffRedirects(t *testing.T) {
	svc, _, store := newTestService(t)
	_, err := svc.RegisterStaff("tech1", "pw", models.RoleTechnician)
	require.NoError(t, err)
	_, err = svc.RegisterStaff("doc1", "pw", models.RolePhysician)
	require.NoError(t, err)

	res, err := svc.Login("tech1", "pw", models.RoleTechnician)
	require.NoError(t, err)
	assert.Equal(t, TechnicianDashboard, res.RedirectURL)

	id, ok := store.Get(res.Token)
	require.True(t, ok)
	assert.Equal(t, "tech1", id.Username)
	assert.Equal(t, models.RoleTechnician, id.Role)

	res, err = svc.Login("doc1", "pw", models.RolePhysician)
	require.NoError(t, err)
	assert.Equal(t, PhysicianDashboard, res.RedirectURL)
}

func TestLogin_PatientRequiresLinkedRecord(t *testing.T) {
	svc, db, _ := newTestService(t)

	_, err := svc.RegisterPatient("bob", "pw2", "NOPE")
	require.NoError(t, err)

	_, err = svc.Login("bob", "pw2", models.RolePatient)
	assert.ErrorIs(t, err, ErrNoLinkedRecord)

	// Out-of-band linkage unblocks the same credentials.
	var user models.User
	require.NoError(t, db.Where("username = ?", "bob").First(&user).Error)
	record := seedRecord(t, db, "P-077")
	record.LinkedUserID = &user.ID
	require.NoError(t, db.Save(&record).Error)

	res, err := svc.Login("bob", "pw2", models.RolePatient)
	require.NoError(t, err)
	assert.Equal(t, "/patient-view?code=P-077", res.RedirectURL)
}

func TestLogin_LinkedPatientRedirectsToRecordView(t *testing.T) {
	svc, db, _ := newTestService(t)
	seedRecord(t, db, "P-001")

	_, err := svc.RegisterPatient("alice", "pw1", "P-001")
	require.NoError(t, err)

	res, err := svc.Login("alice", "pw1", models.RolePatient)
	require.NoError(t, err)
	assert.Equal(t, "/patient-view?code=P-001", res.RedirectURL)
	assert.Equal(t, models.RolePatient, res.Identity.Role)
}

func TestLogoutAndCurrentIdentity(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.RegisterStaff("tech1", "pw", models.RoleTechnician)
	require.NoError(t, err)

	res, err := svc.Login("tech1", "pw", models.RoleTechnician)
	require.NoError(t, err)

	id, ok := svc.CurrentIdentity(res.Token)
	require.True(t, ok)
	assert.Equal(t, "tech1", id.Username)

	svc.Logout(res.Token)
	_, ok = svc.CurrentIdentity(res.Token)
	assert.False(t, ok)

	// Logging out again is a safe no-op.
	svc.Logout(res.Token)
}
