package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"staffdesk.com/staffdesk/security"
	"staffdesk.com/staffdesk/utils"
)

func testSignupInput(email string) SignupInput {
	return SignupInput{
		FirstName:     "Alice",
		LastName:      "Patel",
		Gender:        "female",
		BloodGroup:    "O+",
		DateOfJoining: "2025-03-01",
		PhoneNo:       "0400000000",
		Email:         email,
		Education:     "BSc",
		Qualification: "Accounting",
		Designation:   "Analyst",
		Password:      "Alice@123",
	}
}

func TestSubmitSignup(t *testing.T) {
	db := newTestDB(t)

	provisional, err := SubmitSignup(db, testSignupInput("alice.patel@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "250001", provisional)

	var pending PendingRegistration
	require.NoError(t, db.First(&pending).Error)
	assert.Equal(t, "250001", pending.EmployeeID)
	assert.Equal(t, "alice.patel@example.com", pending.Email)
	// Password is stored hashed, never plain.
	assert.NotEqual(t, "Alice@123", pending.Password)
	assert.True(t, security.CheckPassword(pending.Password, "Alice@123"))
}

func TestSubmitSignupInvalidJoinDate(t *testing.T) {
	db := newTestDB(t)

	in := testSignupInput("bob@example.com")
	in.DateOfJoining = "yesterday"

	_, err := SubmitSignup(db, in)
	assert.ErrorIs(t, err, ErrInvalidJoinDate)

	var count int64
	require.NoError(t, db.Model(&PendingRegistration{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApproveSignup(t *testing.T) {
	db := newTestDB(t)

	provisional, err := SubmitSignup(db, testSignupInput("alice.patel@example.com"))
	require.NoError(t, err)

	var pending PendingRegistration
	require.NoError(t, db.First(&pending).Error)

	result, err := ApproveSignup(db, pending.ID, "")
	require.NoError(t, err)
	// Still the first 2025 approval, so the recomputed id matches the
	// provisional one.
	assert.Equal(t, provisional, result.EmployeeID)
	assert.Equal(t, "alice.patel@example.com", result.Email)

	var credential Credential
	require.NoError(t, db.Where("employee_id = ?", result.EmployeeID).First(&credential).Error)
	assert.Equal(t, RoleEmployee, credential.Role)
	assert.True(t, security.CheckPassword(credential.Password, "Alice@123"))

	var employee Employee
	require.NoError(t, db.Where("employee_id = ?", result.EmployeeID).First(&employee).Error)
	assert.Equal(t, 0, employee.Attendance)
	assert.Equal(t, 0.0, employee.Salary)
	assert.Equal(t, 0.0, employee.Rating)
	assert.Equal(t, 12, employee.PaidLeavesLeft)

	// The pending row is consumed: a second approval must fail.
	err = db.First(&PendingRegistration{}, pending.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = ApproveSignup(db, pending.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApproveSignupSequence(t *testing.T) {
	db := newTestDB(t)

	// Both candidates join in 2025; both get the same provisional id since
	// sequence numbers are not reserved at signup time.
	first, err := SubmitSignup(db, testSignupInput("first@example.com"))
	require.NoError(t, err)
	second, err := SubmitSignup(db, testSignupInput("second@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "250001", first)
	assert.Equal(t, "250001", second)

	var pendings []PendingRegistration
	require.NoError(t, db.Order("id").Find(&pendings).Error)
	require.Len(t, pendings, 2)

	// Approval recomputes from the live approved-count, so the identifiers
	// diverge.
	resultA, err := ApproveSignup(db, pendings[0].ID, "")
	require.NoError(t, err)
	resultB, err := ApproveSignup(db, pendings[1].ID, "")
	require.NoError(t, err)
	assert.Equal(t, "250001", resultA.EmployeeID)
	assert.Equal(t, "250002", resultB.EmployeeID)
}

func TestApproveSignupWithRole(t *testing.T) {
	db := newTestDB(t)

	_, err := SubmitSignup(db, testSignupInput("boss@example.com"))
	require.NoError(t, err)

	var pending PendingRegistration
	require.NoError(t, db.First(&pending).Error)

	result, err := ApproveSignup(db, pending.ID, RoleAdmin)
	require.NoError(t, err)

	var credential Credential
	require.NoError(t, db.Where("employee_id = ?", result.EmployeeID).First(&credential).Error)
	assert.Equal(t, RoleAdmin, credential.Role)
}

func TestApproveSignupIdentifierCollision(t *testing.T) {
	db := newTestDB(t)

	// An existing profile already holds 250001 but joined in 2024, so the
	// 2025 approved-count stays zero and every recompute lands on the taken
	// identifier.
	require.NoError(t, db.Create(&Employee{
		EmployeeID:    "250001",
		Email:         "legacy@example.com",
		DateOfJoining: utils.MustParseDate("2024-12-31"),
	}).Error)

	_, err := SubmitSignup(db, testSignupInput("alice.patel@example.com"))
	require.NoError(t, err)

	var pending PendingRegistration
	require.NoError(t, db.First(&pending).Error)

	_, err = ApproveSignup(db, pending.ID, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Contains(t, err.Error(), "failed to allocate a unique employee id")

	// Every attempt rolled back: no credential leaked and the pending row
	// survives for a later approval.
	var credentials int64
	require.NoError(t, db.Model(&Credential{}).Count(&credentials).Error)
	assert.Zero(t, credentials)

	err = db.First(&PendingRegistration{}, pending.ID).Error
	assert.NoError(t, err)
}

func TestApproveSignupEmailTaken(t *testing.T) {
	db := newTestDB(t)

	hash, err := security.HashPassword("Other@123")
	require.NoError(t, err)
	require.NoError(t, db.Create(&Credential{
		EmployeeID: "240001",
		Email:      "alice.patel@example.com",
		Password:   hash,
		Role:       RoleEmployee,
	}).Error)

	_, err = SubmitSignup(db, testSignupInput("alice.patel@example.com"))
	require.NoError(t, err)

	var pending PendingRegistration
	require.NoError(t, db.First(&pending).Error)

	// Fails immediately, not after exhausting the collision retries.
	_, err = ApproveSignup(db, pending.ID, "")
	assert.ErrorIs(t, err, ErrEmailExists)

	var credentials int64
	require.NoError(t, db.Model(&Credential{}).Count(&credentials).Error)
	assert.Equal(t, int64(1), credentials)

	err = db.First(&PendingRegistration{}, pending.ID).Error
	assert.NoError(t, err)
}

func TestDeclineSignup(t *testing.T) {
	db := newTestDB(t)

	_, err := SubmitSignup(db, testSignupInput("alice.patel@example.com"))
	require.NoError(t, err)

	var pending PendingRegistration
	require.NoError(t, db.First(&pending).Error)

	declined, err := DeclineSignup(db, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice.patel@example.com", declined.Email)

	// The row is gone: every later transition fails with not-found.
	_, err = DeclineSignup(db, pending.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ApproveSignup(db, pending.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeclineSignupUnknownID(t *testing.T) {
	db := newTestDB(t)

	_, err := DeclineSignup(db, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}
