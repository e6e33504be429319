package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"staffdesk.com/staffdesk/security"
)

// SignupInput carries the candidate-submitted fields. DateOfJoining stays a
// string so the workflow owns the parse failure (the binding layer only
// checks presence).
type SignupInput struct {
	FirstName     string
	LastName      string
	Gender        string
	BloodGroup    string
	DateOfBirth   *time.Time
	DateOfJoining string
	PhoneNo       string
	Email         string
	Education     string
	Qualification string
	Designation   string
	Password      string
}

// SubmitSignup validates the join date, hashes the password and persists a
// pending registration carrying a provisional identifier. The identifier is
// returned to the caller but is not final until approval recomputes it.
func SubmitSignup(db *gorm.DB, in SignupInput) (string, error) {
	joinDate, err := ParseJoinDate(in.DateOfJoining)
	if err != nil {
		return "", err
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	employeeID, err := AllocateEmployeeID(db, joinDate)
	if err != nil {
		return "", err
	}

	pending := PendingRegistration{
		EmployeeID:    employeeID,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Gender:        in.Gender,
		BloodGroup:    in.BloodGroup,
		DateOfBirth:   in.DateOfBirth,
		DateOfJoining: joinDate,
		PhoneNo:       in.PhoneNo,
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Education:     in.Education,
		Qualification: in.Qualification,
		Designation:   in.Designation,
		Password:      hash,
	}
	if err := db.Create(&pending).Error; err != nil {
		return "", fmt.Errorf("failed to store pending registration: %w", err)
	}

	return employeeID, nil
}

// ListPending returns all pending registrations, most recent first.
func ListPending(db *gorm.DB) ([]PendingRegistration, error) {
	var rows []PendingRegistration
	if err := db.Order("requested_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending registrations: %w", err)
	}
	return rows, nil
}

// approveAttempts bounds the duplicate-key retry loop. Two concurrent
// approvals for the same join year can derive the same sequence number; the
// loser of the unique-index race recomputes and tries again.
const approveAttempts = 3

// ApprovalResult carries what the caller needs to respond and notify the
// candidate.
type ApprovalResult struct {
	EmployeeID string
	Email      string
	FirstName  string
}

// ApproveSignup migrates a pending registration into the permanent employee
// records. The identifier is recomputed from the live approved-count, the
// credential and profile rows are created and the pending row deleted, all
// inside one transaction. Fails with ErrNotFound if the pending row is gone
// (e.g. already approved or declined).
func ApproveSignup(db *gorm.DB, pendingID uint, role Role) (*ApprovalResult, error) {
	if role == "" {
		role = RoleEmployee
	}

	var result ApprovalResult
	var lastErr error
	for attempt := 0; attempt < approveAttempts; attempt++ {
		lastErr = db.Transaction(func(tx *gorm.DB) error {
			var pending PendingRegistration
			if err := tx.First(&pending, pendingID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("failed to load pending registration: %w", err)
			}

			// A taken email can never succeed, so it must not be
			// mistaken for an identifier collision and retried.
			var emails int64
			if err := tx.Model(&Credential{}).Where("email = ?", pending.Email).Count(&emails).Error; err != nil {
				return fmt.Errorf("failed to check credential email: %w", err)
			}
			if emails > 0 {
				return ErrEmailExists
			}

			id, err := AllocateEmployeeID(tx, pending.DateOfJoining)
			if err != nil {
				return err
			}
			id = strings.TrimSpace(id)

			credential := Credential{
				EmployeeID: id,
				Email:      pending.Email,
				Password:   pending.Password,
				Role:       role,
			}
			if err := tx.Create(&credential).Error; err != nil {
				return fmt.Errorf("failed to create credential: %w", err)
			}

			employee := Employee{
				EmployeeID:     id,
				FirstName:      pending.FirstName,
				LastName:       pending.LastName,
				Gender:         pending.Gender,
				BloodGroup:     pending.BloodGroup,
				DateOfBirth:    pending.DateOfBirth,
				DateOfJoining:  pending.DateOfJoining,
				PhoneNo:        pending.PhoneNo,
				Email:          pending.Email,
				Education:      pending.Education,
				Qualification:  pending.Qualification,
				Designation:    pending.Designation,
				Attendance:     0,
				Salary:         0,
				Rating:         0,
				PaidLeavesLeft: 12,
			}
			if err := tx.Create(&employee).Error; err != nil {
				return fmt.Errorf("failed to create employee profile: %w", err)
			}

			if err := tx.Delete(&pending).Error; err != nil {
				return fmt.Errorf("failed to delete pending registration: %w", err)
			}

			result = ApprovalResult{
				EmployeeID: id,
				Email:      pending.Email,
				FirstName:  pending.FirstName,
			}
			return nil
		})

		if lastErr == nil {
			return &result, nil
		}
		if !errors.Is(lastErr, gorm.ErrDuplicatedKey) {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("failed to allocate a unique employee id: %w", lastErr)
}

// DeclineSignup deletes the pending registration and returns the removed
// row. Fails with ErrNotFound when the id never existed or was already
// consumed.
func DeclineSignup(db *gorm.DB, pendingID uint) (*PendingRegistration, error) {
	var pending PendingRegistration
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pending, pendingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load pending registration: %w", err)
		}

		result := tx.Delete(&PendingRegistration{}, pendingID)
		if result.Error != nil {
			return fmt.Errorf("failed to decline signup: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pending, nil
}
