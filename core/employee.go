package core

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// EmployeeListRow is the admin roster shape, a subset of the profile.
type EmployeeListRow struct {
	ID             uint   `json:"id"`
	EmployeeID     string `json:"employeeID"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Gender         string `json:"gender"`
	Email          string `json:"email"`
	PhoneNo        string `json:"phoneNo"`
	DateOfJoining  string `json:"dateOfJoining"`
	PaidLeavesLeft int    `json:"paidLeavesLeft"`
}

type Profile struct {
	EmployeeID    string `json:"employeeID"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Designation   string `json:"designation"`
	Department    string `json:"department"`
	DateOfJoining string `json:"dateOfJoining"`
}

// FindEmployeeIDByUserID resolves the authenticated credential id to the
// employee identifier the self-service queries are scoped by.
func FindEmployeeIDByUserID(db *gorm.DB, userID uint) (string, error) {
	var credential Credential
	err := db.Select("employee_id").First(&credential, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve employee id: %w", err)
	}
	return credential.EmployeeID, nil
}

// GetProfile loads the self-service profile view.
func GetProfile(db *gorm.DB, employeeID string) (Profile, error) {
	var employee Employee
	err := db.Where("employee_id = ?", employeeID).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}

	return Profile{
		EmployeeID:    employee.EmployeeID,
		FirstName:     employee.FirstName,
		LastName:      employee.LastName,
		Email:         employee.Email,
		Designation:   employee.Designation,
		Department:    "",
		DateOfJoining: employee.DateOfJoining.Format(DateLayout),
	}, nil
}

// ListEmployees returns the roster, most recent joiners first.
func ListEmployees(db *gorm.DB) ([]EmployeeListRow, error) {
	var employees []Employee
	err := db.Order("date_of_joining DESC").Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	rows := make([]EmployeeListRow, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, EmployeeListRow{
			ID:             e.ID,
			EmployeeID:     e.EmployeeID,
			FirstName:      e.FirstName,
			LastName:       e.LastName,
			Gender:         e.Gender,
			Email:          e.Email,
			PhoneNo:        e.PhoneNo,
			DateOfJoining:  e.DateOfJoining.Format(DateLayout),
			PaidLeavesLeft: e.PaidLeavesLeft,
		})
	}
	return rows, nil
}
