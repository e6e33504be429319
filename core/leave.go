package core

import (
	"fmt"

	"gorm.io/gorm"
)

type LeaveInput struct {
	StartDate string
	EndDate   string
	Reason    string
	Type      string
}

type LeaveSummary struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// LeaveRequestRow is the admin listing shape, joined with the requesting
// employee's name.
type LeaveRequestRow struct {
	LeaveRequest
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ApplyLeave records a pending leave request. Every field is required.
func ApplyLeave(db *gorm.DB, employeeID string, in LeaveInput) error {
	if in.StartDate == "" || in.EndDate == "" || in.Reason == "" || in.Type == "" {
		return ErrMissingFields
	}

	request := LeaveRequest{
		EmployeeID: employeeID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Reason:     in.Reason,
		Type:       in.Type,
		Status:     "pending",
	}
	if err := db.Create(&request).Error; err != nil {
		return fmt.Errorf("failed to store leave request: %w", err)
	}
	return nil
}

// GetLeavesSummary tallies the employee's requests per status. An employee
// with no requests gets all zeroes.
func GetLeavesSummary(db *gorm.DB, employeeID string) (LeaveSummary, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := db.Model(&LeaveRequest{}).
		Select("status, COUNT(*) AS n").
		Where("employee_id = ?", employeeID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return LeaveSummary{}, fmt.Errorf("failed to summarise leave requests: %w", err)
	}

	var summary LeaveSummary
	for _, row := range rows {
		switch row.Status {
		case "pending":
			summary.Pending = row.N
		case "approved":
			summary.Approved = row.N
		case "rejected":
			summary.Rejected = row.N
		}
	}
	return summary, nil
}

// ListLeaveRequests returns all requests with employee names, newest first.
func ListLeaveRequests(db *gorm.DB) ([]LeaveRequestRow, error) {
	var rows []LeaveRequestRow
	err := db.Model(&LeaveRequest{}).
		Joins("JOIN employees ON employees.employee_id = leave_requests.employee_id").
		Select("leave_requests.*, employees.first_name, employees.last_name").
		Order("leave_requests.requested_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return rows, nil
}
