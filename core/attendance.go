package core

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type TodayAttendance struct {
	Status      string     `json:"status"`
	PunchedInAt *time.Time `json:"punchedInAt"`
}

type AttendanceSummary struct {
	DaysThisMonth       int64 `json:"daysThisMonth"`
	PaidLeavesRemaining int   `json:"paidLeavesRemaining"`
}

type AttendanceDaySummary struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
}

// MarkAttendance inserts today's presence record and increments the profile
// counter in one transaction. The unique index on (employee_id, date) makes
// the operation idempotent per day: a second mark fails with ErrAlreadyMarked.
func MarkAttendance(db *gorm.DB, employeeID string, now time.Time) error {
	today := now.Format(DateLayout)

	return db.Transaction(func(tx *gorm.DB) error {
		record := AttendanceRecord{
			EmployeeID:  employeeID,
			Date:        today,
			Status:      "present",
			PunchedInAt: &now,
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMarked
			}
			return fmt.Errorf("failed to insert attendance record: %w", err)
		}

		result := tx.Model(&Employee{}).
			Where("employee_id = ?", employeeID).
			UpdateColumn("attendance", gorm.Expr("attendance + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to increment attendance counter: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetTodayAttendance reports today's record, defaulting to absent when the
// employee has not punched in yet.
func GetTodayAttendance(db *gorm.DB, employeeID string, now time.Time) (TodayAttendance, error) {
	var record AttendanceRecord
	err := db.Where("employee_id = ? AND date = ?", employeeID, now.Format(DateLayout)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TodayAttendance{Status: "absent"}, nil
	}
	if err != nil {
		return TodayAttendance{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	return TodayAttendance{Status: record.Status, PunchedInAt: record.PunchedInAt}, nil
}

// GetAttendanceSummary counts present days in the current calendar month and
// reports the remaining paid-leave balance. Missing rows yield zeroes.
func GetAttendanceSummary(db *gorm.DB, employeeID string, now time.Time) (AttendanceSummary, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	var summary AttendanceSummary
	err := db.Model(&AttendanceRecord{}).
		Where("employee_id = ? AND date BETWEEN ? AND ? AND status = ?",
			employeeID, monthStart.Format(DateLayout), monthEnd.Format(DateLayout), "present").
		Count(&summary.DaysThisMonth).Error
	if err != nil {
		return summary, fmt.Errorf("failed to count present days: %w", err)
	}

	var employee Employee
	err = db.Select("paid_leaves_left").Where("employee_id = ?", employeeID).First(&employee).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return summary, fmt.Errorf("failed to load leave balance: %w", err)
	}
	summary.PaidLeavesRemaining = employee.PaidLeavesLeft

	return summary, nil
}

// ListAttendanceByEmployee returns the full attendance history, newest first.
func ListAttendanceByEmployee(db *gorm.DB, employeeID string) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := db.Where("employee_id = ?", employeeID).Order("date DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return rows, nil
}

// TodayAttendanceReport counts employees present today and those without a
// record for the day.
func TodayAttendanceReport(db *gorm.DB, now time.Time) (AttendanceDaySummary, error) {
	today := now.Format(DateLayout)

	var report AttendanceDaySummary
	err := db.Model(&AttendanceRecord{}).
		Where("date = ? AND status = ?", today, "present").
		Count(&report.Present).Error
	if err != nil {
		return report, fmt.Errorf("failed to count present employees: %w", err)
	}

	marked := db.Model(&AttendanceRecord{}).Select("employee_id").Where("date = ?", today)
	err = db.Model(&Employee{}).
		Where("employee_id NOT IN (?)", marked).
		Count(&report.Absent).Error
	if err != nil {
		return report, fmt.Errorf("failed to count absent employees: %w", err)
	}

	return report, nil
}
