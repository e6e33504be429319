package core

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type PayrollLatest struct {
	BasicSalary float64 `json:"basicSalary"`
	Allowances  float64 `json:"allowances"`
	Deductions  float64 `json:"deductions"`
	NetPay      float64 `json:"netPay"`
	PayDate     string  `json:"payDate"`
}

type SalaryDaySummary struct {
	Paid   int64 `json:"paid"`
	Unpaid int64 `json:"unpaid"`
}

// GetPayrollLatest returns the most recent pay-period row, or zeroed
// components with an empty pay date when no payroll exists yet.
func GetPayrollLatest(db *gorm.DB, employeeID string) (PayrollLatest, error) {
	var record PayrollRecord
	err := db.Where("employee_id = ?", employeeID).
		Order("month DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PayrollLatest{}, nil
	}
	if err != nil {
		return PayrollLatest{}, fmt.Errorf("failed to load latest payroll: %w", err)
	}

	return PayrollLatest{
		BasicSalary: record.BasicSalary,
		Allowances:  record.Allowances,
		Deductions:  record.Deductions,
		NetPay:      record.NetPay,
		PayDate:     record.GeneratedAt.Format(DateLayout),
	}, nil
}

// ListPayrollByEmployee returns the full payroll history, newest period first.
func ListPayrollByEmployee(db *gorm.DB, employeeID string) ([]PayrollRecord, error) {
	var rows []PayrollRecord
	err := db.Where("employee_id = ?", employeeID).Order("month DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	return rows, nil
}

// FindPayrollByID loads a single payroll row, for payslip serving.
func FindPayrollByID(db *gorm.DB, id uint) (*PayrollRecord, error) {
	var record PayrollRecord
	err := db.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll record: %w", err)
	}
	return &record, nil
}

// AttachPayslip stores the object key of an uploaded payslip on its payroll
// row.
func AttachPayslip(db *gorm.DB, payrollID uint, url string) error {
	result := db.Model(&PayrollRecord{}).
		Where("id = ?", payrollID).
		Update("payslip_url", url)
	if result.Error != nil {
		return fmt.Errorf("failed to attach payslip: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TodaySalaryReport counts employees whose payroll was generated today
// against those still waiting.
func TodaySalaryReport(db *gorm.DB, now time.Time) (SalaryDaySummary, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var report SalaryDaySummary
	err := db.Model(&PayrollRecord{}).
		Where("generated_at >= ? AND generated_at < ?", dayStart, dayEnd).
		Count(&report.Paid).Error
	if err != nil {
		return report, fmt.Errorf("failed to count paid employees: %w", err)
	}

	paid := db.Model(&PayrollRecord{}).Select("employee_id").
		Where("generated_at >= ? AND generated_at < ?", dayStart, dayEnd)
	err = db.Model(&Employee{}).
		Where("employee_id NOT IN (?)", paid).
		Count(&report.Unpaid).Error
	if err != nil {
		return report, fmt.Errorf("failed to count unpaid employees: %w", err)
	}

	return report, nil
}
