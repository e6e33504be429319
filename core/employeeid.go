package core

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"staffdesk.com/staffdesk/utils"
)

// ParseJoinDate parses a submitted joining date. Leading/trailing whitespace
// is tolerated; an unparseable value fails with ErrInvalidJoinDate.
func ParseJoinDate(s string) (time.Time, error) {
	t, err := utils.ParseISOTime(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidJoinDate
	}
	return *t, nil
}

// FormatEmployeeID builds the YYNNNN identifier: two-digit join year plus a
// 4-digit zero-padded sequence number.
func FormatEmployeeID(year int, sequence int) string {
	return fmt.Sprintf("%02d%04d", year%100, sequence)
}

// CountApprovedInYear returns how many employee profiles already exist with
// the given join year.
func CountApprovedInYear(db *gorm.DB, year int) (int64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := db.Model(&Employee{}).
		Where("date_of_joining >= ? AND date_of_joining < ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count approved employees: %w", err)
	}
	return count, nil
}

// AllocateEmployeeID derives an identifier from the current approved-count
// for the join year. The result is provisional until used inside the
// approval transaction: sequence numbers are not reserved here, and the
// unique index on employees.employee_id is what makes the final assignment
// safe (approval retries on a duplicate).
func AllocateEmployeeID(db *gorm.DB, joinDate time.Time) (string, error) {
	count, err := CountApprovedInYear(db, joinDate.Year())
	if err != nil {
		return "", err
	}
	return FormatEmployeeID(joinDate.Year(), int(count)+1), nil
}
