package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdesk.com/staffdesk/utils"
)

func TestMarkAttendance(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&Employee{
		EmployeeID:     "250001",
		DateOfJoining:  utils.MustParseDate("2025-03-01"),
		PaidLeavesLeft: 12,
	}).Error)

	now := time.Date(2025, 8, 29, 9, 15, 0, 0, time.UTC)

	require.NoError(t, MarkAttendance(db, "250001", now))

	var record AttendanceRecord
	require.NoError(t, db.Where("employee_id = ?", "250001").First(&record).Error)
	assert.Equal(t, "2025-08-29", record.Date)
	assert.Equal(t, "present", record.Status)
	require.NotNil(t, record.PunchedInAt)

	var employee Employee
	require.NoError(t, db.Where("employee_id = ?", "250001").First(&employee).Error)
	assert.Equal(t, 1, employee.Attendance)

	// Second mark on the same day is rejected and the counter stays put.
	err := MarkAttendance(db, "250001", now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyMarked)

	require.NoError(t, db.Where("employee_id = ?", "250001").First(&employee).Error)
	assert.Equal(t, 1, employee.Attendance)

	// A new day increments again.
	require.NoError(t, MarkAttendance(db, "250001", now.AddDate(0, 0, 1)))
	require.NoError(t, db.Where("employee_id = ?", "250001").First(&employee).Error)
	assert.Equal(t, 2, employee.Attendance)
}

func TestMarkAttendanceUnknownEmployee(t *testing.T) {
	db := newTestDB(t)

	err := MarkAttendance(db, "999999", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)

	// The transaction rolled back the orphan attendance row.
	var count int64
	require.NoError(t, db.Model(&AttendanceRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetTodayAttendance(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&Employee{
		EmployeeID:    "250001",
		DateOfJoining: utils.MustParseDate("2025-03-01"),
	}).Error)

	now := time.Date(2025, 8, 29, 9, 15, 0, 0, time.UTC)

	today, err := GetTodayAttendance(db, "250001", now)
	require.NoError(t, err)
	assert.Equal(t, "absent", today.Status)
	assert.Nil(t, today.PunchedInAt)

	require.NoError(t, MarkAttendance(db, "250001", now))

	today, err = GetTodayAttendance(db, "250001", now)
	require.NoError(t, err)
	assert.Equal(t, "present", today.Status)
	require.NotNil(t, today.PunchedInAt)
}

func TestGetAttendanceSummary(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&Employee{
		EmployeeID:     "250001",
		DateOfJoining:  utils.MustParseDate("2025-03-01"),
		PaidLeavesLeft: 10,
	}).Error)

	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

	// Two marks this month, one last month.
	require.NoError(t, MarkAttendance(db, "250001", time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, MarkAttendance(db, "250001", time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, MarkAttendance(db, "250001", time.Date(2025, 7, 31, 9, 0, 0, 0, time.UTC)))

	summary, err := GetAttendanceSummary(db, "250001", now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.DaysThisMonth)
	assert.Equal(t, 10, summary.PaidLeavesRemaining)
}

func TestGetAttendanceSummaryNoRows(t *testing.T) {
	db := newTestDB(t)

	summary, err := GetAttendanceSummary(db, "250001", time.Now())
	require.NoError(t, err)
	assert.Zero(t, summary.DaysThisMonth)
	assert.Zero(t, summary.PaidLeavesRemaining)
}

func TestTodayAttendanceReport(t *testing.T) {
	db := newTestDB(t)
	for _, id := range []string{"250001", "250002", "250003"} {
		require.NoError(t, db.Create(&Employee{
			EmployeeID:    id,
			DateOfJoining: utils.MustParseDate("2025-03-01"),
		}).Error)
	}

	now := time.Date(2025, 8, 29, 9, 15, 0, 0, time.UTC)
	require.NoError(t, MarkAttendance(db, "250001", now))

	report, err := TodayAttendanceReport(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Present)
	assert.Equal(t, int64(2), report.Absent)
}
