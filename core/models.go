package core

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the storage layout for day-granular columns.
const DateLayout = "2006-01-02"

// PendingRegistration is a signup awaiting approval or decline. The row is
// created on signup and destroyed by either terminal transition.
type PendingRegistration struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID    string     `gorm:"size:6" json:"employeeID"` // provisional, recomputed at approval
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Gender        string     `json:"gender"`
	BloodGroup    string     `json:"bloodGroup"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	DateOfJoining time.Time  `json:"dateOfJoining"`
	PhoneNo       string     `json:"phoneNo"`
	Email         string     `gorm:"index" json:"email"`
	Education     string     `json:"education"`
	Qualification string     `json:"qualification"`
	Designation   string     `json:"designation"`
	Password      string     `json:"-"` // bcrypt hash, carried over verbatim at approval
	RequestedAt   time.Time  `gorm:"autoCreateTime" json:"requestedAt"`
}

func (PendingRegistration) TableName() string { return "pending_registrations" }

// Employee is the canonical profile row, created exactly once at approval.
// EmployeeID is unique and immutable after approval.
type Employee struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID     string         `gorm:"size:6;uniqueIndex" json:"employeeID"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Gender         string         `json:"gender"`
	BloodGroup     string         `json:"bloodGroup"`
	DateOfBirth    *time.Time     `json:"dateOfBirth"`
	DateOfJoining  time.Time      `gorm:"index" json:"dateOfJoining"`
	PhoneNo        string         `json:"phoneNo"`
	Email          string         `gorm:"index" json:"email"`
	Education      string         `json:"education"`
	Qualification  string         `json:"qualification"`
	Designation    string         `json:"designation"`
	Attendance     int            `gorm:"default:0" json:"attendance"`
	Salary         float64        `gorm:"type:decimal(13,2);default:0" json:"salary"`
	Rating         float64        `gorm:"type:decimal(4,2);default:0" json:"rating"`
	PaidLeavesLeft int            `gorm:"default:12" json:"paidLeavesLeft"`
	Attributes     datatypes.JSON `json:"attributes,omitempty"`
	CreatedAt      time.Time      `json:"-"`
}

func (Employee) TableName() string { return "employees" }

// Credential is the login identity, one-to-one with Employee.
type Credential struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID string    `gorm:"size:6;uniqueIndex" json:"employeeID"`
	Email      string    `gorm:"uniqueIndex" json:"email"`
	Password   string    `json:"-"`
	Role       Role      `gorm:"type:varchar(20)" json:"role"`
	CreatedAt  time.Time `json:"-"`
}

func (Credential) TableName() string { return "credentials" }

// AttendanceRecord holds at most one row per employee per calendar date,
// enforced by the composite unique index.
type AttendanceRecord struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID   string     `gorm:"size:6;uniqueIndex:idx_employee_date" json:"employeeID"`
	Date         string     `gorm:"size:10;uniqueIndex:idx_employee_date" json:"date"`
	Status       string     `gorm:"size:10" json:"status"`
	PunchedInAt  *time.Time `json:"punchedInAt"`
	PunchedOutAt *time.Time `json:"punchedOutAt"`
}

func (AttendanceRecord) TableName() string { return "attendance_records" }

type LeaveRequest struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID  string     `gorm:"size:6;index" json:"employeeID"`
	StartDate   string     `gorm:"size:10" json:"startDate"`
	EndDate     string     `gorm:"size:10" json:"endDate"`
	Reason      string     `json:"reason"`
	Type        string     `gorm:"size:20" json:"type"`
	Status      string     `gorm:"size:10;default:pending" json:"status"`
	RequestedAt time.Time  `gorm:"autoCreateTime" json:"requestedAt"`
	ReviewedBy  *string    `json:"reviewedBy"`
	ReviewedAt  *time.Time `json:"reviewedAt"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }

// PayrollRecord is one row per employee per pay period. Month is "2006-01".
type PayrollRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID  string    `gorm:"size:6;index" json:"employeeID"`
	Month       string    `gorm:"size:7" json:"month"`
	BasicSalary float64   `gorm:"type:decimal(13,2)" json:"basicSalary"`
	Allowances  float64   `gorm:"type:decimal(13,2)" json:"allowances"`
	Deductions  float64   `gorm:"type:decimal(13,2)" json:"deductions"`
	NetPay      float64   `gorm:"type:decimal(13,2)" json:"netPay"`
	GeneratedAt time.Time `gorm:"autoCreateTime" json:"generatedAt"`
	PayslipURL  *string   `json:"payslipURL"`
}

func (PayrollRecord) TableName() string { return "payroll_records" }

// PasswordReset holds one-shot reset tokens issued by forgot-password.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Email     string    `gorm:"index"`
	Token     string    `gorm:"size:36;uniqueIndex"`
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (PasswordReset) TableName() string { return "password_resets" }
