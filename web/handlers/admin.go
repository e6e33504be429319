package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"staffdesk.com/staffdesk/core"
	"staffdesk.com/staffdesk/infrastructure/communication"
	"staffdesk.com/staffdesk/web/common"
)

type AdminEndpoint struct {
	DB            *gorm.DB
	Mailer        *communication.Mailer
	Notifier      *communication.Slack
	PayslipBucket string
}

func RegisterAdmin(r *gin.RouterGroup, ep *AdminEndpoint) {
	r.GET("/not-verified", ep.ListPending)
	r.POST("/not-verified/:signupId/approve", ep.Approve)
	r.POST("/not-verified/:signupId/decline", ep.Decline)
	r.GET("/employees", ep.ListEmployees)
	r.GET("/employees/export", ep.ExportEmployees)
	r.GET("/attendance/:employeeID", ep.AttendanceByEmployee)
	r.GET("/salary/:employeeID", ep.SalaryByEmployee)
	r.GET("/salary/:employeeID/export", ep.ExportSalary)
	r.GET("/leave-requests", ep.LeaveRequests)
	r.GET("/today-attendance-summary", ep.TodayAttendanceSummary)
	r.GET("/today-salary-summary", ep.TodaySalarySummary)
	r.POST("/payroll/:payrollID/payslip", ep.UploadPayslip)
}

func (ep *AdminEndpoint) ListPending(c *gin.Context) {
	rows, err := core.ListPending(ep.DB)
	if err != nil {
		log.Printf("listing pending signups failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to load pending signups"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

type ApproveDTO struct {
	Role string `json:"role"`
}

func (ep *AdminEndpoint) Approve(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("signupId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	// Role is optional; an absent body means the workflow default.
	var dto ApproveDTO
	if err := c.ShouldBindJSON(&dto); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}
	var role core.Role
	if dto.Role != "" {
		parsed, ok := core.ParseRole(dto.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Unknown role"))
			return
		}
		role = parsed
	}

	result, err := core.ApproveSignup(ep.DB, uint(id), role)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Signup request not found"))
			return
		}
		if errors.Is(err, core.ErrEmailExists) {
			c.JSON(http.StatusConflict, common.NewErrorResponse("Email already registered"))
			return
		}
		log.Printf("approval failed: %v", err)
		if notifyErr := ep.Notifier.Error(fmt.Sprintf("Signup approval %d failed: %v", id, err)); notifyErr != nil {
			log.Printf("approval notification failed: %v", notifyErr)
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to approve signup"))
		return
	}

	body := fmt.Sprintf("Hi %s,\n\nYour signup request has been approved. Your employee ID is %s.\nYou can now log in with your registered email.", result.FirstName, result.EmployeeID)
	if mailErr := ep.Mailer.Send(c.Request.Context(), result.Email, "Signup approved", body); mailErr != nil {
		log.Printf("approval mail failed: %v", mailErr)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Signup approved",
		"employeeID": result.EmployeeID,
	})
}

func (ep *AdminEndpoint) Decline(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("signupId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	pending, err := core.DeclineSignup(ep.DB, uint(id))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Signup not found"))
			return
		}
		log.Printf("decline failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to decline signup"))
		return
	}

	body := fmt.Sprintf("Hi %s,\n\nYour signup request was declined. Please contact HR for details.", pending.FirstName)
	if mailErr := ep.Mailer.Send(c.Request.Context(), pending.Email, "Signup declined", body); mailErr != nil {
		log.Printf("decline mail failed: %v", mailErr)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signup declined"})
}

func (ep *AdminEndpoint) ListEmployees(c *gin.Context) {
	rows, err := core.ListEmployees(ep.DB)
	if err != nil {
		log.Printf("listing employees failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to load employees"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ep *AdminEndpoint) AttendanceByEmployee(c *gin.Context) {
	employeeID := strings.TrimSpace(c.Param("employeeID"))

	rows, err := core.ListAttendanceByEmployee(ep.DB, employeeID)
	if err != nil {
		log.Printf("listing attendance failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to load attendance records"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ep *AdminEndpoint) SalaryByEmployee(c *gin.Context) {
	employeeID := strings.TrimSpace(c.Param("employeeID"))

	rows, err := core.ListPayrollByEmployee(ep.DB, employeeID)
	if err != nil {
		log.Printf("listing payroll failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to load salary records"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ep *AdminEndpoint) LeaveRequests(c *gin.Context) {
	rows, err := core.ListLeaveRequests(ep.DB)
	if err != nil {
		log.Printf("listing leave requests failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to load leave requests"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ep *AdminEndpoint) TodayAttendanceSummary(c *gin.Context) {
	report, err := core.TodayAttendanceReport(ep.DB, time.Now())
	if err != nil {
		log.Printf("attendance summary failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to load attendance summary"))
		return
	}
	c.JSON(http.StatusOK, report)
}

func (ep *AdminEndpoint) TodaySalarySummary(c *gin.Context) {
	report, err := core.TodaySalaryReport(ep.DB, time.Now())
	if err != nil {
		log.Printf("salary summary failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to load salary summary"))
		return
	}
	c.JSON(http.StatusOK, report)
}
