package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"staffdesk.com/staffdesk/core"
	"staffdesk.com/staffdesk/web/common"
	"staffdesk.com/staffdesk/web/middlewares"
)

type EmployeeEndpoint struct {
	DB            *gorm.DB
	PayslipBucket string
}

func RegisterEmployee(r *gin.RouterGroup, ep *EmployeeEndpoint) {
	r.GET("/profile", ep.Profile)
	r.GET("/attendance/summary", ep.AttendanceSummary)
	r.POST("/attendance/mark", ep.MarkAttendance)
	r.GET("/attendance/today", ep.TodayAttendance)
	r.GET("/leaves/summary", ep.LeavesSummary)
	r.POST("/leaves/request", ep.ApplyLeave)
	r.GET("/payroll/latest", ep.PayrollLatest)
	r.GET("/payroll/payslip/:payrollID", ep.DownloadPayslip)
}

// employeeID resolves the authenticated user to their employee identifier.
// Writes the error response itself when resolution fails.
func (ep *EmployeeEndpoint) employeeID(c *gin.Context) (string, bool) {
	userID := c.GetUint(middlewares.ContextUserID)

	employeeID, err := core.FindEmployeeIDByUserID(ep.DB, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Employee not found."))
			return "", false
		}
		log.Printf("resolving employee id failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
		return "", false
	}
	return employeeID, true
}

func (ep *EmployeeEndpoint) Profile(c *gin.Context) {
	employeeID, ok := ep.employeeID(c)
	if !ok {
		return
	}

	profile, err := core.GetProfile(ep.DB, employeeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Employee profile not found."))
			return
		}
		log.Printf("loading profile failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ep *EmployeeEndpoint) AttendanceSummary(c *gin.Context) {
	employeeID, ok := ep.employeeID(c)
	if !ok {
		return
	}

	summary, err := core.GetAttendanceSummary(ep.DB, employeeID, time.Now())
	if err != nil {
		log.Printf("attendance summary failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (ep *EmployeeEndpoint) MarkAttendance(c *gin.Context) {
	employeeID, ok := ep.employeeID(c)
	if !ok {
		return
	}

	err := core.MarkAttendance(ep.DB, employeeID, time.Now())
	switch {
	case errors.Is(err, core.ErrAlreadyMarked):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Attendance already marked for today."))
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Employee not found."))
	case err != nil:
		log.Printf("marking attendance failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Attendance marked successfully."})
	}
}

func (ep *EmployeeEndpoint) TodayAttendance(c *gin.Context) {
	employeeID, ok := ep.employeeID(c)
	if !ok {
		return
	}

	today, err := core.GetTodayAttendance(ep.DB, employeeID, time.Now())
	if err != nil {
		log.Printf("today attendance failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
		return
	}
	c.JSON(http.StatusOK, today)
}

func (ep *EmployeeEndpoint) LeavesSummary(c *gin.Context) {
	employeeID, ok := ep.employeeID(c)
	if !ok {
		return
	}

	summary, err := core.GetLeavesSummary(ep.DB, employeeID)
	if err != nil {
		log.Printf("leaves summary failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
		return
	}
	c.JSON(http.StatusOK, summary)
}

type LeaveRequestDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
	Type      string `json:"type"`
}

func (ep *EmployeeEndpoint) ApplyLeave(c *gin.Context) {
	employeeID, ok := ep.employeeID(c)
	if !ok {
		return
	}

	var dto LeaveRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	err := core.ApplyLeave(ep.DB, employeeID, core.LeaveInput{
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
		Reason:    dto.Reason,
		Type:      dto.Type,
	})
	switch {
	case errors.Is(err, core.ErrMissingFields):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("All fields are required."))
	case err != nil:
		log.Printf("leave request failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Leave request submitted."})
	}
}

func (ep *EmployeeEndpoint) PayrollLatest(c *gin.Context) {
	employeeID, ok := ep.employeeID(c)
	if !ok {
		return
	}

	latest, err := core.GetPayrollLatest(ep.DB, employeeID)
	if err != nil {
		log.Printf("latest payroll failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
		return
	}
	c.JSON(http.StatusOK, latest)
}
