package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"staffdesk.com/staffdesk/core"
	"staffdesk.com/staffdesk/infrastructure/filesystem"
	"staffdesk.com/staffdesk/web/common"
)

// UploadPayslip stores a payslip PDF in the payslip bucket and records the
// object key on the payroll row.
func (ep *AdminEndpoint) UploadPayslip(c *gin.Context) {
	payrollID, err := strconv.Atoi(c.Param("payrollID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	record, err := core.FindPayrollByID(ep.DB, uint(payrollID))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Payroll record not found"))
			return
		}
		log.Printf("payroll lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Missing payslip file"))
		return
	}
	if ext := filepath.Ext(file.Filename); ext != ".pdf" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Payslip must be a PDF"))
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("payslip open failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
		return
	}
	defer src.Close()

	key := fmt.Sprintf("payslips/%s/%s.pdf", record.EmployeeID, uuid.NewString())
	if err := filesystem.WriteFile(ep.PayslipBucket, key, c.Request.Context(), src, "application/pdf"); err != nil {
		log.Printf("payslip upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to store payslip"))
		return
	}

	if err := core.AttachPayslip(ep.DB, uint(payrollID), key); err != nil {
		log.Printf("payslip attach failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to store payslip"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Payslip uploaded",
		"payslipURL": key,
	})
}

// DownloadPayslip streams the caller's own payslip from the payslip bucket.
func (ep *EmployeeEndpoint) DownloadPayslip(c *gin.Context) {
	employeeID, ok := ep.employeeID(c)
	if !ok {
		return
	}

	payrollID, err := strconv.Atoi(c.Param("payrollID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid id"))
		return
	}

	record, err := core.FindPayrollByID(ep.DB, uint(payrollID))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Payroll record not found"))
			return
		}
		log.Printf("payroll lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error."))
		return
	}

	// Payroll rows are scoped to the authenticated identity.
	if record.EmployeeID != employeeID {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Payroll record not found"))
		return
	}
	if record.PayslipURL == nil || *record.PayslipURL == "" {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Payslip not available"))
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(*record.PayslipURL)))
	if err := filesystem.ReadFile(ep.PayslipBucket, *record.PayslipURL, c.Request.Context(), c.Writer); err != nil {
		log.Printf("payslip download failed: %v", err)
		// Headers may already be written; nothing more to send.
	}
}
