package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"staffdesk.com/staffdesk/core"
	"staffdesk.com/staffdesk/utils"
	"staffdesk.com/staffdesk/web/common"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeSheet(c *gin.Context, filename string, header []interface{}, rows [][]interface{}) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		log.Printf("export failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to build export"))
		return
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			log.Printf("export failed: %v", err)
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to build export"))
			return
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			log.Printf("export failed: %v", err)
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to build export"))
			return
		}
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Printf("export write failed: %v", err)
	}
}

// ExportEmployees downloads the roster as a spreadsheet.
func (ep *AdminEndpoint) ExportEmployees(c *gin.Context) {
	employees, err := core.ListEmployees(ep.DB)
	if err != nil {
		log.Printf("listing employees failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to load employees"))
		return
	}

	header := []interface{}{"Employee ID", "First Name", "Last Name", "Gender", "Email", "Phone", "Date of Joining", "Paid Leaves Left"}
	rows := utils.Map(employees, func(e core.EmployeeListRow) []interface{} {
		return []interface{}{e.EmployeeID, e.FirstName, e.LastName, e.Gender, e.Email, e.PhoneNo, e.DateOfJoining, e.PaidLeavesLeft}
	})

	writeSheet(c, "employees.xlsx", header, rows)
}

// ExportSalary downloads one employee's payroll history as a spreadsheet.
func (ep *AdminEndpoint) ExportSalary(c *gin.Context) {
	employeeID := strings.TrimSpace(c.Param("employeeID"))

	records, err := core.ListPayrollByEmployee(ep.DB, employeeID)
	if err != nil {
		log.Printf("listing payroll failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to load salary records"))
		return
	}

	header := []interface{}{"Month", "Basic Salary", "Allowances", "Deductions", "Net Pay", "Generated At"}
	rows := utils.Map(records, func(r core.PayrollRecord) []interface{} {
		return []interface{}{r.Month, r.BasicSalary, r.Allowances, r.Deductions, r.NetPay, r.GeneratedAt.Format(core.DateLayout)}
	})

	writeSheet(c, fmt.Sprintf("salary-%s.xlsx", employeeID), header, rows)
}
