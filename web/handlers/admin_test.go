package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"staffdesk.com/staffdesk/core"
)

func newAdminRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAdmin(r.Group("/api/admin"), &AdminEndpoint{DB: db})
	return r
}

func seedPending(t *testing.T, db *gorm.DB, email string) core.PendingRegistration {
	t.Helper()
	_, err := core.SubmitSignup(db, core.SignupInput{
		FirstName:     "Alice",
		LastName:      "Patel",
		DateOfJoining: "2025-03-01",
		Email:         email,
		Password:      "Alice@123",
	})
	require.NoError(t, err)

	var pending core.PendingRegistration
	require.NoError(t, db.Where("email = ?", email).First(&pending).Error)
	return pending
}

func TestApproveHandlerNoBody(t *testing.T) {
	db := newTestDB(t)
	pending := seedPending(t, db, "alice.patel@example.com")
	r := newAdminRouter(db)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/not-verified/%d/approve", pending.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var credential core.Credential
	require.NoError(t, db.Where("email = ?", "alice.patel@example.com").First(&credential).Error)
	assert.Equal(t, core.RoleEmployee, credential.Role)
}

func TestApproveHandlerChunkedEmptyBody(t *testing.T) {
	db := newTestDB(t)
	pending := seedPending(t, db, "alice.patel@example.com")
	r := newAdminRouter(db)

	// A reader without a known length leaves ContentLength at -1, as a
	// chunked request would.
	body := struct{ io.Reader }{strings.NewReader("")}
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/not-verified/%d/approve", pending.ID), body)
	require.Equal(t, int64(-1), req.ContentLength)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApproveHandlerWithRole(t *testing.T) {
	db := newTestDB(t)
	pending := seedPending(t, db, "boss@example.com")
	r := newAdminRouter(db)

	w := postJSON(r, fmt.Sprintf("/api/admin/not-verified/%d/approve", pending.ID), map[string]any{"role": "admin"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		EmployeeID string `json:"employeeID"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	var credential core.Credential
	require.NoError(t, db.Where("employee_id = ?", resp.EmployeeID).First(&credential).Error)
	assert.Equal(t, core.RoleAdmin, credential.Role)
}

func TestApproveHandlerEmailTaken(t *testing.T) {
	db := newTestDB(t)
	seedCredential(t, db, "alice.patel@example.com", "Other@123", core.RoleEmployee)
	pending := seedPending(t, db, "alice.patel@example.com")
	r := newAdminRouter(db)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/not-verified/%d/approve", pending.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")

	// The pending row is untouched.
	err := db.First(&core.PendingRegistration{}, pending.ID).Error
	assert.NoError(t, err)
}

func TestApproveHandlerUnknownID(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/not-verified/12345/approve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
