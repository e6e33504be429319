package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"staffdesk.com/staffdesk/core"
	"staffdesk.com/staffdesk/infrastructure/communication"
	"staffdesk.com/staffdesk/security"
	"staffdesk.com/staffdesk/utils"
	"staffdesk.com/staffdesk/web/common"
)

type AuthEndpoint struct {
	DB        *gorm.DB
	Secret    []byte
	Mailer    *communication.Mailer
	Notifier  *communication.Slack
	ClientURL string
}

func RegisterAuth(r *gin.RouterGroup, ep *AuthEndpoint) {
	r.POST("/signup", ep.Signup)
	r.POST("/login", ep.Login)
	r.POST("/forgot-password", ep.ForgotPassword)
	r.POST("/reset-password", ep.ResetPassword)
}

type SignupDTO struct {
	FirstName     string           `json:"firstName" binding:"required"`
	LastName      string           `json:"lastName" binding:"required"`
	Gender        string           `json:"gender"`
	BloodGroup    string           `json:"bloodGroup"`
	DateOfBirth   *common.DateOnly `json:"dateOfBirth"`
	DateOfJoining string           `json:"dateOfJoining" binding:"required"`
	Phone         string           `json:"phone"`
	Email         string           `json:"email" binding:"required,email"`
	Education     string           `json:"education"`
	Qualification string           `json:"qualification"`
	Designation   string           `json:"designation"`
	Password      string           `json:"password" binding:"required"`
}

func (ep *AuthEndpoint) Signup(c *gin.Context) {
	var dto SignupDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	var dateOfBirth *time.Time
	if dto.DateOfBirth != nil && !dto.DateOfBirth.IsZero() {
		dateOfBirth = utils.Ptr(dto.DateOfBirth.Time)
	}

	employeeID, err := core.SubmitSignup(ep.DB, core.SignupInput{
		FirstName:     dto.FirstName,
		LastName:      dto.LastName,
		Gender:        dto.Gender,
		BloodGroup:    dto.BloodGroup,
		DateOfBirth:   dateOfBirth,
		DateOfJoining: dto.DateOfJoining,
		PhoneNo:       dto.Phone,
		Email:         dto.Email,
		Education:     dto.Education,
		Qualification: dto.Qualification,
		Designation:   dto.Designation,
		Password:      dto.Password,
	})
	if err != nil {
		if errors.Is(err, core.ErrInvalidJoinDate) {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid dateOfJoining format."))
			return
		}
		log.Printf("signup failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to submit signup request"))
		return
	}

	if notifyErr := ep.Notifier.Info(fmt.Sprintf("New signup request from %s %s (%s)", dto.FirstName, dto.LastName, dto.Email)); notifyErr != nil {
		log.Printf("signup notification failed: %v", notifyErr)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":            "Signup request submitted. Please wait for admin approval.",
		"assignedEmployeeID": employeeID,
	})
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ep *AuthEndpoint) Login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	var credential core.Credential
	err := ep.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(dto.Email))).
		First(&credential).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid email or password"))
		return
	}
	if err != nil {
		log.Printf("login lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Server error"))
		return
	}

	if !security.CheckPassword(credential.Password, dto.Password) {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid email or password"))
		return
	}

	role, ok := core.ParseRole(string(credential.Role))
	if !ok {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("Unauthorized role detected."))
		return
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		UserID: credential.ID,
		Email:  credential.Email,
		Role:   role.String(),
	}, ep.Secret, security.TokenExpiry)
	if err != nil {
		log.Printf("token creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Server error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"role":        role,
	})
}

type ForgotPasswordDTO struct {
	Email string `json:"email" binding:"required,email"`
}

func (ep *AuthEndpoint) ForgotPassword(c *gin.Context) {
	var dto ForgotPasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	token, err := core.CreatePasswordReset(ep.DB, dto.Email)
	if err != nil {
		log.Printf("password reset issuance failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Server error"))
		return
	}

	if token != "" {
		link := fmt.Sprintf("%s/reset-password?token=%s", ep.ClientURL, token)
		body := fmt.Sprintf("A password reset was requested for your account.\n\nReset link: %s\n\nThe link expires in one hour.", link)
		if mailErr := ep.Mailer.Send(c.Request.Context(), dto.Email, "Password reset", body); mailErr != nil {
			log.Printf("password reset mail failed: %v", mailErr)
		}
	}

	// Same response whether or not the account exists.
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset link has been sent."})
}

type ResetPasswordDTO struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (ep *AuthEndpoint) ResetPassword(c *gin.Context) {
	var dto ResetPasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	err := core.ResetPassword(ep.DB, dto.Token, dto.NewPassword)
	switch {
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Reset token not found"))
	case errors.Is(err, core.ErrResetExpired):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Reset token expired or already used"))
	case err != nil:
		log.Printf("password reset failed: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Server error"))
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Password updated."})
	}
}
