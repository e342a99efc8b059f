package applications

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"estate-sales-portal-server/handlers/auth"
	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"
	"estate-sales-portal-server/workflow"

	"github.com/gin-gonic/gin"
)

// List returns all applications for the admin review queue, optionally
// filtered by status.
func List(c *gin.Context) {
	query := utils.DB.Preload("Property").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var apps []models.Application
	if err := query.Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// Approve marks an application approved, creates the client account if one
// does not exist yet, and mails a one-time invite link. Repeated calls
// overwrite the approver and timestamp.
func Approve(c *gin.Context) {
	admin, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var application models.Application
	if err := utils.DB.First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	// An application whose terms were never accepted can never be approved.
	if !application.TermsAccepted {
		c.JSON(http.StatusConflict, gin.H{"error": "This application cannot be approved: terms were not accepted."})
		return
	}

	if application.Status == models.ApplicationRejected {
		c.JSON(http.StatusConflict, gin.H{"error": "A rejected application cannot be approved."})
		return
	}

	now := time.Now()
	application.Status = models.ApplicationApproved
	application.ApprovedByID = &admin.ID
	application.ApprovedAt = &now

	user, err := ensureClientAccount(&application)
	if err != nil {
		log.Printf("Failed to provision client account for application %s: %v", application.Reference, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provision the client account"})
		return
	}
	application.UserID = &user.ID

	if err := utils.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	invite, err := auth.NewInviteToken(user.ID)
	if err != nil {
		log.Printf("Failed to create invite token for user %d: %v", user.ID, err)
	} else {
		if err := workflow.EnqueueEmail(utils.DB, workflow.EmailApplicationApproved, map[string]string{
			"to":         application.Email,
			"name":       application.FullName,
			"reference":  application.Reference,
			"invite_url": inviteURL(invite.Token),
		}); err != nil {
			log.Printf("Failed to enqueue approval email for application %s: %v", application.Reference, err)
		}
	}

	createNotification(user.ID, "Application approved",
		"Your application "+application.Reference+" has been approved. Check your email for dashboard access.",
		models.NotificationSuccess)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application approved.",
		"application": application,
	})
}

// Reject marks an application rejected. A non-empty reason is required and
// the decision is final; there is no reopening path.
func Reject(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	input.Reason = strings.TrimSpace(input.Reason)
	if input.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A rejection reason is required."})
		return
	}

	var application models.Application
	if err := utils.DB.First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	application.Status = models.ApplicationRejected
	application.RejectionReason = input.Reason
	if err := utils.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	if err := workflow.EnqueueEmail(utils.DB, workflow.EmailApplicationRejected, map[string]string{
		"to":        application.Email,
		"name":      application.FullName,
		"reference": application.Reference,
		"reason":    input.Reason,
	}); err != nil {
		log.Printf("Failed to enqueue rejection email for application %s: %v", application.Reference, err)
	}

	if application.UserID != nil {
		createNotification(*application.UserID, "Application update",
			"Your application "+application.Reference+" was not approved: "+input.Reason,
			models.NotificationError)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application rejected.",
		"application": application,
	})
}

// ensureClientAccount finds or creates the client user for an application's
// email. New accounts have no password until the invite is completed.
func ensureClientAccount(application *models.Application) (models.User, error) {
	var user models.User
	err := utils.DB.Where("email = ?", application.Email).First(&user).Error
	if err == nil {
		return user, nil
	}

	user = models.User{
		FullName:    application.FullName,
		Email:       application.Email,
		PhoneNumber: application.PhoneNumber,
		Role:        models.RoleClient,
		Active:      true,
	}
	if err := utils.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func inviteURL(token string) string {
	base := os.Getenv("PORTAL_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/invite?token=" + token
}

func createNotification(userID uint, title, message, kind string) {
	n := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Kind:    kind,
	}
	if err := utils.DB.Create(&n).Error; err != nil {
		log.Printf("Failed to create notification for user %d: %v", userID, err)
	}
}
