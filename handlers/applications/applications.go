package applications

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"estate-sales-portal-server/handlers/auth"
	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"
	"estate-sales-portal-server/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubmitInput is the full application form. Every field is declared here;
// nothing crosses the boundary untyped.
type SubmitInput struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Address        string `json:"address"`
	NextOfKinName  string `json:"next_of_kin_name"`
	NextOfKinPhone string `json:"next_of_kin_phone"`
	PropertyID     uint   `json:"property_id"`
	Units          int    `json:"units"`
	PaymentPlan    string `json:"payment_plan"`
	TermsAccepted  bool   `json:"terms_accepted"`
}

func validPaymentPlan(plan string) bool {
	switch plan {
	case models.PlanOutright, models.PlanMusharakah, models.PlanMurabahah, models.PlanIjarah:
		return true
	}
	return false
}

// Submit accepts a purchase application from an anonymous or authenticated
// visitor. The total amount is locked in from the property's current price.
func Submit(c *gin.Context) {
	var input SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please fill in the application form correctly."})
		return
	}

	if !input.TermsAccepted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must accept the terms and conditions to submit an application."})
		return
	}

	if input.FullName == "" || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name and email are required."})
		return
	}

	if !validPaymentPlan(input.PaymentPlan) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid payment plan."})
		return
	}

	var property models.Property
	if err := utils.DB.First(&property, input.PropertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "The selected property could not be found."})
		return
	}

	units := input.Units
	if units <= 0 {
		units = 1
	}

	now := time.Now()
	application := models.Application{
		Reference:       uuid.NewString(),
		FullName:        input.FullName,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
		Address:         input.Address,
		NextOfKinName:   input.NextOfKinName,
		NextOfKinPhone:  input.NextOfKinPhone,
		PropertyID:      property.ID,
		EstateID:        property.EstateID,
		Units:           units,
		PaymentPlan:     input.PaymentPlan,
		TotalAmount:     property.Price * float64(units),
		TermsAccepted:   true,
		TermsAcceptedAt: &now,
		Status:          models.ApplicationPending,
	}

	if user, ok := auth.CurrentUser(c); ok {
		application.UserID = &user.ID
	}

	if err := utils.DB.Create(&application).Error; err != nil {
		log.Printf("Failed to create application: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue saving your application. Please try again later."})
		return
	}

	// Side effects are best effort; the submission stands regardless.
	if err := workflow.EnqueueEmail(utils.DB, workflow.EmailApplicationConfirmation, map[string]string{
		"to":        application.Email,
		"name":      application.FullName,
		"reference": application.Reference,
		"property":  property.Title,
		"total":     formatAmount(application.TotalAmount),
	}); err != nil {
		log.Printf("Failed to enqueue confirmation email for application %s: %v", application.Reference, err)
	}

	notifyAdmins("New application", application.FullName+" applied for "+property.Title)

	if _, err := workflow.GenerateApplicationForm(utils.DB, &application); err != nil {
		log.Printf("Failed to render application form for %s: %v", application.Reference, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully.",
		"application": application,
	})
}

// ListMine returns the client's applications, matched by account or by the
// email used on an anonymous submission.
func ListMine(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var apps []models.Application
	if err := utils.DB.Preload("Property").
		Where("user_id = ? OR email = ?", user.ID, user.Email).
		Order("created_at DESC").Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// Get returns one application. Admins see any; clients only their own.
func Get(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var application models.Application
	if err := utils.DB.Preload("Property").First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if !ownsApplication(user, &application) && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// SelectHouse re-points an application at another property in the same estate
// and reserves it. The locked-in total amount does not change.
func SelectHouse(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		PropertyID uint `json:"property_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	var application models.Application
	if err := utils.DB.First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if !ownsApplication(user, &application) && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this application"})
		return
	}

	var property models.Property
	if err := utils.DB.First(&property, input.PropertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "The selected property could not be found."})
		return
	}

	if property.EstateID != application.EstateID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The selected property is not part of this application's estate."})
		return
	}

	if property.Status != models.PropertyAvailable {
		c.JSON(http.StatusConflict, gin.H{"error": "The selected property is no longer available."})
		return
	}

	application.PropertyID = property.ID
	if err := utils.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	if err := utils.DB.Model(&property).Update("status", models.PropertyReserved).Error; err != nil {
		log.Printf("Failed to reserve property %d: %v", property.ID, err)
	}
	property.Status = models.PropertyReserved

	c.JSON(http.StatusOK, gin.H{
		"application": application,
		"property":    property,
	})
}

func ownsApplication(user models.User, application *models.Application) bool {
	if application.UserID != nil && *application.UserID == user.ID {
		return true
	}
	return application.Email == user.Email
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func notifyAdmins(title, message string) {
	var admins []models.User
	if err := utils.DB.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		log.Printf("Failed to load admins for notification: %v", err)
		return
	}

	for _, admin := range admins {
		n := models.Notification{
			UserID:  admin.ID,
			Title:   title,
			Message: message,
			Kind:    models.NotificationInfo,
		}
		if err := utils.DB.Create(&n).Error; err != nil {
			log.Printf("Failed to create admin notification: %v", err)
		}
	}
}
