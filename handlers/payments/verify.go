package payments

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"estate-sales-portal-server/handlers/auth"
	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"
	"estate-sales-portal-server/workflow"

	"github.com/gin-gonic/gin"
)

// List returns payments for the admin verification queue, optionally
// filtered by status.
func List(c *gin.Context) {
	query := utils.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// Verify marks a payment completed, recomputes the application's payment
// percentage and generates any documents the new band makes eligible. The
// verification stands even if document generation fails; failures are
// reported alongside the result.
func Verify(c *gin.Context) {
	admin, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var payment models.Payment
	if err := utils.DB.First(&payment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	if payment.Status != models.PaymentPending && payment.Status != models.PaymentProcessing {
		c.JSON(http.StatusConflict, gin.H{"error": "Only a pending payment can be verified."})
		return
	}

	var application models.Application
	if err := utils.DB.First(&application, payment.ApplicationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found for payment"})
		return
	}

	now := time.Now()
	payment.Status = models.PaymentCompleted
	payment.VerifiedByID = &admin.ID
	payment.VerifiedAt = &now
	if err := utils.DB.Save(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		return
	}

	completed, percentage := applicationProgress(&application)

	var generated []models.GeneratedDocument
	var generationErrors []string
	for _, kind := range workflow.EligibleDocuments(percentage) {
		doc, created, err := workflow.GenerateDocument(utils.DB, &application, kind, percentage)
		if err != nil {
			log.Printf("Document generation failed (application %s, kind %s): %v",
				application.Reference, kind, err)
			generationErrors = append(generationErrors, kind+": "+err.Error())
			continue
		}
		if created {
			generated = append(generated, doc)
		}
	}

	if percentage >= 100 {
		if err := utils.DB.Model(&models.Property{}).
			Where("id = ?", application.PropertyID).
			Update("status", models.PropertySold).Error; err != nil {
			log.Printf("Failed to mark property %d sold: %v", application.PropertyID, err)
		}
	}

	docNames := make([]string, 0, len(generated))
	for _, doc := range generated {
		docNames = append(docNames, doc.Kind)
	}
	docList := strings.Join(docNames, ", ")
	if docList == "" {
		docList = "none"
	}

	if err := workflow.EnqueueEmail(utils.DB, workflow.EmailPaymentVerification, map[string]string{
		"to":         application.Email,
		"name":       application.FullName,
		"reference":  application.Reference,
		"amount":     formatAmount(payment.Amount),
		"percentage": strconv.FormatFloat(percentage, 'f', 1, 64),
		"balance":    formatAmount(application.TotalAmount - completed),
		"documents":  docList,
	}); err != nil {
		log.Printf("Failed to enqueue verification email for application %s: %v", application.Reference, err)
	}

	if application.UserID != nil {
		message := "Your payment of " + formatAmount(payment.Amount) + " has been verified."
		kind := models.NotificationSuccess
		if percentage >= 100 {
			message += " Your payment is complete; your closing documents are ready."
		}
		n := models.Notification{
			UserID:  *application.UserID,
			Title:   "Payment verified",
			Message: message,
			Kind:    kind,
		}
		if err := utils.DB.Create(&n).Error; err != nil {
			log.Printf("Failed to create notification for user %d: %v", *application.UserID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "Payment verified.",
		"payment":             payment,
		"percentage":          percentage,
		"generated_documents": generated,
		"generation_errors":   generationErrors,
	})
}

// Reject marks a payment failed. A non-empty reason is required and is kept
// in the payment notes.
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

	var payment models.Payment
	if err := utils.DB.First(&payment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	payment.Status = models.PaymentFailed
	if payment.Notes != "" {
		payment.Notes += "; "
	}
	payment.Notes += "rejected: " + input.Reason
	if err := utils.DB.Save(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		return
	}

	if payment.UserID != nil {
		n := models.Notification{
			UserID:  *payment.UserID,
			Title:   "Payment rejected",
			Message: "Your payment of " + formatAmount(payment.Amount) + " could not be verified: " + input.Reason,
			Kind:    models.NotificationError,
		}
		if err := utils.DB.Create(&n).Error; err != nil {
			log.Printf("Failed to create notification for user %d: %v", *payment.UserID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment rejected.",
		"payment": payment,
	})
}

// applicationProgress sums the application's completed payments and derives
// the payment percentage.
func applicationProgress(application *models.Application) (completed, percentage float64) {
	var sum struct {
		Total float64
	}
	if err := utils.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("application_id = ? AND status = ?", application.ID, models.PaymentCompleted).
		Scan(&sum).Error; err != nil {
		log.Printf("Failed to sum payments for application %d: %v", application.ID, err)
		return 0, 0
	}

	return sum.Total, workflow.PaymentPercentage(sum.Total, application.TotalAmount)
}
