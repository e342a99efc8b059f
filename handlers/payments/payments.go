package payments

import (
	"net/http"
	"strconv"

	"estate-sales-portal-server/handlers/auth"
	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
)

// Record declares a payment made toward one of the client's applications.
// It stays pending until an admin verifies it against the bank records.
func Record(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		ApplicationID uint    `json:"application_id"`
		Amount        float64 `json:"amount"`
		InstallmentNo int     `json:"installment_no"`
		Reference     string  `json:"reference"`
		Notes         string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount must be greater than zero."})
		return
	}

	var application models.Application
	if err := utils.DB.First(&application, input.ApplicationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if (application.UserID == nil || *application.UserID != user.ID) && application.Email != user.Email {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this application"})
		return
	}

	payment := models.Payment{
		ApplicationID: application.ID,
		UserID:        &user.ID,
		Amount:        input.Amount,
		InstallmentNo: input.InstallmentNo,
		Reference:     input.Reference,
		Notes:         input.Notes,
		Status:        models.PaymentPending,
	}
	if err := utils.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded. It will be verified by our team shortly.",
		"payment": payment,
	})
}

// ListMine returns the client's payments, newest first.
func ListMine(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var payments []models.Payment
	if err := utils.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// Progress returns the verified payment percentage for one of the client's
// applications.
func Progress(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var application models.Application
	if err := utils.DB.First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if (application.UserID == nil || *application.UserID != user.ID) && application.Email != user.Email && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this application"})
		return
	}

	completed, percentage := applicationProgress(&application)

	c.JSON(http.StatusOK, gin.H{
		"total_amount": application.TotalAmount,
		"paid":         completed,
		"balance":      application.TotalAmount - completed,
		"percentage":   percentage,
	})
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
