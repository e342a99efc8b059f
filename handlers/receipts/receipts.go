package receipts

import (
	"net/http"

	"estate-sales-portal-server/handlers/auth"
	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
)

// Create records an uploaded bank-transfer slip against one of the client's
// applications. The server never reconciles it; admins verify the matching
// payment instead.
func Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var receipt models.Receipt
	if err := c.ShouldBindJSON(&receipt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	var application models.Application
	if err := utils.DB.First(&application, receipt.ApplicationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if (application.UserID == nil || *application.UserID != user.ID) && application.Email != user.Email {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this application"})
		return
	}

	receipt.UserID = user.ID
	if err := utils.DB.Create(&receipt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save receipt"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"receipt": receipt})
}

// ListMine returns the client's receipts.
func ListMine(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var items []models.Receipt
	if err := utils.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch receipts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipts": items})
}

// List returns all receipts for the admin review queue.
func List(c *gin.Context) {
	var items []models.Receipt
	if err := utils.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch receipts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipts": items})
}
