package notifications

import (
	"net/http"

	"estate-sales-portal-server/handlers/auth"
	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
)

// GetNotifications returns the user's notifications, newest first.
func GetNotifications(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var items []models.Notification
	if err := utils.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// MarkRead flags one of the user's notifications as read. Only the recipient
// may do this.
func MarkRead(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var notification models.Notification
	if err := utils.DB.First(&notification, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if notification.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this notification"})
		return
	}

	if err := utils.DB.Model(&notification).Update("read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
