package reports

import (
	"net/http"

	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Summary aggregates the numbers behind the admin dashboard: applications
// and properties by status, plus verified payment volume.
func Summary(c *gin.Context) {
	var applicationCounts []statusCount
	if err := utils.DB.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").Scan(&applicationCounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate applications"})
		return
	}

	var propertyCounts []statusCount
	if err := utils.DB.Model(&models.Property{}).
		Select("status, COUNT(*) AS count").
		Group("status").Scan(&propertyCounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate properties"})
		return
	}

	var verified struct {
		Total float64
		Count int64
	}
	if err := utils.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("status = ?", models.PaymentCompleted).
		Scan(&verified).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications_by_status": applicationCounts,
		"properties_by_status":   propertyCounts,
		"verified_payments": gin.H{
			"count": verified.Count,
			"total": verified.Total,
		},
	})
}
