package properties

import (
	"net/http"

	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
)

// GetEstates lists all development sites.
func GetEstates(c *gin.Context) {
	var estates []models.Estate
	if err := utils.DB.Order("name").Find(&estates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch estates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"estates": estates})
}

// GetEstate returns one estate with its streets and properties.
func GetEstate(c *gin.Context) {
	var estate models.Estate
	if err := utils.DB.Preload("Streets").Preload("Properties").First(&estate, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Estate not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"estate": estate})
}

// GetProperties lists sellable units, filterable by estate and status.
func GetProperties(c *gin.Context) {
	query := utils.DB.Preload("Estate")
	if estateID := c.Query("estate_id"); estateID != "" {
		query = query.Where("estate_id = ?", estateID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var props []models.Property
	if err := query.Order("created_at DESC").Find(&props).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": props})
}

// GetProperty returns one unit with its estate.
func GetProperty(c *gin.Context) {
	var property models.Property
	if err := utils.DB.Preload("Estate").First(&property, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}
