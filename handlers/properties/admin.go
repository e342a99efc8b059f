package properties

import (
	"net/http"

	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
)

func CreateEstate(c *gin.Context) {
	var estate models.Estate
	if err := c.ShouldBindJSON(&estate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if estate.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estate name is required."})
		return
	}

	if err := utils.DB.Create(&estate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create estate"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"estate": estate})
}

func UpdateEstate(c *gin.Context) {
	var estate models.Estate
	if err := utils.DB.First(&estate, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Estate not found"})
		return
	}

	var input models.Estate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	estate.Name = input.Name
	estate.Location = input.Location
	estate.City = input.City
	estate.State = input.State
	estate.Description = input.Description
	estate.BannerURL = input.BannerURL
	if err := utils.DB.Save(&estate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update estate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"estate": estate})
}

func CreateStreet(c *gin.Context) {
	var street models.Street
	if err := c.ShouldBindJSON(&street); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	var estate models.Estate
	if err := utils.DB.First(&estate, street.EstateID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Estate not found"})
		return
	}

	if err := utils.DB.Create(&street).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create street"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"street": street})
}

func CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	var estate models.Estate
	if err := utils.DB.First(&estate, property.EstateID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Estate not found"})
		return
	}

	if property.Title == "" || property.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Property title and a positive price are required."})
		return
	}

	if property.Status == "" {
		property.Status = models.PropertyAvailable
	}

	if err := utils.DB.Create(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property})
}

func UpdateProperty(c *gin.Context) {
	var property models.Property
	if err := utils.DB.First(&property, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	var input models.Property
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	property.Title = input.Title
	property.Description = input.Description
	property.Price = input.Price
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.SizeSqm = input.SizeSqm
	if input.Status != "" {
		property.Status = input.Status
	}
	if input.StreetID != nil {
		property.StreetID = input.StreetID
	}
	if err := utils.DB.Save(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}
