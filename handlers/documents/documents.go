package documents

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"estate-sales-portal-server/handlers/auth"
	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"
	"estate-sales-portal-server/workflow"

	"github.com/gin-gonic/gin"
)

// ListForApplication returns the threshold documents generated for an
// application. Admins see any application's documents; clients only their
// own.
func ListForApplication(c *gin.Context) {
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

	owns := (application.UserID != nil && *application.UserID == user.ID) || application.Email == user.Email
	if !owns && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this application"})
		return
	}

	var generated []models.GeneratedDocument
	if err := utils.DB.Where("application_id = ?", application.ID).Order("created_at").Find(&generated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	var attachments []models.Document
	if err := utils.DB.Where("application_id = ?", application.ID).Order("created_at").Find(&attachments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_documents": generated,
		"documents":           attachments,
	})
}

// Download serves one stored artifact. Filenames carry the application
// reference as their prefix; only the owning client or an admin may fetch.
func Download(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	name := filepath.Base(c.Param("name"))
	reference, _, found := strings.Cut(name, "_")
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	var application models.Application
	if err := utils.DB.Where("reference = ?", reference).First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	owns := (application.UserID != nil && *application.UserID == user.ID) || application.Email == user.Email
	if !owns && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this document"})
		return
	}

	path := filepath.Join(workflow.StorageDir(), name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.File(path)
}

// List returns every generated document for the admin documents view.
func List(c *gin.Context) {
	var generated []models.GeneratedDocument
	if err := utils.DB.Order("created_at DESC").Find(&generated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"generated_documents": generated})
}
