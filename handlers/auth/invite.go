package auth

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const inviteValidityDuration = 7 * 24 * time.Hour

// NewInviteToken issues a one-time invite for the user, invalidating any
// earlier unused invites.
func NewInviteToken(userID uint) (models.InviteToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return models.InviteToken{}, err
	}

	now := time.Now()
	if err := utils.DB.Model(&models.InviteToken{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Update("used_at", &now).Error; err != nil {
		log.Printf("Failed to invalidate previous invites for user %d: %v", userID, err)
	}

	invite := models.InviteToken{
		UserID:    userID,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: time.Now().Add(inviteValidityDuration),
	}
	if err := utils.DB.Create(&invite).Error; err != nil {
		return models.InviteToken{}, err
	}

	return invite, nil
}

// CompleteInvite sets the account password from a one-time invite token.
func CompleteInvite(c *gin.Context) {
	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	if input.Token == "" || input.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and new password are required."})
		return
	}

	var invite models.InviteToken
	if err := utils.DB.Where("token = ?", input.Token).First(&invite).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid invite link. Please contact support."})
		return
	}

	if invite.UsedAt != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This invite link has already been used."})
		return
	}

	if time.Now().After(invite.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This invite link has expired. Please contact support for a new one."})
		return
	}

	var user models.User
	if err := utils.DB.First(&user, invite.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found. Please contact support."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your password. Please try again."})
		return
	}

	user.Password = string(hashedPassword)
	user.Active = true
	if err := utils.DB.Save(&user).Error; err != nil {
		log.Printf("Failed to update user password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue updating your account. Please try again later."})
		return
	}

	now := time.Now()
	invite.UsedAt = &now
	if err := utils.DB.Save(&invite).Error; err != nil {
		log.Printf("Failed to mark invite %d used: %v", invite.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Your account is ready. You can now log in."})
}
