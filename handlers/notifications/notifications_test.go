package notifications

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"estate-sales-portal-server/handlers/auth"
	"estate-sales-portal-server/migrations"
	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateAll(db))
	utils.DB = db
	utils.JwtSecret = []byte("test-signing-secret")
	return db
}

func newRouter() *gin.Engine {
	r := gin.New()
	group := r.Group("/")
	group.Use(auth.AuthMiddleware(), auth.RequireActor(auth.ActorClient, auth.ActorAdmin))
	RegisterNotificationsRoutes(group)
	return r
}

func createClient(t *testing.T, db *gorm.DB, email string) (models.User, string) {
	t.Helper()
	user := models.User{FullName: "Test User", Email: email, Password: "x", Role: models.RoleClient, Active: true}
	require.NoError(t, db.Create(&user).Error)
	token, err := utils.GenerateAccessToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func httpDo(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetNotificationsOnlyOwn(t *testing.T) {
	db := setupTest(t)
	user, token := createClient(t, db, "amina@example.com")
	other, _ := createClient(t, db, "other@example.com")

	require.NoError(t, db.Create(&models.Notification{UserID: user.ID, Title: "Mine", Message: "m", Kind: models.NotificationInfo}).Error)
	require.NoError(t, db.Create(&models.Notification{UserID: other.ID, Title: "Theirs", Message: "m", Kind: models.NotificationInfo}).Error)

	w := httpDo(newRouter(), "GET", "/notifications", token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Notifications []models.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Notifications, 1)
	require.Equal(t, "Mine", resp.Notifications[0].Title)
}

func TestMarkReadOnlyByRecipient(t *testing.T) {
	db := setupTest(t)
	user, token := createClient(t, db, "amina@example.com")
	_, otherToken := createClient(t, db, "other@example.com")

	n := models.Notification{UserID: user.ID, Title: "Mine", Message: "m", Kind: models.NotificationInfo}
	require.NoError(t, db.Create(&n).Error)
	path := fmt.Sprintf("/notifications/%d/read", n.ID)
	r := newRouter()

	w := httpDo(r, "PUT", path, otherToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = httpDo(r, "PUT", path, token)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Notification
	require.NoError(t, db.First(&updated, n.ID).Error)
	require.True(t, updated.Read)
}
