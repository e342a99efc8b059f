package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"estate-sales-portal-server/migrations"
	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateAll(db))
	utils.DB = db
	utils.JwtSecret = []byte("test-signing-secret")
	return db
}

func createUser(t *testing.T, email, password, role string, active bool) models.User {
	t.Helper()
	hashed := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		require.NoError(t, err)
		hashed = string(h)
	}
	user := models.User{
		FullName: "Test User",
		Email:    email,
		Password: hashed,
		Role:     role,
		Active:   active,
	}
	require.NoError(t, utils.DB.Create(&user).Error)
	return user
}

func httpDo(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginRouter() *gin.Engine {
	r := gin.New()
	r.POST("/login", Login)
	r.POST("/invite/complete", CompleteInvite)
	return r
}

func TestLoginSuccess(t *testing.T) {
	setupTestDB(t)
	createUser(t, "client@example.com", "secret123", models.RoleClient, true)

	w := httpDo(loginRouter(), "POST", "/login", "", gin.H{"email": "client@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, models.RoleClient, resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestDB(t)
	createUser(t, "client@example.com", "secret123", models.RoleClient, true)

	w := httpDo(loginRouter(), "POST", "/login", "", gin.H{"email": "client@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSuspendedAccount(t *testing.T) {
	setupTestDB(t)
	createUser(t, "client@example.com", "secret123", models.RoleClient, false)

	w := httpDo(loginRouter(), "POST", "/login", "", gin.H{"email": "client@example.com", "password": "secret123"})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginBeforeInviteCompleted(t *testing.T) {
	setupTestDB(t)
	createUser(t, "client@example.com", "", models.RoleClient, true)

	w := httpDo(loginRouter(), "POST", "/login", "", gin.H{"email": "client@example.com", "password": "anything"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func gatedRouter() *gin.Engine {
	r := gin.New()
	client := r.Group("/")
	client.Use(AuthMiddleware(), RequireActor(ActorClient, ActorAdmin))
	client.GET("/me", Me)

	admin := r.Group("/admin")
	admin.Use(AuthMiddleware(), RequireActor(ActorAdmin))
	admin.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestGateAnonymousGets401(t *testing.T) {
	setupTestDB(t)
	r := gatedRouter()

	w := httpDo(r, "GET", "/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httpDo(r, "GET", "/admin/ping", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateClientCannotReachAdmin(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "client@example.com", "secret123", models.RoleClient, true)
	token, err := utils.GenerateAccessToken(user.ID)
	require.NoError(t, err)

	r := gatedRouter()
	w := httpDo(r, "GET", "/admin/ping", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = httpDo(r, "GET", "/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGateAdminReachesBoth(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "admin@example.com", "secret123", models.RoleAdmin, true)
	token, err := utils.GenerateAccessToken(user.ID)
	require.NoError(t, err)

	r := gatedRouter()
	w := httpDo(r, "GET", "/admin/ping", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "GET", "/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGateSuspendedUserDenied(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "client@example.com", "secret123", models.RoleClient, true)
	token, err := utils.GenerateAccessToken(user.ID)
	require.NoError(t, err)
	require.NoError(t, utils.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("active", false).Error)

	w := httpDo(gatedRouter(), "GET", "/me", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCompleteInviteSetsPassword(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "client@example.com", "", models.RoleClient, true)

	invite, err := NewInviteToken(user.ID)
	require.NoError(t, err)

	r := loginRouter()
	w := httpDo(r, "POST", "/invite/complete", "", gin.H{"token": invite.Token, "new_password": "newpass456"})
	require.Equal(t, http.StatusOK, w.Code)

	// The invite is single use
	w = httpDo(r, "POST", "/invite/complete", "", gin.H{"token": invite.Token, "new_password": "again"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// And the password now works
	w = httpDo(r, "POST", "/login", "", gin.H{"email": "client@example.com", "password": "newpass456"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCompleteInviteExpired(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "client@example.com", "", models.RoleClient, true)

	invite, err := NewInviteToken(user.ID)
	require.NoError(t, err)
	require.NoError(t, utils.DB.Model(&models.InviteToken{}).Where("id = ?", invite.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	w := httpDo(loginRouter(), "POST", "/invite/complete", "", gin.H{"token": invite.Token, "new_password": "newpass456"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNewInviteTokenInvalidatesPrevious(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "client@example.com", "", models.RoleClient, true)

	first, err := NewInviteToken(user.ID)
	require.NoError(t, err)
	_, err = NewInviteToken(user.ID)
	require.NoError(t, err)

	w := httpDo(loginRouter(), "POST", "/invite/complete", "", gin.H{"token": first.Token, "new_password": "newpass456"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
