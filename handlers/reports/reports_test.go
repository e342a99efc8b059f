package reports

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"estate-sales-portal-server/migrations"
	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSummaryAggregates(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateAll(db))
	utils.DB = db

	estate := models.Estate{Name: "Crescent Gardens"}
	require.NoError(t, db.Create(&estate).Error)
	for _, status := range []string{models.PropertyAvailable, models.PropertyAvailable, models.PropertySold} {
		require.NoError(t, db.Create(&models.Property{EstateID: estate.ID, Title: "Unit", Price: 1000000, Status: status}).Error)
	}

	var property models.Property
	require.NoError(t, db.First(&property).Error)
	for i, status := range []string{models.ApplicationPending, models.ApplicationApproved} {
		require.NoError(t, db.Create(&models.Application{
			Reference: fmt.Sprintf("ref-%d", i), FullName: "A", Email: "a@example.com",
			PropertyID: property.ID, EstateID: estate.ID, Units: 1,
			PaymentPlan: models.PlanOutright, TotalAmount: 1000000,
			TermsAccepted: true, Status: status,
		}).Error)
	}

	var application models.Application
	require.NoError(t, db.First(&application).Error)
	require.NoError(t, db.Create(&models.Payment{ApplicationID: application.ID, Amount: 300000, Status: models.PaymentCompleted}).Error)
	require.NoError(t, db.Create(&models.Payment{ApplicationID: application.ID, Amount: 200000, Status: models.PaymentCompleted}).Error)
	require.NoError(t, db.Create(&models.Payment{ApplicationID: application.ID, Amount: 999999, Status: models.PaymentPending}).Error)

	r := gin.New()
	r.GET("/admin/reports/summary", Summary)
	req := httptest.NewRequest("GET", "/admin/reports/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ApplicationsByStatus []statusCount `json:"applications_by_status"`
		PropertiesByStatus   []statusCount `json:"properties_by_status"`
		VerifiedPayments     struct {
			Count int64   `json:"count"`
			Total float64 `json:"total"`
		} `json:"verified_payments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	counts := map[string]int64{}
	for _, c := range resp.PropertiesByStatus {
		counts[c.Status] = c.Count
	}
	require.Equal(t, int64(2), counts[models.PropertyAvailable])
	require.Equal(t, int64(1), counts[models.PropertySold])

	counts = map[string]int64{}
	for _, c := range resp.ApplicationsByStatus {
		counts[c.Status] = c.Count
	}
	require.Equal(t, int64(1), counts[models.ApplicationPending])
	require.Equal(t, int64(1), counts[models.ApplicationApproved])

	require.Equal(t, int64(2), resp.VerifiedPayments.Count)
	require.Equal(t, 500000.0, resp.VerifiedPayments.Total)
}
