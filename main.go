package main

import (
	"log"
	"os"
	"strings"
	"time"

	"estate-sales-portal-server/handlers/applications"
	"estate-sales-portal-server/handlers/auth"
	"estate-sales-portal-server/handlers/documents"
	"estate-sales-portal-server/handlers/notifications"
	"estate-sales-portal-server/handlers/payments"
	"estate-sales-portal-server/handlers/properties"
	"estate-sales-portal-server/handlers/receipts"
	"estate-sales-portal-server/handlers/reports"
	"estate-sales-portal-server/migrations"
	"estate-sales-portal-server/seed"
	"estate-sales-portal-server/utils"
	"estate-sales-portal-server/workflow"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	r := gin.Default()

	allowOrigins := []string{"http://localhost:5173"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowOrigins = strings.Split(origins, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.RequireJwtSecret()
	utils.ConnectDatabase()

	if err := migrations.MigrateAll(utils.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed initial data
	if err := seed.SeedAdmin(); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if err := seed.SeedCatalog(); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	workflow.StartOutboxWorker(utils.DB, time.Minute)

	// Public routes
	r.POST("/login", auth.Login)
	r.POST("/invite/complete", auth.CompleteInvite)
	r.GET("/estates", properties.GetEstates)
	r.GET("/estates/:id", properties.GetEstate)
	r.GET("/properties", properties.GetProperties)
	r.GET("/properties/:id", properties.GetProperty)
	r.POST("/applications", auth.OptionalAuth(), applications.Submit)

	// Client routes
	client := r.Group("/")
	client.Use(auth.AuthMiddleware(), auth.RequireActor(auth.ActorClient, auth.ActorAdmin))
	{
		client.GET("/me", auth.Me)
		client.GET("/applications", applications.ListMine)
		client.GET("/applications/:id", applications.Get)
		client.POST("/applications/:id/select-house", applications.SelectHouse)
		client.GET("/applications/:id/progress", payments.Progress)
		client.GET("/applications/:id/documents", documents.ListForApplication)
		client.GET("/documents/:name", documents.Download)
		client.POST("/payments", payments.Record)
		client.GET("/payments", payments.ListMine)
		client.POST("/receipts", receipts.Create)
		client.GET("/receipts", receipts.ListMine)
		notifications.RegisterNotificationsRoutes(client)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(auth.AuthMiddleware(), auth.RequireActor(auth.ActorAdmin))
	{
		admin.GET("/applications", applications.List)
		admin.POST("/applications/:id/approve", applications.Approve)
		admin.POST("/applications/:id/reject", applications.Reject)
		admin.GET("/payments", payments.List)
		admin.POST("/payments/:id/verify", payments.Verify)
		admin.POST("/payments/:id/reject", payments.Reject)
		admin.GET("/receipts", receipts.List)
		admin.GET("/generated-documents", documents.List)
		admin.GET("/reports", reports.Summary)
		admin.POST("/estates", properties.CreateEstate)
		admin.PUT("/estates/:id", properties.UpdateEstate)
		admin.POST("/streets", properties.CreateStreet)
		admin.POST("/properties", properties.CreateProperty)
		admin.PUT("/properties/:id", properties.UpdateProperty)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
