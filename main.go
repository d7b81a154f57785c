// @title           Vendor Portal API
// @version         1.0
// @description     Vendor-facing portal - authentication, profile editing, RFQ inbox and quote submission.

// @contact.name   API Support

// @BasePath  /

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "vendorportal/docs"
	"vendorportal/handlers"
	"vendorportal/services"
	"vendorportal/storage"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:9000",
	}
	if base := os.Getenv("PORTAL_BASE_URL"); base != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, base)
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment as-is")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		log.Fatal("API_URL is required")
	}
	portalBase := os.Getenv("PORTAL_BASE_URL")
	if portalBase == "" {
		portalBase = "http://localhost:8080"
	}

	db := storage.InitDB()
	gormDB := storage.InitGormDB()

	client := services.NewClient(apiURL, &http.Client{Timeout: 30 * time.Second})
	env := &handlers.Env{
		API:           client,
		Store:         storage.NewSessionStore(db),
		Uploader:      services.NewUploader(client),
		Drafts:        handlers.NewDraftStore(),
		Gorm:          gormDB,
		PortalBaseURL: portalBase,
	}

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	// Public routes
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/signup", handlers.SignupHandler(env))
	r.POST("/login", handlers.LoginHandler(env))
	r.GET("/auth/google", handlers.GoogleAuthStartHandler(env))
	r.GET("/auth/google/success", handlers.OAuthSuccessHandler(env))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Everything under /portal requires a live session.
	portal := r.Group("/portal", handlers.ValidateSession(env))
	{
		portal.POST("/logout", handlers.LogoutHandler(env))
		portal.GET("/me", handlers.MeHandler(env))

		profile := portal.Group("/profile")
		{
			profile.GET("", handlers.GetProfileHandler(env))
			profile.PUT("", handlers.UpdateProfileScalarsHandler(env))
			profile.POST("/save", handlers.SaveProfileHandler(env))
			profile.GET("/qr", handlers.ProfileQRHandler(env))

			profile.POST("/contacts", handlers.AddContactHandler(env))
			profile.PUT("/contacts/:id", handlers.UpdateContactHandler(env))
			profile.DELETE("/contacts/:id", handlers.RemoveContactHandler(env))

			profile.POST("/addresses", handlers.AddAddressHandler(env))
			profile.PUT("/addresses/:id", handlers.UpdateAddressHandler(env))
			profile.DELETE("/addresses/:id", handlers.RemoveAddressHandler(env))

			profile.POST("/ratings", handlers.AddRatingHandler(env))
			profile.PUT("/ratings/:id", handlers.UpdateRatingHandler(env))
			profile.DELETE("/ratings/:id", handlers.RemoveRatingHandler(env))

			profile.POST("/catalogs", handlers.AddCatalogHandler(env))
			profile.PUT("/catalogs/:id", handlers.UpdateCatalogHandler(env))
			profile.DELETE("/catalogs/:id", handlers.RemoveCatalogHandler(env))
			profile.POST("/catalogs/:id/file", handlers.UploadCatalogFileHandler(env))
			profile.GET("/catalogs/:id/view", handlers.ViewCatalogHandler(env))

			profile.POST("/industries", handlers.AddIndustriesHandler(env))
			profile.DELETE("/industries/:id", handlers.RemoveIndustryHandler(env))

			profile.POST("/bank-accounts", handlers.AddBankAccountHandler(env))
			profile.PUT("/bank-accounts/:id", handlers.UpdateBankAccountHandler(env))
			profile.DELETE("/bank-accounts/:id", handlers.RemoveBankAccountHandler(env))

			profile.POST("/clientele", handlers.AddClientHandler(env))
			profile.PUT("/clientele/:id", handlers.UpdateClientHandler(env))
			profile.DELETE("/clientele/:id", handlers.RemoveClientHandler(env))

			profile.POST("/documents", handlers.AddDocumentHandler(env))
			profile.PUT("/documents/:id", handlers.UpdateDocumentHandler(env))
			profile.DELETE("/documents/:id", handlers.RemoveDocumentHandler(env))
			profile.POST("/documents/:id/file", handlers.UploadDocumentFileHandler(env))

			profile.POST("/brands", handlers.AddBrandHandler(env))
			profile.PUT("/brands/:id", handlers.UpdateBrandHandler(env))
			profile.DELETE("/brands/:id", handlers.RemoveBrandHandler(env))
			profile.POST("/brands/:id/categories", handlers.AddBrandCategoriesHandler(env))
			profile.DELETE("/brands/:id/categories/:catId", handlers.RemoveBrandCategoryHandler(env))

			profile.POST("/supplier-catalog/file", handlers.UploadSupplierCatalogHandler(env))
		}

		portal.GET("/files/view", handlers.ViewFileHandler(env))

		portal.GET("/rfqs", handlers.ListRfqsHandler(env))
		portal.GET("/rfqs/export", handlers.ExportRfqsHandler(env))
		portal.POST("/rfqs/:assignmentId/quote", handlers.SubmitQuoteHandler(env))
		portal.GET("/quotes", handlers.ListQuotesHandler(env))
		portal.GET("/quotes/:id/pdf", handlers.QuotePdfHandler(env))
	}

	// Hourly cleanup of expired portal sessions.
	cronRunner := cron.New()
	if _, err := cronRunner.AddFunc("@hourly", func() {
		if err := storage.CleanupExpiredSessions(db); err != nil {
			log.Println("[cron] session cleanup failed:", err)
		}
	}); err != nil {
		log.Println("[cron] failed to schedule session cleanup:", err)
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if _, err := strconv.Atoi(port); err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Println("Vendor portal listening on :" + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
