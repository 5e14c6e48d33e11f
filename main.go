package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"clipaja/internal/database"
	"clipaja/internal/handlers"
	"clipaja/internal/middleware"
	"clipaja/internal/services"
	"clipaja/internal/worker"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Gateway + external clients
	midtransService := services.NewMidtransService()
	sessionClient := services.NewSessionClient()
	tiktokService := services.NewTikTokService()

	storageService, err := services.NewStorageService()
	if err != nil {
		log.Printf("S3 storage unavailable, thumbnail uploads disabled: %v", err)
		storageService = nil
	}

	// Business services
	contestService := services.NewContestService(db, midtransService)
	reconcileService := services.NewReconcileService(db, midtransService)
	postService := services.NewPostService(db, tiktokService)
	payoutService := services.NewPayoutService(db)

	// Handlers
	contestHandler := handlers.NewContestHandler(contestService, storageService)
	paymentHandler := handlers.NewPaymentHandler(reconcileService, payoutService, contestService)
	postHandler := handlers.NewPostHandler(postService)
	payoutHandler := handlers.NewPayoutHandler(payoutService)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to Clip Aja contest service",
		})
	})

	// Webhook endpoints are unauthenticated; the payload signature is checked
	// inside the reconcile service.
	r.POST("/api/webhook/midtrans", paymentHandler.Webhook)
	r.GET("/api/webhook/midtrans", paymentHandler.WebhookPing)

	// Contest browsing is public; a session, when present, enables the
	// owner-scoped filters.
	public := r.Group("/api", middleware.SessionOptional(sessionClient))
	{
		public.GET("/contests", contestHandler.List)
		public.GET("/contests/:id", contestHandler.Get)
	}

	auth := r.Group("/api", middleware.SessionRequired(sessionClient))
	{
		auth.POST("/contests", contestHandler.Create)
		auth.PUT("/contests/:id", contestHandler.Update)
		auth.DELETE("/contests/:id", contestHandler.Delete)
		auth.POST("/contests/:id/actions", contestHandler.Action)
		auth.POST("/uploads/thumbnail", contestHandler.UploadThumbnail)

		auth.POST("/payments/checkout", paymentHandler.Checkout)

		auth.POST("/posts", postHandler.Submit)
		auth.GET("/posts", postHandler.ListMine)
		auth.GET("/posts/review", postHandler.ListForReview)
		auth.PATCH("/posts/review", postHandler.Review)

		auth.GET("/payment-methods", paymentHandler.ListPaymentMethods)
		auth.POST("/payment-methods", paymentHandler.SavePaymentMethod)

		auth.POST("/payouts", payoutHandler.Claim)
		auth.GET("/payouts", payoutHandler.ListMine)
	}

	// Redis/Asynq client for the view refresh scheduler
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	scheduler := worker.NewScheduler(db, asynqClient)
	scheduler.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
