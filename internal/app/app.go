package app

import (
	"database/sql"
	"fmt"
	"log"

	"givestream/internal/config"
	"givestream/internal/drafts"
	"givestream/internal/handlers"
	"givestream/internal/payments"
	"givestream/internal/pdf"
	"givestream/internal/repositories"
	"givestream/internal/routes"
	"givestream/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "givestream/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to the database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close the database: %v", err)
		}
	}()

	// === Redis (draft cache) ===
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	donationRepo := repositories.NewDonationRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.App.JWTSecret)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	otpService := services.NewOTPService(otpRepo, userRepo, emailService)
	userService := services.NewUserService(userRepo, otpService, authService)
	resetService := services.NewPasswordResetService(userRepo, resetRepo, emailService, authService, cfg.App.BaseURL)

	var alertService services.AlertService
	if cfg.Telegram.Enabled {
		alertService = services.NewTelegramAlertService(cfg.Telegram.BotToken, cfg.Telegram.AlertChatID)
	}

	// Missing Stripe credentials disable the sync endpoint rather than
	// crashing the read-only surface.
	var syncService services.DonationSyncService
	provider, err := payments.NewStripeProvider(cfg.Stripe.SecretKey)
	if err != nil {
		log.Printf("[app] donation sync disabled: %v", err)
	} else {
		syncService = services.NewDonationSyncService(provider, donationRepo, alertService)
	}

	draftStore := drafts.NewStore(drafts.NewRedisKV(rdb))
	receipts := pdf.NewReceiptGenerator()

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	verifyHandler := handlers.NewVerifyHandler(otpService)
	passwordHandler := handlers.NewPasswordHandler(resetService)
	draftHandler := handlers.NewDraftHandler(draftStore)
	donationHandler := handlers.NewDonationHandler(donationRepo, syncService, receipts)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		[]byte(cfg.App.JWTSecret),
		authHandler,
		verifyHandler,
		passwordHandler,
		draftHandler,
		donationHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start the server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Device-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
