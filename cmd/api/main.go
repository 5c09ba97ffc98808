package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"kbtassist/internal/config"
	"kbtassist/internal/database"
	"kbtassist/internal/middleware"
	"kbtassist/internal/modules/auth"
	"kbtassist/internal/modules/billing"
	"kbtassist/internal/modules/contractor"
	"kbtassist/internal/modules/document"
	"kbtassist/internal/modules/maintenance"
	"kbtassist/internal/modules/messaging"
	"kbtassist/internal/modules/notice"
	"kbtassist/internal/modules/property"
	"kbtassist/internal/pkg/blob"
	"kbtassist/internal/pkg/checkout"
	jwtsvc "kbtassist/internal/pkg/jwt"
	"kbtassist/internal/pkg/mailer"
	"kbtassist/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewRentPaymentRepository(db)
	sessionRepo := repository.NewCheckoutSessionRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	contractorRepo := repository.NewContractorRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	mail := mailer.NewDevConsoleMailer(cfg.MailEnabled)
	store := blob.NewLocalStore(cfg.UploadsDir, cfg.StaticBase)
	provider := checkout.NewStripeProvider()
	hub := messaging.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	propertyService := property.NewService(propertyRepo, userRepo, inventoryRepo)
	propertyHandler := property.NewHandler(propertyService)

	notifier := maintenance.NewMailNotifier(mail, userRepo, propertyRepo)
	maintenanceService := maintenance.NewService(jobRepo, propertyRepo, userRepo, notifier)
	maintenanceHandler := maintenance.NewHandler(maintenanceService)

	billingService := billing.NewService(
		invoiceRepo, paymentRepo, sessionRepo,
		propertyRepo, userRepo, provider, mail, cfg.AppBaseURL,
	)
	billingHandler := billing.NewHandler(billingService)

	noticeService := notice.NewService(noticeRepo, propertyRepo, userRepo, mail)
	noticeHandler := notice.NewHandler(noticeService)

	contractorService := contractor.NewService(contractorRepo, userRepo, jobRepo, mail)
	contractorHandler := contractor.NewHandler(contractorService)

	documentService := document.NewService(documentRepo, propertyRepo, store)
	documentHandler := document.NewHandler(documentService)

	messagingService := messaging.NewService(messageRepo, userRepo, hub)
	messagingHandler := messaging.NewHandler(messagingService, hub)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	r.Static(cfg.StaticBase, store.BaseDir())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterRoutes(protected)
			propertyHandler.RegisterRoutes(protected)
			maintenanceHandler.RegisterRoutes(protected)
			billingHandler.RegisterRoutes(protected)
			noticeHandler.RegisterRoutes(protected)
			contractorHandler.RegisterRoutes(protected)
			documentHandler.RegisterRoutes(protected)
			messagingHandler.RegisterRoutes(protected)
		}
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
