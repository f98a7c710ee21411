package app

import (
	"errors"
	"fmt"

	"sakanly_backend/internal/cache"
	"sakanly_backend/internal/config"
	"sakanly_backend/internal/email"
	"sakanly_backend/internal/handlers"
	"sakanly_backend/internal/llm"
	"sakanly_backend/internal/logger"
	"sakanly_backend/internal/middleware"
	"sakanly_backend/internal/models"
	"sakanly_backend/internal/repositories"
	"sakanly_backend/internal/routes"
	"sakanly_backend/internal/services"
	"sakanly_backend/internal/storage"
	"sakanly_backend/internal/validator"
	"sakanly_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	reconciler := workers.NewFavoritesReconciler(gormDB, "")
	if err := reconciler.Start(); err != nil {
		logger.Fatal("Failed to start favorites reconciler", "error", err)
	}
	defer reconciler.Stop()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// Migrate keeps the schema in sync with the models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyFavorite{},
		&models.WishlistItem{},
		&models.Testimonial{},
		&models.Agency{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, storageInstance)
	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	mailer := buildEmailProvider(cfg)

	var assistant llm.Client
	if cfg.OpenAI.APIKey != "" {
		assistant = llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		logger.Warn("OPENAI_API_KEY not set, chat runs against a stub assistant")
		assistant = &StubAssistant{}
	}

	listingCache := cache.New(cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if listingCache == nil {
		logger.Info("Redis address not configured, listing cache disabled")
	}

	propertyRepo := repositories.NewPropertyRepository()
	userRepo := repositories.NewUserRepository()
	testimonialRepo := repositories.NewTestimonialRepository()
	agencyRepo := repositories.NewAgencyRepository()

	return &services.ServiceContainer{
		PropertyService:    services.NewPropertyService(propertyRepo, storageInstance, mailer, listingCache, cfg.ClientURL),
		FavoriteService:    services.NewFavoriteService(propertyRepo, userRepo),
		TestimonialService: services.NewTestimonialService(testimonialRepo),
		ChatService:        services.NewChatService(propertyRepo, agencyRepo, assistant),
	}
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	emailCfg := email.Config{
		SMTPHost:  cfg.Email.SMTPHost,
		SMTPPort:  cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}
	if err := emailCfg.Validate(); err != nil {
		logger.Warn("Email not configured, moderation notifications disabled", "reason", err)
		return &NoopEmailProvider{}
	}

	provider, err := email.NewSMTPProvider(emailCfg)
	if err != nil {
		logger.Warn("Failed to build SMTP provider, moderation notifications disabled", "error", err)
		return &NoopEmailProvider{}
	}
	return provider
}

func initializeHandlers(container *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		PropertyHandler:    handlers.NewPropertyHandler(baseHandler, container.PropertyService, container.FavoriteService, storageInstance),
		TestimonialHandler: handlers.NewTestimonialHandler(baseHandler, container.TestimonialService),
		ChatHandler:        handlers.NewChatHandler(baseHandler, container.ChatService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin guarantees one admin account exists for the moderation
// surface. Login itself is handled by the identity frontend; the backend only
// parses its tokens.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var admin models.User
	result := db.Where("email = ?", adminEmail).First(&admin)
	if result.Error == nil {
		logger.Info("Admin user already exists, skipping creation", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found, creating first admin", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		UserName:     "admin",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
