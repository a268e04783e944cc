package config

import (
	"docuvault/internal/domain"
	"docuvault/internal/repository"
	"docuvault/internal/service"
	"docuvault/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient

	DocumentRepository domain.DocumentRepository
	EventRepository    domain.DocumentEventRepository
	UserRepository     domain.UserRepository
	QuotaRepository    domain.QuotaConfigRepository

	AuthService     domain.AuthService
	QuotaService    *service.QuotaService
	DocumentService *service.DocumentService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize Supabase client
	supabaseClient := repository.NewSupabaseClient(config, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		appLogger.Warn("Supabase client not initialized", "error", err)
	}

	// Initialize repositories
	documentRepo := repository.NewSupabaseDocumentRepository(supabaseClient, appLogger)
	eventRepo := repository.NewSupabaseEventRepository(supabaseClient, appLogger)
	userRepo := repository.NewSupabaseUserRepository(supabaseClient, appLogger)
	quotaRepo := repository.NewSupabaseQuotaRepository(supabaseClient, appLogger)

	// Initialize services
	authService := service.NewAuthService(supabaseClient, userRepo, appLogger)
	quotaService := service.NewQuotaService(quotaRepo, eventRepo, appLogger)
	documentService := service.NewDocumentService(documentRepo, eventRepo, quotaService, appLogger)

	return &Container{
		Config:             config,
		Logger:             appLogger,
		SupabaseClient:     supabaseClient,
		DocumentRepository: documentRepo,
		EventRepository:    eventRepo,
		UserRepository:     userRepo,
		QuotaRepository:    quotaRepo,
		AuthService:        authService,
		QuotaService:       quotaService,
		DocumentService:    documentService,
	}
}
