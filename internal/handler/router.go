package handler

import (
	"net/http"

	"docuvault/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"docuvault"}`))
	}).Methods("GET")

	// Initialize handlers
	documentHandler := NewDocumentHandler(
		container.DocumentService,
		container.Logger,
		container.Config.GetMaxFileSize(),
	)
	quotaAdminHandler := NewQuotaAdminHandler(
		container.QuotaService,
		container.Logger,
		container.Config.GetAdminAPISecret(),
	)

	// Auth middleware for protected routes
	authMiddleware := NewAuthMiddleware(container.AuthService, container.Logger)

	// Protected routes (require authentication)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware.Middleware)

	// Document routes (protected)
	protected.HandleFunc("/documents", documentHandler.GetDocuments).Methods("GET")
	protected.HandleFunc("/documents", documentHandler.UploadDocument).Methods("POST")
	protected.HandleFunc("/documents/{id}", documentHandler.GetDocument).Methods("GET")
	protected.HandleFunc("/documents/{id}", documentHandler.DeleteDocument).Methods("DELETE")
	protected.HandleFunc("/documents/{id}/versions", documentHandler.GetVersions).Methods("GET")
	protected.HandleFunc("/documents/{id}/versions", documentHandler.AddVersion).Methods("POST")

	// Quota administration routes (X-Admin-Secret)
	api.HandleFunc("/admin/quotas/backends", quotaAdminHandler.ListBackends).Methods("GET")
	api.HandleFunc("/admin/quotas", quotaAdminHandler.ListConfigs).Methods("GET")
	api.HandleFunc("/admin/quotas", quotaAdminHandler.CreateConfig).Methods("POST")
	api.HandleFunc("/admin/quotas/{id}/enabled", quotaAdminHandler.SetConfigEnabled).Methods("PUT")
	api.HandleFunc("/admin/quotas/{id}", quotaAdminHandler.DeleteConfig).Methods("DELETE")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Admin-Secret",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return c.Handler(router)
}
