package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/auth"
	"stockbook/internal/domain/catalogs/customer"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/catalogs/supplier"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/domain/documents/sale"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/posting"
	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/http/v1/handlers"
	"stockbook/internal/infrastructure/http/v1/middleware"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/catalog_repo"
	"stockbook/internal/infrastructure/storage/postgres/document_repo"
	"stockbook/internal/infrastructure/storage/postgres/register_repo"
	"stockbook/internal/infrastructure/storage/postgres/report_repo"
	"stockbook/pkg/logger"
	"stockbook/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (used by health checks)
	Pool *postgres.Pool

	// TxManager threads transactions through request contexts
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for code and document number generation
	Numerator numerator.Generator

	// Audit records committed documents and catalog changes
	Audit *postgres.AuditService

	// Version reported by /health/info
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	apiV1 := router.Group("/api/v1")
	{
		registerAuthRoutes(apiV1, cfg)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerStockRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := product.NewService(repo, cfg.TxManager, cfg.Numerator)

		if cfg.Audit != nil {
			service.Hooks().OnAfterCreate(func(ctx context.Context, item *product.Product) error {
				return cfg.Audit.LogChange(ctx, "cat_product", item.ID, postgres.AuditActionCreate, item)
			})
		}

		handler := handlers.NewProductHandler(baseHandler, service)

		group := catalogs.Group("/products")
		group.GET("/low-stock", handler.LowStock)
		group.GET("/by-sku/:sku", handler.BySKU)
		RegisterCatalogRoutes(group, handler)
	}

	// --- SUPPLIERS ---
	{
		repo := catalog_repo.NewSupplierRepo(cfg.TxManager)
		service := supplier.NewService(repo, cfg.TxManager, cfg.Numerator)

		if cfg.Audit != nil {
			service.Hooks().OnAfterCreate(func(ctx context.Context, item *supplier.Supplier) error {
				return cfg.Audit.LogChange(ctx, "cat_supplier", item.ID, postgres.AuditActionCreate, item)
			})
		}

		handler := handlers.NewSupplierHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/suppliers"), handler)
	}

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.TxManager, cfg.Numerator)

		if cfg.Audit != nil {
			service.Hooks().OnAfterCreate(func(ctx context.Context, item *customer.Customer) error {
				return cfg.Audit.LogChange(ctx, "cat_customer", item.ID, postgres.AuditActionCreate, item)
			})
		}

		handler := handlers.NewCustomerHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/customers"), handler)
	}
}

// registerDocumentRoutes registers document endpoints. Both document
// types share one posting engine; only the direction differs.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docsGroup := rg.Group("/documents")
	baseHandler := handlers.NewBaseHandler()

	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	ledgerService := ledger.NewService(stockRepo)
	postingEngine := posting.NewEngine(cfg.TxManager, ledgerService)

	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	productService := product.NewService(productRepo, cfg.TxManager, cfg.Numerator)

	// --- PURCHASES ---
	{
		repo := document_repo.NewPurchaseRepo(cfg.TxManager)
		service := purchase.NewService(repo, postingEngine, cfg.Numerator)

		if cfg.Audit != nil {
			service.Hooks().OnAfterCreate(func(ctx context.Context, doc *purchase.Purchase) error {
				return cfg.Audit.LogChange(ctx, purchase.DocumentType, doc.ID, postgres.AuditActionCommit, doc)
			})
		}

		handler := handlers.NewPurchaseHandler(baseHandler, service, productService)
		RegisterDocumentRoutes(docsGroup.Group("/purchases"), handler)
	}

	// --- SALES ---
	{
		repo := document_repo.NewSaleRepo(cfg.TxManager)
		service := sale.NewService(repo, postingEngine, cfg.Numerator)

		if cfg.Audit != nil {
			service.Hooks().OnAfterCreate(func(ctx context.Context, doc *sale.Sale) error {
				return cfg.Audit.LogChange(ctx, sale.DocumentType, doc.ID, postgres.AuditActionCommit, doc)
			})
		}

		handler := handlers.NewSaleHandler(baseHandler, service, productService)
		RegisterDocumentRoutes(docsGroup.Group("/sales"), handler)
	}
}

// registerStockRoutes registers the movement journal endpoint.
func registerStockRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	ledgerService := ledger.NewService(stockRepo)
	handler := handlers.NewStockHandler(baseHandler, ledgerService)

	stock := rg.Group("/stock")
	stock.GET("/movements", handler.Movements)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(reportRepo)
	handler := handlers.NewReportsHandler(baseHandler, reportService)

	reportsGroup := rg.Group("/reports")
	reportsGroup.GET("/dashboard", handler.Dashboard)
	reportsGroup.GET("/low-stock", handler.LowStock)
	reportsGroup.GET("/stock-turnover", handler.Turnover)
	reportsGroup.GET("/document-totals", handler.DocumentTotals)
}
