package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/chihoangvnn/sss-sub001/internal/config"
	"github.com/chihoangvnn/sss-sub001/internal/handler"
	"github.com/chihoangvnn/sss-sub001/internal/infra"
	"github.com/chihoangvnn/sss-sub001/internal/middleware"
	"github.com/chihoangvnn/sss-sub001/internal/repository"
	"github.com/chihoangvnn/sss-sub001/internal/service"
	"github.com/chihoangvnn/sss-sub001/internal/tabs"
	"github.com/chihoangvnn/sss-sub001/internal/worker"
)

// Deps are the shared singletons main constructs before wiring routes.
// The tab manager in particular is an explicitly owned store object — it is
// built once here (or in tests) and injected, never reached through a global.
type Deps struct {
	Manager    *tabs.Manager
	Catalog    service.CatalogService
	Dispatcher *worker.Dispatcher
	OrderCB    *infra.CircuitBreaker
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	customerSvc := service.NewCustomerService(customerRepo)
	checkoutSvc := service.NewCheckoutService(deps.Manager, orderRepo, deps.OrderCB, deps.Dispatcher, cfg.AutoPrintDefault)

	// ── Handlers ─────────────────────────────────────────────────────────────
	catalogH := handler.NewCatalogHandler(deps.Catalog)
	customersH := handler.NewCustomersHandler(customerSvc)
	tabsH := handler.NewTabsHandler(deps.Manager, deps.Catalog, customerSvc, checkoutSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, deps.OrderCB))

	v1 := r.Group("/v1")
	{
		v1.GET("/products", catalogH.List)
		v1.GET("/products/barcode/:code", catalogH.GetByBarcode)

		v1.GET("/customers", customersH.Search)

		v1.GET("/shortcuts", tabsH.Shortcuts)

		t := v1.Group("/tabs")
		{
			t.GET("", tabsH.List)
			t.GET("/active", tabsH.Active)
			t.POST("/keypress", tabsH.Keypress)
			t.POST("/clear-all", tabsH.ClearAll)

			t.POST("/:id/activate", tabsH.Activate)
			t.POST("/:id/lines", tabsH.AddLine)
			t.PATCH("/:id/lines/:productId", tabsH.SetLineQuantity)
			t.DELETE("/:id/lines/:productId", tabsH.RemoveLine)
			t.POST("/:id/customer", tabsH.SetCustomer)
			t.POST("/:id/duplicate", tabsH.Duplicate)
			t.POST("/:id/checkout", tabsH.Checkout)
			t.POST("/:id/checkout/complete", tabsH.CompleteCheckout)
			t.DELETE("/:id", tabsH.Clear)
		}
	}

	return r
}
