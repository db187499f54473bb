package handlers

import (
	"invoice_idor/internal/logger"
	"invoice_idor/internal/service"

	"github.com/gin-gonic/gin"

	_ "invoice_idor/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. log may be nil.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.SetHTMLTemplate(pageTemplates)
	router.StaticFS("/static", staticFiles())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	// Everything below runs with a session, created on first visit.
	site := router.Group("/", h.sessionMiddleware)
	h.registerPageRoutes(site)
	h.registerProtectedRoutes(site)

	return router
}

func (h *Handler) registerPageRoutes(r *gin.RouterGroup) {
	r.GET("/", h.index)
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)
}

func (h *Handler) registerProtectedRoutes(r *gin.RouterGroup) {
	protected := r.Group("/", h.requireAuth)
	{
		protected.GET("/my-invoices", h.myInvoices)
		// No ownership check on purpose: any logged-in user can read any invoice.
		protected.GET("/invoice/:id", h.invoiceDetail)
	}

	api := protected.Group("/api")
	{
		api.GET("/max-invoice", h.maxInvoice)
		api.GET("/access-log", h.getAccessLog)
	}

	protected.GET("/ws/access-log", h.wsAccessLog)
}
