package handler

import (
	"net/http"

	"parking-reservation/internal/domain/user"
	"parking-reservation/internal/handler/api"
	"parking-reservation/internal/handler/middleware"
	"parking-reservation/internal/pkg/config"
	"parking-reservation/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine         *gin.Engine
	Config         config.Config
	Logger         *middleware.Logger
	Metrics        *metrics.Metrics
	AuthHandler    *api.AuthHandler
	SlotHandler    *api.SlotHandler
	BookingHandler *api.BookingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config, p.Logger, p.Metrics)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	if cfg.Metrics.Enabled {
		engine.Use(middleware.Metrics(m))
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)

	if p.Config.Metrics.Enabled {
		engine.GET(p.Config.Metrics.Path, gin.WrapH(p.Metrics.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := []gin.HandlerFunc{p.AuthMiddleware.RequireRoleAtLeast(user.RoleAdmin)}

	// Paths keep the trailing slash the existing frontend uses; gin redirects
	// the slash-less form.
	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/login/", Handler: p.AuthHandler.Login},
		})

		authRequired := apiGroup.Group("")
		authRequired.Use(p.AuthMiddleware.RequireAuth())
		addRoutes(authRequired, []route{
			{Method: http.MethodGet, Path: "/me/", Handler: p.AuthHandler.Me},
			{Method: http.MethodPost, Path: "/users/", Handler: p.AuthHandler.CreateUser, Mw: adminOnly},

			{Method: http.MethodGet, Path: "/parking-slots/", Handler: p.SlotHandler.List},
			{Method: http.MethodPost, Path: "/parking-slots/", Handler: p.SlotHandler.Create, Mw: adminOnly},
			{Method: http.MethodGet, Path: "/parking-slots/available/", Handler: p.SlotHandler.Available},
			{Method: http.MethodGet, Path: "/parking-slots/:id/", Handler: p.SlotHandler.Get},
			{Method: http.MethodPatch, Path: "/parking-slots/:id/", Handler: p.SlotHandler.Update, Mw: adminOnly},

			{Method: http.MethodGet, Path: "/bookings/", Handler: p.BookingHandler.List},
			{Method: http.MethodPost, Path: "/bookings/", Handler: p.BookingHandler.Create},
			{Method: http.MethodGet, Path: "/bookings/:id/", Handler: p.BookingHandler.Get},
			{Method: http.MethodPatch, Path: "/bookings/:id/", Handler: p.BookingHandler.Update},
			{Method: http.MethodDelete, Path: "/bookings/:id/", Handler: p.BookingHandler.Cancel},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
