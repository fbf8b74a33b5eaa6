package handler

import (
	"html/template"
	"net/http"
	"time"

	"TravelPlanner_WebProject/internal/middleware"
	"TravelPlanner_WebProject/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Route binds a method and path to a handler and the access it requires.
type Route struct {
	Method string
	Path   string
	Access middleware.Access
	Handle HandlerFunc
}

// Routes is the full route table.
func (h *Handler) Routes() []Route {
	swagger := ginSwagger.WrapHandler(swaggerFiles.Handler)

	return []Route{
		{http.MethodGet, "/", middleware.Authenticated, h.Index},
		{http.MethodPost, "/", middleware.Authenticated, h.PlanTrip},
		{http.MethodGet, "/about", middleware.Authenticated, h.About},
		{http.MethodGet, "/contact", middleware.Authenticated, h.Contact},
		{http.MethodGet, "/ws/plan", middleware.Authenticated, h.PlanSocket},

		{http.MethodGet, "/login", middleware.Public, h.LoginPage},
		{http.MethodPost, "/login", middleware.Public, h.Login},
		{http.MethodGet, "/logout", middleware.Public, h.Logout},
		{http.MethodGet, "/register", middleware.Public, h.RegisterPage},
		{http.MethodPost, "/register", middleware.Public, h.Register},
		{http.MethodGet, "/robots.txt", middleware.Public, h.Robots},
		{http.MethodGet, "/sitemap.xml", middleware.Public, h.Sitemap},
		{http.MethodGet, "/healthz", middleware.Public, h.Healthz},
		{http.MethodGet, "/metrics", middleware.Public, h.serveMetrics},
		{http.MethodGet, "/swagger/*any", middleware.Public, func(c *gin.Context, _ *session.Session) { swagger(c) }},
	}
}

func (h *Handler) serveMetrics(c *gin.Context, _ *session.Session) {
	if h.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// NewRouter assembles the gin engine: request logging, metrics, CORS, the
// session loader, panic recovery and then every route behind its Gate.
func NewRouter(h *Handler, templates *template.Template, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.SetHTMLTemplate(templates)

	router.Use(middleware.RequestLogger(h.logger))
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
	}
	if len(corsOrigins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = corsOrigins
		config.AllowMethods = []string{http.MethodGet, http.MethodPost}
		config.AllowHeaders = append(config.AllowHeaders, middleware.RequestIDHeader)
		config.AllowCredentials = true
		config.MaxAge = 12 * time.Hour
		router.Use(cors.New(config))
	}
	router.Use(session.Middleware(h.sessions), middleware.Recovery(h.logger))

	for _, rt := range h.Routes() {
		router.Handle(rt.Method, rt.Path, middleware.Gate(rt.Access), withSession(rt.Handle))
	}
	router.NoRoute(withSession(h.NotFound))
	router.NoMethod(withSession(h.MethodNotAllowed))

	return router
}
