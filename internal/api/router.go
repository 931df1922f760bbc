package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL and CORS max age

	"news_portal/internal/domain"     // Roles
	"news_portal/internal/middleware" // Gates and infrastructure middleware

	"github.com/gin-contrib/cors"  // CORS allow-list
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// TokenCodec issues and verifies identity tokens
type TokenCodec interface {
	TokenIssuer
	middleware.TokenVerifier
}

// RouterConfig carries the collaborators the HTTP surface needs
type RouterConfig struct {
	DB             middleware.DBProvider    // Lazily connected database
	Tokens         TokenCodec               // Token codec
	Redis          *redis.Client            // Public cache; nil disables caching
	CacheTTL       time.Duration            // Public cache lifetime
	CORSOrigins    []string                 // Allowed origins; empty disables CORS handling
	LoginLimiter   *middleware.LoginLimiter // Login throttle; nil disables it
	TrustedProxies []string                 // Proxies trusted for client IPs
}

// NewRouter builds the gin engine with every route registered
func NewRouter(rc RouterConfig) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.MetricsMiddleware())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(rc.TrustedProxies); err != nil {
		return nil, err
	}
	if len(rc.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  rc.CORSOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}
	ttl := rc.CacheTTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "news portal api") })
	r.GET("/metrics", middleware.MetricsHandler())

	dbm := middleware.DatabaseMiddleware(rc.DB)
	auth := middleware.JWTAuthMiddleware(rc.Tokens)

	// Login is throttled before the database is touched
	loginChain := []gin.HandlerFunc{}
	if rc.LoginLimiter != nil {
		loginChain = append(loginChain, rc.LoginLimiter.Middleware())
	}
	r.POST("/api/login", append(loginChain, dbm, LoginHandler(rc.Tokens))...)

	// Public routes
	public := r.Group("/api", dbm)
	public.GET("/news-statistics", NewsStatisticsHandler())
	public.GET("/latest/news", LatestNewsHandler(rc.Redis, ttl))
	public.GET("/popular/news", PopularNewsHandler(rc.Redis, ttl))
	public.GET("/recent/news", RecentNewsHandler(rc.Redis, ttl))
	public.GET("/all/news", AllNewsHandler(rc.Redis, ttl))
	public.GET("/category/all", CategoriesHandler(rc.Redis, ttl))
	public.GET("/category/news/:category", CategoryNewsHandler())
	public.GET("/images/news", ImagesNewsHandler(rc.Redis, ttl))
	public.GET("/search/news", SearchNewsHandler())
	public.GET("/news/details/:slug", NewsDetailsHandler())

	// Authenticated routes (any role); gates run before the database is touched
	member := r.Group("/api", auth, middleware.RequireRole(domain.RoleAdmin, domain.RoleWriter), dbm)
	member.GET("/news", DashboardNewsHandler())
	member.GET("/news/:id", DashboardNewsDetailHandler())
	member.GET("/edit/news/:id", DashboardNewsDetailHandler())
	member.PUT("/news/update/:id", UpdateNewsHandler(rc.Redis))
	member.DELETE("/news/delete/:id", DeleteNewsHandler(rc.Redis))
	member.GET("/profile/:id", ProfileHandler())
	member.PUT("/profile/password", ChangePasswordHandler())

	// Admin routes
	admin := r.Group("/api", auth, middleware.RequireRole(domain.RoleAdmin), dbm)
	admin.POST("/writer/add", AddWriterHandler())
	admin.GET("/news/writers", ListWritersHandler())
	admin.GET("/news/writer/:id", GetWriterHandler())
	admin.PUT("/update/writer/:id", UpdateWriterHandler(rc.Redis))
	admin.DELETE("/delete/writer/:id", DeleteWriterHandler())
	admin.PUT("/news/status-update/:id", UpdateNewsStatusHandler(rc.Redis))

	// Writer routes
	writer := r.Group("/api", auth, middleware.RequireRole(domain.RoleWriter), dbm)
	writer.POST("/news/add", AddNewsHandler())
	writer.GET("/writer/news", WriterNewsHandler())
	writer.GET("/writer/news-statistics", WriterNewsStatisticsHandler())

	return r, nil
}
