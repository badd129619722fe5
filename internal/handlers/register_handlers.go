package handlers

import (
	"log/slog"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/SscSPs/exchange_rates_app/cmd/docs"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/middleware"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the gin engine with global middleware and every route.
// metricsHandler may be nil to leave /metrics unrouted.
func NewRouter(
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	health portsrepo.HealthChecker,
	metricsHandler http.Handler,
	logger *slog.Logger,
) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if corsMiddleware := newCORS(cfg.CORSAllowedOrigins); corsMiddleware != nil {
		r.Use(corsMiddleware)
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	if err := RegisterRoutes(r, cfg, services, health, metricsHandler); err != nil {
		return nil, err
	}
	return r, nil
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	health portsrepo.HealthChecker,
	metricsHandler http.Handler,
) error {
	if err := registerValidators(); err != nil {
		return err
	}

	registerHealthRoutes(r, health)
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// Public routes share the /api/v1 prefix; the rest sits behind AuthMiddleware.
	v1 := r.Group("/api/v1")
	authed := v1.Group("", middleware.AuthMiddleware(services.Token))

	if err := registerUserRoutes(v1, cfg, services.User, services.Token); err != nil {
		return err
	}
	if err := registerAuthTokenRoutes(v1, authed, cfg, services.User, services.Token); err != nil {
		return err
	}
	registerExchangeRateRoutes(authed, services.ExchangeRate)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// healthResponse is returned by GET /health.
type healthResponse struct {
	Status string `json:"status"`
}

func registerHealthRoutes(r *gin.Engine, health portsrepo.HealthChecker) {
	r.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health.Ping(c.Request.Context()); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
				c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "DOWN"})
				return
			}
		}
		c.JSON(http.StatusOK, healthResponse{Status: "UP"})
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func newCORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.ExposeHeaders = []string{"X-Request-ID"}
	if slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{2,10}$`)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators adds the "currency" binding tag: 2 to 10 letters or digits,
// surrounding whitespace ignored.
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		validatorsErr = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return currencyCodePattern.MatchString(strings.TrimSpace(fl.Field().String()))
		})
	})
	return validatorsErr
}
