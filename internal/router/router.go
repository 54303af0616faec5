package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/paydown/backend/internal/controllers/healthz"
	"github.com/paydown/backend/internal/controllers/root"
	v1 "github.com/paydown/backend/internal/controllers/v1"
	"github.com/paydown/backend/internal/controllers/version"
	"github.com/paydown/backend/internal/httperror"
	"github.com/paydown/backend/internal/httputil"
	"github.com/paydown/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time, see Makefile.
var apiVersion = "0.0.0"

// Config sets up the router and middlewares.
//
// The returned teardown function has to be called when the router is
// discarded, it unregisters the Prometheus collectors so that a new router
// can be configured.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httperror.NewFromString("This HTTP method is not allowed for the endpoint you called"))
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-User-ID"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	if err := registerPrometheusMetrics(); err != nil {
		return nil, func() {}, err
	}

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", apiVersion).Msg("Router")

	return r, func() { unregisterPrometheusMetrics() }, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config() allows us to attach it to different
// paths for different use cases.
func AttachRoutes(group *gin.RouterGroup) {
	root.RegisterRoutes(group)
	healthz.RegisterRoutes(group.Group("/healthz"))
	version.RegisterRoutes(group.Group("/version"), apiVersion)

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	// API v1 setup
	v1Group := group.Group("/v1")
	{
		v1Group.GET("", GetV1)
		v1Group.OPTIONS("", OptionsV1)
	}

	v1.RegisterTransactionRoutes(v1Group.Group("/transactions"))
	v1.RegisterRecurringTransactionRoutes(v1Group.Group("/recurring-transactions"))
	v1.RegisterDebtRoutes(v1Group.Group("/debts"))
	v1.RegisterBudgetRoutes(v1Group.Group("/budgets"))
	v1.RegisterWalletRoutes(v1Group.Group("/wallets"))
	v1.RegisterPlannerRoutes(v1Group.Group("/planner"))
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Transactions          string `json:"transactions" example:"https://example.com/api/v1/transactions"`                     // URL of transaction list endpoint
	RecurringTransactions string `json:"recurringTransactions" example:"https://example.com/api/v1/recurring-transactions"` // URL of recurring transaction list endpoint
	Debts                 string `json:"debts" example:"https://example.com/api/v1/debts"`                                   // URL of debt list endpoint
	Budgets               string `json:"budgets" example:"https://example.com/api/v1/budgets"`                               // URL of budget list endpoint
	Wallets               string `json:"wallets" example:"https://example.com/api/v1/wallets"`                               // URL of wallet list endpoint
	Planner               string `json:"planner" example:"https://example.com/api/v1/planner"`                               // URL of the planner endpoints
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Transactions:          url + "/v1/transactions",
			RecurringTransactions: url + "/v1/recurring-transactions",
			Debts:                 url + "/v1/debts",
			Budgets:               url + "/v1/budgets",
			Wallets:               url + "/v1/wallets",
			Planner:               url + "/v1/planner",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
