package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/internal/console/store"
	"github.com/pingdesk/pingdesk/pkg/httpx"
	"github.com/pingdesk/pingdesk/pkg/slogx"

	_ "github.com/pingdesk/pingdesk/api/console" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	apiKeyFingerprints  []string
	FlowService         *service.FlowService
	RegistrationService *service.RegistrationService
	AuthService         *service.AuthenticationService
	SyncService         *service.DeviceSyncService
	PolicyService       *service.PolicyService
	TokenService        *service.WorkerTokenService
	FlagService         *service.FeatureFlagService
	LogService          *service.DebugLogService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	apiKeyFingerprints []string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:                http.NewServeMux(),
		buildVersion:       buildVersion,
		startTime:          time.Now(),
		store:              st,
		apiKeyFingerprints: apiKeyFingerprints,
		logger:             logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerFlows()
	r.registerRegistration()
	r.registerAuthentications()
	r.registerDevices()
	r.registerPolicies()
	r.registerTokens()
	r.registerFlags()
	r.registerLogs()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			PingDesk Console API
//	@version		0.1.0
//	@description	Headless backend for the PingOne MFA registration and testing console. Drives the seven-step unified
//	@description	registration flow for six device types against the PingOne gateway and owns all flow/session state.
//
//	@contact.name				PingDesk Team
//	@contact.url				https://github.com/pingdesk/pingdesk
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Operator API key. Format: "Bearer {key}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps a handler with operator API-key auth plus a rate limit.
func (r *Router) secured(h http.Handler, limit httpx.Middleware) http.Handler {
	return httpx.Chain(h,
		httpx.APIKeyMiddleware(r.apiKeyFingerprints),
		limit,
	)
}

func (r *Router) registerFlows() {
	h := &FlowsHandler{FlowService: r.FlowService}

	// POST /flows - moderate rate limit (Configure submissions)
	r.Mux.Handle("POST /v1/flows",
		r.secured(http.HandlerFunc(h.HandleCreate), httpx.RateLimitByIP(httpx.ModerateLimit)))

	// Reads - lenient, keyed per flow
	r.Mux.Handle("GET /v1/flows/{id}",
		r.secured(http.HandlerFunc(h.HandleGet), httpx.RateLimitByFlow(httpx.LenientLimit)))

	r.Mux.Handle("DELETE /v1/flows/{id}",
		r.secured(http.HandlerFunc(h.HandleDelete), httpx.RateLimitByFlow(httpx.ModerateLimit)))

	// Navigation - moderate, keyed per flow
	r.Mux.Handle("POST /v1/flows/{id}/next",
		r.secured(http.HandlerFunc(h.HandleNext), httpx.RateLimitByFlow(httpx.ModerateLimit)))
	r.Mux.Handle("POST /v1/flows/{id}/previous",
		r.secured(http.HandlerFunc(h.HandlePrevious), httpx.RateLimitByFlow(httpx.ModerateLimit)))
	r.Mux.Handle("POST /v1/flows/{id}/steps/{n}",
		r.secured(http.HandlerFunc(h.HandleGoToStep), httpx.RateLimitByFlow(httpx.ModerateLimit)))
	r.Mux.Handle("POST /v1/flows/{id}/complete",
		r.secured(http.HandlerFunc(h.HandleComplete), httpx.RateLimitByFlow(httpx.ModerateLimit)))
}

func (r *Router) registerRegistration() {
	regHandler := &RegisterHandler{RegistrationService: r.RegistrationService}
	actHandler := &ActivateHandler{AuthService: r.AuthService}

	// Registration and activation hit the gateway and OTP validation is
	// brute-forceable, so these get the strict profile.
	r.Mux.Handle("POST /v1/flows/{id}/register",
		r.secured(http.HandlerFunc(regHandler.HandleRegister), httpx.RateLimitByFlow(httpx.StrictLimit)))
	r.Mux.Handle("POST /v1/flows/{id}/resume",
		r.secured(http.HandlerFunc(regHandler.HandleResume), httpx.RateLimitByFlow(httpx.StrictLimit)))
	r.Mux.Handle("POST /v1/flows/{id}/activate",
		r.secured(http.HandlerFunc(actHandler.HandleActivate), httpx.RateLimitByFlow(httpx.StrictLimit)))

	r.Mux.Handle("GET /v1/flows/{id}/totp/preview",
		r.secured(http.HandlerFunc(actHandler.HandleTOTPPreview), httpx.RateLimitByFlow(httpx.ModerateLimit)))
}

func (r *Router) registerAuthentications() {
	h := &AuthenticationsHandler{AuthService: r.AuthService}

	r.Mux.Handle("POST /v1/authentications",
		r.secured(http.HandlerFunc(h.HandleInit), httpx.RateLimitByIP(httpx.StrictLimit)))
}

func (r *Router) registerDevices() {
	devHandler := &DevicesHandler{SyncService: r.SyncService}
	typeHandler := &DeviceTypesHandler{Flags: r.FlagService}

	r.Mux.Handle("GET /v1/devices",
		r.secured(http.HandlerFunc(devHandler.HandleList), httpx.RateLimitByIP(httpx.LenientLimit)))

	// Sync walks every device page upstream - strict limit
	r.Mux.Handle("POST /v1/devices/sync",
		r.secured(http.HandlerFunc(devHandler.HandleSync), httpx.RateLimitByIP(httpx.StrictLimit)))

	r.Mux.Handle("GET /v1/devicetypes",
		r.secured(http.HandlerFunc(typeHandler.HandleList), httpx.RateLimitByIP(httpx.LenientLimit)))
}

func (r *Router) registerPolicies() {
	h := &PoliciesHandler{PolicyService: r.PolicyService}

	r.Mux.Handle("GET /v1/policies",
		r.secured(http.HandlerFunc(h.HandleList), httpx.RateLimitByIP(httpx.LenientLimit)))
}

func (r *Router) registerTokens() {
	h := &TokensHandler{Tokens: r.TokenService}

	r.Mux.Handle("GET /v1/token/status",
		r.secured(http.HandlerFunc(h.HandleStatus), httpx.RateLimitByIP(httpx.LenientLimit)))
}

func (r *Router) registerFlags() {
	h := &FlagsHandler{Flags: r.FlagService}

	r.Mux.Handle("GET /v1/flags",
		r.secured(http.HandlerFunc(h.HandleList), httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("GET /v1/flags/{key}",
		r.secured(http.HandlerFunc(h.HandleGet), httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("PUT /v1/flags/{key}",
		r.secured(http.HandlerFunc(h.HandleSet), httpx.RateLimitByIP(httpx.ModerateLimit)))
}

func (r *Router) registerLogs() {
	h := &LogsHandler{Logs: r.LogService}

	r.Mux.Handle("GET /v1/logs",
		r.secured(http.HandlerFunc(h.HandleList), httpx.RateLimitByIP(httpx.LenientLimit)))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenService),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
