package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/service"
	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/pkg/httpx"
	"github.com/trackroomhq/trackroom/pkg/jwtx"
	"github.com/trackroomhq/trackroom/pkg/slogx"

	_ "github.com/trackroomhq/trackroom/api/studio" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	cookies      httpx.CookieConfig
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	IdentityService   *service.IdentityService
	AccessService     *service.AccessService
	StudioService     *service.StudioService
	MembershipService *service.MembershipService
	InviteService     *service.InviteService
	InviteLinkService *service.InviteLinkService
	ScheduleService   *service.ScheduleService
	GearService       *service.GearService
	InvoiceService    *service.InvoiceService
	MFAService        *service.MFAService

	// ExposeDebugToken makes login responses carry the raw login token.
	// Only set outside production.
	ExposeDebugToken bool
}

func NewRouter(
	signer *jwtx.Signer,
	cookies httpx.CookieConfig,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		cookies:      cookies,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAccess()
	r.registerStudios()
	r.registerMembers()
	r.registerInvites()
	r.registerInviteLinks()
	r.registerSchedule()
	r.registerGear()
	r.registerInvoices()
	r.registerMFA()
	r.registerProfile()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Trackroom Studio Service API
//	@version		0.1.0
//	@description	Multi-tenant studio management: magic-link authentication, studio access resolution, memberships and invitations, room scheduling, gear inventory, and invoicing.
//	@description
//	@description				Sessions are signed HS256 tokens carried in an HttpOnly cookie or an Authorization bearer header.
//
//	@contact.name				Trackroom Team
//	@contact.url				https://github.com/trackroomhq/trackroom
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
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps a handler with session authentication and a per-IP rate
// limit. Sessions are stateless, so limits key on IP rather than identity.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.signer),
		httpx.RateLimitByIP(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		IdentityService:  r.IdentityService,
		Signer:           r.signer,
		Cookies:          r.cookies,
		ExposeDebugToken: r.ExposeDebugToken,
	}

	// POST /login - strict rate limit by IP (email dispatch)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /redeem - strict rate limit (token guessing attempts)
	r.Mux.Handle("POST /v1/auth/redeem",
		httpx.Chain(http.HandlerFunc(h.HandleRedeem),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAccess() {
	h := &AccessHandler{
		AccessService: r.AccessService,
		StudioService: r.StudioService,
		Cookies:       r.cookies,
	}

	r.Mux.Handle("GET /v1/access", r.secured(http.HandlerFunc(h.HandleResolve), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/access/switch", r.secured(http.HandlerFunc(h.HandleSwitch), httpx.ModerateLimit))
}

func (r *Router) registerStudios() {
	h := &StudiosHandler{StudioService: r.StudioService}

	r.Mux.Handle("POST /v1/studios", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/studios/{id}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/studios/{id}", r.secured(http.HandlerFunc(h.HandleRename), httpx.ModerateLimit))
}

func (r *Router) registerMembers() {
	h := &MembersHandler{MembershipService: r.MembershipService}

	r.Mux.Handle("GET /v1/studios/{id}/members", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/studios/{id}/members/{membershipID}/role", r.secured(http.HandlerFunc(h.HandleChangeRole), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/studios/{id}/members/{membershipID}", r.secured(http.HandlerFunc(h.HandleRemove), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/studios/{id}/leave", r.secured(http.HandlerFunc(h.HandleLeave), httpx.ModerateLimit))
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}

	r.Mux.Handle("POST /v1/studios/{id}/invites", r.secured(http.HandlerFunc(h.HandleSend), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/studios/{id}/invites", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/studios/{id}/invites/{invitationID}", r.secured(http.HandlerFunc(h.HandleRevoke), httpx.ModerateLimit))

	// Token redemption gets the strict limit; tokens are guessable in
	// principle even if fingerprinted.
	r.Mux.Handle("POST /v1/invites/accept", r.secured(http.HandlerFunc(h.HandleAccept), httpx.StrictLimit))
}

func (r *Router) registerInviteLinks() {
	h := &InviteLinkHandler{InviteLinkService: r.InviteLinkService}

	r.Mux.Handle("GET /v1/studios/{id}/invite-link", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/studios/{id}/invite-link/rotate", r.secured(http.HandlerFunc(h.HandleRotate), httpx.ModerateLimit))
	r.Mux.Handle("PUT /v1/studios/{id}/invite-link/enabled", r.secured(http.HandlerFunc(h.HandleSetEnabled), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/invite-links/join", r.secured(http.HandlerFunc(h.HandleJoin), httpx.StrictLimit))
}

func (r *Router) registerSchedule() {
	h := &ScheduleHandler{ScheduleService: r.ScheduleService}

	r.Mux.Handle("POST /v1/studios/{id}/rooms", r.secured(http.HandlerFunc(h.HandleCreateRoom), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/studios/{id}/rooms", r.secured(http.HandlerFunc(h.HandleListRooms), httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/studios/{id}/rooms/{roomID}", r.secured(http.HandlerFunc(h.HandleDeleteRoom), httpx.ModerateLimit))

	r.Mux.Handle("POST /v1/studios/{id}/sessions", r.secured(http.HandlerFunc(h.HandleBookSession), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/studios/{id}/sessions", r.secured(http.HandlerFunc(h.HandleListSessions), httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/studios/{id}/sessions/{sessionID}", r.secured(http.HandlerFunc(h.HandleCancelSession), httpx.ModerateLimit))
}

func (r *Router) registerGear() {
	h := &GearHandler{GearService: r.GearService}

	r.Mux.Handle("POST /v1/studios/{id}/gear", r.secured(http.HandlerFunc(h.HandleAdd), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/studios/{id}/gear", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/studios/{id}/gear/{itemID}/status", r.secured(http.HandlerFunc(h.HandleSetStatus), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/studios/{id}/gear/{itemID}", r.secured(http.HandlerFunc(h.HandleRemove), httpx.ModerateLimit))
}

func (r *Router) registerInvoices() {
	h := &InvoicesHandler{InvoiceService: r.InvoiceService}

	r.Mux.Handle("POST /v1/studios/{id}/invoices", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/studios/{id}/invoices", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/studios/{id}/invoices/{invoiceID}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/studios/{id}/invoices/{invoiceID}/status", r.secured(http.HandlerFunc(h.HandleSetStatus), httpx.ModerateLimit))
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.Mux.Handle("POST /v1/mfa/enroll", r.secured(http.HandlerFunc(h.HandleEnroll), httpx.ModerateLimit))

	// Code verification endpoints get the strict limit to slow TOTP
	// brute-forcing.
	r.Mux.Handle("POST /v1/mfa/activate", r.secured(http.HandlerFunc(h.HandleActivate), httpx.StrictLimit))
	r.Mux.Handle("POST /v1/mfa/disable", r.secured(http.HandlerFunc(h.HandleDisable), httpx.StrictLimit))
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{IdentityService: r.IdentityService}

	r.Mux.Handle("GET /v1/me", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/me", r.secured(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
