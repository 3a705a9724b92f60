package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/galhub/galhub/internal/server/captcha"
	"github.com/galhub/galhub/internal/server/domain"
	"github.com/galhub/galhub/internal/server/service"
	"github.com/galhub/galhub/internal/server/store"
	"github.com/galhub/galhub/pkg/httpx"
	"github.com/galhub/galhub/pkg/jwtx"
	"github.com/galhub/galhub/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store      store.Store
	challenges *captcha.Store

	Identity *service.IdentityService
	Catalog  *service.CatalogService
	Reviews  *service.ReviewService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	challenges *captcha.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		challenges:   challenges,
		logger:       logger,
	}

	// Global middleware chain, applied to every route.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

// Use appends a middleware to the global chain. Must be called before the
// first request is served.
func (r *Router) Use(mw httpx.Middleware) {
	r.middlewares = append(r.middlewares, mw)
}

func (r *Router) ApplyRoutes() {
	r.registerCaptcha()
	r.registerAuth()
	r.registerUsers()
	r.registerCatalog()
	r.registerReviews()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn builds the bearer-token gate shared by authenticated routes.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.verifier)
}

// adminOnly gates a route on the admin role, resolved from the store on
// every request so token contents never grant privileges.
func (r *Router) adminOnly() httpx.Middleware {
	return httpx.RequireRole(string(domain.RoleAdmin), r.Identity.RoleByID)
}

func (r *Router) registerCaptcha() {
	// Challenge generation is open but moderately limited so one client
	// cannot flood the challenge store.
	r.Mux.Handle("GET /api/captcha/generate",
		httpx.Chain(&CaptchaGenerateHandler{Challenges: r.challenges},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/captcha/verify",
		httpx.Chain(&CaptchaVerifyHandler{Challenges: r.challenges},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAuth() {
	// Credential endpoints carry the strictest IP limit.
	r.Mux.Handle("POST /api/register",
		httpx.Chain(&RegisterHandler{Identity: r.Identity},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/login",
		httpx.Chain(&LoginHandler{Identity: r.Identity},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	r.Mux.Handle("GET /api/users/me",
		httpx.Chain(&MeHandler{Identity: r.Identity},
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /api/users/me/password",
		httpx.Chain(&ChangePasswordHandler{Identity: r.Identity},
			r.authn(),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerCatalog() {
	// Public reads with a generous limit.
	r.Mux.Handle("GET /api/games",
		httpx.Chain(&ListGamesHandler{Catalog: r.Catalog},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/games/latest",
		httpx.Chain(&LatestGamesHandler{Catalog: r.Catalog},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/games/popular",
		httpx.Chain(&PopularGamesHandler{Catalog: r.Catalog},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/games/{id}",
		httpx.Chain(&GetGameHandler{Catalog: r.Catalog},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/tags",
		httpx.Chain(&ListTagsHandler{Catalog: r.Catalog},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/stats",
		httpx.Chain(&StatsHandler{Catalog: r.Catalog},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerReviews() {
	r.Mux.Handle("POST /api/reviews",
		httpx.Chain(&CreateReviewHandler{Reviews: r.Reviews},
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/reviews/game/{id}",
		httpx.Chain(&GameReviewsHandler{Reviews: r.Reviews},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /api/reviews/user/{id}",
		httpx.Chain(&UserReviewsHandler{Reviews: r.Reviews},
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /api/reviews/{id}",
		httpx.Chain(&UpdateReviewHandler{Reviews: r.Reviews},
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/reviews/{id}",
		httpx.Chain(&DeleteReviewHandler{Reviews: r.Reviews, Identity: r.Identity},
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	r.Mux.Handle("POST /api/admin/games",
		httpx.Chain(&CreateGameHandler{Catalog: r.Catalog},
			r.authn(), r.adminOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/admin/games/{id}",
		httpx.Chain(&UpdateGameHandler{Catalog: r.Catalog},
			r.authn(), r.adminOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/admin/games/{id}",
		httpx.Chain(&DeleteGameHandler{Catalog: r.Catalog},
			r.authn(), r.adminOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/admin/tags",
		httpx.Chain(&CreateTagHandler{Catalog: r.Catalog},
			r.authn(), r.adminOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/admin/users/{id}/password",
		httpx.Chain(&ResetPasswordHandler{Identity: r.Identity},
			r.authn(), r.adminOnly(),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
