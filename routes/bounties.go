package routes

import (
	"net/http"
	"time"

	"forgespace/controllers/bounties"
	"forgespace/controllers/users"
	"forgespace/middleware"

	"github.com/gorilla/mux"
)

// BountyRoutes registers the bounty lifecycle surface. The user limiter sits
// inside auth so it can key on the authenticated member.
func BountyRoutes(api *mux.Router) {
	ipLimiter := middleware.NewIPRateLimiter(300, 5*time.Minute)
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60) // 120 reads, 60 writes per minute

	withAuth := func(h http.HandlerFunc) http.Handler {
		return ipLimiter.Middleware(middleware.AuthMiddleware(userLimiter.Middleware(h)))
	}

	api.Handle("/bounties", withAuth(bounties.CreateBountyHandler)).Methods(http.MethodPost)
	api.Handle("/bounties", withAuth(bounties.ListBountiesHandler)).Methods(http.MethodGet)
	api.Handle("/bounties", withAuth(bounties.BountyActionHandler)).Methods(http.MethodPut)
	api.Handle("/bounties/hunters", withAuth(bounties.TopHuntersHandler)).Methods(http.MethodGet)
	api.Handle("/bounties/{id:[0-9]+}", withAuth(bounties.GetBountyHandler)).Methods(http.MethodGet)
}

// MemberRoutes registers the member-facing profile and history endpoints.
func MemberRoutes(api *mux.Router) {
	ipLimiter := middleware.NewIPRateLimiter(300, 5*time.Minute)
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	withAuth := func(h http.HandlerFunc) http.Handler {
		return ipLimiter.Middleware(middleware.AuthMiddleware(userLimiter.Middleware(h)))
	}

	api.Handle("/users/me", withAuth(users.ProfileHandler)).Methods(http.MethodGet)
	api.Handle("/users/me/stake-events", withAuth(users.StakeHistoryHandler)).Methods(http.MethodGet)
	api.Handle("/users/me/volunteer-log", withAuth(users.VolunteerLogHandler)).Methods(http.MethodGet)
}
