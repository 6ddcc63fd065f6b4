package routes

import (
	"net/http"
	"time"

	"forgespace/controllers/admins"
	"forgespace/middleware"

	"github.com/gorilla/mux"
)

func AdminRoutes(api *mux.Router) {
	adminLimiter := middleware.NewIPRateLimiter(600, time.Minute)

	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(adminLimiter.Middleware)
	adminRouter.Use(middleware.AdminAuthMiddleware)

	adminRouter.Handle("/members", http.HandlerFunc(admins.GetMembers)).Methods(http.MethodGet)
	adminRouter.Handle("/members/{id:[0-9]+}/stake", http.HandlerFunc(admins.AdjustStake)).Methods(http.MethodPut)
}
