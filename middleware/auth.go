package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"forgespace/utils"
)

func writeJSON(w http.ResponseWriter, status int, resp map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// AuthMiddleware validates the bearer token issued by the membership service
// and injects the member ID and role into the request context. This is the
// only place caller identity enters the bounty engine.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		_, claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Your session has expired, please log in again.",
				})
				return
			}
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		memberID := utils.ClaimsMemberID(claims)
		if memberID == 0 {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Invalid token payload",
			})
			return
		}

		var role string
		if rStr, ok := claims["role"].(string); ok {
			role = rStr
		}

		ctx := context.WithValue(r.Context(), utils.MemberIDKey, memberID)
		ctx = context.WithValue(ctx, utils.MemberRoleKey, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
