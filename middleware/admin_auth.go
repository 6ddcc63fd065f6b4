package middleware

import (
	"context"
	"net/http"
	"strings"

	"forgespace/database"
	"forgespace/models"
	"forgespace/utils"
)

// AdminAuthMiddleware verifies that the request is from an authenticated
// admin member. The role claim is a hint only; the member row is the source
// of truth.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized: No token provided",
			})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		_, claims, err := utils.ValidateAccessToken(tokenString)
		if err != nil {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized: Invalid token",
			})
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Forbidden: Admin access required",
			})
			return
		}

		memberID := utils.ClaimsMemberID(claims)
		var member models.Member
		if err := database.DB.First(&member, memberID).Error; err != nil {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized: Member not found",
			})
			return
		}

		if !member.IsAdmin {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Forbidden",
			})
			return
		}

		ctx := context.WithValue(r.Context(), utils.MemberIDKey, memberID)
		ctx = context.WithValue(ctx, utils.MemberRoleKey, "admin")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
