package users

import (
	"net/http"

	"forgespace/database"
	"forgespace/models"
	"forgespace/utils"

	"gorm.io/gorm"
)

// GET /v1/users/me
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetMemberID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB
	var member models.Member
	if err := db.First(&member, uid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Member not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	var totalHours float64
	db.Model(&models.VolunteerLogEntry{}).
		Where("member_id = ? AND status = ?", uid, "approved").
		Select("COALESCE(SUM(hours), 0)").Scan(&totalHours)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"id":              member.ID,
			"username":        member.Username,
			"display_name":    member.DisplayName,
			"stake":           member.Stake,
			"is_admin":        member.IsAdmin,
			"volunteer_hours": totalHours,
		},
	})
}
