package users

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"forgespace/database"
	"forgespace/models"
	"forgespace/utils"
)

// GET /v1/users/me/stake-events?kind=&page=&limit=
func StakeHistoryHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetMemberID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	kind := strings.TrimSpace(r.URL.Query().Get("kind"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	db := database.DB
	countQuery := db.Model(&models.StakeEvent{}).Where("member_id = ?", uid)
	if kind != "" {
		countQuery = countQuery.Where("kind = ?", kind)
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	var events []models.StakeEvent
	query := db.Where("member_id = ?", uid)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&events).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"events":      events,
			"page":        page,
			"limit":       limit,
			"total_rows":  totalRows,
			"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
		},
	})
}

// GET /v1/users/me/volunteer-log
func VolunteerLogHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetMemberID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var entries []models.VolunteerLogEntry
	if err := database.DB.Where("member_id = ?", uid).Order("id DESC").Find(&entries).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: entries})
}
