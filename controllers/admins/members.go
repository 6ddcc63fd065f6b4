package admins

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"forgespace/database"
	"forgespace/models"
	"forgespace/services"
	"forgespace/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /v1/admin/members?search=&page=&limit=
func GetMembers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	db := database.DB
	query := db.Model(&models.Member{})
	if search != "" {
		query = query.Where("username LIKE ? OR display_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	var members []models.Member
	if err := query.Order("stake DESC").Limit(limit).Offset((page - 1) * limit).Find(&members).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"members":     members,
			"page":        page,
			"limit":       limit,
			"total_rows":  totalRows,
			"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
		},
	})
}

type adjustStakeRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// PUT /v1/admin/members/{id}/stake
// Manual correction of a member's stake balance, recorded as an adjustment
// event. Negative deltas respect the non-negative balance invariant.
func AdjustStake(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetMemberID(r)
	if !ok || adminID == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid member ID"})
		return
	}

	var req adjustStakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Delta == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Delta must be a non-zero integer"})
		return
	}

	memberID := uint(id)
	msg := strings.TrimSpace(req.Reason)
	if msg == "" {
		msg = "Manual stake adjustment"
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		ref := utils.NewAdjustmentReference()
		if req.Delta > 0 {
			return services.CreditStake(tx, memberID, req.Delta, models.KindAdjustment, ref, msg)
		}
		return services.DebitStake(tx, memberID, -req.Delta, models.KindAdjustment, ref, msg)
	})
	if err != nil {
		status := services.HTTPStatus(err)
		respMsg := err.Error()
		if status == http.StatusInternalServerError {
			log.Printf("[admin/stake] adjust member %d: %v", memberID, err)
			respMsg = "Failed to adjust stake"
		}
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: respMsg})
		return
	}

	balance, err := services.StakeBalance(database.DB, memberID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to read balance"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Stake adjusted",
		Data:    map[string]interface{}{"member_id": memberID, "stake": balance},
	})
}
