package bounties

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"forgespace/database"
	"forgespace/models"
	"forgespace/utils"
)

type bountyListItem struct {
	models.Bounty
	CreatorName  string `json:"creator_name"`
	AssigneeName string `json:"assignee_name,omitempty"`
}

// GET /v1/bounties?status=&page=&limit=
// Bounties whose start date is still in the future are hidden; they become
// visible on their own once the clock passes starts_at.
func ListBountiesHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !models.BountyStatus(status).Valid() {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown status filter"})
		return
	}

	db := database.DB
	now := time.Now()

	countQuery := db.Model(&models.Bounty{}).Where("starts_at <= ?", now)
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	var rows []models.Bounty
	query := db.Preload("Requirements").Preload("Claims").
		Where("starts_at <= ?", now)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	names := displayNames(rows)
	items := make([]bountyListItem, 0, len(rows))
	for _, b := range rows {
		item := bountyListItem{Bounty: b, CreatorName: names[b.CreatorID]}
		if b.AssignedTo != nil {
			item.AssigneeName = names[*b.AssignedTo]
		}
		items = append(items, item)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"bounties":    items,
			"page":        page,
			"limit":       limit,
			"total_rows":  totalRows,
			"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
		},
	})
}

// displayNames resolves member IDs referenced by the given bounties in one
// query. Missing members simply resolve to an empty name.
func displayNames(rows []models.Bounty) map[uint]string {
	idSet := map[uint]bool{}
	for _, b := range rows {
		idSet[b.CreatorID] = true
		if b.AssignedTo != nil {
			idSet[*b.AssignedTo] = true
		}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	names := map[uint]string{}
	if len(ids) == 0 {
		return names
	}
	var members []models.Member
	if err := database.DB.Select("id", "display_name").Where("id IN ?", ids).Find(&members).Error; err != nil {
		return names
	}
	for _, m := range members {
		names[m.ID] = m.DisplayName
	}
	return names
}
