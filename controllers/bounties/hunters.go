package bounties

import (
	"net/http"
	"sort"
	"strconv"

	"forgespace/database"
	"forgespace/models"
	"forgespace/utils"
)

type hunterRow struct {
	MemberID    uint   `json:"member_id"`
	DisplayName string `json:"display_name"`
	Wins        int    `json:"wins"`
}

// GET /v1/bounties/hunters?limit=
// Top bounty hunters: one win per verified single-claim bounty a member was
// assigned, plus one per verified claim they hold on open-ended bounties.
func TopHuntersHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	db := database.DB
	wins := map[uint]int{}

	var singleWins []struct {
		AssignedTo uint
		N          int
	}
	if err := db.Model(&models.Bounty{}).
		Select("assigned_to, COUNT(*) AS n").
		Where("status = ? AND is_infinite = ? AND assigned_to IS NOT NULL", models.StatusVerified, false).
		Group("assigned_to").
		Scan(&singleWins).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	for _, row := range singleWins {
		wins[row.AssignedTo] += row.N
	}

	var claimWins []struct {
		UserID uint
		N      int
	}
	if err := db.Model(&models.BountyClaim{}).
		Select("user_id, COUNT(*) AS n").
		Where("status = ?", models.ClaimVerified).
		Group("user_id").
		Scan(&claimWins).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	for _, row := range claimWins {
		wins[row.UserID] += row.N
	}

	ids := make([]uint, 0, len(wins))
	for id := range wins {
		ids = append(ids, id)
	}
	names := map[uint]string{}
	if len(ids) > 0 {
		var members []models.Member
		if err := db.Select("id", "display_name").Where("id IN ?", ids).Find(&members).Error; err == nil {
			for _, m := range members {
				names[m.ID] = m.DisplayName
			}
		}
	}

	ranked := make([]hunterRow, 0, len(wins))
	for id, n := range wins {
		ranked = append(ranked, hunterRow{MemberID: id, DisplayName: names[id], Wins: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Wins != ranked[j].Wins {
			return ranked[i].Wins > ranked[j].Wins
		}
		return ranked[i].MemberID < ranked[j].MemberID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: ranked})
}
