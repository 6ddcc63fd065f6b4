package bounties

import (
	"net/http"
	"strconv"

	"forgespace/database"
	"forgespace/models"
	"forgespace/utils"

	"github.com/gorilla/mux"
)

// GET /v1/bounties/{id}
func GetBountyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid bounty ID"})
		return
	}

	var bounty models.Bounty
	if err := database.DB.
		Preload("Requirements").
		Preload("Submissions").
		Preload("Claims").
		First(&bounty, uint(id)).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Bounty not found"})
		return
	}

	names := displayNames([]models.Bounty{bounty})
	item := bountyListItem{Bounty: bounty, CreatorName: names[bounty.CreatorID]}
	if bounty.AssignedTo != nil {
		item.AssigneeName = names[*bounty.AssignedTo]
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: item})
}
