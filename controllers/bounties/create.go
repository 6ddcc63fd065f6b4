package bounties

import (
	"encoding/json"
	"log"
	"net/http"

	"forgespace/database"
	"forgespace/services"
	"forgespace/utils"
)

// POST /v1/bounties
func CreateBountyHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetMemberID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var input services.CreateBountyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Not valid JSON"})
		return
	}
	if err := utils.ValidateStruct(&input); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}

	bounty, err := services.CreateBounty(database.DB, uid, input)
	if err != nil {
		writeEngineError(w, "bounty/create", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Bounty created",
		Data:    bounty,
	})
}

// writeEngineError maps a lifecycle engine error to the response convention,
// hiding internals behind a generic message.
func writeEngineError(w http.ResponseWriter, scope string, err error) {
	status := services.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[%s] %v", scope, err)
		msg = "System error, please try again"
	}
	utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: msg})
}
