package bounties

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"forgespace/database"
	"forgespace/services"
	"forgespace/utils"
)

// actionPayload carries the per-action fields of the lifecycle dispatch
// endpoint. Which fields matter depends on the action.
type actionPayload struct {
	UserID      uint                      `json:"user_id"`
	Submission  string                    `json:"submission"`
	ClaimUserID uint                      `json:"claim_user_id"`
	UpdateData  *services.EditBountyInput `json:"update_data"`
}

var knownActions = map[string]bool{
	"assign":        true,
	"submit":        true,
	"verify":        true,
	"cancel":        true,
	"edit":          true,
	"clawback":      true,
	"claim":         true,
	"submitClaim":   true,
	"verifyClaim":   true,
	"clawbackClaim": true,
}

// ParseActionRequest validates the query portion of the dispatch endpoint.
func ParseActionRequest(bountyIDRaw, action string) (uint, string, error) {
	action = strings.TrimSpace(action)
	if !knownActions[action] {
		return 0, "", &services.ValidationError{Msg: "Unknown or missing action"}
	}
	id, err := strconv.ParseUint(strings.TrimSpace(bountyIDRaw), 10, 32)
	if err != nil || id == 0 {
		return 0, "", &services.ValidationError{Msg: "Missing or invalid bountyID"}
	}
	return uint(id), action, nil
}

// PUT /v1/bounties?bountyID=&action=
// Single dispatch point for every lifecycle transition; the engine owns all
// legality checks.
func BountyActionHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetMemberID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	bountyID, action, err := ParseActionRequest(r.URL.Query().Get("bountyID"), r.URL.Query().Get("action"))
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}

	var payload actionPayload
	if r.Body != nil {
		// an empty body is fine for actions without a payload
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	db := database.DB
	switch action {
	case "assign":
		target := payload.UserID
		if target == 0 {
			target = uid // self-assign
		}
		bounty, err := services.AssignBounty(db, bountyID, target)
		if err != nil {
			writeEngineError(w, "bounty/assign", err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Bounty assigned", Data: bounty})

	case "submit":
		bounty, err := services.SubmitBounty(db, bountyID, uid, payload.Submission)
		if err != nil {
			writeEngineError(w, "bounty/submit", err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Submission recorded", Data: bounty})

	case "verify":
		bounty, successor, err := services.VerifyBounty(db, bountyID, uid)
		if err != nil {
			writeEngineError(w, "bounty/verify", err)
			return
		}
		data := map[string]interface{}{
			"bounty":             bounty,
			"recurrence_spawned": successor != nil,
		}
		if successor != nil {
			data["successor"] = successor
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Bounty verified", Data: data})

	case "cancel":
		bounty, err := services.CancelBounty(db, bountyID, uid)
		if err != nil {
			writeEngineError(w, "bounty/cancel", err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Bounty cancelled", Data: bounty})

	case "edit":
		if payload.UpdateData == nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Missing update_data"})
			return
		}
		bounty, err := services.EditBounty(db, bountyID, uid, *payload.UpdateData)
		if err != nil {
			writeEngineError(w, "bounty/edit", err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Bounty updated", Data: bounty})

	case "clawback":
		bounty, err := services.ClawbackBounty(db, bountyID, uid)
		if err != nil {
			writeEngineError(w, "bounty/clawback", err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Assignment clawed back", Data: bounty})

	case "claim":
		claim, err := services.ClaimBounty(db, bountyID, uid)
		if err != nil {
			writeEngineError(w, "bounty/claim", err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Claim opened", Data: claim})

	case "submitClaim":
		claim, err := services.SubmitClaim(db, bountyID, uid, payload.Submission)
		if err != nil {
			writeEngineError(w, "bounty/submitClaim", err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Claim submission recorded", Data: claim})

	case "verifyClaim":
		if payload.ClaimUserID == 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Missing claim_user_id"})
			return
		}
		claim, err := services.VerifyClaim(db, bountyID, uid, payload.ClaimUserID)
		if err != nil {
			writeEngineError(w, "bounty/verifyClaim", err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Claim verified", Data: claim})

	case "clawbackClaim":
		if payload.ClaimUserID == 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Missing claim_user_id"})
			return
		}
		if err := services.ClawbackClaim(db, bountyID, uid, payload.ClaimUserID); err != nil {
			writeEngineError(w, "bounty/clawbackClaim", err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Claim removed"})
	}
}
