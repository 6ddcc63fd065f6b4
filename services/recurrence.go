package services

import (
	"fmt"
	"log"
	"time"

	"forgespace/models"

	"gorm.io/gorm"
)

// The recurrence scheduler. There is no timer or background job: a recurring
// bounty spawns its successor synchronously inside the verify transaction's
// caller, and the successor stays invisible to listings until its start date.

// SpawnSuccessor creates the next occurrence of a verified recurring bounty.
// Only the additional portion of the stake carries forward; CreateBounty
// re-adds the base amount and re-runs the funding check against the creator's
// current balance. A funding failure here must not unwind the verification
// that triggered it, so callers treat a (nil, err) return as "verified, not
// respawned".
func SpawnSuccessor(db *gorm.DB, src *models.Bounty, now time.Time) (*models.Bounty, error) {
	next, ok := src.Recurrence.NextStart(now)
	if !ok {
		return nil, fmt.Errorf("bounty %d has no recurrence", src.ID)
	}

	reqs := make([]string, 0, len(src.Requirements))
	for _, r := range src.Requirements {
		reqs = append(reqs, r.Body)
	}

	input := CreateBountyInput{
		Title:           src.Title,
		Description:     src.Description,
		RewardType:      src.RewardType,
		RewardValue:     src.RewardValue,
		AdditionalStake: src.AdditionalStake(),
		Requirements:    reqs,
		Recurrence:      src.Recurrence,
		StartsAt:        &next,
		IsInfinite:      src.IsInfinite,
	}

	succ, err := CreateBounty(db, src.CreatorID, input)
	if err != nil {
		log.Printf("[bounty/recurrence] spawn of successor for bounty %d failed: %v", src.ID, err)
		return nil, err
	}
	return succ, nil
}
