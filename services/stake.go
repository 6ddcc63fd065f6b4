package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"forgespace/models"

	"gorm.io/gorm"
)

// The stake ledger. Balances live as a single integer on the member row
// (shared with other writers in the membership system), so every mutation is
// a guarded in-database expression rather than a read-modify-write in Go,
// and every mutation leaves a StakeEvent row behind.

// StakeBalance reads a member's current balance.
func StakeBalance(db *gorm.DB, memberID uint) (int, error) {
	var m models.Member
	if err := db.Select("id", "stake").First(&m, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrMemberNotFound
		}
		return 0, err
	}
	return m.Stake, nil
}

// DebitStake removes amount from a member's balance, refusing to go negative.
// The sufficiency check and the decrement are one UPDATE so a concurrent
// writer cannot sneak a spend in between.
func DebitStake(tx *gorm.DB, memberID uint, amount int, kind, reference, message string) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	res := tx.Model(&models.Member{}).
		Where("id = ? AND stake >= ?", memberID, amount).
		Update("stake", gorm.Expr("stake - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// distinguish a missing member from an underfunded one
		var count int64
		if err := tx.Model(&models.Member{}).Where("id = ?", memberID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrMemberNotFound
		}
		return ErrInsufficientStake
	}
	return recordStakeEvent(tx, memberID, amount, models.FlowDebit, kind, reference, message)
}

// CreditStake adds amount to a member's balance.
func CreditStake(tx *gorm.DB, memberID uint, amount int, kind, reference, message string) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	res := tx.Model(&models.Member{}).
		Where("id = ?", memberID).
		Update("stake", gorm.Expr("stake + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return recordStakeEvent(tx, memberID, amount, models.FlowCredit, kind, reference, message)
}

func recordStakeEvent(tx *gorm.DB, memberID uint, amount int, flow, kind, reference, message string) error {
	ev := models.StakeEvent{
		MemberID:  memberID,
		Amount:    amount,
		Flow:      flow,
		Kind:      kind,
		Reference: reference,
		Message:   &message,
	}
	if err := tx.Create(&ev).Error; err != nil {
		// A duplicate reference means this settlement already ran; rolling
		// back here is what makes payouts replay-proof.
		if strings.Contains(err.Error(), "Duplicate entry") || errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("[stake] duplicate settlement blocked: %s", reference)
			return ErrConflict
		}
		return err
	}
	return nil
}
