package services

import (
	"errors"
	"testing"
	"time"

	"forgespace/models"
)

func TestCreateBountyInputValidate(t *testing.T) {
	base := CreateBountyInput{Title: "Sweep the wood shop"}

	in := base
	if err := in.Validate(); err != nil {
		t.Fatalf("minimal input should validate: %v", err)
	}
	if in.RewardType != models.RewardCustom {
		t.Errorf("empty reward type should default to custom, got %q", in.RewardType)
	}
	if in.Recurrence != models.RecurNone {
		t.Errorf("empty recurrence should default to none, got %q", in.Recurrence)
	}

	in = base
	in.Title = "   "
	if err := in.Validate(); err == nil {
		t.Error("blank title should be rejected")
	}

	in = base
	in.AdditionalStake = -2
	if err := in.Validate(); err == nil {
		t.Error("negative additional stake should be rejected")
	}

	in = base
	in.RewardType = "points"
	if err := in.Validate(); err == nil {
		t.Error("unknown reward type should be rejected")
	}

	in = base
	in.Recurrence = "fortnightly"
	if err := in.Validate(); err == nil {
		t.Error("unknown recurrence should be rejected")
	}

	in = base
	in.RewardType = models.RewardHours
	in.RewardValue = "2.5"
	if err := in.Validate(); err != nil {
		t.Errorf("numeric hours reward should validate: %v", err)
	}
	in.RewardValue = "a couple"
	if err := in.Validate(); err == nil {
		t.Error("non-numeric hours reward should be rejected")
	}
	in.RewardValue = "0"
	if err := in.Validate(); err == nil {
		t.Error("zero hours reward should be rejected")
	}
}

func TestCreateBountyInputValidateReturnsValidationError(t *testing.T) {
	in := CreateBountyInput{}
	err := in.Validate()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestEditBountyInputChanges(t *testing.T) {
	title := "  New title  "
	desc := "updated"
	rt := models.RewardCash
	starts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	in := EditBountyInput{
		Title:       &title,
		Description: &desc,
		RewardType:  &rt,
		StartsAt:    &starts,
	}
	updates, err := in.Changes()
	if err != nil {
		t.Fatalf("changes: %v", err)
	}
	if updates["title"] != "New title" {
		t.Errorf("title should be trimmed, got %q", updates["title"])
	}
	if updates["description"] != desc {
		t.Errorf("description not mapped, got %v", updates["description"])
	}
	if updates["reward_type"] != models.RewardCash {
		t.Errorf("reward_type not mapped, got %v", updates["reward_type"])
	}
	if updates["starts_at"] != starts {
		t.Errorf("starts_at not mapped, got %v", updates["starts_at"])
	}
	if _, ok := updates["stake_value"]; ok {
		t.Error("stake value must never appear in the update set")
	}
}

func TestEditBountyInputChangesRejectsBadInput(t *testing.T) {
	blank := "  "
	if _, err := (&EditBountyInput{Title: &blank}).Changes(); err == nil {
		t.Error("blank title patch should be rejected")
	}
	bad := models.RewardType("karma")
	if _, err := (&EditBountyInput{RewardType: &bad}).Changes(); err == nil {
		t.Error("unknown reward type patch should be rejected")
	}
}

func TestEditBountyInputChangesEmptyPatch(t *testing.T) {
	updates, err := (&EditBountyInput{}).Changes()
	if err != nil {
		t.Fatalf("empty patch should be fine: %v", err)
	}
	if len(updates) != 0 {
		t.Fatalf("empty patch produced updates: %v", updates)
	}
}

func TestResolveAwardee(t *testing.T) {
	assignee := uint(4)
	b := &models.Bounty{ID: 1, AssignedTo: &assignee}
	id, err := ResolveAwardee(b)
	if err != nil || id != 4 {
		t.Fatalf("expected assignee 4, got %d (%v)", id, err)
	}

	b = &models.Bounty{ID: 2, Submissions: []models.BountySubmission{
		{UserID: 8, CreatedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
		{UserID: 5, CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}}
	id, err = ResolveAwardee(b)
	if err != nil || id != 5 {
		t.Fatalf("expected earliest submitter 5, got %d (%v)", id, err)
	}

	b = &models.Bounty{ID: 3}
	if _, err := ResolveAwardee(b); err == nil {
		t.Fatal("no assignee and no submissions should be an error")
	}
}
