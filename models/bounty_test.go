package models

import (
	"testing"
	"time"
)

func TestBountyStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BountyStatus
		ok       bool
	}{
		{StatusOpen, StatusAssigned, true},
		{StatusOpen, StatusCompleted, true}, // first-submission shortcut
		{StatusOpen, StatusCancelled, true},
		{StatusOpen, StatusVerified, false},
		{StatusAssigned, StatusCompleted, true},
		{StatusAssigned, StatusOpen, true}, // clawback
		{StatusAssigned, StatusCancelled, true},
		{StatusAssigned, StatusVerified, false},
		{StatusCompleted, StatusVerified, true},
		{StatusCompleted, StatusCancelled, true},
		{StatusCompleted, StatusOpen, false},
		{StatusVerified, StatusCancelled, false},
		{StatusVerified, StatusOpen, false},
		{StatusCancelled, StatusOpen, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.ok {
			t.Errorf("%s -> %s: expected %v, got %v", c.from, c.to, c.ok, got)
		}
	}
}

func TestBountyStatusTerminal(t *testing.T) {
	for _, s := range []BountyStatus{StatusOpen, StatusAssigned, StatusCompleted} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []BountyStatus{StatusVerified, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	if BountyStatus("bogus").Terminal() {
		t.Error("unknown status must not report terminal")
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusOpen.Valid() || !StatusCancelled.Valid() {
		t.Error("known statuses should be valid")
	}
	if BountyStatus("Open").Valid() {
		t.Error("status check must be case sensitive")
	}
}

func TestRewardTypeValid(t *testing.T) {
	for _, r := range []RewardType{RewardHours, RewardCash, RewardCustom} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if RewardType("points").Valid() {
		t.Error("unknown reward type accepted")
	}
}

func TestRecurrenceNextStartDaily(t *testing.T) {
	from := time.Date(2024, 3, 10, 17, 42, 3, 0, time.UTC)
	next, ok := RecurDaily.NextStart(from)
	if !ok {
		t.Fatal("daily recurrence should produce a next start")
	}
	want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestRecurrenceNextStartWeekly(t *testing.T) {
	from := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	next, ok := RecurWeekly.NextStart(from)
	if !ok {
		t.Fatal("weekly recurrence should produce a next start")
	}
	want := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestRecurrenceNextStartMonthly(t *testing.T) {
	from := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)
	next, ok := RecurMonthly.NextStart(from)
	if !ok {
		t.Fatal("monthly recurrence should produce a next start")
	}
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestRecurrenceNextStartMonthlyYearRollover(t *testing.T) {
	from := time.Date(2023, 12, 20, 8, 0, 0, 0, time.UTC)
	next, _ := RecurMonthly.NextStart(from)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestRecurrenceNextStartNone(t *testing.T) {
	if _, ok := RecurNone.NextStart(time.Now()); ok {
		t.Fatal("none recurrence must not produce a next start")
	}
}

func TestAdditionalStake(t *testing.T) {
	b := Bounty{StakeValue: 8}
	if got := b.AdditionalStake(); got != 5 {
		t.Fatalf("expected additional 5 for stake 8, got %d", got)
	}
	b.StakeValue = BaseStake
	if got := b.AdditionalStake(); got != 0 {
		t.Fatalf("expected additional 0 for base-only stake, got %d", got)
	}
	b.StakeValue = 1 // below base, legacy data
	if got := b.AdditionalStake(); got != 0 {
		t.Fatalf("additional stake must not go negative, got %d", got)
	}
}

func TestFirstSubmitter(t *testing.T) {
	b := Bounty{}
	if _, ok := b.FirstSubmitter(); ok {
		t.Fatal("no submissions should yield no submitter")
	}
	b.Submissions = []BountySubmission{
		{UserID: 7, CreatedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		{UserID: 3, CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: 9, CreatedAt: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)},
	}
	id, ok := b.FirstSubmitter()
	if !ok || id != 3 {
		t.Fatalf("expected earliest submitter 3, got %d (ok=%v)", id, ok)
	}
}

func TestClaimBy(t *testing.T) {
	b := Bounty{Claims: []BountyClaim{
		{UserID: 1, Status: ClaimAssigned},
		{UserID: 2, Status: ClaimVerified},
	}}
	if c := b.ClaimBy(2); c == nil || c.Status != ClaimVerified {
		t.Fatal("expected user 2's claim")
	}
	if c := b.ClaimBy(5); c != nil {
		t.Fatal("expected nil for user without a claim")
	}
}
