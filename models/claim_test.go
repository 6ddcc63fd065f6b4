package models

import "testing"

func TestClaimStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ClaimStatus
		ok       bool
	}{
		{ClaimAssigned, ClaimCompleted, true},
		{ClaimAssigned, ClaimVerified, false},
		{ClaimCompleted, ClaimVerified, true},
		{ClaimCompleted, ClaimAssigned, false},
		{ClaimVerified, ClaimCompleted, false},
		{ClaimVerified, ClaimAssigned, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.ok {
			t.Errorf("%s -> %s: expected %v, got %v", c.from, c.to, c.ok, got)
		}
	}
}

func TestClaimStatusValid(t *testing.T) {
	for _, s := range []ClaimStatus{ClaimAssigned, ClaimCompleted, ClaimVerified} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if ClaimStatus("open").Valid() {
		t.Error("bounty-level status must not validate as claim status")
	}
}
