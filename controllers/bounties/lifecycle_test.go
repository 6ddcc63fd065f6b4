package bounties

import (
	"errors"
	"testing"

	"forgespace/services"
)

func TestParseActionRequest(t *testing.T) {
	id, action, err := ParseActionRequest("42", "verify")
	if err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if id != 42 || action != "verify" {
		t.Fatalf("got id=%d action=%q", id, action)
	}
}

func TestParseActionRequestTrimsWhitespace(t *testing.T) {
	id, action, err := ParseActionRequest(" 7 ", " claim ")
	if err != nil {
		t.Fatalf("padded request rejected: %v", err)
	}
	if id != 7 || action != "claim" {
		t.Fatalf("got id=%d action=%q", id, action)
	}
}

func TestParseActionRequestRejectsUnknownAction(t *testing.T) {
	for _, action := range []string{"", "delete", "Verify", "verify claim"} {
		if _, _, err := ParseActionRequest("1", action); err == nil {
			t.Errorf("action %q should be rejected", action)
		}
	}
}

func TestParseActionRequestRejectsBadID(t *testing.T) {
	for _, raw := range []string{"", "0", "-3", "abc", "1.5"} {
		_, _, err := ParseActionRequest(raw, "assign")
		if err == nil {
			t.Errorf("bounty id %q should be rejected", raw)
			continue
		}
		var vErr *services.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("bounty id %q: expected ValidationError, got %T", raw, err)
		}
	}
}

func TestParseActionRequestKnowsEveryClaimAction(t *testing.T) {
	for _, action := range []string{"claim", "submitClaim", "verifyClaim", "clawbackClaim"} {
		if _, got, err := ParseActionRequest("3", action); err != nil || got != action {
			t.Errorf("action %q should be accepted, got %q (%v)", action, got, err)
		}
	}
}
