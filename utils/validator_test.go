package utils

import (
	"strings"
	"testing"
)

type sampleInput struct {
	Title  string `validate:"required,titleok"`
	Status string `validate:"oneof=open|assigned|completed"`
	Notes  string
}

func TestValidateStructRequired(t *testing.T) {
	if err := ValidateStruct(&sampleInput{Title: "Fix the laser cutter"}); err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}
	if err := ValidateStruct(&sampleInput{}); err == nil {
		t.Fatal("missing required field should fail")
	}
}

func TestValidateStructTitleOK(t *testing.T) {
	long := strings.Repeat("x", 151)
	if err := ValidateStruct(&sampleInput{Title: long}); err == nil {
		t.Fatal("overlong title should fail")
	}
	if err := ValidateStruct(&sampleInput{Title: "tabs\tare fine"}); err == nil {
		t.Fatal("control characters should fail")
	}
}

func TestValidateStructOneOf(t *testing.T) {
	if err := ValidateStruct(&sampleInput{Title: "ok", Status: "assigned"}); err != nil {
		t.Fatalf("listed value rejected: %v", err)
	}
	if err := ValidateStruct(&sampleInput{Title: "ok", Status: "archived"}); err == nil {
		t.Fatal("unlisted value should fail")
	}
	// empty is allowed; oneof only constrains provided values
	if err := ValidateStruct(&sampleInput{Title: "ok"}); err != nil {
		t.Fatalf("empty oneof value rejected: %v", err)
	}
}

func TestValidateStructNonStruct(t *testing.T) {
	if err := ValidateStruct("nope"); err == nil {
		t.Fatal("non-struct input should fail")
	}
}
