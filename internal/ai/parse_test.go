// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"reflect"
	"testing"
)

func TestParseSkills_JSONArray(t *testing.T) {
	text := `["Patient Care", "Team Collaboration", "Triage"]`
	got := ParseSkills(text)
	want := []string{"Patient Care", "Team Collaboration", "Triage"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSkills(%q) = %v, want %v", text, got, want)
	}
}

func TestParseSkills_JSONArrayWithSurroundingText(t *testing.T) {
	text := "Here are the skills:\n[\"Go\", \"SQL\"]\nHope that helps!"
	got := ParseSkills(text)
	want := []string{"Go", "SQL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSkills = %v, want %v", got, want)
	}
}

func TestParseSkills_CommaFallback(t *testing.T) {
	text := "Communication, Leadership,  Budgeting , "
	got := ParseSkills(text)
	want := []string{"Communication", "Leadership", "Budgeting"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSkills(%q) = %v, want %v", text, got, want)
	}
}

func TestParseSkills_MalformedArrayFallsBackToCommas(t *testing.T) {
	// Broken JSON still contains commas, so the comma path picks it up.
	text := `["Go", "SQL"`
	got := ParseSkills(text)
	if len(got) == 0 {
		t.Errorf("Expected comma fallback to produce something, got nothing")
	}
}

func TestParseSkills_EmptyInput(t *testing.T) {
	if got := ParseSkills(""); got != nil {
		t.Errorf("ParseSkills(\"\") = %v, want nil", got)
	}
}
