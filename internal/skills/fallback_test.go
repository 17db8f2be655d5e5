// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package skills

import (
	"reflect"
	"testing"
)

func TestFallback_Deterministic(t *testing.T) {
	first := Fallback("Registered Nurse")
	for i := 0; i < 5; i++ {
		again := Fallback("Registered Nurse")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Fallback not deterministic: call %d returned %v, want %v", i, again, first)
		}
	}

	if first[0] != "Patient Care" {
		t.Errorf("Expected nurse category list, got %v", first)
	}
}

func TestFallback_CaseInsensitive(t *testing.T) {
	upper := Fallback("SENIOR SOFTWARE ENGINEER")
	lower := Fallback("senior software engineer")
	if !reflect.DeepEqual(upper, lower) {
		t.Errorf("Expected case-insensitive match, got %v vs %v", upper, lower)
	}
	if upper[0] != "Problem Solving" {
		t.Errorf("Expected developer category list, got %v", upper)
	}
}

func TestFallback_FirstMatchWins(t *testing.T) {
	// "Nursing Manager" matches both nurse and manager; nurse is checked first.
	got := Fallback("Nursing Manager")
	if got[0] != "Patient Care" {
		t.Errorf("Expected nurse category to win, got %v", got)
	}
}

func TestFallback_EmptyTitleReturnsGeneric(t *testing.T) {
	got := Fallback("")
	if !reflect.DeepEqual(got, Generic()) {
		t.Errorf("Expected generic list for empty title, got %v", got)
	}
	if len(got) != 4 {
		t.Errorf("Expected 4 generic skills, got %d", len(got))
	}
}

func TestFallback_UnknownTitleReturnsGeneric(t *testing.T) {
	got := Fallback("Marine Biologist")
	if !reflect.DeepEqual(got, Generic()) {
		t.Errorf("Expected generic list for unmatched title, got %v", got)
	}
}

func TestFallback_CallerCannotMutateTables(t *testing.T) {
	got := Fallback("Nurse")
	got[0] = "mutated"

	again := Fallback("Nurse")
	if again[0] != "Patient Care" {
		t.Errorf("Mutating a returned list leaked into the shared table: %v", again)
	}
}
