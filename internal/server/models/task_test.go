package models

import "testing"

func TestNormalizeCompleted(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"boolean true", true, true},
		{"canonical Yes string", "Yes", true},
		{"boolean false", false, false},
		{"lowercase yes", "yes", false},
		{"no string", "no", false},
		{"true spelled out", "true", false},
		{"json number one", float64(1), false},
		{"nil", nil, false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCompleted(tt.in); got != tt.want {
				t.Fatalf("NormalizeCompleted(%#v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidPriority(t *testing.T) {
	for _, ok := range []string{"", PriorityLow, PriorityMedium, PriorityHigh} {
		if !ValidPriority(ok) {
			t.Fatalf("ValidPriority(%q) = false, want true", ok)
		}
	}
	for _, bad := range []string{"urgent", "LOW", "High", "none"} {
		if ValidPriority(bad) {
			t.Fatalf("ValidPriority(%q) = true, want false", bad)
		}
	}
}
