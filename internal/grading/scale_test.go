package grading

import "testing"

func TestLetterRoundTrip(t *testing.T) {
	for _, letter := range Letters {
		if got := FromNumeric(ToNumeric(letter)); got != letter {
			t.Errorf("round trip for %q: got %q", letter, got)
		}
	}
}

func TestFromNumeric(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{name: "top of scale", score: 100, want: "A"},
		{name: "A cutoff", score: 90, want: "A"},
		{name: "just below A", score: 89.9, want: "B"},
		{name: "B cutoff", score: 80, want: "B"},
		{name: "C cutoff", score: 70, want: "C"},
		{name: "D cutoff", score: 60, want: "D"},
		{name: "failing", score: 59.9, want: "F"},
		{name: "zero", score: 0, want: "F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromNumeric(tt.score); got != tt.want {
				t.Errorf("FromNumeric(%v) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestToNumericUnknownLetter(t *testing.T) {
	if got := ToNumeric("Z"); got != 55 {
		t.Errorf("unknown letter should map to failing anchor, got %v", got)
	}
}

func TestImprove(t *testing.T) {
	if got := Improve(85, 7); got != 92 {
		t.Errorf("Improve(85, 7) = %v, want 92", got)
	}
	if got := Improve(98, 7); got != 100 {
		t.Errorf("Improve must cap at 100, got %v", got)
	}
}
