package grading

import (
	"math"
	"testing"
)

func TestFinalScore(t *testing.T) {
	tests := []struct {
		name       string
		attendance float64
		homework   float64
		exam       float64
		want       float64
	}{
		{name: "documented example", attendance: 8, homework: 9, exam: 7, want: 8.30},
		{name: "biology scenario", attendance: 10, homework: 8, exam: 6, want: 8.20},
		{name: "all zero", attendance: 0, homework: 0, exam: 0, want: 0},
		{name: "all max", attendance: 10, homework: 10, exam: 10, want: 10},
		{name: "rounding up", attendance: 3.33, homework: 3.33, exam: 3.33, want: 3.33},
		{name: "homework dominates", attendance: 0, homework: 10, exam: 0, want: 5},
		{name: "fractional components", attendance: 7.25, homework: 8.5, exam: 9.75, want: 8.38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalScore(tt.attendance, tt.homework, tt.exam)
			if got != tt.want {
				t.Errorf("FinalScore(%v, %v, %v) = %v, want %v", tt.attendance, tt.homework, tt.exam, got, tt.want)
			}
		})
	}
}

func TestFinalScore_MatchesFormula(t *testing.T) {
	// Spot-check the rounding contract across the full domain.
	for a := 0.0; a <= 10; a += 2.5 {
		for h := 0.0; h <= 10; h += 2.5 {
			for e := 0.0; e <= 10; e += 2.5 {
				want := math.Round((a*0.3+h*0.5+e*0.2)*100) / 100
				if got := FinalScore(a, h, e); got != want {
					t.Fatalf("FinalScore(%v, %v, %v) = %v, want %v", a, h, e, got, want)
				}
			}
		}
	}
}

func TestInBounds(t *testing.T) {
	tests := []struct {
		score float64
		want  bool
	}{
		{0, true},
		{10, true},
		{5.5, true},
		{-0.01, false},
		{10.01, false},
	}
	for _, tt := range tests {
		if got := InBounds(tt.score); got != tt.want {
			t.Errorf("InBounds(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
