// Package grading holds the weighted-average policy used for final scores.
// It is pure: bounds checking happens where scores are recorded, not here.
package grading

import "math"

// Component weights of the final score.
const (
	AttendanceWeight = 0.30
	HomeworkWeight   = 0.50
	ExamWeight       = 0.20
)

// FinalScore combines the three component scores into the weighted average,
// rounded to two decimal places for display.
func FinalScore(attendance, homework, exam float64) float64 {
	raw := attendance*AttendanceWeight + homework*HomeworkWeight + exam*ExamWeight
	return math.Round(raw*100) / 100
}

// InBounds reports whether a single component score lies inside the accepted
// [0, 10] range.
func InBounds(score float64) bool {
	return score >= 0 && score <= 10
}
