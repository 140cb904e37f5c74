// Package grading converts between letter grades and representative
// numeric scores using the school's fixed band table.
package grading

// Letters in descending band order.
var Letters = []string{"A", "B", "C", "D", "F"}

// Representative numeric anchor per letter. Chosen as band midpoints so
// that FromNumeric(ToNumeric(l)) == l for every letter.
var anchors = map[string]float64{
	"A": 95,
	"B": 85,
	"C": 75,
	"D": 65,
	"F": 55,
}

// ToNumeric returns the representative numeric value for a letter grade.
// Unknown letters map to the failing anchor.
func ToNumeric(letter string) float64 {
	if v, ok := anchors[letter]; ok {
		return v
	}
	return anchors["F"]
}

// FromNumeric converts a numeric score back to a letter using the
// 90/80/70/60 cutoffs.
func FromNumeric(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// Improve raises a numeric score by boost, capped at 100.
func Improve(score, boost float64) float64 {
	score += boost
	if score > 100 {
		return 100
	}
	return score
}
