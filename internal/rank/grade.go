package rank

// gradeThresholds is the single source of truth for letter grades.
// Every caller that needs a grade goes through GradeFor; the
// thresholds are not repeated anywhere else.
var gradeThresholds = []struct {
	min   int
	grade string
}{
	{85, "A"},
	{70, "B"},
	{55, "C"},
	{40, "D"},
}

func GradeFor(total int) string {
	for _, t := range gradeThresholds {
		if total >= t.min {
			return t.grade
		}
	}
	return "F"
}
