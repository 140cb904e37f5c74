package seeder

import (
	"math/rand"
	"testing"
	"time"

	"github.com/edusync-app/school-service/internal/models"
)

func TestSubjectForTeacher(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"first teacher", 0, "Mathematics"},
		{"second teacher", 1, "English Literature"},
		{"fifth teacher", 4, "History"},
		{"wraps around", 5, "Mathematics"},
		{"wraps twice", 11, "English Literature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubjectForTeacher(tt.index); got != tt.want {
				t.Errorf("SubjectForTeacher(%d) = %q, want %q", tt.index, got, tt.want)
			}
		})
	}
}

func TestTargetGrades(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    []int
	}{
		{"mathematics preference order", "Mathematics", []int{11, 12, 10}},
		{"physics upper grades", "Physics", []int{11, 12}},
		{"chemistry middle grades", "Chemistry", []int{10, 11}},
		{"unlisted subject gets all grades", "History", []int{9, 10, 11, 12}},
		{"unknown subject gets all grades", "Astronomy", []int{9, 10, 11, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TargetGrades(tt.subject)
			if len(got) != len(tt.want) {
				t.Fatalf("TargetGrades(%q) = %v, want %v", tt.subject, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("TargetGrades(%q)[%d] = %d, want %d", tt.subject, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGradeForStudent(t *testing.T) {
	tests := []struct {
		index int
		want  int
	}{
		{0, 9}, {1, 9}, {2, 9},
		{3, 10}, {4, 10}, {5, 10},
		{6, 11}, {7, 11}, {8, 11},
		{9, 12},
		{15, 12}, // overflow clamps into the top grade
	}
	for _, tt := range tests {
		if got := GradeForStudent(tt.index); got != tt.want {
			t.Errorf("GradeForStudent(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestSectionForStudent(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"}, {1, "B"}, {2, "C"}, {3, "A"}, {7, "B"},
	}
	for _, tt := range tests {
		if got := SectionForStudent(tt.index); got != tt.want {
			t.Errorf("SectionForStudent(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestRollNumber(t *testing.T) {
	tests := []struct {
		grade   int
		section string
		seq     int
		want    string
	}{
		{9, "A", 1, "S9A01"},
		{10, "C", 7, "S10C07"},
		{12, "A", 12, "S12A12"},
	}
	for _, tt := range tests {
		if got := RollNumber(tt.grade, tt.section, tt.seq); got != tt.want {
			t.Errorf("RollNumber(%d, %q, %d) = %q, want %q", tt.grade, tt.section, tt.seq, got, tt.want)
		}
	}
}

func TestAssignmentDueDateOverflow(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	tests := []struct {
		name      string
		index     int
		wantYear  int
		wantMonth time.Month
	}{
		{"first assignment stays in base month", 0, 2025, time.September},
		{"third assignment", 2, 2025, time.November},
		{"overflow past december rolls the year", 4, 2026, time.January},
		{"deep overflow", 9, 2026, time.June},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignmentDueDate(2025, time.September, tt.index, rnd)
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth {
				t.Errorf("AssignmentDueDate(index=%d) = %s, want %d-%s",
					tt.index, got.Format("2006-01-02"), tt.wantYear, tt.wantMonth)
			}
			if got.Day() < 10 || got.Day() >= 25 {
				t.Errorf("day of month %d outside [10,25)", got.Day())
			}
		})
	}
}

func TestOutcomeForAssignmentPastDue(t *testing.T) {
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)

	// Over many draws the past-due branch must produce all three statuses
	// with completions dominating, and every completion must carry a grade
	// and a submission at or before due.
	rnd := rand.New(rand.NewSource(42))
	counts := map[models.AssignmentStatus]int{}
	for i := 0; i < 2000; i++ {
		outcome := OutcomeForAssignment(rnd, due, now)
		counts[outcome.Status]++

		switch outcome.Status {
		case models.AssignmentCompleted:
			if outcome.Grade == nil {
				t.Fatal("completed outcome without a grade")
			}
			if outcome.SubmittedAt == nil || outcome.SubmittedAt.After(due) {
				t.Fatalf("completed submission %v not at or before due %v", outcome.SubmittedAt, due)
			}
		case models.AssignmentPending:
			if outcome.Grade != nil {
				t.Fatal("pending outcome carries a grade")
			}
			if outcome.SubmittedAt == nil || !outcome.SubmittedAt.After(due) {
				t.Fatalf("late pending submission %v not after due %v", outcome.SubmittedAt, due)
			}
		case models.AssignmentNotStarted:
			if outcome.Grade != nil || outcome.SubmittedAt != nil {
				t.Fatal("not_started outcome carries grade or submission")
			}
		}
	}

	total := counts[models.AssignmentCompleted] + counts[models.AssignmentPending] + counts[models.AssignmentNotStarted]
	if total != 2000 {
		t.Fatalf("unexpected status produced, total known = %d", total)
	}
	if c := counts[models.AssignmentCompleted]; c < 1400 || c > 1800 {
		t.Errorf("completed count %d far from the 80%% rate", c)
	}
}

func TestOutcomeForAssignmentFuture(t *testing.T) {
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

	rnd := rand.New(rand.NewSource(7))
	counts := map[models.AssignmentStatus]int{}
	for i := 0; i < 2000; i++ {
		outcome := OutcomeForAssignment(rnd, due, now)
		counts[outcome.Status]++
		if outcome.Status == models.AssignmentCompleted && outcome.Grade == nil {
			t.Fatal("early completion without a grade")
		}
	}

	if c := counts[models.AssignmentPending]; c < 850 || c > 1150 {
		t.Errorf("pending count %d far from the 50%% rate", c)
	}
	if c := counts[models.AssignmentNotStarted]; c < 550 || c > 850 {
		t.Errorf("not_started count %d far from the 35%% rate", c)
	}
	if c := counts[models.AssignmentCompleted]; c < 180 || c > 420 {
		t.Errorf("completed count %d far from the 15%% rate", c)
	}
}

func TestAttendanceOutcomeDistribution(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	counts := map[models.AttendanceStatus]int{}
	for i := 0; i < 5000; i++ {
		status, note := AttendanceOutcome(rnd)
		counts[status]++
		if status == models.AttendancePresent && note != nil {
			t.Fatal("present outcome carries a note")
		}
		if status != models.AttendancePresent && note == nil {
			t.Fatalf("%s outcome missing its note", status)
		}
	}

	if c := counts[models.AttendancePresent]; c < 4300 || c > 4700 {
		t.Errorf("present count %d far from the 90%% rate", c)
	}
	// Absences take 70% of the non-present remainder.
	if counts[models.AttendanceAbsent] <= counts[models.AttendanceLate] {
		t.Errorf("absent (%d) should outnumber late (%d)",
			counts[models.AttendanceAbsent], counts[models.AttendanceLate])
	}
}

func TestTermGrade(t *testing.T) {
	rnd := rand.New(rand.NewSource(9))

	valid := map[string]bool{"A": true, "B": true, "C": true, "D": true, "F": true}
	for i := 0; i < 500; i++ {
		if letter := TermGrade(rnd, false); !valid[letter] {
			t.Fatalf("unboosted TermGrade produced %q", letter)
		}
		if letter := TermGrade(rnd, true); !valid[letter] {
			t.Fatalf("boosted TermGrade produced %q", letter)
		}
	}
}

func TestClassCourseTargetRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		if got := ClassCourseTarget(rnd); got < 4 || got > 6 {
			t.Fatalf("ClassCourseTarget = %d, want in [4,6]", got)
		}
	}
}

func TestAssignmentTakeRateRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	for i := 0; i < 200; i++ {
		if got := AssignmentTakeRate(rnd); got < 0.7 || got >= 0.9 {
			t.Fatalf("AssignmentTakeRate = %f, want in [0.7, 0.9)", got)
		}
	}
}

func TestSubjectForCourse(t *testing.T) {
	tests := []struct {
		name   string
		course string
		want   string
		wantOK bool
	}{
		{"math by keyword", "Mathematics I", "Mathematics", true},
		{"advanced math", "Advanced Mathematics", "Mathematics", true},
		{"english by keyword", "English Literature", "English Literature", true},
		{"physics exact", "Physics", "Physics", true},
		{"advanced physics", "Advanced Physics", "Physics", true},
		{"chemistry exact", "Chemistry", "Chemistry", true},
		{"history exact", "History", "History", true},
		{"no subject", "Computer Science", "", false},
		{"no subject geography", "Geography", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SubjectForCourse(tt.course)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("SubjectForCourse(%q) = (%q, %v), want (%q, %v)",
					tt.course, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
