package seeder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/edusync-app/school-service/internal/grading"
	"github.com/edusync-app/school-service/internal/models"
)

// Subjects taught by seeded teachers, assigned in rotation.
var Subjects = []string{
	"Mathematics",
	"English Literature",
	"Physics",
	"Chemistry",
	"History",
}

// subjectGradeAffinity maps a subject to the grades its teachers favor.
// A subject without an explicit rule defaults to all four grades.
var subjectGradeAffinity = map[string][]int{
	"Mathematics": {11, 12, 10},
	"Physics":     {11, 12},
	"Chemistry":   {10, 11},
}

var allGrades = []int{9, 10, 11, 12}

// SubjectForTeacher cycles through the subject list by teacher index.
func SubjectForTeacher(index int) string {
	return Subjects[index%len(Subjects)]
}

// TargetGrades returns the grades a teacher of the subject is linked to.
func TargetGrades(subject string) []int {
	if grades, ok := subjectGradeAffinity[subject]; ok {
		return grades
	}
	return allGrades
}

// GradeForStudent buckets a student index into the four grade levels:
// three students per grade, clamped so overflow lands in grade 12.
func GradeForStudent(index int) int {
	bucket := index / 3
	if bucket > 3 {
		bucket = 3
	}
	return 9 + bucket
}

// SectionForStudent assigns sections A, B, C by index modulo 3.
func SectionForStudent(index int) string {
	return string(rune('A' + index%3))
}

// RollNumber synthesizes the deterministic roll number
// S<grade><section><zero-padded sequence>.
func RollNumber(grade int, section string, seq int) string {
	return fmt.Sprintf("S%d%s%02d", grade, section, seq)
}

// AssignmentTypes drawn from when generating course assignments.
var AssignmentTypes = []string{
	"Quiz", "Homework", "Project", "Essay", "Presentation", "Lab Report", "Research Paper",
}

var assignmentDescriptions = map[string]string{
	"Quiz":           "Short in-class quiz covering the most recent unit of %s.",
	"Homework":       "Problem set to be completed at home for %s.",
	"Project":        "Multi-week project applying concepts from %s; includes a written report.",
	"Essay":          "Structured essay on an assigned topic from %s.",
	"Presentation":   "Prepare and deliver a short presentation for %s.",
	"Lab Report":     "Write up the procedure, observations and conclusions of the %s lab.",
	"Research Paper": "Independent research paper with cited sources for %s.",
}

// AssignmentDescription returns the templated description for a type.
func AssignmentDescription(assignmentType, courseName string) string {
	tmpl, ok := assignmentDescriptions[assignmentType]
	if !ok {
		tmpl = "Assignment for %s."
	}
	return fmt.Sprintf(tmpl, courseName)
}

// AssignmentDueDate walks forward one month per assignment index from the
// base month, carrying overflow into the next year, with a random day of
// month in [10,25).
func AssignmentDueDate(baseYear int, baseMonth time.Month, index int, rnd *rand.Rand) time.Time {
	month := int(baseMonth) + index
	year := baseYear
	for month > 12 {
		month -= 12
		year++
	}
	day := 10 + rnd.Intn(15)
	return time.Date(year, time.Month(month), day, 23, 59, 0, 0, time.UTC)
}

// AssignmentOutcome is the derived state of one student/assignment pair.
type AssignmentOutcome struct {
	Status      models.AssignmentStatus
	Grade       *string
	SubmittedAt *time.Time
}

// OutcomeForAssignment resolves status, grade and submission date from one
// random draw, branching on whether the due date is already past now.
//
// Past due: <0.80 completed (random letter grade, submitted 0-6 days before
// due), <0.90 pending (submitted 1-5 days late), else not_started.
// Not yet due: <0.50 pending, <0.85 not_started, else an early completion.
func OutcomeForAssignment(rnd *rand.Rand, due, now time.Time) AssignmentOutcome {
	randomFactor := rnd.Float64()

	if due.Before(now) {
		switch {
		case randomFactor < 0.8:
			letter := grading.Letters[rnd.Intn(len(grading.Letters))]
			submitted := due.AddDate(0, 0, -rnd.Intn(7))
			return AssignmentOutcome{
				Status:      models.AssignmentCompleted,
				Grade:       &letter,
				SubmittedAt: &submitted,
			}
		case randomFactor < 0.9:
			submitted := due.AddDate(0, 0, 1+rnd.Intn(5))
			return AssignmentOutcome{
				Status:      models.AssignmentPending,
				SubmittedAt: &submitted,
			}
		default:
			return AssignmentOutcome{Status: models.AssignmentNotStarted}
		}
	}

	switch {
	case randomFactor < 0.5:
		submitted := now.AddDate(0, 0, -rnd.Intn(3))
		return AssignmentOutcome{
			Status:      models.AssignmentPending,
			SubmittedAt: &submitted,
		}
	case randomFactor < 0.85:
		return AssignmentOutcome{Status: models.AssignmentNotStarted}
	default:
		letter := grading.Letters[rnd.Intn(len(grading.Letters))]
		submitted := now
		return AssignmentOutcome{
			Status:      models.AssignmentCompleted,
			Grade:       &letter,
			SubmittedAt: &submitted,
		}
	}
}

var absenceReasons = []string{
	"Sick leave reported by parent",
	"Family emergency",
	"Medical appointment",
	"Travel with family",
}

var latenessNotes = []string{
	"Bus arrived late",
	"Traffic delay",
	"Overslept",
	"Late drop-off",
}

// AttendanceOutcome draws a status and an optional note: present 90%,
// then absent for 70% of the remainder, else late.
func AttendanceOutcome(rnd *rand.Rand) (models.AttendanceStatus, *string) {
	if rnd.Float64() < 0.9 {
		return models.AttendancePresent, nil
	}
	if rnd.Float64() < 0.7 {
		note := absenceReasons[rnd.Intn(len(absenceReasons))]
		return models.AttendanceAbsent, &note
	}
	note := latenessNotes[rnd.Intn(len(latenessNotes))]
	return models.AttendanceLate, &note
}

// TermGrade picks a random base letter, converts it to its numeric anchor,
// optionally boosts it by up to +7 to simulate improvement in the most
// recent term, and converts back through the 90/80/70/60 cutoffs.
func TermGrade(rnd *rand.Rand, boost bool) string {
	base := grading.Letters[rnd.Intn(len(grading.Letters))]
	score := grading.ToNumeric(base)
	if boost {
		score = grading.Improve(score, rnd.Float64()*7)
	}
	return grading.FromNumeric(score)
}

// ClassCourseTarget draws the per-class course target in [4,6].
func ClassCourseTarget(rnd *rand.Rand) int {
	return 4 + rnd.Intn(3)
}

// AssignmentTakeRate draws the per-student share of eligible assignments
// in [0.7, 0.9).
func AssignmentTakeRate(rnd *rand.Rand) float64 {
	return 0.7 + rnd.Float64()*0.2
}

// SubjectForCourse maps a course to a teaching subject by substring match
// on the course name; ok is false when no subject matches.
func SubjectForCourse(courseName string) (string, bool) {
	for _, subject := range Subjects {
		if strings.Contains(courseName, subjectKeyword(subject)) {
			return subject, true
		}
	}
	return "", false
}

func subjectKeyword(subject string) string {
	switch subject {
	case "Mathematics":
		return "Math"
	case "English Literature":
		return "English"
	default:
		return subject
	}
}
