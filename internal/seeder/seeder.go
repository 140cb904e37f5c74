// Package seeder populates an empty relational schema with an internally
// consistent demo dataset, inside one all-or-nothing transaction.
package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
	"github.com/edusync-app/school-service/internal/utils"
)

// teacherClassBudget caps how many classes a single teacher is linked to.
const teacherClassBudget = 3

// attendanceDays is the number of school days attendance is generated for.
const attendanceDays = 30

// Seeder generates the demo dataset. It runs once, single-threaded, on
// one connection. There is no retry logic; the operator re-runs after
// fixing the underlying issue.
type Seeder struct {
	db     *gorm.DB
	repo   repositories.Repository
	rnd    *rand.Rand
	logger utils.Logger
	now    func() time.Time

	// caps, when non-nil, replaces the live schema probe.
	caps *SchemaCapabilities
}

func New(db *gorm.DB, repo repositories.Repository, rnd *rand.Rand, logger utils.Logger) *Seeder {
	return &Seeder{
		db:     db,
		repo:   repo,
		rnd:    rnd,
		logger: logger,
		now:    time.Now,
	}
}

// Summary reports how many rows each stage inserted.
type Summary struct {
	Schools            int `json:"schools"`
	AcademicYears      int `json:"academic_years"`
	Terms              int `json:"terms"`
	Users              int `json:"users"`
	Teachers           int `json:"teachers"`
	Students           int `json:"students"`
	Classes            int `json:"classes"`
	Courses            int `json:"courses"`
	TeacherClassLinks  int `json:"teacher_class_links"`
	ClassCourseLinks   int `json:"class_course_links"`
	Assignments        int `json:"assignments"`
	StudentAssignments int `json:"student_assignments"`
	Notifications      int `json:"notifications"`
	NotificationFanOut int `json:"notification_fan_out"`
	CalendarEvents     int `json:"calendar_events"`
	EventParticipants  int `json:"event_participants"`
	AttendanceRows     int `json:"attendance_rows"`
	GradeRows          int `json:"grade_rows"`
}

// runState threads stage outputs into later stages.
type runState struct {
	caps    SchemaCapabilities
	summary Summary

	currentYear *models.AcademicYear
	terms       []*models.Term // ordered most recent first

	adminIDs   []uint
	teacherIDs []uint
	studentIDs []uint
	staffIDs   []uint
	allUserIDs []uint

	teachers []*models.Teacher
	students []*models.Student
	classes  []*models.Class
	courses  []*models.Course

	// classTeachers maps class id -> teachers linked in stage 7.
	classTeachers map[uint][]*models.Teacher
	// courseTeacher maps course id -> teacher of record (first credited).
	courseTeacher map[uint]*models.Teacher
	// gradeCourses maps grade -> course ids taught to that grade.
	gradeCourses map[int][]uint

	assignments []*models.Assignment
}

// Run executes all stages inside one transaction. Any stage error rolls
// the entire batch back; no partial seed data survives. Duplicate
// join-table rows are expected under randomized fill and are skipped, not
// raised.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	caps := s.resolveCapabilities()
	s.logger.Info("schema capabilities resolved",
		"notification_priority", caps.NotificationPriority)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return Summary{}, fmt.Errorf("hash demo password: %w", err)
	}

	state := &runState{
		caps:          caps,
		classTeachers: make(map[uint][]*models.Teacher),
		courseTeacher: make(map[uint]*models.Teacher),
		gradeCourses:  make(map[int][]uint),
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		type stage struct {
			name string
			fn   func(context.Context, repositories.Repository, *runState) error
		}
		stages := []stage{
			{"school", s.seedSchool},
			{"academic calendar", s.seedAcademicCalendar},
			{"users", func(ctx context.Context, tx repositories.Repository, st *runState) error {
				return s.seedUsers(ctx, tx, st, string(passwordHash))
			}},
			{"teachers", s.seedTeachers},
			{"students", s.seedStudents},
			{"classes and courses", s.seedClassesAndCourses},
			{"teacher-class links", s.seedTeacherClassLinks},
			{"class-course links", s.seedClassCourseLinks},
			{"assignments", s.seedAssignments},
			{"student assignments", s.seedStudentAssignments},
			{"notifications", s.seedNotifications},
			{"calendar events", s.seedCalendarEvents},
			{"attendance", s.seedAttendance},
			{"grades", s.seedGrades},
		}

		for i, st := range stages {
			if err := st.fn(ctx, tx, state); err != nil {
				return fmt.Errorf("stage %d (%s): %w", i+1, st.name, err)
			}
			s.logger.Info("stage complete", "stage", i+1, "name", st.name)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	return state.summary, nil
}

func (s *Seeder) resolveCapabilities() SchemaCapabilities {
	if s.caps != nil {
		return *s.caps
	}
	return ProbeCapabilities(s.db)
}

// ===== STAGE 1: SCHOOL =====

func (s *Seeder) seedSchool(ctx context.Context, tx repositories.Repository, state *runState) error {
	school := schoolFixture()
	if err := tx.Academic().CreateSchool(ctx, school); err != nil {
		return err
	}
	state.summary.Schools = 1
	return nil
}

// ===== STAGE 2: ACADEMIC YEARS AND TERMS =====

func (s *Seeder) seedAcademicCalendar(ctx context.Context, tx repositories.Repository, state *runState) error {
	for _, year := range academicYearFixtures() {
		if err := tx.Academic().CreateYear(ctx, year); err != nil {
			return err
		}
		state.summary.AcademicYears++
		if year.IsCurrent {
			state.currentYear = year
		}
	}
	if state.currentYear == nil {
		return fmt.Errorf("no academic year marked current")
	}

	for _, term := range termFixtures(state.currentYear.ID) {
		if err := tx.Academic().CreateTerm(ctx, term); err != nil {
			return err
		}
		state.summary.Terms++
		state.terms = append(state.terms, term)
	}
	// Most recent term first; stage 14 boosts index 0.
	for i, j := 0, len(state.terms)-1; i < j; i, j = i+1, j-1 {
		state.terms[i], state.terms[j] = state.terms[j], state.terms[i]
	}
	return nil
}

// ===== STAGE 3: USERS =====

func (s *Seeder) seedUsers(ctx context.Context, tx repositories.Repository, state *runState, passwordHash string) error {
	batches := []struct {
		fixtures []userFixture
		ids      *[]uint
	}{
		{adminUserFixtures, &state.adminIDs},
		{teacherUserFixtures, &state.teacherIDs},
		{studentUserFixtures, &state.studentIDs},
		{staffUserFixtures, &state.staffIDs},
	}

	for _, batch := range batches {
		users := make([]*models.User, 0, len(batch.fixtures))
		for _, f := range batch.fixtures {
			users = append(users, &models.User{
				Name:         f.Name,
				Email:        f.Email,
				PasswordHash: passwordHash,
				Role:         f.Role,
			})
		}
		if err := tx.User().CreateBatch(ctx, users); err != nil {
			return err
		}
		for _, u := range users {
			*batch.ids = append(*batch.ids, u.ID)
			state.allUserIDs = append(state.allUserIDs, u.ID)
		}
		state.summary.Users += len(users)
	}
	return nil
}

// ===== STAGE 4: TEACHERS =====

func (s *Seeder) seedTeachers(ctx context.Context, tx repositories.Repository, state *runState) error {
	for i, userID := range state.teacherIDs {
		teacher := &models.Teacher{
			UserID:  userID,
			Subject: SubjectForTeacher(i),
		}
		if err := tx.Teacher().Create(ctx, teacher); err != nil {
			return err
		}
		state.teachers = append(state.teachers, teacher)
		state.summary.Teachers++
	}
	return nil
}

// ===== STAGE 5: STUDENTS =====

func (s *Seeder) seedStudents(ctx context.Context, tx repositories.Repository, state *runState) error {
	// Sequence numbers restart per (grade, section).
	seq := make(map[string]int)

	for i, userID := range state.studentIDs {
		grade := GradeForStudent(i)
		section := SectionForStudent(i)
		key := fmt.Sprintf("%d%s", grade, section)
		seq[key]++

		student := &models.Student{
			UserID:               userID,
			RollNumber:           RollNumber(grade, section, seq[key]),
			Grade:                grade,
			Section:              section,
			AttendancePercentage: 85 + s.rnd.Float64()*15,
		}
		if err := tx.Student().Create(ctx, student); err != nil {
			return err
		}
		state.students = append(state.students, student)
		state.summary.Students++
	}
	return nil
}

// ===== STAGE 6: CLASSES AND COURSES =====

func (s *Seeder) seedClassesAndCourses(ctx context.Context, tx repositories.Repository, state *runState) error {
	for _, f := range classFixtures {
		class := &models.Class{
			Name:           fmt.Sprintf("Grade %d%s", f.Grade, f.Section),
			Grade:          f.Grade,
			Section:        f.Section,
			AcademicYearID: state.currentYear.ID,
		}
		if err := tx.Class().CreateClass(ctx, class); err != nil {
			return err
		}
		state.classes = append(state.classes, class)
		state.summary.Classes++
	}

	for _, f := range courseFixtures {
		desc := f.Desc
		course := &models.Course{
			Name:        f.Name,
			Code:        f.Code,
			Description: &desc,
		}
		if err := tx.Class().CreateCourse(ctx, course); err != nil {
			return err
		}
		state.courses = append(state.courses, course)
		state.summary.Courses++
	}
	return nil
}

// ===== STAGE 7: TEACHER-CLASS LINKS =====

// seedTeacherClassLinks links each teacher to the classes of their
// subject's target grades. The per-teacher cap is counted explicitly:
// linking stops once the teacher has `teacherClassBudget` classes,
// tie-broken by insertion order. Duplicates are skipped idempotently.
func (s *Seeder) seedTeacherClassLinks(ctx context.Context, tx repositories.Repository, state *runState) error {
	classesByGrade := make(map[int][]*models.Class)
	for _, class := range state.classes {
		classesByGrade[class.Grade] = append(classesByGrade[class.Grade], class)
	}

	for _, teacher := range state.teachers {
		linked := 0
	grades:
		for _, grade := range TargetGrades(teacher.Subject) {
			for _, class := range classesByGrade[grade] {
				if linked >= teacherClassBudget {
					break grades
				}
				inserted, err := tx.Class().LinkTeacherClass(ctx, &models.TeacherClass{
					TeacherID: teacher.ID,
					ClassID:   class.ID,
				})
				if err != nil {
					return err
				}
				if inserted {
					linked++
					state.summary.TeacherClassLinks++
					state.classTeachers[class.ID] = append(state.classTeachers[class.ID], teacher)
				}
			}
		}
	}
	return nil
}

// ===== STAGE 8: CLASS-COURSE LINKS =====

func (s *Seeder) seedClassCourseLinks(ctx context.Context, tx repositories.Repository, state *runState) error {
	// Map each course to a subject by name; subjects with no matching
	// course fall back to one random course so every subject keeps one.
	coursesBySubject := make(map[string][]*models.Course)
	for _, course := range state.courses {
		if subject, ok := SubjectForCourse(course.Name); ok {
			coursesBySubject[subject] = append(coursesBySubject[subject], course)
		}
	}
	for _, subject := range Subjects {
		if len(coursesBySubject[subject]) == 0 {
			coursesBySubject[subject] = []*models.Course{
				state.courses[s.rnd.Intn(len(state.courses))],
			}
		}
	}

	link := func(class *models.Class, course *models.Course, teacher *models.Teacher) error {
		inserted, err := tx.Class().LinkClassCourse(ctx, &models.ClassCourse{
			ClassID:   class.ID,
			CourseID:  course.ID,
			TeacherID: teacher.ID,
		})
		if err != nil {
			return err
		}
		if inserted {
			state.summary.ClassCourseLinks++
			state.gradeCourses[class.Grade] = appendUnique(state.gradeCourses[class.Grade], course.ID)
			if _, ok := state.courseTeacher[course.ID]; !ok {
				state.courseTeacher[course.ID] = teacher
			}
		}
		return nil
	}

	for _, class := range state.classes {
		linked := make(map[uint]bool)

		// First: courses taught by teachers already assigned to this
		// class, crediting that teacher as instructor of record.
		for _, teacher := range state.classTeachers[class.ID] {
			for _, course := range coursesBySubject[teacher.Subject] {
				if linked[course.ID] {
					continue
				}
				if err := link(class, course, teacher); err != nil {
					return err
				}
				linked[course.ID] = true
			}
		}

		// Then fill up to a random target of 4-6 courses with random
		// course/teacher pairs, attempting each course at most once.
		target := ClassCourseTarget(s.rnd)
		for _, idx := range s.rnd.Perm(len(state.courses)) {
			if len(linked) >= target {
				break
			}
			course := state.courses[idx]
			if linked[course.ID] {
				continue
			}
			teacher := state.teachers[s.rnd.Intn(len(state.teachers))]
			if err := link(class, course, teacher); err != nil {
				return err
			}
			linked[course.ID] = true
		}
	}
	return nil
}

// ===== STAGE 9: ASSIGNMENTS =====

func (s *Seeder) seedAssignments(ctx context.Context, tx repositories.Repository, state *runState) error {
	// Assignment due dates walk forward month by month from here.
	const baseYear = 2025
	const baseMonth = time.September

	teacherUser := make(map[uint]uint, len(state.teachers))
	for _, t := range state.teachers {
		teacherUser[t.ID] = t.UserID
	}

	for _, course := range state.courses {
		teacher := state.courseTeacher[course.ID]
		if teacher == nil {
			// Course reached no class; any teacher owns its assignments.
			teacher = state.teachers[s.rnd.Intn(len(state.teachers))]
		}

		count := 3 + s.rnd.Intn(3)
		for i := 0; i < count; i++ {
			assignmentType := AssignmentTypes[s.rnd.Intn(len(AssignmentTypes))]
			desc := AssignmentDescription(assignmentType, course.Name)
			assignment := &models.Assignment{
				CourseID:    course.ID,
				Title:       fmt.Sprintf("%s %d: %s", assignmentType, i+1, course.Name),
				Description: &desc,
				DueDate:     AssignmentDueDate(baseYear, baseMonth, i, s.rnd),
				CreatedBy:   teacherUser[teacher.ID],
			}
			if err := tx.Assignment().Create(ctx, assignment); err != nil {
				return err
			}
			state.assignments = append(state.assignments, assignment)
			state.summary.Assignments++
		}
	}
	return nil
}

// ===== STAGE 10: STUDENT ASSIGNMENTS =====

func (s *Seeder) seedStudentAssignments(ctx context.Context, tx repositories.Repository, state *runState) error {
	now := s.now()

	for _, student := range state.students {
		eligible := s.eligibleAssignments(state, student.Grade)

		takeRate := AssignmentTakeRate(s.rnd)
		for _, assignment := range eligible {
			if s.rnd.Float64() >= takeRate {
				continue
			}
			outcome := OutcomeForAssignment(s.rnd, assignment.DueDate, now)
			inserted, err := tx.Assignment().CreateStudentAssignment(ctx, &models.StudentAssignment{
				StudentID:    student.ID,
				AssignmentID: assignment.ID,
				Status:       outcome.Status,
				Grade:        outcome.Grade,
				SubmittedAt:  outcome.SubmittedAt,
			})
			if err != nil {
				return err
			}
			if inserted {
				state.summary.StudentAssignments++
			}
		}
	}
	return nil
}

// eligibleAssignments returns the assignments belonging to courses taught
// to the student's grade, falling back to a random 30% sample of all
// assignments when none resolve.
func (s *Seeder) eligibleAssignments(state *runState, grade int) []*models.Assignment {
	courseIDs := make(map[uint]bool)
	for _, id := range state.gradeCourses[grade] {
		courseIDs[id] = true
	}

	var eligible []*models.Assignment
	for _, a := range state.assignments {
		if courseIDs[a.CourseID] {
			eligible = append(eligible, a)
		}
	}
	if len(eligible) > 0 {
		return eligible
	}

	for _, a := range state.assignments {
		if s.rnd.Float64() < 0.3 {
			eligible = append(eligible, a)
		}
	}
	return eligible
}

// ===== STAGE 11: NOTIFICATIONS =====

func (s *Seeder) seedNotifications(ctx context.Context, tx repositories.Repository, state *runState) error {
	for _, f := range notificationFixtures {
		n := &models.Notification{
			Title:    f.Title,
			Message:  f.Message,
			Category: f.Category,
		}
		// The priority column is optional; the capability was probed once
		// before the run instead of failing the whole stage on drift.
		if state.caps.NotificationPriority {
			priority := f.Priority
			n.Priority = &priority
		}
		if err := tx.Notification().Create(ctx, n); err != nil {
			return err
		}
		state.summary.Notifications++

		inserted, err := tx.Notification().FanOut(ctx, n.ID, state.allUserIDs)
		if err != nil {
			return err
		}
		state.summary.NotificationFanOut += inserted
	}
	return nil
}

// ===== STAGE 12: CALENDAR EVENTS =====

func (s *Seeder) seedCalendarEvents(ctx context.Context, tx repositories.Repository, state *runState) error {
	for _, f := range eventFixtures {
		desc := f.Desc
		event := &models.CalendarEvent{
			Title:       f.Title,
			Description: &desc,
			Date:        f.Date,
			AllDay:      f.AllDay,
			Type:        f.Type,
		}
		if f.Start != "" {
			start, end := f.Start, f.End
			event.StartTime = &start
			event.EndTime = &end
		}
		if f.Location != "" {
			location := f.Location
			event.Location = &location
		}
		if err := tx.Notification().CreateEvent(ctx, event); err != nil {
			return err
		}
		state.summary.CalendarEvents++

		inserted, err := tx.Notification().AddParticipants(ctx, event.ID, state.allUserIDs, "going")
		if err != nil {
			return err
		}
		state.summary.EventParticipants += inserted
	}
	return nil
}

// ===== STAGE 13: ATTENDANCE =====

func (s *Seeder) seedAttendance(ctx context.Context, tx repositories.Repository, state *runState) error {
	var days []time.Time
	if state.currentYear != nil && !state.currentYear.StartDate.IsZero() {
		days = SchoolDays(state.currentYear.StartDate, attendanceDays)
	} else {
		days = SchoolDaysBack(s.now(), attendanceDays)
	}

	classByGradeSection := make(map[string]*models.Class)
	for _, class := range state.classes {
		classByGradeSection[fmt.Sprintf("%d%s", class.Grade, class.Section)] = class
	}

	for _, student := range state.students {
		class, ok := classByGradeSection[fmt.Sprintf("%d%s", student.Grade, student.Section)]
		if !ok {
			return fmt.Errorf("no class for grade %d section %s", student.Grade, student.Section)
		}
		for _, day := range days {
			status, note := AttendanceOutcome(s.rnd)
			inserted, err := tx.Records().CreateAttendance(ctx, &models.StudentAttendance{
				StudentID: student.ID,
				ClassID:   class.ID,
				Date:      day,
				Status:    status,
				Note:      note,
			})
			if err != nil {
				return err
			}
			if inserted {
				state.summary.AttendanceRows++
			}
		}
	}
	return nil
}

// ===== STAGE 14: GRADES =====

func (s *Seeder) seedGrades(ctx context.Context, tx repositories.Repository, state *runState) error {
	terms := state.terms
	if len(terms) > 2 {
		terms = terms[:2]
	}

	for _, student := range state.students {
		courseIDs := state.gradeCourses[student.Grade]
		if len(courseIDs) == 0 {
			// No resolvable course list: fall back to the first five
			// global courses.
			for i, course := range state.courses {
				if i >= 5 {
					break
				}
				courseIDs = append(courseIDs, course.ID)
			}
		}

		for termIdx, term := range terms {
			for _, courseID := range courseIDs {
				letter := TermGrade(s.rnd, termIdx == 0)
				inserted, err := tx.Records().CreateGrade(ctx, &models.StudentGrade{
					StudentID: student.ID,
					CourseID:  courseID,
					TermID:    term.ID,
					Grade:     letter,
				})
				if err != nil {
					return err
				}
				if inserted {
					state.summary.GradeRows++
				}
			}
		}
	}
	return nil
}

func appendUnique(ids []uint, id uint) []uint {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
