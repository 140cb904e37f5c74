package seeder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
	"github.com/edusync-app/school-service/internal/utils"
)

// ===== IN-MEMORY REPOSITORY =====

// fakeStore backs every sub-repository of fakeRepo. It assigns IDs the
// way the database would and records insert calls in order, so tests can
// assert stage sequencing and abort behavior.
type fakeStore struct {
	nextID uint
	calls  []string

	failOn  string
	failErr error

	schools            int
	years              []*models.AcademicYear
	terms              []*models.Term
	users              []*models.User
	teachers           []*models.Teacher
	students           []*models.Student
	classes            []*models.Class
	courses            []*models.Course
	teacherClassLinks  map[[2]uint]bool
	classCourseLinks   map[[2]uint]bool
	assignments        []*models.Assignment
	studentAssignments map[[2]uint]bool
	notifications      []*models.Notification
	fanOuts            map[[2]uint]bool
	events             []*models.CalendarEvent
	participants       map[[2]uint]bool
	attendance         map[string]bool
	grades             map[[3]uint]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		teacherClassLinks:  make(map[[2]uint]bool),
		classCourseLinks:   make(map[[2]uint]bool),
		studentAssignments: make(map[[2]uint]bool),
		fanOuts:            make(map[[2]uint]bool),
		participants:       make(map[[2]uint]bool),
		attendance:         make(map[string]bool),
		grades:             make(map[[3]uint]bool),
	}
}

func (st *fakeStore) record(call string) error {
	st.calls = append(st.calls, call)
	if st.failOn == call {
		return st.failErr
	}
	return nil
}

func (st *fakeStore) id() uint {
	st.nextID++
	return st.nextID
}

func (st *fakeStore) firstCall(name string) int {
	for i, c := range st.calls {
		if c == name {
			return i
		}
	}
	return -1
}

type fakeRepo struct{ st *fakeStore }

func (f *fakeRepo) User() repositories.UserRepository             { return &fakeUserRepo{f.st} }
func (f *fakeRepo) Teacher() repositories.TeacherRepository       { return &fakeTeacherRepo{f.st} }
func (f *fakeRepo) Student() repositories.StudentRepository       { return &fakeStudentRepo{f.st} }
func (f *fakeRepo) Academic() repositories.AcademicRepository     { return &fakeAcademicRepo{f.st} }
func (f *fakeRepo) Class() repositories.ClassRepository           { return &fakeClassRepo{f.st} }
func (f *fakeRepo) Assignment() repositories.AssignmentRepository { return &fakeAssignmentRepo{f.st} }
func (f *fakeRepo) Records() repositories.RecordsRepository       { return &fakeRecordsRepo{f.st} }
func (f *fakeRepo) Notification() repositories.NotificationRepository {
	return &fakeNotificationRepo{f.st}
}
func (f *fakeRepo) Resource() repositories.ResourceRepository { return nil }
func (f *fakeRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}
func (f *fakeRepo) Ping(ctx context.Context) error { return nil }
func (f *fakeRepo) Close() error                   { return nil }

// ===== ACADEMIC =====

type fakeAcademicRepo struct{ st *fakeStore }

func (r *fakeAcademicRepo) CreateSchool(ctx context.Context, school *models.School) error {
	if err := r.st.record("school"); err != nil {
		return err
	}
	r.st.schools++
	return nil
}

func (r *fakeAcademicRepo) GetSchool(ctx context.Context) (*models.School, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeAcademicRepo) CreateYear(ctx context.Context, year *models.AcademicYear) error {
	if err := r.st.record("year"); err != nil {
		return err
	}
	year.ID = r.st.id()
	r.st.years = append(r.st.years, year)
	return nil
}

func (r *fakeAcademicRepo) GetCurrentYear(ctx context.Context) (*models.AcademicYear, error) {
	for _, y := range r.st.years {
		if y.IsCurrent {
			return y, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAcademicRepo) ListYears(ctx context.Context) ([]*models.AcademicYear, error) {
	return r.st.years, nil
}

func (r *fakeAcademicRepo) SetCurrentYear(ctx context.Context, yearID uint) error { return nil }

func (r *fakeAcademicRepo) CreateTerm(ctx context.Context, term *models.Term) error {
	if err := r.st.record("term"); err != nil {
		return err
	}
	term.ID = r.st.id()
	r.st.terms = append(r.st.terms, term)
	return nil
}

func (r *fakeAcademicRepo) GetCurrentTerm(ctx context.Context) (*models.Term, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeAcademicRepo) ListRecentTerms(ctx context.Context, limit int) ([]*models.Term, error) {
	return r.st.terms, nil
}

func (r *fakeAcademicRepo) SetCurrentTerm(ctx context.Context, termID uint) error { return nil }

// ===== IDENTITY =====

type fakeUserRepo struct{ st *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = r.st.id()
	r.st.users = append(r.st.users, user)
	return nil
}

func (r *fakeUserRepo) CreateBatch(ctx context.Context, users []*models.User) error {
	if err := r.st.record("users"); err != nil {
		return err
	}
	for _, u := range users {
		u.ID = r.st.id()
		r.st.users = append(r.st.users, u)
	}
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range r.st.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	return r.st.users, int64(len(r.st.users)), nil
}

func (r *fakeUserRepo) ListIDs(ctx context.Context) ([]uint, error) {
	ids := make([]uint, 0, len(r.st.users))
	for _, u := range r.st.users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error           { return nil }

type fakeTeacherRepo struct{ st *fakeStore }

func (r *fakeTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := r.st.record("teacher"); err != nil {
		return err
	}
	teacher.ID = r.st.id()
	r.st.teachers = append(r.st.teachers, teacher)
	return nil
}

func (r *fakeTeacherRepo) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeTeacherRepo) GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeTeacherRepo) List(ctx context.Context) ([]*models.Teacher, error) {
	return r.st.teachers, nil
}

type fakeStudentRepo struct{ st *fakeStore }

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if err := r.st.record("student"); err != nil {
		return err
	}
	student.ID = r.st.id()
	r.st.students = append(r.st.students, student)
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) List(ctx context.Context) ([]*models.Student, error) {
	return r.st.students, nil
}

func (r *fakeStudentRepo) ListByGradeSection(ctx context.Context, grade int, section string) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range r.st.students {
		if s.Grade == grade && s.Section == section {
			out = append(out, s)
		}
	}
	return out, nil
}

// ===== CLASS/COURSE =====

type fakeClassRepo struct{ st *fakeStore }

func (r *fakeClassRepo) CreateClass(ctx context.Context, class *models.Class) error {
	if err := r.st.record("class"); err != nil {
		return err
	}
	class.ID = r.st.id()
	r.st.classes = append(r.st.classes, class)
	return nil
}

func (r *fakeClassRepo) GetClassByGradeSection(ctx context.Context, grade int, section string) (*models.Class, error) {
	for _, c := range r.st.classes {
		if c.Grade == grade && c.Section == section {
			return c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeClassRepo) ListClasses(ctx context.Context) ([]*models.Class, error) {
	return r.st.classes, nil
}

func (r *fakeClassRepo) ListClassesByGrade(ctx context.Context, grade int) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range r.st.classes {
		if c.Grade == grade {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClassRepo) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := r.st.record("course"); err != nil {
		return err
	}
	course.ID = r.st.id()
	r.st.courses = append(r.st.courses, course)
	return nil
}

func (r *fakeClassRepo) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return r.st.courses, nil
}

func (r *fakeClassRepo) LinkTeacherClass(ctx context.Context, link *models.TeacherClass) (bool, error) {
	if err := r.st.record("teacher_class"); err != nil {
		return false, err
	}
	key := [2]uint{link.TeacherID, link.ClassID}
	if r.st.teacherClassLinks[key] {
		return false, nil
	}
	r.st.teacherClassLinks[key] = true
	return true, nil
}

func (r *fakeClassRepo) LinkClassCourse(ctx context.Context, link *models.ClassCourse) (bool, error) {
	if err := r.st.record("class_course"); err != nil {
		return false, err
	}
	key := [2]uint{link.ClassID, link.CourseID}
	if r.st.classCourseLinks[key] {
		return false, nil
	}
	r.st.classCourseLinks[key] = true
	return true, nil
}

func (r *fakeClassRepo) ListTeacherClasses(ctx context.Context, teacherID uint) ([]*models.TeacherClass, error) {
	return nil, nil
}

func (r *fakeClassRepo) ListClassCourses(ctx context.Context, classID uint) ([]*models.ClassCourse, error) {
	return nil, nil
}

func (r *fakeClassRepo) ListClassCoursesByGrade(ctx context.Context, grade int) ([]*models.ClassCourse, error) {
	return nil, nil
}

// ===== ASSIGNMENTS =====

type fakeAssignmentRepo struct{ st *fakeStore }

func (r *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	if err := r.st.record("assignment"); err != nil {
		return err
	}
	assignment.ID = r.st.id()
	r.st.assignments = append(r.st.assignments, assignment)
	return nil
}

func (r *fakeAssignmentRepo) List(ctx context.Context) ([]*models.Assignment, error) {
	return r.st.assignments, nil
}

func (r *fakeAssignmentRepo) ListByCourses(ctx context.Context, courseIDs []uint) ([]*models.Assignment, error) {
	return nil, nil
}

func (r *fakeAssignmentRepo) CreateStudentAssignment(ctx context.Context, sa *models.StudentAssignment) (bool, error) {
	if err := r.st.record("student_assignment"); err != nil {
		return false, err
	}
	key := [2]uint{sa.StudentID, sa.AssignmentID}
	if r.st.studentAssignments[key] {
		return false, nil
	}
	r.st.studentAssignments[key] = true
	return true, nil
}

func (r *fakeAssignmentRepo) ListStudentAssignments(ctx context.Context, studentID uint) ([]*models.StudentAssignment, error) {
	return nil, nil
}

// ===== RECORDS =====

type fakeRecordsRepo struct{ st *fakeStore }

func (r *fakeRecordsRepo) CreateAttendance(ctx context.Context, att *models.StudentAttendance) (bool, error) {
	if err := r.st.record("attendance"); err != nil {
		return false, err
	}
	key := fmt.Sprintf("%d-%d-%s", att.StudentID, att.ClassID, att.Date.Format("2006-01-02"))
	if r.st.attendance[key] {
		return false, nil
	}
	r.st.attendance[key] = true
	return true, nil
}

func (r *fakeRecordsRepo) ListAttendance(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.StudentAttendance, int64, error) {
	return nil, 0, nil
}

func (r *fakeRecordsRepo) CreateGrade(ctx context.Context, grade *models.StudentGrade) (bool, error) {
	if err := r.st.record("grade"); err != nil {
		return false, err
	}
	key := [3]uint{grade.StudentID, grade.CourseID, grade.TermID}
	if r.st.grades[key] {
		return false, nil
	}
	r.st.grades[key] = true
	return true, nil
}

func (r *fakeRecordsRepo) ListGrades(ctx context.Context, filters repositories.GradeFilters) ([]*models.StudentGrade, int64, error) {
	return nil, 0, nil
}

// ===== NOTIFICATIONS =====

type fakeNotificationRepo struct{ st *fakeStore }

func (r *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if err := r.st.record("notification"); err != nil {
		return err
	}
	n.ID = r.st.id()
	r.st.notifications = append(r.st.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) FanOut(ctx context.Context, notificationID uint, userIDs []uint) (int, error) {
	if err := r.st.record("fan_out"); err != nil {
		return 0, err
	}
	inserted := 0
	for _, userID := range userIDs {
		key := [2]uint{notificationID, userID}
		if r.st.fanOuts[key] {
			continue
		}
		r.st.fanOuts[key] = true
		inserted++
	}
	return inserted, nil
}

func (r *fakeNotificationRepo) ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error) {
	return nil, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return nil
}

func (r *fakeNotificationRepo) CreateEvent(ctx context.Context, event *models.CalendarEvent) error {
	if err := r.st.record("event"); err != nil {
		return err
	}
	event.ID = r.st.id()
	r.st.events = append(r.st.events, event)
	return nil
}

func (r *fakeNotificationRepo) AddParticipants(ctx context.Context, eventID uint, userIDs []uint, status string) (int, error) {
	if err := r.st.record("participants"); err != nil {
		return 0, err
	}
	inserted := 0
	for _, userID := range userIDs {
		key := [2]uint{eventID, userID}
		if r.st.participants[key] {
			continue
		}
		r.st.participants[key] = true
		inserted++
	}
	return inserted, nil
}

func (r *fakeNotificationRepo) ListEvents(ctx context.Context, from, to *time.Time) ([]*models.CalendarEvent, error) {
	return r.st.events, nil
}

// ===== TESTS =====

func newTestSeeder(st *fakeStore, caps SchemaCapabilities) *Seeder {
	return &Seeder{
		repo:   &fakeRepo{st: st},
		rnd:    rand.New(rand.NewSource(7)),
		logger: utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		now:    func() time.Time { return time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC) },
		caps:   &caps,
	}
}

func TestRunSeedsFullDataset(t *testing.T) {
	st := newFakeStore()
	s := newTestSeeder(st, SchemaCapabilities{NotificationPriority: true})

	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if summary.Schools != 1 {
		t.Errorf("Schools = %d, want 1", summary.Schools)
	}
	if summary.AcademicYears != 2 || summary.Terms != 2 {
		t.Errorf("AcademicYears/Terms = %d/%d, want 2/2", summary.AcademicYears, summary.Terms)
	}
	if summary.Users != 21 {
		t.Errorf("Users = %d, want 21", summary.Users)
	}
	if summary.Teachers != 5 || summary.Students != 10 {
		t.Errorf("Teachers/Students = %d/%d, want 5/10", summary.Teachers, summary.Students)
	}
	if summary.Classes != 10 || summary.Courses != 10 {
		t.Errorf("Classes/Courses = %d/%d, want 10/10", summary.Classes, summary.Courses)
	}
	if summary.TeacherClassLinks < 1 || summary.TeacherClassLinks > 15 {
		t.Errorf("TeacherClassLinks = %d, want 1..15", summary.TeacherClassLinks)
	}
	if summary.ClassCourseLinks < 40 || summary.ClassCourseLinks > 100 {
		t.Errorf("ClassCourseLinks = %d, want 40..100", summary.ClassCourseLinks)
	}
	if summary.Assignments < 30 || summary.Assignments > 50 {
		t.Errorf("Assignments = %d, want 30..50 (3-5 per course)", summary.Assignments)
	}
	if summary.StudentAssignments == 0 {
		t.Error("StudentAssignments = 0, want > 0")
	}
	if summary.Notifications != 3 || summary.NotificationFanOut != 63 {
		t.Errorf("Notifications/FanOut = %d/%d, want 3/63", summary.Notifications, summary.NotificationFanOut)
	}
	if summary.CalendarEvents != 6 || summary.EventParticipants != 126 {
		t.Errorf("Events/Participants = %d/%d, want 6/126", summary.CalendarEvents, summary.EventParticipants)
	}
	if summary.AttendanceRows != 300 {
		t.Errorf("AttendanceRows = %d, want 300 (10 students x 30 days)", summary.AttendanceRows)
	}
	if summary.GradeRows < 80 {
		t.Errorf("GradeRows = %d, want >= 80 (10 students x 2 terms x >= 4 courses)", summary.GradeRows)
	}

	for _, n := range st.notifications {
		if n.Priority == nil {
			t.Errorf("notification %q: priority not set despite schema support", n.Title)
		}
	}

	// Stages must run in order: each table's first insert after the
	// previous table's.
	order := []string{
		"school", "year", "users", "teacher", "student", "class",
		"teacher_class", "class_course", "assignment", "notification",
		"event", "attendance", "grade",
	}
	prev := -1
	for _, name := range order {
		idx := st.firstCall(name)
		if idx < 0 {
			t.Fatalf("no %s insert recorded", name)
		}
		if idx < prev {
			t.Errorf("first %s insert at %d, before previous stage at %d", name, idx, prev)
		}
		prev = idx
	}
}

func TestRunWithoutPriorityColumn(t *testing.T) {
	st := newFakeStore()
	s := newTestSeeder(st, SchemaCapabilities{NotificationPriority: false})

	summary, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if summary.Notifications != 3 {
		t.Errorf("Notifications = %d, want 3", summary.Notifications)
	}
	for _, n := range st.notifications {
		if n.Priority != nil {
			t.Errorf("notification %q: priority set on a schema without the column", n.Title)
		}
	}
}

func TestRunAbortsOnStageError(t *testing.T) {
	st := newFakeStore()
	st.failOn = "notification"
	st.failErr = errors.New("relation does not exist")
	s := newTestSeeder(st, SchemaCapabilities{})

	summary, err := s.Run(context.Background())
	if err == nil {
		t.Fatal("Run() succeeded despite a failing stage")
	}
	if !strings.Contains(err.Error(), "stage 11 (notifications)") {
		t.Errorf("error %q does not name the failing stage", err)
	}
	if summary != (Summary{}) {
		t.Errorf("summary = %+v, want zero value after abort", summary)
	}
	for _, later := range []string{"event", "attendance", "grade"} {
		if st.firstCall(later) >= 0 {
			t.Errorf("%s insert recorded after the aborting stage", later)
		}
	}
}

func TestEligibleAssignments(t *testing.T) {
	s := &Seeder{rnd: rand.New(rand.NewSource(3))}

	assignments := []*models.Assignment{
		{ID: 10, CourseID: 1},
		{ID: 20, CourseID: 2},
		{ID: 30, CourseID: 3},
		{ID: 40, CourseID: 4},
	}
	state := &runState{
		gradeCourses: map[int][]uint{9: {1, 2}},
		assignments:  assignments,
	}

	eligible := s.eligibleAssignments(state, 9)
	if len(eligible) != 2 || eligible[0].ID != 10 || eligible[1].ID != 20 {
		t.Errorf("grade 9 eligible = %v, want assignments 10 and 20", ids(eligible))
	}
}

func TestEligibleAssignmentsFallbackSample(t *testing.T) {
	s := &Seeder{rnd: rand.New(rand.NewSource(3))}

	state := &runState{gradeCourses: map[int][]uint{}}
	for i := 1; i <= 500; i++ {
		state.assignments = append(state.assignments, &models.Assignment{
			ID:       uint(i),
			CourseID: uint(i%10 + 1),
		})
	}

	// Grade 12 has no resolvable courses, so the fallback samples roughly
	// 30% of all assignments.
	sample := s.eligibleAssignments(state, 12)
	if len(sample) < 100 || len(sample) > 200 {
		t.Errorf("fallback sample size = %d, want around 150 of 500", len(sample))
	}
	seen := make(map[uint]bool)
	for _, a := range sample {
		if seen[a.ID] {
			t.Fatalf("assignment %d sampled twice", a.ID)
		}
		seen[a.ID] = true
	}

	if got := s.eligibleAssignments(&runState{}, 12); len(got) != 0 {
		t.Errorf("empty state sampled %d assignments, want 0", len(got))
	}
}

func TestSeedGradesFallbackCourses(t *testing.T) {
	st := newFakeStore()
	s := newTestSeeder(st, SchemaCapabilities{})

	state := &runState{
		gradeCourses: map[int][]uint{},
		students:     []*models.Student{{ID: 1, Grade: 9, Section: "A"}},
		terms:        []*models.Term{{ID: 100}, {ID: 101}},
	}
	for i := uint(1); i <= 7; i++ {
		state.courses = append(state.courses, &models.Course{ID: i})
	}

	if err := s.seedGrades(context.Background(), &fakeRepo{st: st}, state); err != nil {
		t.Fatalf("seedGrades() error: %v", err)
	}

	// No grade resolves to a course list, so only the first five global
	// courses receive grades, for both terms.
	if state.summary.GradeRows != 10 {
		t.Errorf("GradeRows = %d, want 10 (5 courses x 2 terms)", state.summary.GradeRows)
	}
	for key := range st.grades {
		if key[1] > 5 {
			t.Errorf("grade written for course %d, beyond the first five", key[1])
		}
	}
}

func ids(assignments []*models.Assignment) []uint {
	out := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, a.ID)
	}
	return out
}
