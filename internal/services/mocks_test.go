package services

import (
	"context"
	"time"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
)

// mockRepository is a minimal in-memory Repository for service tests.
// Sub-repositories a test does not touch stay nil.
type mockRepository struct {
	users         *mockUserRepository
	notifications *mockNotificationRepository
	records       *mockRecordsRepository
	students      *mockStudentRepository
	classes       *mockClassRepository
}

func (m *mockRepository) User() repositories.UserRepository             { return m.users }
func (m *mockRepository) Teacher() repositories.TeacherRepository       { return nil }
func (m *mockRepository) Student() repositories.StudentRepository       { return m.students }
func (m *mockRepository) Academic() repositories.AcademicRepository     { return nil }
func (m *mockRepository) Class() repositories.ClassRepository           { return m.classes }
func (m *mockRepository) Assignment() repositories.AssignmentRepository { return nil }
func (m *mockRepository) Records() repositories.RecordsRepository       { return m.records }
func (m *mockRepository) Notification() repositories.NotificationRepository {
	return m.notifications
}
func (m *mockRepository) Resource() repositories.ResourceRepository { return nil }
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USER =====

type mockUserRepository struct {
	byEmail map[string]*models.User
	byID    map[uint]*models.User
	ids     []uint
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error { return nil }
func (m *mockUserRepository) CreateBatch(ctx context.Context, users []*models.User) error {
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range m.byID {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepository) ListIDs(ctx context.Context) ([]uint, error) { return m.ids, nil }
func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error { return nil }
func (m *mockUserRepository) Delete(ctx context.Context, id uint) error           { return nil }

// ===== NOTIFICATION =====

type mockNotificationRepository struct {
	created   []*models.Notification
	fanOut    map[uint][]uint
	events    []*models.CalendarEvent
	markedRead [][2]uint
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	n.ID = uint(len(m.created) + 1)
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepository) FanOut(ctx context.Context, notificationID uint, userIDs []uint) (int, error) {
	if m.fanOut == nil {
		m.fanOut = make(map[uint][]uint)
	}
	m.fanOut[notificationID] = userIDs
	return len(userIDs), nil
}

func (m *mockNotificationRepository) ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error) {
	return m.created, nil
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, userID, notificationID uint) error {
	m.markedRead = append(m.markedRead, [2]uint{userID, notificationID})
	return nil
}

func (m *mockNotificationRepository) CreateEvent(ctx context.Context, event *models.CalendarEvent) error {
	event.ID = uint(len(m.events) + 1)
	m.events = append(m.events, event)
	return nil
}

func (m *mockNotificationRepository) AddParticipants(ctx context.Context, eventID uint, userIDs []uint, status string) (int, error) {
	return len(userIDs), nil
}

func (m *mockNotificationRepository) ListEvents(ctx context.Context, from, to *time.Time) ([]*models.CalendarEvent, error) {
	return m.events, nil
}

// ===== RECORDS =====

type mockRecordsRepository struct {
	attendance []*models.StudentAttendance
	grades     []*models.StudentGrade
}

func (m *mockRecordsRepository) CreateAttendance(ctx context.Context, att *models.StudentAttendance) (bool, error) {
	m.attendance = append(m.attendance, att)
	return true, nil
}

func (m *mockRecordsRepository) ListAttendance(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.StudentAttendance, int64, error) {
	return m.attendance, int64(len(m.attendance)), nil
}

func (m *mockRecordsRepository) CreateGrade(ctx context.Context, grade *models.StudentGrade) (bool, error) {
	m.grades = append(m.grades, grade)
	return true, nil
}

func (m *mockRecordsRepository) ListGrades(ctx context.Context, filters repositories.GradeFilters) ([]*models.StudentGrade, int64, error) {
	return m.grades, int64(len(m.grades)), nil
}

// ===== STUDENT =====

type mockStudentRepository struct {
	students []*models.Student
}

func (m *mockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	return nil
}

func (m *mockStudentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	for _, s := range m.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockStudentRepository) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	for _, s := range m.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockStudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	return m.students, nil
}

func (m *mockStudentRepository) ListByGradeSection(ctx context.Context, grade int, section string) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range m.students {
		if s.Grade == grade && s.Section == section {
			out = append(out, s)
		}
	}
	return out, nil
}

// ===== CLASS =====

type mockClassRepository struct {
	courses []*models.Course
}

func (m *mockClassRepository) CreateClass(ctx context.Context, class *models.Class) error { return nil }
func (m *mockClassRepository) GetClassByGradeSection(ctx context.Context, grade int, section string) (*models.Class, error) {
	return nil, repositories.ErrNotFound
}
func (m *mockClassRepository) ListClasses(ctx context.Context) ([]*models.Class, error) {
	return nil, nil
}
func (m *mockClassRepository) ListClassesByGrade(ctx context.Context, grade int) ([]*models.Class, error) {
	return nil, nil
}
func (m *mockClassRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	return nil
}
func (m *mockClassRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return m.courses, nil
}
func (m *mockClassRepository) LinkTeacherClass(ctx context.Context, link *models.TeacherClass) (bool, error) {
	return true, nil
}
func (m *mockClassRepository) LinkClassCourse(ctx context.Context, link *models.ClassCourse) (bool, error) {
	return true, nil
}
func (m *mockClassRepository) ListTeacherClasses(ctx context.Context, teacherID uint) ([]*models.TeacherClass, error) {
	return nil, nil
}
func (m *mockClassRepository) ListClassCourses(ctx context.Context, classID uint) ([]*models.ClassCourse, error) {
	return nil, nil
}
func (m *mockClassRepository) ListClassCoursesByGrade(ctx context.Context, grade int) ([]*models.ClassCourse, error) {
	return nil, nil
}
