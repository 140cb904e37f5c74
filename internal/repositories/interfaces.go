package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/edusync-app/school-service/internal/models"
)

// Sentinel errors shared by all repositories.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role      *models.UserRole `json:"role"`
	Email     *string          `json:"email"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
	SortBy    string           `json:"sort_by"`    // "created_at", "name", "email"
	SortOrder string           `json:"sort_order"` // "asc", "desc"
}

type AttendanceFilters struct {
	StudentID *uint                    `json:"student_id"`
	ClassID   *uint                    `json:"class_id"`
	Status    *models.AttendanceStatus `json:"status"`
	DateFrom  *time.Time               `json:"date_from"`
	DateTo    *time.Time               `json:"date_to"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
}

type GradeFilters struct {
	StudentID *uint `json:"student_id"`
	CourseID  *uint `json:"course_id"`
	TermID    *uint `json:"term_id"`
	Limit     int   `json:"limit"`
	Offset    int   `json:"offset"`
}

// ===== IDENTITY DOMAIN =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	CreateBatch(ctx context.Context, users []*models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	ListIDs(ctx context.Context) ([]uint, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id uint) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error)
	List(ctx context.Context) ([]*models.Teacher, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	ListByGradeSection(ctx context.Context, grade int, section string) ([]*models.Student, error)
}

// ===== ACADEMIC CALENDAR DOMAIN =====

type AcademicRepository interface {
	CreateSchool(ctx context.Context, school *models.School) error
	GetSchool(ctx context.Context) (*models.School, error)

	CreateYear(ctx context.Context, year *models.AcademicYear) error
	GetCurrentYear(ctx context.Context) (*models.AcademicYear, error)
	ListYears(ctx context.Context) ([]*models.AcademicYear, error)
	// SetCurrentYear flips is_current to the given year only, keeping the
	// single-current invariant.
	SetCurrentYear(ctx context.Context, yearID uint) error

	CreateTerm(ctx context.Context, term *models.Term) error
	GetCurrentTerm(ctx context.Context) (*models.Term, error)
	// ListRecentTerms returns terms ordered by start date descending.
	ListRecentTerms(ctx context.Context, limit int) ([]*models.Term, error)
	SetCurrentTerm(ctx context.Context, termID uint) error
}

// ===== CLASS/COURSE DOMAIN =====

type ClassRepository interface {
	CreateClass(ctx context.Context, class *models.Class) error
	GetClassByGradeSection(ctx context.Context, grade int, section string) (*models.Class, error)
	ListClasses(ctx context.Context) ([]*models.Class, error)
	ListClassesByGrade(ctx context.Context, grade int) ([]*models.Class, error)

	CreateCourse(ctx context.Context, course *models.Course) error
	ListCourses(ctx context.Context) ([]*models.Course, error)

	// LinkTeacherClass and LinkClassCourse are idempotent: a duplicate
	// link reports inserted=false, not an error.
	LinkTeacherClass(ctx context.Context, link *models.TeacherClass) (inserted bool, err error)
	LinkClassCourse(ctx context.Context, link *models.ClassCourse) (inserted bool, err error)

	ListTeacherClasses(ctx context.Context, teacherID uint) ([]*models.TeacherClass, error)
	ListClassCourses(ctx context.Context, classID uint) ([]*models.ClassCourse, error)
	ListClassCoursesByGrade(ctx context.Context, grade int) ([]*models.ClassCourse, error)
}

// ===== ASSIGNMENT DOMAIN =====

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	List(ctx context.Context) ([]*models.Assignment, error)
	ListByCourses(ctx context.Context, courseIDs []uint) ([]*models.Assignment, error)

	// CreateStudentAssignment is idempotent on (student, assignment).
	CreateStudentAssignment(ctx context.Context, sa *models.StudentAssignment) (inserted bool, err error)
	ListStudentAssignments(ctx context.Context, studentID uint) ([]*models.StudentAssignment, error)
}

// ===== RECORDS DOMAIN =====

type RecordsRepository interface {
	CreateAttendance(ctx context.Context, att *models.StudentAttendance) (inserted bool, err error)
	ListAttendance(ctx context.Context, filters AttendanceFilters) ([]*models.StudentAttendance, int64, error)

	CreateGrade(ctx context.Context, grade *models.StudentGrade) (inserted bool, err error)
	ListGrades(ctx context.Context, filters GradeFilters) ([]*models.StudentGrade, int64, error)
}

// ===== NOTIFICATION DOMAIN =====

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	// FanOut inserts one user_notifications row per recipient, skipping
	// duplicates, and reports how many rows were actually inserted.
	FanOut(ctx context.Context, notificationID uint, userIDs []uint) (int, error)
	ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error

	CreateEvent(ctx context.Context, event *models.CalendarEvent) error
	// AddParticipants fans an event out to users with the given status.
	AddParticipants(ctx context.Context, eventID uint, userIDs []uint, status string) (int, error)
	ListEvents(ctx context.Context, from, to *time.Time) ([]*models.CalendarEvent, error)
}

// ===== GENERIC RESOURCE =====

// ResourceRepository serves the generic table-keyed CRUD endpoint. Tables
// are exposed through an allow-listed registry, never raw SQL identifiers.
type ResourceRepository interface {
	List(ctx context.Context, table string, query models.ListQuery) (any, int64, error)
	Create(ctx context.Context, table string, body []byte) (any, error)
	Update(ctx context.Context, table string, id uint, body []byte) (any, error)
	Delete(ctx context.Context, table string, id uint) error
	Tables() []string
}
