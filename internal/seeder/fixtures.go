package seeder

import (
	"time"

	"gorm.io/datatypes"

	"github.com/edusync-app/school-service/internal/models"
)

// DemoPassword is the plaintext every seeded account shares. It is hashed
// once per run; the hash is reused across all user inserts.
const DemoPassword = "edusync123"

func schoolFixture() *models.School {
	return &models.School{
		Name:     "Riverside High School",
		Address:  "42 Riverside Avenue, Springfield",
		Phone:    "+1-555-0142",
		Email:    "office@riverside.edu",
		Branding: datatypes.JSON([]byte(`{"primary":"#1e40af","secondary":"#f59e0b","accent":"#10b981"}`)),
		GradingScale: datatypes.JSON([]byte(
			`[{"min":90,"letter":"A"},{"min":80,"letter":"B"},{"min":70,"letter":"C"},{"min":60,"letter":"D"},{"min":0,"letter":"F"}]`)),
		Timezone: "America/New_York",
		Currency: "USD",
	}
}

func academicYearFixtures() []*models.AcademicYear {
	return []*models.AcademicYear{
		{
			Name:      "2024-2025",
			StartDate: time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.June, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:      "2025-2026",
			StartDate: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.June, 26, 0, 0, 0, 0, time.UTC),
			IsCurrent: true,
		},
	}
}

// termFixtures belong to the current year; the first term is current.
func termFixtures(yearID uint) []*models.Term {
	return []*models.Term{
		{
			AcademicYearID: yearID,
			Name:           "Term 1",
			StartDate:      time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2025, time.December, 19, 0, 0, 0, 0, time.UTC),
			IsCurrent:      true,
		},
		{
			AcademicYearID: yearID,
			Name:           "Term 2",
			StartDate:      time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, time.May, 29, 0, 0, 0, 0, time.UTC),
		},
	}
}

type userFixture struct {
	Name  string
	Email string
	Role  models.UserRole
}

// Four user batches: leadership, teachers, students, other staff.
var (
	adminUserFixtures = []userFixture{
		{"Helen Marsh", "helen.marsh@riverside.edu", models.RoleAdmin},
		{"Victor Okafor", "victor.okafor@riverside.edu", models.RolePrincipal},
		{"Dana Whitfield", "dana.whitfield@riverside.edu", models.RoleSchoolAdmin},
	}

	teacherUserFixtures = []userFixture{
		{"Grace Lindqvist", "grace.lindqvist@riverside.edu", models.RoleTeacher},
		{"Omar Haddad", "omar.haddad@riverside.edu", models.RoleTeacher},
		{"Priya Raman", "priya.raman@riverside.edu", models.RoleTeacher},
		{"Tom Becker", "tom.becker@riverside.edu", models.RoleTeacher},
		{"Lucia Moretti", "lucia.moretti@riverside.edu", models.RoleTeacher},
	}

	studentUserFixtures = []userFixture{
		{"Aiden Brooks", "aiden.brooks@student.riverside.edu", models.RoleStudent},
		{"Bella Nguyen", "bella.nguyen@student.riverside.edu", models.RoleStudent},
		{"Carlos Mendes", "carlos.mendes@student.riverside.edu", models.RoleStudent},
		{"Daria Petrova", "daria.petrova@student.riverside.edu", models.RoleStudent},
		{"Ethan Walsh", "ethan.walsh@student.riverside.edu", models.RoleStudent},
		{"Fatima Said", "fatima.said@student.riverside.edu", models.RoleStudent},
		{"George Iwu", "george.iwu@student.riverside.edu", models.RoleStudent},
		{"Hana Kobayashi", "hana.kobayashi@student.riverside.edu", models.RoleStudent},
		{"Ivan Sokolov", "ivan.sokolov@student.riverside.edu", models.RoleStudent},
		{"Julia Ferreira", "julia.ferreira@student.riverside.edu", models.RoleStudent},
	}

	staffUserFixtures = []userFixture{
		{"Ken Ashworth", "ken.ashworth@riverside.edu", models.RoleFinancial},
		{"Laila Haddad", "laila.haddad@riverside.edu", models.RoleAdmission},
		{"Marta Kovacs", "marta.kovacs@riverside.edu", models.RoleLibrary},
	}
)

type classFixture struct {
	Grade   int
	Section string
}

// Ten classes covering every (grade, section) a seeded student can land
// in: three sections for grades 9-11 plus section A of grade 12.
var classFixtures = []classFixture{
	{9, "A"}, {9, "B"}, {9, "C"},
	{10, "A"}, {10, "B"}, {10, "C"},
	{11, "A"}, {11, "B"}, {11, "C"},
	{12, "A"},
}

type courseFixture struct {
	Name string
	Code string
	Desc string
}

var courseFixtures = []courseFixture{
	{"Mathematics I", "MATH101", "Algebra, functions and introductory proofs."},
	{"Advanced Mathematics", "MATH201", "Calculus and analytic geometry."},
	{"English Literature", "ENG101", "Close reading of novels, poetry and drama."},
	{"Physics", "PHY101", "Mechanics, waves and energy."},
	{"Advanced Physics", "PHY201", "Electromagnetism and modern physics."},
	{"Chemistry", "CHEM101", "Atomic structure, bonding and reactions."},
	{"History", "HIST101", "World history from antiquity to the modern era."},
	{"Computer Science", "CS101", "Programming fundamentals and algorithms."},
	{"Biology", "BIO101", "Cells, genetics and ecosystems."},
	{"Geography", "GEO101", "Physical and human geography."},
}

type notificationFixture struct {
	Title    string
	Message  string
	Category string
	Priority models.NotificationPriority
}

var notificationFixtures = []notificationFixture{
	{
		Title:    "Welcome to the new school year",
		Message:  "Classes for the 2025-2026 academic year begin on September 1. Check your timetable in the dashboard.",
		Category: "general",
		Priority: models.PriorityNormal,
	},
	{
		Title:    "Parent-teacher conferences",
		Message:  "Conferences are scheduled for the second week of October. Booking opens next Monday.",
		Category: "academic",
		Priority: models.PriorityHigh,
	},
	{
		Title:    "Library hours extended",
		Message:  "The library is now open until 6pm on weekdays during exam preparation weeks.",
		Category: "facilities",
		Priority: models.PriorityLow,
	},
}

type eventFixture struct {
	Title    string
	Desc     string
	Date     time.Time
	Start    string
	End      string
	AllDay   bool
	Location string
	Type     models.EventType
}

var eventFixtures = []eventFixture{
	{
		Title:    "First day of school",
		Desc:     "Opening assembly and homeroom.",
		Date:     time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		Start:    "08:30",
		End:      "15:00",
		Location: "Main campus",
		Type:     models.EventSchool,
	},
	{
		Title:    "Parent-teacher conference",
		Desc:     "Individual meetings with subject teachers.",
		Date:     time.Date(2025, time.October, 9, 0, 0, 0, 0, time.UTC),
		Start:    "14:00",
		End:      "19:00",
		Location: "Classrooms, building B",
		Type:     models.EventAcademic,
	},
	{
		Title:  "Fall break",
		Desc:   "No classes all week.",
		Date:   time.Date(2025, time.October, 27, 0, 0, 0, 0, time.UTC),
		AllDay: true,
		Type:   models.EventHoliday,
	},
	{
		Title:    "Science fair",
		Desc:     "Student projects on display in the gymnasium.",
		Date:     time.Date(2025, time.November, 14, 0, 0, 0, 0, time.UTC),
		Start:    "10:00",
		End:      "16:00",
		Location: "Gymnasium",
		Type:     models.EventSchool,
	},
	{
		Title:  "Term 1 exams",
		Desc:   "End-of-term examinations, all grades.",
		Date:   time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC),
		AllDay: true,
		Type:   models.EventAcademic,
	},
	{
		Title:    "Graduation ceremony",
		Desc:     "Class of 2026 graduation.",
		Date:     time.Date(2026, time.June, 19, 0, 0, 0, 0, time.UTC),
		Start:    "11:00",
		End:      "13:00",
		Location: "Auditorium",
		Type:     models.EventSchool,
	},
}
