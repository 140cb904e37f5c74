package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// GradeReport writes one row per (student, course, term) grade. The sheet
// is flat on purpose; school office staff pivot it themselves.
func (s *reportService) GradeReport(ctx context.Context, termID *uint) ([]byte, error) {
	filters := repositories.GradeFilters{TermID: termID}
	grades, _, err := s.repo.Records().ListGrades(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}

	studentNames, rollNumbers, err := s.studentLookup(ctx)
	if err != nil {
		return nil, err
	}
	courseNames, err := s.courseLookup(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Grades"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Roll Number", "Student", "Course", "Term", "Grade"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, grade := range grades {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rollNumbers[grade.StudentID])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), studentNames[grade.StudentID])
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), courseNames[grade.CourseID])
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), grade.TermID)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), grade.Grade)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render grade report: %w", err)
	}

	s.logger.Info("grade report generated", "rows", len(grades))
	return buf.Bytes(), nil
}

func (s *reportService) AttendanceReport(ctx context.Context, classID uint) ([]byte, error) {
	filters := repositories.AttendanceFilters{ClassID: &classID}
	rows, _, err := s.repo.Records().ListAttendance(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	studentNames, rollNumbers, err := s.studentLookup(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Roll Number", "Student", "Date", "Status", "Note"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, att := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rollNumbers[att.StudentID])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), studentNames[att.StudentID])
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), att.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(att.Status))
		if att.Note != nil {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *att.Note)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render attendance report: %w", err)
	}

	s.logger.Info("attendance report generated", "class_id", classID, "rows", len(rows))
	return buf.Bytes(), nil
}

// studentLookup maps student id to display name and roll number.
func (s *reportService) studentLookup(ctx context.Context) (map[uint]string, map[uint]string, error) {
	students, err := s.repo.Student().List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list students: %w", err)
	}

	users, _, err := s.repo.User().List(ctx, repositories.UserFilters{
		Role:  rolePtr(models.RoleStudent),
		Limit: len(students) + 1,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list student users: %w", err)
	}
	userNames := make(map[uint]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}

	names := make(map[uint]string, len(students))
	rolls := make(map[uint]string, len(students))
	for _, st := range students {
		names[st.ID] = userNames[st.UserID]
		rolls[st.ID] = st.RollNumber
	}
	return names, rolls, nil
}

func (s *reportService) courseLookup(ctx context.Context) (map[uint]string, error) {
	courses, err := s.repo.Class().ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	names := make(map[uint]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	return names, nil
}

func rolePtr(r models.UserRole) *models.UserRole { return &r }
