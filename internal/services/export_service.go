package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/edubase/school-service/internal/grading"
)

type exportService struct {
	roster RosterService
	logger *slog.Logger
}

func NewExportService(roster RosterService, logger *slog.Logger) ExportService {
	return &exportService{roster: roster, logger: logger}
}

// ExportGradeSheet renders one course's roster as an xlsx workbook:
// one row per enrolled student with the three components and the computed
// final score. Access follows the same policy as viewing the roster.
func (s *exportService) ExportGradeSheet(ctx context.Context, actor Actor, courseID string) ([]byte, string, error) {
	entries, err := s.roster.ListEnrollments(ctx, actor, courseID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("Failed to close workbook", "error", cerr)
		}
	}()

	const sheet = "Grades"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Student",
		"Email",
		fmt.Sprintf("Attendance (%d%%)", int(grading.AttendanceWeight*100)),
		fmt.Sprintf("Homework (%d%%)", int(grading.HomeworkWeight*100)),
		fmt.Sprintf("Exam (%d%%)", int(grading.ExamWeight*100)),
		"Final Score",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, entry := range entries {
		enr := entry.Enrollment
		values := []interface{}{
			entry.Student.DisplayName,
			entry.Student.Email,
			enr.Attendance,
			enr.Homework,
			enr.Exam,
			grading.FinalScore(enr.Attendance, enr.Homework, enr.Exam),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("grades-%s.xlsx", sanitizeFilename(courseID))
	s.logger.Info("Grade sheet exported", "course_id", courseID, "rows", len(entries), "actor_id", actor.ID)
	return buf.Bytes(), filename, nil
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, s)
}
