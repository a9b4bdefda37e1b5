package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/edubase/school-service/internal/events"
	"github.com/edubase/school-service/internal/grading"
	"github.com/edubase/school-service/internal/models"
	"github.com/edubase/school-service/internal/repositories"
	"github.com/edubase/school-service/internal/validator"
)

type rosterService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewRosterService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) RosterService {
	return &rosterService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== COURSES =====

func (s *rosterService) CreateCourse(ctx context.Context, actor Actor, req *CreateCourseRequest) (*models.Course, error) {
	if !Can(actor, ActionCourseCreate, Resource{}) {
		return nil, ErrPermissionDenied
	}
	if verrs := s.validator.Validate(req); verrs != nil {
		return nil, verrs
	}

	// The assigned teacher must be a current directory entry with the
	// teacher role; courses are never created with a dangling reference.
	teacher, err := s.repo.User().GetByID(ctx, req.TeacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("teacher_id", "teacher does not exist", req.TeacherID)
		}
		return nil, fmt.Errorf("failed to resolve teacher: %w", err)
	}
	if teacher.Role != models.RoleTeacher {
		return nil, NewValidationError("teacher_id", "user is not a teacher", req.TeacherID)
	}

	course, err := s.repo.Course().Create(ctx, &models.Course{
		Name:      req.Name,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	course.TeacherName = teacher.DisplayName

	s.logger.Info("Course created", "course_id", course.ID.Hex(), "name", course.Name, "teacher_id", course.TeacherID)
	s.publish(ctx, events.TopicCourseCreated, events.CourseCreated{
		CourseID:  course.ID.Hex(),
		Name:      course.Name,
		TeacherID: course.TeacherID,
	})
	return course, nil
}

// DeleteCourse removes the course and every enrollment embedded in it.
// User records are never touched.
func (s *rosterService) DeleteCourse(ctx context.Context, actor Actor, courseID string) error {
	if !Can(actor, ActionCourseDelete, Resource{}) {
		return ErrPermissionDenied
	}

	if err := s.repo.Course().Delete(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info("Course deleted", "course_id", courseID, "actor_id", actor.ID)
	s.publish(ctx, events.TopicCourseDeleted, events.CourseDeleted{CourseID: courseID})
	return nil
}

func (s *rosterService) ListCourses(ctx context.Context, actor Actor) ([]models.Course, error) {
	if !Can(actor, ActionCourseList, Resource{}) {
		return nil, ErrPermissionDenied
	}

	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return s.withTeacherNames(ctx, courses)
}

func (s *rosterService) ListCoursesForTeacher(ctx context.Context, actor Actor, teacherID string) ([]models.Course, error) {
	if !Can(actor, ActionCourseList, Resource{OwnerID: teacherID}) {
		return nil, ErrPermissionDenied
	}

	courses, err := s.repo.Course().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses by teacher: %w", err)
	}
	return s.withTeacherNames(ctx, courses)
}

// ListCoursesForStudent returns the student's own grade report: every course
// the student is enrolled in, with the weighted final score computed from
// the stored components.
func (s *rosterService) ListCoursesForStudent(ctx context.Context, actor Actor, studentID string) ([]StudentGradeEntry, error) {
	if !Can(actor, ActionGradesRead, Resource{OwnerID: studentID}) {
		return nil, ErrPermissionDenied
	}

	courses, err := s.repo.Course().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses by student: %w", err)
	}

	entries := make([]StudentGradeEntry, 0, len(courses))
	for _, course := range courses {
		enr, ok := course.EnrollmentFor(studentID)
		if !ok {
			continue
		}
		entries = append(entries, StudentGradeEntry{
			CourseID:   course.ID.Hex(),
			CourseName: course.Name,
			Enrollment: enr,
			FinalScore: grading.FinalScore(enr.Attendance, enr.Homework, enr.Exam),
		})
	}
	return entries, nil
}

// ===== ENROLLMENTS =====

// ListEnrollments resolves every enrollment's student profile through the
// directory. Entries whose student record no longer exists are dropped from
// the result rather than surfaced as errors.
func (s *rosterService) ListEnrollments(ctx context.Context, actor Actor, courseID string) ([]EnrollmentEntry, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !Can(actor, ActionRosterView, Resource{Course: course}) {
		return nil, ErrPermissionDenied
	}

	ids := make([]string, 0, len(course.Students))
	for _, enr := range course.Students {
		ids = append(ids, enr.StudentID)
	}
	students, err := s.repo.User().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve students: %w", err)
	}
	byID := make(map[string]*models.User, len(students))
	for _, u := range students {
		byID[u.ID] = u
	}

	entries := make([]EnrollmentEntry, 0, len(course.Students))
	for _, enr := range course.Students {
		student, ok := byID[enr.StudentID]
		if !ok {
			s.logger.Warn("Dropping dangling enrollment", "course_id", courseID, "student_id", enr.StudentID)
			continue
		}
		entries = append(entries, EnrollmentEntry{Student: student, Enrollment: enr})
	}
	return entries, nil
}

func (s *rosterService) EnrollStudent(ctx context.Context, actor Actor, courseID, studentID string) error {
	if !Can(actor, ActionRosterEnroll, Resource{}) {
		return ErrPermissionDenied
	}

	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewValidationError("student_id", "student does not exist", studentID)
		}
		return fmt.Errorf("failed to resolve student: %w", err)
	}
	if student.Role != models.RoleStudent {
		return NewValidationError("student_id", "user is not a student", studentID)
	}

	// New enrollments start with all three components at zero.
	err = s.repo.Course().AddEnrollment(ctx, courseID, models.Enrollment{StudentID: studentID})
	if err != nil {
		switch {
		case repositories.IsNotFoundError(err):
			return ErrNotFound
		case errors.Is(err, repositories.ErrDuplicateEnrollment):
			return NewValidationError("student_id", "student is already enrolled", studentID)
		}
		return fmt.Errorf("failed to enroll student: %w", err)
	}

	s.logger.Info("Student enrolled", "course_id", courseID, "student_id", studentID, "actor_id", actor.ID)
	s.publish(ctx, events.TopicRosterEnrolled, events.RosterChanged{CourseID: courseID, StudentID: studentID})
	return nil
}

// UnenrollStudent removes the enrollment and its recorded scores. Removing a
// student who is not enrolled succeeds without effect.
func (s *rosterService) UnenrollStudent(ctx context.Context, actor Actor, courseID, studentID string) error {
	if !Can(actor, ActionRosterUnroll, Resource{}) {
		return ErrPermissionDenied
	}

	if err := s.repo.Course().RemoveEnrollment(ctx, courseID, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to unenroll student: %w", err)
	}

	s.logger.Info("Student unenrolled", "course_id", courseID, "student_id", studentID, "actor_id", actor.ID)
	s.publish(ctx, events.TopicRosterUnrolled, events.RosterChanged{CourseID: courseID, StudentID: studentID})
	return nil
}

// RecordScores overwrites the three score components of one enrollment in a
// single store update, so concurrent edits to different students in the same
// course never clobber each other.
func (s *rosterService) RecordScores(ctx context.Context, actor Actor, courseID, studentID string, req *RecordScoresRequest) error {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if !Can(actor, ActionRosterScores, Resource{Course: course}) {
		return ErrPermissionDenied
	}
	if verrs := s.validator.Validate(req); verrs != nil {
		return verrs
	}

	err = s.repo.Course().UpdateScores(ctx, courseID, studentID, req.Attendance, req.Homework, req.Exam)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to record scores: %w", err)
	}

	s.logger.Info("Scores recorded",
		"course_id", courseID, "student_id", studentID, "actor_id", actor.ID,
		"attendance", req.Attendance, "homework", req.Homework, "exam", req.Exam)
	s.publish(ctx, events.TopicScoresRecorded, events.ScoresRecorded{
		CourseID:   courseID,
		StudentID:  studentID,
		Attendance: req.Attendance,
		Homework:   req.Homework,
		Exam:       req.Exam,
	})
	return nil
}

// ===== HELPERS =====

func (s *rosterService) getCourse(ctx context.Context, courseID string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// withTeacherNames resolves teacherId references in one directory batch.
// Courses whose teacher no longer exists keep the course but display
// "Unknown", mirroring how deletion never cascades into courses.
func (s *rosterService) withTeacherNames(ctx context.Context, courses []*models.Course) ([]models.Course, error) {
	ids := make([]string, 0, len(courses))
	seen := make(map[string]bool, len(courses))
	for _, c := range courses {
		if !seen[c.TeacherID] {
			seen[c.TeacherID] = true
			ids = append(ids, c.TeacherID)
		}
	}

	teachers, err := s.repo.User().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve teachers: %w", err)
	}
	names := make(map[string]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.DisplayName
	}

	out := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		course := *c
		course.TeacherName = names[c.TeacherID]
		if course.TeacherName == "" {
			course.TeacherName = "Unknown"
		}
		out = append(out, course)
	}
	return out, nil
}

func (s *rosterService) publish(ctx context.Context, topic string, payload interface{}) {
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.Warn("Failed to publish event", "topic", topic, "error", err)
	}
}
