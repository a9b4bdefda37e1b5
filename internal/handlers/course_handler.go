package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubase/school-service/internal/services"
	"github.com/edubase/school-service/internal/utils"
)

// CourseHandler exposes course and roster management endpoints.
type CourseHandler struct {
	BaseHandler
	roster services.RosterService
}

func NewCourseHandler(roster services.RosterService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		roster:      roster,
	}
}

// CreateCourse creates a course assigned to a teacher.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	course, err := h.roster.CreateCourse(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// ListCourses returns every course with resolved teacher names.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	courses, err := h.roster.ListCourses(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// DeleteCourse removes a course and its enrollments.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	courseID := c.Param("id")
	h.LogRequest(c, "Deleting course", "course_id", courseID)

	if err := h.roster.DeleteCourse(c.Request.Context(), actor, courseID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Course deleted"})
}

// ListEnrollments returns the course roster with resolved student profiles.
func (h *CourseHandler) ListEnrollments(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	entries, err := h.roster.ListEnrollments(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// EnrollStudent adds a student to the course roster.
func (h *CourseHandler) EnrollStudent(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	courseID := c.Param("id")
	studentID := c.Param("student_id")
	h.LogRequest(c, "Enrolling student", "course_id", courseID, "student_id", studentID)

	if err := h.roster.EnrollStudent(c.Request.Context(), actor, courseID, studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "Student enrolled"})
}

// UnenrollStudent removes a student from the course roster.
func (h *CourseHandler) UnenrollStudent(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	courseID := c.Param("id")
	studentID := c.Param("student_id")
	h.LogRequest(c, "Unenrolling student", "course_id", courseID, "student_id", studentID)

	if err := h.roster.UnenrollStudent(c.Request.Context(), actor, courseID, studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Student unenrolled"})
}

// RecordScores overwrites the three score components of one enrollment.
func (h *CourseHandler) RecordScores(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	var req services.RecordScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	courseID := c.Param("id")
	studentID := c.Param("student_id")

	if err := h.roster.RecordScores(c.Request.Context(), actor, courseID, studentID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Scores recorded"})
}
