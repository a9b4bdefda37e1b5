package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubase/school-service/internal/services"
	"github.com/edubase/school-service/internal/utils"
)

// GradeHandler exposes the per-user views: a student's own grade report, a
// teacher's own courses, and the grade sheet export.
type GradeHandler struct {
	BaseHandler
	roster services.RosterService
	export services.ExportService
}

func NewGradeHandler(roster services.RosterService, export services.ExportService, logger utils.Logger) *GradeHandler {
	return &GradeHandler{
		BaseHandler: NewBaseHandler(logger),
		roster:      roster,
		export:      export,
	}
}

// MyGrades returns the caller's enrollments with computed final scores.
func (h *GradeHandler) MyGrades(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	entries, err := h.roster.ListCoursesForStudent(c.Request.Context(), actor, actor.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// StudentGrades returns a given student's grade report.
func (h *GradeHandler) StudentGrades(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	entries, err := h.roster.ListCoursesForStudent(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// MyCourses returns the courses the calling teacher owns.
func (h *GradeHandler) MyCourses(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	courses, err := h.roster.ListCoursesForTeacher(c.Request.Context(), actor, actor.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// ExportGradeSheet streams the course roster as an xlsx download.
func (h *GradeHandler) ExportGradeSheet(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}

	courseID := c.Param("id")
	h.LogRequest(c, "Exporting grade sheet", "course_id", courseID)

	data, filename, err := h.export.ExportGradeSheet(c.Request.Context(), actor, courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
