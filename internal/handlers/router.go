package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubase/school-service/internal/events"
	"github.com/edubase/school-service/internal/identity"
	"github.com/edubase/school-service/internal/models"
	"github.com/edubase/school-service/internal/services"
	"github.com/edubase/school-service/internal/utils"
	"github.com/edubase/school-service/internal/validator"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	userHandler    *UserHandler
	courseHandler  *CourseHandler
	gradeHandler   *GradeHandler
	authMiddleware *CasdoorAuthMiddleware
	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	gateway identity.Gateway,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(gateway, serviceManager.Directory(), publisher, validator, logger),
		userHandler:    NewUserHandler(serviceManager.Directory(), validator, logger),
		courseHandler:  NewCourseHandler(serviceManager.Roster(), logger),
		gradeHandler:   NewGradeHandler(serviceManager.Roster(), serviceManager.Export(), logger),
		authMiddleware: NewCasdoorAuthMiddleware(gateway, serviceManager.Directory(), logger),
		serviceManager: serviceManager,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	// Authentication endpoints sit outside the protected group.
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/signup", hm.authHandler.SignUp)
		auth.POST("/signin", hm.authHandler.SignIn)
		auth.POST("/provider", hm.authHandler.SignInWithProvider)
	}

	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		v1.POST("/auth/signout", hm.authHandler.SignOut)

		// Directory - admin only, except the self profile.
		users := v1.Group("/users")
		{
			users.GET("/me", hm.userHandler.GetMe)
			users.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.ListUsers)
			users.PUT("/:id/role", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.UpdateRole)
			users.GET("/:id/grades", hm.gradeHandler.StudentGrades)
		}

		// Courses and rosters.
		courses := v1.Group("/courses")
		{
			courses.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.courseHandler.ListCourses)
			courses.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.courseHandler.CreateCourse)
			courses.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.courseHandler.DeleteCourse)

			courses.GET("/:id/enrollments", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.courseHandler.ListEnrollments)
			courses.POST("/:id/students/:student_id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.courseHandler.EnrollStudent)
			courses.DELETE("/:id/students/:student_id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.courseHandler.UnenrollStudent)
			courses.PUT("/:id/students/:student_id/scores", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.courseHandler.RecordScores)

			courses.GET("/:id/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.gradeHandler.ExportGradeSheet)
		}

		// Role-scoped self views.
		v1.GET("/students/me/grades", hm.gradeHandler.MyGrades)
		v1.GET("/teachers/me/courses", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.gradeHandler.MyCourses)
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
