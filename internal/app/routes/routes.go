package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/coursefeedback/internal/app/controllers"
)

// Controllers groups the handlers mounted by SetupRouter. Admin may be nil.
type Controllers struct {
	Course   *controllers.CourseController
	Student  *controllers.StudentController
	Feedback *controllers.FeedbackController
	Admin    *controllers.AdminController
	System   *controllers.SystemController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	router.GET("/", c.System.Banner)
	router.GET("/test", c.System.Test)
	router.GET("/ping", c.System.Ping)
	router.GET("/health", c.System.Health)

	courses := router.Group("/courses")
	{
		courses.POST("", c.Course.CreateCourse)
		courses.GET("", c.Course.GetAllCourses)
		courses.GET("/:code", c.Course.GetCourse)
		courses.PUT("/:code", c.Course.UpdateCourse)
		courses.DELETE("/:code", c.Course.DeleteCourse)
	}

	students := router.Group("/students")
	{
		students.POST("", c.Student.CreateStudent)
		students.GET("", c.Student.GetAllStudents)
		students.GET("/:email", c.Student.GetStudent)
		students.POST("/:email/enroll", c.Student.Enroll)
		students.GET("/:email/courses", c.Student.GetEnrolledCourses)
	}

	// GET takes a course code, PUT and DELETE take a feedback id.
	feedback := router.Group("/feedback")
	{
		feedback.POST("", c.Feedback.SubmitFeedback)
		feedback.GET("/:courseCode", c.Feedback.GetCourseFeedback)
		feedback.PUT("/:id", c.Feedback.UpdateFeedback)
		feedback.DELETE("/:id", c.Feedback.DeleteFeedback)
	}

	if c.Admin != nil {
		router.GET("/admin/test-data", c.Admin.CreateTestData)
	}

	router.NoRoute(c.System.NotFound)
}
