package app

import (
	"github.com/Mochytk/INF225-Informagicos/docs"
	"github.com/Mochytk/INF225-Informagicos/internal/config"
	"github.com/Mochytk/INF225-Informagicos/internal/middleware"
	"github.com/Mochytk/INF225-Informagicos/pkg/monitoring"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// 1. public routes
	a.registerPublicRoutes(api, c, cfg)

	// 2. any authenticated user
	authGroup := api.Group("")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)

		// 3. teachers and staff; the role check runs before any lookup
		teacherGroup := authGroup.Group("")
		teacherGroup.Use(middleware.TeacherOrStaffMiddleware())
		a.registerTeacherRoutes(teacherGroup, c)

		// 4. admins and staff
		adminGroup := authGroup.Group("")
		adminGroup.Use(middleware.AdminMiddleware())
		adminGroup.PUT("/users/:userId/role", c.auth.SetRole)
	}
}

func (a *App) registerPublicRoutes(rg *gin.RouterGroup, c *controllers, cfg *config.Config) {
	rg.GET("/health", c.health.HealthCheck)
	rg.POST("/register", c.auth.Register)
	rg.POST("/login", c.auth.Login)
	rg.GET("/tags", c.tag.ListTags)

	// optional auth: teachers see correct options
	rg.GET("/exams", middleware.TryAuthMiddleware(cfg), c.exam.ListExams)
	rg.GET("/exams/:examId", middleware.TryAuthMiddleware(cfg), c.exam.GetExam)
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/current_user", c.auth.CurrentUser)

	rg.POST("/exams/:examId/submit", c.submission.Submit)
	rg.GET("/exams/:examId/results/mine", c.review.MyResults)
	rg.GET("/exams/:examId/results/:resultId/review", c.review.Review)
	rg.GET("/completed-exams", c.review.CompletedExams)

	// legacy frontend paths
	rg.POST("/ensayos/:examId/submit", c.submission.Submit)
	rg.GET("/ensayos/:examId/results/:resultId/review", c.review.Review)
	rg.GET("/ensayos/completados", c.review.CompletedExams)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/exams/:examId/results/summary", c.summary.Summary)
	rg.GET("/exams/:examId/questions/:questionId/breakdown", c.summary.Breakdown)
	rg.PATCH("/questions/:questionId/explanation", c.review.UpdateExplanation)

	rg.POST("/exams", c.exam.CreateExam)
	rg.PUT("/exams/:examId", c.exam.UpdateExam)
	rg.DELETE("/exams/:examId", c.exam.DeleteExam)
	rg.POST("/exams/:examId/questions", c.exam.CreateQuestion)
	rg.PUT("/questions/:questionId", c.exam.UpdateQuestion)
	rg.DELETE("/questions/:questionId", c.exam.DeleteQuestion)
	rg.POST("/questions/:questionId/image", c.exam.UploadQuestionImage)
	rg.POST("/tags", c.tag.CreateTag)

	rg.GET("/ensayos/:examId/results/summary", c.summary.Summary)
	rg.GET("/ensayos/:examId/questions/:questionId/breakdown", c.summary.Breakdown)
	rg.PATCH("/preguntas/:questionId/explicacion", c.review.UpdateExplanation)
}
