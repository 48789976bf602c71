package app

import (
	"tryout_backend/docs"
	"tryout_backend/internal/config"
	"tryout_backend/internal/middleware"
	"tryout_backend/internal/util"
	"tryout_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.GET("/api/health", c.health.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// 1. 读接口与判分，无需登录
		a.registerPublicRoutes(v1, c)

		// 2. 写接口，jwt.enabled 时需要出题人 token
		authorGroup := v1.Group("")
		authorGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(util.RoleAuthor))
		a.registerAuthorRoutes(authorGroup, c)
	}
}

func (a *App) registerPublicRoutes(r *gin.RouterGroup, c *controllers) {
	r.GET("/tryouts", c.tryout.ListTryouts)
	r.GET("/tryouts/:id", c.tryout.GetTryout)
	r.GET("/tryouts/:id/questions", c.question.ListQuestions)
	r.GET("/questions/:id", c.question.GetQuestion)
	r.POST("/tryouts/:id/score", c.score.ScoreTryout)
}

func (a *App) registerAuthorRoutes(r *gin.RouterGroup, c *controllers) {
	r.POST("/tryouts", c.tryout.CreateTryout)
	r.PATCH("/tryouts/:id", c.tryout.UpdateTryout)
	r.DELETE("/tryouts/:id", c.tryout.DeleteTryout)
	r.POST("/tryouts/:id/export", c.tryout.ExportTryout)

	r.POST("/tryouts/:id/questions", c.question.CreateQuestion)
	r.PATCH("/questions/:id", c.question.UpdateQuestion)
	r.DELETE("/questions/:id", c.question.DeleteQuestion)
}
