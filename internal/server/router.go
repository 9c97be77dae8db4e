package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ai-compliance/internal/config"
	"ai-compliance/internal/handlers"
	"ai-compliance/internal/middleware"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.InjectActor())

	api := r.Group("/api")

	// ОРГАНИЗАЦИИ
	api.POST("/orgs", handlers.CreateOrganization)
	api.GET("/orgs", handlers.ListOrganizations)

	// СИСТЕМЫ (СУБЪЕКТЫ ОЦЕНКИ)
	api.POST("/systems", handlers.CreateSystem)
	api.GET("/systems", handlers.ListSystems)
	api.GET("/systems/:id", handlers.ShowSystem)

	// ОТВЕТЫ СКРИНИНГА
	api.PUT("/systems/:id/answers", handlers.PutAnswers)
	api.GET("/systems/:id/answers", handlers.GetAnswers)

	// КЛАССИФИКАЦИЯ И ЖУРНАЛ
	api.POST("/systems/:id/classify", handlers.ClassifySystem)
	api.GET("/systems/:id/classification", handlers.CurrentClassification)
	api.GET("/systems/:id/classification/history", handlers.ClassificationHistory)
	api.POST("/systems/:id/classification/reassessment", handlers.FlagReassessment)

	// КОНТРОЛИ
	api.GET("/systems/:id/controls", handlers.ListControls)
	api.POST("/systems/:id/controls/:code/status", handlers.UpdateControlStatus)

	// ДОКАЗАТЕЛЬСТВА
	api.POST("/systems/:id/evidence", handlers.CreateEvidence)
	api.GET("/systems/:id/evidence", handlers.ListEvidence)
	api.POST("/systems/:id/evidence/:eid/status", handlers.UpdateEvidenceStatus)

	// ЗАДАЧИ
	api.POST("/systems/:id/tasks", handlers.CreateTask)
	api.GET("/systems/:id/tasks", handlers.ListTasks)
	api.POST("/systems/:id/tasks/:tid/status", handlers.UpdateTaskStatus)

	// ПРОВАЙДЕРСКИЕ АРТЕФАКТЫ
	api.GET("/systems/:id/artifacts", handlers.ListArtifacts)
	api.POST("/systems/:id/artifacts/:category/status", handlers.UpsertArtifactStatus)

	// ОТЧЁТЫ: ПРОБЕЛЫ И ГОТОВНОСТЬ
	api.GET("/systems/:id/gaps", handlers.ShowGaps)
	api.GET("/systems/:id/readiness", handlers.ShowReadiness)
	api.GET("/systems/:id/readiness/provider", handlers.ShowProviderReadiness)

	// АУДИТ
	api.GET("/audit", handlers.ListAuditLogs)

	// HEALTHCHECK + МЕТРИКИ
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
