package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/unidash/unidash/internal/config"
	"github.com/unidash/unidash/internal/middleware"
	"github.com/unidash/unidash/internal/modules/handler"
	"github.com/unidash/unidash/internal/modules/serializer"
	"github.com/unidash/unidash/internal/telemetry"
)

type RouterDeps struct {
	Config            *config.Config
	Log               *zap.Logger
	ViewHandler       *handler.ViewHandler
	ColumnHandler     *handler.ColumnHandler
	UniversityHandler *handler.UniversityHandler
	ValueHandler      *handler.ValueHandler
	CellFormatHandler *handler.CellFormatHandler
	AIHandler         *handler.AIHandler
	SeedHandler       *handler.SeedHandler
	DocumentHandler   *handler.DocumentHandler
	PlannerHandler    *handler.PlannerHandler
}

func NewRouter(d RouterDeps) (*gin.Engine, error) {
	serializer.SetLogger(d.Log)
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())

	if telemetry.Enabled(d.Config) {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		r.Use(telemetry.TraceIDMiddleware())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	v1 := r.Group("/api/v1")
	{
		v1.POST("/seed", d.SeedHandler.Seed)

		views := v1.Group("/views")
		{
			views.GET("", d.ViewHandler.ListViews)
			views.POST("", d.ViewHandler.CreateView)
			views.DELETE("/:view_id", d.ViewHandler.DeleteView)

			views.GET("/:view_id/columns", d.ColumnHandler.ListColumns)
			views.POST("/:view_id/columns", d.ColumnHandler.CreateColumn)

			views.GET("/:view_id/data", d.ViewHandler.GetViewData)
			views.POST("/:view_id/ai-refresh", d.AIHandler.RefreshView)
		}

		columns := v1.Group("/columns")
		{
			columns.PUT("/:column_id", d.ColumnHandler.UpdateColumn)
			columns.DELETE("/:column_id", d.ColumnHandler.DeleteColumn)
		}

		universities := v1.Group("/universities")
		{
			universities.GET("", d.UniversityHandler.ListUniversities)
			universities.POST("", d.UniversityHandler.CreateUniversity)
			universities.GET("/:university_id", d.UniversityHandler.GetUniversity)
			universities.PUT("/:university_id", d.UniversityHandler.UpdateUniversity)
			universities.DELETE("/:university_id", d.UniversityHandler.DeleteUniversity)
			universities.GET("/:university_id/history", d.UniversityHandler.GetUniversityHistory)
		}

		values := v1.Group("/values")
		{
			values.GET("", d.ValueHandler.GetValue)
			values.POST("", d.ValueHandler.UpsertValue)
			values.PUT("", d.ValueHandler.UpsertValue)
		}

		formats := v1.Group("/cell-formats")
		{
			formats.GET("/:view_id", d.CellFormatHandler.GetCellFormats)
			formats.POST("", d.CellFormatHandler.SetCellFormat)
			formats.DELETE("", d.CellFormatHandler.ClearCellFormat)
		}

		v1.POST("/ai", d.AIHandler.Generate)

		documents := v1.Group("/documents")
		{
			documents.GET("", d.DocumentHandler.ListDocuments)
			documents.POST("", d.DocumentHandler.CreateDocument)
			documents.GET("/:id", d.DocumentHandler.GetDocument)
			documents.DELETE("/:id", d.DocumentHandler.DeleteDocument)
		}

		applications := v1.Group("/applications")
		{
			applications.GET("", d.PlannerHandler.ListApplications)
			applications.POST("", d.PlannerHandler.CreateApplication)
			applications.PUT("/:id", d.PlannerHandler.UpdateApplication)
			applications.DELETE("/:id", d.PlannerHandler.DeleteApplication)
		}

		tasks := v1.Group("/tasks")
		{
			tasks.GET("", d.PlannerHandler.ListTasks)
			tasks.POST("", d.PlannerHandler.CreateTask)
			tasks.PUT("/:id", d.PlannerHandler.UpdateTask)
			tasks.DELETE("/:id", d.PlannerHandler.DeleteTask)
		}

		grades := v1.Group("/grades")
		{
			grades.GET("", d.PlannerHandler.ListGrades)
			grades.POST("", d.PlannerHandler.CreateGrade)
			grades.PUT("/:id", d.PlannerHandler.UpdateGrade)
			grades.DELETE("/:id", d.PlannerHandler.DeleteGrade)
		}
	}

	return r, nil
}
