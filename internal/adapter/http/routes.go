package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Deps struct {
	Health   *Handler
	Analysis *AnalysisHandler
	// ResponseCache is nil when redis is not configured.
	ResponseCache echo.MiddlewareFunc
}

// NewEcho builds the web service: HTML form flow, JSON endpoints and health.
func NewEcho(d Deps) (*echo.Echo, error) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.Renderer = renderer
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		middleware.Logger(),
		middleware.Recover(),
	)

	// routes
	e.GET("/health", d.Health.Health)
	e.GET("/", d.Analysis.Index)
	e.GET("/form", d.Analysis.Form)
	e.POST("/analyze-form", d.Analysis.AnalyzeForm)

	var api []echo.MiddlewareFunc
	if d.ResponseCache != nil {
		api = append(api, d.ResponseCache)
	}
	e.POST("/analyze", d.Analysis.Analyze, api...)
	e.POST("/api/v1/analyses", d.Analysis.CreateAnalysis, api...)

	return e, nil
}
