package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Sizer reports how many locations the catalog currently knows.
type Sizer interface{ Len() int }

type Handler struct{ catalog Sizer }

func NewHandler(catalog Sizer) *Handler { return &Handler{catalog: catalog} }

func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if h.catalog != nil {
		body["locations"] = h.catalog.Len()
	}
	return c.JSON(http.StatusOK, body)
}
