package server

import (
	"net/http"

	"github.com/existflow/sticky/internal/logger"
	"github.com/labstack/echo/v4"
)

type themeRequest struct {
	Dark *bool `json:"dark"`
}

func (s *Server) handleGetTheme(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"dark": s.theme.Dark()})
}

func (s *Server) handleSetTheme(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil || req.Dark == nil {
		return c.JSON(http.StatusBadRequest, errorBody("dark is required"))
	}

	if err := s.theme.SetDark(*req.Dark); err != nil {
		s.log.Warn("Failed to save theme", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, errorBody("failed to save theme"))
	}
	return c.JSON(http.StatusOK, map[string]bool{"dark": *req.Dark})
}
