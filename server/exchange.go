package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/existflow/sticky/internal/exchange"
	"github.com/existflow/sticky/internal/logger"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleExport(c echo.Context) error {
	all := s.store.All()
	name := exchange.FileName(s.store.Now())

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	res.WriteHeader(http.StatusOK)

	if err := exchange.Export(res, all); err != nil {
		s.log.Error("Export failed", logger.F("error", err))
		return err
	}
	s.log.Info("Notes exported", logger.F("count", len(all)))
	return nil
}

func (s *Server) handleImport(c echo.Context) error {
	imported, err := exchange.Import(c.Request().Body, exchange.Options{
		NewID: s.store.NewID,
		Now:   s.store.Now,
	})
	if err != nil {
		s.log.Warn("Import rejected", logger.F("error", err))
		if errors.Is(err, exchange.ErrInvalidFormat) {
			return c.JSON(http.StatusBadRequest, errorBody(exchange.ErrInvalidFormat.Error()))
		}
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}

	merged := s.store.Merge(imported)
	s.log.Info("Notes imported", logger.F("count", len(merged)))
	return c.JSON(http.StatusOK, map[string]any{
		"imported": len(merged),
		"notes":    merged,
	})
}
