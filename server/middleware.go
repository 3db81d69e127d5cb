package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/existflow/sticky/internal/logger"
	"github.com/labstack/echo/v4"
)

// requestLogger logs every request and its response
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		s.log.Debug("HTTP Request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("remote", req.RemoteAddr))

		err := next(c)
		if err != nil {
			// resolve the status before logging it
			c.Error(err)
		}

		res := c.Response()
		duration := time.Since(start)

		s.log.Info("HTTP Response",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", duration.String()))

		if s.accessLog != nil {
			fmt.Fprintf(s.accessLog, "REQUEST: %s %s  status=%d  size=%d  duration=%s\n",
				req.Method, req.RequestURI, res.Status, res.Size, duration)
		}

		return nil
	}
}

// errorHandler renders every error as {"error": "..."}
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		s.log.Error("Unhandled error", logger.F("uri", c.Request().RequestURI), logger.F("error", err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorBody(msg))
	}
	if err != nil {
		s.log.Error("Failed to write error response", logger.F("error", err))
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
