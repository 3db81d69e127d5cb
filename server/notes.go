package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/model"
	"github.com/existflow/sticky/internal/notes"
	"github.com/labstack/echo/v4"
)

// noteRequest is the body of create and update calls. dueAt accepts the
// datetime-local layout as well as RFC 3339.
type noteRequest struct {
	Title string  `json:"title"`
	Body  string  `json:"body"`
	Color string  `json:"color"`
	DueAt *string `json:"dueAt"`
}

func (r noteRequest) form() (model.FormData, error) {
	form := model.FormData{Title: r.Title, Body: r.Body, Color: r.Color}
	if r.DueAt != nil && strings.TrimSpace(*r.DueAt) != "" {
		due, err := model.ParseTime(*r.DueAt, time.Local)
		if err != nil {
			return form, err
		}
		form.DueAt = &due
	}
	return form, nil
}

type notifiedRequest struct {
	Notified *bool `json:"notified"`
}

func (s *Server) handleListNotes(c echo.Context) error {
	filter, err := model.ParseFilter(c.QueryParam("filter"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}

	list := s.store.List(filter, c.QueryParam("q"))
	if list == nil {
		list = []model.Note{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetNote(c echo.Context) error {
	n, ok := s.store.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody(notes.ErrNotFound.Error()))
	}
	return c.JSON(http.StatusOK, n)
}

func (s *Server) handleCreateNote(c echo.Context) error {
	form, err := s.bindNote(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}

	n, err := s.store.Create(form)
	if err != nil {
		return s.writeError(c, err)
	}

	s.log.Info("Note created", logger.F("id", n.ID))
	return c.JSON(http.StatusCreated, n)
}

func (s *Server) handleUpdateNote(c echo.Context) error {
	form, err := s.bindNote(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}

	n, found, err := s.store.Update(c.Param("id"), form)
	if err != nil {
		return s.writeError(c, err)
	}
	if !found {
		return c.JSON(http.StatusNotFound, errorBody(notes.ErrNotFound.Error()))
	}
	return c.JSON(http.StatusOK, n)
}

func (s *Server) handleDeleteNote(c echo.Context) error {
	if !s.store.Delete(c.Param("id")) {
		return c.JSON(http.StatusNotFound, errorBody(notes.ErrNotFound.Error()))
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleClearNotes(c echo.Context) error {
	s.store.ClearAll()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleSetNotified(c echo.Context) error {
	var req notifiedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if req.Notified == nil {
		return c.JSON(http.StatusBadRequest, errorBody("notified is required"))
	}

	id := c.Param("id")
	if !s.store.SetNotified(id, *req.Notified) {
		return c.JSON(http.StatusNotFound, errorBody(notes.ErrNotFound.Error()))
	}
	n, _ := s.store.Get(id)
	return c.JSON(http.StatusOK, n)
}

func (s *Server) bindNote(c echo.Context) (model.FormData, error) {
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return model.FormData{}, errors.New("invalid request body")
	}
	return req.form()
}

// writeError maps store errors to status codes
func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case notes.IsValidation(err):
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, notes.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody(err.Error()))
	default:
		return err
	}
}
