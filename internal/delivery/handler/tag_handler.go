package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notes-service/internal/application/command"
	"notes-service/internal/application/query"
)

// CreateTag answers 201 for a new tag and 200 when the name already existed.
func (h *Handler) CreateTag(c echo.Context) error {
	var req createTagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, created, err := h.tagService.CreateTag(c.Request().Context(), &command.CreateTagCommand{Name: req.Name})
	if err != nil {
		return err
	}
	if created {
		return c.JSON(http.StatusCreated, result)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) AutocompleteTags(c echo.Context) error {
	var req autocompleteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.tagService.Autocomplete(c.Request().Context(), &query.TagAutocompleteQuery{
		Query: req.Query,
		Limit: req.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
