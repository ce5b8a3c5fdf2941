package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"notes-service/internal/application/command"
	"notes-service/internal/application/query"
)

func (h *Handler) GetNote(c echo.Context) error {
	noteID, err := bindNoteID(c)
	if err != nil {
		return err
	}

	result, err := h.noteService.GetNote(c.Request().Context(), &query.GetNoteQuery{
		NoteId:   noteID,
		CallerId: callerID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ListNotes(c echo.Context) error {
	var req listNotesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.noteService.ListNotes(c.Request().Context(), &query.ListNotesQuery{
		CallerId: callerID(c),
		Page:     req.Page,
		PerPage:  req.PerPage,
		SortBy:   req.SortBy,
		Order:    req.Order,
		Tag:      req.Tag,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) CreateNote(c echo.Context) error {
	var req createNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.noteService.CreateNote(c.Request().Context(), &command.CreateNoteCommand{
		Title:    req.Title,
		Content:  req.Content,
		UserId:   req.UserID,
		CallerId: callerID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) UpdateNote(c echo.Context) error {
	noteID, err := bindNoteID(c)
	if err != nil {
		return err
	}
	var req updateNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.noteService.UpdateNote(c.Request().Context(), &command.UpdateNoteCommand{
		NoteId:   noteID,
		CallerId: callerID(c),
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteNote(c echo.Context) error {
	noteID, err := bindNoteID(c)
	if err != nil {
		return err
	}

	result, err := h.noteService.DeleteNote(c.Request().Context(), &command.DeleteNoteCommand{
		NoteId:   noteID,
		CallerId: callerID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) AttachTag(c echo.Context) error {
	cmd, err := noteTagCommand(c)
	if err != nil {
		return err
	}

	result, err := h.noteService.AttachTag(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) DetachTag(c echo.Context) error {
	cmd, err := noteTagCommand(c)
	if err != nil {
		return err
	}

	result, err := h.noteService.DetachTag(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ShareNote(c echo.Context) error {
	noteID, err := bindNoteID(c)
	if err != nil {
		return err
	}
	var req shareNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.noteService.ShareNote(c.Request().Context(), &command.ShareNoteCommand{
		NoteId:   noteID,
		CallerId: callerID(c),
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func noteTagCommand(c echo.Context) (*command.NoteTagCommand, error) {
	noteID, err := bindNoteID(c)
	if err != nil {
		return nil, err
	}
	tagID, err := bindTagID(c)
	if err != nil {
		return nil, err
	}
	return &command.NoteTagCommand{NoteId: noteID, TagId: tagID, CallerId: callerID(c)}, nil
}
