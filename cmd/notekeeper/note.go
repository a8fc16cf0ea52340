package main

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notekeeper/notes"
	"github.com/oliverisaac/notekeeper/types"
	"github.com/pkg/errors"
)

const createdAtLayout = "2006-01-02 15:04:05"

type createNoteRequest struct {
	Title   string `json:"title" validate:"required,notblank,min=3,max=100"`
	Content string `json:"content" validate:"required,notblank,min=10"`
}

type patchNoteRequest struct {
	Title   *string `json:"title" validate:"omitnil,notblank,min=3,max=100"`
	Content *string `json:"content" validate:"omitnil,notblank,min=10"`
}

type noteResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type listMetaResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type noteListResponse struct {
	Meta  listMetaResponse `json:"meta"`
	Items []noteResponse   `json:"items"`
}

func newNoteResponse(n types.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UTC().Format(createdAtLayout),
	}
}

func newNoteListResponse(l types.NoteList) noteListResponse {
	ret := noteListResponse{
		Meta:  listMetaResponse{Page: l.Meta.Page, Limit: l.Meta.Limit, Total: l.Meta.Total},
		Items: make([]noteResponse, 0, len(l.Items)),
	}
	for _, n := range l.Items {
		ret.Items = append(ret.Items, newNoteResponse(n))
	}
	return ret
}

func createNote(svc *notes.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createNoteRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON Body")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		note, err := svc.Create(c.Request().Context(), GetSessionUser(c), req.Title, req.Content)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusCreated, newNoteResponse(note))
	}
}

func readNote(svc *notes.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := noteID(c)
		if err != nil {
			return err
		}

		note, err := svc.Read(c.Request().Context(), GetSessionUser(c), id)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, newNoteResponse(note))
	}
}

func listNotes(svc *notes.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := types.ListParams{
			Page:   queryInt(c, "page"),
			Limit:  queryInt(c, "limit"),
			SortBy: c.QueryParam("sortBy"),
			Order:  c.QueryParam("order"),
			Search: c.QueryParam("search"),
		}

		list, err := svc.List(c.Request().Context(), GetSessionUser(c), params)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{"notes": newNoteListResponse(list)})
	}
}

func patchNote(svc *notes.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := noteID(c)
		if err != nil {
			return err
		}

		var req patchNoteRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON Body")
		}

		patch := types.NotePatch{Title: req.Title, Content: req.Content}
		if patch.IsEmpty() {
			return echo.NewHTTPError(http.StatusBadRequest, "Empty PATCH Body")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		note, err := svc.Patch(c.Request().Context(), GetSessionUser(c), id, patch)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, newNoteResponse(note))
	}
}

func deleteNote(svc *notes.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := noteID(c)
		if err != nil {
			return err
		}

		if err := svc.Delete(c.Request().Context(), GetSessionUser(c), id); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// noteID parses the :id path parameter. Anything that is not a positive
// integer names no note.
func noteID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Wrapf(types.ErrNotFound, "No note found for id %s", c.Param("id"))
	}
	return uint(id), nil
}

// queryInt reads an integer query parameter, treating junk as zero so the
// listing defaults apply.
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
