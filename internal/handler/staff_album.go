package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/example/mediatheque/internal/model"
	"github.com/example/mediatheque/internal/repository"
)

// StaffAlbumHandler implements the staff-only catalog mutations.
// Routes are mounted behind RequireStaff, so a request reaching any
// of these methods already carries an Admin or Employee identity.
type StaffAlbumHandler struct {
	Albums *repository.AlbumRepo
}

func NewStaffAlbumHandler(albums *repository.AlbumRepo) *StaffAlbumHandler {
	if albums == nil {
		panic("nil repository passed to NewStaffAlbumHandler")
	}
	return &StaffAlbumHandler{Albums: albums}
}

type albumReq struct {
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	ReleaseYear *int    `json:"release_year"`
	Label       *string `json:"label"`
}

// validate trims and checks the request before anything touches the
// store. Returns a user-facing message when the input is rejected.
func (r *albumReq) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	r.Artist = strings.TrimSpace(r.Artist)
	if r.Title == "" {
		return "title is required"
	}
	if r.Artist == "" {
		return "artist is required"
	}
	if r.ReleaseYear != nil && (*r.ReleaseYear < 1000 || *r.ReleaseYear > 2100) {
		return "release_year is out of range"
	}
	if r.Label != nil {
		l := strings.TrimSpace(*r.Label)
		if l == "" {
			r.Label = nil
		} else {
			r.Label = &l
		}
	}
	return ""
}

// CreateAlbum handles POST /v1/albums.
func (h *StaffAlbumHandler) CreateAlbum(c echo.Context) error {
	var req albumReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	album := &model.Album{
		Title:       req.Title,
		Artist:      req.Artist,
		ReleaseYear: req.ReleaseYear,
		Label:       req.Label,
	}
	if err := h.Albums.Create(c.Request().Context(), album); err != nil {
		c.Logger().Errorf("create album: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create album"})
	}
	return c.JSON(http.StatusCreated, album)
}

// UpdateAlbum handles PUT/PATCH /v1/albums/:id.
func (h *StaffAlbumHandler) UpdateAlbum(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req albumReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	album := &model.Album{
		ID:          id,
		Title:       req.Title,
		Artist:      req.Artist,
		ReleaseYear: req.ReleaseYear,
		Label:       req.Label,
	}
	if err := h.Albums.Update(c.Request().Context(), album); err != nil {
		if err == repository.ErrAlbumNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "album not found"})
		}
		c.Logger().Errorf("update album %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Albums.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, album)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteAlbum handles DELETE /v1/albums/:id. Albums that still have
// copies or reservations attached cannot be removed; the referential
// rejection from the store is reported as a conflict with a generic
// message.
func (h *StaffAlbumHandler) DeleteAlbum(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Albums.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrAlbumNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "album not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete this album: copies or reservations still reference it"})
		default:
			c.Logger().Errorf("delete album %d: %v", id, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
