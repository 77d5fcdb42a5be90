package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/example/mediatheque/internal/repository"
)

// CatalogHandler serves the public, read-only catalog endpoints.
// Albums and their copies are browsable without authentication so
// visitors can see what the library holds before creating an
// account.
type CatalogHandler struct {
	Albums *repository.AlbumRepo
	Copies *repository.CopyRepo
}

func NewCatalogHandler(albums *repository.AlbumRepo, copies *repository.CopyRepo) *CatalogHandler {
	if albums == nil || copies == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Albums: albums, Copies: copies}
}

// ListAlbums handles GET /v1/albums. The whole catalog, no
// pagination.
func (h *CatalogHandler) ListAlbums(c echo.Context) error {
	items, err := h.Albums.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list albums: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load albums"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListAlbumCopies handles GET /v1/albums/:id/copies and returns the
// physical copies of one album, including their availability status.
func (h *CatalogHandler) ListAlbumCopies(c echo.Context) error {
	albumID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || albumID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid album id"})
	}
	if _, err := h.Albums.GetByID(c.Request().Context(), albumID); err != nil {
		if err == repository.ErrAlbumNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "album not found"})
		}
		c.Logger().Errorf("load album %d: %v", albumID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.Copies.ListByAlbum(c.Request().Context(), albumID)
	if err != nil {
		c.Logger().Errorf("list copies for album %d: %v", albumID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load copies"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
