package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// AssetHandler handles HTTP requests for accessibility media assets.
type AssetHandler struct {
	service ports.AssetService
}

func NewAssetHandler(service ports.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

type assetRequest struct {
	MovieID         string `json:"movie_id" validate:"required"`
	Kind            string `json:"kind"     validate:"required,oneof=audio_description captions sign_language"`
	Language        string `json:"language" validate:"required"`
	Format          string `json:"format,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty" validate:"omitempty,gt=0"`
	SizeBytes       int64  `json:"size_bytes,omitempty"       validate:"omitempty,gt=0"`
	StorageKey      string `json:"storage_key,omitempty"`
	Status          string `json:"status" validate:"required,oneof=draft in_review approved delivered"`
}

type listAssetsResponse struct {
	Data       []*domain.Asset    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func (r assetRequest) toInput() ports.AssetInput {
	return ports.AssetInput{
		MovieID:         r.MovieID,
		Kind:            r.Kind,
		Language:        r.Language,
		Format:          r.Format,
		DurationSeconds: r.DurationSeconds,
		SizeBytes:       r.SizeBytes,
		StorageKey:      r.StorageKey,
		Status:          r.Status,
	}
}

// Create handles POST /v1/assets.
//
// @Summary      Register a media asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assetRequest  true  "Asset details"
// @Success      201   {object}  domain.Asset
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/assets [post]
func (h *AssetHandler) Create(c echo.Context) error {
	var req assetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	asset, err := h.service.CreateAsset(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, asset)
}

// Get handles GET /v1/assets/:id.
//
// @Summary      Get a media asset
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Asset id"
// @Success      200  {object}  domain.Asset
// @Failure      404  {object}  errorResponse
// @Router       /v1/assets/{id} [get]
func (h *AssetHandler) Get(c echo.Context) error {
	asset, err := h.service.GetAsset(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, asset)
}

// Update handles PUT /v1/assets/:id. A changed storage key bumps the asset
// version.
//
// @Summary      Update a media asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Asset id"
// @Param        body  body      assetRequest  true  "Asset details"
// @Success      200   {object}  domain.Asset
// @Failure      404   {object}  errorResponse
// @Router       /v1/assets/{id} [put]
func (h *AssetHandler) Update(c echo.Context) error {
	var req assetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	asset, err := h.service.UpdateAsset(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, asset)
}

// Delete handles DELETE /v1/assets/:id.
//
// @Summary      Delete a media asset
// @Tags         assets
// @Security     BearerAuth
// @Param        id  path  string  true  "Asset id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/assets/{id} [delete]
func (h *AssetHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteAsset(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/assets.
//
// @Summary      List media assets
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        movie_id  query  string  false  "Filter by movie"
// @Param        kind      query  string  false  "Filter by asset kind"
// @Param        status    query  string  false  "Filter by review status"
// @Param        language  query  string  false  "Filter by language code"
// @Param        page      query  int     false  "Page number"
// @Param        limit     query  int     false  "Page size"
// @Success      200  {object}  listAssetsResponse
// @Router       /v1/assets [get]
func (h *AssetHandler) List(c echo.Context) error {
	result, err := h.service.ListAssets(c.Request().Context(), ports.ListAssetsInput{
		MovieID:  c.QueryParam("movie_id"),
		Kind:     c.QueryParam("kind"),
		Status:   c.QueryParam("status"),
		Language: c.QueryParam("language"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listAssetsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
