package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// GuidelineHandler handles HTTP requests for production guideline documents.
type GuidelineHandler struct {
	service ports.GuidelineService
}

func NewGuidelineHandler(service ports.GuidelineService) *GuidelineHandler {
	return &GuidelineHandler{service: service}
}

type guidelineRequest struct {
	Title    string `json:"title" validate:"required"`
	Category string `json:"category,omitempty"`
	Body     string `json:"body"  validate:"required"`
}

type listGuidelinesResponse struct {
	Data       []*domain.Guideline `json:"data"`
	Pagination paginationResponse  `json:"pagination"`
}

// Create handles POST /v1/guidelines.
//
// @Summary      Create a guideline document
// @Tags         guidelines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      guidelineRequest  true  "Guideline content"
// @Success      201   {object}  domain.Guideline
// @Failure      422   {object}  errorResponse
// @Router       /v1/guidelines [post]
func (h *GuidelineHandler) Create(c echo.Context) error {
	var req guidelineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	doc, err := h.service.CreateGuideline(c.Request().Context(), ports.GuidelineInput{
		Title:    req.Title,
		Category: req.Category,
		Body:     req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// Get handles GET /v1/guidelines/:id.
//
// @Summary      Get a guideline document
// @Tags         guidelines
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Guideline id"
// @Success      200  {object}  domain.Guideline
// @Failure      404  {object}  errorResponse
// @Router       /v1/guidelines/{id} [get]
func (h *GuidelineHandler) Get(c echo.Context) error {
	doc, err := h.service.GetGuideline(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Update handles PUT /v1/guidelines/:id. Every update bumps the document
// version.
//
// @Summary      Update a guideline document
// @Tags         guidelines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Guideline id"
// @Param        body  body      guidelineRequest  true  "Guideline content"
// @Success      200   {object}  domain.Guideline
// @Failure      404   {object}  errorResponse
// @Router       /v1/guidelines/{id} [put]
func (h *GuidelineHandler) Update(c echo.Context) error {
	var req guidelineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	doc, err := h.service.UpdateGuideline(c.Request().Context(), c.Param("id"), ports.GuidelineInput{
		Title:    req.Title,
		Category: req.Category,
		Body:     req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /v1/guidelines/:id.
//
// @Summary      Delete a guideline document
// @Tags         guidelines
// @Security     BearerAuth
// @Param        id  path  string  true  "Guideline id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/guidelines/{id} [delete]
func (h *GuidelineHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteGuideline(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/guidelines.
//
// @Summary      List guideline documents
// @Tags         guidelines
// @Produce      json
// @Security     BearerAuth
// @Param        category  query  string  false  "Filter by category"
// @Param        search    query  string  false  "Title substring search"
// @Param        page      query  int     false  "Page number"
// @Param        limit     query  int     false  "Page size"
// @Success      200  {object}  listGuidelinesResponse
// @Router       /v1/guidelines [get]
func (h *GuidelineHandler) List(c echo.Context) error {
	result, err := h.service.ListGuidelines(c.Request().Context(), ports.ListGuidelinesInput{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listGuidelinesResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
