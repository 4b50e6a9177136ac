package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// DistributorHandler handles HTTP requests for distributor records.
type DistributorHandler struct {
	service ports.DistributorService
}

func NewDistributorHandler(service ports.DistributorService) *DistributorHandler {
	return &DistributorHandler{service: service}
}

type distributorRequest struct {
	Name        string `json:"name" validate:"required"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type listDistributorsResponse struct {
	Data       []*domain.Distributor `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

func (r distributorRequest) toInput() ports.DistributorInput {
	return ports.DistributorInput{
		Name:        r.Name,
		ContactName: r.ContactName,
		Email:       r.Email,
		Phone:       r.Phone,
		Notes:       r.Notes,
	}
}

// Create handles POST /v1/distributors.
//
// @Summary      Create a distributor
// @Tags         distributors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      distributorRequest  true  "Distributor details"
// @Success      201   {object}  domain.Distributor
// @Failure      422   {object}  errorResponse
// @Router       /v1/distributors [post]
func (h *DistributorHandler) Create(c echo.Context) error {
	var req distributorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	dist, err := h.service.CreateDistributor(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dist)
}

// Get handles GET /v1/distributors/:id.
//
// @Summary      Get a distributor
// @Tags         distributors
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Distributor id"
// @Success      200  {object}  domain.Distributor
// @Failure      404  {object}  errorResponse
// @Router       /v1/distributors/{id} [get]
func (h *DistributorHandler) Get(c echo.Context) error {
	dist, err := h.service.GetDistributor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dist)
}

// Update handles PUT /v1/distributors/:id.
//
// @Summary      Update a distributor
// @Tags         distributors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Distributor id"
// @Param        body  body      distributorRequest  true  "Distributor details"
// @Success      200   {object}  domain.Distributor
// @Failure      404   {object}  errorResponse
// @Router       /v1/distributors/{id} [put]
func (h *DistributorHandler) Update(c echo.Context) error {
	var req distributorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	dist, err := h.service.UpdateDistributor(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dist)
}

// Delete handles DELETE /v1/distributors/:id.
//
// @Summary      Delete a distributor
// @Tags         distributors
// @Security     BearerAuth
// @Param        id  path  string  true  "Distributor id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/distributors/{id} [delete]
func (h *DistributorHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteDistributor(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/distributors.
//
// @Summary      List distributors
// @Tags         distributors
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "Name substring search"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  listDistributorsResponse
// @Router       /v1/distributors [get]
func (h *DistributorHandler) List(c echo.Context) error {
	result, err := h.service.ListDistributors(c.Request().Context(), ports.ListDistributorsInput{
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listDistributorsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
