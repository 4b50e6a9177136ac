package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// PersonnelHandler handles HTTP requests for the production roster.
type PersonnelHandler struct {
	service ports.PersonnelService
}

func NewPersonnelHandler(service ports.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{service: service}
}

type personRequest struct {
	Name   string `json:"name" validate:"required"`
	Kana   string `json:"kana,omitempty"`
	Kind   string `json:"kind" validate:"required,oneof=voice_artist scriptwriter sign_interpreter staff"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  string `json:"phone,omitempty"`
	Agency string `json:"agency,omitempty"`
	Notes  string `json:"notes,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

type listPersonnelResponse struct {
	Data       []*domain.Person   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func (r personRequest) toInput() ports.PersonInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return ports.PersonInput{
		Name:   r.Name,
		Kana:   r.Kana,
		Kind:   r.Kind,
		Email:  r.Email,
		Phone:  r.Phone,
		Agency: r.Agency,
		Notes:  r.Notes,
		Active: active,
	}
}

// Create handles POST /v1/personnel.
//
// @Summary      Add a roster member
// @Tags         personnel
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      personRequest  true  "Person details"
// @Success      201   {object}  domain.Person
// @Failure      422   {object}  errorResponse
// @Router       /v1/personnel [post]
func (h *PersonnelHandler) Create(c echo.Context) error {
	var req personRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	person, err := h.service.CreatePerson(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, person)
}

// Get handles GET /v1/personnel/:id.
//
// @Summary      Get a roster member
// @Tags         personnel
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Person id"
// @Success      200  {object}  domain.Person
// @Failure      404  {object}  errorResponse
// @Router       /v1/personnel/{id} [get]
func (h *PersonnelHandler) Get(c echo.Context) error {
	person, err := h.service.GetPerson(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, person)
}

// Update handles PUT /v1/personnel/:id.
//
// @Summary      Update a roster member
// @Tags         personnel
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Person id"
// @Param        body  body      personRequest  true  "Person details"
// @Success      200   {object}  domain.Person
// @Failure      404   {object}  errorResponse
// @Router       /v1/personnel/{id} [put]
func (h *PersonnelHandler) Update(c echo.Context) error {
	var req personRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	person, err := h.service.UpdatePerson(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, person)
}

// Delete handles DELETE /v1/personnel/:id.
//
// @Summary      Remove a roster member
// @Tags         personnel
// @Security     BearerAuth
// @Param        id  path  string  true  "Person id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/personnel/{id} [delete]
func (h *PersonnelHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePerson(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/personnel.
//
// @Summary      List the production roster
// @Tags         personnel
// @Produce      json
// @Security     BearerAuth
// @Param        kind    query  string  false  "Filter by person kind"
// @Param        active  query  bool    false  "Only active members"
// @Param        search  query  string  false  "Name or kana substring search"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  listPersonnelResponse
// @Router       /v1/personnel [get]
func (h *PersonnelHandler) List(c echo.Context) error {
	result, err := h.service.ListPersonnel(c.Request().Context(), ports.ListPersonnelInput{
		Kind:       c.QueryParam("kind"),
		ActiveOnly: c.QueryParam("active") == "true",
		Search:     c.QueryParam("search"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listPersonnelResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
