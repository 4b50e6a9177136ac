package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// MovieHandler handles HTTP requests for movie records.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

type movieRequest struct {
	Title          string `json:"title"           validate:"required"`
	OriginalTitle  string `json:"original_title,omitempty"`
	DistributorID  string `json:"distributor_id,omitempty"`
	ReleaseDate    string `json:"release_date"    validate:"required"`
	RuntimeMinutes int    `json:"runtime_minutes" validate:"omitempty,gt=0"`
	Status         string `json:"status"          validate:"required,oneof=announced released archived"`
	Summary        string `json:"summary,omitempty"`
}

type listMoviesResponse struct {
	Data       []*domain.Movie    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func (r movieRequest) toInput() (ports.MovieInput, error) {
	released, err := time.Parse("2006-01-02", r.ReleaseDate)
	if err != nil {
		return ports.MovieInput{}, echo.NewHTTPError(http.StatusUnprocessableEntity,
			"release_date must be formatted YYYY-MM-DD")
	}
	return ports.MovieInput{
		Title:          r.Title,
		OriginalTitle:  r.OriginalTitle,
		DistributorID:  r.DistributorID,
		ReleaseDate:    released,
		RuntimeMinutes: r.RuntimeMinutes,
		Status:         r.Status,
		Summary:        r.Summary,
	}, nil
}

// Create handles POST /v1/movies.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      movieRequest  true  "Movie details"
// @Success      201   {object}  domain.Movie
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}
	movie, err := h.service.CreateMovie(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, movie)
}

// Get handles GET /v1/movies/:id.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Movie id"
// @Success      200  {object}  domain.Movie
// @Failure      404  {object}  errorResponse
// @Router       /v1/movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	movie, err := h.service.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// Update handles PUT /v1/movies/:id.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Movie id"
// @Param        body  body      movieRequest  true  "Movie details"
// @Success      200   {object}  domain.Movie
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}
	movie, err := h.service.UpdateMovie(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// Delete handles DELETE /v1/movies/:id.
//
// @Summary      Delete a movie
// @Tags         movies
// @Security     BearerAuth
// @Param        id  path  string  true  "Movie id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteMovie(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/movies.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        status          query  string  false  "Filter by release status"
// @Param        distributor_id  query  string  false  "Filter by distributor"
// @Param        search          query  string  false  "Title substring search"
// @Param        released_from   query  string  false  "Earliest release date (YYYY-MM-DD)"
// @Param        released_to     query  string  false  "Latest release date (YYYY-MM-DD)"
// @Param        page            query  int     false  "Page number"
// @Param        limit           query  int     false  "Page size"
// @Success      200  {object}  listMoviesResponse
// @Router       /v1/movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	input := ports.ListMoviesInput{
		Status:        c.QueryParam("status"),
		DistributorID: c.QueryParam("distributor_id"),
		Search:        c.QueryParam("search"),
		Page:          queryInt(c, "page"),
		Limit:         queryInt(c, "limit"),
	}
	if from := c.QueryParam("released_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "released_from must be formatted YYYY-MM-DD")
		}
		input.ReleasedFrom = t
	}
	if to := c.QueryParam("released_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "released_to must be formatted YYYY-MM-DD")
		}
		input.ReleasedTo = t
	}

	result, err := h.service.ListMovies(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listMoviesResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// queryInt parses an optional integer query parameter; malformed or missing
// values become zero and are normalised by the service layer.
func queryInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}
