package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// BoardHandler handles HTTP requests for the production kanban board.
type BoardHandler struct {
	service ports.BoardService
}

func NewBoardHandler(service ports.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

type taskRequest struct {
	Title      string `json:"title" validate:"required"`
	MovieID    string `json:"movie_id,omitempty"`
	AssetKind  string `json:"asset_kind,omitempty" validate:"omitempty,oneof=audio_description captions sign_language"`
	AssigneeID string `json:"assignee_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type moveTaskRequest struct {
	Stage string `json:"stage" validate:"required"`
	Notes string `json:"notes,omitempty"`
}

type boardColumnResponse struct {
	Stage string         `json:"stage"`
	Tasks []*domain.Task `json:"tasks"`
}

type boardResponse struct {
	Columns []boardColumnResponse `json:"columns"`
}

func (r taskRequest) toInput() ports.TaskInput {
	return ports.TaskInput{
		Title:      r.Title,
		MovieID:    r.MovieID,
		AssetKind:  r.AssetKind,
		AssigneeID: r.AssigneeID,
		Notes:      r.Notes,
	}
}

// GetBoard handles GET /v1/board — every task grouped under its stage in the
// fixed column order.
//
// @Summary      Get the production board
// @Tags         board
// @Produce      json
// @Security     BearerAuth
// @Param        movie_id     query  string  false  "Filter by movie"
// @Param        assignee_id  query  string  false  "Filter by assignee"
// @Success      200  {object}  boardResponse
// @Router       /v1/board [get]
func (h *BoardHandler) GetBoard(c echo.Context) error {
	board, err := h.service.GetBoard(c.Request().Context(), ports.ListTasksFilter{
		MovieID:    c.QueryParam("movie_id"),
		AssigneeID: c.QueryParam("assignee_id"),
	})
	if err != nil {
		return err
	}

	columns := make([]boardColumnResponse, len(board.Columns))
	for i, col := range board.Columns {
		columns[i] = boardColumnResponse{
			Stage: string(col.Stage),
			Tasks: col.Tasks,
		}
	}
	return c.JSON(http.StatusOK, boardResponse{Columns: columns})
}

// CreateTask handles POST /v1/tasks. New tasks start in the planned stage.
//
// @Summary      Create a board task
// @Tags         board
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *BoardHandler) CreateTask(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.service.CreateTask(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask handles GET /v1/tasks/:id.
//
// @Summary      Get a board task
// @Tags         board
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [get]
func (h *BoardHandler) GetTask(c echo.Context) error {
	task, err := h.service.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /v1/tasks/:id — edits task fields; the stage moves
// only through the dedicated stage endpoint.
//
// @Summary      Update a board task
// @Tags         board
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Task id"
// @Param        body  body      taskRequest  true  "Task details"
// @Success      200   {object}  domain.Task
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id} [put]
func (h *BoardHandler) UpdateTask(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.service.UpdateTask(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a board task
// @Tags         board
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *BoardHandler) DeleteTask(c echo.Context) error {
	if err := h.service.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MoveTask handles POST /v1/tasks/:id/stage — one validated stage transition.
// Illegal jumps (e.g. planned straight to completed) are rejected with 422.
//
// @Summary      Move a task to another stage
// @Tags         board
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Task id"
// @Param        body  body      moveTaskRequest  true  "Target stage"
// @Success      200   {object}  domain.Task
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks/{id}/stage [post]
func (h *BoardHandler) MoveTask(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req moveTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.service.MoveTask(c.Request().Context(), ports.MoveTaskInput{
		TaskID:  c.Param("id"),
		Stage:   req.Stage,
		MovedBy: userID,
		Notes:   req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}
