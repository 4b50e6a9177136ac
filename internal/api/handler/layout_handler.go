package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// LayoutHandler serves the dashboard layout endpoints.
type LayoutHandler struct {
	layout ports.LayoutService
}

func NewLayoutHandler(layout ports.LayoutService) *LayoutHandler {
	return &LayoutHandler{layout: layout}
}

// withSession runs op, lazily initializing the user's layout session when it
// does not exist yet (first request after login or after a server restart).
func (h *LayoutHandler) withSession(c echo.Context, userID string, role domain.Role,
	op func() (*ports.LayoutView, error)) (*ports.LayoutView, error) {

	view, err := op()
	if errors.Is(err, domain.ErrNoLayoutSession) {
		if _, ierr := h.layout.Initialize(c.Request().Context(), userID, role); ierr != nil {
			return nil, ierr
		}
		return op()
	}
	return view, err
}

// Get handles GET /v1/dashboard/layout.
//
// @Summary      Get the current dashboard layout
// @Tags         layout
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  layoutResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard/layout [get]
func (h *LayoutHandler) Get(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.withSession(c, userID, role, func() (*ports.LayoutView, error) {
		return h.layout.View(userID)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLayoutResponse(view))
}

// Put handles PUT /v1/dashboard/layout — wholesale replace, persisted
// immediately instead of through the debounce.
//
// @Summary      Replace the dashboard layout
// @Tags         layout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      replaceLayoutRequest  true  "Complete layout"
// @Success      200   {object}  replaceLayoutResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/dashboard/layout [put]
func (h *LayoutHandler) Put(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req replaceLayoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	prefs := domain.LayoutPreferences{
		UserID:         userID,
		CardOrder:      toCardIDs(req.CardOrder),
		VisibleCards:   toCardIDs(req.VisibleCards),
		CollapsedCards: toCardIDs(req.CollapsedCards),
	}

	view, err := h.withSession(c, userID, role, func() (*ports.LayoutView, error) {
		return h.layout.Replace(c.Request().Context(), userID, prefs)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, replaceLayoutResponse{
		Success:        true,
		layoutResponse: toLayoutResponse(view),
	})
}

// Reorder handles POST /v1/dashboard/layout/reorder — drag-and-drop commits
// the full new order in one request.
//
// @Summary      Reorder dashboard cards
// @Tags         layout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reorderRequest  true  "Full card order"
// @Success      200   {object}  layoutResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/dashboard/layout/reorder [post]
func (h *LayoutHandler) Reorder(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.withSession(c, userID, role, func() (*ports.LayoutView, error) {
		return h.layout.Reorder(c.Request().Context(), userID, toCardIDs(req.CardOrder))
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLayoutResponse(view))
}

// Move handles POST /v1/dashboard/layout/cards/:id/move — the keyboard
// reorder path: one card, one step or an absolute target slot.
//
// @Summary      Move one card within the visible sequence
// @Tags         layout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Card id"
// @Param        body  body      moveCardRequest  true  "Direction or target index"
// @Success      200   {object}  layoutResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/dashboard/layout/cards/{id}/move [post]
func (h *LayoutHandler) Move(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	cardID := domain.CardID(c.Param("id"))

	var req moveCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if req.Direction == "" && req.ToIndex == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "direction or toIndex is required")
	}

	view, err := h.withSession(c, userID, role, func() (*ports.LayoutView, error) {
		delta, derr := h.resolveDelta(c, userID, cardID, req)
		if derr != nil {
			return nil, derr
		}
		return h.layout.MoveCard(c.Request().Context(), userID, cardID, delta)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLayoutResponse(view))
}

// resolveDelta converts the wire move request into a signed step count among
// visible siblings.
func (h *LayoutHandler) resolveDelta(c echo.Context, userID string, cardID domain.CardID, req moveCardRequest) (int, error) {
	if req.ToIndex == nil {
		steps := req.Steps
		if steps == 0 {
			steps = 1
		}
		if req.Direction == "up" {
			return -steps, nil
		}
		return steps, nil
	}

	view, err := h.layout.View(userID)
	if err != nil {
		return 0, err
	}
	current := visibleIndexOf(view, cardID)
	if current < 0 {
		return 0, domain.ErrUnknownCard
	}
	return *req.ToIndex - current, nil
}

// visibleIndexOf returns cardID's position among visible cards, or -1.
func visibleIndexOf(view *ports.LayoutView, cardID domain.CardID) int {
	visible := make(map[domain.CardID]struct{}, len(view.VisibleCards))
	for _, id := range view.VisibleCards {
		visible[id] = struct{}{}
	}
	idx := 0
	for _, id := range view.CardOrder {
		if _, ok := visible[id]; !ok {
			continue
		}
		if id == cardID {
			return idx
		}
		idx++
	}
	return -1
}

// ToggleVisibility handles POST /v1/dashboard/layout/cards/:id/visibility.
//
// @Summary      Show or hide one card
// @Tags         layout
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Card id"
// @Success      200  {object}  layoutResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/dashboard/layout/cards/{id}/visibility [post]
func (h *LayoutHandler) ToggleVisibility(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	cardID := domain.CardID(c.Param("id"))

	view, err := h.withSession(c, userID, role, func() (*ports.LayoutView, error) {
		return h.layout.ToggleVisibility(c.Request().Context(), userID, cardID)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLayoutResponse(view))
}

// ToggleCollapse handles POST /v1/dashboard/layout/cards/:id/collapse.
//
// @Summary      Collapse or expand one card
// @Tags         layout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true   "Card id"
// @Param        body  body  collapseCardRequest  false  "Explicit state; omit to toggle"
// @Success      200   {object}  layoutResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/dashboard/layout/cards/{id}/collapse [post]
func (h *LayoutHandler) ToggleCollapse(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	cardID := domain.CardID(c.Param("id"))

	var req collapseCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.withSession(c, userID, role, func() (*ports.LayoutView, error) {
		return h.layout.ToggleCollapse(c.Request().Context(), userID, cardID, req.Collapsed)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLayoutResponse(view))
}

// Reset handles POST /v1/dashboard/layout/reset — back to registry defaults.
//
// @Summary      Reset the layout to defaults
// @Tags         layout
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  layoutResponse
// @Router       /v1/dashboard/layout/reset [post]
func (h *LayoutHandler) Reset(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.withSession(c, userID, role, func() (*ports.LayoutView, error) {
		return h.layout.ResetToDefaults(c.Request().Context(), userID)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLayoutResponse(view))
}

// Save handles POST /v1/dashboard/layout/save — explicit save, bypassing the
// debounce. A failed write surfaces in saveState, never as a 5xx.
//
// @Summary      Persist the layout immediately
// @Tags         layout
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  layoutResponse
// @Router       /v1/dashboard/layout/save [post]
func (h *LayoutHandler) Save(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.withSession(c, userID, role, func() (*ports.LayoutView, error) {
		return h.layout.Save(c.Request().Context(), userID)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLayoutResponse(view))
}

// --- mappers ---

func toLayoutResponse(v *ports.LayoutView) layoutResponse {
	return layoutResponse{
		CardOrder:      fromCardIDs(v.CardOrder),
		VisibleCards:   fromCardIDs(v.VisibleCards),
		CollapsedCards: fromCardIDs(v.CollapsedCards),
		Source:         string(v.Source),
		SaveState:      string(v.SaveState),
		Warning:        v.Warning,
		LastSaveError:  v.LastSaveError,
	}
}

func toCardIDs(ids []string) []domain.CardID {
	out := make([]domain.CardID, len(ids))
	for i, id := range ids {
		out[i] = domain.CardID(id)
	}
	return out
}

func fromCardIDs(ids []domain.CardID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
