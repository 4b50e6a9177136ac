package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// DashboardHandler serves the rendered dashboard and the card catalog.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

type renderedCardResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Icon      string         `json:"icon"`
	Collapsed bool           `json:"collapsed"`
	Body      ports.CardBody `json:"body,omitempty"`
	BodyError string         `json:"bodyError,omitempty"`
}

type dashboardResponse struct {
	Cards     []renderedCardResponse `json:"cards"`
	Source    string                 `json:"source"`
	SaveState string                 `json:"saveState"`
	Warning   string                 `json:"warning,omitempty"`
}

// Render handles GET /v1/dashboard.
//
// @Summary      Render the dashboard for the signed-in user
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Render(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.dashboard.Render(c.Request().Context(), userID, role)
	if err != nil {
		return err
	}

	cards := make([]renderedCardResponse, len(view.Cards))
	for i, card := range view.Cards {
		cards[i] = renderedCardResponse{
			ID:        string(card.ID),
			Title:     card.Title,
			Icon:      card.Icon,
			Collapsed: card.Collapsed,
			Body:      card.Body,
			BodyError: card.BodyError,
		}
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Cards:     cards,
		Source:    string(view.Source),
		SaveState: string(view.SaveState),
		Warning:   view.Warning,
	})
}

// Catalog handles GET /v1/dashboard/cards — the role-filtered registry, used
// by the settings UI to offer show/hide toggles.
//
// @Summary      List the cards available to the signed-in user's role
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cardCatalogResponse
// @Router       /v1/dashboard/cards [get]
func (h *DashboardHandler) Catalog(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	defs := h.dashboard.Catalog(role)
	cards := make([]cardDefinitionResponse, len(defs))
	for i, d := range defs {
		cards[i] = cardDefinitionResponse{
			ID:             string(d.ID),
			Title:          d.Title,
			Type:           string(d.Type),
			Icon:           domain.IconFor(d.Type),
			Description:    d.Description,
			DefaultVisible: d.DefaultVisible,
		}
	}
	return c.JSON(http.StatusOK, cardCatalogResponse{Cards: cards})
}
