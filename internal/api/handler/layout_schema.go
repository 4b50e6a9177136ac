package handler

// The layout endpoints keep the dashboard client's original camelCase field
// names. Every other endpoint in the API speaks snake_case; do not "fix"
// these tags.

type layoutResponse struct {
	CardOrder      []string `json:"cardOrder"`
	VisibleCards   []string `json:"visibleCards"`
	CollapsedCards []string `json:"collapsedCards"`
	Source         string   `json:"source"`
	SaveState      string   `json:"saveState"`
	Warning        string   `json:"warning,omitempty"`
	LastSaveError  string   `json:"lastSaveError,omitempty"`
}

type replaceLayoutRequest struct {
	CardOrder      []string `json:"cardOrder"      validate:"required"`
	VisibleCards   []string `json:"visibleCards"   validate:"required"`
	CollapsedCards []string `json:"collapsedCards"`
}

type replaceLayoutResponse struct {
	Success bool `json:"success"`
	layoutResponse
}

type reorderRequest struct {
	CardOrder []string `json:"cardOrder" validate:"required,min=1"`
}

// moveCardRequest moves a card among its visible siblings. Either a
// direction (with optional step count) or an absolute target index within
// the visible sequence.
type moveCardRequest struct {
	Direction string `json:"direction,omitempty" validate:"omitempty,oneof=up down"`
	Steps     int    `json:"steps,omitempty"     validate:"omitempty,min=1"`
	ToIndex   *int   `json:"toIndex,omitempty"   validate:"omitempty,min=0"`
}

type collapseCardRequest struct {
	// Collapsed forces the state when present; absent means toggle.
	Collapsed *bool `json:"collapsed,omitempty"`
}

type cardDefinitionResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Type           string `json:"type"`
	Icon           string `json:"icon"`
	Description    string `json:"description,omitempty"`
	DefaultVisible bool   `json:"defaultVisible"`
}

type cardCatalogResponse struct {
	Cards []cardDefinitionResponse `json:"cards"`
}
