package domain

import (
	"errors"
	"fmt"
	"sort"
)

// CardID identifies a dashboard card in the registry and in persisted layouts.
type CardID string

// CardType tags a card for icon lookup. The type-to-icon mapping is a static
// table, not runtime branching.
type CardType string

const (
	CardTypeProfile  CardType = "profile"
	CardTypeMovie    CardType = "movie"
	CardTypePeople   CardType = "people"
	CardTypeMedia    CardType = "media"
	CardTypeStorage  CardType = "storage"
	CardTypeBoard    CardType = "board"
	CardTypeSystem   CardType = "system"
	CardTypeSecurity CardType = "security"
)

// cardIcons maps every card type to its icon asset name.
var cardIcons = map[CardType]string{
	CardTypeProfile:  "icon-user-circle",
	CardTypeMovie:    "icon-film",
	CardTypePeople:   "icon-users",
	CardTypeMedia:    "icon-audio-lines",
	CardTypeStorage:  "icon-database",
	CardTypeBoard:    "icon-kanban",
	CardTypeSystem:   "icon-settings",
	CardTypeSecurity: "icon-shield",
}

const defaultCardIcon = "icon-square"

// IconFor returns the icon asset name for a card type.
func IconFor(t CardType) string {
	if icon, ok := cardIcons[t]; ok {
		return icon
	}
	return defaultCardIcon
}

var ErrUnknownCard = errors.New("unknown card")

// CardDefinition is the static description of one dashboard card.
// AllowedRoles empty means every role may see the card.
type CardDefinition struct {
	ID             CardID
	Title          string
	Type           CardType
	Description    string
	AllowedRoles   []Role
	DefaultVisible bool
	Order          int
}

// VisibleTo reports whether the given role may see this card.
func (d CardDefinition) VisibleTo(role Role) bool {
	if len(d.AllowedRoles) == 0 {
		return true
	}
	for _, r := range d.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// CardRegistry is the process-wide catalog of dashboard cards. It is built
// once at startup and read-only afterwards.
type CardRegistry struct {
	defs []CardDefinition
	byID map[CardID]CardDefinition
}

// NewCardRegistry builds a registry from the given definitions.
// Duplicate ids are a programming error and panic at startup.
func NewCardRegistry(defs ...CardDefinition) *CardRegistry {
	r := &CardRegistry{byID: make(map[CardID]CardDefinition, len(defs))}
	for _, d := range defs {
		if _, exists := r.byID[d.ID]; exists {
			panic(fmt.Sprintf("card registry: duplicate card id %q", d.ID))
		}
		r.defs = append(r.defs, d)
		r.byID[d.ID] = d
	}
	return r
}

// Get returns the definition for id.
func (r *CardRegistry) Get(id CardID) (CardDefinition, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// AvailableCards returns the cards the role may see, sorted by Order
// ascending with ties broken by registration order. Visibility preferences
// play no part here.
func (r *CardRegistry) AvailableCards(role Role) []CardDefinition {
	out := make([]CardDefinition, 0, len(r.defs))
	for _, d := range r.defs {
		if d.VisibleTo(role) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// DefaultRegistry returns the card catalog for the studio dashboard.
func DefaultRegistry() *CardRegistry {
	return NewCardRegistry(
		CardDefinition{
			ID:             "profile",
			Title:          "My Profile",
			Type:           CardTypeProfile,
			Description:    "Account details for the signed-in user",
			DefaultVisible: true,
			Order:          10,
		},
		CardDefinition{
			ID:             "movie",
			Title:          "Movies",
			Type:           CardTypeMovie,
			Description:    "Title counts by release status",
			DefaultVisible: true,
			Order:          20,
		},
		CardDefinition{
			ID:             "distributor",
			Title:          "Distributors",
			Type:           CardTypeMovie,
			Description:    "Distribution partners on file",
			DefaultVisible: true,
			Order:          30,
		},
		CardDefinition{
			ID:             "personnel",
			Title:          "Personnel",
			Type:           CardTypePeople,
			Description:    "Voice artists, scriptwriters, interpreters and staff",
			DefaultVisible: false,
			Order:          40,
		},
		CardDefinition{
			ID:             "asset",
			Title:          "Media Assets",
			Type:           CardTypeMedia,
			Description:    "Accessibility deliverables by kind and status",
			DefaultVisible: true,
			Order:          50,
		},
		CardDefinition{
			ID:             "storage",
			Title:          "Storage",
			Type:           CardTypeStorage,
			Description:    "Total bytes held per asset kind",
			AllowedRoles:   []Role{RoleAdmin, RoleEditor},
			DefaultVisible: true,
			Order:          60,
		},
		CardDefinition{
			ID:             "workflow",
			Title:          "Production Board",
			Type:           CardTypeBoard,
			Description:    "Task counts per board stage",
			DefaultVisible: true,
			Order:          70,
		},
		CardDefinition{
			ID:             "backup",
			Title:          "Backups",
			Type:           CardTypeSystem,
			Description:    "Last database backup and archive count",
			AllowedRoles:   []Role{RoleAdmin},
			DefaultVisible: false,
			Order:          80,
		},
		CardDefinition{
			ID:             "security",
			Title:          "Access Control",
			Type:           CardTypeSecurity,
			Description:    "IP allow-list size and enforcement state",
			AllowedRoles:   []Role{RoleAdmin},
			DefaultVisible: false,
			Order:          90,
		},
	)
}
