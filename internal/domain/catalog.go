package domain

type Restaurant struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	OwnerID string         `json:"owner_id,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type MenuItem struct {
	ID           string         `json:"id"`
	RestaurantID string         `json:"restaurant_id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Price        float64        `json:"price,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Allergens    []string       `json:"allergens,omitempty"`
	Meta         map[string]any `json:"meta,omitempty"`
}

// SearchResults combines hits from both catalogs. A side that failed during
// the fan-out comes back as an empty slice, not an error.
type SearchResults struct {
	Restaurants []Restaurant `json:"restaurants"`
	MenuItems   []MenuItem   `json:"menuItems"`
}
