package domain

// LineItem is one product line in the cart. ID is the aggregation key: adding
// an item whose ID is already present merges into the existing line instead of
// appending a new one.
type LineItem struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	Image               string  `json:"image,omitempty"`
	RestaurantID        string  `json:"restaurantId,omitempty"`
	RestaurantName      string  `json:"restaurantName,omitempty"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}

// Subtotal is the line's contribution to the cart total.
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

// CartSnapshot is the full cart state: items in insertion order plus the
// derived totals as they stood when the snapshot was taken. It is also the
// persisted wire format, serialized as-is.
type CartSnapshot struct {
	Items       []LineItem `json:"items"`
	TotalItems  int        `json:"totalItems"`
	TotalAmount float64    `json:"totalAmount"`
}
