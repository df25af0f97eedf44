package domain

// Product is the catalog's display data for one item. The cart itself never
// stores or derives these fields; it keeps {id, quantity} pairs and
// consumers join them against the catalog.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	ImageURL   string `json:"image_url"`
}
