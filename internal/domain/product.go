package domain

// Product is catalog display metadata for a line item. The cart itself
// stores only (ProductID, Quantity); titles, prices and images are
// resolved through the catalog.
type Product struct {
	ID          string
	Title       string
	Price       Money
	Image       string
	Category    string
	Description string
}
