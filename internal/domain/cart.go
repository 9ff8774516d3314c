package domain

// Mode selects where the authoritative copy of a cart lives.
type Mode string

const (
	// ModeLocal keeps the cart entirely in client memory (optionally
	// snapshotted to local storage).
	ModeLocal Mode = "local"
	// ModeRemote mirrors the cart to a server-side cart resource
	// identified by RemoteCartID.
	ModeRemote Mode = "remote"
)

// CartItem is a single line item: a product reference and how many of it.
type CartItem struct {
	ProductID string
	Quantity  int
}

// Cart is the canonical client-side cart state.
//
// Invariants: in ModeLocal RemoteCartID is empty; a ProductID appears at
// most once in Items; every Quantity is >= 1.
type Cart struct {
	Mode         Mode
	RemoteCartID string
	OwnerID      string
	Items        []CartItem
}

// RemoteCart is a server-side cart resource as returned by the cart API.
type RemoteCart struct {
	ID      string
	OwnerID string
	Items   []CartItem
}

// MutationResult is the outcome of a single cart mutation.
type MutationResult struct {
	// Items is the confirmed item list after the mutation.
	Items []CartItem
	// CartRecreated is set when the remote cart had vanished and a
	// replacement cart was created transparently during the mutation.
	CartRecreated bool
}

// MergeItem returns items with quantity added to the line for productID,
// appending a new line when the product is not present yet.
func MergeItem(items []CartItem, productID string, quantity int) []CartItem {
	merged := make([]CartItem, 0, len(items)+1)
	found := false

	for _, item := range items {
		if item.ProductID == productID {
			item.Quantity += quantity
			found = true
		}
		merged = append(merged, item)
	}

	if !found {
		merged = append(merged, CartItem{ProductID: productID, Quantity: quantity})
	}

	return merged
}

// RemoveItem returns items without the line for productID.
// Removing an absent product is a no-op.
func RemoveItem(items []CartItem, productID string) []CartItem {
	remaining := make([]CartItem, 0, len(items))

	for _, item := range items {
		if item.ProductID != productID {
			remaining = append(remaining, item)
		}
	}

	return remaining
}

// SetQuantity returns items with the line for productID overwritten to
// quantity. Setting an absent product is a no-op: set does not add.
func SetQuantity(items []CartItem, productID string, quantity int) []CartItem {
	updated := make([]CartItem, 0, len(items))

	for _, item := range items {
		if item.ProductID == productID {
			item.Quantity = quantity
		}
		updated = append(updated, item)
	}

	return updated
}

// CountItems sums quantities over items, 0 for an empty list.
func CountItems(items []CartItem) int {
	var total int
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// CopyItems returns a defensive copy of items.
func CopyItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}

	copied := make([]CartItem, len(items))
	copy(copied, items)
	return copied
}
