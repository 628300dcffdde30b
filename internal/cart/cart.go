package cart

import "github.com/brushandbeyond/gallery-backend/internal/artwork"

// Item is one cart row: a reference to an artwork plus a quantity.
// Authenticated carts keep at most one row per (user, artwork); the
// repository's additive upsert enforces that.
type Item struct {
	ID        int             `json:"id"`
	ArtworkID int             `json:"artworkId"`
	Quantity  int             `json:"quantity"`
	Artwork   artwork.Artwork `json:"artwork"`
}

// GuestItem is what an anonymous visitor accumulated client-side before
// signing in. Only the artwork reference and quantity survive the merge;
// any snapshot the client held is re-read from the catalog.
type GuestItem struct {
	ArtworkID int `json:"artworkId"`
	Quantity  int `json:"quantity"`
}

// MergeResult reports what happened to each guest item during a merge.
type MergeResult struct {
	Merged  int    `json:"merged"`
	Skipped int    `json:"skipped"`
	Items   []Item `json:"items"`
	Count   int    `json:"count"`
}

// Count is the badge projection: the sum of quantities.
func Count(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
