package domain

// Product is a catalog item as served to the storefront. Fields are copied
// into cart lines at add-time and never re-fetched.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Category    string `json:"category"`
	Weight      string `json:"weight,omitempty"`
}
