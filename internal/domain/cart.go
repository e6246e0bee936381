package domain

// CartLine is one product line in the cart. At most one line exists per ID;
// a quantity that drops to zero deletes the line instead of being persisted.
type CartLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
	Category string `json:"category,omitempty"`
	Weight   string `json:"weight,omitempty"`
	Quantity int    `json:"quantity"`
}

// LineTotal is the unit price times quantity.
func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

// LineFromProduct copies the product fields into a fresh line with quantity 1.
func LineFromProduct(p Product) CartLine {
	return CartLine{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Category: p.Category,
		Weight:   p.Weight,
		Quantity: 1,
	}
}
