package iiko

import (
	"math"
	"strings"

	"github.com/leademy-studio/shusha-rest/internal/domain"
)

// Fallback labels for nomenclature entries without a usable name.
const (
	defaultCategory = "Меню"
	defaultDishName = "Блюдо"
)

// Nomenclature is the raw menu payload.
type Nomenclature struct {
	Groups   []Group       `json:"groups"`
	Products []MenuProduct `json:"products"`
}

type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MenuProduct struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	IsDeleted   bool        `json:"isDeleted"`
	ParentGroup string      `json:"parentGroup"`
	Weight      float64     `json:"weight"`
	SizePrices  []SizePrice `json:"sizePrices"`
	ImageLinks  []string    `json:"imageLinks"`
}

// SizePrice carries the price for one size variant. Organization scoping
// appears either as a single organizationId or a list.
type SizePrice struct {
	SizeID         string   `json:"sizeId"`
	Price          *float64 `json:"price"`
	OrganizationID string   `json:"organizationId"`
	Organizations  []string `json:"organizations"`
}

// Simplify flattens the nomenclature into catalog products: category names
// resolved through the group index, deleted products skipped, the
// organization-matching size price picked (falling back to the first), size
// variants keyed "productId:sizeId". Entries without a resolvable price are
// dropped since the cart requires one.
func Simplify(nom *Nomenclature, organizationID string) []domain.Product {
	groups := make(map[string]string, len(nom.Groups))
	for _, g := range nom.Groups {
		if g.ID != "" {
			name := g.Name
			if name == "" {
				name = defaultCategory
			}
			groups[g.ID] = name
		}
	}

	items := make([]domain.Product, 0, len(nom.Products))
	for _, p := range nom.Products {
		if p.IsDeleted {
			continue
		}
		sp, ok := pickSizePrice(p.SizePrices, organizationID)
		if !ok || sp.Price == nil {
			continue
		}

		id := p.ID
		if sp.SizeID != "" {
			id = p.ID + ":" + sp.SizeID
		}
		name := p.Name
		if name == "" {
			name = defaultDishName
		}
		category, ok := groups[p.ParentGroup]
		if !ok {
			category = defaultCategory
		}
		var imageURL string
		if len(p.ImageLinks) > 0 {
			imageURL = p.ImageLinks[0]
		}

		items = append(items, domain.Product{
			ID:          id,
			Name:        name,
			Description: strings.TrimSpace(p.Description),
			Price:       int64(math.Round(*sp.Price)),
			ImageURL:    imageURL,
			Category:    category,
		})
	}
	return items
}

// pickSizePrice prefers the entry scoped to the organization; an unscoped
// entry matches everything; otherwise the first entry wins.
func pickSizePrice(prices []SizePrice, organizationID string) (SizePrice, bool) {
	for _, sp := range prices {
		if sp.OrganizationID != "" {
			if sp.OrganizationID == organizationID {
				return sp, true
			}
			continue
		}
		if len(sp.Organizations) > 0 {
			for _, org := range sp.Organizations {
				if org == organizationID {
					return sp, true
				}
			}
			continue
		}
		return sp, true
	}
	if len(prices) > 0 {
		return prices[0], true
	}
	return SizePrice{}, false
}
