// Package view binds the cart store to a presentable summary: a badge
// counter and an on-demand line list with running total. It never mutates
// cart data directly; every gesture funnels through a store operation.
package view

import (
	"strconv"
	"strings"

	"github.com/leademy-studio/shusha-rest/internal/cart"
	"github.com/leademy-studio/shusha-rest/internal/domain"
)

// LineView is one rendered cart line.
type LineView struct {
	ID           string
	Name         string
	Weight       string
	ImageURL     string
	Quantity     int
	Price        string
	LineTotal    string
	PriceRaw     int64
	LineTotalRaw int64
}

// Summary is a full render of the cart contents.
type Summary struct {
	Lines      []LineView
	TotalItems int
	Total      string
	TotalRaw   int64
	Empty      bool
}

// CartView projects the cart store into Summary and Badge values. The view
// re-reads the store on every render; it trusts the subscription only as a
// change signal, never as a data source.
type CartView struct {
	store       *cart.Store
	badge       int
	unsubscribe func()
}

// New subscribes to the store and primes the badge from current state.
func New(store *cart.Store) *CartView {
	v := &CartView{store: store}
	v.unsubscribe = store.Subscribe(func([]domain.CartLine) {
		v.badge = store.TotalItems()
	})
	v.badge = store.TotalItems()
	return v
}

// Close detaches the view from the store.
func (v *CartView) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

// Badge is the live item-count indicator. Zero means the badge is hidden.
func (v *CartView) Badge() int {
	return v.badge
}

// Render reads fresh store state and builds the full summary. Nothing is
// cached across opens.
func (v *CartView) Render() Summary {
	items := v.store.Items()
	s := Summary{
		Lines:      make([]LineView, 0, len(items)),
		TotalItems: v.store.TotalItems(),
		TotalRaw:   v.store.TotalPrice(),
		Empty:      len(items) == 0,
	}
	s.Total = FormatPrice(s.TotalRaw)
	for _, it := range items {
		s.Lines = append(s.Lines, LineView{
			ID:           it.ID,
			Name:         it.Name,
			Weight:       it.Weight,
			ImageURL:     it.ImageURL,
			Quantity:     it.Quantity,
			Price:        FormatPrice(it.Price),
			LineTotal:    FormatPrice(it.LineTotal()),
			PriceRaw:     it.Price,
			LineTotalRaw: it.LineTotal(),
		})
	}
	return s
}

// Increment bumps the line quantity and returns the fresh summary.
func (v *CartView) Increment(id string) Summary {
	v.store.IncrementItem(id)
	return v.Render()
}

// Decrement lowers the line quantity (removing a quantity-1 line) and
// returns the fresh summary.
func (v *CartView) Decrement(id string) Summary {
	v.store.DecrementItem(id)
	return v.Render()
}

// Remove drops the line and returns the fresh summary.
func (v *CartView) Remove(id string) Summary {
	v.store.RemoveItem(id)
	return v.Render()
}

// nbsp separates thousands groups and the currency sign, matching the
// ru-RU number format the storefront uses.
const nbsp = " "

// FormatPrice renders a ruble amount the way the storefront shows it:
// non-breaking-space thousands groups and the currency sign, "1 290 ₽".
func FormatPrice(price int64) string {
	neg := price < 0
	if neg {
		price = -price
	}
	digits := strconv.FormatInt(price, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(nbsp)
		}
		b.WriteString(digits[i : i+3])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out + nbsp + "₽"
}
