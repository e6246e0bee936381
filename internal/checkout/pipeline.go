// Package checkout drives the order submission flow: collecting customer and
// fulfillment data, computing the pickup discount, and performing the single
// network submission that, on success, clears the cart.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/leademy-studio/shusha-rest/internal/domain"
)

// Pipeline states. Failed is not terminal: the form stays editable and the
// user may resubmit without re-entering data.
const (
	StateIdle       = "idle"
	StateCollecting = "collecting"
	StateSubmitting = "submitting"
	StateConfirmed  = "confirmed"
	StateFailed     = "failed"
)

var (
	// ErrSubmitInFlight rejects a second submit while one is pending. At
	// most one submission is in flight per pipeline.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrAlreadyConfirmed rejects resubmission after a confirmed order; a
	// fresh Begin with a fresh cart is required.
	ErrAlreadyConfirmed = errors.New("order already confirmed")
	// ErrClosed rejects operations on a torn-down pipeline.
	ErrClosed = errors.New("checkout closed")
	// ErrNotCollecting rejects a submit before Begin.
	ErrNotCollecting = errors.New("checkout not started")
	// ErrSubmitRejected marks a non-2xx response from the order endpoint.
	ErrSubmitRejected = errors.New("order rejected")
)

// Cart is the slice of the cart store the pipeline needs. It reads snapshots
// and clears on confirmed success; it never mutates lines directly.
type Cart interface {
	Items() []domain.CartLine
	Clear()
}

// SubmitResult is the acknowledgement from the order endpoint.
type SubmitResult struct {
	Status  int
	OrderID string
}

// Submitter performs the order submission. A transport failure is returned
// as an error; a reachable endpoint returns the HTTP status.
type Submitter interface {
	Submit(ctx context.Context, order domain.Order) (SubmitResult, error)
}

// Options carries checkout configuration.
type Options struct {
	// DisableOnlinePayment removes "online" from the accepted payment
	// methods.
	DisableOnlinePayment bool
}

// Form holds the collected checkout input.
type Form struct {
	Name    string
	Phone   string
	Email   string
	Method  string
	Address string
	Comment string
	Payment string
}

// Quote is the live pricing summary shown while collecting.
type Quote struct {
	Subtotal int64
	Discount int64
	Total    int64
}

// Pipeline is the checkout state machine. All methods are safe for the
// single-logical-thread model: a mutex serializes them, and the only
// suspension point is the network call inside Submit.
type Pipeline struct {
	mu        sync.Mutex
	cart      Cart
	submitter Submitter
	logger    *log.Logger
	opts      Options
	state     string
	form      Form
	closed    bool
}

// NewPipeline builds an idle pipeline over the shared cart store.
func NewPipeline(c Cart, s Submitter, logger *log.Logger, opts Options) *Pipeline {
	return &Pipeline{
		cart:      c,
		submitter: s,
		logger:    logger,
		opts:      opts,
		state:     StateIdle,
	}
}

// State reports the current pipeline state.
func (p *Pipeline) State() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Begin opens the form with defaults: pickup fulfillment, cash payment.
func (p *Pipeline) Begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	p.form = Form{
		Method:  domain.FulfillmentPickup,
		Payment: domain.PaymentCash,
	}
	p.state = StateCollecting
	return nil
}

// SetContact records the customer fields. The phone is kept as typed; only
// its digits matter at submit time.
func (p *Pipeline) SetContact(name, phone, email string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.editable(); err != nil {
		return err
	}
	p.form.Name = strings.TrimSpace(name)
	p.form.Phone = FormatPhone(phone)
	p.form.Email = strings.TrimSpace(email)
	return nil
}

// ApplyContact pre-populates empty contact fields from an ambient source
// such as a messaging-platform mini-app. The pipeline behaves identically
// without it.
func (p *Pipeline) ApplyContact(name, phone string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.editable(); err != nil {
		return err
	}
	if p.form.Name == "" && strings.TrimSpace(name) != "" {
		p.form.Name = strings.TrimSpace(name)
	}
	if p.form.Phone == "" && strings.TrimSpace(phone) != "" {
		p.form.Phone = FormatPhone(phone)
	}
	return nil
}

// SetFulfillment switches the fulfillment method. Address is required for
// delivery and dropped for pickup; the quote changes accordingly.
func (p *Pipeline) SetFulfillment(method, address, comment string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.editable(); err != nil {
		return err
	}
	if !domain.ValidFulfillment(method) {
		return fmt.Errorf("unknown fulfillment method %q: %w", method, domain.ErrInvalidOrder)
	}
	p.form.Method = method
	if method == domain.FulfillmentDelivery {
		p.form.Address = strings.TrimSpace(address)
		p.form.Comment = strings.TrimSpace(comment)
	} else {
		p.form.Address = ""
		p.form.Comment = ""
	}
	return nil
}

// SetPayment selects the payment method. The method is recorded, never
// charged here.
func (p *Pipeline) SetPayment(method string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.editable(); err != nil {
		return err
	}
	if !domain.ValidPayment(method) {
		return fmt.Errorf("unknown payment method %q: %w", method, domain.ErrInvalidOrder)
	}
	if method == domain.PaymentOnline && p.opts.DisableOnlinePayment {
		return fmt.Errorf("online payment disabled: %w", domain.ErrInvalidOrder)
	}
	p.form.Payment = method
	return nil
}

// Form returns a copy of the collected input.
func (p *Pipeline) Form() Form {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Quote recomputes subtotal, discount and total from the current cart
// contents. The same computation runs again at submit time from the shipped
// snapshot, so the two always agree.
func (p *Pipeline) Quote() Quote {
	p.mu.Lock()
	method := p.form.Method
	p.mu.Unlock()
	if method == "" {
		method = domain.FulfillmentPickup
	}
	return quoteFor(p.cart.Items(), method)
}

func quoteFor(items []domain.CartLine, method string) Quote {
	var subtotal int64
	for _, it := range items {
		subtotal += it.LineTotal()
	}
	discount := domain.PickupDiscount(subtotal, method)
	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
	}
}

// Submit validates the form, builds the immutable order from a fresh cart
// snapshot and performs the single network submission. On a 2xx response the
// cart is cleared exactly once and the pipeline is confirmed; on any failure
// the cart is untouched and the form stays editable for a retry.
func (p *Pipeline) Submit(ctx context.Context) (SubmitResult, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return SubmitResult{}, ErrClosed
	}
	switch p.state {
	case StateSubmitting:
		p.mu.Unlock()
		return SubmitResult{}, ErrSubmitInFlight
	case StateConfirmed:
		p.mu.Unlock()
		return SubmitResult{}, ErrAlreadyConfirmed
	case StateIdle:
		p.mu.Unlock()
		return SubmitResult{}, ErrNotCollecting
	}

	order, err := p.buildOrder()
	if err != nil {
		p.mu.Unlock()
		return SubmitResult{}, err
	}
	p.state = StateSubmitting
	p.mu.Unlock()

	res, err := p.submitter.Submit(ctx, order)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.logger.Printf("order submission failed: %v", err)
		if !p.closed {
			p.state = StateFailed
		}
		return res, fmt.Errorf("submit order: %w", err)
	}
	if res.Status < 200 || res.Status > 299 {
		p.logger.Printf("order rejected with status %d", res.Status)
		if !p.closed {
			p.state = StateFailed
		}
		return res, fmt.Errorf("status %d: %w", res.Status, ErrSubmitRejected)
	}

	// The cart outlives the view: a confirmed order clears it even when the
	// checkout was closed before the response arrived.
	p.cart.Clear()
	if !p.closed {
		p.state = StateConfirmed
	}
	return res, nil
}

// Close tears the pipeline down. A late submission response becomes a no-op
// against the pipeline state; the in-flight request itself is not cancelled.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// editable gates form edits. Editing from Failed returns the pipeline to
// Collecting, which is how a failed attempt becomes retryable.
func (p *Pipeline) editable() error {
	if p.closed {
		return ErrClosed
	}
	switch p.state {
	case StateCollecting:
		return nil
	case StateFailed:
		p.state = StateCollecting
		return nil
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateConfirmed:
		return ErrAlreadyConfirmed
	default:
		return ErrNotCollecting
	}
}

// buildOrder validates the collected form against a fresh cart snapshot.
// Callers hold p.mu.
func (p *Pipeline) buildOrder() (domain.Order, error) {
	items := p.cart.Items()
	if len(items) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if p.form.Name == "" {
		return domain.Order{}, fmt.Errorf("name required: %w", domain.ErrInvalidOrder)
	}
	phone, err := NormalizePhone(p.form.Phone)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%v: %w", err, domain.ErrInvalidOrder)
	}
	method := p.form.Method
	if !domain.ValidFulfillment(method) {
		return domain.Order{}, fmt.Errorf("unknown fulfillment method %q: %w", method, domain.ErrInvalidOrder)
	}
	if method == domain.FulfillmentDelivery && p.form.Address == "" {
		return domain.Order{}, fmt.Errorf("delivery address required: %w", domain.ErrInvalidOrder)
	}
	if !domain.ValidPayment(p.form.Payment) {
		return domain.Order{}, fmt.Errorf("unknown payment method %q: %w", p.form.Payment, domain.ErrInvalidOrder)
	}
	if p.form.Payment == domain.PaymentOnline && p.opts.DisableOnlinePayment {
		return domain.Order{}, fmt.Errorf("online payment disabled: %w", domain.ErrInvalidOrder)
	}

	q := quoteFor(items, method)
	delivery := domain.Delivery{Method: method}
	if method == domain.FulfillmentDelivery {
		delivery.Address = p.form.Address
		delivery.Comment = p.form.Comment
	}
	return domain.Order{
		Customer: domain.Customer{
			Name:  p.form.Name,
			Phone: phone,
			Email: p.form.Email,
		},
		Delivery:  delivery,
		Payment:   p.form.Payment,
		Items:     items,
		Subtotal:  q.Subtotal,
		Discount:  q.Discount,
		Total:     q.Total,
		Timestamp: time.Now().UTC(),
	}, nil
}
