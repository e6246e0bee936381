// Package order accepts submitted storefront orders and relays them to the
// operator notification channel.
package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/leademy-studio/shusha-rest/internal/domain"
)

// Notifier forwards the accepted order to the operator channel.
type Notifier interface {
	NotifyOrder(ctx context.Context, order domain.Order) error
}

// Service validates incoming orders, assigns server fields and relays the
// notification. The relay is fire-and-forget: once the order is logged, a
// relay failure does not fail the acknowledgement.
type Service struct {
	notifier Notifier
	logger   *log.Logger
}

// New builds the service. A nil notifier disables the relay.
func New(notifier Notifier, logger *log.Logger) *Service {
	return &Service{notifier: notifier, logger: logger}
}

// Accept validates the order, assigns ID and timestamp, logs it and fires
// the relay. The returned order carries the server-assigned fields.
func (s *Service) Accept(ctx context.Context, in domain.Order) (*domain.Order, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	order := in
	order.ID = uuid.NewString()
	if order.Timestamp.IsZero() {
		order.Timestamp = time.Now().UTC()
	}

	s.logger.Printf("order %s accepted: %d items, total %d, %s/%s",
		order.ID, len(order.Items), order.Total, order.Delivery.Method, order.Payment)

	if s.notifier != nil {
		if err := s.notifier.NotifyOrder(ctx, order); err != nil {
			// The order is already accepted and logged; the operator
			// channel being down is a server-internal problem.
			s.logger.Printf("order %s: relay notification failed: %v", order.ID, err)
		}
	}
	return &order, nil
}

func validate(in domain.Order) error {
	if in.Customer.Name == "" {
		return fmt.Errorf("customer name required: %w", domain.ErrInvalidOrder)
	}
	if in.Customer.Phone == "" {
		return fmt.Errorf("customer phone required: %w", domain.ErrInvalidOrder)
	}
	if !domain.ValidFulfillment(in.Delivery.Method) {
		return fmt.Errorf("unknown fulfillment method %q: %w", in.Delivery.Method, domain.ErrInvalidOrder)
	}
	if in.Delivery.Method == domain.FulfillmentDelivery && in.Delivery.Address == "" {
		return fmt.Errorf("delivery address required: %w", domain.ErrInvalidOrder)
	}
	if !domain.ValidPayment(in.Payment) {
		return fmt.Errorf("unknown payment method %q: %w", in.Payment, domain.ErrInvalidOrder)
	}
	if len(in.Items) == 0 {
		return domain.ErrEmptyCart
	}

	var subtotal int64
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return fmt.Errorf("line %q has quantity %d: %w", it.ID, it.Quantity, domain.ErrInvalidOrder)
		}
		if it.Price < 0 {
			return fmt.Errorf("line %q has negative price: %w", it.ID, domain.ErrInvalidOrder)
		}
		subtotal += it.LineTotal()
	}
	discount := domain.PickupDiscount(subtotal, in.Delivery.Method)
	if in.Subtotal != subtotal || in.Discount != discount || in.Total != subtotal-discount {
		return fmt.Errorf("pricing mismatch: got %d/%d/%d want %d/%d/%d: %w",
			in.Subtotal, in.Discount, in.Total, subtotal, discount, subtotal-discount, domain.ErrInvalidOrder)
	}
	return nil
}
