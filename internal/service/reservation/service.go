// Package reservation accepts table booking requests and relays them to the
// operator channel.
package reservation

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/leademy-studio/shusha-rest/internal/checkout"
	"github.com/leademy-studio/shusha-rest/internal/domain"
)

// Notifier forwards the reservation to the operator channel.
type Notifier interface {
	NotifyReservation(ctx context.Context, r domain.Reservation) error
}

// Service validates reservations and relays them. Unlike orders, a
// reservation has no effect beyond the notification, so a relay failure
// fails the request.
type Service struct {
	notifier Notifier
	logger   *log.Logger
}

func New(notifier Notifier, logger *log.Logger) *Service {
	return &Service{notifier: notifier, logger: logger}
}

// Accept validates and relays the reservation.
func (s *Service) Accept(ctx context.Context, in domain.Reservation) (*domain.Reservation, error) {
	if in.Date == "" {
		return nil, fmt.Errorf("date required: %w", domain.ErrInvalidOrder)
	}
	if in.Time == "" {
		return nil, fmt.Errorf("time required: %w", domain.ErrInvalidOrder)
	}
	if in.Guests < 1 {
		return nil, fmt.Errorf("guests must be positive: %w", domain.ErrInvalidOrder)
	}
	phone, err := checkout.NormalizePhone(in.Phone)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidOrder)
	}

	r := in
	r.ID = uuid.NewString()
	r.Phone = phone

	if s.notifier != nil {
		if err := s.notifier.NotifyReservation(ctx, r); err != nil {
			s.logger.Printf("reservation %s: relay failed: %v", r.ID, err)
			return nil, fmt.Errorf("relay reservation: %w", err)
		}
	}
	s.logger.Printf("reservation %s accepted: %s %s, %d guests", r.ID, r.Date, r.Time, r.Guests)
	return &r, nil
}
