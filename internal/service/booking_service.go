package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/messaging/nats"
	"github.com/Abdulsamad25/apartment-rentals/internal/domain/entity"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
)

const (
	natsSubjectRentalCreated = "rental.created"

	// A fresh booking covers three days; tenants extend it afterwards
	// through the renew flow.
	initialRentalTerm = 3 * 24 * time.Hour
)

var (
	ErrApartmentUnavailable = errors.New("apartment is not available for booking")
	ErrCheckoutInFlight     = errors.New("a checkout for this apartment is already in progress")
	ErrPaymentNotSuccessful = errors.New("payment was not successful")
)

// PaymentGateway is the consumed payment collaborator: it produces
// exactly one verified success (with a reference) or a cancel per
// checkout. The protocol behind it is not this service's business.
type PaymentGateway interface {
	Initialize(ctx context.Context, req PaymentRequest) (*PaymentSession, error)
	Verify(ctx context.Context, reference string) (string, error)
}

type PaymentRequest struct {
	Email         string
	AmountKobo    int64
	ApartmentName string
	CustomerName  string
}

type PaymentSession struct {
	AuthorizationURL string
	Reference        string
}

// BookingMailer sends the post-payment confirmation.
type BookingMailer interface {
	SendBookingConfirmed(toEmail, apartmentName, reference string) error
}

// BookingService drives the checkout flow: initialize payment, then on a
// verified success mark the apartment unavailable and create the rental.
// A per-apartment in-flight token rejects double submits while a
// checkout is pending.
type BookingService struct {
	catalog   *CatalogService
	rentals   *RentalService
	gateway   PaymentGateway
	mailer    BookingMailer
	publisher nats.MessagePublisher
	log       logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewBookingService(catalog *CatalogService, rentals *RentalService, gateway PaymentGateway, mailer BookingMailer, publisher nats.MessagePublisher, log logger.Logger) *BookingService {
	return &BookingService{
		catalog:   catalog,
		rentals:   rentals,
		gateway:   gateway,
		mailer:    mailer,
		publisher: publisher,
		log:       log,
		inFlight:  make(map[string]struct{}),
	}
}

func (s *BookingService) acquire(apartmentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[apartmentID]; busy {
		return false
	}
	s.inFlight[apartmentID] = struct{}{}
	return true
}

func (s *BookingService) release(apartmentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, apartmentID)
}

// Checkout starts a payment for one month's rent. The in-flight token is
// held until ConfirmBooking or CancelCheckout for the same apartment.
func (s *BookingService) Checkout(ctx context.Context, apartmentID, email, customerName string) (*PaymentSession, error) {
	apt, err := s.catalog.GetByID(apartmentID)
	if err != nil {
		return nil, err
	}
	if !apt.Available {
		return nil, ErrApartmentUnavailable
	}
	if !s.acquire(apartmentID) {
		s.log.Warnf("BookingService.Checkout: rejected double submit for apartment %s", apartmentID)
		return nil, ErrCheckoutInFlight
	}

	session, err := s.gateway.Initialize(ctx, PaymentRequest{
		Email:         email,
		AmountKobo:    int64(apt.Price * 100),
		ApartmentName: apt.Name,
		CustomerName:  customerName,
	})
	if err != nil {
		s.release(apartmentID)
		s.log.Errorf("BookingService.Checkout: payment initialize failed for %s: %v", apartmentID, err)
		return nil, err
	}
	s.log.Infof("BookingService.Checkout: payment initialized for apartment %s, reference %s", apartmentID, session.Reference)
	return session, nil
}

// ConfirmBooking runs on the gateway's success callback. The reference is
// verified server-side before any state changes. Idempotent: confirming
// an apartment that already has its rental returns the existing one.
func (s *BookingService) ConfirmBooking(ctx context.Context, apartmentID, reference, email string) (*entity.Rental, error) {
	defer s.release(apartmentID)

	status, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		s.log.Errorf("BookingService.ConfirmBooking: verify failed for reference %s: %v", reference, err)
		return nil, err
	}
	if status != "success" {
		s.log.Warnf("BookingService.ConfirmBooking: reference %s has status %s", reference, status)
		return nil, ErrPaymentNotSuccessful
	}

	if existing, err := s.rentals.GetByID(apartmentID); err == nil {
		s.log.Infof("BookingService.ConfirmBooking: rental for %s already exists, reference %s", apartmentID, existing.Reference)
		return existing, nil
	}

	apt, err := s.catalog.GetByID(apartmentID)
	if err != nil {
		return nil, err
	}

	s.catalog.ToggleAvailability(ctx, apartmentID, false)

	start := time.Now()
	rental := entity.Rental{
		ID:        apt.ID,
		Title:     apt.Name,
		Location:  apt.Location,
		Price:     formatNaira(apt.Price),
		Status:    entity.RentalStatusActive,
		Image:     apt.ImageURL,
		StartDate: start,
		EndDate:   start.Add(initialRentalTerm),
		Reference: reference,
	}
	s.rentals.Add(ctx, rental)
	s.log.Infof("BookingService.ConfirmBooking: booking confirmed for apartment %s, reference %s", apartmentID, reference)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, natsSubjectRentalCreated, rental); err != nil {
			s.log.Warnf("BookingService.ConfirmBooking: failed to publish event: %v", err)
		}
	}
	if s.mailer != nil && email != "" {
		if err := s.mailer.SendBookingConfirmed(email, apt.Name, reference); err != nil {
			s.log.Warnf("BookingService.ConfirmBooking: failed to send confirmation email: %v", err)
		}
	}
	return &rental, nil
}

// CancelCheckout runs on the gateway's cancel callback. No state changes,
// only the in-flight token is returned.
func (s *BookingService) CancelCheckout(apartmentID string) {
	s.release(apartmentID)
	s.log.Infof("BookingService.CancelCheckout: checkout cancelled for apartment %s", apartmentID)
}

// formatNaira renders a display price the way the rental card shows it,
// e.g. 750000 -> "₦750,000".
func formatNaira(price float64) string {
	n := strconv.FormatInt(int64(price), 10)
	var out []byte
	for i, c := range []byte(n) {
		if i > 0 && (len(n)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return fmt.Sprintf("₦%s", out)
}
