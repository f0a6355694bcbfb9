package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/messaging/nats"
	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/storage/memory"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
)

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Initialize(ctx context.Context, req PaymentRequest) (*PaymentSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentSession), args.Error(1)
}

func (m *MockPaymentGateway) Verify(ctx context.Context, reference string) (string, error) {
	args := m.Called(ctx, reference)
	return args.String(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendBookingConfirmed(toEmail, apartmentName, reference string) error {
	args := m.Called(toEmail, apartmentName, reference)
	return args.Error(0)
}

func newTestBooking(t *testing.T, gateway PaymentGateway, mailer BookingMailer) (*BookingService, *CatalogService, *RentalService) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewSnapshotStore()
	catalog := NewCatalogService(ctx, store, nats.NoOpPublisher{}, logger.NoOp())
	rentals := NewRentalService(ctx, store, catalog, nats.NoOpPublisher{}, logger.NoOp())
	bookings := NewBookingService(catalog, rentals, gateway, mailer, nats.NoOpPublisher{}, logger.NoOp())
	return bookings, catalog, rentals
}

func TestBookingService_CheckoutInitializesPayment(t *testing.T) {
	gateway := new(MockPaymentGateway)
	bookings, _, _ := newTestBooking(t, gateway, nil)

	// Seed apartment "1" costs 750,000 naira, so the charge is 75,000,000 kobo.
	gateway.On("Initialize", mock.Anything, mock.MatchedBy(func(req PaymentRequest) bool {
		return req.AmountKobo == 75000000 && req.Email == "tenant@example.com"
	})).Return(&PaymentSession{AuthorizationURL: "https://pay.example/abc", Reference: "ref-1"}, nil)

	session, err := bookings.Checkout(context.Background(), "1", "tenant@example.com", "Tenant")
	assert.NoError(t, err)
	assert.Equal(t, "ref-1", session.Reference)
	gateway.AssertExpectations(t)
}

func TestBookingService_CheckoutRejectsUnavailableApartment(t *testing.T) {
	gateway := new(MockPaymentGateway)
	bookings, catalog, _ := newTestBooking(t, gateway, nil)

	catalog.ToggleAvailability(context.Background(), "1", false)
	_, err := bookings.Checkout(context.Background(), "1", "tenant@example.com", "Tenant")
	assert.ErrorIs(t, err, ErrApartmentUnavailable)
	gateway.AssertNotCalled(t, "Initialize", mock.Anything, mock.Anything)
}

func TestBookingService_CheckoutRejectsDoubleSubmit(t *testing.T) {
	gateway := new(MockPaymentGateway)
	bookings, _, _ := newTestBooking(t, gateway, nil)

	gateway.On("Initialize", mock.Anything, mock.Anything).
		Return(&PaymentSession{Reference: "ref-1"}, nil).Once()

	_, err := bookings.Checkout(context.Background(), "1", "tenant@example.com", "Tenant")
	assert.NoError(t, err)

	_, err = bookings.Checkout(context.Background(), "1", "tenant@example.com", "Tenant")
	assert.ErrorIs(t, err, ErrCheckoutInFlight)
}

func TestBookingService_CancelCheckoutReleasesToken(t *testing.T) {
	gateway := new(MockPaymentGateway)
	bookings, _, _ := newTestBooking(t, gateway, nil)

	gateway.On("Initialize", mock.Anything, mock.Anything).
		Return(&PaymentSession{Reference: "ref-1"}, nil).Twice()

	_, err := bookings.Checkout(context.Background(), "1", "tenant@example.com", "Tenant")
	assert.NoError(t, err)

	bookings.CancelCheckout("1")

	_, err = bookings.Checkout(context.Background(), "1", "tenant@example.com", "Tenant")
	assert.NoError(t, err)
}

func TestBookingService_ConfirmBookingCreatesRental(t *testing.T) {
	gateway := new(MockPaymentGateway)
	mailer := new(MockMailer)
	bookings, catalog, rentals := newTestBooking(t, gateway, mailer)
	ctx := context.Background()

	gateway.On("Verify", mock.Anything, "ref-1").Return("success", nil)
	mailer.On("SendBookingConfirmed", "tenant@example.com", "Luxury Apartment", "ref-1").Return(nil)

	rental, err := bookings.ConfirmBooking(ctx, "1", "ref-1", "tenant@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "1", rental.ID)
	assert.Equal(t, "₦750,000", rental.Price)
	assert.Equal(t, "ref-1", rental.Reference)
	assert.Equal(t, 72.0, rental.EndDate.Sub(rental.StartDate).Hours())

	apt, _ := catalog.GetByID("1")
	assert.False(t, apt.Available)

	stored, err := rentals.GetByID("1")
	assert.NoError(t, err)
	assert.Equal(t, rental.Reference, stored.Reference)
	mailer.AssertExpectations(t)
}

func TestBookingService_ConfirmBookingIsIdempotent(t *testing.T) {
	gateway := new(MockPaymentGateway)
	bookings, _, rentals := newTestBooking(t, gateway, nil)
	ctx := context.Background()

	gateway.On("Verify", mock.Anything, "ref-1").Return("success", nil)

	first, err := bookings.ConfirmBooking(ctx, "1", "ref-1", "")
	assert.NoError(t, err)

	second, err := bookings.ConfirmBooking(ctx, "1", "ref-1", "")
	assert.NoError(t, err)
	assert.Equal(t, first.Reference, second.Reference)
	assert.Len(t, rentals.List(), 1)
}

func TestBookingService_ConfirmBookingRejectsFailedPayment(t *testing.T) {
	gateway := new(MockPaymentGateway)
	bookings, catalog, rentals := newTestBooking(t, gateway, nil)
	ctx := context.Background()

	gateway.On("Verify", mock.Anything, "ref-bad").Return("failed", nil)

	_, err := bookings.ConfirmBooking(ctx, "1", "ref-bad", "")
	assert.ErrorIs(t, err, ErrPaymentNotSuccessful)

	apt, _ := catalog.GetByID("1")
	assert.True(t, apt.Available)
	assert.Empty(t, rentals.List())
}

func TestBookingService_ConfirmBookingVerifyError(t *testing.T) {
	gateway := new(MockPaymentGateway)
	bookings, _, _ := newTestBooking(t, gateway, nil)

	gateway.On("Verify", mock.Anything, "ref-x").Return("", errors.New("gateway down"))

	_, err := bookings.ConfirmBooking(context.Background(), "1", "ref-x", "")
	assert.Error(t, err)
}

func TestBookingService_MailFailureDoesNotFailBooking(t *testing.T) {
	gateway := new(MockPaymentGateway)
	mailer := new(MockMailer)
	bookings, _, _ := newTestBooking(t, gateway, mailer)

	gateway.On("Verify", mock.Anything, "ref-1").Return("success", nil)
	mailer.On("SendBookingConfirmed", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	rental, err := bookings.ConfirmBooking(context.Background(), "1", "ref-1", "tenant@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, rental)
}

func TestFormatNaira(t *testing.T) {
	assert.Equal(t, "₦750,000", formatNaira(750000))
	assert.Equal(t, "₦1,200,000", formatNaira(1200000))
	assert.Equal(t, "₦950", formatNaira(950))
}
