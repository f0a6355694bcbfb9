package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/messaging/nats"
	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/storage/memory"
	"github.com/Abdulsamad25/apartment-rentals/internal/domain/entity"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/Abdulsamad25/apartment-rentals/internal/port/http/middleware"
	"github.com/Abdulsamad25/apartment-rentals/internal/service"
)

const testSecret = "test-secret"

type stubGateway struct{}

func (stubGateway) Initialize(context.Context, service.PaymentRequest) (*service.PaymentSession, error) {
	return &service.PaymentSession{AuthorizationURL: "https://pay.example/x", Reference: "ref-1"}, nil
}

func (stubGateway) Verify(context.Context, string) (string, error) { return "success", nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	store := memory.NewSnapshotStore()
	log := logger.NoOp()

	catalog := service.NewCatalogService(ctx, store, nats.NoOpPublisher{}, log)
	saved := service.NewSavedService(ctx, store, log)
	rentals := service.NewRentalService(ctx, store, catalog, nats.NoOpPublisher{}, log)
	bookings := service.NewBookingService(catalog, rentals, stubGateway{}, nil, nats.NoOpPublisher{}, log)

	router := NewRouter(RouterDeps{
		Catalog:   catalog,
		Saved:     saved,
		Rentals:   rentals,
		Bookings:  bookings,
		JWTSecret: testSecret,
		PageSize:  6,
		Logger:    log,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID: "u-1",
		Email:  "tenant@example.com",
		Name:   "Tenant",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	assert.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	return resp
}

func TestRouter_SearchIsPublic(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/apartments?sort=price&page=1", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body searchResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 9, body.Total)
	assert.Equal(t, 2, body.TotalPages)
	assert.Len(t, body.Apartments, 6)
	assert.Equal(t, 300000.0, body.Apartments[0].Price)
}

func TestRouter_MetaReflectsCatalog(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/apartments/meta", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body metaResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 300000.0, body.MinPrice)
	assert.Equal(t, 1200000.0, body.MaxPrice)
	assert.Contains(t, body.Types, "Studio")
}

func TestRouter_SavedRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/saved", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/saved", signToken(t, ""), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_CatalogMutationRequiresAdmin(t *testing.T) {
	srv := newTestServer(t)
	input := entity.Apartment{
		Name: "New Flat", Location: "Lagos", Price: 250000, Bedrooms: 1, Bathrooms: 1,
	}

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/apartments", signToken(t, "user"), input)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Role comparison is case-insensitive because claims are normalized.
	resp = doRequest(t, http.MethodPost, srv.URL+"/api/apartments", signToken(t, "Admin"), input)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created entity.Apartment
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Available)
}

func TestRouter_ValidationErrorsAreBadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/apartments", signToken(t, "admin"), entity.Apartment{Name: "Only name"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "Valid price is required")
}

func TestRouter_CheckoutConfirmCancelFlow(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, "user")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/bookings/1/checkout", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var session checkoutResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	assert.Equal(t, "ref-1", session.Reference)

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/bookings/1/confirm", token, confirmRequest{Reference: session.Reference})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var rental entity.Rental
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&rental))
	assert.Equal(t, "1", rental.ID)
	assert.Equal(t, "₦750,000", rental.Price)

	// The booked apartment left the available bucket.
	resp = doRequest(t, http.MethodGet, srv.URL+"/api/apartments/1", "", nil)
	defer resp.Body.Close()
	var apt entity.Apartment
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&apt))
	assert.False(t, apt.Available)

	// Cancelling the rental puts it back.
	resp = doRequest(t, http.MethodDelete, srv.URL+"/api/rentals/1", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/apartments/1", "", nil)
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&apt))
	assert.True(t, apt.Available)
}

func TestRouter_AdjustRentalEndDate(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, "user")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/bookings/2/checkout", token, nil)
	resp.Body.Close()
	resp = doRequest(t, http.MethodPost, srv.URL+"/api/bookings/2/confirm", token, confirmRequest{Reference: "ref-1"})
	resp.Body.Close()

	resp = doRequest(t, http.MethodPatch, srv.URL+"/api/rentals/2/end-date", token,
		adjustRequest{Amount: 1, Unit: "months", Direction: "add"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Shrinking below the start date is rejected.
	resp = doRequest(t, http.MethodPatch, srv.URL+"/api/rentals/2/end-date", token,
		adjustRequest{Amount: 2, Unit: "years", Direction: "subtract"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_HealthReportsPersistence(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}
