package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Abdulsamad25/apartment-rentals/internal/app/config"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/sony/gobreaker"
)

// Client talks to the Paystack REST API. Calls run through a circuit
// breaker so a flapping gateway fails fast instead of piling up requests.
type Client struct {
	baseURL   string
	secretKey string
	currency  string
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker
	log       logger.Logger
}

type InitializeRequest struct {
	Email         string
	AmountKobo    int64
	ApartmentName string
	CustomerName  string
}

type InitializeResponse struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type VerifyResponse struct {
	Reference  string
	Status     string
	AmountKobo int64
	PaidAt     string
}

func NewClient(cfg config.PaystackConfig, log logger.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "paystack",
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("Circuit breaker %s changed from %s to %s", name, from, to)
		},
	})
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		currency:  cfg.Currency,
		http:      &http.Client{Timeout: cfg.Timeout},
		breaker:   breaker,
		log:       log,
	}
}

type initializePayload struct {
	Email    string            `json:"email"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

type initializeAPIResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyAPIResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		PaidAt    string `json:"paid_at"`
	} `json:"data"`
}

// Initialize starts a checkout transaction. Amount is in kobo.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	payload := initializePayload{
		Email:    req.Email,
		Amount:   req.AmountKobo,
		Currency: c.currency,
		Metadata: map[string]string{
			"apartment_name": req.ApartmentName,
			"customer_name":  req.CustomerName,
		},
	}

	var apiResp initializeAPIResponse
	if err := c.post(ctx, "/transaction/initialize", payload, &apiResp); err != nil {
		return nil, err
	}
	if !apiResp.Status {
		return nil, fmt.Errorf("paystack initialize rejected: %s", apiResp.Message)
	}
	return &InitializeResponse{
		AuthorizationURL: apiResp.Data.AuthorizationURL,
		AccessCode:       apiResp.Data.AccessCode,
		Reference:        apiResp.Data.Reference,
	}, nil
}

// Verify confirms a transaction reference server-side. Only a verified
// "success" status is trusted to confirm a booking.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	var apiResp verifyAPIResponse
	if err := c.get(ctx, "/transaction/verify/"+reference, &apiResp); err != nil {
		return nil, err
	}
	if !apiResp.Status {
		return nil, fmt.Errorf("paystack verify rejected: %s", apiResp.Message)
	}
	return &VerifyResponse{
		Reference:  apiResp.Data.Reference,
		Status:     apiResp.Data.Status,
		AmountKobo: apiResp.Data.Amount,
		PaidAt:     apiResp.Data.PaidAt,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal paystack request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(data), out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("paystack request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("paystack returned %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("failed to decode paystack response: %w", err)
		}
		return nil, nil
	})
	return err
}
