package paystack

import (
	"context"

	"github.com/Abdulsamad25/apartment-rentals/internal/service"
)

// Gateway adapts Client to the booking service's payment port.
type Gateway struct {
	client *Client
}

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Initialize(ctx context.Context, req service.PaymentRequest) (*service.PaymentSession, error) {
	resp, err := g.client.Initialize(ctx, InitializeRequest{
		Email:         req.Email,
		AmountKobo:    req.AmountKobo,
		ApartmentName: req.ApartmentName,
		CustomerName:  req.CustomerName,
	})
	if err != nil {
		return nil, err
	}
	return &service.PaymentSession{
		AuthorizationURL: resp.AuthorizationURL,
		Reference:        resp.Reference,
	}, nil
}

func (g *Gateway) Verify(ctx context.Context, reference string) (string, error) {
	resp, err := g.client.Verify(ctx, reference)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}
