package payout

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"motora/internal/utils"
)

type StripeGateway struct {
	client *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeGateway{
		client: sc,
	}
}

// SendPayout moves money to the driver's connected account as a
// transfer. Amounts are converted to cents at this boundary only.
func (s *StripeGateway) SendPayout(ctx context.Context, request *Request) (*Response, error) {
	params := &stripe.TransferParams{
		Amount:      stripe.Int64(utils.AmountToCents(request.Amount)),
		Currency:    stripe.String(request.Currency),
		Destination: stripe.String(request.DestinationAccount),
		Description: stripe.String(request.Description),
	}
	params.Context = ctx

	if request.Reference != "" {
		params.TransferGroup = stripe.String(request.Reference)
	}
	for key, value := range request.Metadata {
		params.AddMetadata(key, value)
	}

	transfer, err := s.client.Transfers.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	return &Response{
		TransferID: transfer.ID,
		Status:     "sent",
		Amount:     float64(transfer.Amount) / 100,
		Currency:   string(transfer.Currency),
		CreatedAt:  transfer.Created,
	}, nil
}
