package payout

import "context"

// Gateway executes approved driver payouts against an external money
// movement provider. The service records the transfer ID it returns;
// reconciliation against provider webhooks is handled out of band.
type Gateway interface {
	SendPayout(ctx context.Context, request *Request) (*Response, error)
}

type Request struct {
	Amount             float64           `json:"amount"`
	Currency           string            `json:"currency"`
	DestinationAccount string            `json:"destination_account"`
	Description        string            `json:"description"`
	Reference          string            `json:"reference"`
	Metadata           map[string]string `json:"metadata"`
}

type Response struct {
	TransferID string  `json:"transfer_id"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	CreatedAt  int64   `json:"created_at"`
}
