package paymentrepo

import (
	"context"
	"errors"
)

type ChargeReq struct {
	AmountCents    int64
	Currency       string
	CardToken      string
	IdempotencyKey string
}

type ChargeResp struct {
	Reference string
}

// ErrDeclined distinguishes a declined card from a transport failure.
// Callers treat both as a payment failure; only the message differs.
var ErrDeclined = errors.New("charge declined")

type Repo interface {
	Charge(ctx context.Context, req ChargeReq) (*ChargeResp, error)
}
