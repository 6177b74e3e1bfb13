package paymentrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"equiploan/util/httpx"
)

type httpRepo struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTP(baseURL, apiKey string) Repo {
	return &httpRepo{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpx.Client(),
	}
}

func (r *httpRepo) Charge(ctx context.Context, req ChargeReq) (*ChargeResp, error) {
	body := map[string]any{
		"amount_cents":    req.AmountCents,
		"currency":        req.Currency,
		"card_token":      req.CardToken,
		"idempotency_key": req.IdempotencyKey,
	}
	b, _ := json.Marshal(body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/charges", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired {
		return nil, ErrDeclined
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("charge failed: %s", resp.Status)
	}

	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	switch out.Status {
	case "DECLINED", "FAILED":
		return nil, ErrDeclined
	}
	if out.ID == "" {
		return nil, errors.New("payment gateway: empty charge id")
	}
	return &ChargeResp{Reference: out.ID}, nil
}
