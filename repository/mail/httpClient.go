package mailrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"equiploan/util/httpx"
)

type httpSender struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTP(baseURL, apiKey string) Sender {
	return &httpSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpx.Client(),
	}
}

func (s *httpSender) Send(ctx context.Context, to, subject, body string) error {
	payload := map[string]string{
		"to":      to,
		"subject": subject,
		"body":    body,
	}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail send failed: %s", resp.Status)
	}
	return nil
}

// NewLog is the dev fallback when no mail API is configured.
func NewLog(log *slog.Logger) Sender { return logSender{log} }

type logSender struct{ log *slog.Logger }

func (s logSender) Send(_ context.Context, to, subject, body string) error {
	s.log.Info("mail (not delivered, no MAIL_API_URL)", "to", to, "subject", subject, "body", body)
	return nil
}
