package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Processor creates a payment handle the browser can complete a charge with.
// The amount is a minor-unit integer (cents). The caller-supplied amount is
// trusted as-is; it is not re-derived from the treatment catalog.
type Processor interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// StripeClient talks to the Stripe payment-intents API and returns the
// client secret the frontend needs.
type StripeClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripeClient(secretKey, baseURL string) *StripeClient {
	return &StripeClient{
		secretKey: secretKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

func (s *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build payment intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.secretKey, "")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment intent endpoint returned status %d", resp.StatusCode)
	}

	var intent intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", fmt.Errorf("decode payment intent response: %w", err)
	}
	if intent.ClientSecret == "" {
		return "", fmt.Errorf("payment intent response has no client secret")
	}
	return intent.ClientSecret, nil
}
