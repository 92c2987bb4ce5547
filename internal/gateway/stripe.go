package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultBaseURL   = "https://api.stripe.com"
	defaultTimeoutMs = 10_000
)

// StripeClient talks to the Stripe REST API directly: form-encoded requests,
// bearer auth. Only the three capability calls the pipeline needs are
// implemented.
type StripeClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type StripeOption func(*StripeClient)

func WithBaseURL(baseURL string) StripeOption {
	return func(c *StripeClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithTimeout(timeout time.Duration) StripeOption {
	return func(c *StripeClient) {
		c.client.Timeout = timeout
	}
}

func NewStripeClient(apiKey string, opts ...StripeOption) *StripeClient {
	c := &StripeClient{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeoutMs * time.Millisecond},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type paymentMethodResponse struct {
	ID string `json:"id"`
}

type paymentIntentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *StripeClient) Tokenize(ctx context.Context, card CardFields) (string, error) {
	form := url.Values{}
	form.Set("type", "card")
	form.Set("card[number]", card.Number)
	form.Set("card[exp_month]", strconv.Itoa(card.ExpMonth))
	form.Set("card[exp_year]", strconv.Itoa(card.ExpYear))
	form.Set("card[cvc]", card.CVC)

	var method paymentMethodResponse
	if err := c.post(ctx, "/v1/payment_methods", form, &method); err != nil {
		return "", errors.Wrap(err, "tokenizing card")
	}
	return method.ID, nil
}

func (c *StripeClient) VerifyToken(ctx context.Context, token string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payment_methods/"+url.PathEscape(token), nil)
	if err != nil {
		return false, errors.Wrap(err, "creating request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "verifying token")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, errors.Errorf("verifying token: unexpected status %s", resp.Status)
	}
}

func (c *StripeClient) CreateCharge(ctx context.Context, amountMinorUnits int64, currency, token string) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinorUnits, 10))
	form.Set("currency", currency)
	form.Set("payment_method", token)
	form.Set("confirm", "true")
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("automatic_payment_methods[allow_redirects]", "never")

	var intent paymentIntentResponse
	if err := c.post(ctx, "/v1/payment_intents", form, &intent); err != nil {
		return "", errors.Wrap(err, "creating charge")
	}
	return intent.Status, nil
}

func (c *StripeClient) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error.Message)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
