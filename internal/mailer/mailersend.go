package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultBaseURL   = "https://api.mailersend.com"
	defaultTimeoutMs = 10_000
)

// MailerSendClient delivers transactional email through the MailerSend REST
// API.
type MailerSendClient struct {
	baseURL   string
	apiKey    string
	fromEmail string
	fromName  string
	client    *http.Client
}

type ClientOption func(*MailerSendClient)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *MailerSendClient) {
		c.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *MailerSendClient) {
		c.client.Timeout = timeout
	}
}

func NewMailerSendClient(apiKey, fromEmail, fromName string, opts ...ClientOption) *MailerSendClient {
	c := &MailerSendClient{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		client:    &http.Client{Timeout: defaultTimeoutMs * time.Millisecond},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type emailRequest struct {
	From    emailAddress   `json:"from"`
	To      []emailAddress `json:"to"`
	Subject string         `json:"subject"`
	Text    string         `json:"text"`
}

func (c *MailerSendClient) Deliver(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(emailRequest{
		From:    emailAddress{Email: c.fromEmail, Name: c.fromName},
		To:      []emailAddress{{Email: to}},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return errors.Wrap(err, "marshalling email request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/email", bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending email")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("error response: %s: %s", resp.Status, string(respBody))
	}

	return nil
}
