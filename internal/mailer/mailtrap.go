package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lumenstore.com/app/internal/config"
)

// Mailtrap sends through Mailtrap's HTTP send API.
type Mailtrap struct {
	apiURL   string
	apiToken string
	client   *http.Client
}

type mailtrapAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailtrapPayload struct {
	From     mailtrapAddress   `json:"from"`
	To       []mailtrapAddress `json:"to"`
	Cc       []mailtrapAddress `json:"cc,omitempty"`
	Bcc      []mailtrapAddress `json:"bcc,omitempty"`
	Subject  string            `json:"subject"`
	Text     string            `json:"text,omitempty"`
	HTML     string            `json:"html,omitempty"`
	Category string            `json:"category,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}

func NewMailtrap(cfg config.MailtrapConfig) *Mailtrap {
	return &Mailtrap{
		apiURL:   cfg.APIURL,
		apiToken: cfg.APIToken,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func addresses(in []string) []mailtrapAddress {
	if len(in) == 0 {
		return nil
	}
	out := make([]mailtrapAddress, 0, len(in))
	for _, a := range in {
		out = append(out, mailtrapAddress{Email: a})
	}
	return out
}

func (m *Mailtrap) Send(ctx context.Context, e Email) error {
	if err := e.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(mailtrapPayload{
		From:     mailtrapAddress{Email: e.From, Name: e.FromName},
		To:       addresses(e.To),
		Cc:       addresses(e.Cc),
		Bcc:      addresses(e.Bcc),
		Subject:  e.Subject,
		Text:     e.TextBody,
		HTML:     e.HTMLBody,
		Category: "Transactional",
		Headers:  e.Headers,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailtrap: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("mailtrap: status %d: %s", res.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}
