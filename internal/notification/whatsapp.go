package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// WhatsAppSender delivers a single WhatsApp-style text message.
type WhatsAppSender interface {
	Send(ctx context.Context, toPhone, body string) error
}

// HTTPWhatsAppSender posts to a configured gateway endpoint.
type HTTPWhatsAppSender struct {
	endpoint string
	client   *http.Client
}

func NewHTTPWhatsAppSender(endpoint string) (*HTTPWhatsAppSender, error) {
	if endpoint == "" {
		return nil, errors.New("whatsapp endpoint not set")
	}
	return &HTTPWhatsAppSender{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

type whatsAppRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

func (s *HTTPWhatsAppSender) Send(ctx context.Context, toPhone, body string) error {
	b, _ := json.Marshal(whatsAppRequest{To: toPhone, Body: body})

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New("failed to send whatsapp message: " + buf.String())
	}

	return nil
}
