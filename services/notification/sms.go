package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// SMSClient is an interface for SMS service providers.
type SMSClient interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// HTTPSMSClient sends messages through a JSON-over-HTTP SMS gateway.
type HTTPSMSClient struct {
	APIKey string
	APIURL string
	Client *http.Client
}

type smsRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

type smsResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

func NewHTTPSMSClient(apiKey, apiURL string) *HTTPSMSClient {
	return &HTTPSMSClient{
		APIKey: apiKey,
		APIURL: apiURL,
		Client: &http.Client{},
	}
}

func (s *HTTPSMSClient) SendSMS(ctx context.Context, phone, message string) error {
	payload := smsRequest{Recipient: phone, Message: message}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal SMS payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.APIURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("SMS request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read SMS response: %w", err)
	}

	var parsed smsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to parse SMS response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || parsed.Status != "success" {
		return fmt.Errorf("SMS provider rejected message: %s (%d)", parsed.Msg, parsed.Code)
	}
	return nil
}
