package bitrix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	webhookURL string
	http       *http.Client
}

// NewClient takes the Bitrix24 inbound webhook base URL; REST method names
// are appended to it.
func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateLead calls crm.lead.add and returns the numeric lead id assigned by
// Bitrix along with the raw response body.
func (c *Client) CreateLead(ctx context.Context, input CreateLeadInput) (*CreateLeadResult, error) {
	if c.webhookURL == "" {
		return nil, fmt.Errorf("bitrix webhook URL not configured")
	}

	payload := createLeadRequest{
		Fields: leadFields{
			Title:    fmt.Sprintf("Заявка от %s", input.Name),
			Name:     input.Name,
			Phone:    []phoneField{{Value: input.Phone, ValueType: "WORK"}},
			SourceID: "WEB",
			Comments: input.Comments,
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding bitrix payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL+"crm.lead.add", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bitrix request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading bitrix response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("bitrix rejected lead (status %d): %s", resp.StatusCode, string(body))
	}

	var response createLeadResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decoding bitrix response: %w", err)
	}

	// Bitrix reports application errors inside a 200 body.
	if response.Error != "" {
		if response.ErrorDescription != "" {
			return nil, fmt.Errorf("bitrix error: %s", response.ErrorDescription)
		}
		return nil, fmt.Errorf("bitrix error: %s", response.Error)
	}

	if response.Result == 0 {
		return nil, fmt.Errorf("bitrix response missing lead id: %s", string(body))
	}

	return &CreateLeadResult{LeadID: response.Result, Raw: body}, nil
}
