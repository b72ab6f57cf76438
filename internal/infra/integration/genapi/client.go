package genapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the image generation API. It keeps no state between
// calls; a task id is the only correlation handle.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

func NewClient(apiToken, baseURL string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateTask submits a generation job and returns the upstream task id.
func (c *Client) CreateTask(ctx context.Context, input CreateTaskInput) (string, error) {
	if len(input.ImageURLs) == 0 {
		return "", fmt.Errorf("at least one source image URL is required")
	}

	payload := createTaskRequest{
		Prompt:      input.Prompt,
		ImageUrls:   input.ImageURLs,
		CallbackUrl: input.CallbackURL,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding task payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/gpt4o-image/generate", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("generation API rejected task (status %d): %s", resp.StatusCode, string(body))
	}

	var response createTaskResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decoding generation response: %w", err)
	}

	if response.Code != 200 {
		return "", fmt.Errorf("generation API error %d: %s", response.Code, response.Msg)
	}
	if response.Data.TaskID == "" {
		return "", fmt.Errorf("generation response missing task id: %s", string(body))
	}

	return response.Data.TaskID, nil
}

// GetTaskStatus fetches the current state of a task. SuccessFlag stays 0
// while the job is processing and switches to 1 with a result URL once done.
func (c *Client) GetTaskStatus(ctx context.Context, taskID string) (*TaskStatus, error) {
	endpoint := fmt.Sprintf("%s/api/v1/gpt4o-image/record-info?taskId=%s", c.baseURL, url.QueryEscape(taskID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading status response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status check failed (status %d): %s", resp.StatusCode, string(body))
	}

	var response taskStatusResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decoding status response: %w", err)
	}

	if response.Code != 200 {
		return nil, fmt.Errorf("generation API error %d: %s", response.Code, response.Msg)
	}

	status := &TaskStatus{SuccessFlag: response.Data.SuccessFlag}
	if status.SuccessFlag == FlagDone {
		if len(response.Data.Response.ResultUrls) == 0 {
			return nil, fmt.Errorf("task %s finished without a result URL", taskID)
		}
		status.ResultImageURL = response.Data.Response.ResultUrls[0]
	}

	return status, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
