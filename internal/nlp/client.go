// Package nlp talks to the project-zero NLP microservice, which extracts
// keywords from document text.
package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const DefaultBaseURL = "http://localhost:5001"

// ErrTaskPending is returned while an asynchronous task has not finished.
var ErrTaskPending = errors.New("task is still pending")

var pendingStatuses = []string{"pending", "processing", "queued", "started"}

type Client struct {
	httpClient *resty.Client
	now        func() time.Time
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{
		httpClient: client,
		now:        time.Now,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type ProcessTextRequest struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

type taskStatus struct {
	Status string `json:"status"`
}

// TestConnection calls the service root and returns its payload.
func (client *Client) TestConnection(ctx context.Context) (json.RawMessage, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	return decodeResponse(response)
}

// ProcessText extracts keywords from content synchronously.
func (client *Client) ProcessText(ctx context.Context, content string) (json.RawMessage, error) {
	return client.post(ctx, "/process_text", content)
}

// ProcessTextAsync submits content for background processing. The payload
// carries the id of the task to poll with GetResult.
func (client *Client) ProcessTextAsync(ctx context.Context, content string) (json.RawMessage, error) {
	return client.post(ctx, "/process_text_async", content)
}

// GetResult returns the current state of an asynchronous task.
func (client *Client) GetResult(ctx context.Context, taskID string) (json.RawMessage, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetPathParam("taskID", taskID).
		Get("/get_result/{taskID}")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	return decodeResponse(response)
}

// WaitForResult polls GetResult until the task leaves a pending status or
// attempts run out. Only pending responses are retried.
func (client *Client) WaitForResult(ctx context.Context, taskID string, attempts uint, delay time.Duration) (json.RawMessage, error) {
	if attempts == 0 {
		attempts = 1
	}
	var result json.RawMessage
	if err := retry.Do(
		func() error {
			payload, err := client.GetResult(ctx, taskID)
			if err != nil {
				return err
			}
			if isPending(payload) {
				return ErrTaskPending
			}
			result = payload
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, ErrTaskPending)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Debug("Task not finished yet", "taskId", taskID, "attempt", n+1)
		}),
	); err != nil {
		return nil, fmt.Errorf("retry.Do > %w", err)
	}
	return result, nil
}

func (client *Client) post(ctx context.Context, path, content string) (json.RawMessage, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(ProcessTextRequest{
			ID:   strconv.FormatInt(client.now().UnixMilli(), 10),
			Data: content,
		}).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	return decodeResponse(response)
}

func decodeResponse(response *resty.Response) (json.RawMessage, error) {
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	body := []byte(response.String())
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON response: %s", response.String())
	}
	return json.RawMessage(body), nil
}

func isPending(payload json.RawMessage) bool {
	var status taskStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return false
	}
	return slices.Contains(pendingStatuses, status.Status)
}
