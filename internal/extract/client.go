// Package extract is the HTTP boundary to the document extraction service.
// The service reads bank statements and invoices and answers with raw
// expense candidates; all validation and duplicate detection happens on our
// side, in the reconcile engine.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"condoledger/internal/core"

	"github.com/sony/gobreaker"
)

// Request is the payload sent to the extraction service: free text and the
// uploaded documents, base64 encoded.
type Request struct {
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Attachment struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type response struct {
	Candidates []core.Candidate `json:"candidates"`
}

// ServiceError marks a failure of the extraction service itself, as opposed
// to invalid candidate data. Handlers map it to a gateway error.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("extraction service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

type Client struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        RetryConfig
}

// NewClient builds the extraction client. baseURL is the service root
// without the /v1/extract path.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		cb:         newCircuitBreaker("extraction-service"),
		cfg:        RetryConfig{MaxRetries: 2, InitialBackoff: 500 * time.Millisecond},
	}
}

// Extract sends the documents to the service and returns its raw
// candidates. The call runs behind the circuit breaker with retries; any
// failure comes back wrapped in ServiceError.
func (c *Client) Extract(ctx context.Context, req Request) ([]core.Candidate, error) {
	var extracted response

	_, err := c.cb.Execute(func() (any, error) {
		innerErr := retryWithBackoff(ctx, c.cfg, func() error {
			body, err := json.Marshal(req)
			if err != nil {
				return fmt.Errorf("marshal extract request: %w", err)
			}

			url := fmt.Sprintf("%s/v1/extract", c.baseURL)
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("create http request: %w", err)
			}
			httpReq.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(httpReq)
			if err != nil {
				return fmt.Errorf("http call to extraction service: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("extraction service returned status %d", resp.StatusCode)
			}

			extracted = response{}
			return json.NewDecoder(resp.Body).Decode(&extracted)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return nil, nil
	})
	if err != nil {
		return nil, &ServiceError{Err: err}
	}

	return extracted.Candidates, nil
}

// IsServiceError reports whether err originates from the extraction
// service boundary.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
