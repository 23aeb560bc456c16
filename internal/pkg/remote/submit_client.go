package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrRateLimited signals the remote authority asked for backoff. The caller
// may retry the identical submission later.
var ErrRateLimited = errors.New("remote authority requested backoff")

// RejectedError carries the remote authority's diagnostic for a rejected
// submission.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("remote authority rejected submission (HTTP %d): %s", e.StatusCode, e.Body)
}

type ISubmitClient interface {
	// SubmitForm posts a finished instance to the remote authority and returns
	// the acknowledgement body on success.
	SubmitForm(ctx context.Context, instanceXml string, postUrl string) (string, error)
}

type SubmitClient struct {
	httpClient *http.Client
}

func NewSubmitClient(timeout time.Duration) ISubmitClient {
	return &SubmitClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *SubmitClient) SubmitForm(ctx context.Context, instanceXml string, postUrl string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postUrl, strings.NewReader(instanceXml))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode >= 400:
		return "", &RejectedError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	return string(bodyBytes), nil
}
