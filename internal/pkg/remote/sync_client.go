package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type ISyncClient interface {
	// PerformSync reconciles local state with the remote authority so that
	// post-submission form logic sees fresh data.
	PerformSync(ctx context.Context, domain, username string, skipFixtures bool) error
}

type syncRequest struct {
	Domain       string `json:"domain"`
	Username     string `json:"username"`
	SkipFixtures bool   `json:"skip_fixtures"`
}

type SyncClient struct {
	httpClient *http.Client
	syncUrl    string
}

func NewSyncClient(syncUrl string, timeout time.Duration) ISyncClient {
	return &SyncClient{
		httpClient: &http.Client{Timeout: timeout},
		syncUrl:    syncUrl,
	}
}

func (c *SyncClient) PerformSync(ctx context.Context, domain, username string, skipFixtures bool) error {
	body, err := json.Marshal(syncRequest{
		Domain:       domain,
		Username:     username,
		SkipFixtures: skipFixtures,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.syncUrl, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sync failed (HTTP %d): %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}
