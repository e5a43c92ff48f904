package source

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/nshankar/auweather/internal/dataset"
	"github.com/nshankar/auweather/internal/metrics"
)

// HTTPClient fetches the dataset CSV from a URL with retry. Transient
// failures (rate limiting, 5xx) back off exponentially; anything else is
// permanent.
type HTTPClient struct {
	client *http.Client
}

func NewHTTPClient() *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: 30 * time.Second}}
}

func (h *HTTPClient) Fetch(url string) (*dataset.Table, error) {
	var body []byte
	operation := func() error {
		resp, err := h.client.Get(url)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("fetch dataset: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("fetch dataset: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("fetch dataset: status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, bo); err != nil {
		return nil, err
	}

	t, err := ReadCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	metrics.DatasetLoadsTotal.WithLabelValues("http").Inc()
	return t, nil
}
