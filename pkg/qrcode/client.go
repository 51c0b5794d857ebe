// Package qrcode renders ticket payloads through the external GoQR image
// API. The core never renders images itself; it only hands out URLs.
package qrcode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultSize = "300x300"

var ErrRenderUnavailable = errors.New("qr render unavailable")

type Client struct {
	baseURL string
	size    string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		size:    defaultSize,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Render builds the hosted image URL for the payload and probes the API
// once so an outage is reported as ErrRenderUnavailable instead of a
// dead link on the ticket.
func (c *Client) Render(ctx context.Context, payload string) (string, error) {
	qrURL := fmt.Sprintf("%s?data=%s&size=%s", c.baseURL, url.QueryEscape(payload), c.size)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, qrURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: qr api returned %d", ErrRenderUnavailable, resp.StatusCode)
	}

	return qrURL, nil
}
