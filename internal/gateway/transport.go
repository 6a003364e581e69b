package gateway

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Every outbound call is bounded; the gateway's own processing window is
// shorter than this.
const requestTimeout = 60 * time.Second

// Sender performs one outbound gateway call and decodes the JSON response.
// Implementations carry their own credentials. Tests substitute a stub to
// observe whether the network was reached at all.
type Sender interface {
	Send(ctx context.Context, method, rawURL string, fields url.Values) (map[string]any, error)
}

type httpSender struct {
	client         *http.Client
	privateKey     string
	publishableKey string
}

// newHTTPSender builds the production transport. Certificate and host
// verification are on unless insecureSkipTLS is set; that toggle exists for
// broken test environments only and must never be enabled in production.
func newHTTPSender(privateKey, publishableKey string, insecureSkipTLS bool) *httpSender {
	transport := http.DefaultTransport
	if insecureSkipTLS {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &httpSender{
		client: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
		privateKey:     privateKey,
		publishableKey: publishableKey,
	}
}

func (s *httpSender) Send(ctx context.Context, method, rawURL string, fields url.Values) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(s.privateKey, s.publishableKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Declines come back with non-2xx statuses and a JSON body carrying
	// error_description, so the body is decoded regardless of status.
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding gateway response (status %d): %w", resp.StatusCode, err)
	}
	return raw, nil
}
