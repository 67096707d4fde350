// Package submit delivers completed claim records to their destination.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/meridian-legal/pfas-intake/internal/model"
	"github.com/meridian-legal/pfas-intake/internal/resilience"
)

// LogSink is the reference stub: it logs the submission and reports success
// without persisting anything.
type LogSink struct{}

// Submit implements intake.Sink.
func (LogSink) Submit(_ context.Context, data model.ClaimFormData) error {
	zap.L().Info("claim submitted",
		zap.String("injury_type", string(data.InjuryInfo.InjuryType)),
		zap.Bool("in_contamination_zone", data.ExposureInfo.IsCurrentlyInContaminationZone),
	)
	return nil
}

// WebhookSink POSTs the claim payload to a configured endpoint. Delivery is
// fire-and-forget: there is no response contract beyond success or failure,
// and transient failures are retried with backoff.
type WebhookSink struct {
	url        string
	httpClient *http.Client
	retry      resilience.RetryConfig
}

// WebhookOption configures a WebhookSink.
type WebhookOption func(*WebhookSink)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) WebhookOption {
	return func(s *WebhookSink) { s.httpClient = hc }
}

// WithRetryConfig overrides the delivery retry settings.
func WithRetryConfig(cfg resilience.RetryConfig) WebhookOption {
	return func(s *WebhookSink) { s.retry = cfg }
}

// NewWebhookSink creates a sink delivering to url.
func NewWebhookSink(url string, opts ...WebhookOption) *WebhookSink {
	s := &WebhookSink{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retry:      resilience.DefaultRetryConfig(),
	}
	s.retry.OnRetry = resilience.RetryLogger("webhook", "submit claim")
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit implements intake.Sink. The payload is sent unmodified: whatever the
// wizard validated is exactly what the endpoint receives.
func (s *WebhookSink) Submit(ctx context.Context, data model.ClaimFormData) error {
	body, err := json.Marshal(data)
	if err != nil {
		return eris.Wrap(err, "submit: marshal claim")
	}

	return resilience.Do(ctx, s.retry, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
		if err != nil {
			return eris.Wrap(err, "submit: build request")
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return eris.Wrap(err, "submit: post claim")
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		respErr := eris.Errorf("submit: webhook returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return resilience.NewTransientError(respErr, resp.StatusCode)
		}
		return respErr
	})
}
