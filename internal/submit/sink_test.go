package submit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-legal/pfas-intake/internal/model"
	"github.com/meridian-legal/pfas-intake/internal/resilience"
)

func sampleClaim() model.ClaimFormData {
	return model.ClaimFormData{
		PersonalInfo: model.PersonalInfo{
			FirstName:   "Jane",
			LastName:    "Doe",
			Email:       "jane.doe@example.com",
			PhoneNumber: "5551234567",
		},
		InjuryInfo: model.InjuryInfo{
			InjuryType: model.InjuryCancer,
			CancerType: "Kidney Cancer",
		},
		ExposureInfo: model.ExposureInfo{IsCurrentlyInContaminationZone: true},
	}
}

func fastRetry(attempts int) resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Microsecond,
		MaxBackoff:     time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestLogSink(t *testing.T) {
	assert.NoError(t, LogSink{}.Submit(context.Background(), sampleClaim()))
}

func TestWebhookSink_DeliversPayload(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, WithRetryConfig(fastRetry(1)))
	require.NoError(t, sink.Submit(context.Background(), sampleClaim()))

	assert.Equal(t, "application/json", gotContentType)

	var got model.ClaimFormData
	require.NoError(t, json.Unmarshal(gotBody, &got))
	assert.Equal(t, "Jane", got.PersonalInfo.FirstName)
	assert.Equal(t, "Kidney Cancer", got.InjuryInfo.CancerType)
	assert.True(t, got.ExposureInfo.IsCurrentlyInContaminationZone)
}

func TestWebhookSink_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, WithRetryConfig(fastRetry(3)))
	require.NoError(t, sink.Submit(context.Background(), sampleClaim()))
	assert.Equal(t, int32(3), calls.Load())
}

func TestWebhookSink_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, WithRetryConfig(fastRetry(3)))
	err := sink.Submit(context.Background(), sampleClaim())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWebhookSink_ExhaustedRetriesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, WithRetryConfig(fastRetry(2)))
	assert.Error(t, sink.Submit(context.Background(), sampleClaim()))
}

func TestWebhookSink_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	sink := NewWebhookSink(srv.URL, WithRetryConfig(fastRetry(2)))
	assert.Error(t, sink.Submit(context.Background(), sampleClaim()))
}
