package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kasir/internal/dashboard"
)

var (
	testStats  = []dashboard.Stat{{Label: "Total Revenue", Value: 548500, Display: "Rp 548.500", Change: 12.5}}
	testRecent = []dashboard.Transaction{{Code: "TRX/2026/10/417", Customer: "Budi Santoso", Amount: 140970, Status: dashboard.TransactionCompleted}}
)

func newTestService(baseURL, key string) *Service {
	return NewService(Config{
		APIKey:   key,
		Model:    "gemini-3-flash-preview",
		BaseURL:  baseURL + "/",
		Language: "Bahasa Indonesia",
		Timeout:  5 * time.Second,
	})
}

func TestService_Generate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-3-flash-preview:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}

		if !assert.Len(t, req.Contents, 1) {
			return
		}

		prompt := req.Contents[0].Parts[0].Text
		assert.Contains(t, prompt, `"label":"Total Revenue"`)
		assert.Contains(t, prompt, "TRX/2026/10/417")
		assert.Contains(t, prompt, "Answer in Bahasa Indonesia.")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"1. Omzet naik."},{"text":"\n2. Stok kopi menipis. "}]}}]}`))
	}))
	defer ts.Close()

	text, err := newTestService(ts.URL, "secret").Generate(context.Background(), testStats, testRecent)
	require.NoError(t, err)
	assert.Equal(t, "1. Omzet naik.\n2. Stok kopi menipis.", text)
}

func TestService_InsightsFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		key     string
	}{
		{
			name: "ServerError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			},
			key: "secret",
		},
		{
			name: "NoCandidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates":[]}`))
			},
			key: "secret",
		},
		{
			name: "Garbage",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			key: "secret",
		},
		{
			name: "NoAPIKey",
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("request must not be sent without a key")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			got := newTestService(ts.URL, tt.key).Insights(context.Background(), testStats, testRecent)
			assert.Equal(t, Fallback, got)
		})
	}
}
