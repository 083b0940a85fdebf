package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "hello", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", srv.URL, "", 0.4, srv.Client())
	require.NoError(t, err)

	got, err := p.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", got)
}

func TestOpenAIProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("bad", srv.URL, "", 0, srv.Client())
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "hello")
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ProviderOpenAI, pe.Provider)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("k", srv.URL, "", 0, srv.Client())
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "hello")
	assert.True(t, IsProviderError(err))
}

func TestOpenAIProvider_DeadlineIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("k", srv.URL, "", 0, srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = p.Complete(ctx, "hello")
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.Timeout())
}

func TestNewOpenAIProvider_MissingKey(t *testing.T) {
	_, err := NewOpenAIProvider("  ", "", "", 0, nil)
	assert.Error(t, err)
}

func TestOpenAIProvider_EmptyPrompt(t *testing.T) {
	p, err := NewOpenAIProvider("k", "http://127.0.0.1:0", "", 0, nil)
	require.NoError(t, err)
	_, err = p.Complete(context.Background(), "   ")
	assert.True(t, IsProviderError(err))
}
