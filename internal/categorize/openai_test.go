package categorize

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-points/internal/classify"
)

func chatResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
}

func TestOpenAI_Categorize(t *testing.T) {
	var request struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &request)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse(`["Food & Drink", null]`))
	}))
	defer srv.Close()

	c, err := NewOpenAI("sk-test", "", srv.URL+"/v1")
	require.NoError(t, err)

	got, err := c.Categorize(context.Background(), []string{"JOES TACOS", "XYZZY"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0])
	assert.Equal(t, classify.FoodDrink, *got[0])
	assert.Nil(t, got[1])

	assert.Equal(t, "gpt-4o-mini", request.Model)
	require.Len(t, request.Messages, 2)
	assert.Equal(t, "system", request.Messages[0].Role)
	assert.Equal(t, SystemPrompt, request.Messages[0].Content)
	assert.Equal(t, `["JOES TACOS","XYZZY"]`, request.Messages[1].Content)
}

func TestOpenAI_MalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("I cannot help with that"))
	}))
	defer srv.Close()

	c, err := NewOpenAI("sk-test", "", srv.URL+"/v1")
	require.NoError(t, err)

	got, err := c.Categorize(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []*string{nil, nil}, got)
}

func TestOpenAI_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	c, err := NewOpenAI("sk-test", "", srv.URL+"/v1")
	require.NoError(t, err)

	_, err = c.Categorize(context.Background(), []string{"A"})
	require.ErrorIs(t, err, ErrService)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusTooManyRequests, ce.Status)
}

func TestOpenAI_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewOpenAI("sk-test", "", url+"/v1")
	require.NoError(t, err)

	_, err = c.Categorize(context.Background(), []string{"A"})
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestNewOpenAI_NotConfigured(t *testing.T) {
	_, err := NewOpenAI("", "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
