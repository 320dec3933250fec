package perception

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGeminiResponse(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
		"usageMetadata": map[string]any{"totalTokenCount": 12},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClientWithConfig(GeminiConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-2.0-flash",
		Timeout: 5 * time.Second,
	})
}

func TestCompleteWithSystem(t *testing.T) {
	var got GeminiRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(fakeGeminiResponse(`{"tasks": []}`)))
	})

	out, err := client.CompleteWithSystem(context.Background(), "Return JSON only.", "add a task")
	require.NoError(t, err)
	assert.Equal(t, `{"tasks": []}`, out)

	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "add a task", got.Contents[0].Parts[0].Text)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "Return JSON only.", got.SystemInstruction.Parts[0].Text)
	// A JSON-demanding system prompt pins the response mime type.
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
}

func TestCompleteWithImageAttachesInlineData(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	var got GeminiRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(fakeGeminiResponse("ok")))
	})

	_, err := client.CompleteWithImage(context.Background(), "", "what is on this screenshot",
		&ImagePart{MIMEType: "image/png", Data: raw})
	require.NoError(t, err)

	require.Len(t, got.Contents[0].Parts, 2)
	inline := got.Contents[0].Parts[1].InlineData
	require.NotNil(t, inline)
	assert.Equal(t, "image/png", inline.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), inline.Data)
}

func TestCompleteRetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(fakeGeminiResponse("recovered")))
	})

	out, err := client.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCompleteFailsOnServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "bad request"}}`))
	})

	_, err := client.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestCompleteRequiresAPIKey(t *testing.T) {
	client := NewGeminiClient("")
	_, err := client.Complete(context.Background(), "hi")
	assert.ErrorContains(t, err, "API key not configured")
}

func TestCompleteEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.Complete(context.Background(), "hi")
	assert.ErrorContains(t, err, "no completion returned")
}
