package feedback

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

func completionResponse(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestClientGenerate(t *testing.T) {
	report := `{"strengths":["s1"],"gaps":["g1"],"suggestions":["a1"],"overallLevel":"Beginner","reformulation":"r"}`

	var gotPath, gotAuth string
	var gotReq chatRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionResponse(t, report))
	}))
	defer upstream.Close()

	client := NewClient("sk-test", "gpt-4o-mini", upstream.URL, 5*time.Second)
	result, err := client.Generate(context.Background(), FrameworkCBT, "some session text")
	require.NoError(t, err)

	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, "json_object", gotReq.ResponseFormat.Type)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "Use a CBT lens")
	assert.Contains(t, gotReq.Messages[1].Content, "some session text")

	assert.Equal(t, "gpt-4o-mini", result.Model)
	assert.Equal(t, []string{"s1"}, result.Report.Strengths)
	assert.Equal(t, LevelBeginner, result.Report.OverallLevel)
}

func TestClientGenerateUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	client := NewClient("sk-test", "gpt-4o-mini", upstream.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), FrameworkCBT, "text")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.Status)
	assert.Equal(t, "quota exceeded", upstreamErr.Body)
}

func TestClientGenerateEmptyContent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer upstream.Close()

	client := NewClient("sk-test", "gpt-4o-mini", upstream.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), FrameworkCBT, "text")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClientGenerateInvalidContentJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionResponse(t, "here is your feedback: great job"))
	}))
	defer upstream.Close()

	client := NewClient("sk-test", "gpt-4o-mini", upstream.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), FrameworkCBT, "text")
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestClientGenerateSchemaMismatch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionResponse(t, `{"overallLevel":"Wizard","reformulation":"r"}`))
	}))
	defer upstream.Close()

	client := NewClient("sk-test", "gpt-4o-mini", upstream.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), FrameworkCBT, "text")
	assert.ErrorIs(t, err, ErrBadSchema)
}
