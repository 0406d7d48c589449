package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", "gemini-1.5-flash", zap.NewNop(), WithBaseURL(srv.URL))
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"🥦 Broccoli is great."}]}}]}`))
	})

	text, err := c.Generate(context.Background(), "tell me about broccoli")
	require.NoError(t, err)
	assert.Equal(t, "🥦 Broccoli is great.", text)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "tell me about broccoli", gotBody.Contents[0].Parts[0].Text)
}

func TestGenerateNon200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":429,"message":"quota"}}`, http.StatusTooManyRequests)
	})

	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateErrorInBody(t *testing.T) {
	// The API sometimes answers 200 with an error object.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad key","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "bad key")
}

func TestGenerateEmptyCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("k", "", zap.NewNop(), WithBaseURL(srv.URL), WithTimeout(20*time.Millisecond))
	_, err := c.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := NewClient("k", "", zap.NewNop(), WithBaseURL(srv.URL))
	_, err := c.Generate(ctx, "hi")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPromptBuilders(t *testing.T) {
	p := BMIAdvicePrompt(175, 70, 30, "nurse", 22.9)
	assert.Contains(t, p, "175 cm")
	assert.Contains(t, p, "22.9")
	assert.Contains(t, p, "nurse")

	p = RecipePrompt([]string{"eggs", "spinach"})
	assert.Contains(t, p, "eggs, spinach")

	p = WorkoutPlanPrompt(175, 70, 30, 22.9, "Normal", "Home", "Dumbbells", "Build muscle", "4-5 days/week", "No limitations")
	assert.Contains(t, p, "Home")
	assert.Contains(t, p, "Normal")

	assert.True(t, strings.HasPrefix(FoodInfoPrompt("avocado"), "Provide detailed nutritional information about avocado"))
	assert.NotEmpty(t, FallbackTip())
}
