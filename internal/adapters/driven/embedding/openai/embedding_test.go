package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	assert.Error(t, err)
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test-key"})
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestNewEmbeddingService_KnownModelDimensions(t *testing.T) {
	svc, err := NewEmbeddingService(Config{
		APIKey: "test-key",
		Model:  "text-embedding-3-large",
	})
	require.NoError(t, err)

	assert.Equal(t, 3072, svc.Dimensions())
}

// fakeServer returns embeddings where vector[0] encodes the input's
// position in the request, so tests can verify ordering.
func fakeServer(t *testing.T, requestSizes *[]int, reverse bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*requestSizes = append(*requestSizes, len(req.Input))

		type item struct {
			Embedding []float64 `json:"embedding"`
			Index     int       `json:"index"`
		}
		items := make([]item, len(req.Input))
		for i := range req.Input {
			pos := i
			if reverse {
				pos = len(req.Input) - 1 - i
			}
			items[pos] = item{Embedding: []float64{float64(i), 1}, Index: i}
		}

		resp := map[string]any{"data": items}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestEmbedTexts_PartitionsIntoBatches(t *testing.T) {
	var sizes []int
	server := fakeServer(t, &sizes, false)
	defer server.Close()

	svc, err := NewEmbeddingService(Config{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		BatchSize: 2,
	})
	require.NoError(t, err)

	texts := []string{"a", "b", "c", "d", "e"}
	embeddings, err := svc.EmbedTexts(context.Background(), texts)
	require.NoError(t, err)

	require.Len(t, embeddings, 5)
	assert.Equal(t, []int{2, 2, 1}, sizes)
}

func TestEmbedTexts_RestoresOrderFromIndex(t *testing.T) {
	var sizes []int
	server := fakeServer(t, &sizes, true)
	defer server.Close()

	svc, err := NewEmbeddingService(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	embeddings, err := svc.EmbedTexts(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	require.Len(t, embeddings, 3)
	for i, e := range embeddings {
		assert.Equal(t, float32(i), e[0], "embedding %d out of order", i)
	}
}

func TestEmbedTexts_EmptyInput(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test-key"})
	require.NoError(t, err)

	embeddings, err := svc.EmbedTexts(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, embeddings)
}

func TestEmbedTexts_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth"}}`))
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.EmbedTexts(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestEmbedTexts_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1],"index":0}]}`))
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.EmbedTexts(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 texts")
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	assert.NoError(t, svc.Ping(context.Background()))
}
