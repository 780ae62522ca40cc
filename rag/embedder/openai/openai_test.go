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

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

func newServer(t *testing.T) (*httptest.Server, *[]embeddingRequest) {
	t.Helper()
	seen := make([]embeddingRequest, 0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = append(seen, req)

		// 逆序返回，检验按 index 还原顺序
		data := make([]map[string]any, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			data = append(data, map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": []float32{float32(len([]rune(req.Input[i]))), 4},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
}

func TestEmbedDocuments(t *testing.T) {
	srv, seen := newServer(t)
	e, err := New(WithToken("k"), WithBaseURL(srv.URL), WithBatchSize(2))
	require.NoError(t, err)

	vectors, err := e.EmbedDocuments(context.Background(), []string{"一", "二二", "三三三"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 4}, {2, 4}, {3, 4}}, vectors)
	require.Len(t, *seen, 2)
	assert.Equal(t, "text-embedding-v3", (*seen)[0].Model)
	assert.Equal(t, []string{"三三三"}, (*seen)[1].Input)
}

func TestEmbedQueryNormalize(t *testing.T) {
	srv, _ := newServer(t)
	e, err := New(WithToken("k"), WithBaseURL(srv.URL), WithNormalize(true), WithModel("m"))
	require.NoError(t, err)

	v, err := e.EmbedQuery(context.Background(), "一二三")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)
}
