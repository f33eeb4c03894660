package services

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

func TestOllamaGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, systemInstruction, req.System)
		assert.Contains(t, req.Prompt, "Q: Can I cancel my order?")
		assert.Contains(t, req.Prompt, "User: Do you sell bikes?")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{Response: " We do not sell bikes. ", Done: true})
	}))
	defer srv.Close()

	gen := NewOllamaGenerator(srv.URL+"/", "llama3.2")
	answer, err := gen.Generate(context.Background(), "Do you sell bikes?", DefaultFAQStore().Context())

	require.NoError(t, err)
	assert.Equal(t, "We do not sell bikes.", answer)
}

func TestOllamaGenerator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "bad status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not found", http.StatusNotFound)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not json"))
			},
		},
		{
			name: "error field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(ollamaResponse{Error: "out of memory"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewOllamaGenerator(srv.URL, "llama3.2").Generate(context.Background(), "q", "ctx")
			assert.ErrorIs(t, err, ErrProvider)
		})
	}
}

func TestOllamaGenerator_Unavailable(t *testing.T) {
	_, err := NewOllamaGenerator("http://127.0.0.1:1", "llama3.2").Generate(context.Background(), "q", "ctx")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestOllamaGenerator_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewOllamaGenerator(srv.URL, "llama3.2").Generate(ctx, "q", "ctx")
	assert.ErrorIs(t, err, ErrProvider)
}
