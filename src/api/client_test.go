package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.txt", header.Filename)

		w.Write([]byte(`{"doc_id": "d1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Upload(context.Background(), "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "d1", result.DocID)
}

func TestClient_Upload_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Unsupported file type"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Upload(context.Background(), "notes.xyz", strings.NewReader("hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported file type")
}

func TestClient_Upload_MissingDocID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Upload(context.Background(), "notes.txt", strings.NewReader("hello"))
	require.Error(t, err)
}

func TestClient_Index(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/index/d1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"status": "indexed", "doc_id": "d1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	assert.NoError(t, client.Index(context.Background(), "d1"))
}

func TestClient_Index_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Text file not found for this doc_id. Upload first."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.Index(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Upload first")
}

func TestClient_Ask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ask" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "d1", payload["doc_id"])
		assert.Equal(t, "what is this about?", payload["question"])
		assert.Equal(t, float64(6), payload["top_k"])

		w.Write([]byte(`{
			"answer": "It is about Go.",
			"sources": [{"rank": 1, "chunk_index": 4, "distance": 0.12, "text": "Go is a language"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Ask(context.Background(), "d1", "what is this about?", 6)
	require.NoError(t, err)
	assert.Equal(t, "It is about Go.", result.Answer)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, 1, result.Sources[0].Rank)
	assert.Equal(t, "Go is a language", result.Sources[0].Text)
}

func TestClient_Ask_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Index not found. Please upload again or call /index/{doc_id} first."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Ask(context.Background(), "d1", "anything", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Index not found")
}

func TestClient_Ask_TransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.Ask(context.Background(), "d1", "anything", 3)
	require.Error(t, err)
}

func TestClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	assert.NoError(t, client.Health(context.Background()))
}
