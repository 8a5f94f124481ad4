package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

func init() {
	color.NoColor = true
}

func TestClientChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		var req domain.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Message == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(domain.ErrorResponse{Error: "message and sessionId are required"})
			return
		}
		json.NewEncoder(w).Encode(domain.ChatResponse{Response: "hi " + req.SessionID, SessionID: req.SessionID})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	resp, err := client.Chat(context.Background(), domain.ChatRequest{Message: "hello", SessionID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "hi s1", resp.Response)

	_, err = client.Chat(context.Background(), domain.ChatRequest{SessionID: "s1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "message and sessionId are required")
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).TrackOrder(context.Background(), domain.TrackOrderRequest{OrderID: "A", SessionID: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestWSURL(t *testing.T) {
	got, err := wsURL("http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8080/ws", got)

	got, err = wsURL("https://support.example.com/api/")
	require.NoError(t, err)
	assert.Equal(t, "wss://support.example.com/api/ws", got)
}

func TestPrintServerMessage(t *testing.T) {
	var buf bytes.Buffer
	printServerMessage(&buf, []byte(`{"type":"reply","response":"Here you go","sources":[{"title":"FAQ","url":"https://shop.example.com/faq","score":0.9}]}`))
	assert.Contains(t, buf.String(), "Here you go")
	assert.Contains(t, buf.String(), "1. FAQ (https://shop.example.com/faq)")

	buf.Reset()
	printServerMessage(&buf, []byte(`{"type":"error","code":"internal_error","message":"Something went wrong."}`))
	assert.Contains(t, buf.String(), "[internal_error] Something went wrong.")
}

func TestSearchCommandMockMode(t *testing.T) {
	searchMode, searchLimit = "mock", 2
	defer func() { searchMode, searchLimit = "", 0 }()

	var buf bytes.Buffer
	searchCmd.SetOut(&buf)
	searchCmd.SetContext(context.Background())
	defer searchCmd.SetOut(nil)

	require.NoError(t, runSearch(searchCmd, []string{"shipping", "policy"}))
	assert.Contains(t, buf.String(), "Found")
	assert.Contains(t, buf.String(), "Shipping Policy")
}
