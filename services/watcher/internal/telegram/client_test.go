package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetChatMemberCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottest-token/getChatMemberCount", r.URL.Path)
		require.Equal(t, "@mygroup", r.URL.Query().Get("chat_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":1523}`))
	}))
	defer srv.Close()

	count, err := GetChatMemberCount(context.Background(), srv.Client(), srv.URL, "test-token", "@mygroup")
	require.NoError(t, err)
	require.EqualValues(t, 1523, count)
}

func TestGetChatMemberCountAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	_, err := GetChatMemberCount(context.Background(), srv.Client(), srv.URL, "test-token", "@missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "chat not found")
}

func TestGetChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottest-token/getChat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":-1001234,"type":"supergroup","title":"My Group","username":"mygroup"}}`))
	}))
	defer srv.Close()

	chat, err := GetChat(context.Background(), srv.Client(), srv.URL, "test-token", "@mygroup")
	require.NoError(t, err)
	require.Equal(t, "My Group", chat.Title)
	require.Equal(t, "supergroup", chat.Type)
	require.EqualValues(t, -1001234, chat.ID)
}

func TestGetChatNonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	_, err := GetChat(context.Background(), srv.Client(), srv.URL, "test-token", "@mygroup")
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}
