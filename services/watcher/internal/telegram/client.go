package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Chat carries the subset of Bot API chat metadata the watcher logs.
type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Username string `json:"username"`
}

type memberCountResponse struct {
	OK          bool   `json:"ok"`
	Result      int64  `json:"result"`
	Description string `json:"description"`
	ErrorCode   int    `json:"error_code"`
}

type chatResponse struct {
	OK          bool   `json:"ok"`
	Result      Chat   `json:"result"`
	Description string `json:"description"`
	ErrorCode   int    `json:"error_code"`
}

// GetChatMemberCount retrieves the member count of a chat via the Bot API.
func GetChatMemberCount(ctx context.Context, client *http.Client, baseURL, token, chatID string) (int64, error) {
	var payload memberCountResponse
	if err := getJSON(ctx, client, methodURL(baseURL, token, "getChatMemberCount", chatID), &payload); err != nil {
		return 0, err
	}
	if !payload.OK {
		return 0, fmt.Errorf("getChatMemberCount failed (code %d): %s", payload.ErrorCode, payload.Description)
	}
	return payload.Result, nil
}

// GetChat resolves chat metadata (title, type) for logging purposes.
func GetChat(ctx context.Context, client *http.Client, baseURL, token, chatID string) (Chat, error) {
	var payload chatResponse
	if err := getJSON(ctx, client, methodURL(baseURL, token, "getChat", chatID), &payload); err != nil {
		return Chat{}, err
	}
	if !payload.OK {
		return Chat{}, fmt.Errorf("getChat failed (code %d): %s", payload.ErrorCode, payload.Description)
	}
	return payload.Result, nil
}

func methodURL(baseURL, token, method, chatID string) string {
	return fmt.Sprintf("%s/bot%s/%s?chat_id=%s", baseURL, token, method, url.QueryEscape(chatID))
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request bot api: %w", err)
	}
	defer resp.Body.Close()

	// The Bot API reports failures inside the JSON envelope with a non-2xx
	// status; decode those instead of discarding the description.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("unexpected status %s", resp.Status)
		}
		return fmt.Errorf("decode payload: %w", err)
	}

	return nil
}
