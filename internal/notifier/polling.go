package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// CommandHandler is called for each incoming message and returns the reply.
type CommandHandler func(sessionKey, command string) string

// SessionKey names the session owned by a Telegram chat.
func SessionKey(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// Allowed reports whether chatID may use the bot. An empty allowlist admits all.
func Allowed(allowlist []int64, chatID int64) bool {
	if len(allowlist) == 0 {
		return true
	}
	for _, id := range allowlist {
		if id == chatID {
			return true
		}
	}
	return false
}

// StartPolling begins long-polling for Telegram messages. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, allowlist []int64, handler CommandHandler) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second, Transport: t.Client.Transport}

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] Telegram polling stopped")
			return
		default:
		}

		apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.endpoint("getUpdates"), offset)
		req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
		if err != nil {
			log.Printf("[ERROR] create polling request: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] polling request failed: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Printf("[WARN] read polling response: %v", err)
			continue
		}

		var result struct {
			OK     bool             `json:"ok"`
			Result []telegramUpdate `json:"result"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			log.Printf("[WARN] decode polling response: %v", err)
			continue
		}

		offset = t.dispatch(ctx, result.Result, offset, allowlist, handler)
	}
}

// dispatch hands each update to handler, replies, and returns the next offset.
func (t *TelegramNotifier) dispatch(ctx context.Context, updates []telegramUpdate, offset int, allowlist []int64, handler CommandHandler) int {
	for _, update := range updates {
		offset = update.UpdateID + 1
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		chatID := update.Message.Chat.ID
		if !Allowed(allowlist, chatID) {
			log.Printf("[WARN] ignoring message from chat %d", chatID)
			continue
		}
		text := strings.TrimSpace(update.Message.Text)
		log.Printf("[INFO] received message from chat %d: %s", chatID, text)
		reply := handler(SessionKey(chatID), text)
		if reply != "" {
			if err := t.SendWithRetry(ctx, chatID, reply, 3); err != nil {
				log.Printf("[ERROR] send reply: %v", err)
			}
		}
	}
	return offset
}
