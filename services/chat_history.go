package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const chatHistoryLimit = 20

type ChatMessage struct {
	Role    string    `json:"role"` // "user"|"assistant"
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// ChatHistoryStore keeps a bounded per-user conversation history in a Redis
// list, capped at chatHistoryLimit entries. Unlike an in-process map it
// survives restarts and is shared across instances.
type ChatHistoryStore struct {
	client *redis.Client
}

func NewChatHistoryStore(client *redis.Client) *ChatHistoryStore {
	return &ChatHistoryStore{client: client}
}

func chatKey(userID uint) string {
	return fmt.Sprintf("chat:user:%d:history", userID)
}

func (s *ChatHistoryStore) Append(ctx context.Context, userID uint, msg ChatMessage) error {
	if s == nil || s.client == nil {
		return nil
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := chatKey(userID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, chatHistoryLimit-1)
	pipe.Expire(ctx, key, 30*24*time.Hour)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns the stored messages oldest first.
func (s *ChatHistoryStore) Recent(ctx context.Context, userID uint) ([]ChatMessage, error) {
	if s == nil || s.client == nil {
		return nil, nil
	}
	raw, err := s.client.LRange(ctx, chatKey(userID), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	// list is newest-first; walk it backwards
	out := make([]ChatMessage, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var msg ChatMessage
		if err := json.Unmarshal([]byte(raw[i]), &msg); err != nil {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func (s *ChatHistoryStore) Clear(ctx context.Context, userID uint) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Del(ctx, chatKey(userID)).Err()
}
