// Package keystore persists the single OpenAI API key slot.
package keystore

import (
	"context"
	"strings"

	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
)

// SlotName is the fixed name of the API key slot in every backend
const SlotName = "openai_api_key"

// MsgBlankKey is returned when saving an empty key
const MsgBlankKey = "APIキーを入力してください"

// Store holds at most one API key. Read reports ok=false when the slot is
// empty. Save overwrites. Clear on an empty slot is a no-op.
type Store interface {
	Save(ctx context.Context, key string) error
	Read(ctx context.Context) (key string, ok bool, err error)
	Clear(ctx context.Context) error
}

// normalize trims key and rejects blank input
func normalize(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", models.NewAIError(models.CodeInvalidInput, MsgBlankKey)
	}
	return key, nil
}

// Status is what a settings screen shows about the stored key
type Status struct {
	Configured bool   `json:"configured"`
	Preview    string `json:"preview,omitempty"`
}

// GetStatus reads s and returns a redacted view of the key
func GetStatus(ctx context.Context, s Store) (Status, error) {
	key, ok, err := s.Read(ctx)
	if err != nil {
		return Status{}, err
	}
	if !ok {
		return Status{}, nil
	}
	return Status{Configured: true, Preview: ai.SanitizeAPIKey(key)}, nil
}
