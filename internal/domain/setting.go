package domain

import (
	"context"
	"time"
)

// Setting is a single key/value site setting. Settings are pure field echoes
// with no cross-entity logic.
// swagger:model Setting
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingRepository defines the interface for setting storage
type SettingRepository interface {
	List(ctx context.Context) ([]*Setting, error)
	Upsert(ctx context.Context, key, value string) (*Setting, error)
}

// SettingService defines the business logic for site settings.
type SettingService interface {
	ListSettings(ctx context.Context) ([]*Setting, error)
	SetSetting(ctx context.Context, key, value string) (*Setting, error)
}
