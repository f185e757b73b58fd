package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"consultingoffice/internal/domain"
)

type settingService struct {
	settingRepo    domain.SettingRepository
	contextTimeout time.Duration
}

func NewSettingService(settingRepo domain.SettingRepository, timeout time.Duration) domain.SettingService {
	return &settingService{
		settingRepo:    settingRepo,
		contextTimeout: timeout,
	}
}

func (s *settingService) ListSettings(ctx context.Context) ([]*domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	settings, err := s.settingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	if settings == nil {
		settings = []*domain.Setting{}
	}
	return settings, nil
}

func (s *settingService) SetSetting(ctx context.Context, key, value string) (*domain.Setting, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: setting key is required", domain.ErrInvalidInput)
	}
	setting, err := s.settingRepo.Upsert(ctx, key, value)
	if err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}
	return setting, nil
}
