// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"fmt"

	"offerbase/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// SettingRepository реализует интерфейс для работы с настройками
type SettingRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewSettingRepository создает новый репозиторий настроек
func NewSettingRepository(db *bun.DB, logger *zap.Logger) *SettingRepository {
	return &SettingRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll возвращает все настройки
func (r *SettingRepository) GetAll() ([]model.Setting, error) {
	ctx := context.Background()
	var settings []model.Setting

	err := r.db.NewSelect().
		Model(&settings).
		Order("key ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	return settings, nil
}

// Set устанавливает значение настройки
func (r *SettingRepository) Set(key, value string) error {
	ctx := context.Background()

	setting := &model.Setting{
		Key:   key,
		Value: value,
	}

	_, err := r.db.NewInsert().
		Model(setting).
		On("CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}

	return nil
}

// SeedDefaults вставляет значения по умолчанию, не трогая существующие
func (r *SettingRepository) SeedDefaults(defaults map[string]string) error {
	ctx := context.Background()

	for key, value := range defaults {
		setting := &model.Setting{
			Key:   key,
			Value: value,
		}

		_, err := r.db.NewInsert().
			Model(setting).
			On("CONFLICT (key) DO NOTHING").
			Exec(ctx)

		if err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}

	return nil
}
