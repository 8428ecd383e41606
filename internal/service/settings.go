// Package service содержит бизнес-логику приложения.
package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"offerbase/internal/model"

	"go.uber.org/zap"
)

// SettingsService держит настройки в памяти и перечитывает их из
// хранилища после каждой записи. Чтение видит состояние последнего
// успешного Reload.
type SettingsService struct {
	repo   model.SettingRepository
	logger *zap.Logger

	mu     sync.RWMutex
	values map[string]string
}

// NewSettingsService создает новый сервис настроек
func NewSettingsService(repo model.SettingRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		logger: logger,
		values: make(map[string]string),
	}
}

// Reload перечитывает все настройки из хранилища
func (s *SettingsService) Reload() error {
	settings, err := s.repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to reload settings: %w", err)
	}

	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()

	return nil
}

// Set записывает настройку в хранилище и перечитывает кэш
func (s *SettingsService) Set(key, value string) error {
	if err := s.repo.Set(key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}

	if err := s.Reload(); err != nil {
		return err
	}

	s.logger.Info("Setting updated", zap.String("key", key), zap.String("value", value))
	return nil
}

// Get возвращает значение настройки из кэша
func (s *SettingsService) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// LogChatID возвращает чат аудит-уведомлений; 0 означает, что чат не настроен
func (s *SettingsService) LogChatID() int64 {
	id, err := strconv.ParseInt(s.Get(model.SettingLogChatID), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// SetLogChatID назначает чат аудит-уведомлений
func (s *SettingsService) SetLogChatID(chatID int64) error {
	return s.Set(model.SettingLogChatID, strconv.FormatInt(chatID, 10))
}

// Describe возвращает текущие настройки в читаемом виде
func (s *SettingsService) Describe() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("⚙️ Текущие настройки:\n")
	for _, key := range keys {
		b.WriteString(fmt.Sprintf("🔧 %s: %s\n", key, s.values[key]))
	}
	return b.String()
}
