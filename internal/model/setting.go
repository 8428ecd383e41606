// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: Setting, SettingRepository
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// SettingLogChatID — ключ чата для аудит-уведомлений
const SettingLogChatID = "log_chat_id"

// DefaultSettings — значения, засеваемые при старте, если ключа еще нет
var DefaultSettings = map[string]string{
	SettingLogChatID: "0",
}

// Setting представляет настройку приложения в хранилище
type Setting struct {
	bun.BaseModel `bun:"table:settings,alias:s"`

	Key       string    `bun:"key,pk" json:"key"`
	Value     string    `bun:"value,notnull" json:"value"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// SettingRepository определяет интерфейс для работы с настройками
type SettingRepository interface {
	GetAll() ([]Setting, error)
	Set(key, value string) error
	// SeedDefaults вставляет значения по умолчанию, не трогая существующие
	SeedDefaults(defaults map[string]string) error
}
