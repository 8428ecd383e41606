// Package telegram содержит интеграцию с Telegram Bot API.
package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI определяет интерфейс для отправки в Telegram.
// Отправка всегда best-effort: ошибка логируется вызывающим и не
// откатывает вызвавшую ее мутацию данных.
type BotAPI interface {
	SendMessage(chatID int64, text string) error
	SendDocument(chatID int64, filename string, data []byte, caption string) error
	SetCommandsForChat(chatID int64, commands []tgbotapi.BotCommand) error
	Username() string
}

// RouterInterface определяет интерфейс для роутера
type RouterInterface interface {
	HandleUpdate(update tgbotapi.Update)
}
