// Package handlers содержит обработчики команд бота.
package handlers

import (
	"fmt"
	"html"
	"strings"

	"offerbase/internal/external/telegram"
	"offerbase/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler содержит обработчики команд бота
type Handler struct {
	services *service.Services
	botAPI   telegram.BotAPI
	logger   *zap.Logger
}

// NewHandler создает новый обработчик команд
func NewHandler(services *service.Services, botAPI telegram.BotAPI, logger *zap.Logger) *Handler {
	return &Handler{
		services: services,
		botAPI:   botAPI,
		logger:   logger,
	}
}

// reply отправляет ответ в чат, ошибка только логируется
func (h *Handler) reply(chatID int64, text string) {
	if err := h.botAPI.SendMessage(chatID, text); err != nil {
		h.logger.Error("Failed to send reply", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// Audit отправляет уведомление в настроенный лог-чат.
// Best-effort: сбой доставки логируется и не влияет на вызвавшую мутацию.
func (h *Handler) Audit(text string) {
	chatID := h.services.Settings.LogChatID()
	if chatID == 0 {
		return
	}
	if err := h.botAPI.SendMessage(chatID, text); err != nil {
		h.logger.Error("Failed to send audit log", zap.Int64("log_chat_id", chatID), zap.Error(err))
	}
}

// userLink собирает HTML-ссылку на автора сообщения для лог-чата
func userLink(from *tgbotapi.User) string {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if name == "" {
		name = fmt.Sprintf("id%d", from.ID)
	}
	return fmt.Sprintf("<a href=\"tg://user?id=%d\">%s</a>", from.ID, html.EscapeString(name))
}
