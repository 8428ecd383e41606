package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"offerbase/internal/model"
	"offerbase/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// HandleUsers обрабатывает /users: список всех пользователей
func (h *Handler) HandleUsers(msg *tgbotapi.Message, role model.Role) {
	if !role.Can(model.CapManageUsers) {
		return
	}

	users, err := h.services.User.ListUsers()
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		h.reply(msg.Chat.ID, "❌ Ошибка. Попробуйте позже.")
		return
	}
	if len(users) == 0 {
		h.reply(msg.Chat.ID, "Пусто.")
		return
	}

	lines := make([]string, 0, len(users))
	for _, u := range users {
		displayRole := u.Role
		if u.UserID == h.services.User.SuperadminID() {
			displayRole = model.RoleSuperadmin
		}
		lines = append(lines, fmt.Sprintf("🆔%d | %s | %s", u.UserID, displayRole, u.DisplayName()))
	}

	h.reply(msg.Chat.ID, strings.Join(lines, "\n"))
}

// HandleSetRole обрабатывает /setmanager, /setadmin и /setuser
func (h *Handler) HandleSetRole(msg *tgbotapi.Message, role model.Role, targetRole model.Role) {
	if !role.Can(model.CapManageUsers) {
		return
	}

	targetID, ok := parseTargetID(msg.CommandArguments())
	if !ok {
		h.reply(msg.Chat.ID, fmt.Sprintf("Пример: /set%s 12345", targetRole))
		return
	}

	if err := h.services.User.SetRole(targetID, targetRole); err != nil {
		if errors.Is(err, service.ErrSuperadminImmutable) {
			h.reply(msg.Chat.ID, "🗿 Роль суперадмина изменить нельзя.")
			return
		}
		h.logger.Error("Failed to set role",
			zap.Int64("target_id", targetID),
			zap.String("role", string(targetRole)),
			zap.Error(err))
		h.reply(msg.Chat.ID, "❌ Ошибка. Попробуйте позже.")
		return
	}

	h.UpdateCommandMenu(targetID, targetRole)

	switch targetRole {
	case model.RoleUser:
		h.reply(msg.Chat.ID, fmt.Sprintf("⬇️ %d -> USER (Общий поиск).", targetID))
	default:
		h.reply(msg.Chat.ID, fmt.Sprintf("✅ %d -> %s.", targetID, strings.ToUpper(string(targetRole))))
	}
}

// HandleFire обрабатывает /fire: бан или разбан по текущему состоянию
func (h *Handler) HandleFire(msg *tgbotapi.Message, role model.Role) {
	if !role.Can(model.CapManageUsers) {
		return
	}

	targetID, ok := parseTargetID(msg.CommandArguments())
	if !ok {
		h.reply(msg.Chat.ID, "Пример: /fire 12345")
		return
	}
	if targetID == h.services.User.SuperadminID() {
		h.reply(msg.Chat.ID, "🗿 Себя нельзя.")
		return
	}

	current, known, err := h.services.User.ResolveRole(targetID)
	if err != nil {
		h.logger.Error("Failed to resolve role for fire", zap.Int64("target_id", targetID), zap.Error(err))
		h.reply(msg.Chat.ID, "❌ Ошибка. Попробуйте позже.")
		return
	}
	if !known {
		current = model.RoleUser
	}

	if current == model.RoleBanned {
		if err := h.services.User.SetRole(targetID, model.RoleUser); err != nil {
			h.logger.Error("Failed to unban user", zap.Int64("target_id", targetID), zap.Error(err))
			h.reply(msg.Chat.ID, "❌ Ошибка. Попробуйте позже.")
			return
		}
		h.UpdateCommandMenu(targetID, model.RoleUser)
		h.reply(msg.Chat.ID, fmt.Sprintf("😇 %d Разбанен.", targetID))

		// Уведомление цели — best-effort
		if err := h.botAPI.SendMessage(targetID, "✅ Бан снят."); err != nil {
			h.logger.Debug("Failed to notify unbanned user", zap.Int64("target_id", targetID), zap.Error(err))
		}
		return
	}

	if err := h.services.User.SetRole(targetID, model.RoleBanned); err != nil {
		h.logger.Error("Failed to ban user", zap.Int64("target_id", targetID), zap.Error(err))
		h.reply(msg.Chat.ID, "❌ Ошибка. Попробуйте позже.")
		return
	}
	h.UpdateCommandMenu(targetID, model.RoleBanned)
	h.reply(msg.Chat.ID, fmt.Sprintf("💀 %d Забанен.", targetID))

	if err := h.botAPI.SendMessage(targetID, "⛔️ Вы забанены."); err != nil {
		h.logger.Debug("Failed to notify banned user", zap.Int64("target_id", targetID), zap.Error(err))
	}
}

// HandleSetLog обрабатывает /setlog: текущий чат становится лог-чатом
func (h *Handler) HandleSetLog(msg *tgbotapi.Message, role model.Role) {
	if !role.Can(model.CapManageUsers) {
		return
	}

	chatID := msg.Chat.ID
	if err := h.services.Settings.SetLogChatID(chatID); err != nil {
		h.logger.Error("Failed to set log chat", zap.Int64("chat_id", chatID), zap.Error(err))
		h.reply(chatID, "❌ Ошибка. Попробуйте позже.")
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Логи будут приходить сюда (ID: %d).", chatID))
}

// HandleConfig обрабатывает /config: показ текущих настроек
func (h *Handler) HandleConfig(msg *tgbotapi.Message, role model.Role) {
	if !role.Can(model.CapManageUsers) {
		return
	}

	h.reply(msg.Chat.ID, h.services.Settings.Describe())
}

// parseTargetID извлекает ID пользователя из аргументов команды
func parseTargetID(args string) (int64, bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
