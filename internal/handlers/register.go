package handlers

import (
	"offerbase/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// commandSet — полный список команд бота с требуемой возможностью.
// Пустая возможность означает команду, доступную любой активной роли.
// Меню строится из этого списка и только отражает права: сами права
// проверяются обработчиками.
var commandSet = []struct {
	command     string
	description string
	capability  model.Capability
}{
	{"check", "🔎 Поиск (Актив)", model.CapSearch},
	{"check_archive", "🗄 Поиск (Все)", model.CapViewArchive},
	{"add", "➕ Добавить", model.CapManageOwn},
	{"edit", "✏️ Изменить", model.CapManageOwn},
	{"del", "🗑 Удалить", model.CapManageOwn},
	{"my_offers", "📋 Мои офферы", model.CapManageOwn},
	{"invite", "🎫 Создать ссылку", model.CapInvite},
	{"export", "📊 Excel", model.CapExport},
	{"export_archive", "🗄 Excel (Архив)", model.CapViewArchive},
	{"help", "ℹ️ Помощь", ""},
	{"users", "👥 Люди", model.CapManageUsers},
	{"setmanager", "👔 Менеджер", model.CapManageUsers},
	{"setadmin", "👮‍♂️ Админ", model.CapManageUsers},
	{"setuser", "⬇️ Юзер", model.CapManageUsers},
	{"setlog", "📢 Лог-чат", model.CapManageUsers},
	{"fire", "☠️ Бан", model.CapManageUsers},
	{"config", "⚙️ Настр", model.CapManageUsers},
}

// CommandsForRole возвращает меню команд для роли.
// Забаненным меню не положено.
func CommandsForRole(role model.Role) []tgbotapi.BotCommand {
	if role == model.RoleBanned {
		return nil
	}

	var commands []tgbotapi.BotCommand
	for _, c := range commandSet {
		if c.capability != "" && !role.Can(c.capability) {
			continue
		}
		commands = append(commands, tgbotapi.BotCommand{
			Command:     c.command,
			Description: c.description,
		})
	}
	return commands
}

// UpdateCommandMenu обновляет меню команд чата под роль, best-effort
func (h *Handler) UpdateCommandMenu(chatID int64, role model.Role) {
	commands := CommandsForRole(role)
	if err := h.botAPI.SetCommandsForChat(chatID, commands); err != nil {
		h.logger.Error("Failed to update command menu",
			zap.Int64("chat_id", chatID),
			zap.String("role", string(role)),
			zap.Error(err))
	}
}
