package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"offerbase/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const inviteUsage = "🎫 <b>Генерация ссылок:</b>\n" +
	"<code>/invite manager</code> (создать 1 ссылку)\n" +
	"<code>/invite user 10</code> (создать 10 разных ссылок)\n\n" +
	"<i>* Каждая ссылка всегда одноразовая.</i>"

// HandleInvite обрабатывает /invite: генерация одноразовых инвайт-ссылок
func (h *Handler) HandleInvite(msg *tgbotapi.Message, role model.Role) {
	if !role.Can(model.CapInvite) {
		h.reply(msg.Chat.ID, "⛔️ У вас нет прав создавать инвайты.")
		return
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		h.reply(msg.Chat.ID, inviteUsage)
		return
	}

	targetRole := model.Role(strings.ToLower(args[0]))
	if !targetRole.Grantable() {
		h.reply(msg.Chat.ID, "⚠️ Роли: manager, user, admin")
		return
	}

	count := 1
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			count = n
		}
	}
	if count < 1 {
		count = 1
	}
	if count > maxInviteBatch {
		count = maxInviteBatch
		h.reply(msg.Chat.ID, fmt.Sprintf("⚠️ Ограничение: максимум %d штук за раз.", maxInviteBatch))
	}

	codes, err := h.services.Invite.CreateBatch(targetRole, count)
	if err != nil {
		h.logger.Error("Failed to create invites", zap.String("role", string(targetRole)), zap.Error(err))
		h.reply(msg.Chat.ID, "❌ Ошибка при создании инвайтов. Попробуйте позже.")
		return
	}

	baseURL := fmt.Sprintf("https://t.me/%s?start=", h.botAPI.Username())
	links := make([]string, 0, len(codes))
	for _, code := range codes {
		links = append(links, baseURL+code)
	}

	if len(links) == 1 {
		h.reply(msg.Chat.ID, fmt.Sprintf(
			"✅ <b>Ссылка создана!</b>\nРоль: %s\nТип: Одноразовая\n\n%s",
			strings.ToUpper(string(targetRole)), links[0]))
		return
	}

	header := fmt.Sprintf("✅ <b>Сгенерировано ссылок: %d</b>\nРоль: %s\nКаждая ссылка действует 1 раз.\n➖➖➖➖➖➖➖➖➖➖",
		len(links), strings.ToUpper(string(targetRole)))
	h.reply(msg.Chat.ID, header+"\n"+strings.Join(links, "\n"))
}
