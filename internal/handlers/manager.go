package handlers

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"offerbase/internal/model"
	"offerbase/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const addUsage = "➕ <b>Добавление оффера</b>\n\n" +
	"Формат (разделитель « - » или длинное тире «—»):\n" +
	"<code>/add ПП - Оффер - Гео - Ставка - Гарант (0 если нет) - Инфо</code>\n" +
	"или\n" +
	"<code>/add ПП—Оффер—Гео—Ставка—0—Инфо</code>"

// HandleAdd обрабатывает /add
func (h *Handler) HandleAdd(msg *tgbotapi.Message, role model.Role) {
	if !role.Can(model.CapManageOwn) {
		h.reply(msg.Chat.ID, "⛔️ У вас нет прав на добавление.")
		return
	}

	args := msg.CommandArguments()
	if args == "" {
		h.reply(msg.Chat.ID, addUsage)
		return
	}

	fields, found, ok := parseOfferLine(args)
	if !ok {
		h.reply(msg.Chat.ID, fmt.Sprintf("⚠️ <b>Ошибка формата!</b>\nИспользуйте разделитель « - ».\nЯ нашел частей: %d из 6.", found))
		return
	}

	id, err := h.services.Offer.Create(fields, msg.From.ID)
	if err != nil {
		h.logger.Error("Failed to create offer", zap.Error(err))
		h.reply(msg.Chat.ID, "❌ Ошибка при добавлении. Попробуйте позже.")
		return
	}

	h.reply(msg.Chat.ID, fmt.Sprintf("✅ <b>OK!</b> %s | %s (ID: %d)",
		html.EscapeString(fields.SourceName), html.EscapeString(fields.OfferName), id))

	if msg.Chat.IsPrivate() {
		offer, err := h.services.Offer.Get(id)
		if err != nil {
			return
		}
		h.Audit(fmt.Sprintf("🆕 <b>Новый оффер!</b>\n👤 %s (ID %d)\n\n%s",
			userLink(msg.From), msg.From.ID, formatOfferCard(offer, false)))
	}
}

// HandleEdit обрабатывает /edit: без строки — выдает заготовку для
// редактирования, со строкой — перезаписывает поля
func (h *Handler) HandleEdit(msg *tgbotapi.Message, role model.Role) {
	if !role.Can(model.CapManageOwn) {
		h.reply(msg.Chat.ID, "⛔️ У вас нет прав на редактирование.")
		return
	}

	args := strings.SplitN(msg.CommandArguments(), " ", 2)
	if args[0] == "" {
		h.reply(msg.Chat.ID, "⚠️ Пример: <code>/edit 123</code>")
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.reply(msg.Chat.ID, "⚠️ ID должен быть числом.")
		return
	}

	if !h.services.Offer.CheckOwnership(id, msg.From.ID, role) {
		h.reply(msg.Chat.ID, "⛔️ Вы можете редактировать только <b>свои</b> офферы.")
		return
	}

	// Без новой строки — вернуть заготовку из сохраненных полей
	if len(args) == 1 || strings.TrimSpace(args[1]) == "" {
		offer, err := h.services.Offer.Get(id)
		if errors.Is(err, service.ErrOfferNotFound) {
			h.reply(msg.Chat.ID, "❌ Оффер не найден.")
			return
		}
		if err != nil {
			h.logger.Error("Failed to load offer for edit", zap.Int64("offer_id", id), zap.Error(err))
			h.reply(msg.Chat.ID, "❌ Ошибка. Попробуйте позже.")
			return
		}

		h.reply(msg.Chat.ID, fmt.Sprintf(
			"✏️ <b>Редактирование %d:</b>\n\nСкопируйте, измените и отправьте:\n<code>/edit %d %s</code>",
			id, id, html.EscapeString(editPrefillLine(offer))))
		return
	}

	fields, _, ok := parseOfferLine(args[1])
	if !ok {
		h.reply(msg.Chat.ID, "⚠️ <b>Ошибка формата!</b>\nИспользуйте разделитель « - ».\n\n✅ <b>Пример:</b>\n<code>/edit 123 1win - Aviator - RO - 40$ - 0 - Тест</code>")
		return
	}

	err = h.services.Offer.Update(id, fields, msg.From.ID, role)
	switch {
	case errors.Is(err, service.ErrNotOwner):
		h.reply(msg.Chat.ID, "⛔️ Вы можете менять только свои офферы.")
		return
	case errors.Is(err, service.ErrOfferNotFound):
		h.reply(msg.Chat.ID, "❌ Оффер не найден.")
		return
	case err != nil:
		h.logger.Error("Failed to update offer", zap.Int64("offer_id", id), zap.Error(err))
		h.reply(msg.Chat.ID, "❌ Ошибка. Попробуйте позже.")
		return
	}

	h.reply(msg.Chat.ID, fmt.Sprintf("✅ Оффер %d обновлен!", id))

	if msg.Chat.IsPrivate() {
		offer, err := h.services.Offer.Get(id)
		if err != nil {
			return
		}
		h.Audit(fmt.Sprintf("✏️ <b>Изменение оффера!</b>\n👤 %s\n\n%s",
			userLink(msg.From), formatOfferCard(offer, false)))
	}
}

// HandleDel обрабатывает /del: перенос оффера в архив
func (h *Handler) HandleDel(msg *tgbotapi.Message, role model.Role) {
	if !role.Can(model.CapManageOwn) {
		h.reply(msg.Chat.ID, "⛔️ У вас нет прав на удаление.")
		return
	}

	args := msg.CommandArguments()
	if args == "" {
		h.reply(msg.Chat.ID, "⚠️ Пример: <code>/del 123</code>")
		return
	}

	id, err := strconv.ParseInt(strings.Fields(args)[0], 10, 64)
	if err != nil {
		h.reply(msg.Chat.ID, "⚠️ ID должен быть числом.")
		return
	}

	snapshot, err := h.services.Offer.Archive(id, msg.From.ID, role)
	switch {
	case errors.Is(err, service.ErrNotOwner):
		h.reply(msg.Chat.ID, "⛔️ Вы не можете удалять чужие офферы.")
		return
	case errors.Is(err, service.ErrOfferNotFound):
		h.reply(msg.Chat.ID, fmt.Sprintf("⚠️ Оффер <code>%d</code> не найден.", id))
		return
	case err != nil:
		h.logger.Error("Failed to archive offer", zap.Int64("offer_id", id), zap.Error(err))
		h.reply(msg.Chat.ID, "⚠️ Ошибка при удалении.")
		return
	}

	h.reply(msg.Chat.ID, fmt.Sprintf("🗑 <b>Оффер удален в архив:</b>\n\n%s",
		formatOfferCard(snapshot, false)))

	if msg.Chat.IsPrivate() {
		h.Audit(fmt.Sprintf("🗑 <b>Удаление оффера!</b>\n👤 %s\n\n%s",
			userLink(msg.From), formatOfferCard(snapshot, false)))
	}
}

// HandleMyOffers обрабатывает /my_offers: активные офферы автора
func (h *Handler) HandleMyOffers(msg *tgbotapi.Message, role model.Role) {
	if !role.Can(model.CapManageOwn) {
		return
	}

	offers := h.services.Offer.MyOffers(msg.From.ID)
	if len(offers) == 0 {
		h.reply(msg.Chat.ID, "📭 Вы еще ничего не добавили.")
		return
	}

	lines := make([]string, 0, len(offers))
	for i := range offers {
		lines = append(lines, formatOfferLine(&offers[i]))
	}

	text := fmt.Sprintf("📋 <b>Ваши активные офферы (%d):</b>\n\n%s",
		len(offers), strings.Join(lines, "\n\n"))

	if len(text) > listCharLimit {
		cut := listCharLimit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "...\n(Список обрезан)"
	}

	h.reply(msg.Chat.ID, text)
}
