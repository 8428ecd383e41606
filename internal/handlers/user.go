package handlers

import (
	"fmt"
	"html"
	"time"

	"offerbase/internal/export"
	"offerbase/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// roleBadge описывает роль для приветствия
type roleBadge struct {
	icon  string
	title string
	desc  string
}

var roleBadges = map[model.Role]roleBadge{
	model.RoleSuperadmin: {"👑", "SUPERADMIN", "Полный доступ к системе и людям."},
	model.RoleAdmin:      {"👮‍♂️", "ADMIN", "Управление всей базой и архивом."},
	model.RoleManager:    {"💼", "MANAGER", "Управление своими офферами."},
	model.RoleUser:       {"👤", "USER", "Просмотр активной базы."},
}

// HandleStart приветствует пользователя и обновляет меню команд
func (h *Handler) HandleStart(msg *tgbotapi.Message, role model.Role) {
	h.UpdateCommandMenu(msg.Chat.ID, role)

	badge, ok := roleBadges[role]
	if !ok {
		badge = roleBadge{"❓", string(role), "-"}
	}

	text := fmt.Sprintf("👋 <b>Привет, %s!</b>\n\nВаш статус: %s <b>%s</b>\n<i>%s</i>\n➖➖➖➖➖➖➖➖➖➖\n",
		html.EscapeString(msg.From.FirstName), badge.icon, badge.title, badge.desc)

	if role.Can(model.CapManageOwn) {
		text += "➕ <b>Добавить:</b> <code>/add</code>\n" +
			"🔎 <b>Поиск:</b> <code>/check -</code>\n" +
			"📊 <b>Отчет:</b> <code>/export -</code>\n"
		if role.Can(model.CapViewArchive) {
			text += "🗄 <b>Архив:</b> <code>/check_archive -</code>"
		}
	} else {
		text += "🔎 <b>Поиск:</b> <code>/check -</code>\n" +
			"📊 <b>Выгрузка:</b> <code>/export -</code>"
	}

	text += "\n\nℹ️ <i>Используйте меню для всех команд.</i>"

	h.reply(msg.Chat.ID, text)
}

// HandleHelp отправляет справку, собранную по возможностям роли
func (h *Handler) HandleHelp(msg *tgbotapi.Message, role model.Role) {
	text := fmt.Sprintf("🤖 <b>Система Управления Офферами</b>\n👋 Ваша роль: <b>%s</b>\n➖➖➖➖➖➖➖➖➖➖\n",
		role)

	text += "🔎 <b>Поиск и Просмотр:</b>\n" +
		"• <code>/check 1win</code> — Найти офферы по слову\n" +
		"• <code>/check -</code> — Показать последние активные\n"
	if role.RestrictsToOwn() {
		text += "<i>(Поиск ищет только по вашим личным офферам)</i>\n"
	} else if !role.Can(model.CapManageAny) {
		text += "<i>(Поиск по всей активной базе)</i>\n"
	}
	text += "\n"

	if role.Can(model.CapManageOwn) {
		accessNote := "<i>(Любые)</i>"
		if role.RestrictsToOwn() {
			accessNote = "<i>(Только свои)</i>"
		}
		text += fmt.Sprintf("💼 <b>Управление %s:</b>\n", accessNote) +
			"• <code>/add ...</code> — Добавить оффер\n" +
			"• <code>/edit ID</code> — Изменить (получить строку)\n" +
			"• <code>/del ID</code> — Удалить в архив\n" +
			"• <code>/my_offers</code> — Список моих активных\n" +
			"• <code>/export -</code> — Скачать Excel-отчет\n\n" +
			"📝 <b>Формат добавления:</b>\n" +
			"<code>/add ПП - Оффер - Гео - Ставка - Гарант (0 если нет) - Инфо</code>\n" +
			"<i>Пример:</i> <code>/add 1win - Aviator - RO - 45$ - 5 cap - Тест</code>\n\n"
	}

	if role.Can(model.CapViewArchive) {
		text += "👑 <b>Администрирование:</b>\n" +
			"• <code>/check_archive -</code> — Поиск по Архиву\n" +
			"• <code>/export_archive -</code> — Скачать Архив (Excel)\n" +
			"• <code>/del ID</code> — Удаление любого оффера\n\n" +
			"• <code>/invite manager</code> — Создать инвайт (1 вход)\n" +
			"• <code>/invite user 10</code> — 10 одноразовых инвайтов\n"
	}

	if role.Can(model.CapManageUsers) {
		text += "⚙️ <b>Системное управление:</b>\n" +
			"• <code>/users</code> — Список всех пользователей\n" +
			"• <code>/fire ID</code> — Забанить/Разбанить\n" +
			"• <code>/setmanager ID</code> — Назначить Менеджером\n" +
			"• <code>/setadmin ID</code> — Назначить Админом\n" +
			"• <code>/setlog</code> — Назначить этот чат для Логов\n"
	}

	h.reply(msg.Chat.ID, text)
}

// HandleCheck обрабатывает /check и /check_archive
func (h *Handler) HandleCheck(msg *tgbotapi.Message, role model.Role, includeArchived bool) {
	if includeArchived && !role.Can(model.CapViewArchive) {
		h.reply(msg.Chat.ID, "⛔️ Архив доступен только администраторам.")
		return
	}

	args := msg.CommandArguments()
	if args == "" {
		cmd := "/check"
		if includeArchived {
			cmd = "/check_archive"
		}
		h.reply(msg.Chat.ID, fmt.Sprintf("⚠️ Формат: <code>%s текст</code>", cmd))
		return
	}

	query := normalizeQuery(args)

	var ownerRestriction int64
	if role.RestrictsToOwn() {
		ownerRestriction = msg.From.ID
	}

	offers := h.services.Offer.Search(query, includeArchived, ownerRestriction)
	if len(offers) == 0 {
		h.reply(msg.Chat.ID, "📭 Ничего не найдено.")
		return
	}

	total := len(offers)
	if total > viewLimit {
		offers = offers[:viewLimit]
		h.reply(msg.Chat.ID, fmt.Sprintf("⚠️ <b>Найдено: %d.</b> Первые %d.", total, viewLimit))
	}

	cards := make([]string, 0, len(offers))
	for i := range offers {
		cards = append(cards, formatOfferCard(&offers[i], includeArchived))
	}

	for _, text := range chunkCards(cards) {
		h.reply(msg.Chat.ID, text)
	}
}

// HandleExport обрабатывает /export и /export_archive
func (h *Handler) HandleExport(msg *tgbotapi.Message, role model.Role, includeArchived bool) {
	if includeArchived && !role.Can(model.CapViewArchive) {
		h.reply(msg.Chat.ID, "⛔️ Архив доступен только администраторам.")
		return
	}

	args := msg.CommandArguments()
	if args == "" {
		cmd := "/export"
		if includeArchived {
			cmd = "/export_archive"
		}
		h.reply(msg.Chat.ID, fmt.Sprintf("⚠️ Формат: <code>%s -</code>", cmd))
		return
	}

	query := normalizeQuery(args)

	var ownerRestriction int64
	if role.RestrictsToOwn() {
		ownerRestriction = msg.From.ID
	}

	rows, err := h.services.Offer.SearchForExport(query, includeArchived, ownerRestriction)
	if err != nil {
		h.reply(msg.Chat.ID, "⚠️ Ошибка экспорта. Попробуйте позже.")
		return
	}
	if len(rows) == 0 {
		h.reply(msg.Chat.ID, "📭 Данных не найдено.")
		return
	}

	data, err := export.RenderTable(rows)
	if err != nil {
		h.logger.Error("Failed to render export", zap.Error(err))
		h.reply(msg.Chat.ID, "⚠️ Ошибка экспорта. Попробуйте позже.")
		return
	}

	mode := "📊 АКТИВНЫЕ"
	if includeArchived {
		mode = "🗄 АРХИВ"
	}
	if ownerRestriction != 0 {
		mode += " (МОИ)"
	}

	caption := mode + " | Полная база"
	if query != "" {
		caption = fmt.Sprintf("%s | Фильтр: '%s'", mode, query)
	}

	filename := fmt.Sprintf("export_%d.xlsx", time.Now().Unix())
	if err := h.botAPI.SendDocument(msg.Chat.ID, filename, data, caption); err != nil {
		h.logger.Error("Failed to send export document", zap.Error(err))
		h.reply(msg.Chat.ID, "⚠️ Ошибка экспорта. Попробуйте позже.")
	}
}
