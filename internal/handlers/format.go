package handlers

import (
	"fmt"
	"html"
	"strings"

	"offerbase/internal/model"
)

// Лимиты отображения
const (
	viewLimit       = 20
	cardsPerMessage = 5
	listCharLimit   = 4000
	maxInviteBatch  = 50
)

// fieldSeparator разделяет поля в строке /add и /edit
const fieldSeparator = " - "

// cardSeparator разделяет карточки внутри одного сообщения
const cardSeparator = "\n\n➖➖➖➖➖➖➖\n\n"

// hasGuarantee проверяет, задан ли гарант.
// Значения "0", "-", "нет" и пустая строка означают отсутствие.
func hasGuarantee(guarantee string) bool {
	switch strings.ToLower(strings.TrimSpace(guarantee)) {
	case "", "0", "-", "нет":
		return false
	}
	return true
}

// parseOfferLine разбирает строку "ПП - Оффер - Гео - Ставка - Гарант - Инфо".
// Длинное тире принимается как разделитель. Лишние части складываются в
// инфо, гарант-заглушки приводятся к пустой строке. При нехватке частей
// возвращает их найденное количество и ok=false.
func parseOfferLine(line string) (model.OfferFields, int, bool) {
	line = strings.ReplaceAll(line, "—", fieldSeparator)

	raw := strings.Split(line, fieldSeparator)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, strings.TrimSpace(p))
	}

	if len(parts) < 6 {
		return model.OfferFields{}, len(parts), false
	}
	if len(parts) > 6 {
		parts[5] = strings.Join(parts[5:], fieldSeparator)
		parts = parts[:6]
	}

	fields := model.OfferFields{
		SourceName: parts[0],
		OfferName:  parts[1],
		Geo:        parts[2],
		Rate:       parts[3],
		Guarantee:  parts[4],
		Note:       parts[5],
	}
	if !hasGuarantee(fields.Guarantee) {
		fields.Guarantee = ""
	}

	return fields, 6, true
}

// editPrefillLine собирает строку для /edit из сохраненных полей
func editPrefillLine(o *model.Offer) string {
	guarantee := o.Guarantee
	if guarantee == "" {
		guarantee = "0"
	}
	return strings.Join([]string{o.SourceName, o.OfferName, o.Geo, o.Rate, guarantee, o.Note}, fieldSeparator)
}

// normalizeQuery убирает команду-заглушку "показать все"
func normalizeQuery(query string) string {
	query = strings.TrimSpace(query)
	switch strings.ToLower(query) {
	case "-", ".", "все", "all":
		return ""
	}
	return query
}

// detailsBlock форматирует гарант и инфо для карточки или лог-чата
func detailsBlock(guarantee, note string) string {
	if hasGuarantee(guarantee) {
		return fmt.Sprintf("✅ Гарант: %s\n📝 %s", html.EscapeString(guarantee), html.EscapeString(note))
	}
	return "📝 " + html.EscapeString(note)
}

// formatOfferCard собирает HTML-карточку оффера.
// При showStatus к карточке добавляется маркер актив/архив.
func formatOfferCard(o *model.Offer, showStatus bool) string {
	prefix := ""
	if showStatus {
		prefix = "✅ "
		if o.IsArchived() {
			prefix = "🗑 "
		}
	}

	return fmt.Sprintf("%s🆔 <code>%d</code>\n🏢 <b>%s</b>\n🏷 %s\n🌍 %s\n💰 %s\n%s",
		prefix,
		o.ID,
		html.EscapeString(o.SourceName),
		html.EscapeString(o.OfferName),
		html.EscapeString(o.Geo),
		html.EscapeString(o.Rate),
		detailsBlock(o.Guarantee, o.Note))
}

// formatOfferLine собирает компактную строку для /my_offers
func formatOfferLine(o *model.Offer) string {
	details := html.EscapeString(o.Note)
	if hasGuarantee(o.Guarantee) {
		details = fmt.Sprintf("Гарант: %s | %s", html.EscapeString(o.Guarantee), html.EscapeString(o.Note))
	}

	return fmt.Sprintf("🆔<code>%d</code> <b>%s</b>: %s (🌍 %s) — <b>%s</b> | %s",
		o.ID,
		html.EscapeString(o.SourceName),
		html.EscapeString(o.OfferName),
		html.EscapeString(o.Geo),
		html.EscapeString(o.Rate),
		details)
}

// chunkCards разбивает карточки на сообщения по cardsPerMessage штук
func chunkCards(cards []string) []string {
	var messages []string
	for i := 0; i < len(cards); i += cardsPerMessage {
		end := i + cardsPerMessage
		if end > len(cards) {
			end = len(cards)
		}
		messages = append(messages, strings.Join(cards[i:end], cardSeparator))
	}
	return messages
}
