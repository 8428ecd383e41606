package handlers

import (
	"fmt"
	"strings"
	"testing"

	"offerbase/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOfferLine(t *testing.T) {
	fields, found, ok := parseOfferLine("1win - Aviator - RO - 45$ - 5 cap - Тест")
	require.True(t, ok)
	assert.Equal(t, 6, found)
	assert.Equal(t, model.OfferFields{
		SourceName: "1win",
		OfferName:  "Aviator",
		Geo:        "RO",
		Rate:       "45$",
		Guarantee:  "5 cap",
		Note:       "Тест",
	}, fields)
}

func TestParseOfferLine_LongDash(t *testing.T) {
	fields, _, ok := parseOfferLine("PIN—Slots—KZ—30$—0—Инфо")
	require.True(t, ok)
	assert.Equal(t, "PIN", fields.SourceName)
	assert.Equal(t, "KZ", fields.Geo)
	assert.Empty(t, fields.Guarantee, "нулевой гарант приводится к пустой строке")
	assert.Equal(t, "Инфо", fields.Note)
}

func TestParseOfferLine_ExtraPartsFoldIntoNote(t *testing.T) {
	fields, _, ok := parseOfferLine("1win - Aviator - RO - 45$ - 5 cap - часть один - часть два")
	require.True(t, ok)
	assert.Equal(t, "часть один - часть два", fields.Note)
}

func TestParseOfferLine_TooFewParts(t *testing.T) {
	_, found, ok := parseOfferLine("1win - Aviator - RO")
	assert.False(t, ok)
	assert.Equal(t, 3, found)
}

func TestHasGuarantee(t *testing.T) {
	for _, empty := range []string{"", "0", "-", "нет", "Нет", " 0 "} {
		assert.False(t, hasGuarantee(empty), "%q не должен считаться гарантом", empty)
	}
	assert.True(t, hasGuarantee("5 cap"))
	assert.True(t, hasGuarantee("10"))
}

func TestNormalizeQuery(t *testing.T) {
	for _, sentinel := range []string{"-", ".", "все", "all", "ALL", " Все "} {
		assert.Empty(t, normalizeQuery(sentinel), "%q должен означать показ всего", sentinel)
	}
	assert.Equal(t, "1win", normalizeQuery(" 1win "))
}

func TestEditPrefillLine(t *testing.T) {
	offer := &model.Offer{
		SourceName: "1win",
		OfferName:  "Aviator",
		Geo:        "Romania (Румыния)",
		Rate:       "45$",
		Guarantee:  "5 cap",
		Note:       "Тест",
	}
	assert.Equal(t, "1win - Aviator - Romania (Румыния) - 45$ - 5 cap - Тест", editPrefillLine(offer))

	offer.Guarantee = ""
	assert.Equal(t, "1win - Aviator - Romania (Румыния) - 45$ - 0 - Тест", editPrefillLine(offer))
}

func TestParseOfferLine_RoundTripsThroughPrefill(t *testing.T) {
	fields, _, ok := parseOfferLine("1win - Aviator - RO - 45$ - 0 - Тест")
	require.True(t, ok)

	offer := &model.Offer{
		SourceName: fields.SourceName,
		OfferName:  fields.OfferName,
		Geo:        fields.Geo,
		Rate:       fields.Rate,
		Guarantee:  fields.Guarantee,
		Note:       fields.Note,
	}

	again, _, ok := parseOfferLine(editPrefillLine(offer))
	require.True(t, ok)
	assert.Equal(t, fields, again)
}

func TestFormatOfferCard(t *testing.T) {
	offer := &model.Offer{
		ID:         7,
		SourceName: "1win",
		OfferName:  "Aviator <test>",
		Geo:        "Romania (Румыния)",
		Rate:       "45$",
		Guarantee:  "5 cap",
		Note:       "Тест",
		Status:     model.StatusActive,
	}

	card := formatOfferCard(offer, false)
	assert.Contains(t, card, "<code>7</code>")
	assert.Contains(t, card, "Aviator &lt;test&gt;", "HTML в полях экранируется")
	assert.Contains(t, card, "✅ Гарант: 5 cap")
	assert.NotContains(t, card, "🗑")

	offer.Guarantee = ""
	card = formatOfferCard(offer, false)
	assert.NotContains(t, card, "Гарант")
	assert.Contains(t, card, "📝 Тест")
}

func TestFormatOfferCard_StatusPrefix(t *testing.T) {
	offer := &model.Offer{ID: 1, SourceName: "PIN", OfferName: "Slots", Geo: "Global", Rate: "30$", Note: "-", Status: model.StatusArchived}

	assert.True(t, strings.HasPrefix(formatOfferCard(offer, true), "🗑 "))

	offer.Status = model.StatusActive
	assert.True(t, strings.HasPrefix(formatOfferCard(offer, true), "✅ "))
}

func TestChunkCards(t *testing.T) {
	cards := make([]string, 12)
	for i := range cards {
		cards[i] = fmt.Sprintf("card %d", i)
	}

	messages := chunkCards(cards)
	require.Len(t, messages, 3)
	assert.Equal(t, cardsPerMessage, strings.Count(messages[0], "card "))
	assert.Equal(t, 2, strings.Count(messages[2], "card "))
	assert.Contains(t, messages[0], cardSeparator)

	assert.Nil(t, chunkCards(nil))
}
