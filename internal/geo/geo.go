// Package geo содержит нормализацию географических регионов.
package geo

import (
	"strings"

	"golang.org/x/text/cases"
)

// displayLabels отображает коды и алиасы регионов в каноничную двуязычную форму
var displayLabels = map[string]string{
	"RO": "Romania (Румыния)", "ROMANIA": "Romania (Румыния)", "РУМЫНИЯ": "Romania (Румыния)",
	"RU": "Russia (Россия)", "KZ": "Kazakhstan (Казахстан)", "UZ": "Uzbekistan (Узбекистан)",
	"UA": "Ukraine (Украина)", "BY": "Belarus (Беларусь)", "AZ": "Azerbaijan (Азербайджан)",
	"BR": "Brazil (Бразилия)", "IN": "India (Индия)", "TR": "Turkey (Турция)",
	"PT": "Portugal (Португалия)", "ES": "Spain (Испания)", "PL": "Poland (Польша)",
	"GLOBAL": "Global (WW)", "WW": "Global (WW)",
}

// synonymGroups объединяет алиасы одного региона для поиска
var synonymGroups = [][]string{
	{"ro", "romania", "румыния"}, {"br", "brazil", "бразилия"}, {"ru", "russia", "россия"},
	{"kz", "kazakhstan", "казахстан"}, {"uz", "uzbekistan", "узбекистан"}, {"ua", "ukraine", "украина"},
	{"by", "belarus", "беларусь"}, {"az", "azerbaijan", "азербайджан"}, {"tr", "turkey", "турция"},
	{"pt", "portugal", "португалия"}, {"es", "spain", "испания"}, {"pl", "poland", "польша"},
	{"in", "india", "индия"}, {"global", "ww", "мир", "весь мир"},
}

var folder = cases.Fold()

// synonymIndex строится один раз из synonymGroups
var synonymIndex = buildSynonymIndex()

func buildSynonymIndex() map[string][]string {
	index := make(map[string][]string)
	for _, group := range synonymGroups {
		for _, alias := range group {
			index[folder.String(alias)] = group
		}
	}
	return index
}

// Normalize приводит регион к каноничной форме отображения.
// Неизвестный регион возвращается как есть, без пробелов по краям.
func Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if label, ok := displayLabels[strings.ToUpper(trimmed)]; ok {
		return label
	}
	return trimmed
}

// SearchVariations возвращает все алиасы региона для слова запроса.
// Слово вне таблицы синонимов возвращается как единственный вариант.
func SearchVariations(word string) []string {
	if group, ok := synonymIndex[folder.String(word)]; ok {
		return group
	}
	return []string{word}
}
