package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "iso code", input: "RO", want: "Romania (Румыния)"},
		{name: "lowercase code", input: "ro", want: "Romania (Румыния)"},
		{name: "english name", input: "romania", want: "Romania (Румыния)"},
		{name: "russian name", input: "Румыния", want: "Romania (Румыния)"},
		{name: "padded input", input: "  kz  ", want: "Kazakhstan (Казахстан)"},
		{name: "ww sentinel", input: "WW", want: "Global (WW)"},
		{name: "unknown passes through", input: "Narnia", want: "Narnia"},
		{name: "unknown trimmed", input: "  Narnia ", want: "Narnia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"RO", "romania", "Global", "Narnia", "TR"}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize(normalize(%q))", input)
	}
}

func TestSearchVariations(t *testing.T) {
	t.Run("alias expands to whole group", func(t *testing.T) {
		for _, alias := range []string{"ro", "RO", "Romania", "румыния", "РУМЫНИЯ"} {
			got := SearchVariations(alias)
			assert.ElementsMatch(t, []string{"ro", "romania", "румыния"}, got, "alias %q", alias)
		}
	})

	t.Run("global group includes russian aliases", func(t *testing.T) {
		got := SearchVariations("ww")
		assert.ElementsMatch(t, []string{"global", "ww", "мир", "весь мир"}, got)
	})

	t.Run("unknown word is a singleton", func(t *testing.T) {
		assert.Equal(t, []string{"1win"}, SearchVariations("1win"))
	})
}
