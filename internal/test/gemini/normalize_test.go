package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"valida-backend/internal/gemini"
)

func TestNormalizeListing_FencedJSONWithEmoji(t *testing.T) {
	raw := "```json\n{\"title\": \"Fone Bluetooth 🔥 Premium\", \"description\": \"Som incrível.\"}\n```"

	title, description := gemini.NormalizeListing(raw, "Fone Bluetooth")

	assert.Contains(t, title, "Fone Bluetooth")
	assert.False(t, gemini.HasEmoji(title))
	assert.NotContains(t, title, "```")
	assert.NotContains(t, title, "json")
	assert.Equal(t, "Som incrível.", description)
}

func TestNormalizeListing_PlainJSON(t *testing.T) {
	raw := `{"title": "Caneca Térmica Inox 500ml", "description": "- Mantém quente por 6h\n- Aço inox"}`

	title, description := gemini.NormalizeListing(raw, "Caneca")

	assert.Equal(t, "Caneca Térmica Inox 500ml", title)
	assert.Contains(t, description, "Mantém quente por 6h")
}

func TestNormalizeListing_PortugueseLabeledLines(t *testing.T) {
	raw := "título: Tênis Esportivo Leve\ndescrição: Confortável e durável"

	title, description := gemini.NormalizeListing(raw, "Tênis Esportivo")

	assert.Equal(t, "Tênis Esportivo Leve", title)
	assert.Equal(t, "Confortável e durável", description)
}

func TestNormalizeListing_EnglishLabeledLines(t *testing.T) {
	raw := "title: Lightweight Running Shoes\ndescription: Comfortable and durable"

	title, description := gemini.NormalizeListing(raw, "Running Shoes")

	assert.Equal(t, "Lightweight Running Shoes", title)
	assert.Contains(t, description, "Comfortable and durable")
}

func TestNormalizeListing_LooseProseFallsBackToFirstLine(t *testing.T) {
	raw := "Caneca Térmica Inox 500ml\nMantém sua bebida quente por horas."

	title, description := gemini.NormalizeListing(raw, "Caneca")

	assert.Equal(t, "Caneca Térmica Inox 500ml", title)
	assert.Equal(t, "Mantém sua bebida quente por horas.", description)
}

func TestNormalizeListing_TitleWithJSONTokenIsReplaced(t *testing.T) {
	raw := `{"title": "Produto json incrível", "description": "Boa descrição."}`

	title, _ := gemini.NormalizeListing(raw, "Produto Incrível")

	assert.Equal(t, "Produto Incrível", title)
}

func TestNormalizeListing_EmptyOutputUsesProductName(t *testing.T) {
	title, _ := gemini.NormalizeListing("", "Produto X")

	assert.Equal(t, "Produto X", title)
}

func TestCleanText_StripsFencesAndInvisibleChars(t *testing.T) {
	raw := "```json\n{\"title\": \"abc\"}\n```"
	cleaned := gemini.CleanText(raw)
	assert.NotContains(t, cleaned, "```")

	withZeroWidth := "Tê​nis"
	assert.Equal(t, "Tênis", gemini.CleanText(withZeroWidth))
}

func TestHasEmoji(t *testing.T) {
	assert.True(t, gemini.HasEmoji("promoção 🔥"))
	assert.True(t, gemini.HasEmoji("check ✂"))
	assert.False(t, gemini.HasEmoji("texto limpo, sem símbolos"))
}
