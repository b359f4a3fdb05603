package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("strips diacritics and lowercases", func(t *testing.T) {
		assert.Equal(t, "joao da silva", Normalize("JOÃO DA SILVA"))
		assert.Equal(t, "conceicao", Normalize("Conceição"))
	})

	t.Run("collapses punctuation into single spaces", func(t *testing.T) {
		assert.Equal(t, "clayton nunes 00419", Normalize("Clayton—Nunes:  00419!"))
	})

	t.Run("empty in empty out", func(t *testing.T) {
		assert.Equal(t, "", Normalize(""))
		assert.Equal(t, "", Normalize("  ...  "))
	})

	t.Run("digits survive", func(t *testing.T) {
		assert.Equal(t, "matricula 12345", Normalize("Matrícula: 12345"))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := Normalize("Sr. João Álvares  Cabral")
		assert.Equal(t, once, Normalize(once))
	})
}

func TestFold(t *testing.T) {
	t.Run("keeps punctuation", func(t *testing.T) {
		assert.Equal(t, "entrada: 08:30", Fold("Entrada: 08:30"))
	})

	t.Run("strips diacritics", func(t *testing.T) {
		assert.Equal(t, "advertencia por distracao", Fold("Advertência por distração"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", Fold(""))
	})
}

func TestStripNoise(t *testing.T) {
	t.Run("drops all caps header lines", func(t *testing.T) {
		in := "PREFEITURA MUNICIPAL DE SAO PAULO\nClayton Nunes compareceu ao servico"
		out := StripNoise(in)
		assert.NotContains(t, out, "PREFEITURA")
		assert.Contains(t, out, "Clayton Nunes")
	})

	t.Run("drops lines with structural stopwords", func(t *testing.T) {
		in := "Assinatura do responsavel\nClayton Nunes compareceu"
		out := StripNoise(in)
		assert.NotContains(t, out, "responsavel")
		assert.Contains(t, out, "Clayton Nunes")
	})

	t.Run("stopword matching is whole token", func(t *testing.T) {
		// "dataria" must not trip the "data" stopword.
		out := StripNoise("o motorista dataria o ocorrido depois")
		assert.Contains(t, out, "dataria")
	})

	t.Run("replaces symbol runs", func(t *testing.T) {
		out := StripNoise("Clayton##Nunes esteve presente")
		assert.Contains(t, out, "Clayton Nunes")
	})

	t.Run("short caps tokens survive", func(t *testing.T) {
		// Short all-caps fragments (OCR'd initials) stay; only long
		// caps lines are treated as letterheads.
		out := StripNoise("JK foi\nnomeado")
		assert.Contains(t, out, "JK")
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", StripNoise(""))
		assert.Equal(t, "", StripNoise("\n\n  \n"))
	})

	t.Run("collapses runs of spaces", func(t *testing.T) {
		out := StripNoise("um    dois     tres")
		assert.False(t, strings.Contains(out, "  "))
	})
}
