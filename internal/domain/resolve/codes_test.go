package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCode(t *testing.T) {
	cases := []struct {
		name string
		text string
		code string
		ok   bool
	}{
		{"name dash code", "JOAO SILVA - 00419", "00419", true},
		{"name colon code", "Clayton Nunes: 12345", "12345", true},
		{"code dash name", "00419 - JOAO SILVA", "00419", true},
		{"labeled matricula", "matrícula: 8812", "8812", true},
		{"labeled registro", "Registro 445566 do condutor", "445566", true},
		{"isolated digit run", "protocolo aberto sob numero 90210 ontem", "90210", true},
		{"too short", "sala 12 bloco 3", "", false},
		{"too long", "cnpj 123456789012", "", false},
		{"no digits", "texto sem numeros", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, ok := DetectCode(tc.text)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.code, code)
		})
	}

	t.Run("structured form beats isolated run", func(t *testing.T) {
		// The name/code pair is scanned before any stray digit run.
		code, ok := DetectCode("ano 2024\nJOAO SILVA - 00419")
		require.True(t, ok)
		assert.Equal(t, "00419", code)
	})
}
