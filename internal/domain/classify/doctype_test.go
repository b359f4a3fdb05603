package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectType(t *testing.T) {
	t.Run("time sheet", func(t *testing.T) {
		text := "Registro de Ponto\n" +
			"07:58 12:01 13:02 18:04\n" +
			"08:00 12:00 13:00 18:00\n"
		got := DetectType(text, OrientationHorizontal, 3)
		assert.Equal(t, TypePonto, got)
	})

	t.Run("journey control header alone is enough", func(t *testing.T) {
		got := DetectType("Controle de Jornada do condutor", OrientationVertical, 1)
		assert.Equal(t, TypePonto, got)
	})

	t.Run("warning", func(t *testing.T) {
		text := "Advertência disciplinar\nO colaborador foi advertido por descumprimento de norma interna."
		got := DetectType(text, OrientationVertical, 1)
		assert.Equal(t, TypeAdvertencia, got)
	})

	t.Run("medical certificate", func(t *testing.T) {
		text := "Atestado\nCID J06\nDr. Carlos Eduardo\nafastamento de 2 dias"
		got := DetectType(text, OrientationVertical, 1)
		assert.Equal(t, TypeAtestado, got)
	})

	t.Run("doctor title must be a whole word", func(t *testing.T) {
		// "pedro" contains "dr" but is not a doctor's title.
		got := DetectType("pedro entregou o material", OrientationVertical, 1)
		assert.Equal(t, TypeDesconhecido, got)
	})

	t.Run("letter", func(t *testing.T) {
		text := "Prezado senhor,\nvenho por meio desta comunicar o desligamento."
		got := DetectType(text, OrientationVertical, 1)
		assert.Equal(t, TypeCarta, got)
	})

	t.Run("unknown below score floor", func(t *testing.T) {
		got := DetectType("texto curto qualquer", OrientationVertical, 1)
		assert.Equal(t, TypeDesconhecido, got)
	})

	t.Run("empty text", func(t *testing.T) {
		got := DetectType("", OrientationVertical, 1)
		assert.Equal(t, TypeDesconhecido, got)
	})

	t.Run("diacritics do not hide keywords", func(t *testing.T) {
		got := DetectType("ADVERTÊNCIA por descumprimento ao colaborador", OrientationVertical, 1)
		assert.Equal(t, TypeAdvertencia, got)
	})
}

func TestDetectReason(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"cellphone", "uso de celular ao volante", ReasonCelular},
		{"distraction", "dirigia com distração evidente", ReasonDistracao},
		{"seatbelt", "conduzia sem o cinto de segurança", ReasonCinto},
		{"speeding", "excesso de velocidade na rodovia", ReasonVelocidade},
		{"smoking", "flagrado fumando durante o trajeto", ReasonDrogas},
		{"rest period", "desrespeitou o intervalo de jornada", ReasonJornada},
		{"fallback", "conduta inadequada no terminal", ReasonIntrajornada},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectReason(tc.text))
		})
	}

	t.Run("cellphone outranks jornada", func(t *testing.T) {
		got := DetectReason("uso de celular durante a jornada")
		assert.Equal(t, ReasonCelular, got)
	})
}
