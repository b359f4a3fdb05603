package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.August, 31, 10, 0, 0, 0, time.Local)

func TestExtractDate(t *testing.T) {
	t.Run("numeric slash date", func(t *testing.T) {
		dt := ExtractDate("consulta em 12/03/2024", TypeAtestado, testNow)
		assert.Equal(t, "12-03-2024", FormatDate(dt))
	})

	t.Run("two digit year", func(t *testing.T) {
		dt := ExtractDate("emitido em 07.06.24", TypeAtestado, testNow)
		assert.Equal(t, "07-06-2024", FormatDate(dt))
	})

	t.Run("written month", func(t *testing.T) {
		dt := ExtractDate("São Paulo, 12 de março de 2024", TypeAtestado, testNow)
		assert.Equal(t, "12-03-2024", FormatDate(dt))
	})

	t.Run("written month without year uses current", func(t *testing.T) {
		dt := ExtractDate("aos 5 de maio, firmamos", TypeAtestado, testNow)
		assert.Equal(t, "05-05-2026", FormatDate(dt))
	})

	t.Run("latest date wins", func(t *testing.T) {
		dt := ExtractDate("período de 01/01/2024 a 05/06/2025", TypeAtestado, testNow)
		assert.Equal(t, "05-06-2025", FormatDate(dt))
	})

	t.Run("impossible dates rejected", func(t *testing.T) {
		// 31/02 would roll over to March; it must not be trusted, so
		// extraction falls back to the current date.
		dt := ExtractDate("assinado em 31/02/2024", TypeAtestado, testNow)
		assert.Equal(t, FormatDate(testNow), FormatDate(dt))
	})

	t.Run("no date falls back to now", func(t *testing.T) {
		dt := ExtractDate("sem nenhuma data presente", TypeAtestado, testNow)
		assert.Equal(t, FormatDate(testNow), FormatDate(dt))
	})

	t.Run("time sheets filed mid month", func(t *testing.T) {
		dt := ExtractDate("folha de 03/03/2024", TypePonto, testNow)
		assert.Equal(t, "15-03-2024", FormatDate(dt))
	})
}

func TestNormalizeDateForType(t *testing.T) {
	t.Run("day fifteen for periodic documents", func(t *testing.T) {
		in := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.Local)
		for _, dt := range []DocType{TypePonto, TypeAdvertencia, TypeCarta} {
			got := NormalizeDateForType(in, dt, testNow)
			assert.Equal(t, 15, got.Day(), "doc type %s", dt)
		}
	})

	t.Run("medical certificates keep their day", func(t *testing.T) {
		in := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.Local)
		got := NormalizeDateForType(in, TypeAtestado, testNow)
		assert.Equal(t, 3, got.Day())
	})

	t.Run("pre fleet years clamped", func(t *testing.T) {
		in := time.Date(2019, time.May, 10, 0, 0, 0, 0, time.Local)
		got := NormalizeDateForType(in, TypeAtestado, testNow)
		assert.Equal(t, 2023, got.Year())
		assert.Equal(t, time.May, got.Month())
	})

	t.Run("future dates pulled back", func(t *testing.T) {
		in := time.Date(2026, time.December, 10, 0, 0, 0, 0, time.Local)
		got := NormalizeDateForType(in, TypeAtestado, testNow)
		assert.False(t, got.After(testNow))
		assert.Equal(t, testNow.Year(), got.Year())
	})

	t.Run("future year same month", func(t *testing.T) {
		in := time.Date(2027, time.March, 10, 0, 0, 0, 0, time.Local)
		got := NormalizeDateForType(in, TypeAtestado, testNow)
		assert.Equal(t, "10-03-2026", FormatDate(got))
	})
}

func TestFormatDate(t *testing.T) {
	dt := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "05-03-2024", FormatDate(dt))
}
