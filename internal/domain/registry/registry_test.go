package registry

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid records", func(t *testing.T) {
		reg, err := New([]DriverRecord{
			{Code: "00419", Name: "CLAYTON NUNES"},
			{Code: "00533", Name: "MARIA APARECIDA SOUZA"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, reg.Len())
		assert.Equal(t, []string{"CLAYTON NUNES", "MARIA APARECIDA SOUZA"}, reg.Names())
	})

	t.Run("order preserved", func(t *testing.T) {
		gofakeit.Seed(11)
		records := make([]DriverRecord, 50)
		for i := range records {
			records[i] = DriverRecord{
				Code: fmt.Sprintf("%05d", 10000+i),
				Name: strings.ToUpper(gofakeit.Name()),
			}
		}
		reg, err := New(records)
		require.NoError(t, err)
		for i, rec := range reg.Records() {
			assert.Equal(t, records[i].Name, rec.Name)
		}
	})

	t.Run("empty roster", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("duplicate code", func(t *testing.T) {
		_, err := New([]DriverRecord{
			{Code: "00419", Name: "CLAYTON NUNES"},
			{Code: "00419", Name: "OUTRO MOTORISTA"},
		})
		require.ErrorIs(t, err, ErrDuplicateCode)
		assert.Contains(t, err.Error(), "00419")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := New([]DriverRecord{{Code: "00419", Name: "   "}})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("codeless records allowed", func(t *testing.T) {
		reg, err := New([]DriverRecord{
			{Name: "SEM CODIGO UM"},
			{Name: "SEM CODIGO DOIS"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, reg.Len())
	})

	t.Run("fields trimmed", func(t *testing.T) {
		reg, err := New([]DriverRecord{{Code: " 00419 ", Name: " CLAYTON NUNES "}})
		require.NoError(t, err)
		assert.Equal(t, "CLAYTON NUNES", reg.At(0).Name)

		idx, ok := reg.ByCode("00419")
		require.True(t, ok)
		assert.Equal(t, 0, idx)
	})
}

func TestRegistry_ByCode(t *testing.T) {
	reg, err := New([]DriverRecord{
		{Code: "00419", Name: "CLAYTON NUNES"},
		{Name: "SEM CODIGO"},
	})
	require.NoError(t, err)

	idx, ok := reg.ByCode("00419")
	require.True(t, ok)
	assert.Equal(t, "CLAYTON NUNES", reg.At(idx).Name)

	_, ok = reg.ByCode("99999")
	assert.False(t, ok)

	_, ok = reg.ByCode("")
	assert.False(t, ok)
}

func TestRegistry_Hash(t *testing.T) {
	a, err := New([]DriverRecord{{Code: "1111", Name: "CLAYTON NUNES"}})
	require.NoError(t, err)
	b, err := New([]DriverRecord{{Code: "1111", Name: "CLAYTON NUNES"}})
	require.NoError(t, err)
	c, err := New([]DriverRecord{{Code: "2222", Name: "CLAYTON NUNES"}})
	require.NoError(t, err)

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestLoadCSV(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		csv := "codigo,nome\n00419,CLAYTON NUNES\n00533,MARIA APARECIDA SOUZA\n"
		reg, err := LoadCSV(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 2, reg.Len())

		idx, ok := reg.ByCode("00533")
		require.True(t, ok)
		assert.Equal(t, "MARIA APARECIDA SOUZA", reg.At(idx).Name)
	})

	t.Run("extra columns ignored", func(t *testing.T) {
		csv := "codigo,nome,setor\n00419,CLAYTON NUNES,transporte\n"
		reg, err := LoadCSV(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, "CLAYTON NUNES", reg.At(0).Name)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := LoadCSV(strings.NewReader("codigo,nome\n"))
		assert.Error(t, err)
	})
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load("roster.txt")
	assert.Error(t, err)
}
