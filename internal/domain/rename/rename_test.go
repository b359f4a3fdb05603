package rename

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/frota-docs/internal/domain/classify"
)

func TestBuildName(t *testing.T) {
	cases := []struct {
		name string
		meta Metadata
		want string
	}{
		{
			"letter",
			Metadata{Type: classify.TypeCarta, Driver: "CLAYTON NUNES", Date: "15-03-2024"},
			"CARTA CLAYTON NUNES 15-03-2024.pdf",
		},
		{
			"warning carries the reason",
			Metadata{Type: classify.TypeAdvertencia, Driver: "CLAYTON NUNES", Date: "15-03-2024", Reason: "CELULAR"},
			"ADVERTENCIA CELULAR 15-03-2024 CLAYTON NUNES.pdf",
		},
		{
			"time sheet",
			Metadata{Type: classify.TypePonto, Driver: "CLAYTON NUNES", Date: "15-03-2024"},
			"PONTO 15-03-2024 CLAYTON NUNES.pdf",
		},
		{
			"medical certificate",
			Metadata{Type: classify.TypeAtestado, Driver: "CLAYTON NUNES", Date: "12-03-2024"},
			"ATESTADO 12-03-2024 CLAYTON NUNES.pdf",
		},
		{
			"unknown type",
			Metadata{Type: classify.TypeDesconhecido, Driver: "CLAYTON NUNES", Date: "12-03-2024"},
			"DESCONHECIDO 12-03-2024 CLAYTON NUNES.pdf",
		},
		{
			"unresolved driver surfaces in the name",
			Metadata{Type: classify.TypePonto, Date: "15-03-2024"},
			"PONTO 15-03-2024 DESCONHECIDO.pdf",
		},
		{
			"slashes in dates become dashes",
			Metadata{Type: classify.TypePonto, Driver: "CLAYTON NUNES", Date: "15/03/2024"},
			"PONTO 15-03-2024 CLAYTON NUNES.pdf",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildName(tc.meta))
		})
	}
}

func TestRename(t *testing.T) {
	meta := Metadata{Type: classify.TypePonto, Driver: "CLAYTON NUNES", Date: "15-03-2024"}

	writeFile := func(t *testing.T, dir, name string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
		return path
	}

	t.Run("moves into place", func(t *testing.T) {
		dir := t.TempDir()
		src := writeFile(t, dir, "scan001.pdf")

		got, err := Rename(src, meta)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "PONTO 15-03-2024 CLAYTON NUNES.pdf"), got)

		_, err = os.Stat(src)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("collision appends a counter", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "PONTO 15-03-2024 CLAYTON NUNES.pdf")
		src := writeFile(t, dir, "scan002.pdf")

		got, err := Rename(src, meta)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "PONTO 15-03-2024 CLAYTON NUNES(1).pdf"), got)
	})

	t.Run("second collision counts up", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "PONTO 15-03-2024 CLAYTON NUNES.pdf")
		writeFile(t, dir, "PONTO 15-03-2024 CLAYTON NUNES(1).pdf")
		src := writeFile(t, dir, "scan003.pdf")

		got, err := Rename(src, meta)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "PONTO 15-03-2024 CLAYTON NUNES(2).pdf"), got)
	})

	t.Run("missing source errors", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Rename(filepath.Join(dir, "ghost.pdf"), meta)
		assert.Error(t, err)
	})
}
