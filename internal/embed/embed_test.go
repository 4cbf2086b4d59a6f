package embed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arafato/fluentgo/internal/embed"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesOneFilePerLocale(t *testing.T) {
	t.Parallel()

	localesDir := t.TempDir()
	outDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(localesDir, "en"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(localesDir, "de"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(localesDir, "en", "main.ftl"), []byte("greeting = Hi\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(localesDir, "de", "main.ftl"), []byte("greeting = Hallo\n"), 0o644))

	written, err := embed.Generate(localesDir, outDir, "locales")
	require.NoError(t, err)
	require.Len(t, written, 2)

	for _, path := range written {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(content), "package locales")
		require.Contains(t, string(content), "fluent.AddStaticResource")
		require.Contains(t, string(content), "language.MustParse")
	}
}

func TestGenerateRejectsNonDirectory(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := embed.Generate(file, t.TempDir(), "locales")
	require.Error(t, err)
}
