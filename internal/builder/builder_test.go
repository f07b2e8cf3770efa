// internal/builder/builder_test.go
package builder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidr/internal/themes"
)

// writeDeck creates a deck directory holding one markdown source.
func writeDeck(t *testing.T, markdown string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deck.md"), []byte(markdown), 0644))
	return dir
}

func readOutput(t *testing.T, deckDir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(deckDir, OutputFile))
	require.NoError(t, err)
	return string(data)
}

func TestBuildEndToEnd(t *testing.T) {
	dir := writeDeck(t, "# A\n\n---\n\n# B")

	require.NoError(t, Build(dir, BuildOptions{}))

	html := readOutput(t, dir)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "A</h1>")
	assert.Contains(t, html, "B</h1>")
	assert.Equal(t, 2, strings.Count(html, `<section class="slide`))
	assert.Equal(t, 1, strings.Count(html, `class="slide active"`))
	// The first container is the active one.
	assert.Less(t, strings.Index(html, `class="slide active"`), strings.Index(html, "B</h1>"))
}

func TestBuildUsesFrontMatterSettings(t *testing.T) {
	dir := writeDeck(t, "---\ntitle: My Talk\nalign: center\n---\n# Hello")

	require.NoError(t, Build(dir, BuildOptions{}))

	html := readOutput(t, dir)
	assert.Contains(t, html, "<title>My Talk</title>")
	assert.Contains(t, html, `class="align-center"`)
}

func TestBuildDefaultsWithoutFrontMatter(t *testing.T) {
	dir := writeDeck(t, "# Hello")

	require.NoError(t, Build(dir, BuildOptions{}))

	html := readOutput(t, dir)
	assert.Contains(t, html, "<title>Slide Deck</title>")
	assert.Contains(t, html, `class="align-left"`)
}

func TestBuildIsIdempotent(t *testing.T) {
	dir := writeDeck(t, "---\ntitle: Stable\n---\n# A\n---\n# B")

	require.NoError(t, Build(dir, BuildOptions{}))
	first := readOutput(t, dir)
	require.NoError(t, Build(dir, BuildOptions{}))
	second := readOutput(t, dir)

	assert.Equal(t, first, second, "rebuilding an unchanged deck must be byte-identical")
}

func TestBuildThemeSelection(t *testing.T) {
	t.Run("deck theme.css is inlined", func(t *testing.T) {
		dir := writeDeck(t, "# Hello")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.css"), []byte("body { background: red; }"), 0644))

		require.NoError(t, Build(dir, BuildOptions{}))

		assert.Contains(t, readOutput(t, dir), "background: red")
	})

	t.Run("override wins over deck theme", func(t *testing.T) {
		dir := writeDeck(t, "# Hello")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.css"), []byte("body { background: red; }"), 0644))
		override := filepath.Join(t.TempDir(), "override.css")
		require.NoError(t, os.WriteFile(override, []byte("body { background: green; }"), 0644))

		require.NoError(t, Build(dir, BuildOptions{Theme: override}))

		html := readOutput(t, dir)
		assert.Contains(t, html, "background: green")
		assert.NotContains(t, html, "background: red")
	})

	t.Run("css is not entity escaped", func(t *testing.T) {
		dir := writeDeck(t, "# Hello")
		css := `body { font-family: "My Font", sans-serif; }`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.css"), []byte(css), 0644))

		require.NoError(t, Build(dir, BuildOptions{}))

		html := readOutput(t, dir)
		assert.Contains(t, html, `"My Font"`)
		assert.NotContains(t, html, "&#34;My Font&#34;")
	})
}

func TestBuildFailures(t *testing.T) {
	t.Run("missing deck directory", func(t *testing.T) {
		err := Build(filepath.Join(t.TempDir(), "nope"), BuildOptions{})
		assert.Error(t, err)
	})

	t.Run("missing markdown source", func(t *testing.T) {
		dir := t.TempDir()

		err := Build(dir, BuildOptions{})

		assert.ErrorIs(t, err, ErrNoMarkdown)
		assert.NoFileExists(t, filepath.Join(dir, OutputFile))
	})

	t.Run("missing override theme writes nothing", func(t *testing.T) {
		dir := writeDeck(t, "# Hello")

		err := Build(dir, BuildOptions{Theme: "missing-theme.css"})

		assert.ErrorIs(t, err, themes.ErrThemeNotFound)
		assert.NoFileExists(t, filepath.Join(dir, OutputFile))
	})

	t.Run("missing front matter theme leaves prior output untouched", func(t *testing.T) {
		dir := writeDeck(t, "---\ntheme: off-list-name.css\n---\n# Hello")
		prior := filepath.Join(dir, OutputFile)
		require.NoError(t, os.WriteFile(prior, []byte("previous build"), 0644))

		err := Build(dir, BuildOptions{})

		assert.ErrorIs(t, err, themes.ErrThemeNotFound)
		data, readErr := os.ReadFile(prior)
		require.NoError(t, readErr)
		assert.Equal(t, "previous build", string(data))
	})
}

func TestBuildCodeHighlighting(t *testing.T) {
	source := "---\ncode_highlight: monokai\n---\n# Code\n\n```go\npackage main\n```"

	t.Run("enabled appends chroma stylesheet", func(t *testing.T) {
		dir := writeDeck(t, source)

		require.NoError(t, Build(dir, BuildOptions{}))

		html := readOutput(t, dir)
		assert.Contains(t, html, "chroma")
		assert.Contains(t, html, "/* syntax highlighting */")
	})

	t.Run("disabled leaves code plain", func(t *testing.T) {
		dir := writeDeck(t, "---\ncode_highlight: off\n---\n# Code\n\n```go\npackage main\n```")

		require.NoError(t, Build(dir, BuildOptions{}))

		html := readOutput(t, dir)
		assert.NotContains(t, html, "/* syntax highlighting */")
		assert.Contains(t, html, "package main")
	})

	t.Run("unknown style name falls back softly", func(t *testing.T) {
		dir := writeDeck(t, "---\ncode_highlight: definitely-not-a-style\n---\n```go\npackage main\n```")

		require.NoError(t, Build(dir, BuildOptions{}))
		assert.Contains(t, readOutput(t, dir), "chroma")
	})
}

func TestBuildCustomOutputPath(t *testing.T) {
	dir := writeDeck(t, "# Hello")
	out := filepath.Join(t.TempDir(), "custom.html")

	require.NoError(t, Build(dir, BuildOptions{Output: out}))

	assert.FileExists(t, out)
	assert.NoFileExists(t, filepath.Join(dir, OutputFile))
}

func TestFindMarkdownFile(t *testing.T) {
	t.Run("picks first in lexical order", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("# B"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A"), 0644))

		path, err := findMarkdownFile(dir)

		require.NoError(t, err)
		assert.Equal(t, "a.md", filepath.Base(path))
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := findMarkdownFile(t.TempDir())
		assert.ErrorIs(t, err, ErrNoMarkdown)
	})
}
