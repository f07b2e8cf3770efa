// internal/builder/builder.go
package builder

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"slidr/internal/deck"
	"slidr/internal/themes"
)

// OutputFile is the fixed output filename written inside the deck directory.
const OutputFile = "index.html"

// ErrNoMarkdown indicates the deck directory holds no markdown source.
var ErrNoMarkdown = errors.New("no markdown file found")

// commonNonDeckFiles are markdown names that usually belong to the repo, not
// the presentation. Picking one up is legal but worth a warning.
var commonNonDeckFiles = map[string]bool{
	"readme.md":       true,
	"agents.md":       true,
	"contributing.md": true,
	"changelog.md":    true,
}

// Build runs the whole pipeline for one deck directory: read the markdown
// source, extract front matter, segment into slides, render each slide,
// resolve the theme, render the document, and write the output file in a
// single overwrite. A missing source file or a failed theme resolution fails
// the build before anything is written; prior output stays untouched.
func Build(deckDir string, opts BuildOptions) error {
	info, err := os.Stat(deckDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("deck directory not found: %s", deckDir)
	}

	srcPath, err := findMarkdownFile(deckDir)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", srcPath, err)
	}
	if !utf8.Valid(raw) {
		return fmt.Errorf("deck source is not valid UTF-8: %s", srcPath)
	}

	fm, body := deck.Extract(string(raw))
	settings := fm.Settings()
	sources := deck.Split(body)

	renderer := newSlideRenderer(settings.Highlight != "", opts.Unsafe)
	slides := make([]template.HTML, 0, len(sources))
	for _, src := range sources {
		slides = append(slides, template.HTML(renderer.render(src)))
	}

	css, err := themes.Resolve(opts.Theme, fm.Theme, deckDir)
	if err != nil {
		return err
	}
	if settings.Highlight != "" {
		highlight, err := highlightCSS(settings.Highlight)
		if err != nil {
			return err
		}
		css += "\n\n/* syntax highlighting */\n" + highlight
	}

	doc, err := renderDeck(DeckData{
		Title:  settings.Title,
		Align:  settings.Align,
		CSS:    template.CSS(css),
		Slides: slides,
	})
	if err != nil {
		return err
	}

	outPath := opts.Output
	if outPath == "" {
		outPath = filepath.Join(deckDir, OutputFile)
	}
	if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	fmt.Printf("✓ Built %d slides from %s → %s\n", len(slides), filepath.Base(srcPath), outPath)
	return nil
}

// findMarkdownFile picks the deck source: the first *.md file in lexical
// order. Multiple candidates and common repo files get a warning so a wrong
// pick is at least visible.
func findMarkdownFile(deckDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(deckDir, "*.md"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoMarkdown, deckDir)
	}

	picked := matches[0]
	if commonNonDeckFiles[strings.ToLower(filepath.Base(picked))] {
		log.Printf("Warning: using %q, which may not be a slide deck file", filepath.Base(picked))
	}
	if len(matches) > 1 {
		others := make([]string, 0, len(matches)-1)
		for _, m := range matches[1:] {
			others = append(others, filepath.Base(m))
		}
		log.Printf("Warning: multiple markdown files found, using %q (others: %s)",
			filepath.Base(picked), strings.Join(others, ", "))
	}
	return picked, nil
}
