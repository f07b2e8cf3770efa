// internal/themes/themes.go
package themes

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed assets/*.css
var assets embed.FS

// ErrThemeNotFound indicates a named theme resolved to neither a built-in
// nor an existing CSS file. Silently falling back would hide author typos,
// so callers treat this as fatal for the build.
var ErrThemeNotFound = errors.New("theme not found")

// Default is the name of the bundled default theme.
const Default = "default"

// deckThemeFile is the conventional per-deck theme filename.
const deckThemeFile = "theme.css"

// builtinNames is the registry of bundled theme names, loaded once from the
// embedded assets and never mutated afterwards.
var builtinNames = loadBuiltinNames()

func loadBuiltinNames() []string {
	entries, err := assets.ReadDir("assets")
	if err != nil {
		// The bundle ships with the binary; a missing assets directory is a
		// packaging defect, not a runtime condition.
		panic(fmt.Sprintf("themes: embedded assets unreadable: %v", err))
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}

// Names returns the built-in theme names in sorted order.
func Names() []string {
	out := make([]string, len(builtinNames))
	copy(out, builtinNames)
	return out
}

// IsBuiltin reports whether name (with or without a .css suffix) identifies
// a bundled theme.
func IsBuiltin(name string) bool {
	name = strings.TrimSuffix(name, ".css")
	for _, n := range builtinNames {
		if n == name {
			return true
		}
	}
	return false
}

// Builtin reads a bundled theme by name.
func Builtin(name string) (string, error) {
	data, err := assets.ReadFile("assets/" + strings.TrimSuffix(name, ".css") + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: built-in %q", ErrThemeNotFound, name)
	}
	return string(data), nil
}

// Resolve picks exactly one CSS source for a build and returns its content.
// Precedence, highest first: the explicit override, the front matter theme,
// a theme.css inside the deck directory, the bundled default. An override or
// front matter value that names a missing theme is a hard error rather than
// a fallback.
func Resolve(override, frontMatterTheme, deckDir string) (string, error) {
	if override != "" {
		return resolveNamed(override, deckDir)
	}
	if frontMatterTheme != "" {
		return resolveNamed(frontMatterTheme, deckDir)
	}
	if data, err := os.ReadFile(filepath.Join(deckDir, deckThemeFile)); err == nil {
		return string(data), nil
	}
	return Builtin(Default)
}

// resolveNamed interprets a non-empty theme value: a built-in identifier
// first, otherwise a CSS file path tried relative to the deck directory and
// then as given (covering absolute paths).
func resolveNamed(name, deckDir string) (string, error) {
	if IsBuiltin(name) {
		return Builtin(name)
	}

	fileName := name
	if !strings.HasSuffix(fileName, ".css") {
		fileName += ".css"
	}
	for _, path := range []string{filepath.Join(deckDir, fileName), fileName} {
		if data, err := os.ReadFile(path); err == nil {
			return string(data), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
}
