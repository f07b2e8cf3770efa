// internal/builder/models.go
package builder

import "html/template"

// BuildOptions carries the per-invocation switches shared by the build and
// serve commands.
type BuildOptions struct {
	Theme  string // explicit theme override from the command line
	Output string // output file path; empty means index.html in the deck dir
	Unsafe bool   // disable HTML sanitization, allowing all raw HTML
}

// DeckData is the aggregate handed to the deck template: the rendered slide
// fragments in source order, the resolved CSS, and the display settings.
// CSS is typed template.CSS so the style content is injected literally and
// never entity-escaped, which would corrupt quoted font names.
type DeckData struct {
	Title  string
	Align  string
	CSS    template.CSS
	Slides []template.HTML
}
