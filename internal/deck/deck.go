// internal/deck/deck.go
package deck

import (
	"log"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// separator matches a horizontal-rule line used both as the front matter
// delimiter and as a slide break: three or more hyphens alone on a line,
// surrounding whitespace ignored.
var separator = regexp.MustCompile(`^\s*-{3,}\s*$`)

// DefaultTitle is used when front matter carries no title.
const DefaultTitle = "Slide Deck"

// FrontMatter holds the recognized deck settings from the leading YAML block.
// Unrecognized keys are collected in Params and ignored downstream.
type FrontMatter struct {
	Theme         string                 `yaml:"theme"`
	Title         string                 `yaml:"title"`
	Align         string                 `yaml:"align"`
	CodeHighlight string                 `yaml:"code_highlight"`
	Params        map[string]interface{} `yaml:",inline"`
}

// Settings are the normalized display options handed to the deck template.
// Highlight is the chroma style name, or empty when highlighting is disabled.
type Settings struct {
	Title     string
	Align     string
	Highlight string
}

// Extract isolates a leading front matter block from text. The block must
// open with a separator on the very first line and close with a separator on
// its own line; everything between is parsed as YAML. A stray opening
// separator with no closing one, or a block that fails to parse, is treated
// as no front matter and the original text is returned untouched, so a
// document that merely starts with a horizontal rule is not misread.
func Extract(text string) (FrontMatter, string) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || !separator.MatchString(lines[0]) {
		return FrontMatter{}, text
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if separator.MatchString(lines[i]) {
			closing = i
			break
		}
	}
	if closing < 0 {
		return FrontMatter{}, text
	}

	var fm FrontMatter
	block := strings.Join(lines[1:closing], "\n")
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		log.Printf("Warning: ignoring malformed front matter: %v", err)
		return FrontMatter{}, text
	}
	return fm, strings.Join(lines[closing+1:], "\n")
}

// Split segments body text into slides on separator lines. Each segment is
// trimmed; segments that are empty after trimming are dropped, so a trailing
// separator never produces a phantom blank slide. A body with no separators
// yields a single slide. The split is pure text processing: a separator
// inside a fenced code block still counts as a slide break.
func Split(body string) []string {
	var slides []string
	var current []string

	flush := func() {
		s := strings.TrimSpace(strings.Join(current, "\n"))
		if s != "" {
			slides = append(slides, s)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		if separator.MatchString(line) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return slides
}

// Settings normalizes the display-related front matter fields, applying
// defaults and warning on values outside the accepted set.
func (fm FrontMatter) Settings() Settings {
	s := Settings{Title: DefaultTitle, Align: "left"}

	if t := strings.TrimSpace(fm.Title); t != "" {
		s.Title = t
	}

	if fm.Align != "" {
		align := strings.ToLower(strings.TrimSpace(fm.Align))
		switch align {
		case "left", "center", "right":
			s.Align = align
		default:
			log.Printf("Warning: invalid align %q in front matter, using %q", align, s.Align)
		}
	}

	s.Highlight = normalizeHighlight(fm.CodeHighlight)
	return s
}

// normalizeHighlight maps the code_highlight field to a chroma style name.
// Empty values and the usual "off" spellings disable highlighting; anything
// else is passed through as-is and chroma falls back softly if unknown.
func normalizeHighlight(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	switch strings.ToLower(v) {
	case "off", "false", "no", "none":
		return ""
	}
	return v
}
