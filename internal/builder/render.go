// internal/builder/render.go
package builder

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"log"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gohugoio/hugo-goldmark-extensions/passthrough"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// slideRenderer converts one slide's markdown into an HTML fragment. Each
// slide is converted independently; no parser state carries across slides.
type slideRenderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// newSlideRenderer builds a goldmark instance for one build. Highlighting is
// class-based so the colors come from a stylesheet appended to the theme CSS
// rather than inline style attributes.
func newSlideRenderer(highlight, unsafe bool) *slideRenderer {
	extenders := []goldmark.Extender{
		extension.GFM,
		extension.Footnote,
		// TeX between dollar delimiters must reach the browser untouched so
		// MathJax can typeset it; markdown escape handling would otherwise
		// eat backslashes inside formulas.
		passthrough.New(passthrough.Config{
			InlineDelimiters: []passthrough.Delimiters{{Open: "$", Close: "$"}},
			BlockDelimiters:  []passthrough.Delimiters{{Open: "$$", Close: "$$"}},
		}),
	}
	if highlight {
		extenders = append(extenders, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	r := &slideRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extenders...),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}

	if !unsafe {
		policy := bluemonday.UGCPolicy()
		// Highlighted code arrives as class-tagged spans; both must survive
		// sanitization or every code block renders unstyled.
		policy.AllowElements("span")
		policy.AllowAttrs("class").Globally()
		r.sanitizer = policy
	}
	return r
}

// render converts one slide to HTML. A conversion failure degrades to the
// escaped source in a <pre> block instead of aborting the remaining slides.
func (r *slideRenderer) render(src string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		log.Printf("Warning: slide failed to render, keeping raw text: %v", err)
		buf.Reset()
		buf.WriteString("<pre>")
		buf.WriteString(stdhtml.EscapeString(src))
		buf.WriteString("</pre>\n")
	}
	if r.sanitizer != nil {
		return string(r.sanitizer.SanitizeBytes(buf.Bytes()))
	}
	return buf.String()
}

// highlightCSS generates the stylesheet matching the configured chroma style,
// plus a fix so code lines are not boxed individually inside slides. Unknown
// style names resolve to chroma's fallback style rather than failing.
func highlightCSS(styleName string) (string, error) {
	style := styles.Get(styleName)

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("failed to generate highlight CSS: %w", err)
	}
	buf.WriteString("\npre code { display: block; padding: 0; border-radius: 0; line-height: 1.4; }\n")
	return buf.String(), nil
}
