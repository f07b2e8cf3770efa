// internal/builder/template.go
package builder

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

// deckTemplateSrc is the single-page deck layout, navigation script
// included. It ships with the binary and is parsed once at startup.
//
//go:embed assets/deck.html
var deckTemplateSrc string

var deckTemplate = template.Must(template.New("deck").Parse(deckTemplateSrc))

// renderDeck assembles the final standalone HTML document.
func renderDeck(data DeckData) (string, error) {
	var buf bytes.Buffer
	if err := deckTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render deck template: %w", err)
	}
	return buf.String(), nil
}
