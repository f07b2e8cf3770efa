// internal/scaffold/scaffold.go
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"slidr/internal/themes"
)

// New scaffolds a slide deck project: a project directory with a deck/
// subdirectory holding a starter markdown file and a theme.css seeded from
// the bundled default theme.
func New(projectDir, markdownName string) error {
	fmt.Println("Scaffolding new deck in:", projectDir)

	deckDir := filepath.Join(projectDir, "deck")
	if err := os.MkdirAll(deckDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", deckDir, err)
	}

	mdPath := filepath.Join(deckDir, markdownName)
	if err := os.WriteFile(mdPath, []byte(starterDeckContent), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", mdPath, err)
	}

	defaultCSS, err := themes.Builtin(themes.Default)
	if err != nil {
		return err
	}
	themePath := filepath.Join(deckDir, "theme.css")
	if err := os.WriteFile(themePath, []byte(defaultCSS), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", themePath, err)
	}

	fmt.Printf("✓ Created deck folder with %s and theme.css\n", markdownName)
	fmt.Println("You can now:")
	fmt.Println("  cd", projectDir)
	fmt.Println("  slidr build deck")
	fmt.Println("  slidr serve deck")
	return nil
}

const starterDeckContent = `# Slide 1
Your first slide content here.

---

# Slide 2
Your second slide content here.

---

# Slide 3
Your third slide content here.
`
