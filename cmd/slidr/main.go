// cmd/slidr/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"slidr/internal/builder"
	"slidr/internal/scaffold"
	"slidr/internal/server"
	"slidr/internal/themes"
)

func main() {
	flag.Usage = printHelp
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return nil
	}

	switch args[0] {
	case "build":
		cmd := flag.NewFlagSet("build", flag.ExitOnError)
		output := cmd.String("o", "", "Output HTML file path. Defaults to index.html in the deck directory.")
		theme := cmd.String("t", "", "Theme override: a built-in theme name or a CSS file path.")
		unsafe := cmd.Bool("unsafe", false, "Disable HTML sanitization. Allows all raw HTML.")
		cmd.Usage = func() {
			fmt.Println("Usage: slidr build [options] [deck]")
			fmt.Println("\nBuild a standalone HTML slide deck from the markdown in the deck directory.")
			fmt.Println("\nOptions:")
			cmd.PrintDefaults()
		}
		cmd.Parse(args[1:])
		return builder.Build(deckArg(cmd), builder.BuildOptions{
			Theme:  *theme,
			Output: *output,
			Unsafe: *unsafe,
		})

	case "serve":
		cmd := flag.NewFlagSet("serve", flag.ExitOnError)
		port := cmd.Int("p", 8000, "Port for the local preview server.")
		theme := cmd.String("t", "", "Theme override: a built-in theme name or a CSS file path.")
		unsafe := cmd.Bool("unsafe", false, "Disable HTML sanitization. Allows all raw HTML.")
		cmd.Usage = func() {
			fmt.Println("Usage: slidr serve [options] [deck]")
			fmt.Println("\nServe the deck with live reload, rebuilding on every change.")
			fmt.Println("\nOptions:")
			cmd.PrintDefaults()
		}
		cmd.Parse(args[1:])
		return server.Run(deckArg(cmd), *port, builder.BuildOptions{
			Theme:  *theme,
			Unsafe: *unsafe,
		})

	case "new":
		cmd := flag.NewFlagSet("new", flag.ExitOnError)
		markdown := cmd.String("m", "deck.md", "Name of the markdown file.")
		cmd.Usage = func() {
			fmt.Println("Usage: slidr new [options] <project>")
			fmt.Println("\nInitialize a new slide deck project.")
			fmt.Println("\nOptions:")
			cmd.PrintDefaults()
		}
		cmd.Parse(args[1:])
		if cmd.NArg() == 0 {
			cmd.Usage()
			return fmt.Errorf("missing project directory name")
		}
		return scaffold.New(cmd.Arg(0), *markdown)

	case "themes":
		fmt.Println("Available built-in themes:")
		for _, name := range themes.Names() {
			fmt.Println("  -", name)
		}
		fmt.Println("\nUse with: slidr build -t", themes.Default)
		return nil

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// deckArg returns the deck directory argument, defaulting to the current
// directory like the rest of the tool.
func deckArg(cmd *flag.FlagSet) string {
	if cmd.NArg() > 0 {
		return cmd.Arg(0)
	}
	return "."
}

func printHelp() {
	fmt.Println("slidr - build HTML slide decks from markdown")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  slidr <command> [options] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  build [deck]       Build a standalone HTML deck. Use 'slidr build -h' for options.")
	fmt.Println("  serve [deck]       Serve the deck with auto-rebuild and live reload")
	fmt.Println("  new <project>      Create a new deck project scaffold")
	fmt.Println("  themes             List built-in themes")
}
