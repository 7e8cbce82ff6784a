package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/book-catalog/seed"
	"github.com/rs/zerolog"
)

/* validate-seed - Standalone CLI tool to validate a seed file offline
 * Usage: go run cmd/validate-seed/main.go [seed.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	seedFile := "seed.yaml"
	if len(os.Args) > 1 {
		seedFile = os.Args[1]
	}

	fmt.Printf("Validating seed file: %s\n", seedFile)
	fmt.Println(strings.Repeat("-", 50))

	loader := seed.NewLoader(zerolog.Nop())
	if err := loader.Load(seedFile); err != nil {
		fmt.Fprintf(os.Stderr, "VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	authors := loader.Authors()
	fmt.Printf("VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d author(s) and %d book(s):\n", len(authors), loader.BookCount())

	for i, a := range authors {
		fmt.Printf("\n%d. %s\n", i+1, a.Name)
		if a.BirthDate != "" || a.DateOfDeath != "" {
			fmt.Printf("   Lived: %s - %s\n", a.BirthDate, a.DateOfDeath)
		}
		for _, b := range a.Books {
			year := b.PublicationYear
			if year == "" {
				year = "-"
			}
			fmt.Printf("   - %s [%s] (%s)\n", b.Title, b.ISBN, year)
		}
	}
}
