// Package ydk reads and writes the line-oriented deck list format:
// section markers #main, #extra and !side followed by one numeric card
// id per line.
package ydk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kyamashiro/ygo-companion/internal/deck"
)

// toolName is written to the leading comment line on export.
const toolName = "ygo-companion"

// Result holds the card ids parsed from a deck list, per zone.
type Result struct {
	Main  []int
	Extra []int
	Side  []int

	// Warnings lists non-numeric lines skipped inside a section.
	// Skipping is silent at the parse level; callers may surface
	// these.
	Warnings []string
}

// Parse reads a deck list. Section markers are matched
// case-insensitively; blank lines and any other line starting with
// '#' or '!' are ignored; non-numeric lines within a section are
// skipped. Lines before the first marker belong to no section and are
// dropped.
func Parse(input string) *Result {
	result := &Result{
		Main:  []int{},
		Extra: []int{},
		Side:  []int{},
	}

	var current *[]int
	for i, raw := range strings.Split(input, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "#main":
			current = &result.Main
			continue
		case "#extra":
			current = &result.Extra
			continue
		case "!side":
			current = &result.Side
			continue
		}

		// Comments and unknown markers.
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		if current == nil {
			continue
		}

		id, err := strconv.Atoi(line)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: skipped non-numeric entry %q", i+1, line))
			continue
		}
		*current = append(*current, id)
	}

	return result
}

// Export renders a deck to the text format with fixed-case markers and
// a leading creator comment. Zone order and per-zone card order are
// preserved, so Parse(Export(d)) reproduces the same id sequences.
func Export(d *deck.Deck) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#created by %s\n", toolName)

	b.WriteString("#main\n")
	writeZone(&b, d.Main)
	b.WriteString("#extra\n")
	writeZone(&b, d.Extra)
	b.WriteString("!side\n")
	writeZone(&b, d.Side)

	return b.String()
}

func writeZone(b *strings.Builder, entries []deck.Entry) {
	for _, e := range entries {
		b.WriteString(strconv.Itoa(e.Card.ID))
		b.WriteByte('\n')
	}
}
