package interpolation

import (
	"regexp"
	"sort"
)

// Style is a placeholder syntax recognized inside message ids.
type Style string

const (
	StyleTemplate Style = "template" // ${value}
	StyleBrace    Style = "brace"    // {0}, {name}
	StylePrintf   Style = "printf"   // %d, %s, %2$s
)

// Placeholder is one interpolation variable found in a message.
type Placeholder struct {
	Text  string
	Style Style
	Start int
	End   int
}

type pattern struct {
	re    *regexp.Regexp
	style Style
}

// patterns to detect interpolation variables in message ids.
var patterns = []pattern{
	{regexp.MustCompile(`\$\{[a-zA-Z_][a-zA-Z0-9_]*\}`), StyleTemplate},
	{regexp.MustCompile(`\{[0-9]+\}|\{[a-zA-Z_][a-zA-Z0-9_]*\}`), StyleBrace},
	{regexp.MustCompile(`%(?:[0-9]+\$)?[-+0#]*[0-9]*(?:\.[0-9]+)?[dsfieEgGxXoujc]`), StylePrintf},
}

// escapedPercent is %% and never a placeholder.
var escapedPercent = regexp.MustCompile(`%%`)

// Find returns the placeholders in text ordered by position. Where matches
// overlap the earliest, then longest, wins.
func Find(text string) []Placeholder {
	var all []Placeholder
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			all = append(all, Placeholder{
				Text:  text[loc[0]:loc[1]],
				Style: p.style,
				Start: loc[0],
				End:   loc[1],
			})
		}
	}
	escaped := escapedPercent.FindAllStringIndex(text, -1)
	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End-all[i].Start > all[j].End-all[j].Start
	})

	var filtered []Placeholder
	lastEnd := -1
	for _, m := range all {
		if m.Start < lastEnd || insideEscape(m, escaped) {
			continue
		}
		filtered = append(filtered, m)
		lastEnd = m.End
	}
	return filtered
}

// insideEscape reports whether a printf match starts on the second percent
// of a %% pair, as in "100%%d".
func insideEscape(m Placeholder, escaped [][]int) bool {
	if m.Style != StylePrintf {
		return false
	}
	for _, loc := range escaped {
		if m.Start == loc[0] || m.Start == loc[0]+1 {
			return true
		}
	}
	return false
}

// Flags returns the gettext format flags that apply to text.
func Flags(text string) []string {
	var printf, brace bool
	for _, p := range Find(text) {
		switch p.Style {
		case StylePrintf:
			printf = true
		case StyleBrace:
			brace = true
		}
	}
	var flags []string
	if printf {
		flags = append(flags, "javascript-format")
	}
	if brace {
		flags = append(flags, "python-brace-format")
	}
	return flags
}
