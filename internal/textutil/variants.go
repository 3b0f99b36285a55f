package textutil

import (
	"regexp"
	"strings"
)

var (
	punctPattern      = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	dashSpacePattern  = regexp.MustCompile(`-\s+`)
	spaceDashPattern  = regexp.MustCompile(`\s+-`)
	anyDashPattern    = regexp.MustCompile(`-`)
	spacedDashPattern = regexp.MustCompile(`\s*-\s*`)
)

// NameVariants produces the comparison forms of a media title. Directory
// names diverge from asset names in predictable ways (colons become dashes,
// apostrophes vanish, punctuation gets dropped), so both sides of a
// comparison are expanded into variants and cross-checked.
func NameVariants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	raw := []string{
		lower,
		strings.ReplaceAll(lower, "-", " "),
		strings.ReplaceAll(lower, ":", " "),
		strings.ReplaceAll(lower, "'", ""),
		strings.ReplaceAll(lower, ".", ""),
		strings.ReplaceAll(lower, "-", ""),
		punctPattern.ReplaceAllString(lower, ""),
		punctPattern.ReplaceAllString(lower, " "),
		whitespacePattern.ReplaceAllString(strings.ReplaceAll(lower, "-", ""), ""),
		// Colons in titles commonly appear in directory names as "-", " -",
		// "- ", or " - ". Normalize each spacing so either side matches.
		dashSpacePattern.ReplaceAllString(lower, " - "),
		spaceDashPattern.ReplaceAllString(lower, " - "),
		anyDashPattern.ReplaceAllString(lower, " - "),
		spacedDashPattern.ReplaceAllString(lower, " "),
	}

	variants := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		normalized := CollapseSpaces(v)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		variants = append(variants, normalized)
	}
	return variants
}

// VariantsOverlap reports whether any variant of a equals, contains, or is
// contained by any variant of b.
func VariantsOverlap(a, b []string) bool {
	for _, av := range a {
		for _, bv := range b {
			if av == bv || strings.Contains(av, bv) || strings.Contains(bv, av) {
				return true
			}
		}
	}
	return false
}

// FoldKey reduces a name to lowercase alphanumerics with no spacing. Two
// titles with equal fold keys are treated as the same title.
func FoldKey(name string) string {
	lower := strings.ToLower(strings.ReplaceAll(name, "-", ""))
	return whitespacePattern.ReplaceAllString(lower, "")
}

// CollapseSpaces trims the string and squeezes internal whitespace runs to a
// single space.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
