package library

import (
	"os"
	"path/filepath"
	"strings"

	"assetassist/internal/textutil"
)

// FindTitleYear resolves a "Title (Year)" asset to a directory name. The
// ladder is: exact directory name, variant cross-product against entries with
// the same year, then fold-key equality. Used for movie posters, where the
// year is a hard gate.
func (x *Index) FindTitleYear(title, year string) (string, bool) {
	if !x.Available() || title == "" {
		return "", false
	}

	exact := title + " (" + year + ")"
	for _, entry := range x.Entries() {
		if entry.Name == exact {
			return entry.Name, true
		}
	}

	titleVariants := textutil.NameVariants(title)
	for _, entry := range x.Entries() {
		if !entry.HasYear() || entry.Year != year {
			continue
		}
		if textutil.VariantsOverlap(titleVariants, textutil.NameVariants(entry.Title)) {
			return entry.Name, true
		}
	}

	// Fold-key fallback catches spacing and punctuation drift the variant
	// ladder misses.
	fold := textutil.FoldKey(title)
	for _, entry := range x.Entries() {
		if entry.HasYear() && entry.Year == year && textutil.FoldKey(entry.Title) == fold {
			return entry.Name, true
		}
	}
	return "", false
}

// FindShow resolves a show title to a directory name. Year-matched variant
// candidates win; otherwise any variant overlap qualifies, with US editions
// preferred among multiple hits. Mirrors how show directories drift from
// asset names ("The Office" vs "The Office (US) (2005)").
func (x *Index) FindShow(title, year string) (string, bool) {
	if !x.Available() || title == "" {
		return "", false
	}

	if year != "" {
		expected := title + " (" + year + ")"
		if info, err := os.Stat(filepath.Join(x.root, expected)); err == nil && info.IsDir() {
			return expected, true
		}
	}

	titleVariants := textutil.NameVariants(title)

	if year != "" {
		for _, entry := range x.Entries() {
			if !entry.HasYear() || entry.Year != year {
				continue
			}
			entryVariants := textutil.NameVariants(entry.Title)
			for _, tv := range titleVariants {
				for _, ev := range entryVariants {
					if tv == ev {
						return entry.Name, true
					}
				}
			}
		}
	}

	var candidates []string
	for _, entry := range x.Entries() {
		if !entry.HasYear() {
			continue
		}
		if textutil.VariantsOverlap(titleVariants, textutil.NameVariants(entry.Title)) {
			candidates = append(candidates, entry.Name)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return preferUSEdition(candidates), true
}

// FindFuzzy resolves a bare title with no year: exact name match first, then
// substring containment, US editions preferred in both tiers, finally the
// best fingerprint match. Used for episode cards, whose filenames rarely
// carry a year.
func (x *Index) FindFuzzy(title string) (string, bool) {
	if !x.Available() || title == "" {
		return "", false
	}
	needle := strings.ToLower(strings.TrimSpace(title))

	var exact, partial []string
	for _, entry := range x.Entries() {
		name := strings.ToLower(strings.TrimSpace(strings.SplitN(entry.Name, "(", 2)[0]))
		switch {
		case name == needle:
			exact = append(exact, entry.Name)
		case strings.Contains(name, needle):
			partial = append(partial, entry.Name)
		}
	}
	if len(exact) > 0 {
		return preferUSEdition(exact), true
	}
	if len(partial) > 0 {
		return preferUSEdition(partial), true
	}
	return x.BestMatch(title)
}

// bestMatchThreshold rejects fingerprint matches with less than half their
// weight in common; below this the "match" is usually a different title
// sharing one word.
const bestMatchThreshold = 0.5

// BestMatch ranks all entries against the title by cosine similarity of term
// fingerprints and returns the best scoring entry above the acceptance
// threshold.
func (x *Index) BestMatch(title string) (string, bool) {
	if !x.Available() {
		return "", false
	}
	target := textutil.NewFingerprint(title)
	if target == nil {
		return "", false
	}

	bestScore := 0.0
	bestName := ""
	for _, entry := range x.Entries() {
		score := textutil.CosineSimilarity(target, textutil.NewFingerprint(entry.Title))
		if score > bestScore {
			bestScore = score
			bestName = entry.Name
		}
	}
	if bestScore < bestMatchThreshold {
		return "", false
	}
	return bestName, true
}

// FindCollection resolves a collection asset base name ("Alien Collection")
// to a directory. Comparison strips the word "collection" from both sides
// and then tries equality, containment, and punctuation-free equality.
func (x *Index) FindCollection(fileBase string) (string, bool) {
	if !x.Available() {
		return "", false
	}
	fileNorm := collectionKey(fileBase)
	fileClean := textutil.FoldKey(fileNorm)
	fileHasWord := containsCollection(fileBase)

	for _, entry := range x.Entries() {
		dirNorm := collectionKey(entry.Name)
		dirClean := textutil.FoldKey(dirNorm)
		dirHasWord := containsCollection(entry.Name)

		switch {
		case fileNorm == dirNorm,
			fileNorm != "" && dirNorm != "" && (strings.Contains(dirNorm, fileNorm) || strings.Contains(fileNorm, dirNorm)),
			fileClean != "" && fileClean == dirClean,
			dirHasWord && fileClean != "" && strings.Contains(dirClean, fileClean),
			fileHasWord && dirClean != "" && strings.Contains(fileClean, dirClean):
			return entry.Name, true
		}
	}
	return "", false
}

func collectionKey(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	return textutil.CollapseSpaces(strings.ReplaceAll(lower, "collection", ""))
}

func containsCollection(s string) bool {
	return strings.Contains(strings.ToLower(s), "collection")
}

// preferUSEdition picks the "(US)" or "(USA)" entry when present, otherwise
// the first candidate.
func preferUSEdition(candidates []string) string {
	for _, name := range candidates {
		if strings.Contains(name, "(US)") || strings.Contains(name, "(USA)") {
			return name
		}
	}
	return candidates[0]
}
