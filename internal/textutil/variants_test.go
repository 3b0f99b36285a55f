package textutil_test

import (
	"testing"

	"assetassist/internal/textutil"
)

func TestNameVariantsCoversColonAndDashForms(t *testing.T) {
	variants := textutil.NameVariants("Mission: Impossible - Fallout")
	if len(variants) == 0 {
		t.Fatal("expected variants")
	}
	want := map[string]bool{
		"mission: impossible - fallout": false,
		"mission impossible fallout":    false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for form, found := range want {
		if !found {
			t.Fatalf("missing variant %q in %v", form, variants)
		}
	}
}

func TestNameVariantsDeduplicates(t *testing.T) {
	variants := textutil.NameVariants("Alien")
	seen := map[string]int{}
	for _, v := range variants {
		seen[v]++
		if seen[v] > 1 {
			t.Fatalf("duplicate variant %q", v)
		}
	}
	if len(variants) != 1 {
		t.Fatalf("expected a single variant for a plain title, got %v", variants)
	}
}

func TestVariantsOverlapMatchesApostropheDrop(t *testing.T) {
	a := textutil.NameVariants("Ocean's Eleven")
	b := textutil.NameVariants("Oceans Eleven")
	if !textutil.VariantsOverlap(a, b) {
		t.Fatalf("expected overlap between %v and %v", a, b)
	}
}

func TestVariantsOverlapRejectsDisjointTitles(t *testing.T) {
	a := textutil.NameVariants("Severance")
	b := textutil.NameVariants("The Bear")
	if textutil.VariantsOverlap(a, b) {
		t.Fatal("expected no overlap for unrelated titles")
	}
}

func TestFoldKey(t *testing.T) {
	if got := textutil.FoldKey("Spider-Man: No Way Home"); got != "spiderman:nowayhome" {
		t.Fatalf("unexpected fold key %q", got)
	}
	if textutil.FoldKey("WALL-E") != textutil.FoldKey("WALL E") {
		t.Fatal("expected dash and space forms to fold identically")
	}
}

func TestCosineSimilarityRanksCloserTitleHigher(t *testing.T) {
	target := textutil.NewFingerprint("Planet of the Apes")
	near := textutil.NewFingerprint("Dawn of the Planet of the Apes")
	far := textutil.NewFingerprint("Paddington in Peru")

	if got := textutil.CosineSimilarity(target, near); got <= textutil.CosineSimilarity(target, far) {
		t.Fatalf("expected closer candidate to score higher, got %f", got)
	}
}

func TestCosineSimilarityNilSafe(t *testing.T) {
	if got := textutil.CosineSimilarity(nil, textutil.NewFingerprint("x y")); got != 0 {
		t.Fatalf("expected 0 for nil fingerprint, got %f", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := textutil.SanitizeFileName("a/b:c?.jpg"); got != "a-b-c.jpg" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
	if got := textutil.SanitizeFileName("   "); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}
