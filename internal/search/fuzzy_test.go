package search

import (
	"math/rand"
	"strings"
	"testing"
	"testing/quick"
)

func TestSimilarity_Identity(t *testing.T) {
	f := func(s string) bool {
		return Similarity(s, s) == MaxScore
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatalf("identity: %v", err)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	f := func(a, b string) bool {
		return Similarity(a, b) == Similarity(b, a)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatalf("symmetry: %v", err)
	}

	pairs := [][2]string{
		{"python django", "django"},
		{"Amazon Web Services", "aws"},
		{"node.js", "nodejs"},
		{"c++", "c#"},
	}
	for _, p := range pairs {
		if Similarity(p[0], p[1]) != Similarity(p[1], p[0]) {
			t.Fatalf("asymmetric for %q/%q", p[0], p[1])
		}
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	f := func(a, b string) bool {
		s := Similarity(a, b)
		return s >= MinScore && s <= MaxScore
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatalf("bounds: %v", err)
	}
}

func TestSimilarity_CaseAndWhitespace(t *testing.T) {
	if got := Similarity("  Python ", "python"); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := Similarity("Machine   Learning", "machine learning"); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestSimilarity_Misspelling(t *testing.T) {
	got := Similarity("Pyhton", "Python")
	if got < 80 {
		t.Fatalf("expected >= 80, got %v", got)
	}
	if got != 83.33 {
		t.Fatalf("expected 83.33, got %v", got)
	}
}

func TestSimilarity_EmptyAgainstNonEmpty(t *testing.T) {
	if got := Similarity("", "go"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Similarity("   ", "go"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestSimilarity_PunctuationOnly(t *testing.T) {
	if got := Similarity("!!!", "???"); got != 0 {
		t.Fatalf("expected 0 for different punctuation, got %v", got)
	}
	if got := Similarity("!!!", "!!!"); got != 100 {
		t.Fatalf("expected 100 for identical punctuation, got %v", got)
	}
	if got := Similarity("", " "); got != 100 {
		t.Fatalf("expected 100 for two blank inputs, got %v", got)
	}
	if got := Similarity("--", "go"); got != 0 {
		t.Fatalf("expected 0 against a word, got %v", got)
	}
}

func TestSimilarity_TokenOrder(t *testing.T) {
	if got := Similarity("learning machine", "machine learning"); got != 100 {
		t.Fatalf("expected token-sort match to score 100, got %v", got)
	}
	partial := Similarity("python django", "django")
	if partial < 80 || partial >= 100 {
		t.Fatalf("expected partial overlap in [80,100), got %v", partial)
	}
}

func TestSimilarity_MonotonicDegradation(t *testing.T) {
	const base = "kubernetes"
	prev := MaxScore + 1
	for k := 0; k <= len(base); k++ {
		mutated := strings.Repeat("z", k) + base[k:]
		got := Similarity(base, mutated)
		if got > prev {
			t.Fatalf("score rose from %v to %v at %d edits", prev, got, k)
		}
		prev = got
	}
	if prev != 0 {
		t.Fatalf("expected 0 after replacing every rune, got %v", prev)
	}
}

func TestSimilarity_MonotonicUnderSubstitution(t *testing.T) {
	const alphabet = "abcdefg "
	f := func(seed int64) bool {
		rnd := rand.New(rand.NewSource(seed))
		base := make([]byte, 4+rnd.Intn(10))
		for i := range base {
			base[i] = alphabet[rnd.Intn(len(alphabet))]
		}
		positions := make([]int, 0, len(base))
		for i, c := range base {
			if c != ' ' {
				positions = append(positions, i)
			}
		}
		rnd.Shuffle(len(positions), func(i, j int) {
			positions[i], positions[j] = positions[j], positions[i]
		})

		mutated := append([]byte(nil), base...)
		prev := Similarity(string(base), string(mutated))
		for _, p := range positions {
			mutated[p] = 'z'
			got := Similarity(string(base), string(mutated))
			if got > prev {
				t.Logf("%q: score rose from %v to %v at %q", base, prev, got, mutated)
				return false
			}
			prev = got
		}
		return true
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 2000}); err != nil {
		t.Fatalf("monotonic: %v", err)
	}
}

func TestSimilarity_RepeatedTokensDoNotInflateScore(t *testing.T) {
	cases := []struct {
		base, before, after string
	}{
		{"gb be bf eb", "gz be zz eb", "zz be zz eb"},
		{"ebbf gg aafb", "zzzf gg zzzz", "zzzz gg zzzz"},
	}
	for _, tc := range cases {
		before := Similarity(tc.base, tc.before)
		after := Similarity(tc.base, tc.after)
		if after > before {
			t.Fatalf("%q: score rose from %v (%q) to %v (%q)", tc.base, before, tc.before, after, tc.after)
		}
	}
}
