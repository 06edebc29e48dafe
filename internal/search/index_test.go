package search

import (
	"errors"
	"math"
	"testing"

	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/skill"

	"github.com/google/uuid"
)

func catalog(names ...string) []skill.Skill {
	out := make([]skill.Skill, 0, len(names))
	for _, n := range names {
		out = append(out, skill.Skill{ID: uuid.New(), Name: n})
	}
	return out
}

func TestIndex_Search_EmptyQuery(t *testing.T) {
	ix := NewIndex(catalog("Python", "Java"))
	for _, tc := range []struct {
		threshold float64
		limit     int
	}{
		{0, 10},
		{100, 1},
		{50, 0},
		{-5, -1},
		{math.NaN(), 3},
	} {
		for _, q := range []string{"", "   ", "\t"} {
			got, err := ix.Search(q, tc.threshold, tc.limit)
			if err != nil {
				t.Fatalf("q=%q t=%v n=%d: unexpected err %v", q, tc.threshold, tc.limit, err)
			}
			if len(got) != 0 {
				t.Fatalf("q=%q: expected no results, got %d", q, len(got))
			}
		}
	}
}

func TestIndex_Search_InvalidParams(t *testing.T) {
	ix := NewIndex(catalog("Python"))
	cases := []struct {
		name      string
		threshold float64
		limit     int
	}{
		{"zero limit", 50, 0},
		{"negative limit", 50, -3},
		{"threshold below range", -0.1, 5},
		{"threshold above range", 100.5, 5},
		{"nan threshold", math.NaN(), 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ix.Search("python", tc.threshold, tc.limit)
			if !errors.Is(err, domain.ErrInvalidQuery) {
				t.Fatalf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestIndex_Search_Misspelling(t *testing.T) {
	ix := NewIndex(catalog("PyTorch", "Python", "Java"))
	got, err := ix.Search("pyhton", 80, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Skill.Name != "Python" {
		t.Fatalf("expected only Python, got %+v", got)
	}
	if got[0].Score != 83.33 {
		t.Fatalf("expected 83.33, got %v", got[0].Score)
	}
}

func TestIndex_Search_OrderAndThreshold(t *testing.T) {
	ix := NewIndex(catalog("Ba", "Ab", "Zz"))

	got, err := ix.Search("a", 66.67, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results at inclusive threshold, got %d", len(got))
	}
	if got[0].Skill.Name != "Ab" || got[1].Skill.Name != "Ba" {
		t.Fatalf("expected ties ordered by name, got %s, %s", got[0].Skill.Name, got[1].Skill.Name)
	}
	if got[0].Score != got[1].Score {
		t.Fatalf("expected tied scores, got %v and %v", got[0].Score, got[1].Score)
	}

	limited, err := ix.Search("a", 0, 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(limited) != 1 || limited[0].Skill.Name != "Ab" {
		t.Fatalf("expected limit to keep the first ranked skill, got %+v", limited)
	}

	above, err := ix.Search("a", 66.68, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(above) != 0 {
		t.Fatalf("expected nothing above 66.68, got %d", len(above))
	}
}

func TestIndex_Search_Synonyms(t *testing.T) {
	ix := NewIndex(catalog("Java", "JavaScript", "Kubernetes", "Go"))

	got, err := ix.Search("JS", 100, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Skill.Name != "JavaScript" {
		t.Fatalf("expected JavaScript via alias, got %+v", got)
	}

	got, err = ix.Search("k8s", 90, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Skill.Name != "Kubernetes" {
		t.Fatalf("expected Kubernetes via alias, got %+v", got)
	}

	got, err = ix.Search("golang", 100, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Skill.Name != "Go" {
		t.Fatalf("expected Go via alias, got %+v", got)
	}
}

func TestIndex_SnapshotIsolation(t *testing.T) {
	skills := catalog("Python")
	ix := NewIndex(skills)
	skills[0].Name = "Cobol"

	got, err := ix.Search("python", 100, 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected index to keep its own copy of the catalog")
	}
}
