package search

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/skill"
)

type SkillMatch struct {
	Skill skill.Skill
	Score float64
}

// Index is a read-only snapshot of the skill catalog. Callers build a new
// one when the catalog changes; an Index is safe for concurrent use.
type Index struct {
	skills []skill.Skill
}

func NewIndex(skills []skill.Skill) *Index {
	cp := make([]skill.Skill, len(skills))
	copy(cp, skills)
	return &Index{skills: cp}
}

func (ix *Index) Len() int {
	return len(ix.skills)
}

// ValidateParams checks threshold and limit the way Search does.
func ValidateParams(threshold float64, limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidQuery, limit)
	}
	return ValidateThreshold(threshold)
}

func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < MinScore || threshold > MaxScore {
		return fmt.Errorf("%w: threshold must be within [0,100], got %v", domain.ErrInvalidQuery, threshold)
	}
	return nil
}

// Search ranks catalog skills against query. Only skills scoring at least
// threshold are returned, best first, ties by name then id. A blank query
// yields no results regardless of threshold and limit.
func (ix *Index) Search(query string, threshold float64, limit int) ([]SkillMatch, error) {
	qc := ProcessQuery(query)
	if qc.Normalized == "" {
		return []SkillMatch{}, nil
	}
	if err := ValidateParams(threshold, limit); err != nil {
		return nil, err
	}

	out := make([]SkillMatch, 0)
	for _, s := range ix.skills {
		score := qc.Score(s.Name)
		if score < threshold {
			continue
		}
		out = append(out, SkillMatch{Skill: s, Score: score})
	}

	SortMatches(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Score is the best similarity between any query variant and name.
func (qc QueryContext) Score(name string) float64 {
	best := MinScore
	for _, v := range qc.Variants {
		s := Similarity(v, name)
		if s > best {
			best = s
		}
		if best == MaxScore {
			break
		}
	}
	return best
}

func SortMatches(ms []SkillMatch) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Score != ms[j].Score {
			return ms[i].Score > ms[j].Score
		}
		ni, nj := strings.ToLower(ms[i].Skill.Name), strings.ToLower(ms[j].Skill.Name)
		if ni != nj {
			return ni < nj
		}
		return ms[i].Skill.ID.String() < ms[j].Skill.ID.String()
	})
}
