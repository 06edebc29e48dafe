package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/domain/skill"
	"skill-matrix/internal/search"
)

// Criterion asks for a skill by name, optionally at or above a rating.
type Criterion struct {
	SkillName string
	MinRating *rating.Rating
}

// Profile is one employee with the skill records they hold.
type Profile struct {
	Employee employee.Employee
	Records  []skill.Record
}

type CriterionMatch struct {
	Criterion Criterion
	Record    skill.Record
	Score     float64
}

type EmployeeMatch struct {
	Employee        employee.Employee
	MatchPercentage float64
	MeanScore       float64
	Matched         []CriterionMatch
	Unmatched       []Criterion
}

// Validate checks criteria and threshold without scoring anything.
func Validate(criteria []Criterion, threshold float64) error {
	if len(criteria) == 0 {
		return fmt.Errorf("%w: at least one criterion is required", domain.ErrInvalidQuery)
	}
	for i, c := range criteria {
		if search.NormalizeQuery(c.SkillName) == "" {
			return fmt.Errorf("%w: criterion %d has no skill name", domain.ErrInvalidQuery, i)
		}
		if c.MinRating != nil {
			if _, err := rating.LevelOf(*c.MinRating); err != nil {
				return err
			}
		}
	}
	return search.ValidateThreshold(threshold)
}

// MatchEmployees scores every profile against all criteria. Each criterion is
// matched only against the employee's own possessed skills; interest records
// never satisfy a criterion. Profiles that satisfy nothing are dropped.
// Results are ordered by match percentage, then mean similarity of the
// satisfied criteria, both descending, then employee id.
func MatchEmployees(criteria []Criterion, population []Profile, threshold float64) ([]EmployeeMatch, error) {
	if err := Validate(criteria, threshold); err != nil {
		return nil, err
	}

	queries := make([]search.QueryContext, len(criteria))
	for i, c := range criteria {
		queries[i] = search.ProcessQuery(c.SkillName)
	}

	out := make([]EmployeeMatch, 0)
	for _, p := range population {
		m := matchProfile(criteria, queries, p, threshold)
		if len(m.Matched) == 0 {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchPercentage != out[j].MatchPercentage {
			return out[i].MatchPercentage > out[j].MatchPercentage
		}
		if out[i].MeanScore != out[j].MeanScore {
			return out[i].MeanScore > out[j].MeanScore
		}
		return out[i].Employee.ID.String() < out[j].Employee.ID.String()
	})
	return out, nil
}

func matchProfile(criteria []Criterion, queries []search.QueryContext, p Profile, threshold float64) EmployeeMatch {
	res := EmployeeMatch{
		Employee:  p.Employee,
		Matched:   make([]CriterionMatch, 0, len(criteria)),
		Unmatched: make([]Criterion, 0),
	}

	var total float64
	for i, c := range criteria {
		rec, score, ok := bestRecord(queries[i], c.MinRating, p.Records, threshold)
		if !ok {
			res.Unmatched = append(res.Unmatched, c)
			continue
		}
		res.Matched = append(res.Matched, CriterionMatch{Criterion: c, Record: rec, Score: score})
		total += score
	}

	res.MatchPercentage = round2(float64(len(res.Matched)) / float64(len(criteria)) * 100)
	if len(res.Matched) > 0 {
		res.MeanScore = round2(total / float64(len(res.Matched)))
	}
	return res
}

// bestRecord picks the highest scoring record that clears the threshold and
// the rating floor. A better-named record that fails the floor does not hide
// a weaker-named one that passes it.
func bestRecord(qc search.QueryContext, floor *rating.Rating, records []skill.Record, threshold float64) (skill.Record, float64, bool) {
	var (
		best      skill.Record
		bestScore float64
		found     bool
	)
	for _, r := range records {
		if r.IsInterest {
			continue
		}
		if floor != nil && (!r.Rated() || !r.Rating.AtLeast(*floor)) {
			continue
		}
		score := qc.Score(r.SkillName)
		if score < threshold {
			continue
		}
		if !found || better(score, r, bestScore, best) {
			best, bestScore, found = r, score, true
		}
	}
	return best, bestScore, found
}

func better(score float64, r skill.Record, bestScore float64, best skill.Record) bool {
	if score != bestScore {
		return score > bestScore
	}
	ni, nj := strings.ToLower(r.SkillName), strings.ToLower(best.SkillName)
	if ni != nj {
		return ni < nj
	}
	return r.ID.String() < best.ID.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
