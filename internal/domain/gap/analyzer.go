package gap

import (
	"fmt"
	"sort"
	"strings"

	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/employee"
	"skill-matrix/internal/domain/rating"
	"skill-matrix/internal/domain/skill"

	"github.com/google/uuid"
)

// Requirement is the minimum rating a band expects for one skill.
type Requirement struct {
	ID         uuid.UUID
	Band       employee.Band
	SkillID    uuid.UUID
	SkillName  string
	Required   rating.Rating
	IsRequired bool
}

type RequirementKey struct {
	Band    employee.Band
	SkillID uuid.UUID
}

func (r Requirement) Key() RequirementKey {
	return RequirementKey{Band: r.Band, SkillID: r.SkillID}
}

// SkillGap compares a current rating with the band requirement. Current is
// nil when the employee never rated the skill; CurrentLevel is then 0 and
// the gap equals -RequiredLevel.
type SkillGap struct {
	SkillID       uuid.UUID
	SkillName     string
	Current       *rating.Rating
	CurrentLevel  int
	Required      rating.Rating
	RequiredLevel int
	Gap           int
	IsRequired    bool
}

func (g SkillGap) Below() bool { return g.Gap < 0 }

// Rated distinguishes "rated below requirement" from "never rated".
func (g SkillGap) Rated() bool { return g.Current != nil }

// ValidateRequirements checks that reqs describe a single band with at most
// one valid requirement per skill.
func ValidateRequirements(reqs []Requirement) error {
	seen := make(map[RequirementKey]struct{}, len(reqs))
	var band employee.Band
	for i, r := range reqs {
		if !r.Band.Valid() {
			return fmt.Errorf("%w: requirement %d band %q", employee.ErrInvalidBand, i, r.Band)
		}
		if i == 0 {
			band = r.Band
		} else if r.Band != band {
			return fmt.Errorf("%w: requirements span bands %s and %s", domain.ErrInvalidQuery, band, r.Band)
		}
		if r.SkillID == uuid.Nil {
			return fmt.Errorf("%w: requirement %d has no skill", domain.ErrInvalidQuery, i)
		}
		if _, err := rating.LevelOf(r.Required); err != nil {
			return err
		}
		if _, ok := seen[r.Key()]; ok {
			return fmt.Errorf("%w: band requirement band=%s skill=%s", domain.ErrDuplicateRecord, r.Band, r.SkillID)
		}
		seen[r.Key()] = struct{}{}
	}
	return nil
}

// Analyze returns one gap per requirement, most urgent first: ascending by
// gap, then skill name, then skill id. Skills without a requirement are not
// reported; interest records never count as a current rating.
func Analyze(records []skill.Record, reqs []Requirement) ([]SkillGap, error) {
	if err := ValidateRequirements(reqs); err != nil {
		return nil, err
	}
	set, err := skill.NewRecordSet(records...)
	if err != nil {
		return nil, err
	}
	current := set.CurrentBySkill()

	out := make([]SkillGap, 0, len(reqs))
	for _, req := range reqs {
		g := SkillGap{
			SkillID:       req.SkillID,
			SkillName:     req.SkillName,
			Required:      req.Required,
			RequiredLevel: req.Required.Level(),
			IsRequired:    req.IsRequired,
		}
		if rec, ok := current[req.SkillID]; ok && rec.Rated() {
			r := *rec.Rating
			g.Current = &r
			g.CurrentLevel = r.Level()
			if g.SkillName == "" {
				g.SkillName = rec.SkillName
			}
		}
		g.Gap = g.CurrentLevel - g.RequiredLevel
		out = append(out, g)
	}

	Sort(out)
	return out, nil
}

func Sort(gaps []SkillGap) {
	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].Gap != gaps[j].Gap {
			return gaps[i].Gap < gaps[j].Gap
		}
		ni, nj := strings.ToLower(gaps[i].SkillName), strings.ToLower(gaps[j].SkillName)
		if ni != nj {
			return ni < nj
		}
		return gaps[i].SkillID.String() < gaps[j].SkillID.String()
	})
}

type Summary struct {
	Total    int
	Below    int
	Met      int
	Exceeded int
	Unrated  int
}

func Summarize(gaps []SkillGap) Summary {
	s := Summary{Total: len(gaps)}
	for _, g := range gaps {
		switch {
		case g.Gap < 0:
			s.Below++
		case g.Gap == 0:
			s.Met++
		default:
			s.Exceeded++
		}
		if !g.Rated() {
			s.Unrated++
		}
	}
	return s
}
