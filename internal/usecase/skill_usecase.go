package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill-matrix/internal/config"
	"skill-matrix/internal/domain"
	"skill-matrix/internal/domain/skill"
	"skill-matrix/internal/pkg/metrics"
	"skill-matrix/internal/pkg/tracing"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/search"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type CreateSkillInput struct {
	Name        string
	Description string
	Category    string
}

// SkillSearchParams leaves Threshold and Limit nil to use configured defaults.
type SkillSearchParams struct {
	Query     string
	Threshold *float64
	Limit     *int
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error)
	SearchSkills(ctx context.Context, params SkillSearchParams) ([]search.SkillMatch, error)
}

type Skill struct {
	repo     repository.SkillRepository
	cache    SearchCache
	metrics  *metrics.Metrics
	log      *zap.Logger
	matching config.MatchingConfig
}

func NewSkillUsecase(repo repository.SkillRepository, cache SearchCache, m *metrics.Metrics, log *zap.Logger, cfg config.MatchingConfig) *Skill {
	if log == nil {
		log = zap.NewNop()
	}
	return &Skill{repo: repo, cache: cache, metrics: m, log: log, matching: cfg}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		u.log.Error("list skills failed", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skill) CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error) {
	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" {
		return skill.Skill{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, skill.Skill{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) {
			return skill.Skill{}, ErrSkillAlreadyExists
		}
		u.log.Error("create skill failed", zap.String("name", name), zap.Error(err))
		return skill.Skill{}, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, skillSearchKeyPrefix+"*"); err != nil {
			u.log.Warn("skill search cache invalidation failed", zap.Error(err))
		}
	}
	return created, nil
}

func (u *Skill) resolveParams(p SkillSearchParams) (float64, int) {
	threshold := u.matching.DefaultThreshold
	if p.Threshold != nil {
		threshold = *p.Threshold
	}
	limit := u.matching.DefaultLimit
	if p.Limit != nil {
		limit = *p.Limit
	}
	return threshold, limit
}

// SearchSkills ranks the catalog against a free-text query. A blank query
// returns no results and skips every lookup.
func (u *Skill) SearchSkills(ctx context.Context, params SkillSearchParams) ([]search.SkillMatch, error) {
	ctx, span := tracing.Start(ctx, "usecase.SearchSkills")
	defer span.End()

	if search.NormalizeQuery(params.Query) == "" {
		return []search.SkillMatch{}, nil
	}
	threshold, limit := u.resolveParams(params)
	if err := search.ValidateParams(threshold, limit); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("query", params.Query),
		attribute.Float64("threshold", threshold),
		attribute.Int("limit", limit),
	)

	key := SkillSearchCacheKey(params.Query, threshold, limit)
	if u.cache != nil {
		var cached []search.SkillMatch
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			u.metrics.ObserveSearch(true)
			return cached, nil
		}
	}
	u.metrics.ObserveSearch(false)

	skills, err := u.repo.List(ctx)
	if err != nil {
		u.log.Error("load skill catalog failed", zap.Error(err))
		return nil, ErrInternal
	}

	out, err := search.NewIndex(skills).Search(params.Query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("search skills: %w", err)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, u.matching.SearchCacheTTL); err != nil {
			u.log.Warn("skill search cache write failed", zap.Error(err))
		}
	}
	return out, nil
}
