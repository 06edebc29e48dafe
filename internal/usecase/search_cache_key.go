package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"skill-matrix/internal/search"
)

const (
	skillSearchKeyPrefix = "skills:search:"
	autoAssignLockKey    = "autoassign:lock"
)

type skillSearchCacheKeyInput struct {
	Query     string `json:"query"`
	Threshold string `json:"threshold"`
	Limit     int    `json:"limit"`
}

// SkillSearchCacheKey hashes the normalized query so that inputs differing
// only in case or spacing share an entry. The threshold is encoded exactly;
// scores carry two decimals, so a rounded threshold could serve results
// below the requested one.
func SkillSearchCacheKey(query string, threshold float64, limit int) string {
	in := skillSearchCacheKeyInput{
		Query:     search.NormalizeQuery(query),
		Threshold: strconv.FormatFloat(threshold, 'g', -1, 64),
		Limit:     limit,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return skillSearchKeyPrefix + hex.EncodeToString(sum[:])
}
