package search

import "sort"

// Synonyms maps a normalized skill alias to the catalog spellings it stands for.
var Synonyms = map[string][]string{
	"js":       {"javascript"},
	"ts":       {"typescript"},
	"golang":   {"go"},
	"k8s":      {"kubernetes"},
	"postgres": {"postgresql"},
	"psql":     {"postgresql"},
	"aws":      {"amazon web services"},
	"gcp":      {"google cloud platform", "google cloud"},
	"ml":       {"machine learning"},
	"ai":       {"artificial intelligence"},
	"ci cd":    {"continuous integration", "continuous delivery"},
	"node":     {"node.js", "nodejs"},
	"react js": {"react"},
}

// GetSynonyms returns aliases for a normalized term in either direction.
func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	out := make([]string, 0, 4)
	if v, ok := Synonyms[query]; ok {
		out = append(out, v...)
	}
	reverse := make([]string, 0, 2)
	for k, vs := range Synonyms {
		for _, v := range vs {
			if v == query && k != query {
				reverse = append(reverse, k)
			}
		}
	}
	sort.Strings(reverse)
	return append(out, reverse...)
}
