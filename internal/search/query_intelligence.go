package search

import (
	"sort"
	"strings"
	"unicode"
)

const maxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lowercases, trims and collapses whitespace. Letters, digits
// and the symbols that carry meaning in skill names (c++, c#, node.js, ci/cd)
// are kept; any other rune is treated as a separator.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	input = strings.ToLower(input)

	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false

	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '+' || r == '#' || r == '.' {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if b.Len() == 0 || lastWasSpace {
			continue
		}
		b.WriteByte(' ')
		lastWasSpace = true
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandQuery returns the normalized query followed by alias variants.
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)

	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	// A compact single token may be a spaced alias key: "cicd" -> "ci cd".
	words := strings.Fields(normalized)
	if len(words) == 1 {
		keys := make([]string, 0, len(Synonyms))
		for k := range Synonyms {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !strings.Contains(k, " ") || strings.ReplaceAll(k, " ", "") != words[0] {
				continue
			}
			add(k)
			for _, syn := range Synonyms[k] {
				add(syn)
			}
			break
		}
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	ctx := QueryContext{Original: input}
	ctx.Normalized = NormalizeQuery(input)
	if ctx.Normalized == "" {
		ctx.Variants = []string{}
		return ctx
	}
	ctx.Variants = ExpandQuery(ctx.Normalized)
	return ctx
}
