package model

import (
	"sort"

	"golang.org/x/text/language"
)

// PromptIn returns the question prompt best matching the requested BCP-47
// locale. Falls back to the default prompt when no translation matches or
// the locale does not parse.
func (q *Question) PromptIn(locale string) string {
	if len(q.Translations) == 0 || locale == "" {
		return q.Prompt
	}

	want, err := language.Parse(locale)
	if err != nil {
		return q.Prompt
	}

	// Sorted for deterministic matcher tie-breaking.
	sorted := make([]string, 0, len(q.Translations))
	for k := range q.Translations {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	tags := make([]language.Tag, 0, len(sorted))
	keys := make([]string, 0, len(sorted))
	for _, k := range sorted {
		t, perr := language.Parse(k)
		if perr != nil {
			continue
		}
		tags = append(tags, t)
		keys = append(keys, k)
	}
	if len(tags) == 0 {
		return q.Prompt
	}

	matcher := language.NewMatcher(tags)
	_, idx, conf := matcher.Match(want)
	if conf == language.No {
		return q.Prompt
	}
	return q.Translations[keys[idx]]
}
