// Package recommend maps detected gaps to the curated remediation
// library. Matching is purely declarative: no fuzzy matching, no
// generation, just criteria evaluation over a closed table.
package recommend

import (
	"sort"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

// Match collects the library templates eligible for any of the given
// gaps, de-duplicated by template id and sorted by priority (1 highest),
// ties broken by template id for stable output.
func Match(library []model.RecommendationTemplate, gapList []model.Gap, jurisdiction string) []model.Recommendation {
	byID := map[string]*model.Recommendation{}
	var order []string

	for i := range library {
		tpl := &library[i]
		for _, g := range gapList {
			if !eligible(tpl, &g, jurisdiction) {
				continue
			}
			rec, ok := byID[tpl.ID]
			if !ok {
				rec = &model.Recommendation{RecommendationTemplate: *tpl}
				byID[tpl.ID] = rec
				order = append(order, tpl.ID)
			}
			rec.Addresses = append(rec.Addresses, g.QuestionID)
		}
	}

	out := make([]model.Recommendation, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// eligible reports whether a template's criteria all hold for the gap.
// Absent criteria are wildcards; an empty jurisdiction list means the
// template applies everywhere.
func eligible(tpl *model.RecommendationTemplate, g *model.Gap, jurisdiction string) bool {
	if len(tpl.QuestionCodes) > 0 && !member(tpl.QuestionCodes, g.QuestionCode) {
		return false
	}
	if tpl.Pillar != "" && tpl.Pillar != g.Pillar {
		return false
	}
	if len(tpl.Severities) > 0 && !severityMember(tpl.Severities, g.Severity) {
		return false
	}
	if len(tpl.Jurisdictions) > 0 && !member(tpl.Jurisdictions, jurisdiction) {
		return false
	}
	return true
}

func member(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

func severityMember(list []model.Severity, v model.Severity) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
