// Package template builds questionnaire templates from the catalog for a
// given organization profile.
package template

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/catalog"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
)

// Build filters the catalog by the profile's jurisdiction and listing
// status and groups the result into pillar sections. Deterministic given
// the same catalog and profile; only the CreatedAt stamp varies.
//
// Catalog integrity problems (dangling or cyclic rule dependencies)
// degrade gracefully: they are logged as warnings and the affected rules
// become never-satisfiable, so catalog edits cannot take template
// generation offline.
func Build(cat *catalog.Catalog, profile *model.OrgProfile) *model.Template {
	return BuildAt(cat, profile, time.Now().UTC())
}

// BuildAt is Build with an explicit creation timestamp.
func BuildAt(cat *catalog.Catalog, profile *model.OrgProfile, now time.Time) *model.Template {
	log := zap.L().With(
		zap.String("jurisdiction", profile.Jurisdiction),
		zap.String("listing_status", profile.ListingStatus),
	)

	var applicable []model.Question
	for i := range cat.Questions {
		if cat.Questions[i].AppliesTo(profile.Jurisdiction, profile.ListingStatus) {
			applicable = append(applicable, cat.Questions[i])
		}
	}

	checkDependencies(applicable, log)

	t := &model.Template{
		Version:        fmt.Sprintf("%s/%s/%s", cat.Version, profile.Jurisdiction, profile.ListingStatus),
		CatalogVersion: cat.Version,
		Jurisdiction:   profile.Jurisdiction,
		ListingStatus:  profile.ListingStatus,
		CreatedAt:      now,
	}

	// Canonical pillar order; pillars without applicable questions emit
	// no section.
	for _, pillar := range model.PillarOrder {
		var section model.Section
		section.Pillar = pillar
		for _, q := range applicable {
			if q.Pillar == pillar {
				section.Questions = append(section.Questions, q)
			}
		}
		if len(section.Questions) > 0 {
			t.Sections = append(t.Sections, section)
		}
	}

	log.Debug("template built",
		zap.String("version", t.Version),
		zap.Int("questions", t.QuestionCount()),
		zap.Int("sections", len(t.Sections)),
	)
	return t
}

// checkDependencies warns about rule dependencies that do not resolve
// within the filtered question set, and about dependency cycles. Neither
// is fatal: a dangling rule is never satisfiable and a cyclic pair leaves
// both questions hidden.
func checkDependencies(questions []model.Question, log *zap.Logger) {
	present := make(map[string]bool, len(questions))
	for i := range questions {
		present[questions[i].ID] = true
	}

	edges := map[string][]string{}
	for i := range questions {
		q := &questions[i]
		for _, r := range q.Rules {
			if !present[r.DependsOn] {
				log.Warn("template: rule dependency not in template, rule is unsatisfiable",
					zap.String("question_id", q.ID),
					zap.String("depends_on", r.DependsOn),
				)
				continue
			}
			edges[q.ID] = append(edges[q.ID], r.DependsOn)
		}
	}

	for _, cycle := range findCycles(edges) {
		log.Warn("template: conditional rule dependency cycle, affected questions may never show",
			zap.Strings("cycle", cycle),
		)
	}
}

// findCycles runs a three-color DFS over the dependency graph
// and returns each cycle found as the path of question ids closing it.
func findCycles(edges map[string][]string) [][]string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := map[string]int{}
	var cycles [][]string

	var visit func(id string, path []string)
	visit = func(id string, path []string) {
		color[id] = gray
		path = append(path, id)
		for _, dep := range edges[id] {
			switch color[dep] {
			case white:
				visit(dep, path)
			case gray:
				// Close the cycle at dep.
				start := 0
				for i, p := range path {
					if p == dep {
						start = i
						break
					}
				}
				cycle := append([]string{}, path[start:]...)
				cycles = append(cycles, cycle)
			}
		}
		color[id] = black
	}

	// Deterministic iteration over roots.
	roots := make([]string, 0, len(edges))
	for id := range edges {
		roots = append(roots, id)
	}
	sort.Strings(roots)

	for _, id := range roots {
		if color[id] == white {
			visit(id, nil)
		}
	}
	return cycles
}
