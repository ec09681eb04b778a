// Package catalog is the static, queryable workout template library the
// microcycle generator selects sessions from. Templates are tagged by phase,
// athlete category and race type; lookups fall back from the most specific
// tag combination to the loosest before reporting a miss.
package catalog

import (
	"github.com/briangreenhill/ultraplan/athlete"
	"github.com/briangreenhill/ultraplan/plan"
)

// Template is one workout blueprint. Dimension ranges are resolved to
// concrete values by the generator; a zero range means the dimension must be
// back-filled from the others.
type Template struct {
	Type       plan.SessionType
	Title      string
	Phases     []plan.Phase        // empty = any phase
	Categories []athlete.Category  // empty = any category
	RaceTypes  []athlete.RaceType  // empty = any race type
	Duration   plan.Range          // minutes
	Distance   plan.Range          // km
	Vertical   plan.Range          // m
	Intensity  plan.Intensity
	Zones      []string
	Intervals  *plan.Intervals
}

// matchesPhase reports whether the template applies to the phase.
func (t Template) matchesPhase(p plan.Phase) bool {
	if len(t.Phases) == 0 {
		return true
	}
	for _, ph := range t.Phases {
		if ph == p {
			return true
		}
	}
	return false
}

func (t Template) matchesCategory(c athlete.Category) bool {
	if len(t.Categories) == 0 {
		return true
	}
	for _, cat := range t.Categories {
		if cat == c {
			return true
		}
	}
	return false
}

func (t Template) matchesRaceType(r athlete.RaceType) bool {
	if len(t.RaceTypes) == 0 {
		return true
	}
	for _, rt := range t.RaceTypes {
		if rt == r {
			return true
		}
	}
	return false
}

// Query selects templates. Type is required; the remaining tags narrow the
// match and are relaxed in fallback order when nothing satisfies all of them.
type Query struct {
	Type     plan.SessionType
	Phase    plan.Phase
	Category athlete.Category
	RaceType athlete.RaceType
}

// Catalog is an immutable template library indexed by session type.
type Catalog struct {
	byType map[plan.SessionType][]Template
}

// New builds a catalog from a template list.
func New(templates []Template) *Catalog {
	c := &Catalog{byType: make(map[plan.SessionType][]Template, len(templates))}
	for _, t := range templates {
		c.byType[t.Type] = append(c.byType[t.Type], t)
	}
	return c
}

// FindAll returns every template matching the query at its most specific
// satisfiable level: (type,phase,category,raceType), then
// (type,phase,category), then (type) alone. A nil result means no template
// of that type exists at all.
func (c *Catalog) FindAll(q Query) []Template {
	pool := c.byType[q.Type]
	if len(pool) == 0 {
		return nil
	}

	var full, noRace []Template
	for _, t := range pool {
		if t.matchesPhase(q.Phase) && t.matchesCategory(q.Category) {
			noRace = append(noRace, t)
			if t.matchesRaceType(q.RaceType) {
				full = append(full, t)
			}
		}
	}
	if len(full) > 0 {
		return full
	}
	if len(noRace) > 0 {
		return noRace
	}
	return pool
}

// Find returns the first template matching the query under the same fallback
// chain as FindAll, in declaration order.
func (c *Catalog) Find(q Query) (Template, bool) {
	all := c.FindAll(q)
	if len(all) == 0 {
		return Template{}, false
	}
	return all[0], true
}

// Types lists the session types the catalog has at least one template for.
func (c *Catalog) Types() []plan.SessionType {
	out := make([]plan.SessionType, 0, len(c.byType))
	for t := range c.byType {
		out = append(out, t)
	}
	return out
}
