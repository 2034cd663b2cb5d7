package game

import (
	"github.com/user/house-eternal/internal/types"
	"github.com/user/house-eternal/internal/world"
)

// EventGenerator draws life events from a weighted template catalog
type EventGenerator struct {
	templates []world.EventTemplate
	rng       Rand
}

// NewEventGenerator creates a generator over templates
func NewEventGenerator(templates []world.EventTemplate, rng Rand) *EventGenerator {
	return &EventGenerator{templates: templates, rng: rng}
}

// Eligible returns the templates whose predicates the character satisfies.
// characters is used to check that a spouse is alive; when nil any recorded
// spouse counts.
func (g *EventGenerator) Eligible(c *types.Character, week int, characters map[string]*types.Character) []world.EventTemplate {
	age := types.Age(c, week)
	hasSpouse := hasLivingSpouse(c, characters)
	hasChildren := len(c.ChildrenIDs) > 0

	eligible := make([]world.EventTemplate, 0, len(g.templates))
	for _, tmpl := range g.templates {
		if tmpl.MinAge > 0 && age < tmpl.MinAge {
			continue
		}
		if tmpl.MaxAge > 0 && age > tmpl.MaxAge {
			continue
		}
		if tmpl.RequiresSpouse && !hasSpouse {
			continue
		}
		if tmpl.RequiresChildren && !hasChildren {
			continue
		}
		if tmpl.RequiresTrait != "" && !c.HasTrait(tmpl.RequiresTrait) {
			continue
		}
		eligible = append(eligible, tmpl)
	}
	return eligible
}

// Generate selects a weighted-random eligible template and instantiates it
// for the character. It returns nil when nothing is eligible.
func (g *EventGenerator) Generate(c *types.Character, week int, characters map[string]*types.Character) *types.GameEvent {
	eligible := g.Eligible(c, week, characters)
	if len(eligible) == 0 {
		return nil
	}

	total := 0
	for _, tmpl := range eligible {
		total += tmpl.Weight
	}

	roll := g.rng.Float64() * float64(total)
	chosen := eligible[len(eligible)-1]
	cumulative := 0.0
	for _, tmpl := range eligible {
		cumulative += float64(tmpl.Weight)
		if roll < cumulative {
			chosen = tmpl
			break
		}
	}

	return &types.GameEvent{
		ID:          newID(),
		Type:        chosen.Type,
		Title:       chosen.Title,
		Description: chosen.Description,
		Week:        week,
		CharacterID: c.ID,
		Choices:     types.CloneChoices(chosen.Choices),
		Resolved:    false,
	}
}

func hasLivingSpouse(c *types.Character, characters map[string]*types.Character) bool {
	if characters == nil {
		return len(c.SpouseIDs) > 0
	}
	for _, id := range c.SpouseIDs {
		if spouse, ok := characters[id]; ok && spouse.Alive {
			return true
		}
	}
	return false
}
