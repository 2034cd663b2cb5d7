package game

import (
	"fmt"
	"sort"

	"github.com/user/house-eternal/internal/types"
	"github.com/user/house-eternal/internal/world"
	"go.uber.org/zap"
)

// Options tunes the engine
type Options struct {
	// Probability per tick of a narrative event for the player
	EventProbability float64

	// Weeks between autosave signals
	AutosaveInterval int

	// Run title succession immediately when an event effect kills a
	// character. When false the victim keeps the titles until the next
	// tick, whose succession step reassigns every title held by a dead or
	// missing character. Titles therefore never wait longer than one week,
	// unlike a model where only deaths rolled inside the tick pass titles on.
	EventDeathSuccession bool
}

// DefaultOptions returns the reference tuning
func DefaultOptions() Options {
	return Options{
		EventProbability: 0.02,
		AutosaveInterval: 104,
	}
}

// Engine implements the weekly transition function and the player actions.
// It holds no game state of its own: every method operates on the state it
// is handed.
type Engine struct {
	tables  *world.Tables
	rng     Rand
	factory *Factory
	events  *EventGenerator
	opts    Options
	logger  *zap.Logger
}

// NewEngine creates an engine. A nil logger is replaced with a no-op logger.
func NewEngine(tables *world.Tables, rng Rand, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		tables:  tables,
		rng:     rng,
		factory: NewFactory(tables, rng),
		events:  NewEventGenerator(tables.Events, rng),
		opts:    opts,
		logger:  logger,
	}
}

// Factory returns the engine's entity factory
func (e *Engine) Factory() *Factory {
	return e.factory
}

// Events returns the engine's event generator
func (e *Engine) Events() *EventGenerator {
	return e.events
}

// kill marks a character dead, logs it and drops any pregnancy that named
// the deceased as co-parent.
func (e *Engine) kill(s *types.GameState, c *types.Character, week int, kind types.EventType) {
	age := types.Age(c, week)
	c.Kill(week)

	for _, other := range s.Characters {
		if other.PregnantWith == c.ID {
			other.PregnantWith = ""
			other.PregnancyWeeksRemaining = 0
		}
	}

	switch kind {
	case types.EventChildbirthDeath:
		appendLog(s, kind, "Death in Childbirth",
			fmt.Sprintf("%s has died in childbirth.", c.Name), week, c.ID)
	default:
		appendLog(s, types.EventDeath, "Death",
			fmt.Sprintf("%s has died at the age of %d.", c.Name, age), week, c.ID)
	}

	e.logger.Debug("Character died",
		zap.String("character_id", c.ID),
		zap.String("name", c.Name),
		zap.Int("age", age),
		zap.String("cause", string(kind)),
		zap.Int("week", week))
}

// succeed passes a title to the first heir of its holder, or leaves it vacant
func (e *Engine) succeed(s *types.GameState, t *types.Title, week int) {
	deceasedID := t.HolderID
	line := CalculateSuccessionLine(deceasedID, s.Characters, t.SuccessionLaw)
	if len(line) == 0 {
		t.HolderID = ""
		e.logger.Debug("Title left vacant",
			zap.String("title_id", t.ID),
			zap.String("title", t.Name),
			zap.String("previous_holder", deceasedID))
		return
	}

	heir := s.Characters[line[0]]
	t.HolderID = heir.ID
	if heir.PrimaryTitleID == "" {
		heir.PrimaryTitleID = t.ID
		heir.IsRuler = true
	}

	appendLog(s, types.EventInheritance, "Inheritance",
		fmt.Sprintf("%s has inherited the %s.", heir.Name, t.Name), week, heir.ID)

	e.logger.Debug("Title inherited",
		zap.String("title_id", t.ID),
		zap.String("title", t.Name),
		zap.String("heir_id", heir.ID),
		zap.String("law", string(t.SuccessionLaw)))
}

// runSuccession processes every title whose holder is dead or missing. That
// covers this tick's deaths as well as deaths that happened between ticks.
func (e *Engine) runSuccession(s *types.GameState, week int) int {
	processed := 0
	for _, id := range sortedKeys(s.Titles) {
		t := s.Titles[id]
		if t.HolderID == "" {
			continue
		}
		holder, ok := s.Characters[t.HolderID]
		if !ok || !holder.Alive {
			e.succeed(s, t, week)
			processed++
		}
	}
	return processed
}

// holdsTitle reports whether the character currently holds any title
func holdsTitle(s *types.GameState, characterID string) bool {
	for _, t := range s.Titles {
		if t.HolderID == characterID {
			return true
		}
	}
	return false
}

func appendLog(s *types.GameState, kind types.EventType, title, description string, week int, characterID string) {
	s.EventLog = append(s.EventLog, &types.GameEvent{
		ID:          newID(),
		Type:        kind,
		Title:       title,
		Description: description,
		Week:        week,
		CharacterID: characterID,
		Resolved:    true,
	})
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
