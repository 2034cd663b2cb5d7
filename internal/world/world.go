// Package world holds the static reference tables of the simulation:
// cultures and their name pools, the trait catalog, the event template
// catalog and title rank naming. The tables ship embedded as YAML and can be
// replaced from a directory holding the same three files.
package world

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/user/house-eternal/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	culturesFile = "cultures.yaml"
	traitsFile   = "traits.yaml"
	eventsFile   = "events.yaml"
)

// Culture is a name pool for one culture
type Culture struct {
	ID           types.CultureID `yaml:"id"`
	Name         string          `yaml:"name"`
	MaleNames    []string        `yaml:"male_names"`
	FemaleNames  []string        `yaml:"female_names"`
	DynastyNames []string        `yaml:"dynasty_names"`
}

// Names returns the given-name pool for a sex
func (c *Culture) Names(sex types.Sex) []string {
	if sex == types.SexFemale {
		return c.FemaleNames
	}
	return c.MaleNames
}

// Trait is a catalog entry. Effects are keyed by skill name, "health" or "fertility".
type Trait struct {
	ID          types.TraitID  `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Effects     map[string]int `yaml:"effects"`
}

// EventTemplate is a weighted entry of the event catalog.
// Zero MinAge/MaxAge means unbounded.
type EventTemplate struct {
	Type             types.EventType     `yaml:"type"`
	Title            string              `yaml:"title"`
	Description      string              `yaml:"description"`
	Weight           int                 `yaml:"weight"`
	MinAge           int                 `yaml:"min_age"`
	MaxAge           int                 `yaml:"max_age"`
	RequiresSpouse   bool                `yaml:"requires_spouse"`
	RequiresChildren bool                `yaml:"requires_children"`
	RequiresTrait    types.TraitID       `yaml:"requires_trait"`
	Choices          []types.EventChoice `yaml:"choices"`
}

// Tables bundles every reference table
type Tables struct {
	Cultures map[types.CultureID]*Culture
	Traits   map[types.TraitID]*Trait
	Events   []EventTemplate

	// traitOrder is the catalog order used for random draws
	traitOrder []types.TraitID
}

// TraitIDs returns the catalog trait ids in file order
func (t *Tables) TraitIDs() []types.TraitID {
	out := make([]types.TraitID, len(t.traitOrder))
	copy(out, t.traitOrder)
	return out
}

// Culture returns a culture by id
func (t *Tables) Culture(id types.CultureID) (*Culture, bool) {
	c, ok := t.Cultures[id]
	return c, ok
}

// CultureIDs returns all loaded culture ids sorted
func (t *Tables) CultureIDs() []types.CultureID {
	ids := make([]types.CultureID, 0, len(t.Cultures))
	for id := range t.Cultures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var defaultTables = sync.OnceValues(func() (*Tables, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return NewDataLoader(sub).Load()
})

// Default returns the embedded tables. It panics if they fail validation,
// which the package tests guard against.
func Default() *Tables {
	t, err := defaultTables()
	if err != nil {
		panic(fmt.Sprintf("world: embedded tables invalid: %v", err))
	}
	return t
}

// DataLoader reads the reference tables from a filesystem
type DataLoader struct {
	fsys fs.FS
}

// NewDataLoader creates a loader over fsys
func NewDataLoader(fsys fs.FS) *DataLoader {
	return &DataLoader{fsys: fsys}
}

// Load reads and validates all three tables
func (dl *DataLoader) Load() (*Tables, error) {
	cultures, err := dl.LoadCultures()
	if err != nil {
		return nil, err
	}
	traits, err := dl.LoadTraits()
	if err != nil {
		return nil, err
	}
	events, err := dl.LoadEventTemplates()
	if err != nil {
		return nil, err
	}

	tables := &Tables{
		Cultures: make(map[types.CultureID]*Culture, len(cultures)),
		Traits:   make(map[types.TraitID]*Trait, len(traits)),
		Events:   events,
	}
	for _, c := range cultures {
		tables.Cultures[c.ID] = c
	}
	for _, t := range traits {
		tables.Traits[t.ID] = t
		tables.traitOrder = append(tables.traitOrder, t.ID)
	}

	for _, tmpl := range events {
		for _, choice := range tmpl.Choices {
			for _, eff := range choice.Effects {
				if eff.Type == types.EffectTrait {
					if _, ok := tables.Traits[eff.Trait]; !ok {
						return nil, fmt.Errorf("event %s: unknown trait %q", tmpl.Type, eff.Trait)
					}
				}
			}
		}
	}

	return tables, nil
}

// LoadCultures loads culture definitions
func (dl *DataLoader) LoadCultures() ([]*Culture, error) {
	var cultures []*Culture
	if err := dl.decode(culturesFile, &cultures); err != nil {
		return nil, err
	}
	if len(cultures) == 0 {
		return nil, fmt.Errorf("no cultures defined")
	}
	for _, c := range cultures {
		if !c.ID.Valid() {
			return nil, fmt.Errorf("unknown culture %q", c.ID)
		}
		if len(c.MaleNames) == 0 || len(c.FemaleNames) == 0 || len(c.DynastyNames) == 0 {
			return nil, fmt.Errorf("culture %s: empty name pool", c.ID)
		}
	}
	return cultures, nil
}

// LoadTraits loads the trait catalog
func (dl *DataLoader) LoadTraits() ([]*Trait, error) {
	var traits []*Trait
	if err := dl.decode(traitsFile, &traits); err != nil {
		return nil, err
	}
	seen := make(map[types.TraitID]bool, len(traits))
	for _, t := range traits {
		if !t.ID.Valid() {
			return nil, fmt.Errorf("unknown trait %q", t.ID)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate trait %q", t.ID)
		}
		seen[t.ID] = true
		for key := range t.Effects {
			if key != "health" && key != "fertility" && !types.SkillID(key).Valid() {
				return nil, fmt.Errorf("trait %s: unknown effect %q", t.ID, key)
			}
		}
	}
	return traits, nil
}

// LoadEventTemplates loads the event template catalog
func (dl *DataLoader) LoadEventTemplates() ([]EventTemplate, error) {
	var events []EventTemplate
	if err := dl.decode(eventsFile, &events); err != nil {
		return nil, err
	}
	for _, e := range events {
		if !e.Type.Valid() {
			return nil, fmt.Errorf("unknown event type %q", e.Type)
		}
		if e.Weight <= 0 {
			return nil, fmt.Errorf("event %s: weight must be positive", e.Type)
		}
		if e.RequiresTrait != "" && !e.RequiresTrait.Valid() {
			return nil, fmt.Errorf("event %s: unknown required trait %q", e.Type, e.RequiresTrait)
		}
		for _, choice := range e.Choices {
			for _, eff := range choice.Effects {
				if !eff.Type.Valid() {
					return nil, fmt.Errorf("event %s: unknown effect %q", e.Type, eff.Type)
				}
				if eff.Type == types.EffectSkill && !eff.Skill.Valid() {
					return nil, fmt.Errorf("event %s: unknown skill %q", e.Type, eff.Skill)
				}
			}
		}
	}
	return events, nil
}

func (dl *DataLoader) decode(name string, out any) error {
	data, err := fs.ReadFile(dl.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
