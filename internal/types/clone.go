package types

import (
	"maps"
	"slices"
)

// Clone returns a deep copy of the state. Every write path mutates a clone
// and swaps it in, so readers holding the previous pointer never observe a
// partial update.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}

	out := *gs
	out.Characters = make(map[string]*Character, len(gs.Characters))
	for id, c := range gs.Characters {
		out.Characters[id] = c.Clone()
	}
	out.Dynasties = make(map[string]*Dynasty, len(gs.Dynasties))
	for id, d := range gs.Dynasties {
		dc := *d
		out.Dynasties[id] = &dc
	}
	out.Titles = make(map[string]*Title, len(gs.Titles))
	for id, t := range gs.Titles {
		out.Titles[id] = t.Clone()
	}
	out.Holdings = make(map[string]*Holding, len(gs.Holdings))
	for id, h := range gs.Holdings {
		hc := *h
		out.Holdings[id] = &hc
	}
	out.Events = cloneEvents(gs.Events)
	out.EventLog = cloneEvents(gs.EventLog)
	return &out
}

// Clone returns a deep copy of the character
func (c *Character) Clone() *Character {
	out := *c
	if c.DeathWeek != nil {
		w := *c.DeathWeek
		out.DeathWeek = &w
	}
	out.SpouseIDs = slices.Clone(c.SpouseIDs)
	out.ChildrenIDs = slices.Clone(c.ChildrenIDs)
	out.Traits = slices.Clone(c.Traits)
	out.Opinions = maps.Clone(c.Opinions)
	return &out
}

// Clone returns a deep copy of the title
func (t *Title) Clone() *Title {
	out := *t
	out.ClaimantIDs = slices.Clone(t.ClaimantIDs)
	out.VassalTitleIDs = slices.Clone(t.VassalTitleIDs)
	return &out
}

// Clone returns a deep copy of the event
func (e *GameEvent) Clone() *GameEvent {
	out := *e
	if e.ChosenIndex != nil {
		i := *e.ChosenIndex
		out.ChosenIndex = &i
	}
	out.Choices = CloneChoices(e.Choices)
	return &out
}

// CloneChoices deep copies a choice list
func CloneChoices(choices []EventChoice) []EventChoice {
	if choices == nil {
		return nil
	}
	out := make([]EventChoice, len(choices))
	for i, ch := range choices {
		out[i] = EventChoice{Text: ch.Text, Effects: slices.Clone(ch.Effects)}
	}
	return out
}

func cloneEvents(events []*GameEvent) []*GameEvent {
	if events == nil {
		return nil
	}
	out := make([]*GameEvent, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}
