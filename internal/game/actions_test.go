package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/house-eternal/internal/types"
	"github.com/user/house-eternal/internal/world"
)

func marriageState() *types.GameState {
	s := familyState(0)
	groom := person("groom", types.SexMale, yearsAgo(20))
	groom.AtCourt = "lord"
	bride := person("bride", types.SexFemale, yearsAgo(18))
	bride.AtCourt = "duke"
	s.Characters[groom.ID] = groom
	s.Characters[bride.ID] = bride
	return s
}

func TestArrangeMarriageSymmetry(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.5})
	s := marriageState()

	// Test case 1: both sides list each other
	require.True(t, engine.ArrangeMarriage(s, "groom", "bride", false))
	assert.Equal(t, []string{"bride"}, s.Characters["groom"].SpouseIDs)
	assert.Equal(t, []string{"groom"}, s.Characters["bride"].SpouseIDs)
	assert.Equal(t, "lord", s.Characters["bride"].AtCourt)
	assert.Contains(t, logTypes(s), types.EventMarriage)

	// Test case 2: repeating fails without touching state
	before := s.Clone()
	assert.False(t, engine.ArrangeMarriage(s, "groom", "bride", false))
	assert.False(t, engine.ArrangeMarriage(s, "bride", "groom", true))
	assert.Equal(t, before, s)
}

func TestArrangeMarriagePreconditions(t *testing.T) {
	engine := newTestEngine(fixedRand{f: 0.5})

	tests := []struct {
		name  string
		setup func(s *types.GameState)
		a, b  string
	}{
		{name: "missing", a: "groom", b: "ghost"},
		{name: "self", a: "groom", b: "groom"},
		{name: "same sex", a: "groom", b: "lord", setup: func(s *types.GameState) {
			s.Characters["lord"].SpouseIDs = []string{}
		}},
		{name: "already married", a: "groom", b: "lady"},
		{name: "underage", a: "groom", b: "bride", setup: func(s *types.GameState) {
			s.Characters["bride"].BirthWeek = yearsAgo(15)
		}},
		{name: "dead", a: "groom", b: "bride", setup: func(s *types.GameState) {
			s.Characters["bride"].Kill(0)
		}},
		{name: "widowed", a: "groom", b: "bride", setup: func(s *types.GameState) {
			s.Characters["bride"].SpouseIDs = []string{"lord"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := marriageState()
			if tt.setup != nil {
				tt.setup(s)
			}
			before := s.Clone()
			assert.False(t, engine.ArrangeMarriage(s, tt.a, tt.b, false))
			assert.Equal(t, before, s)
		})
	}
}

func TestArrangeMarriageCourts(t *testing.T) {
	engine := newTestEngine(fixedRand{f: 0.5})

	// Test case 1: a ruling wife keeps her court and the husband joins it
	s := marriageState()
	s.Characters["bride"].IsRuler = true
	require.True(t, engine.ArrangeMarriage(s, "bride", "groom", true))
	assert.Equal(t, "bride", s.Characters["groom"].AtCourt)
	assert.Equal(t, "duke", s.Characters["bride"].AtCourt)
	assert.True(t, s.Characters["groom"].MatrilinealMarriage)
	assert.True(t, s.Characters["bride"].MatrilinealMarriage)

	// Test case 2: a ruling husband takes the wife into his own court
	s = marriageState()
	s.Characters["groom"].IsRuler = true
	require.True(t, engine.ArrangeMarriage(s, "groom", "bride", false))
	assert.Equal(t, "groom", s.Characters["bride"].AtCourt)
}

func TestInviteToCourt(t *testing.T) {
	// Setup
	s := marriageState()

	// Test case 1: acceptance chance from prestige and diplomacy
	assert.InDelta(t, 0.8, InviteChance(s), 1e-9)
	s.Dynasties["house"].Prestige = 1000
	s.Characters["lord"].Skills.Diplomacy = 50
	assert.InDelta(t, 0.95, InviteChance(s), 1e-9)

	// Test case 2: a declined invitation changes nothing
	before := s.Clone()
	assert.False(t, newTestEngine(fixedRand{f: 0.99}).InviteToCourt(s, "bride"))
	assert.Equal(t, before, s)

	// Test case 3: accepted
	engine := newTestEngine(fixedRand{f: 0})
	assert.True(t, engine.InviteToCourt(s, "bride"))
	assert.Equal(t, "lord", s.Characters["bride"].AtCourt)

	// Test case 4: already at court
	assert.False(t, engine.InviteToCourt(s, "bride"))

	// Test case 5: own dynasty and missing characters
	s.Characters["groom"].DynastyID = "house"
	s.Characters["groom"].AtCourt = ""
	assert.False(t, engine.InviteToCourt(s, "groom"))
	assert.False(t, engine.InviteToCourt(s, "ghost"))
}

func TestBanishFromCourt(t *testing.T) {
	engine := newTestEngine(fixedRand{f: 0.5})
	s := marriageState()

	// Test case 1: banish a courtier
	assert.True(t, engine.BanishFromCourt(s, "groom"))
	assert.Empty(t, s.Characters["groom"].AtCourt)

	// Test case 2: not at the player's court
	assert.False(t, engine.BanishFromCourt(s, "groom"))
	assert.False(t, engine.BanishFromCourt(s, "bride"))
	assert.False(t, engine.BanishFromCourt(s, "ghost"))
}

func TestGrantTitle(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.5})
	s := marriageState()
	s.Titles["barony"] = &types.Title{
		ID: "barony", Name: "Barony of Winter", Rank: types.RankBarony, HolderID: "lord",
		SuccessionLaw: types.LawPrimogeniture, ClaimantIDs: []string{}, VassalTitleIDs: []string{},
	}

	// Test case 1: the player must hold the title
	assert.False(t, engine.GrantTitle(s, "groom", "missing"))
	s.Titles["barony"].HolderID = "bride"
	assert.False(t, engine.GrantTitle(s, "groom", "barony"))
	s.Titles["barony"].HolderID = "lord"

	// Test case 2: granting the primary title moves the player's primary to the other
	require.True(t, engine.GrantTitle(s, "groom", "county"))
	assert.Equal(t, "groom", s.Titles["county"].HolderID)
	assert.Equal(t, "county", s.Characters["groom"].PrimaryTitleID)
	assert.True(t, s.Characters["groom"].IsRuler)
	assert.Equal(t, "barony", s.Characters["lord"].PrimaryTitleID)
	assert.True(t, s.Characters["lord"].IsRuler)

	// Test case 3: granting the last title clears the primary
	require.True(t, engine.GrantTitle(s, "bride", "barony"))
	assert.Empty(t, s.Characters["lord"].PrimaryTitleID)
	assert.False(t, s.Characters["lord"].IsRuler)

	// Test case 4: a dead recipient is refused
	s.Titles["barony"].HolderID = "lord"
	s.Characters["groom"].Kill(0)
	assert.False(t, engine.GrantTitle(s, "groom", "barony"))
}

func pendingEvent(s *types.GameState, id string, choices ...types.EventChoice) {
	s.Events = append(s.Events, &types.GameEvent{
		ID:          id,
		Type:        types.EventFeast,
		Title:       "A Grand Feast",
		CharacterID: s.PlayerCharacterID,
		Choices:     choices,
	})
}

func TestResolveEvent(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.5})
	s := familyState(0)
	pendingEvent(s, "feast",
		types.EventChoice{Text: "Spend", Effects: []types.EventEffect{{Type: types.EffectPrestige, Value: 25}}},
		types.EventChoice{Text: "Save", Effects: []types.EventEffect{{Type: types.EffectSkill, Skill: types.SkillStewardship, Value: 1}}},
	)
	pendingEvent(s, "notice")

	// Test case 1: invalid ids and indexes
	assert.False(t, engine.ResolveEvent(s, "missing", 0))
	assert.False(t, engine.ResolveEvent(s, "feast", 2))
	assert.False(t, engine.ResolveEvent(s, "feast", -1))
	assert.False(t, engine.ResolveEvent(s, "notice", 1))
	assert.Len(t, s.Events, 2)

	// Test case 2: a valid choice applies its effects and moves the event to the log
	require.True(t, engine.ResolveEvent(s, "feast", 1))
	assert.Equal(t, 11, s.Characters["lord"].Skills.Stewardship)
	assert.Equal(t, 100, s.Dynasties["house"].Prestige)
	require.Len(t, s.Events, 1)
	resolved := s.EventLog[len(s.EventLog)-1]
	assert.Equal(t, "feast", resolved.ID)
	assert.True(t, resolved.Resolved)
	require.NotNil(t, resolved.ChosenIndex)
	assert.Equal(t, 1, *resolved.ChosenIndex)

	// Test case 3: an event without choices is acknowledged with index 0
	require.True(t, engine.ResolveEvent(s, "notice", 0))
	assert.Empty(t, s.Events)

	// Test case 4: resolved events cannot be resolved again
	assert.False(t, engine.ResolveEvent(s, "feast", 0))
}

func TestResolveEventImmediateSuccession(t *testing.T) {
	// Setup
	opts := DefaultOptions()
	opts.EventDeathSuccession = true
	engine := NewEngine(world.Default(), fixedRand{f: 0.5}, opts, nil)
	s := familyState(1)
	pendingEvent(s, "hunt", types.EventChoice{Text: "Ride", Effects: []types.EventEffect{{Type: types.EffectDeath}}})

	// Test case 1: the title and control pass at once
	require.True(t, engine.ResolveEvent(s, "hunt", 0))
	assert.Equal(t, "a-child", s.Titles["county"].HolderID)
	assert.Equal(t, "a-child", s.PlayerCharacterID)
}

func TestResolveEventDeferredSuccession(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.5})
	s := familyState(1)
	pendingEvent(s, "hunt", types.EventChoice{Text: "Ride", Effects: []types.EventEffect{{Type: types.EffectDeath}}})

	// Test case 1: the dead holder keeps the title until the next tick
	require.True(t, engine.ResolveEvent(s, "hunt", 0))
	assert.False(t, s.Characters["lord"].Alive)
	assert.Equal(t, "lord", s.Titles["county"].HolderID)
	assert.Equal(t, "lord", s.PlayerCharacterID)

	// Test case 2: one tick later the heir holds it and plays on
	next, report := engine.Advance(s)
	assert.Equal(t, "a-child", next.Titles["county"].HolderID)
	assert.Equal(t, "a-child", next.PlayerCharacterID)
	assert.Equal(t, "a-child", report.HeirID)
	assert.False(t, next.GameOver)
}
