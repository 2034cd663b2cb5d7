package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/house-eternal/internal/types"
	"github.com/user/house-eternal/internal/world"
)

func TestAdvanceDoesNotModifyInput(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0})
	prev := familyState(2)
	before := prev.Clone()

	// Test case 1: prev is untouched, next is a new week
	next, report := engine.Advance(prev)
	assert.Equal(t, before, prev)
	assert.Equal(t, 1, next.CurrentWeek)
	assert.Equal(t, 1, report.Week)
}

func TestPregnancyCap(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0})
	s := familyState(4)

	// Test case 1: four shared children block conception even when every roll succeeds
	next, _ := engine.Advance(s)
	assert.Empty(t, next.Characters["lady"].PregnantWith)
	assert.Equal(t, 0, next.Characters["lady"].PregnancyWeeksRemaining)

	// Test case 2: a dead child still counts towards the cap
	s.Characters["d-child"].Kill(0)
	next, _ = engine.Advance(s)
	assert.Empty(t, next.Characters["lady"].PregnantWith)
	assert.Equal(t, 0, next.Characters["lady"].PregnancyWeeksRemaining)

	// Test case 3: three shared children leave room for one more
	s = familyState(3)
	next, _ = engine.Advance(s)
	assert.Equal(t, "lord", next.Characters["lady"].PregnantWith)
	assert.Equal(t, PregnancyWeeks, next.Characters["lady"].PregnancyWeeksRemaining)
}

func TestConceptionRequiresEligibleMother(t *testing.T) {
	engine := newTestEngine(fixedRand{f: 0})

	// Test case 1: too old
	s := familyState(0)
	s.Characters["lady"].BirthWeek = yearsAgo(46)
	next, _ := engine.Advance(s)
	assert.Empty(t, next.Characters["lady"].PregnantWith)

	// Test case 2: dead spouse
	s = familyState(0)
	s.Characters["lord"].Kill(0)
	next, _ = engine.Advance(s)
	assert.Empty(t, next.Characters["lady"].PregnantWith)

	// Test case 3: dangling spouse id
	s = familyState(0)
	s.Characters["lady"].SpouseIDs = []string{"ghost"}
	next, _ = engine.Advance(s)
	assert.Empty(t, next.Characters["lady"].PregnantWith)
}

func TestBirth(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.5})
	s := familyState(0)
	s.Characters["lady"].PregnantWith = "lord"
	s.Characters["lady"].PregnancyWeeksRemaining = 1

	// Test case 1: child is born into the father's dynasty at his court
	next, report := engine.Advance(s)
	require.Len(t, report.Births, 1)
	child := next.Characters[report.Births[0]]
	require.NotNil(t, child)
	assert.Equal(t, "house", child.DynastyID)
	assert.Equal(t, "lord", child.AtCourt)
	assert.Equal(t, "lady", child.MotherID)
	assert.Equal(t, "lord", child.FatherID)
	assert.Equal(t, 1, child.BirthWeek)
	assert.Contains(t, next.Characters["lord"].ChildrenIDs, child.ID)
	assert.Contains(t, next.Characters["lady"].ChildrenIDs, child.ID)
	assert.Empty(t, next.Characters["lady"].PregnantWith)
	assert.True(t, next.Characters["lady"].Alive)
	assert.Contains(t, logTypes(next), types.EventBirth)
}

func TestMatrilinealBirth(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.5})
	s := familyState(0)
	s.Dynasties["other"] = &types.Dynasty{ID: "other", Name: "Tully"}
	lady := s.Characters["lady"]
	lady.DynastyID = "other"
	lady.Culture = types.CultureNorse
	lady.MatrilinealMarriage = true
	s.Characters["lord"].MatrilinealMarriage = true
	lady.PregnantWith = "lord"
	lady.PregnancyWeeksRemaining = 1

	// Test case 1: child takes the mother's house and culture
	next, report := engine.Advance(s)
	require.Len(t, report.Births, 1)
	child := next.Characters[report.Births[0]]
	assert.Equal(t, "other", child.DynastyID)
	assert.Equal(t, types.CultureNorse, child.Culture)
	assert.Equal(t, "lord", child.AtCourt)
}

func TestMaternalDeath(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.05})
	s := familyState(0)
	s.Characters["lady"].PregnantWith = "lord"
	s.Characters["lady"].PregnancyWeeksRemaining = 1

	// Test case 1: the child survives and the mother dies in childbirth
	next, report := engine.Advance(s)
	require.Len(t, report.Births, 1)
	assert.True(t, next.Characters[report.Births[0]].Alive)
	assert.False(t, next.Characters["lady"].Alive)
	assert.Contains(t, report.Deaths, "lady")
	assert.Contains(t, logTypes(next), types.EventChildbirthDeath)
}

func TestPregnancyEndsWhenFatherDies(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.5})
	s := familyState(1)
	s.Characters["lady"].PregnantWith = "lord"
	s.Characters["lady"].PregnancyWeeksRemaining = 10

	// Test case 1: killing the co-parent clears the pregnancy
	engine.ApplyEffects(s, "lord", []types.EventEffect{{Type: types.EffectDeath}})
	assert.Empty(t, s.Characters["lady"].PregnantWith)
	assert.Equal(t, 0, s.Characters["lady"].PregnancyWeeksRemaining)
}

func TestOldAgeDeathPassesTitle(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.015})
	s := familyState(2)
	s.Characters["lord"].BirthWeek = yearsAgo(60)
	s.Characters["lady"].BirthWeek = yearsAgo(30)

	// Test case 1: the ruler dies and the eldest son inherits and becomes the player
	next, report := engine.Advance(s)
	assert.Contains(t, report.Deaths, "lord")
	assert.Equal(t, 1, report.Inheritances)
	assert.Equal(t, "a-child", next.Titles["county"].HolderID)

	heir := next.Characters["a-child"]
	assert.Equal(t, "county", heir.PrimaryTitleID)
	assert.True(t, heir.IsRuler)
	assert.Equal(t, "a-child", next.PlayerCharacterID)
	assert.Equal(t, "a-child", report.HeirID)
	assert.Contains(t, logTypes(next), types.EventInheritance)
	assert.Contains(t, logTypes(next), types.EventHeir)
	assert.NotNil(t, next.Characters["lord"].DeathWeek)
}

func TestTitleLeftVacant(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.99})
	s := familyState(0)
	s.PlayerCharacterID = "lady"
	s.Characters["lady"].DynastyID = "house"
	s.Characters["lord"].Kill(0)

	// Test case 1: a childless holder leaves the title vacant
	next, report := engine.Advance(s)
	assert.Equal(t, 1, report.Inheritances)
	assert.Empty(t, next.Titles["county"].HolderID)
}

func TestChildMortalityOnlyOnYearBoundary(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.05})
	s := familyState(0)
	baby := person("baby", types.SexFemale, -10)
	baby.DynastyID = "house"
	addChild(s.Characters["lord"], baby)
	addChild(s.Characters["lady"], baby)
	s.Characters[baby.ID] = baby

	// Test case 1: mid-year weeks are safe
	s.CurrentWeek = 10
	next, _ := engine.Advance(s)
	assert.True(t, next.Characters["baby"].Alive)

	// Test case 2: the annual roll can kill
	s.CurrentWeek = types.WeeksPerYear - 1
	next, report := engine.Advance(s)
	assert.False(t, next.Characters["baby"].Alive)
	assert.Contains(t, report.Deaths, "baby")
}

func TestPlayerContinuityAfterEventDeath(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.99})
	s := familyState(2)
	s.Events = append(s.Events, &types.GameEvent{
		ID:          "ev",
		Type:        types.EventAssassinationAttempt,
		CharacterID: "lord",
		Choices: []types.EventChoice{
			{Text: "Fall", Effects: []types.EventEffect{{Type: types.EffectDeath}}},
		},
	})

	// Test case 1: the death effect kills the player but leaves the title
	require.True(t, engine.ResolveEvent(s, "ev", 0))
	assert.False(t, s.Characters["lord"].Alive)
	assert.Equal(t, "lord", s.Titles["county"].HolderID)

	// Test case 2: the next tick hands the title and control to the heir
	next, _ := engine.Advance(s)
	player := next.Characters[next.PlayerCharacterID]
	require.NotNil(t, player)
	assert.True(t, player.Alive)
	assert.Equal(t, "house", player.DynastyID)
	assert.Equal(t, "a-child", player.ID)
	assert.Equal(t, "a-child", next.Titles["county"].HolderID)
	assert.Contains(t, logTypes(next), types.EventHeir)
}

func TestHeirFallbackOutsideLine(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.99})
	s := familyState(0)
	uncle := person("uncle", types.SexMale, yearsAgo(35))
	uncle.DynastyID = "house"
	cousin := person("cousin", types.SexMale, yearsAgo(50))
	cousin.DynastyID = "house"
	cousin.IsRuler = true
	s.Characters[uncle.ID] = uncle
	s.Characters[cousin.ID] = cousin
	s.Characters["lord"].Kill(0)

	// Test case 1: a ruling member is preferred over the eldest member
	next, _ := engine.Advance(s)
	assert.Equal(t, "cousin", next.PlayerCharacterID)
}

func TestExtinction(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.99})
	s := familyState(0)
	engine.ApplyEffects(s, "lord", []types.EventEffect{{Type: types.EffectDeath}})

	// Test case 1: the tick ends the game
	next, report := engine.Advance(s)
	assert.True(t, report.GameOver)
	assert.True(t, next.GameOver)
	assert.Contains(t, next.GameOverReason, "House of Stark")
	assert.Contains(t, logTypes(next), types.EventGameOver)

	// Test case 2: later ticks change nothing
	after, report := engine.Advance(next)
	assert.True(t, report.Skipped)
	assert.Same(t, next, after)
	assert.Equal(t, next.CurrentWeek, after.CurrentWeek)
}

func TestAutosaveMarker(t *testing.T) {
	// Setup
	engine := newTestEngine(fixedRand{f: 0.99})
	s := familyState(0)
	s.CurrentWeek = 103

	// Test case 1: the marker fires after two years
	next, report := engine.Advance(s)
	assert.True(t, report.Autosave)
	assert.Equal(t, 104, next.LastAutosaveWeek)

	// Test case 2: and not again the following week
	_, report = engine.Advance(next)
	assert.False(t, report.Autosave)
}

func TestRandomEventForPlayer(t *testing.T) {
	// Setup
	engine := newTestEngine(&scriptedRand{floats: []float64{0.5, 0.01, 0}})
	s := familyState(0)

	// Test case 1: the 2% roll queues an event for the player
	next, report := engine.Advance(s)
	require.Len(t, report.NewEvents, 1)
	require.Len(t, next.Events, 1)
	assert.Equal(t, "lord", next.Events[0].CharacterID)
	assert.False(t, next.Events[0].Resolved)
}

func TestLongRunInvariants(t *testing.T) {
	// Setup
	engine := NewEngine(world.Default(), NewSeededDiceRoller(42), DefaultOptions(), nil)
	s, err := engine.NewWorld(types.NewGameConfig{
		DynastyName: "Aldric", RulerName: "Edmund", Culture: types.CultureAnglo, Sex: types.SexMale,
	}, 15)
	require.NoError(t, err)

	ages := map[string]int{}
	for i := 0; i < 20*types.WeeksPerYear && !s.GameOver; i++ {
		s, _ = engine.Advance(s)

		for id, c := range s.Characters {
			// alive exactly when no death week is recorded
			assert.Equal(t, c.Alive, c.DeathWeek == nil, id)

			age := types.Age(c, s.CurrentWeek)
			if prev, ok := ages[id]; ok {
				assert.GreaterOrEqual(t, age, prev, id)
			}
			ages[id] = age

			if c.PregnantWith != "" {
				assert.True(t, c.Alive, id)
				partner, ok := s.Characters[c.PregnantWith]
				if assert.True(t, ok, id) {
					assert.True(t, partner.Alive, id)
				}
			}
		}

		if !s.GameOver {
			player := s.Characters[s.PlayerCharacterID]
			require.NotNil(t, player)
			assert.True(t, player.Alive)
			assert.Equal(t, s.PlayerDynastyID, player.DynastyID)
		}

		for _, title := range s.Titles {
			if title.HolderID != "" {
				holder, ok := s.Characters[title.HolderID]
				if assert.True(t, ok) {
					assert.True(t, holder.Alive, title.ID)
				}
			}
		}
	}
}
