package game

import (
	"github.com/user/house-eternal/internal/types"
	"github.com/user/house-eternal/internal/world"
)

// fixedRand returns the same roll every time. A Float64 of 0 makes every
// positive-probability roll succeed; 0.99 makes nearly every roll fail.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.n % n
}

// scriptedRand plays back Float64 values in order, then repeats the last
type scriptedRand struct {
	floats []float64
	pos    int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[min(r.pos, len(r.floats)-1)]
	r.pos++
	return v
}

func (r *scriptedRand) Intn(n int) int { return 0 }

func newTestEngine(rng Rand) *Engine {
	return NewEngine(world.Default(), rng, DefaultOptions(), nil)
}

func yearsAgo(years int) int {
	return -years * types.WeeksPerYear
}

func person(id string, sex types.Sex, birthWeek int) *types.Character {
	return &types.Character{
		ID:          id,
		Name:        id,
		Sex:         sex,
		Culture:     types.CultureAnglo,
		BirthWeek:   birthWeek,
		Alive:       true,
		SpouseIDs:   []string{},
		ChildrenIDs: []string{},
		Traits:      []types.TraitID{},
		Skills:      types.Skills{Diplomacy: 10, Martial: 10, Stewardship: 10, Intrigue: 10, Learning: 10},
		Health:      100,
		Fertility:   100,
		Opinions:    map[string]int{},
	}
}

func addChild(parent, child *types.Character) {
	parent.ChildrenIDs = append(parent.ChildrenIDs, child.ID)
	if parent.Sex == types.SexFemale {
		child.MotherID = parent.ID
	} else {
		child.FatherID = parent.ID
	}
}

func wed(a, b *types.Character) {
	a.SpouseIDs = append(a.SpouseIDs, b.ID)
	b.SpouseIDs = append(b.SpouseIDs, a.ID)
}

// familyState builds a small player family at week 0: ruler "lord" holding
// "county", wife "lady", and the given number of adult children.
func familyState(children int) *types.GameState {
	s := types.NewGameState()
	s.Dynasties["house"] = &types.Dynasty{ID: "house", Name: "Stark", Prestige: 100}
	s.PlayerDynastyID = "house"
	s.PlayerCharacterID = "lord"

	lord := person("lord", types.SexMale, yearsAgo(30))
	lord.DynastyID = "house"
	lord.IsRuler = true
	lord.PrimaryTitleID = "county"
	lady := person("lady", types.SexFemale, yearsAgo(28))
	lady.AtCourt = "lord"
	wed(lord, lady)
	s.Characters[lord.ID] = lord
	s.Characters[lady.ID] = lady

	for i := 0; i < children; i++ {
		child := person(string(rune('a'+i))+"-child", types.SexMale, yearsAgo(10)+i)
		child.DynastyID = "house"
		child.AtCourt = "lord"
		addChild(lord, child)
		addChild(lady, child)
		s.Characters[child.ID] = child
	}

	s.Titles["county"] = &types.Title{
		ID: "county", Name: "County of Stark", Rank: types.RankCounty, HolderID: "lord",
		SuccessionLaw: types.LawPrimogeniture, ClaimantIDs: []string{}, VassalTitleIDs: []string{},
	}
	return s
}

func logTypes(s *types.GameState) []types.EventType {
	out := make([]types.EventType, 0, len(s.EventLog))
	for _, e := range s.EventLog {
		out = append(out, e.Type)
	}
	return out
}
