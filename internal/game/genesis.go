package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/house-eternal/internal/types"
	"go.uber.org/zap"
)

// Rival realms are grouped into trees of one kingdom, two duchies and four
// counties.
const realmGroupSize = 7

// minParentAge is the youngest age at which a rival parent had a child
const minParentAge = 16

var titlePrefix = map[types.TitleRank]string{
	types.RankBarony:  "Barony of",
	types.RankCounty:  "County of",
	types.RankDuchy:   "Duchy of",
	types.RankKingdom: "Kingdom of",
	types.RankEmpire:  "Empire of",
}

// ValidateNewGame checks the initial configuration
func ValidateNewGame(cfg types.NewGameConfig) error {
	var errs []error
	if strings.TrimSpace(cfg.DynastyName) == "" {
		errs = append(errs, errors.New("dynasty name is required"))
	}
	if strings.TrimSpace(cfg.RulerName) == "" {
		errs = append(errs, errors.New("ruler name is required"))
	}
	if !cfg.Culture.Valid() {
		errs = append(errs, fmt.Errorf("unknown culture %q", cfg.Culture))
	}
	if !cfg.Sex.Valid() {
		errs = append(errs, fmt.Errorf("unknown sex %q", cfg.Sex))
	}
	return errors.Join(errs...)
}

// NewWorld builds the week-0 state: the player's family with its county, and
// the given number of rival realms arranged in de jure trees.
func (e *Engine) NewWorld(cfg types.NewGameConfig, rivals int) (*types.GameState, error) {
	if err := ValidateNewGame(cfg); err != nil {
		return nil, fmt.Errorf("invalid new game config: %w", err)
	}
	if rivals < 0 {
		rivals = 0
	}

	s := types.NewGameState()
	f := e.factory
	name := strings.TrimSpace(cfg.DynastyName)

	ruler := f.CreateCharacter(strings.TrimSpace(cfg.RulerName), cfg.Sex, cfg.Culture, "", -20*types.WeeksPerYear, "", "", "")
	ruler.IsRuler = true
	dynasty := f.CreateDynasty(name, ruler.ID, cfg.Culture)
	ruler.DynastyID = dynasty.ID

	capital := f.CreateTitle(fmt.Sprintf("%s %s", titlePrefix[types.RankCounty], name), types.RankCounty, ruler.ID)
	ruler.PrimaryTitleID = capital.ID
	holding := f.CreateHolding("Castle "+name, capital.ID)

	spouseSex := cfg.Sex.Opposite()
	spouse := f.CreateCharacter(f.GenerateName(cfg.Culture, spouseSex), spouseSex, cfg.Culture, "", -18*types.WeeksPerYear, "", "", ruler.ID)
	marry(ruler, spouse)

	mother, father := parents(ruler, spouse)
	son := f.CreateCharacter(f.GenerateName(cfg.Culture, types.SexMale), types.SexMale, cfg.Culture, dynasty.ID, -3*types.WeeksPerYear, mother.ID, father.ID, ruler.ID)
	daughter := f.CreateCharacter(f.GenerateName(cfg.Culture, types.SexFemale), types.SexFemale, cfg.Culture, dynasty.ID, -1*types.WeeksPerYear, mother.ID, father.ID, ruler.ID)
	for _, child := range []*types.Character{son, daughter} {
		ruler.ChildrenIDs = append(ruler.ChildrenIDs, child.ID)
		spouse.ChildrenIDs = append(spouse.ChildrenIDs, child.ID)
	}

	for _, c := range []*types.Character{ruler, spouse, son, daughter} {
		s.Characters[c.ID] = c
	}
	s.Dynasties[dynasty.ID] = dynasty
	s.Titles[capital.ID] = capital
	s.Holdings[holding.ID] = holding
	s.PlayerDynastyID = dynasty.ID
	s.PlayerCharacterID = ruler.ID

	others := make([]types.CultureID, 0, len(types.AllCultures))
	for _, c := range types.AllCultures {
		if c != cfg.Culture {
			others = append(others, c)
		}
	}

	var group []*types.Title
	for i := 0; i < rivals; i++ {
		pos := i % realmGroupSize
		if pos == 0 {
			group = group[:0]
		}
		t := e.createRealm(s, others[i%len(others)], realmRank(pos))
		group = append(group, t)
		if pos > 0 {
			linkVassal(group[(pos-1)/2], t)
		}
	}

	e.logger.Info("New world created",
		zap.String("dynasty", dynasty.Name),
		zap.String("ruler_id", ruler.ID),
		zap.Int("rivals", rivals),
		zap.Int("characters", len(s.Characters)))
	return s, nil
}

// createRealm adds a rival ruling family with its title and holding
func (e *Engine) createRealm(s *types.GameState, culture types.CultureID, rank types.TitleRank) *types.Title {
	f := e.factory

	rulerSex := types.SexMale
	if e.rng.Float64() > 0.5 {
		rulerSex = types.SexFemale
	}
	rulerAge := RangeInt(e.rng, 18, 48)
	ruler := f.CreateCharacter(f.GenerateName(culture, rulerSex), rulerSex, culture, "", -rulerAge*types.WeeksPerYear, "", "", "")
	ruler.IsRuler = true
	dynasty := f.CreateDynasty(f.GenerateDynastyName(culture), ruler.ID, culture)
	ruler.DynastyID = dynasty.ID

	spouseSex := rulerSex.Opposite()
	spouseAge := RangeInt(e.rng, 16, 41)
	spouse := f.CreateCharacter(f.GenerateName(culture, spouseSex), spouseSex, culture, "", -spouseAge*types.WeeksPerYear, "", "", ruler.ID)
	marry(ruler, spouse)

	s.Characters[ruler.ID] = ruler
	s.Characters[spouse.ID] = spouse
	s.Dynasties[dynasty.ID] = dynasty

	mother, father := parents(ruler, spouse)
	children := e.rng.Intn(4)
	// children are at most 14 and born no earlier than the younger parent's 16th year
	childAges := min(15, min(rulerAge, spouseAge)-minParentAge+1)
	for j := 0; j < children; j++ {
		sex := types.SexMale
		if e.rng.Float64() > 0.5 {
			sex = types.SexFemale
		}
		child := f.CreateCharacter(f.GenerateName(culture, sex), sex, culture, dynasty.ID, -e.rng.Intn(childAges)*types.WeeksPerYear, mother.ID, father.ID, ruler.ID)
		ruler.ChildrenIDs = append(ruler.ChildrenIDs, child.ID)
		spouse.ChildrenIDs = append(spouse.ChildrenIDs, child.ID)
		s.Characters[child.ID] = child
	}

	title := f.CreateTitle(fmt.Sprintf("%s %s", titlePrefix[rank], dynasty.Name), rank, ruler.ID)
	ruler.PrimaryTitleID = title.ID
	holding := f.CreateHolding("Castle "+dynasty.Name, title.ID)
	s.Titles[title.ID] = title
	s.Holdings[holding.ID] = holding
	return title
}

// realmRank maps a position in a realm group to its rank: the root kingdom,
// then two duchies, then four counties.
func realmRank(pos int) types.TitleRank {
	switch {
	case pos == 0:
		return types.RankKingdom
	case pos <= 2:
		return types.RankDuchy
	default:
		return types.RankCounty
	}
}

func linkVassal(liege, vassal *types.Title) {
	vassal.DejureLiegeID = liege.ID
	liege.VassalTitleIDs = append(liege.VassalTitleIDs, vassal.ID)
}

func marry(a, b *types.Character) {
	a.SpouseIDs = append(a.SpouseIDs, b.ID)
	b.SpouseIDs = append(b.SpouseIDs, a.ID)
}

// parents orders a couple as mother, father
func parents(a, b *types.Character) (mother, father *types.Character) {
	if a.Sex == types.SexFemale {
		return a, b
	}
	return b, a
}
