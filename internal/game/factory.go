package game

import (
	"github.com/google/uuid"
	"github.com/user/house-eternal/internal/types"
	"github.com/user/house-eternal/internal/world"
)

// Pregnancy length in weeks
const PregnancyWeeks = 40

const (
	startingPrestige = 100
	defaultMotto     = "Glory through the ages"
	randomTraitCount = 2
)

var (
	heraldryPrimary   = []string{"#1E3A5F", "#4A0E4E", "#2F4F4F", "#8B0000", "#1B4D3E", "#4B0082", "#800020", "#003366"}
	heraldrySecondary = []string{"#FFD700", "#C0C0C0", "#B8860B", "#CD853F"}
)

// Factory constructs new entities with randomized attributes. It never
// registers what it builds; callers own insertion into the state tables.
type Factory struct {
	tables *world.Tables
	rng    Rand
}

// NewFactory creates a factory over the given tables and random source
func NewFactory(tables *world.Tables, rng Rand) *Factory {
	return &Factory{tables: tables, rng: rng}
}

func newID() string {
	return uuid.New().String()
}

// CreateCharacter builds a living character. Empty ids mean "none".
func (f *Factory) CreateCharacter(name string, sex types.Sex, culture types.CultureID, dynastyID string, birthWeek int, motherID, fatherID, courtID string) *types.Character {
	return &types.Character{
		ID:          newID(),
		Name:        name,
		Sex:         sex,
		Culture:     culture,
		DynastyID:   dynastyID,
		BirthWeek:   birthWeek,
		Alive:       true,
		MotherID:    motherID,
		FatherID:    fatherID,
		SpouseIDs:   []string{},
		ChildrenIDs: []string{},
		Traits:      f.randomTraits(randomTraitCount),
		Skills: types.Skills{
			Diplomacy:   RangeInt(f.rng, 3, 18),
			Martial:     RangeInt(f.rng, 3, 18),
			Stewardship: RangeInt(f.rng, 3, 18),
			Intrigue:    RangeInt(f.rng, 3, 18),
			Learning:    RangeInt(f.rng, 3, 18),
		},
		Health:    RangeInt(f.rng, 80, 120),
		Fertility: RangeInt(f.rng, 60, 100),
		Opinions:  map[string]int{},
		Portrait:  f.randomPortrait(),
		AtCourt:   courtID,
	}
}

// CreateDynasty builds a dynasty with starting prestige and random heraldry
func (f *Factory) CreateDynasty(name, founderID string, culture types.CultureID) *types.Dynasty {
	return &types.Dynasty{
		ID:        newID(),
		Name:      name,
		FounderID: founderID,
		Culture:   culture,
		Prestige:  startingPrestige,
		Motto:     defaultMotto,
		CoatOfArms: types.CoatOfArms{
			PrimaryColor:   Pick(f.rng, heraldryPrimary),
			SecondaryColor: Pick(f.rng, heraldrySecondary),
			Symbol:         f.rng.Intn(10),
		},
	}
}

// CreateTitle builds a title under primogeniture
func (f *Factory) CreateTitle(name string, rank types.TitleRank, holderID string) *types.Title {
	return &types.Title{
		ID:             newID(),
		Name:           name,
		Rank:           rank,
		HolderID:       holderID,
		SuccessionLaw:  types.LawPrimogeniture,
		ClaimantIDs:    []string{},
		VassalTitleIDs: []string{},
	}
}

// CreateHolding builds a holding for a title
func (f *Factory) CreateHolding(name, titleID string) *types.Holding {
	return &types.Holding{
		ID:          newID(),
		Name:        name,
		TitleID:     titleID,
		Income:      RangeInt(f.rng, 10, 30),
		Levies:      RangeInt(f.rng, 100, 300),
		Development: RangeInt(f.rng, 1, 6),
	}
}

// GenerateName picks a given name from the culture's pool
func (f *Factory) GenerateName(culture types.CultureID, sex types.Sex) string {
	c, ok := f.tables.Culture(culture)
	if !ok {
		return "Nameless"
	}
	return Pick(f.rng, c.Names(sex))
}

// GenerateDynastyName picks a house name from the culture's pool
func (f *Factory) GenerateDynastyName(culture types.CultureID) string {
	c, ok := f.tables.Culture(culture)
	if !ok {
		return "Unknown"
	}
	return Pick(f.rng, c.DynastyNames)
}

// randomTraits draws count distinct traits without replacement
func (f *Factory) randomTraits(count int) []types.TraitID {
	available := f.tables.TraitIDs()
	selected := make([]types.TraitID, 0, count)
	for i := 0; i < count && len(available) > 0; i++ {
		idx := f.rng.Intn(len(available))
		selected = append(selected, available[idx])
		available = append(available[:idx], available[idx+1:]...)
	}
	return selected
}

func (f *Factory) randomPortrait() types.PortraitData {
	return types.PortraitData{
		Seed:          f.rng.Intn(1000000),
		HeadShape:     f.rng.Intn(3),
		EyeStyle:      f.rng.Intn(3),
		HairStyle:     f.rng.Intn(4),
		HairColor:     f.rng.Intn(8),
		SkinTone:      f.rng.Intn(5),
		BeardStyle:    f.rng.Intn(4),
		ClothingStyle: f.rng.Intn(3),
	}
}
