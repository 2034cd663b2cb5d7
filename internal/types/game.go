package types

// WeeksPerYear is the number of simulated weeks in one year
const WeeksPerYear = 52

// GameState represents the overall state of the game
type GameState struct {
	CurrentWeek       int    `json:"current_week"`
	Speed             Speed  `json:"speed"`
	PlayerDynastyID   string `json:"player_dynasty_id"`
	PlayerCharacterID string `json:"player_character_id"`

	Characters map[string]*Character `json:"characters"`
	Dynasties  map[string]*Dynasty   `json:"dynasties"`
	Titles     map[string]*Title     `json:"titles"`
	Holdings   map[string]*Holding   `json:"holdings"`

	// Pending events awaiting a choice, oldest first
	Events []*GameEvent `json:"events"`

	// Resolved events and narrative log entries
	EventLog []*GameEvent `json:"event_log"`

	LastAutosaveWeek int    `json:"last_autosave_week"`
	GameOver         bool   `json:"game_over"`
	GameOverReason   string `json:"game_over_reason,omitempty"`
}

// NewGameState returns an empty state with all tables initialized
func NewGameState() *GameState {
	return &GameState{
		Characters: make(map[string]*Character),
		Dynasties:  make(map[string]*Dynasty),
		Titles:     make(map[string]*Title),
		Holdings:   make(map[string]*Holding),
		Events:     make([]*GameEvent, 0),
		EventLog:   make([]*GameEvent, 0),
	}
}

// Skills holds the five character skills
type Skills struct {
	Diplomacy   int `json:"diplomacy"`
	Martial     int `json:"martial"`
	Stewardship int `json:"stewardship"`
	Intrigue    int `json:"intrigue"`
	Learning    int `json:"learning"`
}

// Get returns the value of a skill. Unknown skills read as zero.
func (s Skills) Get(id SkillID) int {
	switch id {
	case SkillDiplomacy:
		return s.Diplomacy
	case SkillMartial:
		return s.Martial
	case SkillStewardship:
		return s.Stewardship
	case SkillIntrigue:
		return s.Intrigue
	case SkillLearning:
		return s.Learning
	}
	return 0
}

// Set assigns a skill value. It reports false for an unknown skill.
func (s *Skills) Set(id SkillID, value int) bool {
	switch id {
	case SkillDiplomacy:
		s.Diplomacy = value
	case SkillMartial:
		s.Martial = value
	case SkillStewardship:
		s.Stewardship = value
	case SkillIntrigue:
		s.Intrigue = value
	case SkillLearning:
		s.Learning = value
	default:
		return false
	}
	return true
}

// PortraitData is opaque seed data consumed by renderers
type PortraitData struct {
	Seed          int `json:"seed"`
	HeadShape     int `json:"head_shape"`
	EyeStyle      int `json:"eye_style"`
	HairStyle     int `json:"hair_style"`
	HairColor     int `json:"hair_color"`
	SkinTone      int `json:"skin_tone"`
	BeardStyle    int `json:"beard_style"`
	ClothingStyle int `json:"clothing_style"`
}

// Character represents a person in the world.
// Id references to other entities are empty when absent.
type Character struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Sex       Sex       `json:"sex"`
	Culture   CultureID `json:"culture"`
	DynastyID string    `json:"dynasty_id,omitempty"`
	BirthWeek int       `json:"birth_week"`
	DeathWeek *int      `json:"death_week,omitempty"`
	Alive     bool      `json:"alive"`

	// Family
	MotherID    string   `json:"mother_id,omitempty"`
	FatherID    string   `json:"father_id,omitempty"`
	SpouseIDs   []string `json:"spouse_ids"`
	ChildrenIDs []string `json:"children_ids"`

	Traits    []TraitID      `json:"traits"`
	Skills    Skills         `json:"skills"`
	Health    int            `json:"health"`
	Fertility int            `json:"fertility"`
	Opinions  map[string]int `json:"opinions"`
	Portrait  PortraitData   `json:"portrait"`

	// Status
	PregnantWith            string `json:"pregnant_with,omitempty"`
	PregnancyWeeksRemaining int    `json:"pregnancy_weeks_remaining"`
	IsRuler                 bool   `json:"is_ruler"`
	PrimaryTitleID          string `json:"primary_title_id,omitempty"`
	AtCourt                 string `json:"at_court,omitempty"`
	MatrilinealMarriage     bool   `json:"matrilineal_marriage"`
}

// HasTrait reports whether the character carries a trait
func (c *Character) HasTrait(id TraitID) bool {
	for _, t := range c.Traits {
		if t == id {
			return true
		}
	}
	return false
}

// Kill marks the character dead at the given week
func (c *Character) Kill(week int) {
	c.Alive = false
	w := week
	c.DeathWeek = &w
	c.PregnantWith = ""
	c.PregnancyWeeksRemaining = 0
}

// CoatOfArms is cosmetic dynasty heraldry
type CoatOfArms struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	Symbol         int    `json:"symbol"`
}

// Dynasty represents a noble house
type Dynasty struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	FounderID  string     `json:"founder_id"`
	Culture    CultureID  `json:"culture"`
	Prestige   int        `json:"prestige"`
	Motto      string     `json:"motto"`
	CoatOfArms CoatOfArms `json:"coat_of_arms"`
}

// Title represents a landed title
type Title struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Rank           TitleRank     `json:"rank"`
	HolderID       string        `json:"holder_id,omitempty"`
	SuccessionLaw  SuccessionLaw `json:"succession_law"`
	ClaimantIDs    []string      `json:"claimant_ids"`
	DejureLiegeID  string        `json:"dejure_liege_id,omitempty"`
	VassalTitleIDs []string      `json:"vassal_title_ids"`
}

// Holding represents a castle, city or temple attached to a title
type Holding struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TitleID     string `json:"title_id"`
	Income      int    `json:"income"`
	Levies      int    `json:"levies"`
	Development int    `json:"development"` // 1-6
}

// EventEffect is a single mutation applied when an event choice resolves
type EventEffect struct {
	Type   EffectType `json:"type" yaml:"type"`
	Target string     `json:"target,omitempty" yaml:"target,omitempty"` // defaults to the event subject
	Skill  SkillID    `json:"skill,omitempty" yaml:"skill,omitempty"`
	Trait  TraitID    `json:"trait,omitempty" yaml:"trait,omitempty"`
	Value  int        `json:"value,omitempty" yaml:"value,omitempty"`
}

// EventChoice is one option of an event
type EventChoice struct {
	Text    string        `json:"text" yaml:"text"`
	Effects []EventEffect `json:"effects" yaml:"effects"`
}

// GameEvent is either a pending decision or a narrative log entry
type GameEvent struct {
	ID          string        `json:"id"`
	Type        EventType     `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Week        int           `json:"week"`
	CharacterID string        `json:"character_id"`
	Choices     []EventChoice `json:"choices,omitempty"`
	Resolved    bool          `json:"resolved"`
	ChosenIndex *int          `json:"chosen_index,omitempty"`
}

// TickReport summarizes one simulated week
type TickReport struct {
	Week         int      `json:"week"`
	Deaths       []string `json:"deaths,omitempty"`
	Births       []string `json:"births,omitempty"`
	Inheritances int      `json:"inheritances"`
	NewEvents    []string `json:"new_events,omitempty"`
	HeirID       string   `json:"heir_id,omitempty"`
	Autosave     bool     `json:"autosave"`
	GameOver     bool     `json:"game_over"`
	Skipped      bool     `json:"skipped"` // the game was already over; nothing changed
}

// NewGameConfig is the initial configuration collected by the main menu
type NewGameConfig struct {
	DynastyName string    `json:"dynasty_name"`
	RulerName   string    `json:"ruler_name"`
	Culture     CultureID `json:"culture"`
	Sex         Sex       `json:"sex"`
}

// Age returns a character's age in whole years at the given week.
// Dead characters stop aging at their death week.
func Age(c *Character, currentWeek int) int {
	week := currentWeek
	if !c.Alive && c.DeathWeek != nil {
		week = *c.DeathWeek
	}
	return floorDiv(week-c.BirthWeek, WeeksPerYear)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
