package types

// Sex drives marriage eligibility and pregnancy
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether s is a known sex
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Opposite returns the other sex
func (s Sex) Opposite() Sex {
	if s == SexMale {
		return SexFemale
	}
	return SexMale
}

// CultureID identifies an entry in the culture table
type CultureID string

const (
	CultureAnglo    CultureID = "anglo"
	CultureFrankish CultureID = "frankish"
	CultureNorse    CultureID = "norse"
	CultureIberian  CultureID = "iberian"
)

// AllCultures lists every culture in a fixed order
var AllCultures = []CultureID{CultureAnglo, CultureFrankish, CultureNorse, CultureIberian}

// Valid reports whether c is a known culture
func (c CultureID) Valid() bool {
	switch c {
	case CultureAnglo, CultureFrankish, CultureNorse, CultureIberian:
		return true
	}
	return false
}

// TraitID identifies an entry in the trait catalog
type TraitID string

const (
	TraitBrave     TraitID = "brave"
	TraitCraven    TraitID = "craven"
	TraitAmbitious TraitID = "ambitious"
	TraitContent   TraitID = "content"
	TraitCruel     TraitID = "cruel"
	TraitKind      TraitID = "kind"
	TraitGreedy    TraitID = "greedy"
	TraitGenerous  TraitID = "generous"
	TraitLustful   TraitID = "lustful"
	TraitChaste    TraitID = "chaste"
	TraitWrathful  TraitID = "wrathful"
	TraitPatient   TraitID = "patient"
	TraitDeceitful TraitID = "deceitful"
	TraitHonest    TraitID = "honest"
	TraitProud     TraitID = "proud"
	TraitHumble    TraitID = "humble"
	TraitGenius    TraitID = "genius"
	TraitImbecile  TraitID = "imbecile"
	TraitStrong    TraitID = "strong"
	TraitWeak      TraitID = "weak"
	TraitBeautiful TraitID = "beautiful"
	TraitUgly      TraitID = "ugly"
	TraitFertile   TraitID = "fertile"
	TraitBarren    TraitID = "barren"
)

// AllTraits lists every trait in catalog order
var AllTraits = []TraitID{
	TraitBrave, TraitCraven, TraitAmbitious, TraitContent, TraitCruel, TraitKind,
	TraitGreedy, TraitGenerous, TraitLustful, TraitChaste, TraitWrathful, TraitPatient,
	TraitDeceitful, TraitHonest, TraitProud, TraitHumble, TraitGenius, TraitImbecile,
	TraitStrong, TraitWeak, TraitBeautiful, TraitUgly, TraitFertile, TraitBarren,
}

// Valid reports whether t is a known trait
func (t TraitID) Valid() bool {
	for _, id := range AllTraits {
		if id == t {
			return true
		}
	}
	return false
}

// SkillID names one of the five skills
type SkillID string

const (
	SkillDiplomacy   SkillID = "diplomacy"
	SkillMartial     SkillID = "martial"
	SkillStewardship SkillID = "stewardship"
	SkillIntrigue    SkillID = "intrigue"
	SkillLearning    SkillID = "learning"
)

// AllSkills lists the skills in display order
var AllSkills = []SkillID{SkillDiplomacy, SkillMartial, SkillStewardship, SkillIntrigue, SkillLearning}

// Valid reports whether s is a known skill
func (s SkillID) Valid() bool {
	switch s {
	case SkillDiplomacy, SkillMartial, SkillStewardship, SkillIntrigue, SkillLearning:
		return true
	}
	return false
}

// TitleRank is the ordered rank of a title
type TitleRank string

const (
	RankBarony  TitleRank = "barony"
	RankCounty  TitleRank = "county"
	RankDuchy   TitleRank = "duchy"
	RankKingdom TitleRank = "kingdom"
	RankEmpire  TitleRank = "empire"
)

// Level returns the rank position, barony being 1. Unknown ranks return 0.
func (r TitleRank) Level() int {
	switch r {
	case RankBarony:
		return 1
	case RankCounty:
		return 2
	case RankDuchy:
		return 3
	case RankKingdom:
		return 4
	case RankEmpire:
		return 5
	}
	return 0
}

// Valid reports whether r is a known rank
func (r TitleRank) Valid() bool {
	return r.Level() > 0
}

// SuccessionLaw decides how a succession line is ordered
type SuccessionLaw string

const (
	LawPrimogeniture  SuccessionLaw = "primogeniture"
	LawUltimogeniture SuccessionLaw = "ultimogeniture"
	LawGavelkind      SuccessionLaw = "gavelkind"
	LawElective       SuccessionLaw = "elective"
)

// Valid reports whether l is a known succession law
func (l SuccessionLaw) Valid() bool {
	switch l {
	case LawPrimogeniture, LawUltimogeniture, LawGavelkind, LawElective:
		return true
	}
	return false
}

// EventType tags a GameEvent
type EventType string

// Event template types
const (
	EventFeast                EventType = "feast"
	EventIllness              EventType = "illness"
	EventIntrigue             EventType = "intrigue"
	EventTournament           EventType = "tournament"
	EventBirthComplication    EventType = "birth_complication"
	EventHeirEducation        EventType = "heir_education"
	EventPlague               EventType = "plague"
	EventAssassinationAttempt EventType = "assassination_attempt"
	EventScholarVisit         EventType = "scholar_visit"
	EventAmbitiousVassal      EventType = "ambitious_vassal"
	EventReligiousFestival    EventType = "religious_festival"
	EventHuntingAccident      EventType = "hunting_accident"
)

// Narrative log entry types
const (
	EventDeath           EventType = "death"
	EventChildbirthDeath EventType = "childbirth_death"
	EventBirth           EventType = "birth"
	EventInheritance     EventType = "inheritance"
	EventHeir            EventType = "heir"
	EventMarriage        EventType = "marriage"
	EventGameOver        EventType = "game_over"
)

// Valid reports whether e is a known event type
func (e EventType) Valid() bool {
	switch e {
	case EventFeast, EventIllness, EventIntrigue, EventTournament, EventBirthComplication,
		EventHeirEducation, EventPlague, EventAssassinationAttempt, EventScholarVisit,
		EventAmbitiousVassal, EventReligiousFestival, EventHuntingAccident,
		EventDeath, EventChildbirthDeath, EventBirth, EventInheritance, EventHeir,
		EventMarriage, EventGameOver:
		return true
	}
	return false
}

// EffectType names the kind of mutation an EventEffect performs
type EffectType string

const (
	EffectHealth    EffectType = "health"
	EffectFertility EffectType = "fertility"
	EffectSkill     EffectType = "skill"
	EffectOpinion   EffectType = "opinion"
	EffectPrestige  EffectType = "prestige"
	EffectTrait     EffectType = "trait"
	EffectDeath     EffectType = "death"
	EffectGold      EffectType = "gold"
)

// Valid reports whether e is a known effect type
func (e EffectType) Valid() bool {
	switch e {
	case EffectHealth, EffectFertility, EffectSkill, EffectOpinion,
		EffectPrestige, EffectTrait, EffectDeath, EffectGold:
		return true
	}
	return false
}

// Speed is the simulation speed tier; 0 pauses
type Speed int

// Valid reports whether s is one of the supported tiers
func (s Speed) Valid() bool {
	switch s {
	case 0, 1, 2, 4, 8:
		return true
	}
	return false
}
