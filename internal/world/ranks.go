package world

import (
	"fmt"

	"github.com/user/house-eternal/internal/types"
)

// StartYear is the calendar year of week 0
const StartYear = 867

var rankNames = map[types.TitleRank][2]string{
	types.RankBarony:  {"Baron", "Baroness"},
	types.RankCounty:  {"Count", "Countess"},
	types.RankDuchy:   {"Duke", "Duchess"},
	types.RankKingdom: {"King", "Queen"},
	types.RankEmpire:  {"Emperor", "Empress"},
}

var months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// RankName returns the holder's style for a rank, e.g. "Duchess"
func RankName(rank types.TitleRank, sex types.Sex) string {
	names, ok := rankNames[rank]
	if !ok {
		return ""
	}
	if sex == types.SexFemale {
		return names[1]
	}
	return names[0]
}

// FormatWeek renders a simulation week as "Month Year"
func FormatWeek(week int) string {
	year := StartYear + week/types.WeeksPerYear
	weekOfYear := week % types.WeeksPerYear
	if weekOfYear < 0 {
		weekOfYear += types.WeeksPerYear
		year--
	}
	month := int(float64(weekOfYear) / 4.33)
	if month > 11 {
		month = 11
	}
	return fmt.Sprintf("%s %d", months[month], year)
}

// EffectiveSkill folds the character's trait effects into a skill value
func (t *Tables) EffectiveSkill(c *types.Character, skill types.SkillID) int {
	value := c.Skills.Get(skill)
	for _, id := range c.Traits {
		if trait, ok := t.Traits[id]; ok {
			value += trait.Effects[string(skill)]
		}
	}
	return value
}
