package game

import (
	"fmt"

	"github.com/user/house-eternal/internal/types"
	"go.uber.org/zap"
)

// Demographic constants of the weekly transition
const (
	oldAgeThreshold     = 40
	oldAgeRatePerYear   = 0.001
	frailtyRatePerPoint = 0.0005

	childMortalityAge    = 5
	childMortalityChance = 0.10

	maternalMortalityChance = 0.10

	fertileMinAge     = 16
	fertileMaxAge     = 45
	maxSharedChildren = 4
	conceptionRate    = 0.005
)

// Advance runs one simulated week over prev and returns the next state.
// prev is never modified. Once the game is over Advance returns prev as is.
func (e *Engine) Advance(prev *types.GameState) (*types.GameState, types.TickReport) {
	if prev.GameOver {
		return prev, types.TickReport{Week: prev.CurrentWeek, GameOver: true, Skipped: true}
	}

	s := prev.Clone()
	s.CurrentWeek++
	week := s.CurrentWeek
	report := types.TickReport{Week: week}

	ids := sortedKeys(s.Characters)

	report.Deaths = e.applyMortality(s, ids, week)
	births, maternalDeaths := e.advancePregnancies(s, ids, week)
	report.Births = births
	report.Deaths = append(report.Deaths, maternalDeaths...)
	e.startPregnancies(s, ids, week)
	report.Inheritances = e.runSuccession(s, week)
	report.HeirID = e.ensurePlayer(s, week)

	if !s.GameOver && Chance(e.rng, e.opts.EventProbability) {
		if player, ok := s.Characters[s.PlayerCharacterID]; ok && player.Alive {
			if ev := e.events.Generate(player, week, s.Characters); ev != nil {
				s.Events = append(s.Events, ev)
				report.NewEvents = append(report.NewEvents, ev.ID)
			}
		}
	}

	if e.opts.AutosaveInterval > 0 && week-s.LastAutosaveWeek >= e.opts.AutosaveInterval {
		s.LastAutosaveWeek = week
		report.Autosave = true
	}

	report.GameOver = s.GameOver
	return s, report
}

// applyMortality rolls old-age and child deaths
func (e *Engine) applyMortality(s *types.GameState, ids []string, week int) []string {
	var died []string
	for _, id := range ids {
		c := s.Characters[id]
		if !c.Alive {
			continue
		}
		age := types.Age(c, week)

		if age > oldAgeThreshold {
			chance := float64(age-oldAgeThreshold)*oldAgeRatePerYear +
				float64(100-clampPercent(c.Health))*frailtyRatePerPoint
			if Chance(e.rng, chance) {
				e.kill(s, c, week, types.EventDeath)
				died = append(died, id)
				continue
			}
		}

		if age < childMortalityAge && week%types.WeeksPerYear == 0 {
			if Chance(e.rng, childMortalityChance) {
				e.kill(s, c, week, types.EventDeath)
				died = append(died, id)
				continue
			}
		}
	}
	return died
}

// advancePregnancies counts pregnancies down and resolves births
func (e *Engine) advancePregnancies(s *types.GameState, ids []string, week int) (births, died []string) {
	for _, id := range ids {
		mother := s.Characters[id]
		if !mother.Alive || mother.PregnantWith == "" {
			continue
		}
		if mother.PregnancyWeeksRemaining <= 0 {
			// inconsistent record, nothing to count down
			mother.PregnantWith = ""
			mother.PregnancyWeeksRemaining = 0
			continue
		}

		mother.PregnancyWeeksRemaining--
		if mother.PregnancyWeeksRemaining > 0 {
			continue
		}

		father, ok := s.Characters[mother.PregnantWith]
		mother.PregnantWith = ""
		if !ok {
			continue
		}

		child := e.deliver(s, mother, father, week)
		births = append(births, child.ID)

		if Chance(e.rng, maternalMortalityChance) {
			e.kill(s, mother, week, types.EventChildbirthDeath)
			died = append(died, mother.ID)
		}
	}
	return births, died
}

// deliver creates the newborn and links it to both parents
func (e *Engine) deliver(s *types.GameState, mother, father *types.Character, week int) *types.Character {
	sex := types.SexMale
	if e.rng.Intn(2) == 1 {
		sex = types.SexFemale
	}

	// the lineage parent passes on dynasty and culture
	lineage, other := father, mother
	if mother.MatrilinealMarriage || father.MatrilinealMarriage {
		lineage, other = mother, father
	}
	dynastyID := lineage.DynastyID
	if dynastyID == "" {
		dynastyID = other.DynastyID
	}

	var court string
	switch {
	case lineage.IsRuler:
		court = lineage.ID
	case other.IsRuler:
		court = other.ID
	case lineage.AtCourt != "":
		court = lineage.AtCourt
	default:
		court = other.AtCourt
	}

	child := e.factory.CreateCharacter(
		e.factory.GenerateName(lineage.Culture, sex),
		sex,
		lineage.Culture,
		dynastyID,
		week,
		mother.ID,
		father.ID,
		court,
	)
	s.Characters[child.ID] = child
	mother.ChildrenIDs = append(mother.ChildrenIDs, child.ID)
	father.ChildrenIDs = append(father.ChildrenIDs, child.ID)

	noun := "son"
	if sex == types.SexFemale {
		noun = "daughter"
	}
	appendLog(s, types.EventBirth, "A Child is Born",
		fmt.Sprintf("%s has given birth to a %s named %s.", mother.Name, noun, child.Name), week, mother.ID)

	e.logger.Debug("Child born",
		zap.String("child_id", child.ID),
		zap.String("mother_id", mother.ID),
		zap.String("father_id", father.ID),
		zap.String("dynasty_id", dynastyID),
		zap.Int("week", week))

	return child
}

// startPregnancies rolls conception for every eligible married woman
func (e *Engine) startPregnancies(s *types.GameState, ids []string, week int) {
	for _, id := range ids {
		c := s.Characters[id]
		if !c.Alive || c.Sex != types.SexFemale || len(c.SpouseIDs) != 1 || c.PregnantWith != "" {
			continue
		}
		age := types.Age(c, week)
		if age < fertileMinAge || age > fertileMaxAge {
			continue
		}
		spouse, ok := s.Characters[c.SpouseIDs[0]]
		if !ok || !spouse.Alive {
			continue
		}
		if sharedChildren(c, spouse) >= maxSharedChildren {
			continue
		}

		chance := float64(clampPercent(c.Fertility)) / 100 *
			float64(clampPercent(spouse.Fertility)) / 100 * conceptionRate
		if Chance(e.rng, chance) {
			c.PregnantWith = spouse.ID
			c.PregnancyWeeksRemaining = PregnancyWeeks
		}
	}
}

// sharedChildren counts children listed by both parents, living or dead
func sharedChildren(a, b *types.Character) int {
	theirs := make(map[string]bool, len(b.ChildrenIDs))
	for _, id := range b.ChildrenIDs {
		theirs[id] = true
	}
	count := 0
	for _, id := range a.ChildrenIDs {
		if theirs[id] {
			count++
		}
	}
	return count
}

// ensurePlayer hands control to an heir when the player character is gone,
// or ends the game when the dynasty has no living members. It returns the
// new player character id when control changed.
func (e *Engine) ensurePlayer(s *types.GameState, week int) string {
	if player, ok := s.Characters[s.PlayerCharacterID]; ok && player.Alive {
		return ""
	}

	var members []*types.Character
	for _, id := range sortedKeys(s.Characters) {
		c := s.Characters[id]
		if c.Alive && c.DynastyID == s.PlayerDynastyID {
			members = append(members, c)
		}
	}

	if len(members) == 0 {
		name := "dynasty"
		if d, ok := s.Dynasties[s.PlayerDynastyID]; ok {
			name = "House of " + d.Name
		}
		s.GameOver = true
		s.GameOverReason = fmt.Sprintf("The %s has ended. No living heirs remain.", name)
		appendLog(s, types.EventGameOver, "The End", s.GameOverReason, week, s.PlayerCharacterID)
		e.logger.Info("Dynasty extinct",
			zap.String("dynasty_id", s.PlayerDynastyID),
			zap.Int("week", week))
		return ""
	}

	heir := e.pickHeir(s, members)
	previous := s.PlayerCharacterID
	s.PlayerCharacterID = heir.ID
	appendLog(s, types.EventHeir, "A New Head of House",
		fmt.Sprintf("You now play as %s.", heir.Name), week, heir.ID)

	e.logger.Info("Player control passed to heir",
		zap.String("previous_character_id", previous),
		zap.String("character_id", heir.ID),
		zap.Int("week", week))
	return heir.ID
}

// pickHeir prefers the deceased player's primogeniture line within the
// dynasty, then a ruling member, then the eldest member.
func (e *Engine) pickHeir(s *types.GameState, members []*types.Character) *types.Character {
	for _, id := range CalculateSuccessionLine(s.PlayerCharacterID, s.Characters, types.LawPrimogeniture) {
		if c := s.Characters[id]; c.DynastyID == s.PlayerDynastyID {
			return c
		}
	}

	var eldest, ruler *types.Character
	for _, c := range members {
		if c.IsRuler && (ruler == nil || c.BirthWeek < ruler.BirthWeek) {
			ruler = c
		}
		if eldest == nil || c.BirthWeek < eldest.BirthWeek {
			eldest = c
		}
	}
	if ruler != nil {
		return ruler
	}
	return eldest
}
