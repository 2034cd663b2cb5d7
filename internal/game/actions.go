package game

import (
	"fmt"

	"github.com/user/house-eternal/internal/types"
	"go.uber.org/zap"
)

const marriageMinimumAge = 16

// Court invitation acceptance tuning
const (
	inviteBaseChance     = 0.5
	invitePrestigeScale  = 500.0
	invitePrestigeCap    = 0.3
	inviteDiplomacyScale = 100.0
	inviteMaxChance      = 0.95
)

// The action handlers mutate s in place and report success. A false return
// leaves s untouched.

// ArrangeMarriage weds a and b. The wife joins the husband's court unless she
// rules, in which case he joins hers.
func (e *Engine) ArrangeMarriage(s *types.GameState, aID, bID string, matrilineal bool) bool {
	a, okA := s.Characters[aID]
	b, okB := s.Characters[bID]
	if !okA || !okB || aID == bID {
		return false
	}
	if !a.Alive || !b.Alive {
		return false
	}
	if len(a.SpouseIDs) > 0 || len(b.SpouseIDs) > 0 {
		return false
	}
	week := s.CurrentWeek
	if types.Age(a, week) < marriageMinimumAge || types.Age(b, week) < marriageMinimumAge {
		return false
	}
	if a.Sex == b.Sex {
		return false
	}

	husband, wife := a, b
	if a.Sex == types.SexFemale {
		husband, wife = b, a
	}

	switch {
	case wife.IsRuler:
		husband.AtCourt = wife.ID
	case husband.IsRuler:
		wife.AtCourt = husband.ID
	default:
		wife.AtCourt = husband.AtCourt
	}

	husband.SpouseIDs = append(husband.SpouseIDs, wife.ID)
	wife.SpouseIDs = append(wife.SpouseIDs, husband.ID)
	husband.MatrilinealMarriage = matrilineal
	wife.MatrilinealMarriage = matrilineal

	kind := "marriage"
	if matrilineal {
		kind = "matrilineal marriage"
	}
	appendLog(s, types.EventMarriage, "A Wedding",
		fmt.Sprintf("%s and %s are joined in %s.", husband.Name, wife.Name, kind), week, husband.ID)

	e.logger.Debug("Marriage arranged",
		zap.String("husband_id", husband.ID),
		zap.String("wife_id", wife.ID),
		zap.Bool("matrilineal", matrilineal))
	return true
}

// InviteChance returns the probability that a character accepts an
// invitation to the player's court.
func InviteChance(s *types.GameState) float64 {
	prestige := 0
	if d, ok := s.Dynasties[s.PlayerDynastyID]; ok {
		prestige = d.Prestige
	}
	diplomacy := 0
	if p, ok := s.Characters[s.PlayerCharacterID]; ok {
		diplomacy = p.Skills.Diplomacy
	}
	prestigeBonus := min(float64(prestige)/invitePrestigeScale, invitePrestigeCap)
	return min(inviteBaseChance+prestigeBonus+float64(diplomacy)/inviteDiplomacyScale, inviteMaxChance)
}

// InviteToCourt asks a foreign character to join the player's court. A
// declined invitation returns false.
func (e *Engine) InviteToCourt(s *types.GameState, characterID string) bool {
	c, ok := s.Characters[characterID]
	if !ok || !c.Alive {
		return false
	}
	if c.DynastyID == s.PlayerDynastyID || c.AtCourt == s.PlayerCharacterID {
		return false
	}
	if c.ID == s.PlayerCharacterID {
		return false
	}

	if !Chance(e.rng, InviteChance(s)) {
		e.logger.Debug("Invitation declined", zap.String("character_id", characterID))
		return false
	}

	c.AtCourt = s.PlayerCharacterID
	e.logger.Debug("Invitation accepted", zap.String("character_id", characterID))
	return true
}

// BanishFromCourt removes a character from the player's court
func (e *Engine) BanishFromCourt(s *types.GameState, characterID string) bool {
	c, ok := s.Characters[characterID]
	if !ok || c.AtCourt == "" || c.AtCourt != s.PlayerCharacterID {
		return false
	}
	c.AtCourt = ""
	e.logger.Debug("Character banished", zap.String("character_id", characterID))
	return true
}

// GrantTitle hands one of the player's titles to another living character
func (e *Engine) GrantTitle(s *types.GameState, characterID, titleID string) bool {
	target, ok := s.Characters[characterID]
	if !ok || !target.Alive {
		return false
	}
	t, ok := s.Titles[titleID]
	if !ok || t.HolderID == "" || t.HolderID != s.PlayerCharacterID {
		return false
	}
	if characterID == s.PlayerCharacterID {
		return false
	}

	t.HolderID = target.ID
	if target.PrimaryTitleID == "" {
		target.PrimaryTitleID = t.ID
		target.IsRuler = true
	}

	if player, ok := s.Characters[s.PlayerCharacterID]; ok {
		if player.PrimaryTitleID == titleID || player.PrimaryTitleID == "" {
			player.PrimaryTitleID = ""
			for _, id := range sortedKeys(s.Titles) {
				if s.Titles[id].HolderID == player.ID {
					player.PrimaryTitleID = id
					break
				}
			}
		}
		if !holdsTitle(s, player.ID) {
			player.IsRuler = false
		}
	}

	e.logger.Debug("Title granted",
		zap.String("title_id", titleID),
		zap.String("character_id", characterID))
	return true
}

// ResolveEvent applies the chosen option of a pending event and moves the
// event to the log. Index 0 acknowledges an event without choices.
func (e *Engine) ResolveEvent(s *types.GameState, eventID string, choiceIndex int) bool {
	pos := -1
	for i, ev := range s.Events {
		if ev.ID == eventID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false
	}
	ev := s.Events[pos]
	if ev.Resolved {
		return false
	}

	var effects []types.EventEffect
	switch {
	case len(ev.Choices) == 0 && choiceIndex == 0:
	case choiceIndex >= 0 && choiceIndex < len(ev.Choices):
		effects = ev.Choices[choiceIndex].Effects
	default:
		return false
	}

	killed := e.ApplyEffects(s, ev.CharacterID, effects)

	idx := choiceIndex
	ev.Resolved = true
	ev.ChosenIndex = &idx
	s.Events = append(s.Events[:pos], s.Events[pos+1:]...)
	s.EventLog = append(s.EventLog, ev)

	if len(killed) > 0 {
		if e.opts.EventDeathSuccession {
			e.runSuccession(s, s.CurrentWeek)
			e.ensurePlayer(s, s.CurrentWeek)
		} else {
			e.logger.Warn("Event death leaves titles until the next tick",
				zap.String("event_id", ev.ID),
				zap.Strings("killed", killed))
		}
	}

	e.logger.Debug("Event resolved",
		zap.String("event_id", ev.ID),
		zap.String("type", string(ev.Type)),
		zap.Int("choice", choiceIndex))
	return true
}
