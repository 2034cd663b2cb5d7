package game

import (
	"github.com/user/house-eternal/internal/types"
	"go.uber.org/zap"
)

// ApplyEffects applies each effect to its target, defaulting to subjectID.
// Effects naming a missing character are skipped. It returns the ids of
// characters killed by a death effect.
func (e *Engine) ApplyEffects(s *types.GameState, subjectID string, effects []types.EventEffect) []string {
	var killed []string
	for _, eff := range effects {
		targetID := eff.Target
		if targetID == "" {
			targetID = subjectID
		}
		target, ok := s.Characters[targetID]
		if !ok {
			e.logger.Debug("Effect target missing",
				zap.String("target_id", targetID),
				zap.String("effect", string(eff.Type)))
			continue
		}

		switch eff.Type {
		case types.EffectHealth:
			target.Health = clampPercent(target.Health + eff.Value)
		case types.EffectFertility:
			target.Fertility = clampPercent(target.Fertility + eff.Value)
		case types.EffectSkill:
			current := target.Skills.Get(eff.Skill)
			target.Skills.Set(eff.Skill, max(0, current+eff.Value))
		case types.EffectTrait:
			if eff.Trait.Valid() && !target.HasTrait(eff.Trait) {
				target.Traits = append(target.Traits, eff.Trait)
			}
		case types.EffectDeath:
			if target.Alive {
				e.kill(s, target, s.CurrentWeek, types.EventDeath)
				killed = append(killed, target.ID)
			}
		case types.EffectPrestige:
			if d, ok := s.Dynasties[target.DynastyID]; ok {
				d.Prestige += eff.Value
			}
		case types.EffectOpinion:
			if target.ID != subjectID {
				if target.Opinions == nil {
					target.Opinions = map[string]int{}
				}
				target.Opinions[subjectID] += eff.Value
			}
		case types.EffectGold:
			// no treasury in the model yet
		}
	}
	return killed
}
