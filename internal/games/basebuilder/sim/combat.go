package sim

import "math"

// resolveCombat advances unit attacks. A unit in the attacking state whose
// cooldown has elapsed starts a windup; when the windup completes the hit
// lands on its target and counter-damage is returned from structures that
// carry it.
func (s *Sim) resolveCombat(structures []*Structure) []Effect {
	var effects []Effect
	step := s.settings.Combat.WindupStep

	for _, u := range s.units {
		if !u.Alive() {
			continue
		}

		if u.Winding {
			u.Windup = math.Min(1, u.Windup+step)
			if u.Windup < 1 {
				continue
			}
			u.Winding = false
			u.Windup = 0

			target := findActive(structures, u.TargetID)
			if target == nil {
				continue
			}
			effects = append(effects, DamageStructure{Target: target.ID, Amount: u.Damage, Source: u.ID})
			if target.HasCounterDamage() {
				if spike := target.Spike + s.economy.SpikeBonus; spike > 0 {
					effects = append(effects, DamageUnit{Target: u.ID, Amount: spike, Cause: CauseSpike})
				}
			}
			continue
		}

		if u.State != UnitAttacking {
			continue
		}
		if u.attacked && s.now.Sub(u.LastAttack) <= u.Cooldown {
			continue
		}
		u.Winding = true
		u.Windup = 0
		u.LastAttack = s.now
		u.attacked = true
	}
	return effects
}
