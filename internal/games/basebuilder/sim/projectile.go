package sim

// stepProjectiles moves every projectile toward its target. A projectile
// whose target died keeps flying to the last known position and fizzles
// there. Projectiles are single-use: hit or miss, they deactivate once
// they reach the target point.
func (s *Sim) stepProjectiles() []Effect {
	var effects []Effect
	threshold := s.settings.Projectiles.HitThreshold

	for _, p := range s.projectiles {
		if !p.Active {
			continue
		}

		target := s.unitByID(p.TargetID)
		if target != nil && !target.Alive() {
			target = nil
		}
		aim := p.TargetPos
		if target != nil {
			aim = target.Pos
		}

		if p.Pos.Dist(aim) < threshold {
			if target != nil {
				effects = append(effects, DamageUnit{Target: target.ID, Amount: p.Damage, Cause: CauseProjectile})
			}
			p.Active = false
			continue
		}

		p.Pos, _ = p.Pos.Toward(aim, p.Speed)
		if target != nil {
			p.TargetPos = target.Pos
		}
	}
	return effects
}
