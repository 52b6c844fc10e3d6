package sim

import (
	"math"
	"sort"
)

// fireControl lets every armed structure whose cooldown has elapsed shoot
// at the closest units in range, one projectile per target up to its
// projectile count.
func (s *Sim) fireControl(structures []*Structure) []Effect {
	type candidate struct {
		unit *Unit
		dist float64
	}

	var effects []Effect
	for _, st := range structures {
		if !st.Active || !st.HasAttack() {
			continue
		}
		a := st.Attack
		if !a.Ready(s.now) {
			continue
		}

		origin := st.Anchor.Point()
		var candidates []candidate
		for _, u := range s.units {
			if !u.Alive() {
				continue
			}
			if d := origin.Dist(u.Pos); d <= a.Range {
				candidates = append(candidates, candidate{unit: u, dist: d})
			}
		}
		if len(candidates) == 0 {
			continue
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].dist < candidates[j].dist
		})

		count := a.Projectiles
		if count < 1 {
			count = 1
		}
		if count > len(candidates) {
			count = len(candidates)
		}

		nearest := candidates[0].unit.Pos
		a.Angle = math.Atan2(nearest.Y-origin.Y, nearest.X-origin.X)
		for _, c := range candidates[:count] {
			effects = append(effects, SpawnProjectile{
				Source:    st.ID,
				From:      origin,
				Target:    c.unit.ID,
				TargetPos: c.unit.Pos,
				Damage:    a.Damage,
			})
		}
		a.LastAttack = s.now
		a.Fired = true
	}
	return effects
}
