package basebuilder

import (
	"fmt"

	"github.com/chubes4/chubes-games/internal/core"
	"github.com/chubes4/chubes-games/internal/games/basebuilder/sim"
)

// Command is one numbered command available at the cursor: building a
// kind on an empty cell, or buying an upgrade for the structure under it.
type Command struct {
	Slot        int
	Label       string
	Cost        int
	Available   bool
	Build       sim.Kind
	Upgrade     string
	Structure   sim.StructureID
	Description string
}

// Options lists the commands for the cursor cell, at most one per slot.
func (g *Game) Options() []Command {
	var opts []Command
	econ := g.sim.Economy()
	catalog := g.sim.Settings().Catalog

	if st := g.sim.StructureAt(g.cursor); st != nil {
		spec, _ := catalog.Structure(st.Kind)
		for _, up := range spec.Upgrades {
			if len(opts) == len(core.SlotActions) {
				break
			}
			cost, ok := g.sim.UpgradeCost(st.ID, up.Key)
			if !ok {
				continue
			}
			opts = append(opts, Command{
				Slot:        len(opts) + 1,
				Label:       up.Name,
				Cost:        cost,
				Available:   econ.Nuggets >= cost,
				Upgrade:     up.Key,
				Structure:   st.ID,
				Description: up.Description,
			})
		}
		return opts
	}

	for _, kind := range catalog.BuildableKinds() {
		if len(opts) == len(core.SlotActions) {
			break
		}
		spec, _ := catalog.Structure(kind)
		opts = append(opts, Command{
			Slot:      len(opts) + 1,
			Label:     spec.Name,
			Cost:      spec.BuildCost,
			Available: econ.Nuggets >= spec.BuildCost && g.sim.CanBuildAt(kind, g.cursor),
			Build:     kind,
		})
	}
	return opts
}

// useSlot runs the numbered option at the cursor.
func (g *Game) useSlot(slot int, res *core.StepResult) {
	opts := g.Options()
	if slot < 1 || slot > len(opts) {
		return
	}
	opt := opts[slot-1]

	if opt.Build != "" {
		r := g.sim.Place(opt.Build, g.cursor)
		g.report(r, fmt.Sprintf("Built %s (-%d)", opt.Label, r.Cost), "Cannot build "+opt.Label, res)
		return
	}
	r := g.sim.Upgrade(opt.Structure, opt.Upgrade)
	g.report(r, fmt.Sprintf("%s upgraded (-%d)", opt.Label, r.Cost), "Cannot buy "+opt.Label, res)
}

// sell sells the structure under the cursor.
func (g *Game) sell(res *core.StepResult) {
	st := g.sim.StructureAt(g.cursor)
	if st == nil {
		g.setMessage("Nothing to sell here", false)
		res.AddCue(core.CueDenied)
		return
	}
	r := g.sim.Sell(st.ID)
	g.report(r, fmt.Sprintf("Sold %s (+%d)", st.Kind, r.Refund), "Cannot sell", res)
}

func (g *Game) report(r sim.Result, okText, failText string, res *core.StepResult) {
	if r.OK {
		g.setMessage(okText, true)
		res.AddCue(core.CueBuild)
		return
	}
	g.setMessage(fmt.Sprintf("%s: %s", failText, reasonText(r.Reason)), false)
	res.AddCue(core.CueDenied)
}

func reasonText(r sim.Reason) string {
	switch r {
	case sim.ReasonNoFunds:
		return "not enough nuggets"
	case sim.ReasonInvalidLocation:
		return "cell is blocked"
	case sim.ReasonInvalidUpgrade:
		return "upgrade not available"
	case sim.ReasonNotSellable:
		return "the command center stays"
	case sim.ReasonGameOver:
		return "game is over"
	default:
		return string(r)
	}
}
