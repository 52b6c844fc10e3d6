package sim

// Economy holds the player's currency, score and global modifiers.
// The balance never goes negative.
type Economy struct {
	Nuggets    int `json:"nuggets" yaml:"nuggets"`
	Score      int `json:"score" yaml:"score"`
	SpikeBonus int `json:"spike_bonus" yaml:"spike_bonus"`
}

// CanAfford reports whether amount can be spent.
func (e *Economy) CanAfford(amount int) bool {
	return amount >= 0 && e.Nuggets >= amount
}

// Spend deducts amount. It fails and leaves the balance unchanged when
// the balance is too low or the amount is negative.
func (e *Economy) Spend(amount int) bool {
	if !e.CanAfford(amount) {
		return false
	}
	e.Nuggets -= amount
	return true
}

// Credit pays a kill reward into both the balance and the score.
func (e *Economy) Credit(reward int) {
	if reward <= 0 {
		return
	}
	e.Nuggets += reward
	e.Score += reward
}

// Refund returns currency without touching the score.
func (e *Economy) Refund(amount int) {
	if amount <= 0 {
		return
	}
	e.Nuggets += amount
}
