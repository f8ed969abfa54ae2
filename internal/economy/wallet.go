// Package economy holds the jumpcoin wallet. A coin powers wall and double
// jumps and also absorbs one hit of damage; with no coin left the player's
// lifecoin is spent instead.
package economy

// Outcome describes what a spend did.
type Outcome struct {
	Spent         bool // a jumpcoin was removed
	Absorbed      bool // the coin soaked up damage
	LifecoinSpent bool
	Died          bool
}

// Wallet counts the jumpcoins a player carries.
type Wallet struct {
	Jumpcoins uint
}

// Spend pays one coin.
//
// Voluntary spends pay for jumps. With infinite set, a voluntary spend with
// an empty wallet is free. Involuntary spends are damage; an empty wallet
// always costs the lifecoin.
func (w *Wallet) Spend(voluntary, infinite bool) Outcome {
	if w.Jumpcoins > 0 {
		w.Jumpcoins--
		return Outcome{Spent: true, Absorbed: !voluntary}
	}
	if voluntary && infinite {
		return Outcome{}
	}
	return Outcome{LifecoinSpent: true, Died: true}
}

// Collect adds a coin.
func (w *Wallet) Collect() {
	w.Jumpcoins++
}

// Shielded reports whether the next hit would be absorbed.
func (w *Wallet) Shielded() bool {
	return w.Jumpcoins > 0
}
