package economy

import "testing"

func TestSpend(t *testing.T) {
	tests := []struct {
		name      string
		coins     uint
		voluntary bool
		infinite  bool
		want      Outcome
		left      uint
	}{
		{"jump with coin", 2, true, false, Outcome{Spent: true}, 1},
		{"damage with coin", 1, false, false, Outcome{Spent: true, Absorbed: true}, 0},
		{"jump without coin", 0, true, false, Outcome{LifecoinSpent: true, Died: true}, 0},
		{"jump without coin infinite", 0, true, true, Outcome{}, 0},
		{"damage without coin", 0, false, false, Outcome{LifecoinSpent: true, Died: true}, 0},
		{"damage without coin infinite", 0, false, true, Outcome{LifecoinSpent: true, Died: true}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := Wallet{Jumpcoins: tc.coins}
			got := w.Spend(tc.voluntary, tc.infinite)
			if got != tc.want {
				t.Errorf("Spend() = %+v, expected %+v", got, tc.want)
			}
			if w.Jumpcoins != tc.left {
				t.Errorf("Jumpcoins = %d, expected %d", w.Jumpcoins, tc.left)
			}
		})
	}
}

func TestCollectAndShield(t *testing.T) {
	var w Wallet
	if w.Shielded() {
		t.Error("an empty wallet should not shield")
	}

	w.Collect()
	w.Collect()
	if w.Jumpcoins != 2 || !w.Shielded() {
		t.Errorf("Jumpcoins = %d, expected 2 and shielded", w.Jumpcoins)
	}

	w.Spend(false, false)
	w.Spend(false, false)
	if w.Shielded() {
		t.Error("a spent wallet should not shield")
	}
}
