package physics

// Kind tags every body with what it is. Collision handling switches on the
// kinds of both bodies instead of inspecting attached metadata.
type Kind int

const (
	KindNone Kind = iota
	KindPlayer
	KindEnemy
	KindGround
	KindSemiground
	KindSpikes
	KindMover
	KindExit
	KindJumpcoin
	KindHintRemover
	KindEye
)

// String returns the kind name, also used as the resolv tag.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindGround:
		return "ground"
	case KindSemiground:
		return "semiground"
	case KindSpikes:
		return "spikes"
	case KindMover:
		return "mover"
	case KindExit:
		return "exit"
	case KindJumpcoin:
		return "jumpcoin"
	case KindHintRemover:
		return "hint_remover"
	case KindEye:
		return "eye"
	default:
		return "none"
	}
}

// blockers lists which kinds stop a moving body of the given kind.
var blockers = map[Kind][]Kind{
	KindPlayer: {KindGround, KindSemiground, KindMover, KindSpikes, KindEnemy},
	KindEnemy:  {KindGround, KindSemiground, KindMover, KindSpikes, KindExit, KindEnemy, KindPlayer},
}

// sensors lists which kinds report overlaps without blocking.
var sensors = map[Kind][]Kind{
	KindPlayer: {KindExit, KindJumpcoin, KindHintRemover},
}

// BlockedBy reports whether a moving body of kind k is stopped by other.
func (k Kind) BlockedBy(other Kind) bool {
	return contains(blockers[k], other)
}

// Senses reports whether a body of kind k reports overlaps with other.
func (k Kind) Senses(other Kind) bool {
	return contains(sensors[k], other)
}

func contains(kinds []Kind, k Kind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

func tags(kinds []Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}
