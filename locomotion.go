package stride

// State is the locomotion state of a character. Exactly one value at a
// time, owned by the character and mutated only by the per-tick transition
// step. StateUninitialized exists only before the first evaluation: it
// resolves to StateIdle immediately and is never observable afterwards.
type State uint8

const (
	StateUninitialized State = iota
	StateIdle
	StateWalking
	StateFalling
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateIdle:
		return "idle"
	case StateWalking:
		return "walking"
	case StateFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// nextState applies the locomotion transition table. Losing the ground
// always wins over movement intent; regaining it lands in StateIdle or
// StateWalking depending on intent.
func nextState(current State, grounded, moving bool) State {
	if current == StateUninitialized {
		return StateIdle
	}

	switch {
	case !grounded:
		return StateFalling
	case moving:
		return StateWalking
	default:
		return StateIdle
	}
}
