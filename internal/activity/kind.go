package activity

// Kind identifies an activity variant.
type Kind uint8

const (
	KindIdle Kind = iota
	KindAdjacentMove
	KindTargetMove
	KindFall
	KindWork
	KindRest
	KindAttack
)

// String returns human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "IDLE"
	case KindAdjacentMove:
		return "ADJACENT_MOVE"
	case KindTargetMove:
		return "TARGET_MOVE"
	case KindFall:
		return "FALL"
	case KindWork:
		return "WORK"
	case KindRest:
		return "REST"
	case KindAttack:
		return "ATTACK"
	default:
		return "UNKNOWN"
	}
}

// IsMovement reports whether the kind changes the unit's position on purpose.
// Falling is forced, not requested, and does not count.
func (k Kind) IsMovement() bool {
	return k == KindAdjacentMove || k == KindTargetMove
}
