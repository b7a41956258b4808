package domain

// Phase is the top-level lifecycle stage of a session.
// Phases are ordered and a session only ever moves forward through them.
type Phase int

const (
	PhaseBooting Phase = iota
	PhaseSelectingLanguage
	PhaseInteractive
)

func (p Phase) String() string {
	switch p {
	case PhaseBooting:
		return "booting"
	case PhaseSelectingLanguage:
		return "selecting_language"
	case PhaseInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// Next returns the phase that follows p, and false when p is the last one.
func (p Phase) Next() (Phase, bool) {
	if p >= PhaseInteractive {
		return p, false
	}
	return p + 1, true
}
