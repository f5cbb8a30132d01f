package wizard

var transitionRecorder = func(from, to string) {}

// RegisterTransitionRecorder allows external packages to observe step
// transitions, e.g. for metrics.
func RegisterTransitionRecorder(recorder func(from, to string)) {
	if recorder == nil {
		transitionRecorder = func(string, string) {}
		return
	}

	transitionRecorder = recorder
}

// Advance returns the step following s in the fixed order. It reports false
// when s is the last step or not in the registry.
func Advance(s Step) (Step, bool) {
	i := stepIndex(s)
	if i < 0 || i >= len(Steps)-1 {
		return s, false
	}
	return Steps[i+1].ID, true
}

// Retreat returns the step preceding s in the fixed order. It reports false
// when s is the first step or not in the registry.
func Retreat(s Step) (Step, bool) {
	i := stepIndex(s)
	if i <= 0 {
		return s, false
	}
	return Steps[i-1].ID, true
}

// CanGoForward reports whether a forward transition exists from s.
func CanGoForward(s Step) bool {
	_, ok := Advance(s)
	return ok
}

// CanGoBack reports whether a backward transition exists from s.
func CanGoBack(s Step) bool {
	_, ok := Retreat(s)
	return ok
}
