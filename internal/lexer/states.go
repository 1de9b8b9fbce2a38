package lexer

// stateInfo records one registered start condition.
type stateInfo struct {
	name      string
	exclusive bool
}

// stateRegistry tracks the set of named start conditions, each either
// inclusive (the default; it's included whenever a rule is added with an
// absent state-spec, the same as INITIAL) or exclusive (only matched
// when the scanner is actually in that state).
//
// INITIAL is registered at construction and can never be removed.
type stateRegistry struct {
	order []string
	info  map[string]*stateInfo
}

func newStateRegistry() *stateRegistry {
	r := &stateRegistry{info: map[string]*stateInfo{}}
	r.add(StateInitial, false)
	return r
}

// add registers name if it isn't already known. Re-adding an existing
// name is a no-op - registration is idempotent, and the first
// exclusivity setting wins.
func (r *stateRegistry) add(name string, exclusive bool) {
	if _, ok := r.info[name]; ok {
		return
	}
	r.info[name] = &stateInfo{name: name, exclusive: exclusive}
	r.order = append(r.order, name)
}

func (r *stateRegistry) exists(name string) bool {
	_, ok := r.info[name]
	return ok
}

// inclusiveStates returns every inclusive state, in registration order.
// This is what an absent state-spec resolves to.
func (r *stateRegistry) inclusiveStates() []string {
	var out []string
	for _, name := range r.order {
		if !r.info[name].exclusive {
			out = append(out, name)
		}
	}
	return out
}

// allStates returns every registered state, in registration order. This
// is what the "*" state-spec resolves to.
func (r *stateRegistry) allStates() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
