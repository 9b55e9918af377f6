package keymap

// Resolver maps key strings to actions.
type Resolver struct {
	bindings  map[string]map[string]Action // context -> key -> action
	byAction  map[Action][]string          // action -> keys (for help/documentation)
	fallbacks []string
}

// NewResolver creates a resolver from bindings. Keys bound in the global
// context apply everywhere unless a context binds them itself.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings:  make(map[string]map[string]Action),
		byAction:  make(map[Action][]string),
		fallbacks: []string{ContextGlobal},
	}
	for _, b := range bindings {
		keys := r.bindings[b.Context]
		if keys == nil {
			keys = make(map[string]Action)
			r.bindings[b.Context] = keys
		}
		for _, key := range b.Keys {
			keys[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Default returns a resolver over All.
func Default() *Resolver {
	return NewResolver(All)
}

// Resolve returns the global action for a key, or "" if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[ContextGlobal][key]
}

// ResolveIn looks key up in the given contexts, in order, then in the
// global context.
func (r *Resolver) ResolveIn(key string, contexts ...string) Action {
	for _, ctx := range contexts {
		if a, ok := r.bindings[ctx][key]; ok {
			return a
		}
	}
	for _, ctx := range r.fallbacks {
		if a, ok := r.bindings[ctx][key]; ok {
			return a
		}
	}
	return ""
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
