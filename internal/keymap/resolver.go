package keymap

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action
	byAction map[Action][]string
}

// NewResolver creates a resolver from the default bindings.
func NewResolver() *Resolver {
	return NewResolverWith(All)
}

// NewResolverWith creates a resolver from explicit bindings.
func NewResolverWith(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	return r
}

// Resolve returns the action for a key. Shortcuts are suppressed while
// the user is typing into a text input, so typing never drives the
// transport.
func (r *Resolver) Resolve(key string, typing bool) Action {
	if typing {
		return ActionNone
	}
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action (for help text).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}
