package anim

// Event is delivered when a bound curve crosses one of its event frames.
type Event struct {
	// Attribute is the name the crossing curve is bound under.
	Attribute string
	Frame     EventFrame
}

// EventHandler receives curve event frames as they are crossed.
type EventHandler func(Event)

// Hooks observe binding lifecycle changes on an Animatable. Nil fields are
// skipped. Hooks replace subclass override points: anything that needs to
// react to bindings appearing or disappearing registers here.
type Hooks struct {
	AttributeAnimationAdded   func(name string)
	AttributeAnimationRemoved func(name string)
	ObjectAnimationAdded      func(oa *ObjectAnimation)
	ObjectAnimationRemoved    func(oa *ObjectAnimation)
}
