package anim

import (
	"fmt"
	"log"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/animatable/attr"
)

// Resolver maps a stored object-animation name to a live instance, the way
// a resource library resolves a saved reference on load.
type Resolver interface {
	ResolveObjectAnimation(name string) (*ObjectAnimation, error)
}

// Animatable lets a target object's declared attributes be animated over
// time, individually or through a shared object animation. All mutation goes
// through the Animatable's own methods; it is single-threaded and expected
// to run on the target's update tick.
type Animatable struct {
	target          attr.Target
	enabled         bool
	objectAnimation *ObjectAnimation
	instances       map[string]*attributeAnimationInstance
	animatedNetwork map[*attr.Info]struct{}
	hooks           Hooks
	handler         EventHandler
	resolver        Resolver
}

func NewAnimatable(target attr.Target) *Animatable {
	return &Animatable{
		target:          target,
		enabled:         true,
		instances:       make(map[string]*attributeAnimationInstance),
		animatedNetwork: make(map[*attr.Info]struct{}),
	}
}

// SetHooks registers binding lifecycle callbacks.
func (a *Animatable) SetHooks(h Hooks) { a.hooks = h }

// SetEventHandler registers the receiver for curve event frames.
func (a *Animatable) SetEventHandler(h EventHandler) { a.handler = h }

// SetResolver registers the library used to resolve saved object-animation
// references on document load.
func (a *Animatable) SetResolver(r Resolver) { a.resolver = r }

// SetAnimationEnabled gates per-tick advancement. Bindings stay in place
// while disabled.
func (a *Animatable) SetAnimationEnabled(enabled bool) { a.enabled = enabled }

func (a *Animatable) AnimationEnabled() bool { return a.enabled }

// SetObjectAnimation attaches a shared object animation, fanning its entries
// out into per-attribute bindings. Attaching the already-attached animation
// is a no-op. Any previously attached animation is detached first, which
// unbinds exactly the attributes whose curves it owns; attributes bound
// independently are left untouched. Pass nil to detach only.
func (a *Animatable) SetObjectAnimation(oa *ObjectAnimation) {
	if oa == a.objectAnimation {
		return
	}

	if a.objectAnimation != nil {
		a.detachObjectAnimation(a.objectAnimation)
	}

	a.objectAnimation = oa

	if oa != nil {
		for _, entry := range oa.Entries() {
			if err := a.SetAttributeAnimation(entry.Name, entry.Curve, entry.Speed); err != nil {
				log.Printf("Animatable: attach %q entry %q: %v", oa.Name(), entry.Name, err)
			}
		}
		if a.hooks.ObjectAnimationAdded != nil {
			a.hooks.ObjectAnimationAdded(oa)
		}
	}
}

// ObjectAnimation returns the attached object animation, or nil.
func (a *Animatable) ObjectAnimation() *ObjectAnimation { return a.objectAnimation }

func (a *Animatable) detachObjectAnimation(oa *ObjectAnimation) {
	var names []string
	for name, inst := range a.instances {
		if inst.curve.Owner() == oa {
			names = append(names, name)
		}
	}
	for _, name := range names {
		if err := a.SetAttributeAnimation(name, nil, 0); err != nil {
			log.Printf("Animatable: detach %q entry %q: %v", oa.Name(), name, err)
		}
	}
	if a.hooks.ObjectAnimationRemoved != nil {
		a.hooks.ObjectAnimationRemoved(oa)
	}
}

// SetAttributeAnimation is the single mutating primitive for per-attribute
// bindings. A non-nil curve binds or rebinds the attribute; binding the
// identical curve again only updates the speed. A nil curve unbinds; the
// attribute never having been bound is a silent no-op. A rejected bind
// leaves the binding set and the replication set unchanged.
func (a *Animatable) SetAttributeAnimation(name string, c *Curve, speed float64) error {
	current := a.instances[name]

	if c == nil {
		if current == nil {
			return nil
		}
		if current.info.Mode&attr.ModeNet != 0 {
			delete(a.animatedNetwork, current.info)
		}
		delete(a.instances, name)
		if a.hooks.AttributeAnimationRemoved != nil {
			a.hooks.AttributeAnimationRemoved(name)
		}
		return nil
	}

	if current != nil && current.curve == c {
		current.speed = speed
		return nil
	}

	// Rebinding reuses the current binding's descriptor; a fresh bind looks
	// the attribute up in the target's registry.
	var info *attr.Info
	if current != nil {
		info = current.info
	} else {
		if a.target == nil || a.target.Attributes() == nil {
			return fmt.Errorf("anim: bind %q: target has no attributes", name)
		}
		info = a.target.Attributes().Find(name)
	}
	if info == nil {
		return fmt.Errorf("anim: bind %q: %w", name, attr.ErrUnknownAttribute)
	}
	if c.ValueType() != info.Type {
		return fmt.Errorf("anim: bind %q: curve produces %q, attribute declares %q: %w",
			name, c.ValueType(), info.Type, attr.ErrTypeMismatch)
	}

	if info.Mode&attr.ModeNet != 0 {
		a.animatedNetwork[info] = struct{}{}
	}
	a.instances[name] = newInstance(info, c, speed)

	if current == nil && a.hooks.AttributeAnimationAdded != nil {
		a.hooks.AttributeAnimationAdded(name)
	}
	return nil
}

// SetAttributeAnimationSpeed updates the speed of an existing binding; a
// missing binding is a no-op.
func (a *Animatable) SetAttributeAnimationSpeed(name string, speed float64) {
	if inst, ok := a.instances[name]; ok {
		inst.speed = speed
	}
}

// AttributeAnimation returns the curve bound to an attribute, or nil.
func (a *Animatable) AttributeAnimation(name string) *Curve {
	if inst, ok := a.instances[name]; ok {
		return inst.curve
	}
	return nil
}

// AttributeAnimationSpeed returns the bound speed, defaulting to 1.
func (a *Animatable) AttributeAnimationSpeed(name string) float64 {
	if inst, ok := a.instances[name]; ok {
		return inst.speed
	}
	return 1
}

// UpdateAttributeAnimations advances every binding by the time step. A
// binding whose curve reports completion is unbound after the full pass, so
// the binding set is never mutated mid-iteration. Does nothing while
// animation is disabled.
func (a *Animatable) UpdateAttributeAnimations(timeStep float64) {
	if !a.enabled {
		return
	}

	var finished []string
	for name, inst := range a.instances {
		if inst.update(a.target, timeStep, a.handler) {
			finished = append(finished, name)
		}
	}

	for _, name := range finished {
		if err := a.SetAttributeAnimation(name, nil, 0); err != nil {
			log.Printf("Animatable: finish %q: %v", name, err)
		}
	}
}

// IsAnimatedNetworkAttribute reports whether a network-replicated attribute
// is currently animated, marking it for synchronized replication.
func (a *Animatable) IsAnimatedNetworkAttribute(info *attr.Info) bool {
	_, ok := a.animatedNetwork[info]
	return ok
}

// LoadDocument restores base attribute state and animation bindings. The
// unit of atomicity is one nested entry: a failing nested load aborts the
// whole operation but leaves entries already reset or loaded in place.
func (a *Animatable) LoadDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("anim: load: nil document")
	}
	if err := attr.LoadAttributes(a.target, doc.Attributes); err != nil {
		return fmt.Errorf("anim: load: %w", err)
	}

	a.SetObjectAnimation(nil)
	for _, name := range a.boundNames() {
		if err := a.SetAttributeAnimation(name, nil, 0); err != nil {
			return fmt.Errorf("anim: load reset %q: %w", name, err)
		}
	}

	if doc.ObjectAnimationRef != "" {
		if a.resolver == nil {
			return fmt.Errorf("anim: load: object animation ref %q with no resolver", doc.ObjectAnimationRef)
		}
		oa, err := a.resolver.ResolveObjectAnimation(doc.ObjectAnimationRef)
		if err != nil {
			return fmt.Errorf("anim: load: resolve %q: %w", doc.ObjectAnimationRef, err)
		}
		a.SetObjectAnimation(oa)
	}

	if doc.ObjectAnimation != nil {
		oa := NewObjectAnimation("")
		if err := oa.LoadDoc(doc.ObjectAnimation); err != nil {
			return fmt.Errorf("anim: load: %w", err)
		}
		a.SetObjectAnimation(oa)
	}

	for _, ad := range doc.AttributeAnimations {
		c := &Curve{}
		if err := c.LoadDoc(&ad.Curve); err != nil {
			return fmt.Errorf("anim: load entry %q: %w", ad.Name, err)
		}
		// A bind rejected here (unknown name, type mismatch) is logged and
		// skipped rather than failing the whole document.
		if err := a.SetAttributeAnimation(ad.Name, c, ad.speed()); err != nil {
			log.Printf("Animatable: load entry %q: %v", ad.Name, err)
		}
	}
	return nil
}

// SaveDocument emits base attribute state and animation bindings. A named
// attached animation is saved as a reference; an anonymous one is inlined.
// Bindings whose curves belong to any object animation are skipped, since
// re-attaching the animation reconstructs them.
func (a *Animatable) SaveDocument() (*Document, error) {
	values, err := attr.SaveAttributes(a.target)
	if err != nil {
		return nil, fmt.Errorf("anim: save: %w", err)
	}
	doc := &Document{Attributes: values}

	if a.objectAnimation != nil {
		if a.objectAnimation.Name() == "" {
			oad, err := a.objectAnimation.SaveDoc()
			if err != nil {
				return nil, fmt.Errorf("anim: save: %w", err)
			}
			doc.ObjectAnimation = oad
		} else {
			doc.ObjectAnimationRef = a.objectAnimation.Name()
		}
	}

	for _, name := range a.boundNames() {
		inst := a.instances[name]
		if inst.curve.Owner() != nil {
			continue
		}
		cd, err := inst.curve.SaveDoc()
		if err != nil {
			return nil, fmt.Errorf("anim: save entry %q: %w", name, err)
		}
		doc.AttributeAnimations = append(doc.AttributeAnimations, AttributeAnimationDoc{
			Name:  name,
			Speed: speedDoc(inst.speed),
			Curve: *cd,
		})
	}
	return doc, nil
}

// LoadYAML restores the Animatable from serialized document bytes.
func (a *Animatable) LoadYAML(data []byte) error {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("anim: unmarshal document: %w", err)
	}
	return a.LoadDocument(&doc)
}

// SaveYAML serializes the Animatable's document.
func (a *Animatable) SaveYAML() ([]byte, error) {
	doc, err := a.SaveDocument()
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("anim: marshal document: %w", err)
	}
	return data, nil
}

// boundNames returns current binding names sorted for deterministic walks.
func (a *Animatable) boundNames() []string {
	names := make([]string, 0, len(a.instances))
	for name := range a.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
