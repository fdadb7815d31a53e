package attr

import "fmt"

// Target is a reflectable object whose declared attributes can be read and
// written by name. Animation applies sampled values through SetAttribute.
type Target interface {
	// Attributes returns the object's declared attribute registry, or nil
	// when the object exposes no attribute metadata at all.
	Attributes() *Registry
	// Attribute returns the current value of a declared attribute.
	Attribute(name string) (Variant, bool)
	// SetAttribute writes a declared attribute. The value's type must match
	// the declaration.
	SetAttribute(name string, v Variant) error
}

// Object is a basic Target backed by a value map, for objects that do not
// need accessor indirection. Unset attributes read back their defaults.
type Object struct {
	registry *Registry
	values   map[string]Variant
}

func NewObject(r *Registry) *Object {
	return &Object{registry: r, values: make(map[string]Variant)}
}

func (o *Object) Attributes() *Registry {
	if o == nil {
		return nil
	}
	return o.registry
}

func (o *Object) Attribute(name string) (Variant, bool) {
	if o == nil {
		return Variant{}, false
	}
	if v, ok := o.values[name]; ok {
		return v, true
	}
	info := o.registry.Find(name)
	if info == nil {
		return Variant{}, false
	}
	return info.Default, true
}

func (o *Object) SetAttribute(name string, v Variant) error {
	if o == nil || o.registry == nil {
		return fmt.Errorf("attr: set %q: object has no attributes", name)
	}
	info := o.registry.Find(name)
	if info == nil {
		return fmt.Errorf("attr: set %q: %w", name, ErrUnknownAttribute)
	}
	if v.Type != info.Type {
		return fmt.Errorf("attr: set %q: got %q, declared %q: %w", name, v.Type, info.Type, ErrTypeMismatch)
	}
	o.values[name] = v
	return nil
}
