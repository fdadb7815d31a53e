package attr

import (
	"errors"
	"fmt"
)

// Mode flags where an attribute's value participates.
type Mode uint8

const (
	// ModeFile includes the attribute in document save/load.
	ModeFile Mode = 1 << iota
	// ModeNet marks the attribute for network replication.
	ModeNet
)

// ModeDefault is file plus network.
const ModeDefault = ModeFile | ModeNet

var (
	ErrDuplicateAttribute = errors.New("attr: attribute already registered")
	ErrUnknownAttribute   = errors.New("attr: unknown attribute")
	ErrTypeMismatch       = errors.New("attr: value type mismatch")
)

// Info describes one declared attribute. Infos are registered once per
// object type and never mutated afterward; bindings borrow them by pointer.
type Info struct {
	Name    string
	Type    Type
	Mode    Mode
	Default Variant
}

// Registry holds the declared attributes of one object type in registration
// order. A registry outlives every object of its type, so borrowed *Info
// pointers stay valid for the life of any binding.
type Registry struct {
	infos   []*Info
	byName  map[string]*Info
	network []*Info
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Info)}
}

// Register declares an attribute. The default value's type must match the
// declared type.
func (r *Registry) Register(info Info) error {
	if info.Name == "" {
		return fmt.Errorf("attr: register: empty attribute name")
	}
	if _, ok := r.byName[info.Name]; ok {
		return fmt.Errorf("attr: register %q: %w", info.Name, ErrDuplicateAttribute)
	}
	if info.Default.Type != TypeNone && info.Default.Type != info.Type {
		return fmt.Errorf("attr: register %q: default value: %w", info.Name, ErrTypeMismatch)
	}
	stored := info
	r.infos = append(r.infos, &stored)
	r.byName[info.Name] = &stored
	if info.Mode&ModeNet != 0 {
		r.network = append(r.network, &stored)
	}
	return nil
}

// Find returns the attribute declared under name, or nil.
func (r *Registry) Find(name string) *Info {
	if r == nil {
		return nil
	}
	return r.byName[name]
}

// Infos returns all declared attributes in registration order.
func (r *Registry) Infos() []*Info {
	if r == nil {
		return nil
	}
	return r.infos
}

// Network returns the network-replicated subset in registration order.
func (r *Registry) Network() []*Info {
	if r == nil {
		return nil
	}
	return r.network
}
