package anim

import "fmt"

// ObjectAnimation is a named, shareable bundle of per-attribute curves and
// playback speeds. Many Animatables may attach the same animation; each one
// pulls the entries into its own bindings at attach time and never mutates
// the animation itself.
type ObjectAnimation struct {
	name    string
	entries []*Entry
	byName  map[string]*Entry
}

// Entry is one (attribute name, curve, speed) declaration.
type Entry struct {
	Name  string
	Curve *Curve
	Speed float64
}

// NewObjectAnimation creates an empty animation. Library-loaded animations
// carry their resource name; an empty name marks an anonymous animation that
// is inlined into its owner's document on save.
func NewObjectAnimation(name string) *ObjectAnimation {
	return &ObjectAnimation{name: name, byName: make(map[string]*Entry)}
}

func (oa *ObjectAnimation) Name() string {
	if oa == nil {
		return ""
	}
	return oa.name
}

func (oa *ObjectAnimation) SetName(name string) { oa.name = name }

// AddAttributeAnimation declares a curve for an attribute, replacing any
// prior declaration under the same name. The curve records this animation as
// its owner.
func (oa *ObjectAnimation) AddAttributeAnimation(name string, c *Curve, speed float64) error {
	if name == "" {
		return fmt.Errorf("anim: object animation: empty attribute name")
	}
	if c == nil {
		return fmt.Errorf("anim: object animation %q: nil curve for %q", oa.name, name)
	}
	if prev, ok := oa.byName[name]; ok {
		prev.Curve.owner = nil
		prev.Curve = c
		prev.Speed = speed
	} else {
		entry := &Entry{Name: name, Curve: c, Speed: speed}
		oa.entries = append(oa.entries, entry)
		oa.byName[name] = entry
	}
	c.owner = oa
	return nil
}

// RemoveAttributeAnimation drops the declaration for an attribute and clears
// the curve's owner back-reference. Returns false if no declaration exists.
func (oa *ObjectAnimation) RemoveAttributeAnimation(name string) bool {
	entry, ok := oa.byName[name]
	if !ok {
		return false
	}
	entry.Curve.owner = nil
	delete(oa.byName, name)
	for i, e := range oa.entries {
		if e == entry {
			oa.entries = append(oa.entries[:i], oa.entries[i+1:]...)
			break
		}
	}
	return true
}

// Entries returns the declarations in insertion order.
func (oa *ObjectAnimation) Entries() []*Entry {
	if oa == nil {
		return nil
	}
	return oa.entries
}

// AttributeAnimation returns the curve declared for an attribute, or nil.
func (oa *ObjectAnimation) AttributeAnimation(name string) *Curve {
	if oa == nil {
		return nil
	}
	if entry, ok := oa.byName[name]; ok {
		return entry.Curve
	}
	return nil
}

// AttributeAnimationSpeed returns the speed declared for an attribute,
// defaulting to 1.
func (oa *ObjectAnimation) AttributeAnimationSpeed(name string) float64 {
	if oa == nil {
		return 1
	}
	if entry, ok := oa.byName[name]; ok {
		return entry.Speed
	}
	return 1
}

// LoadDoc replaces the animation's entries from its document form.
func (oa *ObjectAnimation) LoadDoc(doc *ObjectAnimationDoc) error {
	if doc == nil {
		return fmt.Errorf("anim: load object animation %q: nil document", oa.name)
	}
	for _, entry := range oa.entries {
		entry.Curve.owner = nil
	}
	oa.entries = nil
	oa.byName = make(map[string]*Entry)

	for _, ad := range doc.AttributeAnimations {
		c := &Curve{}
		if err := c.LoadDoc(&ad.Curve); err != nil {
			return fmt.Errorf("anim: load object animation %q entry %q: %w", oa.name, ad.Name, err)
		}
		if err := oa.AddAttributeAnimation(ad.Name, c, ad.speed()); err != nil {
			return err
		}
	}
	return nil
}

// SaveDoc emits the animation's document form.
func (oa *ObjectAnimation) SaveDoc() (*ObjectAnimationDoc, error) {
	doc := &ObjectAnimationDoc{}
	for _, entry := range oa.entries {
		cd, err := entry.Curve.SaveDoc()
		if err != nil {
			return nil, fmt.Errorf("anim: save object animation %q entry %q: %w", oa.name, entry.Name, err)
		}
		doc.AttributeAnimations = append(doc.AttributeAnimations, AttributeAnimationDoc{
			Name:  entry.Name,
			Speed: speedDoc(entry.Speed),
			Curve: *cd,
		})
	}
	return doc, nil
}
