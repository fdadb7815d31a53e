// Package anim binds a reflectable object's declared attributes to value
// curves advanced over time, either directly per attribute or through a
// shared, named object animation, and round-trips that state through yaml
// documents.
package anim

import "gopkg.in/yaml.v3"

// Document is the saved form of an Animatable: the target's base attribute
// state plus its animation bindings.
type Document struct {
	// Attributes holds the target's file-mode attribute values.
	Attributes map[string]yaml.Node `yaml:"attributes,omitempty"`
	// ObjectAnimationRef names a library-resolved object animation.
	ObjectAnimationRef string `yaml:"objectAnimationRef,omitempty"`
	// ObjectAnimation inlines an anonymous object animation.
	ObjectAnimation *ObjectAnimationDoc `yaml:"objectAnimation,omitempty"`
	// AttributeAnimations lists directly-bound curves in save order.
	AttributeAnimations []AttributeAnimationDoc `yaml:"attributeAnimations,omitempty"`
}

// ObjectAnimationDoc is the saved form of an ObjectAnimation. The animation
// name is not part of the document; named animations take their name from
// the library entry they were loaded under.
type ObjectAnimationDoc struct {
	AttributeAnimations []AttributeAnimationDoc `yaml:"attributeAnimations"`
}

// AttributeAnimationDoc couples one attribute name with a curve and speed.
type AttributeAnimationDoc struct {
	Name  string   `yaml:"name"`
	Speed *float64 `yaml:"speed,omitempty"`
	Curve CurveDoc `yaml:"curve"`
}

// CurveDoc is the saved form of a Curve. Keyframe values are kept as raw
// nodes; the declared value type drives parsing.
type CurveDoc struct {
	ValueType string        `yaml:"valueType"`
	Wrap      string        `yaml:"wrap,omitempty"`
	Keyframes []KeyframeDoc `yaml:"keyframes"`
	Events    []EventDoc    `yaml:"events,omitempty"`
}

type KeyframeDoc struct {
	Time  float64   `yaml:"time"`
	Value yaml.Node `yaml:"value"`
}

type EventDoc struct {
	Time    float64 `yaml:"time"`
	Name    string  `yaml:"name"`
	Payload string  `yaml:"payload,omitempty"`
}

func (d AttributeAnimationDoc) speed() float64 {
	if d.Speed == nil {
		return 1
	}
	return *d.Speed
}

func speedDoc(speed float64) *float64 {
	s := speed
	return &s
}
