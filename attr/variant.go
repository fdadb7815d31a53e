package attr

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/animatable/common"
)

// Type identifies the value type an attribute declares or a curve produces.
// Types are compared by value; a curve may only be bound to an attribute
// whose declared type matches the curve's produced type exactly.
type Type uint8

const (
	TypeNone Type = iota
	TypeFloat
	TypeInt
	TypeBool
	TypeString
	TypeVec2
	TypeColor
)

var typeNames = map[Type]string{
	TypeFloat:  "float",
	TypeInt:    "int",
	TypeBool:   "bool",
	TypeString: "string",
	TypeVec2:   "vec2",
	TypeColor:  "color",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "none"
}

// ParseType resolves a document type tag to a Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("attr: unknown value type %q", s)
}

// Vec2 is a 2D point or direction.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Variant holds one value of a closed set of animatable types. Only the
// field matching Type is meaningful; the rest stay zero so variants remain
// comparable with ==.
type Variant struct {
	Type  Type
	Float float64
	Int   int
	Bool  bool
	Str   string
	Vec   Vec2
	Col   color.NRGBA
}

func NewFloat(v float64) Variant { return Variant{Type: TypeFloat, Float: v} }
func NewInt(v int) Variant { return Variant{Type: TypeInt, Int: v} }
func NewBool(v bool) Variant { return Variant{Type: TypeBool, Bool: v} }
func NewString(v string) Variant { return Variant{Type: TypeString, Str: v} }
func NewVec2(x, y float64) Variant {
	return Variant{Type: TypeVec2, Vec: Vec2{X: x, Y: y}}
}
func NewColor(c color.NRGBA) Variant { return Variant{Type: TypeColor, Col: c} }

// Lerp interpolates between two variants of the same type. Float, int, vec2
// and color interpolate linearly; bool and string step (hold a until t
// reaches 1). Mismatched types return a unchanged.
func Lerp(a, b Variant, t float64) Variant {
	if a.Type != b.Type {
		return a
	}
	switch a.Type {
	case TypeFloat:
		return NewFloat(common.Lerp(a.Float, b.Float, t))
	case TypeInt:
		return NewInt(int(math.Round(common.Lerp(float64(a.Int), float64(b.Int), t))))
	case TypeVec2:
		return NewVec2(common.Lerp(a.Vec.X, b.Vec.X, t), common.Lerp(a.Vec.Y, b.Vec.Y, t))
	case TypeColor:
		return NewColor(color.NRGBA{
			R: lerpChannel(a.Col.R, b.Col.R, t),
			G: lerpChannel(a.Col.G, b.Col.G, t),
			B: lerpChannel(a.Col.B, b.Col.B, t),
			A: lerpChannel(a.Col.A, b.Col.A, t),
		})
	default:
		if t >= 1 {
			return b
		}
		return a
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(common.Clamp(math.Round(common.Lerp(float64(a), float64(b), t)), 0, 255))
}

// MarshalYAML emits the variant's value without its type tag; the declared
// type of the surrounding attribute or curve drives parsing on the way back.
func (v Variant) MarshalYAML() (any, error) {
	switch v.Type {
	case TypeFloat:
		return v.Float, nil
	case TypeInt:
		return v.Int, nil
	case TypeBool:
		return v.Bool, nil
	case TypeString:
		return v.Str, nil
	case TypeVec2:
		return v.Vec, nil
	case TypeColor:
		return formatColor(v.Col), nil
	}
	return nil, fmt.Errorf("attr: cannot marshal variant of type %q", v.Type)
}

// ParseNode reads a yaml node as a value of the given declared type.
func ParseNode(t Type, node *yaml.Node) (Variant, error) {
	if node == nil {
		return Variant{}, fmt.Errorf("attr: missing value node for type %q", t)
	}
	switch t {
	case TypeFloat:
		var f float64
		if err := node.Decode(&f); err != nil {
			return Variant{}, fmt.Errorf("attr: decode float: %w", err)
		}
		return NewFloat(f), nil
	case TypeInt:
		var i int
		if err := node.Decode(&i); err != nil {
			return Variant{}, fmt.Errorf("attr: decode int: %w", err)
		}
		return NewInt(i), nil
	case TypeBool:
		var b bool
		if err := node.Decode(&b); err != nil {
			return Variant{}, fmt.Errorf("attr: decode bool: %w", err)
		}
		return NewBool(b), nil
	case TypeString:
		var s string
		if err := node.Decode(&s); err != nil {
			return Variant{}, fmt.Errorf("attr: decode string: %w", err)
		}
		return NewString(s), nil
	case TypeVec2:
		var vec Vec2
		if err := node.Decode(&vec); err != nil {
			return Variant{}, fmt.Errorf("attr: decode vec2: %w", err)
		}
		return Variant{Type: TypeVec2, Vec: vec}, nil
	case TypeColor:
		if node.Kind != yaml.ScalarNode {
			return Variant{}, fmt.Errorf("attr: color must be a string")
		}
		c, err := parseColor(node.Value)
		if err != nil {
			return Variant{}, err
		}
		return NewColor(c), nil
	}
	return Variant{}, fmt.Errorf("attr: cannot parse value of type %q", t)
}

// parseColor reads a "#RRGGBB" or "#RRGGBBAA" hex string.
func parseColor(raw string) (color.NRGBA, error) {
	s := strings.TrimPrefix(raw, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("attr: invalid color format: %s", raw)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

func formatColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
