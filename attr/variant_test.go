package attr

import (
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLerp(t *testing.T) {
	cases := []struct {
		name string
		a, b Variant
		t    float64
		want Variant
	}{
		{"float_mid", NewFloat(0), NewFloat(10), 0.5, NewFloat(5)},
		{"float_start", NewFloat(2), NewFloat(4), 0, NewFloat(2)},
		{"int_rounds", NewInt(0), NewInt(5), 0.5, NewInt(3)},
		{"vec2", NewVec2(0, 0), NewVec2(10, -10), 0.25, NewVec2(2.5, -2.5)},
		{
			"color",
			NewColor(color.NRGBA{R: 0, G: 0, B: 0, A: 255}),
			NewColor(color.NRGBA{R: 200, G: 100, B: 50, A: 255}),
			0.5,
			NewColor(color.NRGBA{R: 100, G: 50, B: 25, A: 255}),
		},
		{"bool_steps", NewBool(false), NewBool(true), 0.99, NewBool(false)},
		{"bool_steps_end", NewBool(false), NewBool(true), 1, NewBool(true)},
		{"string_steps", NewString("idle"), NewString("run"), 0.5, NewString("idle")},
		{"mismatched_types", NewFloat(1), NewInt(2), 0.5, NewFloat(1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Lerp(c.a, c.b, c.t)
			if got != c.want {
				t.Fatalf("Lerp(%v, %v, %v) = %v, want %v", c.a, c.b, c.t, got, c.want)
			}
		})
	}
}

func TestParseNodeColor(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb", `"#ff8000"`, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{"rgba", `"#ff800080"`, color.NRGBA{R: 255, G: 128, B: 0, A: 128}, false},
		{"no_hash", `"ff8000"`, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{"too_short", `"#fff"`, color.NRGBA{}, true},
		{"not_hex", `"#zzzzzz"`, color.NRGBA{}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var node yaml.Node
			if err := yaml.Unmarshal([]byte(c.raw), &node); err != nil {
				t.Fatalf("unmarshal node: %v", err)
			}
			v, err := ParseNode(TypeColor, node.Content[0])
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", c.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNode: %v", err)
			}
			if v.Col != c.want {
				t.Fatalf("got %v, want %v", v.Col, c.want)
			}
		})
	}
}

func TestVariantYAMLRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		v    Variant
	}{
		{"float", NewFloat(3.5)},
		{"int", NewInt(-7)},
		{"bool", NewBool(true)},
		{"string", NewString("run")},
		{"vec2", NewVec2(1.5, -2)},
		{"color_opaque", NewColor(color.NRGBA{R: 16, G: 32, B: 64, A: 255})},
		{"color_alpha", NewColor(color.NRGBA{R: 16, G: 32, B: 64, A: 128})},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, err := yaml.Marshal(c.v)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var node yaml.Node
			if err := yaml.Unmarshal(data, &node); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got, err := ParseNode(c.v.Type, node.Content[0])
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != c.v {
				t.Fatalf("round trip: got %v, want %v", got, c.v)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	for _, name := range []string{"float", "int", "bool", "string", "vec2", "color"} {
		typ, err := ParseType(name)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", name, err)
		}
		if typ.String() != name {
			t.Fatalf("ParseType(%q).String() = %q", name, typ.String())
		}
	}
	if _, err := ParseType("quaternion"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
