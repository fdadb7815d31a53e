package anim

import (
	"fmt"
	"strings"
	"testing"

	"github.com/milk9111/animatable/attr"
)

type mapResolver map[string]*ObjectAnimation

func (m mapResolver) ResolveObjectAnimation(name string) (*ObjectAnimation, error) {
	if oa, ok := m[name]; ok {
		return oa, nil
	}
	return nil, fmt.Errorf("no animation %q", name)
}

func TestDocumentRoundTrip(t *testing.T) {
	target := testTarget(t)
	if err := target.SetAttribute("Label", attr.NewString("crate")); err != nil {
		t.Fatal(err)
	}

	a := NewAnimatable(target)

	// One anonymous object animation plus two directly-bound curves.
	anon := NewObjectAnimation("")
	if err := anon.AddAttributeAnimation("X", floatCurve(t, WrapLoop, [2]float64{0, 0}, [2]float64{1, 1}), 2); err != nil {
		t.Fatal(err)
	}
	a.SetObjectAnimation(anon)

	if err := a.SetAttributeAnimation("Y", floatCurve(t, WrapOnce, [2]float64{0, 0}, [2]float64{2, 8}), 0.5); err != nil {
		t.Fatal(err)
	}
	labelCurve := NewCurve(attr.TypeString, WrapOnce)
	if err := labelCurve.SetKeyframe(0, attr.NewString("closed")); err != nil {
		t.Fatal(err)
	}
	if err := labelCurve.SetKeyframe(1, attr.NewString("open")); err != nil {
		t.Fatal(err)
	}
	if err := a.SetAttributeAnimation("Label", labelCurve, 1); err != nil {
		t.Fatal(err)
	}

	data, err := a.SaveYAML()
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	restoredTarget := testTarget(t)
	restored := NewAnimatable(restoredTarget)
	if err := restored.LoadYAML(data); err != nil {
		t.Fatalf("load: %v", err)
	}

	if v, _ := restoredTarget.Attribute("Label"); v != attr.NewString("crate") {
		t.Fatalf("base attribute state lost: %v", v)
	}

	oa := restored.ObjectAnimation()
	if oa == nil || oa.Name() != "" {
		t.Fatalf("anonymous object animation should be restored inline, got %v", oa)
	}
	if restored.AttributeAnimation("X") == nil {
		t.Fatalf("template-sourced X binding should be reconstructed")
	}
	if got := restored.AttributeAnimationSpeed("X"); got != 2 {
		t.Fatalf("X speed = %v, want 2", got)
	}

	for _, c := range []struct {
		name  string
		speed float64
	}{{"Y", 0.5}, {"Label", 1}} {
		if restored.AttributeAnimation(c.name) == nil {
			t.Fatalf("direct binding %q lost", c.name)
		}
		if got := restored.AttributeAnimationSpeed(c.name); got != c.speed {
			t.Fatalf("%q speed = %v, want %v", c.name, got, c.speed)
		}
	}

	// Curve content survives: sample the restored Y curve.
	if v, ok := restored.AttributeAnimation("Y").Sample(1); !ok || v != attr.NewFloat(4) {
		t.Fatalf("restored Y curve content: %v", v)
	}
}

func TestSaveSkipsTemplateOwnedBindings(t *testing.T) {
	target := testTarget(t)
	a := NewAnimatable(target)

	named := NewObjectAnimation("door/open.yaml")
	if err := named.AddAttributeAnimation("X", floatCurve(t, WrapLoop, [2]float64{0, 0}, [2]float64{1, 1}), 1); err != nil {
		t.Fatal(err)
	}
	a.SetObjectAnimation(named)

	if err := a.SetAttributeAnimation("Y", floatCurve(t, WrapOnce, [2]float64{0, 0}, [2]float64{1, 1}), 1); err != nil {
		t.Fatal(err)
	}

	doc, err := a.SaveDocument()
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if doc.ObjectAnimationRef != "door/open.yaml" {
		t.Fatalf("named animation should save as a reference, got %q", doc.ObjectAnimationRef)
	}
	if doc.ObjectAnimation != nil {
		t.Fatalf("named animation must not be inlined")
	}
	if len(doc.AttributeAnimations) != 1 || doc.AttributeAnimations[0].Name != "Y" {
		t.Fatalf("only the direct Y binding should be emitted, got %+v", doc.AttributeAnimations)
	}
}

func TestLoadResolvesNamedReference(t *testing.T) {
	named := NewObjectAnimation("door/open.yaml")
	if err := named.AddAttributeAnimation("X", floatCurve(t, WrapLoop, [2]float64{0, 0}, [2]float64{1, 1}), 3); err != nil {
		t.Fatal(err)
	}

	a := NewAnimatable(testTarget(t))
	a.SetResolver(mapResolver{"door/open.yaml": named})

	if err := a.LoadDocument(&Document{ObjectAnimationRef: "door/open.yaml"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if a.ObjectAnimation() != named {
		t.Fatalf("resolver should supply the live animation")
	}
	if got := a.AttributeAnimationSpeed("X"); got != 3 {
		t.Fatalf("X speed = %v, want 3", got)
	}

	t.Run("missing_resolver", func(t *testing.T) {
		b := NewAnimatable(testTarget(t))
		if err := b.LoadDocument(&Document{ObjectAnimationRef: "door/open.yaml"}); err == nil {
			t.Fatalf("expected error with no resolver")
		}
	})

	t.Run("unresolvable_name", func(t *testing.T) {
		b := NewAnimatable(testTarget(t))
		b.SetResolver(mapResolver{})
		if err := b.LoadDocument(&Document{ObjectAnimationRef: "nope.yaml"}); err == nil {
			t.Fatalf("expected resolve error")
		}
	})
}

func TestLoadResetsPriorState(t *testing.T) {
	target := testTarget(t)
	a := NewAnimatable(target)

	stale := NewObjectAnimation("stale.yaml")
	if err := stale.AddAttributeAnimation("X", floatCurve(t, WrapLoop, [2]float64{0, 0}, [2]float64{1, 1}), 1); err != nil {
		t.Fatal(err)
	}
	a.SetObjectAnimation(stale)
	if err := a.SetAttributeAnimation("Y", floatCurve(t, WrapLoop, [2]float64{0, 0}, [2]float64{1, 1}), 1); err != nil {
		t.Fatal(err)
	}

	if err := a.LoadDocument(&Document{}); err != nil {
		t.Fatalf("load empty: %v", err)
	}

	if a.ObjectAnimation() != nil {
		t.Fatalf("load must detach the prior animation")
	}
	if a.AttributeAnimation("X") != nil || a.AttributeAnimation("Y") != nil {
		t.Fatalf("load must clear prior bindings")
	}
	xInfo := target.Attributes().Find("X")
	if a.IsAnimatedNetworkAttribute(xInfo) {
		t.Fatalf("network set must be cleared with the bindings")
	}
}

func TestLoadFailsOnBadNestedCurve(t *testing.T) {
	raw := strings.Join([]string{
		"attributeAnimations:",
		"  - name: X",
		"    speed: 1",
		"    curve:",
		"      valueType: quaternion",
		"      keyframes: []",
	}, "\n")

	a := NewAnimatable(testTarget(t))
	if err := a.LoadYAML([]byte(raw)); err == nil {
		t.Fatalf("a failing nested curve load must fail the document load")
	}
}
