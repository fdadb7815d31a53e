package anim

import (
	"log"

	"github.com/milk9111/animatable/attr"
)

// attributeAnimationInstance couples one attribute with one curve and a
// playback speed for a single target. The instance owns the playback
// position so the curve itself can be shared across objects.
type attributeAnimationInstance struct {
	info    *attr.Info
	curve   *Curve
	speed   float64
	elapsed float64
}

func newInstance(info *attr.Info, c *Curve, speed float64) *attributeAnimationInstance {
	return &attributeAnimationInstance{info: info, curve: c, speed: speed}
}

// update advances playback by dt scaled by speed, applies the sampled value
// to the target attribute, emits crossed event frames, and reports whether
// the curve has finished.
func (i *attributeAnimationInstance) update(target attr.Target, dt float64, emit EventHandler) bool {
	prev := i.elapsed
	i.elapsed += dt * i.speed

	if v, ok := i.curve.Sample(i.elapsed); ok {
		if err := target.SetAttribute(i.info.Name, v); err != nil {
			log.Printf("Animatable: apply %q: %v", i.info.Name, err)
		}
	}

	if emit != nil && i.elapsed != prev {
		for _, f := range i.curve.EventFramesCrossed(prev, i.elapsed) {
			emit(Event{Attribute: i.info.Name, Frame: f})
		}
	}

	return i.curve.Finished(i.elapsed)
}
