// Package script runs tengo scripts as animation event handlers, so game
// data can react to curve event frames without recompiling the host.
package script

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/animatable/anim"
)

// EventRuntime holds a compiled event script. The script sees the variables
// `attribute`, `event`, `payload` and `time` for each delivered frame and
// may set `handled` to report that it consumed the event.
type EventRuntime struct {
	compiled *tengo.Compiled
}

// NewEventRuntime compiles an event handler script once; each delivered
// event runs against a clone.
func NewEventRuntime(src []byte) (*EventRuntime, error) {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap("fmt", "math", "text"))

	for name, zero := range map[string]any{
		"attribute": "",
		"event":     "",
		"payload":   "",
		"time":      0.0,
		"handled":   false,
	} {
		if err := s.Add(name, zero); err != nil {
			return nil, fmt.Errorf("script: bind %q: %w", name, err)
		}
	}

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile event handler: %w", err)
	}
	return &EventRuntime{compiled: compiled}, nil
}

// Run delivers one event to the script and reports whether the script
// marked it handled.
func (r *EventRuntime) Run(e anim.Event) (bool, error) {
	clone := r.compiled.Clone()
	if err := clone.Set("attribute", e.Attribute); err != nil {
		return false, fmt.Errorf("script: set attribute: %w", err)
	}
	if err := clone.Set("event", e.Frame.Name); err != nil {
		return false, fmt.Errorf("script: set event: %w", err)
	}
	if err := clone.Set("payload", e.Frame.Payload); err != nil {
		return false, fmt.Errorf("script: set payload: %w", err)
	}
	if err := clone.Set("time", e.Frame.Time); err != nil {
		return false, fmt.Errorf("script: set time: %w", err)
	}
	if err := clone.Run(); err != nil {
		return false, fmt.Errorf("script: run event handler: %w", err)
	}
	return clone.Get("handled").Bool(), nil
}

// Handler adapts the runtime to anim.EventHandler, logging script failures.
func (r *EventRuntime) Handler() anim.EventHandler {
	return func(e anim.Event) {
		if _, err := r.Run(e); err != nil {
			log.Printf("Script: event %q on %q: %v", e.Frame.Name, e.Attribute, err)
		}
	}
}
