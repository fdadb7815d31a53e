package script

import (
	"testing"

	"github.com/milk9111/animatable/anim"
)

func TestEventRuntime(t *testing.T) {
	t.Run("marks_handled", func(t *testing.T) {
		src := []byte(`
if event == "footstep" && payload == "left" {
	handled = true
}
`)
		rt, err := NewEventRuntime(src)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}

		handled, err := rt.Run(anim.Event{
			Attribute: "X",
			Frame:     anim.EventFrame{Time: 0.5, Name: "footstep", Payload: "left"},
		})
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if !handled {
			t.Fatalf("matching event should be handled")
		}

		handled, err = rt.Run(anim.Event{
			Attribute: "X",
			Frame:     anim.EventFrame{Time: 1.5, Name: "footstep", Payload: "right"},
		})
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if handled {
			t.Fatalf("non-matching event should not be handled")
		}
	})

	t.Run("sees_all_bindings", func(t *testing.T) {
		src := []byte(`handled = attribute == "X" && time == 2.0 && event == "done"`)
		rt, err := NewEventRuntime(src)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		handled, err := rt.Run(anim.Event{
			Attribute: "X",
			Frame:     anim.EventFrame{Time: 2, Name: "done"},
		})
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if !handled {
			t.Fatalf("script should see attribute, time and event bindings")
		}
	})

	t.Run("compile_error", func(t *testing.T) {
		if _, err := NewEventRuntime([]byte(`if {`)); err == nil {
			t.Fatalf("expected compile error")
		}
	})

	t.Run("handler_wraps_run", func(t *testing.T) {
		rt, err := NewEventRuntime([]byte(`handled = true`))
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		h := rt.Handler()
		// Must not panic on delivery.
		h(anim.Event{Attribute: "X", Frame: anim.EventFrame{Name: "any"}})
	})
}
