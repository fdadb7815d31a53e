package anim

import (
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/animatable/attr"
	"github.com/milk9111/animatable/common"
)

// WrapMode controls what happens when playback passes the last keyframe.
type WrapMode uint8

const (
	// WrapOnce clamps at the last keyframe and reports the curve finished.
	WrapOnce WrapMode = iota
	// WrapLoop restarts from the first keyframe.
	WrapLoop
	// WrapPingPong bounces between the first and last keyframes.
	WrapPingPong
)

var wrapNames = map[WrapMode]string{
	WrapOnce:     "once",
	WrapLoop:     "loop",
	WrapPingPong: "pingpong",
}

func (w WrapMode) String() string {
	if name, ok := wrapNames[w]; ok {
		return name
	}
	return "once"
}

func parseWrap(s string) (WrapMode, error) {
	if s == "" {
		return WrapOnce, nil
	}
	for w, name := range wrapNames {
		if name == s {
			return w, nil
		}
	}
	return WrapOnce, fmt.Errorf("anim: unknown wrap mode %q", s)
}

// Keyframe pins a value at a point on the curve's timeline.
type Keyframe struct {
	Time  float64
	Value attr.Variant
}

// EventFrame marks a named event at a point on the curve's timeline.
type EventFrame struct {
	Time    float64
	Name    string
	Payload string
}

// Curve produces attribute values over time. A curve holds no playback
// position of its own: it may be shared by bindings on many objects, each
// keeping its own elapsed time. A curve added to an ObjectAnimation records
// that animation as its owner, which drives document save (owned curves are
// recoverable from the animation, so they are never inlined per object).
type Curve struct {
	valueType attr.Type
	wrap      WrapMode
	keyframes []Keyframe
	events    []EventFrame
	owner     *ObjectAnimation
}

func NewCurve(valueType attr.Type, wrap WrapMode) *Curve {
	return &Curve{valueType: valueType, wrap: wrap}
}

func (c *Curve) ValueType() attr.Type { return c.valueType }
func (c *Curve) Wrap() WrapMode { return c.wrap }

// Owner returns the object animation this curve was added to, or nil for a
// directly-bound curve.
func (c *Curve) Owner() *ObjectAnimation {
	if c == nil {
		return nil
	}
	return c.owner
}

// SetKeyframe inserts a keyframe, keeping keyframes sorted by time.
func (c *Curve) SetKeyframe(time float64, v attr.Variant) error {
	if v.Type != c.valueType {
		return fmt.Errorf("anim: keyframe at %v: got %q, curve produces %q: %w", time, v.Type, c.valueType, attr.ErrTypeMismatch)
	}
	kf := Keyframe{Time: time, Value: v}
	i := sort.Search(len(c.keyframes), func(i int) bool { return c.keyframes[i].Time >= time })
	if i < len(c.keyframes) && c.keyframes[i].Time == time {
		c.keyframes[i] = kf
		return nil
	}
	c.keyframes = append(c.keyframes, Keyframe{})
	copy(c.keyframes[i+1:], c.keyframes[i:])
	c.keyframes[i] = kf
	return nil
}

// SetEventFrame adds a named event at a point on the timeline.
func (c *Curve) SetEventFrame(time float64, name, payload string) {
	ef := EventFrame{Time: time, Name: name, Payload: payload}
	i := sort.Search(len(c.events), func(i int) bool { return c.events[i].Time > time })
	c.events = append(c.events, EventFrame{})
	copy(c.events[i+1:], c.events[i:])
	c.events[i] = ef
}

func (c *Curve) Keyframes() []Keyframe { return c.keyframes }

func (c *Curve) EventFrames() []EventFrame { return c.events }

func (c *Curve) beginTime() float64 {
	if len(c.keyframes) == 0 {
		return 0
	}
	return c.keyframes[0].Time
}

func (c *Curve) endTime() float64 {
	if len(c.keyframes) == 0 {
		return 0
	}
	return c.keyframes[len(c.keyframes)-1].Time
}

// Duration is the span between the first and last keyframes.
func (c *Curve) Duration() float64 {
	return c.endTime() - c.beginTime()
}

// Finished reports whether playback at the given elapsed time has passed the
// last keyframe. Looping curves never finish.
func (c *Curve) Finished(elapsed float64) bool {
	if c.wrap != WrapOnce {
		return false
	}
	return elapsed >= c.endTime()
}

// wrapTime maps raw elapsed time onto the curve's timeline per wrap mode.
func (c *Curve) wrapTime(elapsed float64) float64 {
	begin, end := c.beginTime(), c.endTime()
	span := end - begin
	switch c.wrap {
	case WrapLoop:
		if span <= 0 {
			return begin
		}
		t := math.Mod(elapsed-begin, span)
		if t < 0 {
			t += span
		}
		return begin + t
	case WrapPingPong:
		return begin + common.PingPong(elapsed-begin, span)
	default:
		return common.Clamp(elapsed, begin, end)
	}
}

// Sample evaluates the curve at the given raw elapsed time. The second
// return is false when the curve has no keyframes.
func (c *Curve) Sample(elapsed float64) (attr.Variant, bool) {
	if c == nil || len(c.keyframes) == 0 {
		return attr.Variant{}, false
	}
	if len(c.keyframes) == 1 {
		return c.keyframes[0].Value, true
	}

	t := c.wrapTime(elapsed)
	i := sort.Search(len(c.keyframes), func(i int) bool { return c.keyframes[i].Time > t })
	if i == 0 {
		return c.keyframes[0].Value, true
	}
	if i == len(c.keyframes) {
		return c.keyframes[len(c.keyframes)-1].Value, true
	}

	k0, k1 := c.keyframes[i-1], c.keyframes[i]
	span := k1.Time - k0.Time
	if span <= 0 {
		return k1.Value, true
	}
	return attr.Lerp(k0.Value, k1.Value, (t-k0.Time)/span), true
}

// EventFramesCrossed returns the event frames a playback sweep from prev to
// elapsed (raw times) crossed on the timeline, each at most once, in crossing
// order. A forward sweep crosses (from, to]; a backward sweep, as during the
// reflected half of a ping-pong cycle or under negative speed, crosses
// [to, from).
func (c *Curve) EventFramesCrossed(prev, elapsed float64) []EventFrame {
	if c == nil || len(c.events) == 0 || prev == elapsed {
		return nil
	}
	begin, end := c.beginTime(), c.endTime()
	span := end - begin
	if span <= 0 {
		return nil
	}

	switch c.wrap {
	case WrapLoop:
		return c.loopCrossings(prev, elapsed, begin, end, span)
	case WrapPingPong:
		return c.pingPongCrossings(prev, elapsed, begin, span)
	default:
		t0 := common.Clamp(prev, begin, end)
		t1 := common.Clamp(elapsed, begin, end)
		if t1 >= t0 {
			return c.collectForward(nil, t0, t1, false)
		}
		return c.collectBackward(nil, t0, t1, false)
	}
}

func (c *Curve) loopCrossings(prev, elapsed, begin, end, span float64) []EventFrame {
	t0, t1 := c.wrapTime(prev), c.wrapTime(elapsed)
	if elapsed > prev {
		if elapsed-prev >= span {
			// A full cycle or more crossed every frame.
			out := c.collectForward(nil, t0, end, false)
			return c.collectForward(out, begin, t0, true)
		}
		if t1 >= t0 {
			return c.collectForward(nil, t0, t1, false)
		}
		out := c.collectForward(nil, t0, end, false)
		return c.collectForward(out, begin, t1, true)
	}
	if prev-elapsed >= span {
		out := c.collectBackward(nil, t0, begin, false)
		return c.collectBackward(out, end, t0, true)
	}
	if t1 <= t0 {
		return c.collectBackward(nil, t0, t1, false)
	}
	out := c.collectBackward(nil, t0, begin, false)
	return c.collectBackward(out, end, t1, true)
}

// pingPongCrossings walks the raw sweep one monotone segment at a time,
// splitting at the bounce points (raw times begin + k*span), so a reflected
// segment collects its timeline range backward instead of being mistaken for
// a loop wrap.
func (c *Curve) pingPongCrossings(prev, elapsed, begin, span float64) []EventFrame {
	// One full period already crosses every frame; keep the walk short.
	period := 2 * span
	if elapsed-prev > period {
		prev = elapsed - period
	} else if prev-elapsed > period {
		prev = elapsed + period
	}

	var out []EventFrame
	for from := prev; from != elapsed; {
		var to float64
		if elapsed > from {
			k := math.Floor((from-begin)/span) + 1
			to = math.Min(begin+k*span, elapsed)
		} else {
			k := math.Ceil((from-begin)/span) - 1
			to = math.Max(begin+k*span, elapsed)
		}
		tFrom, tTo := c.wrapTime(from), c.wrapTime(to)
		if tTo >= tFrom {
			out = c.collectForward(out, tFrom, tTo, false)
		} else {
			out = c.collectBackward(out, tFrom, tTo, false)
		}
		from = to
	}
	return out
}

func (c *Curve) collectForward(out []EventFrame, from, to float64, includeFrom bool) []EventFrame {
	for _, ef := range c.events {
		if (ef.Time > from || (includeFrom && ef.Time == from)) && ef.Time <= to {
			out = append(out, ef)
		}
	}
	return out
}

func (c *Curve) collectBackward(out []EventFrame, from, to float64, includeFrom bool) []EventFrame {
	for i := len(c.events) - 1; i >= 0; i-- {
		ef := c.events[i]
		if (ef.Time < from || (includeFrom && ef.Time == from)) && ef.Time >= to {
			out = append(out, ef)
		}
	}
	return out
}

// LoadDoc replaces the curve's content from its document form.
func (c *Curve) LoadDoc(doc *CurveDoc) error {
	if doc == nil {
		return fmt.Errorf("anim: load curve: nil document")
	}
	valueType, err := attr.ParseType(doc.ValueType)
	if err != nil {
		return fmt.Errorf("anim: load curve: %w", err)
	}
	wrap, err := parseWrap(doc.Wrap)
	if err != nil {
		return fmt.Errorf("anim: load curve: %w", err)
	}

	c.valueType = valueType
	c.wrap = wrap
	c.keyframes = nil
	c.events = nil

	for _, kf := range doc.Keyframes {
		v, err := attr.ParseNode(valueType, &kf.Value)
		if err != nil {
			return fmt.Errorf("anim: load curve keyframe at %v: %w", kf.Time, err)
		}
		if err := c.SetKeyframe(kf.Time, v); err != nil {
			return err
		}
	}
	for _, ef := range doc.Events {
		c.SetEventFrame(ef.Time, ef.Name, ef.Payload)
	}
	return nil
}

// SaveDoc emits the curve's document form.
func (c *Curve) SaveDoc() (*CurveDoc, error) {
	doc := &CurveDoc{ValueType: c.valueType.String()}
	if c.wrap != WrapOnce {
		doc.Wrap = c.wrap.String()
	}
	for _, kf := range c.keyframes {
		var node yaml.Node
		if err := node.Encode(kf.Value); err != nil {
			return nil, fmt.Errorf("anim: save curve keyframe at %v: %w", kf.Time, err)
		}
		doc.Keyframes = append(doc.Keyframes, KeyframeDoc{Time: kf.Time, Value: node})
	}
	for _, ef := range c.events {
		doc.Events = append(doc.Events, EventDoc{Time: ef.Time, Name: ef.Name, Payload: ef.Payload})
	}
	return doc, nil
}
