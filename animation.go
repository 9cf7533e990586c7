package aevum

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition animates a node from one Style to another over a fixed duration
// after an optional delay. The scene ticks every started transition once per
// frame. If the target node is disposed or the transition is cancelled, it
// stops immediately and writes nothing further.
type Transition struct {
	target *Node
	base   styleBase
	props  []Property
	from   Style
	to     Style
	tweens []*gween.Tween

	delay    float32
	waited   float32
	duration float32
	easeFn   ease.TweenFunc

	started   bool
	cancelled bool
	Done      bool

	onStart func()
	onDone  func()
}

// NewTransition prepares a transition of node from -> to. Properties missing
// from `from` start at the node's current value. Nothing is written until the
// first Update after the delay elapses.
func NewTransition(node *Node, from, to Style, duration, delay time.Duration, fn ease.TweenFunc) *Transition {
	return newTransition(node, captureBase(node), from, to, duration, delay, fn)
}

func newTransition(node *Node, base styleBase, from, to Style, duration, delay time.Duration, fn ease.TweenFunc) *Transition {
	if fn == nil {
		fn = ease.Linear
	}
	return &Transition{
		target:   node,
		base:     base,
		props:    to.Properties(),
		from:     from,
		to:       to,
		delay:    float32(delay.Seconds()),
		duration: float32(duration.Seconds()),
		easeFn:   fn,
	}
}

// Delay returns the configured start delay.
func (t *Transition) Delay() time.Duration {
	return time.Duration(float64(t.delay) * float64(time.Second))
}

// Started reports whether the delay has elapsed and values are being written.
func (t *Transition) Started() bool {
	return t.started
}

// Cancel stops the transition where it is.
func (t *Transition) Cancel() {
	t.cancelled = true
	t.Done = true
	t.onDone = nil
}

// Update advances the transition by dt seconds.
func (t *Transition) Update(dt float32) {
	if t.Done {
		return
	}
	if t.target == nil || t.target.IsDisposed() {
		t.Done = true
		return
	}

	if !t.started {
		t.waited += dt
		if t.waited < t.delay {
			return
		}
		// Carry the overshoot into the first tween step.
		dt = t.waited - t.delay
		t.begin()
	}

	if t.duration <= 0 {
		applyStyle(t.target, t.base, t.to)
		t.finish()
		return
	}

	allDone := true
	for i, p := range t.props {
		val, finished := t.tweens[i].Update(dt)
		writeProperty(t.target, t.base, p, float64(val))
		if !finished {
			allDone = false
		}
	}
	t.target.MarkDirty()
	if allDone {
		t.finish()
	}
}

func (t *Transition) begin() {
	t.started = true
	t.tweens = make([]*gween.Tween, len(t.props))
	for i, p := range t.props {
		from, ok := t.from[p]
		if !ok {
			from = readProperty(t.target, t.base, p)
		}
		t.tweens[i] = gween.New(float32(from), float32(t.to[p]), t.duration, t.easeFn)
	}
	if t.onStart != nil {
		t.onStart()
	}
}

func (t *Transition) finish() {
	// Land exactly on the target values; float32 tweens drift slightly.
	applyStyle(t.target, t.base, t.to)
	t.Done = true
	if t.onDone != nil {
		fn := t.onDone
		t.onDone = nil
		fn()
	}
}

// Play starts tr on the scene's transition ticker and returns a Subscription
// that cancels it.
func (s *Scene) Play(tr *Transition) *Subscription {
	s.transitions = append(s.transitions, tr)
	return NewSubscription(tr.Cancel)
}

// tickTransitions advances every running transition and drops finished ones.
// Transitions started from callbacks during the tick begin on the next frame.
func (s *Scene) tickTransitions(dt float32) {
	if len(s.transitions) == 0 {
		return
	}
	ticking := s.transitions
	s.transitions = nil
	kept := ticking[:0]
	for _, tr := range ticking {
		tr.Update(dt)
		if !tr.Done {
			kept = append(kept, tr)
		}
	}
	for i := len(kept); i < len(ticking); i++ {
		ticking[i] = nil
	}
	s.transitions = append(kept, s.transitions...)
}
