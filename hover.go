package aevum

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// HoverLift raises a node while the pointer is over it and settles it back
// to its rest pose when the pointer leaves. Offset properties in Lift are
// relative to the rest pose.
type HoverLift struct {
	Node     *Node
	Lift     Style
	Duration time.Duration
	Ease     ease.TweenFunc
}

type hoverState struct {
	engine *Engine
	lift   HoverLift

	// base and rest are captured when the node leaves its rest pose and
	// held until it returns.
	base    styleBase
	rest    Style
	engaged bool
	lifted  bool
	playing *Subscription

	disposed bool
}

// BindHover makes h.Node interactable and plays h.Lift on pointer enter.
// The lift never starts while a scrub timeline or reveal group still drives
// the node. A missing node yields an inert subscription; a node already
// bound fails with a ConflictError.
func (e *Engine) BindHover(h HoverLift) (*Subscription, error) {
	n := h.Node
	if !e.resolve(n, "hover") {
		return noopSubscription(), nil
	}
	if err := e.claim(n, ClaimHover); err != nil {
		return nil, fmt.Errorf("hover %q: %w", n.Name, err)
	}
	hs := &hoverState{engine: e, lift: h}
	n.Interactable = true
	n.OnHover = hs.onHover
	return e.track(NewSubscription(hs.dispose)), nil
}

func (hs *hoverState) onHover(over bool) {
	if hs.disposed {
		return
	}
	n := hs.lift.Node
	if over {
		if hs.lifted || hs.engine.claims[n]&(ClaimTimeline|ClaimReveal) != 0 {
			return
		}
		if !hs.engaged {
			hs.base = captureBase(n)
			hs.rest = currentStyle(n, hs.base, hs.lift.Lift.Properties())
			hs.engaged = true
		}
		hs.lifted = true
		hs.play(hs.lift.Lift)
		return
	}
	if !hs.lifted {
		return
	}
	hs.lifted = false
	hs.play(hs.rest)
}

// play replaces any running hover transition with one toward to, starting
// from the node's current values.
func (hs *hoverState) play(to Style) {
	hs.playing.Dispose()
	n := hs.lift.Node
	tr := newTransition(n, hs.base, nil, to, hs.lift.Duration, 0, hs.lift.Ease)
	if !hs.lifted {
		tr.onDone = func() {
			hs.engaged = false
			hs.playing = nil
		}
	}
	hs.playing = hs.engine.scene.Play(tr)
	hs.engine.log.Debug("hover", nodeField("node", n), zap.Bool("lifted", hs.lifted))
}

// dispose unbinds the node and drops it straight back to its rest pose.
func (hs *hoverState) dispose() {
	if hs.disposed {
		return
	}
	hs.disposed = true
	n := hs.lift.Node
	hs.playing.Dispose()
	hs.playing = nil
	if !n.disposed {
		n.OnHover = nil
		if hs.engaged {
			applyStyle(n, hs.base, hs.rest)
		}
	}
	hs.engine.unclaim(n, ClaimHover)
}
