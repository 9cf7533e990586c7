package aevum

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// InitConfig configures process-wide engine state.
type InitConfig struct {
	// Logger receives engine and scene diagnostics. Nil keeps the no-op logger.
	Logger *zap.Logger
	// Easings are merged over the built-in named easing table.
	Easings map[string]ease.TweenFunc
}

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Init performs the one-time engine setup: it installs the logger and the
// named easing table. Call it once at process start, before NewEngine. Only
// the first call has any effect; it reports whether this call was that one.
func Init(cfg InitConfig) bool {
	first := false
	initOnce.Do(func() {
		first = true
		if cfg.Logger != nil {
			logger = cfg.Logger
		}
		table := defaultEasings()
		for name, fn := range cfg.Easings {
			table[name] = fn
		}
		easings = table
		initialized.Store(true)
		logger.Debug("engine initialized", zap.Int("easings", len(table)))
	})
	return first
}

// Initialized reports whether Init has run.
func Initialized() bool {
	return initialized.Load()
}

// ClaimKind is the registry slot a node occupies.
type ClaimKind uint8

const (
	ClaimTimeline ClaimKind = 1 << iota // member of a scrub timeline
	ClaimReveal                         // member of a reveal group
	ClaimHover                          // bound to a hover lift
)

func (k ClaimKind) String() string {
	switch k {
	case ClaimTimeline:
		return "scrub timeline"
	case ClaimReveal:
		return "reveal group"
	case ClaimHover:
		return "hover lift"
	}
	return "registration"
}

// Engine orchestrates scroll- and visibility-linked animation for one scene.
// It owns the target registry that keeps a node in at most one timeline and
// one reveal group at a time, and counts live subscriptions.
type Engine struct {
	scene  *Scene
	reveal *RevealController
	claims map[*Node]ClaimKind
	sink   EventSink
	motion MotionConfig
	log    *zap.Logger
	active int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEventSink forwards animation events to sink.
func WithEventSink(sink EventSink) EngineOption {
	return func(e *Engine) { e.sink = sink }
}

// WithMotion sets the motion config used by the Mount functions. The default
// is DefaultConfig().Motion.
func WithMotion(m MotionConfig) EngineOption {
	return func(e *Engine) { e.motion = m }
}

// NewEngine creates an engine bound to scene. It fails with
// ErrNotInitialized if Init has not run.
func NewEngine(scene *Scene, opts ...EngineOption) (*Engine, error) {
	if !Initialized() {
		return nil, ErrNotInitialized
	}
	e := &Engine{
		scene:  scene,
		claims: make(map[*Node]ClaimKind),
		motion: DefaultConfig().Motion,
		log:    logger.With(zap.String("component", "engine")),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.reveal = &RevealController{engine: e, fired: make(map[*Node]bool)}
	return e, nil
}

// Scene returns the engine's scene.
func (e *Engine) Scene() *Scene { return e.scene }

// Progress returns the scene's shared scroll progress source.
func (e *Engine) Progress() *ProgressSource { return e.scene.progress }

// Reveals returns the engine's reveal controller.
func (e *Engine) Reveals() *RevealController { return e.reveal }

// ActiveSubscriptions returns the number of subscriptions created by this
// engine that have not been disposed.
func (e *Engine) ActiveSubscriptions() int { return e.active }

// Motion returns the engine's motion config.
func (e *Engine) Motion() MotionConfig { return e.motion }

// Claimed reports the registry slots n currently occupies.
func (e *Engine) Claimed(n *Node) ClaimKind { return e.claims[n] }

// track counts sub as active until it is disposed.
func (e *Engine) track(sub *Subscription) *Subscription {
	if !sub.Active() {
		return sub
	}
	e.active++
	prev := sub.onDone
	sub.onDone = func() {
		e.active--
		if prev != nil {
			prev()
		}
	}
	return sub
}

// resolve reports whether n can be animated: non-nil, not disposed, and
// attached to the scene. Unresolvable targets are skipped, not errors.
func (e *Engine) resolve(n *Node, what string) bool {
	if n == nil || n.disposed {
		e.log.Debug("skipping missing target", zap.String("registration", what), nodeField("node", n))
		return false
	}
	if root := n.TreeRoot(); root != e.scene.root && root != e.scene.overlay {
		e.log.Debug("skipping detached target", zap.String("registration", what), nodeField("node", n))
		return false
	}
	return true
}

// claim records n in slot kind or returns a ConflictError.
func (e *Engine) claim(n *Node, kind ClaimKind) error {
	if e.claims[n]&kind != 0 {
		e.log.Warn("registration conflict", nodeField("node", n), zap.Stringer("kind", kind))
		return &ConflictError{Node: n, Kind: kind}
	}
	e.claims[n] |= kind
	return nil
}

func (e *Engine) unclaim(n *Node, kind ClaimKind) {
	rest := e.claims[n] &^ kind
	if rest == 0 {
		delete(e.claims, n)
		return
	}
	e.claims[n] = rest
}

// BindProgress drives b.Node's properties from global scroll progress.
// A missing node yields an inert subscription.
func (e *Engine) BindProgress(b ProgressBinding) (*Subscription, error) {
	if err := b.Domain.Validate(); err != nil {
		return nil, err
	}
	if !e.resolve(b.Node, "progress binding") {
		return noopSubscription(), nil
	}
	return e.track(bindProgress(e.scene.progress, b)), nil
}

// Entrance describes a one-shot transition played independent of scroll.
type Entrance struct {
	Target   AnimationTarget
	Duration time.Duration
	Delay    time.Duration
	Ease     ease.TweenFunc
}

// PlayEntrance applies the target's initial style right away and plays the
// transition to its final style starting on the next frame. Disposing the
// subscription stops it where it is.
func (e *Engine) PlayEntrance(en Entrance) (*Subscription, error) {
	n := en.Target.Node
	if !e.resolve(n, "entrance") {
		return noopSubscription(), nil
	}
	base := captureBase(n)
	applyStyle(n, base, en.Target.Initial)
	tr := newTransition(n, base, en.Target.Initial, en.Target.Final, en.Duration, en.Delay, en.Ease)
	tr.onStart = func() {
		e.emit(AnimationEvent{Type: EventEntranceStarted, Node: n, Delay: en.Delay})
	}
	tr.onDone = func() {
		e.emit(AnimationEvent{Type: EventEntranceCompleted, Node: n})
	}
	return e.track(e.scene.Play(tr)), nil
}
