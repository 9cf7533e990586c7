package aevum

import (
	"fmt"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// TimelineState is the scrub timeline's position relative to its span.
type TimelineState uint8

const (
	TimelineIdle      TimelineState = iota // span not measured yet
	TimelineScrubbing                      // span measured, offset at or before the span end
	TimelineSettled                        // offset past the span end, or nothing to scrub; final values held
)

func (s TimelineState) String() string {
	switch s {
	case TimelineIdle:
		return "idle"
	case TimelineScrubbing:
		return "scrubbing"
	case TimelineSettled:
		return "settled"
	}
	return fmt.Sprintf("TimelineState(%d)", s)
}

// SpanAnchor places one end of a timeline span: the scroll offset at which
// the point Element (fraction of the trigger's height from its top) lines up
// with the point Viewport (fraction of the viewport height from its top).
// {0,0} is "trigger top at viewport top"; {1,0} is "trigger bottom at
// viewport top".
type SpanAnchor struct {
	Element  float64 `yaml:"element"`
	Viewport float64 `yaml:"viewport"`
}

// ScrubStep moves Target toward To while the timeline's local progress
// crosses Range. Values start from the previous step's To for the same
// property, or from the target's state at registration.
type ScrubStep struct {
	Target *Node
	Range  Range
	To     Style
	Ease   ease.TweenFunc
}

// TimelineConfig describes a scrub timeline.
type TimelineConfig struct {
	Name    string
	Trigger *Node
	Start   SpanAnchor
	End     SpanAnchor
	Steps   []ScrubStep
}

// DefaultSpan returns anchors for "trigger top at viewport top" through
// "trigger bottom at viewport top".
func DefaultSpan() (start, end SpanAnchor) {
	return SpanAnchor{Element: 0, Viewport: 0}, SpanAnchor{Element: 1, Viewport: 0}
}

type scrubTrack struct {
	target *Node
	base   styleBase
	rng    Range
	from   Style
	to     Style
	ease   ease.TweenFunc
	// leads marks properties this step owns before any step has started.
	leads map[Property]bool
}

type spanGeometry struct {
	top, height, viewH, extent, boundsY float64
}

// ScrubTimeline binds a sequence of mapped values to a trigger's scroll span.
// Its position is a pure function of the scroll offset. Updates are applied
// on the frame after the sample arrives; a newer sample replaces one still
// waiting, and samples older than the last applied one are dropped.
type ScrubTimeline struct {
	engine  *Engine
	name    string
	trigger *Node
	start   SpanAnchor
	end     SpanAnchor
	tracks  []*scrubTrack
	targets []*Node

	state       TimelineState
	startOffset float64
	endOffset   float64
	geom        spanGeometry
	measured    bool
	local       float64

	pending     *ProgressSample
	frame       FrameHandle
	lastOrdinal uint64
	sub         *Subscription
	disposed    bool
}

// NewScrubTimeline validates cfg, claims its targets, and starts listening to
// scroll progress. Steps whose target is missing are dropped. If the trigger
// is missing the timeline stays Idle until disposed.
func (e *Engine) NewScrubTimeline(cfg TimelineConfig) (*ScrubTimeline, *Subscription, error) {
	for i, st := range cfg.Steps {
		if err := st.Range.Validate(); err != nil {
			return nil, nil, fmt.Errorf("timeline %q step %d: %w", cfg.Name, i, err)
		}
	}
	if cfg.Start == (SpanAnchor{}) && cfg.End == (SpanAnchor{}) {
		cfg.Start, cfg.End = DefaultSpan()
	}

	t := &ScrubTimeline{
		engine: e,
		name:   cfg.Name,
		start:  cfg.Start,
		end:    cfg.End,
	}
	if e.resolve(cfg.Trigger, "timeline trigger") {
		t.trigger = cfg.Trigger
	}

	// Claim each distinct target once, rolling back on conflict.
	seen := make(map[*Node]bool)
	for _, st := range cfg.Steps {
		if seen[st.Target] || !e.resolve(st.Target, "timeline step") {
			continue
		}
		if err := e.claim(st.Target, ClaimTimeline); err != nil {
			t.releaseClaims()
			return nil, nil, err
		}
		seen[st.Target] = true
		t.targets = append(t.targets, st.Target)
	}
	t.buildTracks(cfg.Steps, seen)

	if t.trigger != nil {
		cur := e.scene.progress.Current()
		t.sub = e.scene.progress.Subscribe(t.onSample)
		// A span with nothing to scrub reports Settled at registration; the
		// final values are still written by the first flush.
		e.scene.refreshTransforms()
		if t.measure(cur) && t.degenerate() {
			t.local = 1
			t.setState(TimelineSettled)
		}
		t.schedule(cur)
	}
	return t, e.track(NewSubscription(t.dispose)), nil
}

func (t *ScrubTimeline) buildTracks(steps []ScrubStep, valid map[*Node]bool) {
	bases := make(map[*Node]styleBase)
	running := make(map[*Node]Style)
	for _, st := range steps {
		if !valid[st.Target] {
			continue
		}
		base, ok := bases[st.Target]
		if !ok {
			base = captureBase(st.Target)
			bases[st.Target] = base
			running[st.Target] = Style{}
		}
		cur := running[st.Target]
		tr := &scrubTrack{
			target: st.Target,
			base:   base,
			rng:    st.Range,
			from:   make(Style, len(st.To)),
			to:     st.To,
			ease:   st.Ease,
			leads:  make(map[Property]bool),
		}
		for p, v := range st.To {
			from, seen := cur[p]
			if !seen {
				from = readProperty(st.Target, base, p)
				tr.leads[p] = true
			}
			tr.from[p] = from
			cur[p] = v
		}
		t.tracks = append(t.tracks, tr)
	}
}

// State returns the timeline's current state.
func (t *ScrubTimeline) State() TimelineState { return t.state }

// Span returns the measured document-relative start and end offsets.
func (t *ScrubTimeline) Span() (start, end float64) { return t.startOffset, t.endOffset }

// LocalProgress returns the last applied local progress in [0,1].
func (t *ScrubTimeline) LocalProgress() float64 { return t.local }

// Disposed reports whether the timeline has been torn down.
func (t *ScrubTimeline) Disposed() bool { return t.disposed }

func (t *ScrubTimeline) onSample(s ProgressSample) {
	if t.disposed {
		return
	}
	t.schedule(s)
}

func (t *ScrubTimeline) schedule(s ProgressSample) {
	if s.Ordinal < t.lastOrdinal {
		return
	}
	if t.pending != nil && s.Ordinal < t.pending.Ordinal {
		return
	}
	t.pending = &s
	if !t.frame.Pending() {
		t.frame = t.engine.scene.RequestFrame(t.flush)
	}
}

// flush applies the latest pending sample. Runs as a frame callback.
func (t *ScrubTimeline) flush() {
	if t.disposed || t.pending == nil {
		return
	}
	s := *t.pending
	t.pending = nil
	if s.Ordinal < t.lastOrdinal {
		return
	}

	remeasured := t.measure(s)
	if !t.measured {
		return
	}
	if s.Ordinal == t.lastOrdinal && !remeasured && t.state != TimelineIdle {
		return
	}
	t.lastOrdinal = s.Ordinal
	t.seek(s.Offset)
}

// measure recomputes the span when the trigger geometry, viewport, or
// document extent changed. It reports whether a new measurement was taken.
func (t *ScrubTimeline) measure(s ProgressSample) bool {
	if t.trigger == nil || t.trigger.disposed {
		return false
	}
	b := t.trigger.WorldBounds()
	g := spanGeometry{
		top:     b.Y,
		height:  b.Height,
		viewH:   s.ViewportHeight,
		extent:  s.Extent,
		boundsY: t.engine.scene.camera.Bounds.Y,
	}
	if t.measured && g == t.geom {
		return false
	}
	t.geom = g
	t.measured = true
	top := g.top - g.boundsY
	t.startOffset = top + t.start.Element*g.height - t.start.Viewport*g.viewH
	t.endOffset = top + t.end.Element*g.height - t.end.Viewport*g.viewH
	t.engine.log.Debug("timeline measured",
		zap.String("timeline", t.name),
		zap.Float64("start", t.startOffset),
		zap.Float64("end", t.endOffset))
	return true
}

// degenerate reports whether the measured span cannot be scrubbed: the
// document has no scroll range or the span has zero or negative length.
func (t *ScrubTimeline) degenerate() bool {
	return t.geom.extent <= 0 || t.endOffset <= t.startOffset
}

// seek computes local progress for offset, writes every track, and updates
// the state. A degenerate span is always settled at the final values.
func (t *ScrubTimeline) seek(offset float64) {
	next := TimelineScrubbing
	if t.degenerate() {
		t.local = 1
		next = TimelineSettled
	} else {
		t.local = clamp01((offset - t.startOffset) / (t.endOffset - t.startOffset))
		if offset > t.endOffset {
			next = TimelineSettled
		}
	}

	for _, tr := range t.tracks {
		if tr.target.disposed {
			continue
		}
		started := t.local >= tr.rng.Start
		for p, to := range tr.to {
			if !started && !tr.leads[p] {
				continue
			}
			v := MapValue(t.local, tr.rng, Interval{From: tr.from[p], To: to}, tr.ease)
			writeProperty(tr.target, tr.base, p, v)
		}
		tr.target.MarkDirty()
	}

	t.setState(next)
}

func (t *ScrubTimeline) setState(next TimelineState) {
	if next == t.state {
		return
	}
	prev := t.state
	t.state = next
	t.engine.log.Debug("timeline state",
		zap.String("timeline", t.name),
		zap.Stringer("from", prev),
		zap.Stringer("to", next))
	t.engine.emit(AnimationEvent{Type: EventTimelineState, Node: t.trigger, State: next, Progress: t.local})
}

// Remeasure forces the span to be recomputed on the next frame, for layout
// changes that do not move the trigger's bounds.
func (t *ScrubTimeline) Remeasure() {
	if t.disposed {
		return
	}
	t.measured = false
	t.schedule(t.engine.scene.progress.Current())
}

func (t *ScrubTimeline) dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.frame.Cancel()
	t.pending = nil
	t.sub.Dispose()
	t.releaseClaims()
}

func (t *ScrubTimeline) releaseClaims() {
	for _, n := range t.targets {
		t.engine.unclaim(n, ClaimTimeline)
	}
	t.targets = nil
}
