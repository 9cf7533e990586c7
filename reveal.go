package aevum

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// RevealGroup is an ordered set of members revealed when they scroll into
// view. Member i starts i*StaggerStep after it becomes visible, by its
// position in Members, regardless of the order visibility arrives in.
type RevealGroup struct {
	Name        string
	Members     []AnimationTarget
	Threshold   float64
	Margin      Insets
	PlayOnce    bool
	StaggerStep time.Duration
	Duration    time.Duration
	Ease        ease.TweenFunc
}

type memberState uint8

const (
	memberArmed   memberState = iota // waiting to become visible
	memberPlaying                    // transition scheduled or running
	memberShown                      // reached Final (repeatable members only)
	memberFired                      // play-once member done with its watch
)

type revealMember struct {
	index  int
	target AnimationTarget
	base   styleBase
	state  memberState
	tr     *Transition

	// claimed is true while this group holds the member's reveal claim.
	claimed bool
}

type revealGroupState struct {
	ctrl     *RevealController
	group    RevealGroup
	members  []*revealMember
	byNode   map[*Node]*revealMember
	observer *VisibilityObserver
	disposed bool
}

// RevealController plays one-shot (or repeatable) reveal transitions for
// groups of nodes as they enter the viewport.
type RevealController struct {
	engine *Engine
	fired  map[*Node]bool
}

// Fired reports whether n has already played its play-once reveal.
func (c *RevealController) Fired(n *Node) bool {
	return c.fired[n]
}

// Register installs a visibility watch for every member of g and applies each
// member's Initial style. Missing members are skipped. Play-once members that
// already fired are skipped; if nothing is left to watch the returned
// subscription is inert. A member active in another reveal group fails the
// whole registration with a ConflictError.
func (c *RevealController) Register(g RevealGroup) (*Subscription, error) {
	if g.Threshold <= 0 || g.Threshold > 1 {
		return nil, fmt.Errorf("reveal group %q: %w", g.Name, ErrInvalidThreshold)
	}
	e := c.engine
	gs := &revealGroupState{ctrl: c, group: g, byNode: make(map[*Node]*revealMember)}

	for i, m := range g.Members {
		if !e.resolve(m.Node, "reveal member") {
			continue
		}
		if g.PlayOnce && c.fired[m.Node] {
			continue
		}
		if gs.byNode[m.Node] != nil {
			continue
		}
		if err := e.claim(m.Node, ClaimReveal); err != nil {
			gs.releaseClaims()
			return nil, fmt.Errorf("reveal group %q: %w", g.Name, err)
		}
		rm := &revealMember{index: i, target: m, base: captureBase(m.Node), claimed: true}
		gs.members = append(gs.members, rm)
		gs.byNode[m.Node] = rm
	}
	if len(gs.members) == 0 {
		return noopSubscription(), nil
	}

	obs, err := e.scene.NewVisibilityObserver(VisibilityOptions{Threshold: g.Threshold, Margin: g.Margin}, gs.onBatch)
	if err != nil {
		gs.releaseClaims()
		return nil, err
	}
	gs.observer = obs
	for _, m := range gs.members {
		applyStyle(m.target.Node, m.base, m.target.Initial)
		obs.Observe(m.target.Node)
	}
	e.log.Debug("reveal group registered",
		zap.String("group", g.Name),
		zap.Int("members", len(gs.members)))
	return e.track(NewSubscription(gs.dispose)), nil
}

// onBatch handles one frame's visibility changes. Entries arrive in
// observation order, which is member order.
func (gs *revealGroupState) onBatch(entries []VisibilityEntry) {
	if gs.disposed {
		return
	}
	for _, en := range entries {
		m := gs.byNode[en.Node]
		if m == nil {
			continue
		}
		if en.Visible {
			if m.state == memberArmed {
				gs.fire(m)
			}
			continue
		}
		if !gs.group.PlayOnce && (m.state == memberPlaying || m.state == memberShown) {
			gs.reset(m)
		}
	}
}

func (gs *revealGroupState) fire(m *revealMember) {
	e := gs.ctrl.engine
	delay := time.Duration(m.index) * gs.group.StaggerStep
	node := m.target.Node

	m.state = memberPlaying
	if gs.group.PlayOnce {
		m.state = memberFired
		gs.ctrl.fired[node] = true
		gs.observer.Unobserve(node)
	}

	tr := newTransition(node, m.base, m.target.Initial, m.target.Final, gs.group.Duration, delay, gs.group.Ease)
	tr.onStart = func() {
		e.emit(AnimationEvent{Type: EventRevealStarted, Node: node, Index: m.index, Delay: delay})
	}
	tr.onDone = func() {
		if m.state == memberPlaying {
			m.state = memberShown
		}
		m.tr = nil
		// A play-once member keeps its claim until its transition lands.
		if m.state == memberFired {
			gs.unclaim(m)
		}
		e.emit(AnimationEvent{Type: EventRevealCompleted, Node: node, Index: m.index})
	}
	m.tr = tr
	e.scene.Play(tr)
	e.emit(AnimationEvent{Type: EventRevealScheduled, Node: node, Index: m.index, Delay: delay})
}

// reset snaps a repeatable member back to Initial and re-arms it.
func (gs *revealGroupState) reset(m *revealMember) {
	if m.tr != nil {
		m.tr.Cancel()
		m.tr = nil
	}
	applyStyle(m.target.Node, m.base, m.target.Initial)
	m.state = memberArmed
	gs.ctrl.engine.emit(AnimationEvent{Type: EventRevealReset, Node: m.target.Node, Index: m.index})
}

func (gs *revealGroupState) dispose() {
	if gs.disposed {
		return
	}
	gs.disposed = true
	if gs.observer != nil {
		gs.observer.Disconnect()
	}
	for _, m := range gs.members {
		if m.tr != nil {
			m.tr.Cancel()
			m.tr = nil
		}
	}
	gs.releaseClaims()
}

func (gs *revealGroupState) releaseClaims() {
	for _, m := range gs.members {
		gs.unclaim(m)
	}
}

func (gs *revealGroupState) unclaim(m *revealMember) {
	if !m.claimed {
		return
	}
	m.claimed = false
	gs.ctrl.engine.unclaim(m.target.Node, ClaimReveal)
}
