package aevum

// VisibilityEntry reports a change in one observed node's visibility.
type VisibilityEntry struct {
	Node    *Node
	Index   int // position in observation order
	Ratio   float64
	Visible bool
}

// VisibilityOptions configure a VisibilityObserver.
type VisibilityOptions struct {
	// Threshold is the fraction of the node's area that must be inside the
	// (margin-adjusted) viewport for it to count as visible. Must be in (0,1].
	Threshold float64
	// Margin shrinks the viewport before testing. Positive values require
	// the node to be further inside.
	Margin Insets
}

type observedNode struct {
	node    *Node
	visible bool
	active  bool
}

// VisibilityObserver watches nodes against the camera's visible area and
// delivers batched change entries once per frame, in observation order. A
// node starts out invisible, so a node already on screen produces an entry on
// the first check after Observe.
type VisibilityObserver struct {
	scene        *Scene
	opts         VisibilityOptions
	callback     func([]VisibilityEntry)
	targets      []*observedNode
	disconnected bool
	entryBuf     []VisibilityEntry
}

// NewVisibilityObserver creates an observer attached to the scene. The
// callback runs at the end of each frame in which at least one observed node
// crossed the threshold.
func (s *Scene) NewVisibilityObserver(opts VisibilityOptions, cb func([]VisibilityEntry)) (*VisibilityObserver, error) {
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		return nil, ErrInvalidThreshold
	}
	o := &VisibilityObserver{scene: s, opts: opts, callback: cb}
	s.observers = append(s.observers, o)
	return o, nil
}

// Observe starts watching n. Observing the same node twice is a no-op.
func (o *VisibilityObserver) Observe(n *Node) {
	if o.disconnected {
		return
	}
	for _, t := range o.targets {
		if t.node == n && t.active {
			return
		}
	}
	o.targets = append(o.targets, &observedNode{node: n, active: true})
}

// Unobserve stops watching n. Its observation index is kept for the others.
func (o *VisibilityObserver) Unobserve(n *Node) {
	for _, t := range o.targets {
		if t.node == n {
			t.active = false
		}
	}
}

// Disconnect stops all observation and detaches the observer from the scene.
// No callback runs after Disconnect returns.
func (o *VisibilityObserver) Disconnect() {
	if o.disconnected {
		return
	}
	o.disconnected = true
	o.targets = nil
	o.callback = nil
	o.scene.removeObserver(o)
}

// Observing returns the number of actively observed nodes.
func (o *VisibilityObserver) Observing() int {
	n := 0
	for _, t := range o.targets {
		if t.active {
			n++
		}
	}
	return n
}

// check evaluates every active target and delivers one batch.
func (o *VisibilityObserver) check() {
	if o.disconnected {
		return
	}
	entries := o.entryBuf[:0]
	for i, t := range o.targets {
		if !t.active {
			continue
		}
		if t.node.disposed {
			t.active = false
			continue
		}
		ratio, ok := o.scene.visibleRatio(t.node, o.opts.Margin)
		if !ok {
			continue
		}
		visible := ratio > 0 && ratio >= o.opts.Threshold
		if visible == t.visible {
			continue
		}
		t.visible = visible
		entries = append(entries, VisibilityEntry{Node: t.node, Index: i, Ratio: ratio, Visible: visible})
	}
	o.entryBuf = entries
	if len(entries) > 0 && o.callback != nil {
		o.callback(entries)
	}
}

// visibleRatio returns the fraction of n's bounds inside the viewport. ok is
// false when n is not attached to the scene.
func (s *Scene) visibleRatio(n *Node, margin Insets) (ratio float64, ok bool) {
	var view Rect
	switch n.TreeRoot() {
	case s.root:
		view = s.camera.VisibleBounds()
	case s.overlay:
		view = Rect{Width: s.camera.Viewport.Width, Height: s.camera.Viewport.Height}
	default:
		return 0, false
	}
	view = view.Inset(margin)
	b := n.WorldBounds()
	if b.Width == 0 || b.Height == 0 {
		// Degenerate boxes count as fully visible when their origin is inside.
		if view.Width > 0 && view.Height > 0 && view.Contains(b.X, b.Y) {
			return 1, true
		}
		return 0, true
	}
	return b.Intersection(view).Area() / b.Area(), true
}

func (s *Scene) removeObserver(o *VisibilityObserver) {
	for i, c := range s.observers {
		if c == o {
			copy(s.observers[i:], s.observers[i+1:])
			s.observers[len(s.observers)-1] = nil
			s.observers = s.observers[:len(s.observers)-1]
			return
		}
	}
}

// checkVisibility runs every observer. Observers created or disconnected by
// callbacks take effect on the next frame.
func (s *Scene) checkVisibility() {
	if len(s.observers) == 0 {
		return
	}
	snapshot := append(s.observerBuf[:0], s.observers...)
	for _, o := range snapshot {
		o.check()
	}
	clear(snapshot)
	s.observerBuf = snapshot[:0]
}
