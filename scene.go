package aevum

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the document tree, the screen-space
// overlay, the camera, and the per-frame animation machinery.
type Scene struct {
	root    *Node
	overlay *Node
	camera  *Camera
	debug   bool

	// ClearColor fills the screen before drawing.
	ClearColor Color

	// Per-frame animation machinery
	progress    *ProgressSource
	frames      frameScheduler
	transitions []*Transition
	observers   []*VisibilityObserver
	observerBuf []*VisibilityObserver
	frameCount  uint64

	// Input and navigation
	links       LinkResolver
	navigate    Navigator
	anchors     map[string]*Node
	injectQueue []syntheticEvent
	testRunner  *TestRunner
	hitBuf      []*Node
	hovered     *Node

	// Screenshots
	ScreenshotDir   string
	screenshotQueue []string

	updateFunc func() error
}

// NewScene creates a new scene with an empty document root, an overlay root
// drawn in screen space on top of it, and a camera covering a w x h viewport.
func NewScene(w, h float64) *Scene {
	root := NewContainer("root")
	root.Interactable = true
	overlay := NewContainer("overlay")
	overlay.Interactable = true
	cam := newCamera(Rect{Width: w, Height: h})
	return &Scene{
		root:          root,
		overlay:       overlay,
		camera:        cam,
		progress:      newProgressSource(cam),
		anchors:       make(map[string]*Node),
		ScreenshotDir: "screenshots",
	}
}

// Root returns the document root. Children of Root scroll with the camera.
func (s *Scene) Root() *Node {
	return s.root
}

// Overlay returns the screen-space root, used for sticky content such as the
// site header.
func (s *Scene) Overlay() *Node {
	return s.overlay
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Progress returns the shared scroll progress source.
func (s *Scene) Progress() *ProgressSource {
	return s.progress
}

// Frame returns the number of frames ticked so far.
func (s *Scene) Frame() uint64 {
	return s.frameCount
}

// SetDocumentHeight sets the scrollable document to span [0, h] vertically
// and the viewport width horizontally.
func (s *Scene) SetDocumentHeight(h float64) {
	s.camera.SetBounds(Rect{Width: s.camera.Viewport.Width, Height: h})
}

// Resize changes the viewport size, keeping the scroll offset where possible.
// Scrub timelines re-measure their spans on the next frame.
func (s *Scene) Resize(w, h float64) {
	if w == s.camera.Viewport.Width && h == s.camera.Viewport.Height {
		return
	}
	s.camera.Bounds.Width = w
	s.camera.SetViewport(Rect{X: s.camera.Viewport.X, Y: s.camera.Viewport.Y, Width: w, Height: h})
}

// SetUpdateFunc registers a callback run at the end of every frame.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update reads device input and advances one frame at the game's tick rate.
// Use it from ebiten.Game.Update.
func (s *Scene) Update() error {
	s.processInput()
	return s.Tick(1.0 / float64(ebiten.TPS()))
}

// Tick advances one frame by dt seconds without reading device input, so it
// is safe to call headless. Frame order:
//
//  1. injected input and test script steps
//  2. camera (smooth scroll, clamping)
//  3. world transforms
//  4. frame callbacks requested during the previous frame
//  5. scroll progress sample, fanned out to subscribers
//  6. transitions
//  7. visibility observation
func (s *Scene) Tick(dt float64) error {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.frameCount++
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjected()

	s.camera.update(float32(dt))
	s.refreshTransforms()

	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	stats.frameCallbacks = s.frames.flush()
	sample := s.progress.publish()

	if s.debug {
		stats.scrollTime = time.Since(t0)
		t0 = time.Now()
	}

	stats.transitions = len(s.transitions)
	s.tickTransitions(float32(dt))

	if s.debug {
		stats.transitionTime = time.Since(t0)
		t0 = time.Now()
	}

	s.refreshTransforms()
	stats.observers = len(s.observers)
	s.checkVisibility()

	if s.debug {
		stats.visibilityTime = time.Since(t0)
		stats.progress = sample.Value
		s.debugLog(stats)
	}

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// refreshTransforms recomputes dirty world transforms for both trees.
func (s *Scene) refreshTransforms() {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	updateWorldTransform(s.overlay, identityTransform, 1.0, false)
}

// PendingFrames returns the number of frame callbacks waiting to run.
func (s *Scene) PendingFrames() int {
	return s.frames.pending()
}

// RunningTransitions returns the number of transitions still ticking.
func (s *Scene) RunningTransitions() int {
	return len(s.transitions)
}

// Observers returns the number of connected visibility observers.
func (s *Scene) Observers() int {
	return len(s.observers)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// tree operations panic, tree depth and child count warnings are logged, and
// per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool
