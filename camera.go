package aevum

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is the page viewport: it maps the document (world space) into the
// screen rectangle and owns the vertical scroll position.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// CullEnabled skips nodes whose world AABB doesn't intersect the
	// camera's visible bounds.
	CullEnabled bool

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds. Bounds doubles as the document rectangle: scroll offsets
	// are measured from Bounds.Y.
	BoundsEnabled bool
	Bounds        Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *gween.Tween
}

// newCamera creates a Camera with default values and the given viewport.
func newCamera(viewport Rect) *Camera {
	c := &Camera{
		Zoom:        1.0,
		Viewport:    viewport,
		CullEnabled: true,
		dirty:       true,
	}
	c.X = viewport.Width / 2
	c.Y = viewport.Height / 2
	return c
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.clampToBounds()
	c.dirty = true
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// SetViewport changes the screen rectangle and keeps the current scroll
// offset, re-clamped to the new extent.
func (c *Camera) SetViewport(vp Rect) {
	offset := c.ScrollOffset()
	c.Viewport = vp
	c.X = c.Bounds.X + c.visibleWidth()/2
	c.SetScrollOffset(offset)
}

// ClampToBounds immediately clamps the camera position so the visible area
// stays within Bounds. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

func (c *Camera) visibleWidth() float64  { return c.Viewport.Width / c.Zoom }
func (c *Camera) visibleHeight() float64 { return c.Viewport.Height / c.Zoom }

// ScrollOffset returns the document-relative offset of the top edge of the
// visible area.
func (c *Camera) ScrollOffset() float64 {
	return c.Y - c.visibleHeight()/2 - c.Bounds.Y
}

// ScrollExtent returns the scrollable height of the document: how far the
// top edge can travel. Zero when the document fits in the viewport or when
// no bounds are set.
func (c *Camera) ScrollExtent() float64 {
	if !c.BoundsEnabled {
		return 0
	}
	return math.Max(0, c.Bounds.Height-c.visibleHeight())
}

// SetScrollOffset jumps to the given document-relative offset, cancelling any
// smooth scroll in progress.
func (c *Camera) SetScrollOffset(offset float64) {
	c.scrollTween = nil
	c.setOffset(offset)
}

// ScrollBy moves the scroll offset by dy.
func (c *Camera) ScrollBy(dy float64) {
	c.SetScrollOffset(c.ScrollOffset() + dy)
}

// ScrollToOffset animates the scroll offset to target over duration seconds.
func (c *Camera) ScrollToOffset(target float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.SetScrollOffset(target)
		return
	}
	if easeFn == nil {
		easeFn = ease.InOutCubic
	}
	target = math.Max(0, math.Min(target, c.ScrollExtent()))
	c.scrollTween = gween.New(float32(c.ScrollOffset()), float32(target), duration, easeFn)
}

// Scrolling reports whether a smooth scroll is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

func (c *Camera) setOffset(offset float64) {
	c.Y = c.Bounds.Y + offset + c.visibleHeight()/2
	if c.BoundsEnabled {
		c.clampToBounds()
	}
	c.dirty = true
}

// update advances the smooth scroll and bounds clamping. Called once per frame.
func (c *Camera) update(dt float32) {
	prevX, prevY, prevZoom := c.X, c.Y, c.Zoom

	if c.scrollTween != nil {
		val, done := c.scrollTween.Update(dt)
		c.setOffset(float64(val))
		if done {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}

	if c.X != prevX || c.Y != prevY || c.Zoom != prevZoom {
		c.dirty = true
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.visibleWidth() / 2
	halfH := c.visibleHeight() / 2

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	// A document shorter than the viewport pins to the top rather than
	// centering, like a page.
	if minY > maxY {
		c.Y = minY
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(vx + w/2, vy + h/2) * Scale(zoom) * Translate(-X, -Y)
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Zoom

	c.viewMatrix = [6]float64{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the rect of the camera's visible area in world space.
func (c *Camera) VisibleBounds() Rect {
	w, h := c.visibleWidth(), c.visibleHeight()
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}
