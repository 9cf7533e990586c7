package aevum

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaults(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if !cam.CullEnabled {
		t.Error("CullEnabled = false, want true")
	}
	if cam.Viewport.Width != 800 || cam.Viewport.Height != 600 {
		t.Errorf("Viewport = %v, want 800x600", cam.Viewport)
	}
	if cam.ScrollOffset() != 0 {
		t.Errorf("ScrollOffset = %f, want 0", cam.ScrollOffset())
	}
}

func TestCameraIdentityViewMatrix(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	vm := cam.computeViewMatrix()
	// The camera starts centered on the viewport, so world (0,0) is the
	// screen's top-left corner.
	sx, sy := transformPoint(vm, 0, 0)
	if !approxEqual(sx, 0, epsilon) || !approxEqual(sy, 0, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (0,0)", sx, sy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X = 100
	cam.Y = 50
	cam.dirty = true
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) with cam at (100,50) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Zoom = 2.0
	cam.dirty = true

	sx1, _ := cam.WorldToScreen(1, 0)
	sx0, _ := cam.WorldToScreen(0, 0)
	screenDist := sx1 - sx0
	if !approxEqual(screenDist, 2.0, epsilon) {
		t.Errorf("zoom 2x: 1 world unit = %f screen pixels, want 2.0", screenDist)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X = 42
	cam.Y = -17
	cam.Zoom = 1.5
	cam.dirty = true

	origWX, origWY := 123.0, -456.0
	sx, sy := cam.WorldToScreen(origWX, origWY)
	wx, wy := cam.ScreenToWorld(sx, sy)

	if !approxEqual(wx, origWX, 1e-6) || !approxEqual(wy, origWY, 1e-6) {
		t.Errorf("roundtrip: got (%f,%f), want (%f,%f)", wx, wy, origWX, origWY)
	}
}

func TestVisibleBounds_Zoom1(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	bounds := cam.VisibleBounds()
	if !approxEqual(bounds.X, 0, 1e-6) || !approxEqual(bounds.Y, 0, 1e-6) {
		t.Errorf("VisibleBounds origin = (%f,%f), want (0,0)", bounds.X, bounds.Y)
	}
	if !approxEqual(bounds.Width, 800, 1e-6) || !approxEqual(bounds.Height, 600, 1e-6) {
		t.Errorf("VisibleBounds size = (%f,%f), want (800,600)", bounds.Width, bounds.Height)
	}
}

func TestVisibleBounds_Zoom2(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Zoom = 2.0
	cam.dirty = true
	bounds := cam.VisibleBounds()
	if !approxEqual(bounds.Width, 400, 1e-6) || !approxEqual(bounds.Height, 300, 1e-6) {
		t.Errorf("VisibleBounds at zoom 2 size = (%f,%f), want (400,300)", bounds.Width, bounds.Height)
	}
}

// --- Scrolling ---

func TestScrollExtentWithoutBounds(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	if got := cam.ScrollExtent(); got != 0 {
		t.Errorf("ScrollExtent = %f, want 0 without bounds", got)
	}
}

func TestScrollExtentAndOffset(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 2600})

	if got := cam.ScrollExtent(); !approxEqual(got, 2000, epsilon) {
		t.Fatalf("ScrollExtent = %f, want 2000", got)
	}

	cam.SetScrollOffset(500)
	if got := cam.ScrollOffset(); !approxEqual(got, 500, epsilon) {
		t.Errorf("ScrollOffset = %f, want 500", got)
	}
	if b := cam.VisibleBounds(); !approxEqual(b.Y, 500, epsilon) {
		t.Errorf("VisibleBounds.Y = %f, want 500", b.Y)
	}
}

func TestScrollOffsetClamps(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 1600})

	cam.SetScrollOffset(-50)
	if got := cam.ScrollOffset(); got != 0 {
		t.Errorf("offset below 0 = %f, want 0", got)
	}
	cam.SetScrollOffset(5000)
	if got := cam.ScrollOffset(); !approxEqual(got, 1000, epsilon) {
		t.Errorf("offset past extent = %f, want 1000", got)
	}
}

func TestScrollBy(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 1600})
	cam.ScrollBy(120)
	cam.ScrollBy(30)
	if got := cam.ScrollOffset(); !approxEqual(got, 150, epsilon) {
		t.Errorf("ScrollOffset = %f, want 150", got)
	}
}

func TestScrollOffsetRelativeToBounds(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Y: 100, Width: 800, Height: 1600})
	if got := cam.ScrollOffset(); got != 0 {
		t.Errorf("initial offset = %f, want 0 at the document top", got)
	}
	cam.SetScrollOffset(200)
	if b := cam.VisibleBounds(); !approxEqual(b.Y, 300, epsilon) {
		t.Errorf("VisibleBounds.Y = %f, want 300", b.Y)
	}
}

func TestScrollToOffsetAnimates(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 2600})
	cam.ScrollToOffset(1000, 1.0, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("Scrolling = false after ScrollToOffset")
	}

	cam.update(0.5)
	if got := cam.ScrollOffset(); !approxEqual(got, 500, 1.0) {
		t.Errorf("scroll halfway: offset = %f, want ~500", got)
	}

	cam.update(0.5)
	if got := cam.ScrollOffset(); !approxEqual(got, 1000, 1.0) {
		t.Errorf("scroll end: offset = %f, want ~1000", got)
	}
	if cam.Scrolling() {
		t.Error("scrollTween not nil after completion")
	}
}

func TestScrollToOffsetClampsTarget(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 1000})
	cam.ScrollToOffset(9000, 0.2, nil)
	cam.update(1)
	if got := cam.ScrollOffset(); !approxEqual(got, 400, 1.0) {
		t.Errorf("offset = %f, want ~400", got)
	}
}

func TestScrollToOffsetZeroDurationJumps(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 2000})
	cam.ScrollToOffset(300, 0, nil)
	if cam.Scrolling() {
		t.Error("zero duration should not start a tween")
	}
	if got := cam.ScrollOffset(); !approxEqual(got, 300, epsilon) {
		t.Errorf("offset = %f, want 300", got)
	}
}

func TestSetScrollOffsetCancelsSmoothScroll(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 2000})
	cam.ScrollToOffset(1000, 1.0, ease.Linear)
	cam.SetScrollOffset(100)
	cam.update(0.5)
	if got := cam.ScrollOffset(); !approxEqual(got, 100, epsilon) {
		t.Errorf("offset = %f, want 100 after cancelling", got)
	}
}

func TestSetViewportKeepsOffset(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: 3000})
	cam.SetScrollOffset(700)
	cam.SetViewport(Rect{Width: 800, Height: 900})
	if got := cam.ScrollOffset(); !approxEqual(got, 700, epsilon) {
		t.Errorf("offset = %f, want 700", got)
	}
	if got := cam.ScrollExtent(); !approxEqual(got, 2100, epsilon) {
		t.Errorf("extent = %f, want 2100", got)
	}
}

func TestCameraBounds(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 1000, Height: 1000})

	cam.X = 0
	cam.Y = 0
	cam.update(0)
	if cam.X < 50 || cam.Y < 50 {
		t.Errorf("bounds clamp min: cam = (%f,%f), want >= (50,50)", cam.X, cam.Y)
	}

	cam.X = 999
	cam.Y = 999
	cam.dirty = true
	cam.update(0)
	if cam.X > 950 || cam.Y > 950 {
		t.Errorf("bounds clamp max: cam = (%f,%f), want <= (950,950)", cam.X, cam.Y)
	}
}

func TestCameraClearBounds(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 1000, Height: 1000})
	cam.ClearBounds()

	cam.X = -999
	cam.Y = -999
	cam.update(0)
	if cam.X != -999 || cam.Y != -999 {
		t.Errorf("after ClearBounds: cam = (%f,%f), want (-999,-999)", cam.X, cam.Y)
	}
}

func TestCameraBoundsShortDocumentPinsTop(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.X = 0
	cam.Y = 0
	cam.update(0)
	if !approxEqual(cam.X, 50, epsilon) {
		t.Errorf("narrow document: cam.X = %f, want 50", cam.X)
	}
	if cam.ScrollOffset() != 0 || cam.ScrollExtent() != 0 {
		t.Errorf("short document: offset %f extent %f, want 0 and 0", cam.ScrollOffset(), cam.ScrollExtent())
	}
}

// --- AABB ---

func TestWorldAABB(t *testing.T) {
	aabb := worldAABB(identityTransform, 64, 64)
	if !approxEqual(aabb.X, 0, epsilon) || !approxEqual(aabb.Y, 0, epsilon) {
		t.Errorf("AABB origin = (%f,%f), want (0,0)", aabb.X, aabb.Y)
	}
	if !approxEqual(aabb.Width, 64, epsilon) || !approxEqual(aabb.Height, 64, epsilon) {
		t.Errorf("AABB size = (%f,%f), want (64,64)", aabb.Width, aabb.Height)
	}
}

func TestWorldAABB_Translated(t *testing.T) {
	transform := [6]float64{1, 0, 0, 1, 100, 200}
	aabb := worldAABB(transform, 32, 32)
	if !approxEqual(aabb.X, 100, epsilon) || !approxEqual(aabb.Y, 200, epsilon) {
		t.Errorf("translated AABB origin = (%f,%f), want (100,200)", aabb.X, aabb.Y)
	}
}

func TestWorldAABB_Rotated(t *testing.T) {
	cos45 := math.Cos(math.Pi / 4)
	sin45 := math.Sin(math.Pi / 4)
	transform := [6]float64{cos45, sin45, -sin45, cos45, 0, 0}
	aabb := worldAABB(transform, 100, 100)
	expectedSize := 100 * math.Sqrt(2)
	if !approxEqual(aabb.Width, expectedSize, 0.01) || !approxEqual(aabb.Height, expectedSize, 0.01) {
		t.Errorf("rotated AABB size = (%f,%f), want ~(%f,%f)", aabb.Width, aabb.Height, expectedSize, expectedSize)
	}
}

// --- Rect helpers ---

func TestRectIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 80, Width: 100, Height: 100}
	got := a.Intersection(b)
	if got.Width != 50 || got.Height != 20 {
		t.Errorf("Intersection = %+v, want 50x20", got)
	}
	if a.Intersection(Rect{X: 200, Y: 200, Width: 10, Height: 10}).Area() != 0 {
		t.Error("disjoint rects should have zero-area intersection")
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	got := r.Inset(Insets{Bottom: 100})
	if got.Height != 500 || got.Y != 0 {
		t.Errorf("Inset bottom = %+v, want height 500", got)
	}
	if r.Inset(Insets{Top: 400, Bottom: 400}).Height != 0 {
		t.Error("over-inset height should clamp to 0")
	}
}
