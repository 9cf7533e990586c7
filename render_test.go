package aevum

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// drawnNames walks the scene's document tree the way Draw does and returns
// the names of the nodes that would be drawn.
func drawnNames(s *Scene, root *Node, view [6]float64, cull *Rect) []string {
	s.refreshTransforms()
	var names []string
	s.walkDrawable(root, view, cull, func(n *Node, _ [6]float64) {
		names = append(names, n.Name)
	})
	return names
}

func TestGeoMMatchesAffine(t *testing.T) {
	m := [6]float64{2, 0.5, -0.5, 3, 10, 20}
	g := geoM(m)
	gx, gy := g.Apply(4, 5)
	wx, wy := transformPoint(m, 4, 5)
	if gx != wx || gy != wy {
		t.Errorf("GeoM.Apply = (%v, %v), want (%v, %v)", gx, gy, wx, wy)
	}
}

func TestWalkDrawableOrder(t *testing.T) {
	s := NewScene(800, 600)
	a := NewRect("a", 10, 10, ColorWhite)
	b := NewRect("b", 10, 10, ColorWhite)
	c := NewRect("c", 10, 10, ColorWhite)
	a.AddChild(b)
	s.Root().AddChild(a)
	s.Root().AddChild(c)

	got := drawnNames(s, s.Root(), identityTransform, nil)
	if diff := cmp.Diff([]string{"root", "a", "b", "c"}, got); diff != "" {
		t.Errorf("draw order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkDrawableSkipsHiddenSubtree(t *testing.T) {
	s := NewScene(800, 600)
	hidden := NewContainer("hidden")
	hidden.Visible = false
	hidden.AddChild(NewRect("inner", 10, 10, ColorWhite))
	s.Root().AddChild(hidden)

	if diff := cmp.Diff([]string{"root"}, drawnNames(s, s.Root(), identityTransform, nil)); diff != "" {
		t.Errorf("drawn mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkDrawableSkipsTransparent(t *testing.T) {
	s := NewScene(800, 600)
	faded := NewContainer("faded")
	faded.Alpha = 0
	faded.AddChild(NewRect("inner", 10, 10, ColorWhite))
	s.Root().AddChild(faded)
	norender := NewRect("norender", 10, 10, ColorWhite)
	norender.Renderable = false
	s.Root().AddChild(norender)

	// Zero alpha propagates to the child; the non-renderable node is skipped
	// but still walked.
	if diff := cmp.Diff([]string{"root"}, drawnNames(s, s.Root(), identityTransform, nil)); diff != "" {
		t.Errorf("drawn mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkDrawableCullsOffscreen(t *testing.T) {
	s := NewScene(800, 600)
	s.SetDocumentHeight(3000)
	near := NewRect("near", 100, 100, ColorWhite)
	near.SetPosition(0, 100)
	far := NewRect("far", 100, 100, ColorWhite)
	far.SetPosition(0, 2000)
	group := NewContainer("group")
	group.SetPosition(0, 2000)
	child := NewRect("child", 100, 100, ColorWhite)
	child.SetPosition(0, -1900)
	group.AddChild(child)
	s.Root().AddChild(near)
	s.Root().AddChild(far)
	s.Root().AddChild(group)

	vb := s.Camera().VisibleBounds()
	got := drawnNames(s, s.Root(), s.Camera().computeViewMatrix(), &vb)
	if diff := cmp.Diff([]string{"root", "near", "group", "child"}, got); diff != "" {
		t.Errorf("drawn mismatch (-want +got):\n%s", diff)
	}

	s.Camera().SetScrollOffset(1800)
	vb = s.Camera().VisibleBounds()
	got = drawnNames(s, s.Root(), s.Camera().computeViewMatrix(), &vb)
	if diff := cmp.Diff([]string{"root", "far", "group"}, got); diff != "" {
		t.Errorf("drawn after scroll mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkDrawableViewMatrix(t *testing.T) {
	s := NewScene(800, 600)
	s.SetDocumentHeight(3000)
	card := NewRect("card", 100, 100, ColorWhite)
	card.SetPosition(50, 1000)
	s.Root().AddChild(card)
	s.Camera().SetScrollOffset(900)
	s.Camera().update(0)
	s.refreshTransforms()

	var m [6]float64
	s.walkDrawable(s.Root(), s.Camera().computeViewMatrix(), nil, func(n *Node, mm [6]float64) {
		if n == card {
			m = mm
		}
	})
	x, y := transformPoint(m, 0, 0)
	if !approxEqual(x, 50, 1e-9) || !approxEqual(y, 100, 1e-9) {
		t.Errorf("card origin on screen = (%v, %v), want (50, 100)", x, y)
	}
}
