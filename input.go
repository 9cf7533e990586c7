package aevum

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Scroll step sizes for device input, in document units.
const (
	wheelStep      = 60
	arrowStep      = 40
	anchorDuration = 0.6
)

// LinkResolver turns a route name into an href. Routing is owned by the host;
// the scene never constructs or validates URLs itself.
type LinkResolver interface {
	Resolve(route string) string
}

// LinkResolverFunc adapts a function to LinkResolver.
type LinkResolverFunc func(route string) string

// Resolve calls f(route).
func (f LinkResolverFunc) Resolve(route string) string { return f(route) }

// Navigator is called with the resolved href when a linked node is clicked
// and the href is not an in-page anchor.
type Navigator func(href string)

// SetLinks installs the link resolver and navigator used for node clicks.
func (s *Scene) SetLinks(r LinkResolver, nav Navigator) {
	s.links = r
	s.navigate = nav
}

// RegisterAnchor makes "#name" hrefs smooth-scroll to n.
func (s *Scene) RegisterAnchor(name string, n *Node) {
	s.anchors[strings.TrimPrefix(name, "#")] = n
}

// ScrollToAnchor smooth-scrolls so the anchor's top meets the viewport top.
// It reports whether the anchor exists.
func (s *Scene) ScrollToAnchor(name string) bool {
	n := s.anchors[strings.TrimPrefix(name, "#")]
	if n == nil || n.disposed {
		return false
	}
	s.refreshTransforms()
	top := n.WorldBounds().Y - s.camera.Bounds.Y
	s.camera.ScrollToOffset(top, anchorDuration, nil)
	return true
}

// --- Input processing ---

// processInput reads the mouse wheel, keyboard, and left clicks. Called from
// Scene.Update before Tick.
func (s *Scene) processInput() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.camera.ScrollBy(-wy * wheelStep)
	}

	viewH := s.camera.visibleHeight()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		s.camera.ScrollBy(arrowStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		s.camera.ScrollBy(-arrowStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.camera.ScrollToOffset(s.camera.ScrollOffset()+viewH*0.9, 0.3, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		s.camera.ScrollToOffset(s.camera.ScrollOffset()-viewH*0.9, 0.3, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		s.camera.ScrollToOffset(0, 0.5, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		s.camera.ScrollToOffset(s.camera.ScrollExtent(), 0.5, nil)
	}

	mx, my := ebiten.CursorPosition()
	s.hover(float64(mx), float64(my))
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.click(float64(mx), float64(my), MouseButtonLeft)
	}
}

// click hit-tests the overlay first, then the document, and fires the
// topmost interactable node's handler and link.
func (s *Scene) click(sx, sy float64, button MouseButton) {
	target, gx, gy := s.pick(sx, sy, clickable)
	if target == nil {
		return
	}
	if target.OnClick != nil {
		lx, ly := target.WorldToLocal(gx, gy)
		target.OnClick(ClickContext{Node: target, GlobalX: gx, GlobalY: gy, LocalX: lx, LocalY: ly, Button: button})
	}
	if target.Link != "" {
		s.follow(target.Link)
	}
}

// follow resolves a route and either scrolls to an in-page anchor or hands
// the href to the navigator.
func (s *Scene) follow(route string) {
	href := route
	if s.links != nil {
		href = s.links.Resolve(route)
	}
	if strings.HasPrefix(href, "#") {
		if !s.ScrollToAnchor(href) {
			logger.Debug("unknown anchor", zap.String("href", href))
		}
		return
	}
	if s.navigate != nil {
		s.navigate(href)
	}
}

// hover moves the pointer to screen (sx, sy). When the topmost hoverable
// node under it changes, the previous one gets OnHover(false) and the new
// one OnHover(true).
func (s *Scene) hover(sx, sy float64) {
	target, _, _ := s.pick(sx, sy, hoverable)
	if target == s.hovered {
		return
	}
	prev := s.hovered
	s.hovered = target
	if prev != nil && prev.OnHover != nil {
		prev.OnHover(false)
	}
	if target != nil {
		target.OnHover(true)
	}
}

// Hovered returns the node currently under the pointer, or nil.
func (s *Scene) Hovered() *Node { return s.hovered }

// pick hit-tests the overlay first, then the document through the camera.
// It returns the target and the point in the target tree's world space.
func (s *Scene) pick(sx, sy float64, want func(*Node) bool) (*Node, float64, float64) {
	s.refreshTransforms()
	if target := s.hitTest(s.overlay, sx, sy, want); target != nil {
		return target, sx, sy
	}
	gx, gy := s.camera.ScreenToWorld(sx, sy)
	return s.hitTest(s.root, gx, gy, want), gx, gy
}

func clickable(n *Node) bool { return n.OnClick != nil || n.Link != "" }

func hoverable(n *Node) bool { return n.OnHover != nil }

// hitTest returns the last-drawn interactable, visible node matching want
// under (x, y) in the given tree's world space.
func (s *Scene) hitTest(root *Node, x, y float64, want func(*Node) bool) *Node {
	s.hitBuf = collectInteractable(root, s.hitBuf[:0], want)
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		if n == root {
			continue
		}
		if n.WorldBounds().Contains(x, y) {
			return n
		}
	}
	return nil
}

// collectInteractable appends visible interactable nodes matching want in
// draw order.
func collectInteractable(n *Node, buf []*Node, want func(*Node) bool) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable && want(n) {
		buf = append(buf, n)
	}
	for _, c := range n.children {
		buf = collectInteractable(c, buf, want)
	}
	return buf
}
