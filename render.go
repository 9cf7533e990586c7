package aevum

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// geoM converts a [6]float64 affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// Draw renders the document through the camera, then the overlay in screen
// space.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())
	s.refreshTransforms()

	view := s.camera.computeViewMatrix()
	var cull *Rect
	if s.camera.CullEnabled {
		vb := s.camera.VisibleBounds()
		cull = &vb
	}
	s.drawTree(screen, s.root, view, cull)
	s.drawTree(screen, s.overlay, identityTransform, nil)

	s.flushScreenshots(screen)
}

// drawTree draws n and its descendants.
func (s *Scene) drawTree(dst *ebiten.Image, n *Node, view [6]float64, cull *Rect) {
	s.walkDrawable(n, view, cull, func(d *Node, m [6]float64) {
		s.drawNode(dst, d, m)
	})
}

// walkDrawable visits drawable nodes depth-first in child order with their
// world-to-screen matrix. Culling only skips a node's own draw; children are
// always visited since they may extend beyond the parent's box.
func (s *Scene) walkDrawable(n *Node, view [6]float64, cull *Rect, fn func(*Node, [6]float64)) {
	if !n.Visible {
		return
	}
	if n.Renderable && n.worldAlpha > 0 {
		culled := cull != nil && n.Type != NodeTypeContainer && !n.WorldBounds().Intersects(*cull)
		if !culled {
			fn(n, multiplyAffine(view, n.worldTransform))
		}
	}
	for _, child := range n.children {
		s.walkDrawable(child, view, cull, fn)
	}
}

func (s *Scene) drawNode(dst *ebiten.Image, n *Node, m [6]float64) {
	switch n.Type {
	case NodeTypeRect:
		if n.Width <= 0 || n.Height <= 0 {
			return
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Concat(geoM(m))
		a := n.Color.A * n.worldAlpha
		op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
		dst.DrawImage(WhitePixel, op)
	case NodeTypeText:
		if n.TextBlock != nil {
			drawText(dst, n.TextBlock, m, n.worldAlpha)
		}
	}
}
