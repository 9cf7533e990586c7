package aevum

import (
	"fmt"
	"sort"
)

// Property names an animatable node field.
type Property uint8

const (
	PropOffsetX  Property = iota // X relative to the layout position
	PropOffsetY                  // Y relative to the layout position
	PropScale                    // ScaleX and ScaleY together
	PropScaleX                   // ScaleX only
	PropScaleY                   // ScaleY only
	PropAlpha                    // Alpha (opacity)
	PropRotation                 // Rotation in radians
)

var propertyNames = [...]string{
	PropOffsetX:  "offsetX",
	PropOffsetY:  "offsetY",
	PropScale:    "scale",
	PropScaleX:   "scaleX",
	PropScaleY:   "scaleY",
	PropAlpha:    "alpha",
	PropRotation: "rotation",
}

// propertyAliases accepts the CSS-ish names used in motion configs.
var propertyAliases = map[string]Property{
	"x":       PropOffsetX,
	"y":       PropOffsetY,
	"opacity": PropAlpha,
}

func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return fmt.Sprintf("Property(%d)", p)
}

// ParseProperty resolves a property name or alias.
func ParseProperty(name string) (Property, error) {
	for i, n := range propertyNames {
		if n == name {
			return Property(i), nil
		}
	}
	if p, ok := propertyAliases[name]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("aevum: unknown style property %q", name)
}

// Style maps properties to values. Offsets are relative to the base (layout)
// position captured when an animation registers its target.
type Style map[Property]float64

// Properties returns the style's keys in a stable order.
func (s Style) Properties() []Property {
	props := make([]Property, 0, len(s))
	for p := range s {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })
	return props
}

// AnimationTarget is a node plus the styles it animates between.
type AnimationTarget struct {
	Node    *Node
	Initial Style
	Final   Style
}

// styleBase is the layout position offsets are measured from.
type styleBase struct {
	x, y float64
}

func captureBase(n *Node) styleBase {
	return styleBase{x: n.X, y: n.Y}
}

// readProperty returns the node's current value for p.
func readProperty(n *Node, base styleBase, p Property) float64 {
	switch p {
	case PropOffsetX:
		return n.X - base.x
	case PropOffsetY:
		return n.Y - base.y
	case PropScale, PropScaleX:
		return n.ScaleX
	case PropScaleY:
		return n.ScaleY
	case PropAlpha:
		return n.Alpha
	case PropRotation:
		return n.Rotation
	}
	return 0
}

// writeProperty sets one property. Callers mark the node dirty.
func writeProperty(n *Node, base styleBase, p Property, v float64) {
	switch p {
	case PropOffsetX:
		n.X = base.x + v
	case PropOffsetY:
		n.Y = base.y + v
	case PropScale:
		n.ScaleX, n.ScaleY = v, v
	case PropScaleX:
		n.ScaleX = v
	case PropScaleY:
		n.ScaleY = v
	case PropAlpha:
		n.Alpha = v
	case PropRotation:
		n.Rotation = v
	}
}

// applyStyle writes every property of s and marks the node dirty.
func applyStyle(n *Node, base styleBase, s Style) {
	for p, v := range s {
		writeProperty(n, base, p, v)
	}
	n.MarkDirty()
}

// currentStyle samples the node for each property in props.
func currentStyle(n *Node, base styleBase, props []Property) Style {
	out := make(Style, len(props))
	for _, p := range props {
		out[p] = readProperty(n, base, p)
	}
	return out
}
