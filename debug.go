package aevum

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and workload metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	inputTime      time.Duration
	scrollTime     time.Duration
	transitionTime time.Duration
	visibilityTime time.Duration
	frameCallbacks int
	transitions    int
	observers      int
	progress       float64
}

// debugLog writes the frame's stats to the package logger.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.inputTime + stats.scrollTime + stats.transitionTime + stats.visibilityTime
	logger.Debug("frame",
		zap.Uint64("frame", s.frameCount),
		zap.Duration("input", stats.inputTime),
		zap.Duration("scroll", stats.scrollTime),
		zap.Duration("transitions", stats.transitionTime),
		zap.Duration("visibility", stats.visibilityTime),
		zap.Duration("total", total),
		zap.Int("frameCallbacks", stats.frameCallbacks),
		zap.Int("runningTransitions", stats.transitions),
		zap.Int("observers", stats.observers),
		zap.Float64("progress", stats.progress),
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("aevum debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds limit",
			zap.Int("depth", depth), zap.Int("limit", debugMaxTreeDepth), nodeField("node", n))
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("child count exceeds limit",
			nodeField("node", n), zap.Int("children", len(n.children)), zap.Int("limit", debugMaxChildCount))
	}
}
