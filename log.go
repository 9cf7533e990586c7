package aevum

import "go.uber.org/zap"

// logger is the package logger installed by Init. It is a no-op logger until
// then so that scene-graph code can log unconditionally.
var logger = zap.NewNop()

// Logger returns the package logger.
func Logger() *zap.Logger {
	return logger
}

// nodeField renders a node as a log field without touching a disposed node's
// cleared fields.
func nodeField(key string, n *Node) zap.Field {
	if n == nil {
		return zap.String(key, "<nil>")
	}
	if n.disposed {
		return zap.String(key, n.Name+" (disposed)")
	}
	return zap.String(key, n.Name)
}
